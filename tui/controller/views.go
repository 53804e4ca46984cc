package controller

import (
	"binotify-cli/tui/styles"
)

// View rendering functions

func (c *Controller) renderQuitting() string {
	if c.fatalErr != nil {
		return styles.ErrorStyle.Render("Login could not be completed: "+c.fatalErr.Error()) + "\n"
	}
	return styles.SubtitleStyle.Render("Goodbye!") + "\n"
}

func (c *Controller) renderLogin() string {
	return c.loginComponent.View()
}

func (c *Controller) renderLanding() string {
	if c.landingComponent == nil {
		return ""
	}
	return c.landingComponent.View() + "\n" + c.footer.View(c.footerBindings.Landing()...)
}

func (c *Controller) withOverlays(view string) string {
	if toasts := c.toast.View(); toasts != "" {
		view = toasts + "\n" + view
	}
	if c.errorMsg != "" {
		view += "\n" + styles.ErrorStyle.Render(c.errorMsg)
	}
	return view
}
