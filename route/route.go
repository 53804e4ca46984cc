package route

const (
	// Admin is the administrative landing route
	Admin = "/subscription"

	// Standard is the landing route for regular users
	Standard = "/song-management"

	// Login is the route of the login screen itself
	Login = "/login"

	// Register is the sign-up route linked from the login screen
	Register = "/register"
)

// Navigator performs navigation to a route. Fire-and-forget.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to the Navigator interface
type NavigatorFunc func(path string)

// Navigate calls f(path)
func (f NavigatorFunc) Navigate(path string) {
	f(path)
}

// For returns the landing route for a user with the given role claim
func For(isAdmin bool) string {
	if isAdmin {
		return Admin
	}
	return Standard
}
