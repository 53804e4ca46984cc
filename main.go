package main

import (
	"context"
	"fmt"
	"os"

	"binotify-cli/api"
	"binotify-cli/auth"
	"binotify-cli/commands"
	"binotify-cli/config"
	"binotify-cli/form"
	"binotify-cli/logger"
	"binotify-cli/token"
	"binotify-cli/tracing"
	"binotify-cli/tui"
	"binotify-cli/tui/controller"
	"binotify-cli/tui/effects"
	"binotify-cli/tui/login"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// Overridden via -ldflags in release builds.
var version = "dev"

type options struct {
	username   string
	password   string
	plain      bool
	apiURL     string
	saveAPIURL bool
	logLevel   string
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := pflag.NewFlagSet("binotify", pflag.ContinueOnError)
	fs.StringVarP(&opts.username, "username", "u", "", "username for login")
	fs.StringVarP(&opts.password, "password", "p", "", "password for login")
	fs.BoolVar(&opts.plain, "plain", false, "log in on the plain terminal instead of the full-screen UI")
	fs.StringVar(&opts.apiURL, "api-url", "", "authentication API base URL")
	fs.BoolVar(&opts.saveAPIURL, "save-api-url", false, "remember --api-url in the config file")
	fs.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	configManager := config.NewConfigManager()
	if opts.apiURL != "" && opts.saveAPIURL {
		if err := configManager.SetAPIURL(opts.apiURL); err != nil {
			return err
		}
	}

	settings, err := config.LoadSettings(configManager)
	if err != nil {
		return err
	}
	if opts.apiURL != "" {
		settings.BaseURL = opts.apiURL
	}
	if opts.logLevel != "" {
		settings.LogLevel = opts.logLevel
	}

	// stdout belongs to the UI in full-screen mode
	logConfig := logger.Config{Level: settings.LogLevel, Output: "file", FilePath: settings.LogFile}
	if opts.plain {
		logConfig = logger.Config{Level: settings.LogLevel, Output: "stderr"}
	}
	log, err := logger.New(logConfig)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	tracingConfig := tracing.DefaultConfig()
	tracingConfig.Enabled = settings.TracingEnabled
	tracer, err := tracing.New(tracingConfig, version)
	if err != nil {
		log.Warn("tracing disabled", zap.Error(err))
		tracer = tracing.NewNoOpTracer()
	}
	defer func() { _ = tracer.Close() }()

	client := api.NewClient(settings.BaseURL, settings.Timeout)
	log.Debug("starting", zap.String("version", version), zap.String("api", client.BaseURL()), zap.Bool("plain", opts.plain))
	store := token.NewStore(configManager)
	serviceOpts := []auth.Option{
		auth.WithLogger(log),
		auth.WithTracer(tracer),
		auth.WithTransportFailureNotice(settings.NotifyTransportErrors),
	}

	if opts.plain {
		cmd := commands.NewLoginCmd(client, store, os.Stdin, os.Stdout, serviceOpts...)
		cmd.Username = opts.username
		cmd.Password = opts.password
		return cmd.Execute(context.Background())
	}

	queue := effects.NewQueue()
	service := auth.NewAuthService(client, store, queue, queue, serviceOpts...)
	loginForm := form.New()
	loginComponent := login.New(loginForm, service, queue)
	loginComponent.Prefill(opts.username, opts.password)

	return tui.Run(controller.New(loginComponent, store, log, tracer))
}
