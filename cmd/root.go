package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/quantum-job-console/internal/app"
	"github.com/JakeFAU/quantum-job-console/internal/config"
	"github.com/JakeFAU/quantum-job-console/internal/console"
	"github.com/JakeFAU/quantum-job-console/internal/logging"
)

// appKeyType is the key for storing the App in the context.
type appKeyType string

const appKey appKeyType = "app"

// App defines the application interface that commands will use.
// This allows us to inject a fake app during tests.
type App interface {
	Close()
	GetConfig() config.Config
	GetLogger() *zap.Logger
	GetConsole() *console.Console
	NewServer() *console.Server
}

// newApp is the application factory. It's a variable so tests can replace it.
var newApp = func(cfg config.Config, logger *zap.Logger) (App, error) {
	return app.New(cfg, logger)
}

type rootOptions struct {
	cfgFile string
	envFile string
	baseURL string

	// app is set once PersistentPreRunE has built it.
	app App
}

// closeApp releases the App built for this run, if any.
func (o *rootOptions) closeApp() {
	if o.app != nil {
		o.app.Close()
		o.app = nil
	}
}

// newRootCmd creates and configures the root command. The App it builds is
// recorded in opts and released by executeRoot.
func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qjobs",
		Short: "Console for a quantum job submission API.",
		Long: `qjobs talks to a quantum job API: it checks the API's health,
submits jobs, lists them, and can serve the same view as a local web console.`,
		SilenceUsage: true,

		// Config and services are built here so every subcommand sees the same App.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := buildApp(opts)
			if err != nil {
				return err
			}
			opts.app = appInstance
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (yaml, json or toml)")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before the environment is read")
	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "API base URL (overrides api.base_url)")

	cmd.AddCommand(
		newHealthCmd(),
		newJobsCmd(),
		newSubmitCmd(),
		newWatchCmd(),
		newServeCmd(),
	)
	return cmd
}

func buildApp(opts *rootOptions) (App, error) {
	if err := config.LoadDotEnv(opts.envFile); err != nil {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	cfg, err := config.Load(opts.cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.baseURL != "" {
		cfg.API.BaseURL = opts.baseURL
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	zap.ReplaceGlobals(logger)

	appInstance, err := newApp(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application services: %w", err)
	}
	return appInstance, nil
}

func resolveApp(ctx context.Context) (App, error) {
	appInstance, ok := ctx.Value(appKey).(App)
	if !ok || appInstance == nil {
		return nil, errors.New("application services not initialized")
	}
	return appInstance, nil
}

// Execute is the main entry point. Ctrl-C cancels any request in flight.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := executeRoot(ctx, os.Args[1:]); err != nil {
		stop()
		zap.L().Fatal("command execution failed", zap.Error(err))
	}
}

// executeRoot runs one command line and always closes the App afterwards,
// including when the command fails (cobra skips post-run hooks on error).
func executeRoot(ctx context.Context, args []string) error {
	return executeRootWith(ctx, args, nil)
}

func executeRootWith(ctx context.Context, args []string, configure func(*cobra.Command)) error {
	opts := &rootOptions{}
	defer opts.closeApp()

	root := newRootCmd(opts)
	root.SetArgs(args)
	if configure != nil {
		configure(root)
	}
	return root.ExecuteContext(ctx)
}
