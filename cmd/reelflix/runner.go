// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/taibuivan/reelflix/internal/client"
	"github.com/taibuivan/reelflix/internal/content"
)

// readPassword reads a line from the terminal without echo. Tests replace it.
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *Config
	configPath string
	api        *client.API
	auth       *client.AuthStore
	types      *client.ContentStore
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	// Config skips loading the --config file when set.
	Config *Config
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner. The API binding is built once flags are parsed.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config: opts.Config,
		types:  client.NewContentStore(),
		logger: opts.Logger,
		output: opts.Output,
	}
}

// NewLogger builds the human-readable logger notifications are printed through.
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{Prefix: "reelflix"})
}

// App is the root command.
func (r *Runner) App() *cli.Command {
	return &cli.Command{
		Name:    "reelflix",
		Usage:   "Browse movies and TV shows from the terminal",
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   DefaultConfigPath(),
			},
			&cli.StringFlag{
				Name:    "server",
				Usage:   "API server URL, overrides server_url",
				Sources: cli.EnvVars("REELFLIX_SERVER"),
			},
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Content type to browse: movie or tv",
				Value:   string(content.Movie),
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Trace every API call",
			},
		},
		Before:   r.prepare,
		Commands: r.register(),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		signupCommand, loginCommand, logoutCommand, whoamiCommand,
		homeCommand, browseCommand, detailsCommand, searchCommand, historyCommand, historyRemoveCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// prepare loads the config and builds the API binding and stores from the parsed flags.
func (r *Runner) prepare(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("verbose") {
		r.logger.SetLevel(log.DebugLevel)
	}

	r.configPath = cmd.String("config")
	if r.config == nil {
		config, err := LoadConfig(r.configPath)
		if err != nil {
			return ctx, err
		}
		r.config = config
	}
	if server := cmd.String("server"); server != "" {
		r.config.ServerURL = server
	}

	if err := r.types.SetContentType(content.Type(cmd.String("type"))); err != nil {
		return ctx, fmt.Errorf("unknown content type %q: use movie or tv", cmd.String("type"))
	}

	api, err := client.NewAPI(r.config.ServerURL, client.WithLogger(slog.New(r.logger)))
	if err != nil {
		return ctx, err
	}
	api.SetSessionToken(r.config.Session)

	r.api = api
	r.auth = client.NewAuthStore(api, r.notify)

	return ctx, nil
}

// notify prints store notifications through the logger.
func (r *Runner) notify(notification client.Notification) {
	if notification.Level == client.LevelError {
		r.logger.Error(notification.Message)
		return
	}
	r.logger.Info(notification.Message)
}

// saveSession persists whatever session cookie the jar now holds.
func (r *Runner) saveSession() error {
	r.config.Session = r.api.SessionToken()
	return SaveConfig(r.configPath, r.config)
}

func (r *Runner) writePlain(format string, args ...any) {
	fmt.Fprintf(r.output, format, args...)
}

// promptPassword asks for a password without echoing it. Only the line ending is stripped.
func (r *Runner) promptPassword() (string, error) {
	r.writePlain("Password: ")
	password, err := readPassword()
	r.writePlain("\n")
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(string(password), "\r\n"), nil
}
