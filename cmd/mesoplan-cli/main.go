package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func newApp() *cli.App {
	return &cli.App{
		Name:     "mesoplan-cli",
		HelpName: "mesoplan-cli",
		Usage:    "Plan mesocycles offline or drive a Mesoplan server",
		Version:  Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Usage:   "Mesoplan server URL (e.g. https://mesoplan.tail1234.ts.net)",
				EnvVars: []string{"MESOPLAN_SERVER"},
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "API key for mutating requests",
				EnvVars: []string{"MESOPLAN_API_KEY"},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log debug output",
			},
		},
		Before: func(c *cli.Context) error {
			level := slog.LevelInfo
			if c.Bool("verbose") {
				level = slog.LevelDebug
			}
			c.App.Metadata = map[string]any{
				"log": slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level})),
			}
			return nil
		},
		ExitErrHandler: func(c *cli.Context, err error) {
			if err == nil {
				return
			}
			logger(c).Error(c.App.Name, "error", err)
		},
		Commands: []*cli.Command{
			planCommand(),
			splitsCommand(),
			pushCommand(),
			feedbackCommand(),
			exportCommand(),
			mcpCommand(),
		},
	}
}

// logger returns the logger set up in Before.
func logger(c *cli.Context) *slog.Logger {
	if log, ok := c.App.Metadata["log"].(*slog.Logger); ok {
		return log
	}
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func main() {
	app := newApp()
	if err := app.RunContext(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}
