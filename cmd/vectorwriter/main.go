// Command vectorwriter writes embedding vectors to Pinecone or Qdrant.
//
//	vectorwriter run --input run.json
//	cat run.yaml | vectorwriter run --input -
//	vectorwriter serve
//
// Settings come from the environment (and ./.env when present).
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/dmitrymomot/vectorwriter/pkg/config"
	"github.com/dmitrymomot/vectorwriter/pkg/httpserver"
	"github.com/dmitrymomot/vectorwriter/pkg/logger"
	"github.com/dmitrymomot/vectorwriter/pkg/runapi"
	"github.com/dmitrymomot/vectorwriter/pkg/runinput"
	"github.com/dmitrymomot/vectorwriter/pkg/runner"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	a := &app{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	if err := a.cli().Run(os.Args); err != nil {
		if _, ok := err.(cli.ExitCoder); !ok {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

type app struct {
	cfg Config
	log *slog.Logger
	// http replaces the outbound HTTP client when set.
	http *http.Client

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (a *app) cli() *cli.App {
	return &cli.App{
		Name:  "vectorwriter",
		Usage: "Write embedding vectors to Pinecone or Qdrant",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Override LOG_LEVEL (debug, info, warn, error)",
			},
		},
		Before: a.setup,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Execute one run and print its result",
				Action: a.runCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Run input file (JSON or YAML), - for stdin",
						Required: true,
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve runs over HTTP",
				Action: a.serveCommand,
			},
		},
		Writer:    a.stdout,
		ErrWriter: a.stderr,
	}
}

func (a *app) setup(c *cli.Context) error {
	if err := config.Load(&a.cfg); err != nil {
		return err
	}
	if lvl := c.String("log-level"); lvl != "" {
		a.cfg.LogLevel = lvl
	}

	log, err := newLogger(a.cfg)
	if err != nil {
		return err
	}
	a.log = log
	return nil
}

func (a *app) runCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	raw, err := readInput(c.String("input"), a.stdin)
	if err != nil {
		return err
	}

	// Rebuild the logger so this run's key is redacted from every record.
	secrets := runinput.Secrets(raw)
	log, err := newLogger(a.cfg, secrets...)
	if err != nil {
		return err
	}

	d, err := a.connect(ctx, log)
	if err != nil {
		return err
	}
	defer d.close()

	out, closeSinks, err := buildSinks(a.cfg, d, log)
	if err != nil {
		return err
	}
	defer closeSinks()

	r, err := buildRunner(a.cfg, d, log, out)
	if err != nil {
		return err
	}

	res, err := r.Run(ctx, raw)
	if err != nil {
		fmt.Fprintln(a.stderr, runner.FailureMessage(err, secrets...))
		return cli.Exit("", 1)
	}

	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func (a *app) serveCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := a.connect(ctx, a.log)
	if err != nil {
		return err
	}
	defer d.close()

	out, closeSinks, err := buildSinks(a.cfg, d, a.log)
	if err != nil {
		return err
	}
	defer closeSinks()

	r, err := buildRunner(a.cfg, d, a.log, out)
	if err != nil {
		return err
	}

	router := runapi.Router(runapi.Options{
		Runner: r,
		Logger: a.log,
		Checks: readinessChecks(d),
	})

	srv := httpserver.NewFromConfig(a.cfg.HTTP, httpserver.WithLogger(a.log))
	if err := srv.Run(ctx, router); err != nil {
		a.log.Error("server stopped", logger.Error(err))
		return err
	}
	return nil
}
