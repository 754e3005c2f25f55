// Command skillet is Skillet's CLI: evaluate one-off expressions, run
// an interactive REPL, or serve the TCP/HTTP front ends — grounded on
// the teacher's cmd/hey/main.go CLI shape
// (github.com/urfave/cli/v3 with per-mode subcommands/flags).
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/skillet-run/skillet"
	"github.com/skillet-run/skillet/config"
	"github.com/skillet-run/skillet/pkg/server"
	"github.com/skillet-run/skillet/pkg/server/httpapi"
	"github.com/skillet-run/skillet/pkg/server/pool"
	"github.com/skillet-run/skillet/version"
)

func main() {
	app := &cli.Command{
		Name:  "skillet",
		Usage: "an embeddable expression engine",
		Commands: []*cli.Command{
			evalCommand,
			replCommand,
			serveCommand,
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "version",
				Usage: "print the version and exit",
				Action: func(ctx context.Context, cmd *cli.Command, _ bool) error {
					fmt.Println(version.Version())
					os.Exit(0)
					return nil
				},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() > 0 {
				return evalAction(ctx, cmd)
			}
			code, err := io.ReadAll(os.Stdin)
			if err != nil {
				return err
			}
			return runExpression(string(code))
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "skillet: %v\n", err)
		os.Exit(1)
	}
}

var evalCommand = &cli.Command{
	Name:      "eval",
	Usage:     "evaluate a single expression",
	ArgsUsage: "<expression>",
	Action:    evalAction,
}

func evalAction(ctx context.Context, cmd *cli.Command) error {
	expr := cmd.Args().First()
	if expr == "" {
		return fmt.Errorf("eval: expected an expression argument")
	}
	return runExpression(expr)
}

func runExpression(expr string) error {
	engine, err := skillet.New(config.Default())
	if err != nil {
		return err
	}
	v, err := engine.Evaluate(expr, nil)
	if err != nil {
		return err
	}
	fmt.Println(v.ToString())
	return nil
}

var replCommand = &cli.Command{
	Name:   "repl",
	Usage:  "start an interactive expression shell",
	Action: func(ctx context.Context, cmd *cli.Command) error { return runREPL() },
}

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "run the TCP and HTTP evaluation servers",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "tcp-addr", Value: ""},
		&cli.StringFlag{Name: "http-addr", Value: ""},
		&cli.StringFlag{Name: "config", Value: ""},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		return runServe(cmd.String("config"), cmd.String("tcp-addr"), cmd.String("http-addr"))
	},
}

func runServe(configPath, tcpAddr, httpAddr string) error {
	cfg, err := config.New(configPath)
	if err != nil {
		return err
	}
	if tcpAddr != "" {
		cfg.ServerAddr = tcpAddr
	}
	if httpAddr != "" {
		cfg.HTTPAddr = httpAddr
	}

	engine, err := skillet.New(cfg)
	if err != nil {
		return err
	}

	p := pool.New(cfg.WorkerPoolSize, cfg.WorkerQueueCap)
	p.Start()
	defer p.Stop()

	srv := server.New(cfg.ServerAddr, engine, p)
	if err := srv.Start(); err != nil {
		return err
	}
	defer srv.Stop()

	handler := httpapi.New(engine, cfg.AdminAuthToken)
	fmt.Printf("skillet: HTTP API listening on %s\n", cfg.HTTPAddr)
	return http.ListenAndServe(cfg.HTTPAddr, handler)
}
