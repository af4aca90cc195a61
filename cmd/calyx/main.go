package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/calyx-lang/calyx/pkg/checker"
	"github.com/calyx-lang/calyx/pkg/diag"
	"github.com/calyx-lang/calyx/pkg/resolver"
	"github.com/calyx-lang/calyx/pkg/world"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := &cli.Command{
		Name:  "calyx",
		Usage: "The Calyx receiver-resolution checker",
		Commands: []*cli.Command{
			{
				Name:  "check",
				Usage: "Resolve every call site in the given world files and print verdicts",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "path to calyx.toml",
					},
					&cli.IntFlag{
						Name:    "jobs",
						Aliases: []string{"j"},
						Usage:   "maximum units checked concurrently",
					},
					&cli.BoolFlag{
						Name:  "no-color",
						Usage: "disable colored output",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() == 0 {
						return fmt.Errorf("must provide at least one world file as argument")
					}

					logger := slog.Default()

					failed := false
					for _, path := range c.Args().Slice() {
						cfg, err := loadToolConfig(c.String("config"), path)
						if err != nil {
							return err
						}

						if c.IsSet("jobs") {
							cfg.Check.Jobs = int(c.Int("jobs"))
						}
						if c.Bool("no-color") {
							cfg.Check.Color = false
						}

						renderer := diag.NewRenderer(os.Stdout, cfg.Check.Color && diag.ColorEnabled())

						w, err := loadWorld(path)
						if err != nil {
							renderer.Error(err)
							failed = true
							continue
						}

						chk, err := checker.New(logger, checker.Config{Jobs: cfg.Check.Jobs})
						if err != nil {
							return fmt.Errorf("failed to initialize checker: %w", err)
						}

						results, err := chk.Check(ctx, w)
						if err != nil {
							failed = true
						}

						for _, res := range results {
							renderer.Result(res)
						}
					}

					if failed {
						return fmt.Errorf("check failed")
					}

					return nil
				},
			},
			{
				Name:  "validate",
				Usage: "Validate type hierarchies and declaration tables without resolving calls",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "no-color",
						Usage: "disable colored output",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() == 0 {
						return fmt.Errorf("must provide at least one world file as argument")
					}

					renderer := diag.NewRenderer(os.Stdout, !c.Bool("no-color") && diag.ColorEnabled())

					errs := resolver.NewErrorSet()
					for _, path := range c.Args().Slice() {
						_, err := loadWorld(path)
						if err != nil {
							renderer.Error(err)
							errs.Add(err)
						}
					}

					if err := errs.Defer(nil); err != nil {
						return fmt.Errorf("validation failed")
					}

					return nil
				},
			},
		},
	}

	err := cmd.Run(ctx, os.Args)
	if err != nil {
		log.Fatalln(err)
	}
}

func loadWorld(path string) (*world.World, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return world.Load(f, path)
}
