package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"playstrategy.org/puzzletools/internal/ingest"
	"playstrategy.org/puzzletools/pkg/manifests"
)

var Version string

func main() {
	cliflags := make(map[string]any)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var configFile string

	app := &cli.Command{
		Name:  "puzzlectl",
		Usage: "Import generated puzzle batches and track them in the import manifest",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "Specifed TOML config file",
				Required:    false,
				Destination: &configFile,
				Aliases:     []string{"c"},
				Sources:     cli.EnvVars("PUZZLECTL_CONFIG"),
				Action: func(ctx context.Context, cCtx *cli.Command, v string) error {
					if v == "" {
						return errors.New("config file passed without value")
					}
					if _, err := os.Stat(v); err != nil && os.IsNotExist(err) {
						return errors.New("config file not found")
					} else if err != nil {
						return err
					}
					return nil
				},
			},
			&cli.BoolFlag{
				Name:     "debug",
				Usage:    "Enable debug logging",
				Required: false,
				Action: func(ctx context.Context, cm *cli.Command, b bool) error {
					cliflags["debug"] = b
					return nil
				},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Dump active config",
				Action: func(ctx context.Context, cCtx *cli.Command) error {
					_, c, err := loadConfig(ctx, configFile, cliflags)
					if err != nil {
						return err
					}
					fmt.Println(c)
					return nil
				},
			},
			{
				Name:      "import",
				Usage:     "Download a puzzle batch and import every file into the database",
				ArgsUsage: "variant month generator database-target import-script",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "importer",
						Usage: "Import mechanism: mongosh or mongo",
					},
					&cli.StringFlag{
						Name:  "work-dir",
						Usage: "Directory for downloaded files",
					},
				},
				Action: func(ctx context.Context, cCtx *cli.Command) error {
					args := cCtx.Args().Slice()
					if len(args) != 5 {
						return cli.Exit("usage: puzzlectl import variant month generator database-target import-script", 1)
					}
					batch, err := validateBatch(args[:3])
					if err != nil {
						return cli.Exit(err.Error(), 1)
					}
					if cCtx.IsSet("importer") {
						cliflags["importer"] = cCtx.String("importer")
					}
					if cCtx.IsSet("work-dir") {
						cliflags["work_dir"] = cCtx.String("work-dir")
					}
					k, c, err := loadConfig(ctx, configFile, cliflags)
					if err != nil {
						return err
					}
					logger, closeLog, err := openRunLogger(c)
					if err != nil {
						return err
					}
					defer func() {
						if err := closeLog(); err != nil {
							log.Warn("error closing log file", "err", err)
						}
					}()
					store, err := newStore(ctx, c)
					if err != nil {
						return err
					}
					ms, err := manifests.NewImportManifestStore(store, c.ManifestKey)
					if err != nil {
						return err
					}
					imp, err := newImporter(k, c, args[3], args[4])
					if err != nil {
						return err
					}
					ing, err := ingest.NewIngester(store, ms, imp, c.WorkDir, logger)
					if err != nil {
						return err
					}
					logger.Info("starting import", "batch", batch.String(), "importer", c.Importer)
					report, err := ing.Run(ctx, batch)
					if err != nil {
						logger.Error("import aborted", "err", err)
						return err
					}
					logger.Info("import finished", "result", report.String(), "manifest_updated", report.ManifestUpdated)
					return nil
				},
			},
			{
				Name:      "list",
				Usage:     "List the files of a puzzle batch",
				ArgsUsage: "variant month generator",
				Action: func(ctx context.Context, cCtx *cli.Command) error {
					batch, err := validateBatch(cCtx.Args().Slice())
					if err != nil {
						return cli.Exit(err.Error(), 1)
					}
					_, store, ms, err := setupManifestStore(ctx, configFile, cliflags)
					if err != nil {
						return err
					}
					return listBatch(ctx, store, ms, batch, os.Stdout)
				},
			},
			{
				Name:  "manifest",
				Usage: "Inspect or edit the import manifest",
				Commands: []*cli.Command{
					{
						Name:  "show",
						Usage: "Show imported batches",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:    "format",
								Aliases: []string{"f"},
								Usage:   "Control output format. Supports text,json,yaml,toml",
								Value:   "text",
							},
						},
						Action: func(ctx context.Context, cCtx *cli.Command) error {
							_, _, ms, err := setupManifestStore(ctx, configFile, cliflags)
							if err != nil {
								return err
							}
							m, err := ms.Load(ctx)
							if err != nil {
								return err
							}
							out, err := renderManifest(m, cCtx.String("format"))
							if err != nil {
								return err
							}
							fmt.Println(out)
							return nil
						},
					},
					{
						Name:      "register",
						Usage:     "Record a batch as imported without importing it",
						ArgsUsage: "variant month generator",
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:    "dry-run",
								Aliases: []string{"n"},
								Usage:   "Show the change without saving it",
							},
						},
						Action: func(ctx context.Context, cCtx *cli.Command) error {
							batch, err := validateBatch(cCtx.Args().Slice())
							if err != nil {
								return cli.Exit(err.Error(), 1)
							}
							_, _, ms, err := setupManifestStore(ctx, configFile, cliflags)
							if err != nil {
								return err
							}
							return registerBatch(ctx, ms, batch, cCtx.Bool("dry-run"), os.Stdout)
						},
					},
				},
			},
			{
				Name:  "version",
				Usage: "show version",
				Action: func(_ context.Context, _ *cli.Command) error {
					fmt.Printf("puzzlectl version %v\n", Version)
					return nil
				},
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
