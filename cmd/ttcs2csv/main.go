package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"playstrategy.org/puzzletools/internal/stats"
)

const usageExitCode = 2

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "ttcs2csv",
		Usage:     "Convert tournament time control stats from JSON to CSV",
		ArgsUsage: "input.json output.csv",
		Writer:    stdout,
		ErrWriter: stderr,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				fmt.Fprintf(cmd.Writer, "Usage: %v input.json output.csv\n", cmd.Name)
				return cli.Exit("", usageExitCode)
			}
			input := cmd.Args().Get(0)
			output := cmd.Args().Get(1)
			n, err := stats.ConvertFile(input, output)
			if err != nil {
				return fmt.Errorf("error converting %v: %w", input, err)
			}
			fmt.Fprintf(cmd.Writer, "Wrote %v records to %v\n", n, output)
			return nil
		},
	}
}

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
