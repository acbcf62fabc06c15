package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lixenwraith/conlog"
)

func dumpCommand() *cli.Command {
	return &cli.Command{
		Name:  "dump",
		Usage: "Print entries stored by the file or database sink",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "source",
				Usage: "Where to read from: file or database",
				Value: "file",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Show only the last N entries (0 for all)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			registry, err := conlog.NewRegistry(cfg)
			if err != nil {
				return err
			}
			defer registry.Close(ctx)

			var entries []conlog.Entry
			switch c.String("source") {
			case "file":
				entries, err = readFile(registry.FilePath())
			case "database", "db":
				entries, err = conlog.ReadDatabaseEntries(ctx, registry.DatabasePath())
			default:
				return fmt.Errorf("unknown source %q (use file or database)", c.String("source"))
			}
			if err != nil {
				return err
			}

			if limit := c.Int("limit"); limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}
			for _, e := range entries {
				fmt.Println(conlog.FormatLine(e))
			}
			return nil
		},
	}
}

func readFile(path string) ([]conlog.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()
	return conlog.ReadFileEntries(f)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
