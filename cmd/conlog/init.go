package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/lixenwraith/conlog"
)

func initCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write the effective configuration to the config file",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing file",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.String("config")
			if !c.Bool("force") && fileExists(path) {
				return fmt.Errorf("config file %s already exists, use --force to overwrite", path)
			}

			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if err := conlog.SaveConfig(cfg, path); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	}
}
