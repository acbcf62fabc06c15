package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lixenwraith/conlog"
)

func main() {
	app := &cli.Command{
		Name:  "conlog",
		Usage: "Exercise and inspect conlog sinks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file path",
				Value: "conlog.toml",
			},
			&cli.StringFlag{
				Name:  "modes",
				Usage: "Comma separated sinks: console, file, database, default",
			},
			&cli.StringFlag{
				Name:  "dir",
				Usage: "Log directory (default is the platform log directory)",
			},
			&cli.DurationFlag{
				Name:  "flush-interval",
				Usage: "Debounce window for buffered sinks",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Record verbose and dir output",
			},
			&cli.StringSliceFlag{
				Name:  "set",
				Usage: "Override a configuration key, as key=value",
			},
		},
		Commands: []*cli.Command{
			initCommand(),
			demoCommand(),
			stressCommand(),
			dumpCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadConfig reads the config file and layers the global flags on top
func loadConfig(c *cli.Command) (*conlog.Config, error) {
	cfg, err := conlog.NewConfigFromFile(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	overrides := c.StringSlice("set")
	if c.IsSet("modes") {
		overrides = append(overrides, "modes="+c.String("modes"))
	}
	if c.IsSet("dir") {
		overrides = append(overrides, "directory="+c.String("dir"))
	}
	if c.IsSet("flush-interval") {
		overrides = append(overrides, fmt.Sprintf("flush_interval_ms=%d", c.Duration("flush-interval").Milliseconds()))
	}
	if c.IsSet("debug") {
		overrides = append(overrides, fmt.Sprintf("debug=%t", c.Bool("debug")))
	}
	if len(overrides) == 0 {
		return cfg, nil
	}

	cfg, err = cfg.ApplyOverride(overrides...)
	if err != nil {
		return nil, fmt.Errorf("applying overrides: %w", err)
	}
	return cfg, nil
}

func buildLogger(c *cli.Command) (*conlog.Logger, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	return conlog.NewBuilder().FromConfig(cfg).Build()
}
