package main

import (
	"context"
	"errors"
	"time"

	"github.com/urfave/cli/v3"
)

func demoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "Emit one of every kind of entry",
		Action: func(ctx context.Context, c *cli.Command) error {
			logger, err := buildLogger(c)
			if err != nil {
				return err
			}
			defer logger.Shutdown(ctx)

			logger.Info("demo started with sinks %o", logger.Modes())
			logger.Group("sprites")
			logger.Table(map[string]map[string]any{
				"idle": {"frames": 4, "loop": true},
				"walk": {"frames": 8, "loop": true},
				"jump": {"frames": 6, "loop": false},
			})
			for range 3 {
				logger.Count("frame")
			}
			logger.Time("render")
			time.Sleep(15 * time.Millisecond)
			logger.TimeLog("render", "halfway")
			time.Sleep(15 * time.Millisecond)
			logger.TimeEnd("render")
			logger.GroupEnd()

			logger.Debug("debug details %j", map[string]int{"width": 64, "height": 64})
			logger.Verbose("verbose output only appears with --debug")
			logger.Dir(struct{ Name string }{Name: "pet"})
			logger.Warn("low on %s", "treats")
			logger.Assert(len(logger.Modes()) > 8, "unexpected sink count %d", len(logger.Modes()))
			logger.Error(errors.New("demo failure"))

			return logger.Flush(ctx)
		},
	}
}
