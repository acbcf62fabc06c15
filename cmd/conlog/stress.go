package main

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/lixenwraith/conlog"
)

const maxMessageSize = 512

func stressCommand() *cli.Command {
	return &cli.Command{
		Name:  "stress",
		Usage: "Log many entries from concurrent workers and report sink statistics",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "entries",
				Usage: "Entries per worker",
				Value: 1000,
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent workers",
				Value: 16,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger, err := buildLogger(c)
			if err != nil {
				return err
			}
			defer logger.Shutdown(ctx)

			workers, entries := c.Int("workers"), c.Int("entries")
			start := time.Now()

			var wg sync.WaitGroup
			for w := range workers {
				wg.Add(1)
				go func() {
					defer wg.Done()
					rng := rand.New(rand.NewSource(int64(w)))
					for i := range entries {
						msg := generateRandomMessage(rng, rng.Intn(maxMessageSize)+1)
						switch i % 4 {
						case 0:
							logger.Debug("worker %d: %s", w, msg)
						case 1:
							logger.Info("worker %d: %s", w, msg)
						case 2:
							logger.Warn("worker %d: %s", w, msg)
						default:
							logger.Count(fmt.Sprintf("worker-%d", w))
						}
					}
				}()
			}
			wg.Wait()

			if err := logger.Flush(ctx); err != nil {
				return fmt.Errorf("flushing: %w", err)
			}

			elapsed := time.Since(start)
			total := workers * entries
			fmt.Printf("Logged %d entries in %v (%.0f/s)\n", total, elapsed, float64(total)/elapsed.Seconds())
			printStats(logger.Stats())
			return nil
		},
	}
}

func generateRandomMessage(rng *rand.Rand, size int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
	var sb strings.Builder
	sb.Grow(size)
	for range size {
		sb.WriteByte(chars[rng.Intn(len(chars))])
	}
	return sb.String()
}

func printStats(stats []conlog.Stats) {
	if len(stats) == 0 {
		fmt.Println("No buffered sinks")
		return
	}
	fmt.Printf("%-10s %8s %8s %8s %10s %8s\n", "SINK", "PENDING", "FLUSHES", "FAILED", "WRITTEN", "DROPPED")
	for _, s := range stats {
		fmt.Printf("%-10s %8d %8d %8d %10d %8d\n", s.Mode, s.Pending, s.Flushes, s.FailedFlushes, s.EntriesWritten, s.DroppedEntries)
	}
}
