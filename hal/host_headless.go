//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"os"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled  bool
	Hz       int
	Ticks    uint64
	Snapshot string // PNG path for the last frame; empty to skip
}

// RunHeadless drives the application without a window. Each tick advances by
// exactly 1/Hz seconds regardless of wall-clock jitter.
func RunHeadless(ctx context.Context, host HostConfig, newApp func(HAL) (func() error, error), cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	host = host.withDefaults()
	h := newHostHAL(host, fixedTime(1/float64(cfg.Hz)))
	step, err := newApp(h)
	if err != nil {
		return err
	}

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			h.display.beginFrame()
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return saveSnapshot(cfg.Snapshot, h.display, host)
			}
		}
	}
}

func saveSnapshot(path string, d *hostDisplay, host HostConfig) (err error) {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return writeSnapshot(f, d, host.Background)
}
