// choreod: choreography mixing server
// Ingests audio features over WebSocket, runs the four-channel mixer on
// a fixed clock, and streams composited render frames to visual clients.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/groovio/go-choreo/internal/config"
	"github.com/groovio/go-choreo/internal/log"
	"github.com/groovio/go-choreo/pkg/frames"
	"github.com/groovio/go-choreo/pkg/mixer"
	"github.com/groovio/go-choreo/pkg/pattern"
	"github.com/groovio/go-choreo/pkg/physics"
	"github.com/groovio/go-choreo/pkg/rtc"
	"github.com/groovio/go-choreo/pkg/web"
)

var (
	port      = flag.Int("port", 0, "HTTP server port (overrides CHOREO_PORT)")
	seed      = flag.Int64("seed", 0, "RNG seed, 0 means time-based")
	tickRate  = flag.Int("tick-rate", 0, "render ticks per second (overrides CHOREO_TICK_RATE)")
	preset    = flag.String("preset", "", "preset YAML file (overrides CHOREO_PRESET)")
	framesDir = flag.String("frames", "", "frame manifest file or directory")
	enableRTC = flag.Bool("rtc", true, "serve render frames over WebRTC data channels")
)

func main() {
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Port = *port
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *tickRate != 0 {
		cfg.TickRate = *tickRate
	}
	if *preset != "" {
		cfg.PresetPath = *preset
	}

	log.Init(cfg.LogLevel)

	var ps *config.Preset
	if cfg.PresetPath != "" {
		p, err := config.LoadPreset(cfg.PresetPath)
		if err != nil {
			log.Error("preset load failed", "path", cfg.PresetPath, "error", err)
			os.Exit(1)
		}
		ps = p
		if ps.Seed != 0 && cfg.Seed == 0 {
			cfg.Seed = ps.Seed
		}
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := mixer.New(uint64(cfg.Seed))

	dir := *framesDir
	if dir == "" && ps != nil {
		dir = ps.FramesDir
	}
	fs, err := loadFrames(dir)
	if err != nil {
		log.Error("frame load failed", "error", err)
		os.Exit(1)
	}
	pool, err := frames.NewPool(fs)
	if err != nil {
		log.Error("frame pool build failed", "error", err)
		os.Exit(1)
	}
	m.SetPoolAll(pool)

	if ps != nil {
		if err := applyPreset(m, ps); err != nil {
			log.Error("preset apply failed", "error", err)
			os.Exit(1)
		}
	}

	var broadcaster *rtc.Broadcaster
	if *enableRTC {
		broadcaster = rtc.NewBroadcaster()
	}

	var server *web.Server
	runner := mixer.NewRunner(m, cfg.TickRate, func(c mixer.Composite) {
		server.PublishComposite(c)
		if broadcaster != nil {
			broadcaster.SendComposite(c)
		}
	})
	server = web.NewServer(strconv.Itoa(cfg.Port), m, runner)
	if broadcaster != nil {
		server.SetOfferHandler(broadcaster)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return runner.Run(ctx)
	})
	g.Go(func() error {
		return server.Start()
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		if broadcaster != nil {
			broadcaster.Close()
		}
		return server.Shutdown()
	})

	log.Info("choreod started",
		"port", cfg.Port, "tick_rate", cfg.TickRate, "seed", cfg.Seed)

	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Error("exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("goodbye")
}

// loadFrames reads a manifest file or directory, falling back to the
// built-in demo set when no path is configured.
func loadFrames(path string) ([]frames.Frame, error) {
	if path == "" {
		log.Info("no frame manifest configured, using demo set")
		return frames.DemoSet(), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("frames path: %w", err)
	}
	if info.IsDir() {
		return frames.LoadDirectory(path)
	}
	return frames.LoadFile(path)
}

func applyPreset(m *mixer.Mixer, p *config.Preset) error {
	if p.PhysicsStyle != "" {
		style, err := physics.ParseStyle(p.PhysicsStyle)
		if err != nil {
			return err
		}
		for i := 0; i < mixer.NumChannels; i++ {
			eng, _ := m.Engine(i)
			if err := eng.SetPhysicsStyle(style); err != nil {
				return err
			}
		}
	}

	for _, ch := range p.Channels {
		if ch.Mode != "" {
			mode, err := mixer.ParseChannelMode(ch.Mode)
			if err != nil {
				return err
			}
			if err := m.SetChannelMode(ch.ID, mode); err != nil {
				return err
			}
		}
		if ch.Opacity > 0 {
			if err := m.SetChannelOpacity(ch.ID, ch.Opacity); err != nil {
				return err
			}
		}
		if ch.Pattern != "" {
			pat, err := pattern.Parse(ch.Pattern)
			if err != nil {
				return err
			}
			eng, err := m.Engine(ch.ID)
			if err != nil {
				return err
			}
			if err := eng.SetPattern(pat); err != nil {
				return err
			}
		}
	}
	return nil
}
