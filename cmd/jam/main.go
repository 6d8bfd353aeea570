// Jam - offline choreography demo
//
// Runs the mixer against a synthesized beat-locked feature stream and
// prints the composited render frames. No server, no audio input; handy
// for eyeballing pattern behavior at a terminal.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/groovio/go-choreo/pkg/audio"
	"github.com/groovio/go-choreo/pkg/frames"
	"github.com/groovio/go-choreo/pkg/mixer"
	"github.com/groovio/go-choreo/pkg/pattern"
)

var (
	bpm      = flag.Float64("bpm", 128, "tempo of the synthesized beat")
	seed     = flag.Uint64("seed", 42, "RNG seed")
	duration = flag.Duration("duration", 0, "stop after this long (0 runs forever)")
)

const tickRate = 60

func main() {
	flag.Parse()

	fmt.Println("🎛  go-choreo jam")
	fmt.Println("================")
	fmt.Printf("BPM: %.0f  seed: %d\n\n", *bpm, *seed)

	m := mixer.New(*seed)
	pool, err := frames.NewPool(frames.DemoSet())
	if err != nil {
		fmt.Printf("demo pool: %v\n", err)
		os.Exit(1)
	}
	m.SetPoolAll(pool)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Rotate the channel 0 pattern each bar so the demo shows off
	// more than one selection style.
	rotation := []pattern.Pattern{
		pattern.PingPong, pattern.Groove, pattern.BuildDrop,
		pattern.Stutter, pattern.Chaos, pattern.Minimal,
	}

	dt := 1.0 / tickRate
	beatPeriod := 60.0 / *bpm
	clock := 0.0
	nextBeat := 0.0
	lastBar := -1

	start := time.Now()
	ticker := time.NewTicker(time.Second / tickRate)
	defer ticker.Stop()

	for {
		select {
		case <-sigChan:
			fmt.Println("\n\n👋 Done jamming")
			return
		case <-ticker.C:
		}
		if *duration > 0 && time.Since(start) > *duration {
			fmt.Println("\n\n👋 Done jamming")
			return
		}

		f := synthFeatures(clock, beatPeriod, *bpm)
		if clock >= nextBeat {
			f.IsBeat = true
			nextBeat += beatPeriod
		}

		composite := m.Tick(f, dt)
		clock += dt

		eng, _ := m.Engine(0)
		bar := eng.Tracker().BarCount()
		if bar != lastBar {
			lastBar = bar
			pat := rotation[bar%len(rotation)]
			eng.SetPattern(pat)
			fmt.Printf("\n🎵 bar %d: %s\n", bar, pat)
		}

		if f.IsBeat {
			printBeat(eng.Tracker().BeatInBar(), composite)
		}
	}
}

// synthFeatures fakes an analyzer: bass spikes on the beat and decays,
// mids and highs wander on slow sines, energy follows a phrase arc.
func synthFeatures(clock, beatPeriod, tempo float64) audio.Features {
	sinceBeat := math.Mod(clock, beatPeriod)
	bass := math.Exp(-sinceBeat * 6)
	phraseArc := 0.5 + 0.4*math.Sin(clock*2*math.Pi/30)

	return audio.Features{
		Bass:   0.3 + 0.7*bass,
		Mid:    0.4 + 0.3*math.Sin(clock*0.7),
		High:   0.3 + 0.3*math.Sin(clock*1.3+1),
		Energy: phraseArc,
		BPM:    tempo,
	}
}

func printBeat(beatInBar int, c mixer.Composite) {
	if len(c.Layers) == 0 {
		return
	}
	l := c.Layers[0]
	marker := " "
	if beatInBar == 0 {
		marker = "|"
	}
	fmt.Printf("%s beat %2d  %-14s -> %-14s  blend %.2f  %s\n",
		marker, beatInBar,
		l.Frame.SourcePose, l.Frame.TargetPose,
		l.Frame.Blend, l.Frame.TransitionMode)
}
