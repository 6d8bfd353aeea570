// Feed - synthetic feature source for a running choreod
//
// Dials the server's feature ingest socket and pushes a beat-locked
// synthetic feature stream, standing in for a real audio analyzer.
// Can also rotate channel 0 through the selection patterns over REST
// and subscribe to the render stream to show what comes back.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"github.com/groovio/go-choreo/internal/httpc"
	"github.com/groovio/go-choreo/pkg/audio"
	"github.com/groovio/go-choreo/pkg/pattern"
	"github.com/groovio/go-choreo/pkg/protocol"
)

var (
	host   = flag.String("host", "localhost:8080", "choreod host:port")
	bpm    = flag.Float64("bpm", 128, "tempo of the synthesized beat")
	rate   = flag.Int("rate", 60, "feature pushes per second")
	rotate = flag.Duration("rotate", 0, "rotate channel 0 patterns at this interval (0 disables)")
	watch  = flag.Bool("watch", false, "subscribe to the render stream and print frames")
)

func main() {
	flag.Parse()

	fmt.Println("📡 go-choreo feed")
	fmt.Printf("Target: %s  BPM: %.0f\n\n", *host, *bpm)

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	ws, _, err := dialer.Dial(fmt.Sprintf("ws://%s/ws/features", *host), nil)
	if err != nil {
		fmt.Printf("❌ connect: %v\n", err)
		os.Exit(1)
	}
	defer ws.Close()
	fmt.Println("Connected, streaming... (Ctrl+C to stop)")

	if *watch {
		go watchRender(dialer)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	interval := time.Second / time.Duration(*rate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var rotateC <-chan time.Time
	if *rotate > 0 {
		rt := time.NewTicker(*rotate)
		defer rt.Stop()
		rotateC = rt.C
	}
	rotation := pattern.All()
	rotIdx := 0

	beatPeriod := 60.0 / *bpm
	clock := 0.0
	nextBeat := 0.0
	sent := 0

	for {
		select {
		case <-sigChan:
			fmt.Printf("\n👋 Sent %d feature ticks\n", sent)
			return

		case <-rotateC:
			pat := rotation[rotIdx%len(rotation)]
			rotIdx++
			if err := setPattern(*host, pat.String()); err != nil {
				fmt.Printf("\n❌ set pattern: %v\n", err)
				continue
			}
			fmt.Printf("\n🎚  pattern -> %s\n", pat)

		case <-ticker.C:
			f := synthFeatures(clock, beatPeriod, *bpm)
			if clock >= nextBeat {
				f.IsBeat = true
				nextBeat += beatPeriod
			}
			clock += interval.Seconds()

			if err := sendFeatures(ws, f, interval.Seconds()); err != nil {
				fmt.Printf("\n❌ write: %v\n", err)
				os.Exit(1)
			}
			sent++
			if sent%(*rate) == 0 {
				fmt.Printf("\r%d ticks, clock %.1fs ", sent, clock)
			}
		}
	}
}

func sendFeatures(ws *websocket.Conn, f audio.Features, dt float64) error {
	msg, err := protocol.NewFeaturesMessage(protocol.FeaturesData{
		Features:  f,
		DeltaTime: dt,
	})
	if err != nil {
		return err
	}
	data, err := msg.Bytes()
	if err != nil {
		return err
	}
	return ws.WriteMessage(websocket.TextMessage, data)
}

// synthFeatures fakes an analyzer: bass spikes on the beat and decays,
// mids and highs wander, energy arcs slowly across the phrase.
func synthFeatures(clock, beatPeriod, tempo float64) audio.Features {
	sinceBeat := math.Mod(clock, beatPeriod)
	bass := math.Exp(-sinceBeat * 6)

	return audio.Features{
		Bass:   0.3 + 0.7*bass,
		Mid:    0.4 + 0.3*math.Sin(clock*0.7),
		High:   0.3 + 0.3*math.Sin(clock*1.3+1),
		Energy: 0.5 + 0.4*math.Sin(clock*2*math.Pi/30),
		BPM:    tempo,
	}
}

// watchRender prints the composited frames the server sends back.
func watchRender(dialer websocket.Dialer) {
	ws, _, err := dialer.Dial(fmt.Sprintf("ws://%s/ws/render", *host), nil)
	if err != nil {
		fmt.Printf("❌ render subscribe: %v\n", err)
		return
	}
	defer ws.Close()

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			return
		}
		msg, err := protocol.ParseMessage(data)
		if err != nil || msg.Type != protocol.TypeRender {
			continue
		}
		rd, err := msg.GetRenderData()
		if err != nil || len(rd.Composite.Layers) == 0 {
			continue
		}
		l := rd.Composite.Layers[0]
		fmt.Printf("\n🖼  ch%d %s -> %s blend %.2f\n",
			l.Channel, l.Frame.SourcePose, l.Frame.TargetPose, l.Frame.Blend)
	}
}

func setPattern(host, pat string) error {
	body := []byte(fmt.Sprintf(`{"op":%q,"value":%q}`, protocol.OpSetPattern, pat))
	resp, err := httpc.Post(
		fmt.Sprintf("http://%s/api/channels/0/control", host),
		"application/json", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}
