// Package rtc pushes render frames to browsers over WebRTC data
// channels. Signaling rides the HTTP API; once a peer's channel opens
// it receives the same JSON composites as the /ws/render hub, but with
// the lower latency of an unordered unreliable transport.
package rtc

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/pion/webrtc/v3"

	"github.com/groovio/go-choreo/internal/log"
	"github.com/groovio/go-choreo/pkg/mixer"
	"github.com/groovio/go-choreo/pkg/protocol"
)

const renderChannelLabel = "render"

type peer struct {
	id string
	pc *webrtc.PeerConnection

	mu   sync.Mutex
	dc   *webrtc.DataChannel
	open bool
}

// Broadcaster negotiates peer connections and fans render frames out to
// every open data channel.
type Broadcaster struct {
	api *webrtc.API

	mu    sync.Mutex
	peers map[string]*peer
}

// NewBroadcaster builds a broadcaster with the default ICE settings.
func NewBroadcaster() *Broadcaster {
	se := webrtc.SettingEngine{}
	return &Broadcaster{
		api:   webrtc.NewAPI(webrtc.WithSettingEngine(se)),
		peers: make(map[string]*peer),
	}
}

// PeerCount returns the number of negotiated peer connections.
func (b *Broadcaster) PeerCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.peers)
}

// HandleOffer answers a browser SDP offer and returns the local answer
// once ICE gathering completes. The peer is tracked until its connection
// fails or closes.
func (b *Broadcaster) HandleOffer(offerSDP string) (string, error) {
	pc, err := b.api.NewPeerConnection(webrtc.Configuration{})
	if err != nil {
		return "", fmt.Errorf("create peer connection: %w", err)
	}

	p := &peer{id: uuid.NewString(), pc: pc}

	pc.OnDataChannel(func(dc *webrtc.DataChannel) {
		if dc.Label() != renderChannelLabel {
			return
		}
		dc.OnOpen(func() {
			p.mu.Lock()
			p.dc = dc
			p.open = true
			p.mu.Unlock()
			log.Info("rtc data channel open", "peer", p.id)
		})
		dc.OnClose(func() {
			p.mu.Lock()
			p.open = false
			p.mu.Unlock()
		})
	})

	pc.OnConnectionStateChange(func(s webrtc.PeerConnectionState) {
		switch s {
		case webrtc.PeerConnectionStateFailed,
			webrtc.PeerConnectionStateClosed,
			webrtc.PeerConnectionStateDisconnected:
			b.removePeer(p.id)
			pc.Close()
			log.Info("rtc peer disconnected", "peer", p.id, "remaining", b.PeerCount())
		}
	})

	offer := webrtc.SessionDescription{Type: webrtc.SDPTypeOffer, SDP: offerSDP}
	if err := pc.SetRemoteDescription(offer); err != nil {
		pc.Close()
		return "", fmt.Errorf("set remote description: %w", err)
	}

	answer, err := pc.CreateAnswer(nil)
	if err != nil {
		pc.Close()
		return "", fmt.Errorf("create answer: %w", err)
	}
	if err := pc.SetLocalDescription(answer); err != nil {
		pc.Close()
		return "", fmt.Errorf("set local description: %w", err)
	}

	// Non-trickle signaling: wait for the full candidate set so the
	// answer SDP is complete.
	<-webrtc.GatheringCompletePromise(pc)

	b.mu.Lock()
	b.peers[p.id] = p
	b.mu.Unlock()
	log.Info("rtc peer connected", "peer", p.id, "total", b.PeerCount())

	return pc.LocalDescription().SDP, nil
}

// SendComposite pushes one mixed frame to every open data channel.
// Peers whose channel errors are dropped on the spot.
func (b *Broadcaster) SendComposite(c mixer.Composite) {
	msg, err := protocol.NewRenderMessage(protocol.RenderData{Composite: c})
	if err != nil {
		log.Error("rtc render encode failed", "error", err)
		return
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Error("rtc render marshal failed", "error", err)
		return
	}

	b.mu.Lock()
	targets := make([]*peer, 0, len(b.peers))
	for _, p := range b.peers {
		targets = append(targets, p)
	}
	b.mu.Unlock()

	for _, p := range targets {
		p.mu.Lock()
		dc, open := p.dc, p.open
		p.mu.Unlock()
		if !open {
			continue
		}
		if err := dc.SendText(string(payload)); err != nil {
			log.Warn("rtc send failed, dropping peer", "peer", p.id, "error", err)
			b.removePeer(p.id)
			p.pc.Close()
		}
	}
}

// Close tears down every peer connection.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	peers := b.peers
	b.peers = make(map[string]*peer)
	b.mu.Unlock()
	for _, p := range peers {
		p.pc.Close()
	}
}

func (b *Broadcaster) removePeer(id string) {
	b.mu.Lock()
	delete(b.peers, id)
	b.mu.Unlock()
}
