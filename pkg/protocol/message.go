// Package protocol defines the WebSocket message types between feature
// sources, the choreod server, and render/status subscribers.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/groovio/go-choreo/pkg/audio"
	"github.com/groovio/go-choreo/pkg/mixer"
)

// MessageType identifies the type of WebSocket message
type MessageType string

const (
	// Source → Server messages
	TypeFeatures MessageType = "features" // Analyzed audio features
	TypeControl  MessageType = "control"  // Control surface operation

	// Server → Subscriber messages
	TypeRender MessageType = "render" // Composited layer stack
	TypeStatus MessageType = "status" // Mixer/channel snapshot

	// Bidirectional
	TypePing MessageType = "ping" // Health check
	TypePong MessageType = "pong" // Health check response
)

// Message is the base wrapper for all WebSocket messages
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(msgType MessageType, data interface{}) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// ParseData unmarshals the message data into the provided struct
func (m *Message) ParseData(v interface{}) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

// Bytes returns the JSON-encoded message
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage parses a JSON message from bytes
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	return &msg, nil
}

// =============================================================================
// Source → Server Message Types
// =============================================================================

// FeaturesData carries one tick of analyzed audio from the upstream
// feature source. DeltaTime is informational; the server ticks on its
// own clock.
type FeaturesData struct {
	audio.Features
	DeltaTime float64 `json:"dt,omitempty"`
}

// Control surface operations.
const (
	OpSetPattern         = "set_pattern"
	OpSetPhysicsStyle    = "set_physics_style"
	OpSetEngineMode      = "set_engine_mode"
	OpSetSequenceMode    = "set_sequence_mode"
	OpSetTrigger         = "set_trigger"
	OpSetKineticPosition = "set_kinetic_position"
	OpSetChannelMode     = "set_channel_mode"
	OpSetChannelOpacity  = "set_channel_opacity"
	OpResetChannel       = "reset_channel"
)

// ControlData is one control surface operation aimed at a channel.
// Value carries the enum name for Set* ops; Held, X/Y and Opacity carry
// the operation-specific payloads.
type ControlData struct {
	Channel int     `json:"channel"`
	Op      string  `json:"op"`
	Value   string  `json:"value,omitempty"`
	Held    bool    `json:"held,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`
}

// =============================================================================
// Server → Subscriber Message Types
// =============================================================================

// RenderData carries one composited tick.
type RenderData struct {
	Composite mixer.Composite `json:"composite"`
}

// StatusData carries the mixer snapshot.
type StatusData struct {
	Channels []mixer.ChannelStatus `json:"channels"`
}

// =============================================================================
// Bidirectional Message Types
// =============================================================================

// PingData contains ping information
type PingData struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"ts"`
}

// PongData contains pong response
type PongData struct {
	ID        string `json:"id"`
	PingTS    int64  `json:"ping_ts"`
	PongTS    int64  `json:"pong_ts"`
	LatencyMs int64  `json:"latency_ms"`
}
