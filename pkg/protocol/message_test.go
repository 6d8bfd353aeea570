package protocol

import (
	"testing"

	"github.com/groovio/go-choreo/pkg/audio"
)

func TestNewMessage(t *testing.T) {
	tests := []struct {
		name    string
		msgType MessageType
		data    interface{}
		wantErr bool
	}{
		{
			name:    "features message",
			msgType: TypeFeatures,
			data:    FeaturesData{Features: audio.Features{Bass: 0.8, BPM: 128, IsBeat: true}},
			wantErr: false,
		},
		{
			name:    "control message",
			msgType: TypeControl,
			data:    ControlData{Channel: 1, Op: OpSetPattern, Value: "groove"},
			wantErr: false,
		},
		{
			name:    "nil data",
			msgType: TypePing,
			data:    nil,
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := NewMessage(tt.msgType, tt.data)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewMessage() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if msg == nil && !tt.wantErr {
				t.Error("NewMessage() returned nil message")
				return
			}
			if msg.Type != tt.msgType {
				t.Errorf("NewMessage() type = %v, want %v", msg.Type, tt.msgType)
			}
			if msg.Timestamp == 0 {
				t.Error("NewMessage() timestamp should be set")
			}
		})
	}
}

func TestFeaturesRoundTrip(t *testing.T) {
	original := FeaturesData{
		Features: audio.Features{
			Bass:   0.7,
			Mid:    0.4,
			High:   0.2,
			Energy: 0.6,
			BPM:    124,
			IsBeat: true,
		},
		DeltaTime: 1.0 / 60,
	}

	msg, err := NewFeaturesMessage(original)
	if err != nil {
		t.Fatalf("NewFeaturesMessage() error = %v", err)
	}

	bytes, err := msg.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}

	parsed, err := ParseMessage(bytes)
	if err != nil {
		t.Fatalf("ParseMessage() error = %v", err)
	}
	if parsed.Type != TypeFeatures {
		t.Errorf("Type = %v, want %v", parsed.Type, TypeFeatures)
	}

	got, err := parsed.GetFeaturesData()
	if err != nil {
		t.Fatalf("GetFeaturesData() error = %v", err)
	}
	if *got != original {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, original)
	}
}

func TestControlRoundTrip(t *testing.T) {
	original := ControlData{
		Channel: 2,
		Op:      OpSetKineticPosition,
		X:       0.25,
		Y:       0.75,
	}

	msg, err := NewControlMessage(original)
	if err != nil {
		t.Fatalf("NewControlMessage() error = %v", err)
	}
	bytes, err := msg.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	parsed, err := ParseMessage(bytes)
	if err != nil {
		t.Fatalf("ParseMessage() error = %v", err)
	}

	got, err := parsed.GetControlData()
	if err != nil {
		t.Fatalf("GetControlData() error = %v", err)
	}
	if *got != original {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, original)
	}
}

func TestParseMessage_Invalid(t *testing.T) {
	if _, err := ParseMessage([]byte("{not json")); err == nil {
		t.Error("ParseMessage should reject malformed JSON")
	}
}
