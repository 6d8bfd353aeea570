package web

import (
	"fmt"

	"github.com/groovio/go-choreo/pkg/engine"
	"github.com/groovio/go-choreo/pkg/mixer"
	"github.com/groovio/go-choreo/pkg/pattern"
	"github.com/groovio/go-choreo/pkg/physics"
	"github.com/groovio/go-choreo/pkg/protocol"
)

// ApplyControl dispatches one control operation to the mixer. Enum
// values are parsed and rejected here, at the boundary; the engines
// below only ever see valid values.
func ApplyControl(m *mixer.Mixer, cd *protocol.ControlData) error {
	switch cd.Op {
	case protocol.OpSetChannelMode:
		mode, err := mixer.ParseChannelMode(cd.Value)
		if err != nil {
			return err
		}
		return m.SetChannelMode(cd.Channel, mode)

	case protocol.OpSetChannelOpacity:
		return m.SetChannelOpacity(cd.Channel, cd.Opacity)

	case protocol.OpResetChannel:
		return m.ResetChannel(cd.Channel)
	}

	eng, err := m.Engine(cd.Channel)
	if err != nil {
		return err
	}

	switch cd.Op {
	case protocol.OpSetPattern:
		p, err := pattern.Parse(cd.Value)
		if err != nil {
			return err
		}
		return eng.SetPattern(p)

	case protocol.OpSetPhysicsStyle:
		style, err := physics.ParseStyle(cd.Value)
		if err != nil {
			return err
		}
		return eng.SetPhysicsStyle(style)

	case protocol.OpSetEngineMode:
		mode, err := engine.ParseMode(cd.Value)
		if err != nil {
			return err
		}
		return eng.SetMode(mode)

	case protocol.OpSetSequenceMode:
		mode, err := pattern.ParseSequenceMode(cd.Value)
		if err != nil {
			return err
		}
		return eng.SetSequenceMode(mode)

	case protocol.OpSetTrigger:
		return eng.SetTrigger(cd.Value, cd.Held)

	case protocol.OpSetKineticPosition:
		eng.SetKineticPosition(cd.X, cd.Y)
		return nil
	}

	return fmt.Errorf("unknown control op %q", cd.Op)
}
