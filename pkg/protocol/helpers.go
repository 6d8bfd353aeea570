package protocol

// Helper constructors and extractors for the message types.

// NewFeaturesMessage wraps one tick of analyzed audio.
func NewFeaturesMessage(data FeaturesData) (*Message, error) {
	return NewMessage(TypeFeatures, data)
}

// NewControlMessage wraps one control operation.
func NewControlMessage(data ControlData) (*Message, error) {
	return NewMessage(TypeControl, data)
}

// NewRenderMessage wraps one composited tick.
func NewRenderMessage(data RenderData) (*Message, error) {
	return NewMessage(TypeRender, data)
}

// NewStatusMessage wraps a mixer snapshot.
func NewStatusMessage(data StatusData) (*Message, error) {
	return NewMessage(TypeStatus, data)
}

// NewPingMessage creates a ping message
func NewPingMessage(id string) (*Message, error) {
	return NewMessage(TypePing, PingData{ID: id})
}

// NewPongMessage creates a pong response message
func NewPongMessage(id string, pingTS, pongTS int64) (*Message, error) {
	return NewMessage(TypePong, PongData{
		ID:        id,
		PingTS:    pingTS,
		PongTS:    pongTS,
		LatencyMs: pongTS - pingTS,
	})
}

// GetFeaturesData extracts features data from a message
func (m *Message) GetFeaturesData() (*FeaturesData, error) {
	var data FeaturesData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetControlData extracts a control operation from a message
func (m *Message) GetControlData() (*ControlData, error) {
	var data ControlData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetRenderData extracts render data from a message
func (m *Message) GetRenderData() (*RenderData, error) {
	var data RenderData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetStatusData extracts status data from a message
func (m *Message) GetStatusData() (*StatusData, error) {
	var data StatusData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetPingData extracts ping data from a message
func (m *Message) GetPingData() (*PingData, error) {
	var data PingData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}
