package web

import (
	"time"

	contribws "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/groovio/go-choreo/internal/log"
	"github.com/groovio/go-choreo/pkg/protocol"
)

// registerIngest mounts the feature ingest endpoint. Upstream audio
// analyzers connect here and push features + control messages.
func (s *Server) registerIngest(app *fiber.App) {
	app.Get("/ws/features", contribws.New(s.handleFeaturesWS))
}

// handleFeaturesWS runs one feature source connection.
func (s *Server) handleFeaturesWS(c *contribws.Conn) {
	sourceID := uuid.NewString()
	log.Info("feature source connected", "source", sourceID)
	defer log.Info("feature source disconnected", "source", sourceID)

	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			return
		}

		msg, err := protocol.ParseMessage(data)
		if err != nil {
			log.Warn("bad ingest message", "source", sourceID, "err", err)
			continue
		}

		switch msg.Type {
		case protocol.TypeFeatures:
			fd, err := msg.GetFeaturesData()
			if err != nil {
				log.Warn("bad features payload", "source", sourceID, "err", err)
				continue
			}
			s.featuresReceived.Add(1)
			s.runner.Push(fd.Features)

		case protocol.TypeControl:
			cd, err := msg.GetControlData()
			if err != nil {
				log.Warn("bad control payload", "source", sourceID, "err", err)
				continue
			}
			if err := ApplyControl(s.mixer, cd); err != nil {
				log.Warn("control rejected", "source", sourceID, "op", cd.Op, "err", err)
				continue
			}
			s.PublishStatus()

		case protocol.TypePing:
			pd, err := msg.GetPingData()
			if err != nil {
				continue
			}
			pong, err := protocol.NewPongMessage(pd.ID, msg.Timestamp, time.Now().UnixMilli())
			if err != nil {
				continue
			}
			if data, err := pong.Bytes(); err == nil {
				c.WriteMessage(contribws.TextMessage, data)
			}
		}
	}
}
