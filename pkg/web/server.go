// Package web exposes the choreod control surface: REST control ops,
// websocket feature ingest, and render/status broadcast streams.
package web

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"

	"github.com/groovio/go-choreo/internal/log"
	"github.com/groovio/go-choreo/pkg/hub"
	"github.com/groovio/go-choreo/pkg/mixer"
	"github.com/groovio/go-choreo/pkg/protocol"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// OfferHandler answers a WebRTC SDP offer; wired by cmd when the RTC
// adapter is enabled.
type OfferHandler interface {
	HandleOffer(offerSDP string) (answerSDP string, err error)
}

// Server is the choreod HTTP/WebSocket server.
type Server struct {
	app  *fiber.App
	port string

	mixer  *mixer.Mixer
	runner *mixer.Runner

	renderHub *hub.Hub
	statusHub *hub.Hub

	rtc OfferHandler

	startedAt        time.Time
	featuresReceived atomic.Uint64
	framesPublished  atomic.Uint64
}

// NewServer creates the server and registers all routes.
func NewServer(port string, m *mixer.Mixer, r *mixer.Runner) *Server {
	s := &Server{
		port:      port,
		mixer:     m,
		runner:    r,
		renderHub: hub.New("render"),
		statusHub: hub.New("status"),
		startedAt: time.Now(),
	}

	app := fiber.New(fiber.Config{
		AppName:               "choreod",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/health", s.handleHealth)
	app.Get("/metrics", s.handleMetrics)

	api := app.Group("/api")
	api.Get("/channels", s.handleChannels)
	api.Post("/channels/:id/control", s.handleControl)
	api.Post("/rtc/offer", s.handleRTCOffer)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/render", websocket.New(s.handleRenderWS))
	app.Get("/ws/status", websocket.New(s.handleStatusWS))
	s.registerIngest(app)

	s.app = app
	return s
}

// SetOfferHandler attaches the WebRTC signaling backend.
func (s *Server) SetOfferHandler(h OfferHandler) { s.rtc = h }

// Start runs the hubs and listens. Blocks until shutdown.
func (s *Server) Start() error {
	go s.renderHub.Run()
	go s.statusHub.Run()
	log.Info("control surface listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// PublishComposite broadcasts one composited tick to the render stream.
// Wire it as the runner's frame callback.
func (s *Server) PublishComposite(c mixer.Composite) {
	s.framesPublished.Add(1)
	msg, err := protocol.NewRenderMessage(protocol.RenderData{Composite: c})
	if err != nil {
		return
	}
	data, err := msg.Bytes()
	if err != nil {
		return
	}
	s.renderHub.Broadcast(data)
}

// PublishStatus broadcasts a mixer snapshot to the status stream.
func (s *Server) PublishStatus() {
	msg, err := protocol.NewStatusMessage(protocol.StatusData{Channels: s.mixer.Status()})
	if err != nil {
		return
	}
	data, err := msg.Bytes()
	if err != nil {
		return
	}
	s.statusHub.Broadcast(data)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": Version,
		"uptime":  time.Since(s.startedAt).Round(time.Second).String(),
	})
}

func (s *Server) handleMetrics(c *fiber.Ctx) error {
	return c.SendString(fmt.Sprintf(`# HELP choreo_features_received Total feature ticks received
# TYPE choreo_features_received counter
choreo_features_received %d

# HELP choreo_frames_published Total composited frames published
# TYPE choreo_frames_published counter
choreo_frames_published %d

# HELP choreo_render_clients Connected render stream clients
# TYPE choreo_render_clients gauge
choreo_render_clients %d

# HELP choreo_status_clients Connected status stream clients
# TYPE choreo_status_clients gauge
choreo_status_clients %d
`, s.featuresReceived.Load(), s.framesPublished.Load(),
		s.renderHub.ClientCount(), s.statusHub.ClientCount()))
}

func (s *Server) handleChannels(c *fiber.Ctx) error {
	return c.JSON(s.mixer.Status())
}

func (s *Server) handleControl(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "bad channel id")
	}

	var cd protocol.ControlData
	if err := c.BodyParser(&cd); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "bad control body")
	}
	cd.Channel = id

	if err := ApplyControl(s.mixer, &cd); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	s.PublishStatus()
	return c.JSON(fiber.Map{"ok": true})
}

func (s *Server) handleRTCOffer(c *fiber.Ctx) error {
	if s.rtc == nil {
		return fiber.NewError(fiber.StatusNotImplemented, "rtc disabled")
	}

	var body struct {
		SDP string `json:"sdp"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "bad offer body")
	}

	answer, err := s.rtc.HandleOffer(body.SDP)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"sdp": answer})
}

func (s *Server) handleRenderWS(c *websocket.Conn) {
	hub.NewClient(s.renderHub, c).Run()
}

func (s *Server) handleStatusWS(c *websocket.Conn) {
	hub.NewClient(s.statusHub, c).Run()
}
