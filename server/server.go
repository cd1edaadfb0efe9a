// Package server exposes the router over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tbxark/intentagent/types"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Resolver runs one dialogue turn over a serialized memory blob.
type Resolver interface {
	Resolve(ctx context.Context, text string, blob []byte) ([]byte, error)
}

type ChatIntentRequest struct {
	Token    string `json:"token"`
	Question string `json:"question"`
	Memory   string `json:"memory"`
}

type Server struct {
	app      *fiber.App
	resolver Resolver
	verifier TokenVerifier
	metrics  *metrics
}

// New wires the routes. A nil registry gets a fresh one.
func New(resolver Resolver, verifier TokenVerifier, registry *prometheus.Registry) *Server {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if verifier == nil {
		verifier = NewStaticTokenVerifier()
	}
	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:               "intentagent",
			DisableStartupMessage: true,
			JSONEncoder:           sonic.Marshal,
			JSONDecoder:           sonic.Unmarshal,
			ErrorHandler:          errorHandler,
		}),
		resolver: resolver,
		verifier: verifier,
		metrics:  newMetrics(registry),
	}

	s.app.Use(recover.New())
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	metricsHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	s.app.Get("/metrics", func(c *fiber.Ctx) error {
		metricsHandler(c.Context())
		return nil
	})
	v1 := s.app.Group("/api/v1")
	v1.Post("/chat/intent", s.chatIntent)
	return s
}

func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) chatIntent(c *fiber.Ctx) error {
	var req ChatIntentRequest
	if err := c.BodyParser(&req); err != nil {
		s.metrics.rejected.WithLabelValues("bad_request").Inc()
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if !s.verifier.Verify(c.UserContext(), req.Token) {
		s.metrics.rejected.WithLabelValues("unauthorized").Inc()
		return fiber.NewError(fiber.StatusUnauthorized, "Token 无效或已过期")
	}
	if strings.TrimSpace(req.Question) == "" {
		s.metrics.rejected.WithLabelValues("bad_request").Inc()
		return fiber.NewError(fiber.StatusBadRequest, "question is required")
	}

	start := time.Now()
	blob, err := s.resolver.Resolve(c.UserContext(), req.Question, []byte(req.Memory))
	s.metrics.duration.Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, types.ErrUnknownFlag) || errors.Is(err, types.ErrInvalidMemory) {
			s.metrics.rejected.WithLabelValues("invalid_memory").Inc()
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
		return err
	}

	if mem, dErr := types.DecodeMemory(blob); dErr == nil && mem != nil {
		s.metrics.turns.WithLabelValues(flagLabel(mem.Flag)).Inc()
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(blob)
}

func flagLabel(f types.Flag) string {
	if f == types.FlagNone {
		return "none"
	}
	return strings.Trim(string(f), "[]")
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	if code == fiber.StatusInternalServerError {
		slog.Error("request failed", "path", c.Path(), "err", err)
	}
	return c.Status(code).JSON(fiber.Map{"detail": err.Error()})
}
