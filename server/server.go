// Package server exposes the analysis pipeline over HTTP: multipart
// /analyze plus health and model-status reporting.
package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	cfg "github.com/Keerthi292/Emotion-Recognition-system/config"
	"github.com/Keerthi292/Emotion-Recognition-system/orchestrator"
)

type Server struct {
	app  *fiber.App
	cfg  *cfg.Root
	pipe *orchestrator.Pipeline
	log  *logrus.Logger
}

func New(c *cfg.Root, pipe *orchestrator.Pipeline, log *logrus.Logger) *Server {
	s := &Server{cfg: c, pipe: pipe, log: log}
	s.app = fiber.New(fiber.Config{
		AppName:               c.Pipeline.Name,
		BodyLimit:             c.Server.MaxUploadBytes,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	s.app.Get("/health", s.handleHealth)
	s.app.Get("/models/status", s.handleModelsStatus)
	s.app.Post("/analyze", s.handleAnalyze)
	return s
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Listen() error { return s.app.Listen(s.cfg.Server.Addr) }

func (s *Server) Shutdown() error { return s.app.Shutdown() }

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code == fiber.StatusRequestEntityTooLarge {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error":    "File too large",
			"max_size": fmt.Sprintf("%dMB", s.cfg.Server.MaxUploadBytes/(1024*1024)),
		})
	}
	code := fiber.StatusInternalServerError
	if fe != nil {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	ready := fiber.Map{}
	for _, st := range s.pipe.Status() {
		ready[st.Name+"_analyzer"] = st.Ready
	}
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"version":   s.cfg.Pipeline.Version,
		"message":   "emotion detection pipeline is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"analyzers": ready,
		"supported_formats": fiber.Map{
			"audio": s.cfg.Upload.AudioExtensions,
			"image": s.cfg.Upload.ImageExtensions,
			"text":  []string{"txt"},
		},
	})
}

func (s *Server) handleModelsStatus(c *fiber.Ctx) error {
	out := fiber.Map{}
	for _, st := range s.pipe.Status() {
		status := "ready"
		if !st.Ready {
			status = "not_configured"
		}
		out[st.Name+"_analyzer"] = fiber.Map{
			"mode":   st.Mode,
			"status": status,
		}
	}
	out["emotion_combiner"] = fiber.Map{
		"strategy": "weighted_average",
		"weights":  s.cfg.Fusion.Weights,
		"status":   "ready",
	}
	return c.JSON(out)
}
