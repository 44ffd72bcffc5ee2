package server

import (
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Keerthi292/Emotion-Recognition-system/analyzers"
)

// handleAnalyze accepts any combination of a text field and audio/image
// file uploads, runs the pipeline, and returns the per-modality and
// combined distributions. Files with disallowed extensions are skipped,
// not rejected: the remaining modalities still produce a result.
func (s *Server) handleAnalyze(c *fiber.Ctx) error {
	in := analyzers.Input{Text: strings.TrimSpace(c.FormValue("text"))}

	var temps []string
	defer func() {
		for _, p := range temps {
			if err := os.Remove(p); err != nil {
				s.log.WithField("module", "server").WithError(err).Warn("temp file cleanup failed")
			}
		}
	}()

	if fh, err := c.FormFile("audio"); err == nil && fh != nil {
		if s.cfg.Upload.AllowedAudio(fh.Filename) {
			path, err := s.saveTemp(c, fh, "audio-upload-")
			if err != nil {
				return err
			}
			temps = append(temps, path)
			in.AudioPath = path
		} else {
			s.log.WithField("module", "server").Warnf("skipping audio upload %q: unsupported format", fh.Filename)
		}
	}

	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		if s.cfg.Upload.AllowedImage(fh.Filename) {
			path, err := s.saveTemp(c, fh, "image-upload-")
			if err != nil {
				return err
			}
			temps = append(temps, path)
			in.ImagePath = path
		} else {
			s.log.WithField("module", "server").Warnf("skipping image upload %q: unsupported format", fh.Filename)
		}
	}

	analysis, err := s.pipe.Analyze(c.Context(), in)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(analysis)
}

func (s *Server) saveTemp(c *fiber.Ctx, fh *multipart.FileHeader, prefix string) (string, error) {
	tmp, err := os.CreateTemp("", prefix+"*"+filepath.Ext(fh.Filename))
	if err != nil {
		return "", err
	}
	name := tmp.Name()
	tmp.Close()
	if err := c.SaveFile(fh, name); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}
