package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Pipeline struct {
	Name     string `mapstructure:"name"`
	Version  string `mapstructure:"version"`
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Addr           string `mapstructure:"addr"`
	MaxUploadBytes int    `mapstructure:"max_upload_bytes"`
}

type Analyzer struct {
	URL            string `mapstructure:"url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type Analyzers struct {
	Text   Analyzer `mapstructure:"text"`
	Audio  Analyzer `mapstructure:"audio"`
	Visual Analyzer `mapstructure:"visual"`
}

type Fusion struct {
	Weights   map[string]float64 `mapstructure:"weights"`
	TopK      int                `mapstructure:"top_k"`
	Normalize bool               `mapstructure:"normalize"`
}

type Upload struct {
	AudioExtensions []string `mapstructure:"audio_extensions"`
	ImageExtensions []string `mapstructure:"image_extensions"`
}

type Paths struct {
	Outputs string `mapstructure:"outputs"`
}

type Root struct {
	Pipeline  Pipeline  `mapstructure:"pipeline"`
	Server    Server    `mapstructure:"server"`
	Analyzers Analyzers `mapstructure:"analyzers"`
	Fusion    Fusion    `mapstructure:"fusion"`
	Upload    Upload    `mapstructure:"upload"`
	Paths     Paths     `mapstructure:"paths"`
}

// Load reads config.yaml (explicit path, working dir, ./config, or
// /etc/emotion-pipeline) with EMOTION_* environment overrides. A missing
// file is not an error; defaults cover every key.
func Load(path string) (*Root, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("config")
		v.AddConfigPath("/etc/emotion-pipeline")
	}
	v.SetEnvPrefix("EMOTION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("pipeline.name", "emotion-pipeline")
	v.SetDefault("pipeline.version", "9.0.0")
	v.SetDefault("pipeline.log_level", "info")

	v.SetDefault("server.addr", ":5000")
	v.SetDefault("server.max_upload_bytes", 16<<20)

	v.SetDefault("analyzers.text.url", "")
	v.SetDefault("analyzers.text.timeout_seconds", 60)
	v.SetDefault("analyzers.audio.url", "")
	v.SetDefault("analyzers.audio.timeout_seconds", 60)
	v.SetDefault("analyzers.visual.url", "")
	v.SetDefault("analyzers.visual.timeout_seconds", 60)

	v.SetDefault("fusion.weights", map[string]float64{
		"text":   0.4,
		"audio":  0.3,
		"visual": 0.3,
	})
	v.SetDefault("fusion.top_k", 5)
	v.SetDefault("fusion.normalize", false)

	v.SetDefault("upload.audio_extensions", []string{"wav", "mp3", "flac", "m4a", "ogg"})
	v.SetDefault("upload.image_extensions", []string{"jpg", "jpeg", "png", "bmp", "gif"})

	v.SetDefault("paths.outputs", "")
}

// Validate rejects configurations the pipeline cannot run with.
func (r *Root) Validate() error {
	for name, w := range r.Fusion.Weights {
		if w < 0 {
			return fmt.Errorf("fusion.weights.%s: weight must be >= 0, got %v", name, w)
		}
	}
	if r.Fusion.TopK <= 0 {
		return fmt.Errorf("fusion.top_k: must be > 0, got %d", r.Fusion.TopK)
	}
	if r.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.max_upload_bytes: must be > 0, got %d", r.Server.MaxUploadBytes)
	}
	return nil
}

// Timeout converts the configured seconds to a client timeout.
func (a Analyzer) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// AllowedAudio reports whether the filename carries an accepted audio
// extension.
func (u Upload) AllowedAudio(filename string) bool {
	return allowedFile(filename, u.AudioExtensions)
}

// AllowedImage reports whether the filename carries an accepted image
// extension.
func (u Upload) AllowedImage(filename string) bool {
	return allowedFile(filename, u.ImageExtensions)
}

func allowedFile(filename string, extensions []string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return false
	}
	for _, allowed := range extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
