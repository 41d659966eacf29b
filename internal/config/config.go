package config

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Paths       PathsConfig       `yaml:"paths"`
	Media       MediaConfig       `yaml:"media"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Transcriber TranscriberConfig `yaml:"transcriber"`
	Whisper     WhisperConfig     `yaml:"whisper"`
	HTTP        HTTPConfig        `yaml:"http"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Ledger      LedgerConfig      `yaml:"ledger"`
	Logging     LoggingConfig     `yaml:"logging"`
	Watch       WatchConfig       `yaml:"watch"`
	Summary     SummaryConfig     `yaml:"summary"`
	Report      ReportConfig      `yaml:"report"`
}

type PathsConfig struct {
	Video   string `yaml:"video"`
	Audio   string `yaml:"audio"`
	Text    string `yaml:"text"`
	Summary string `yaml:"summary"`
}

type MediaConfig struct {
	VideoExtensions []string `yaml:"video_extensions"`
	AudioExtensions []string `yaml:"audio_extensions"`
	// StemCollision is one of merge, warn, independent.
	StemCollision string `yaml:"stem_collision"`
}

type FFmpegConfig struct {
	BinaryPath   string `yaml:"binary_path"`
	AudioCodec   string `yaml:"audio_codec"`
	AudioQuality string `yaml:"audio_quality"`
}

type TranscriberConfig struct {
	// Backend is one of whisper, http, gemini.
	Backend  string `yaml:"backend"`
	Language string `yaml:"language"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
	TempDir    string `yaml:"temp_dir"`
}

type HTTPConfig struct {
	URL        string        `yaml:"url"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxElapsed time.Duration `yaml:"max_elapsed"`
}

type GeminiConfig struct {
	Model   string   `yaml:"model"`
	APIKeys []string `yaml:"api_keys"`
}

type LedgerConfig struct {
	MinAudioBytes int64 `yaml:"min_audio_bytes"`
	MinTextBytes  int64 `yaml:"min_text_bytes"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type WatchConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Debounce time.Duration `yaml:"debounce"`
}

type SummaryConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Language string `yaml:"language"`
}

type ReportConfig struct {
	XLSXPath string `yaml:"xlsx_path"`
}

var (
	defaultVideoExtensions = []string{".mp4", ".webm", ".avi", ".mov", ".mkv"}
	defaultAudioExtensions = []string{".mp3", ".wav", ".m4a", ".flac", ".aac"}
)

func (c *Config) Validate() error {
	if c.Paths.Video == "" {
		c.Paths.Video = "data/video"
	}
	if c.Paths.Audio == "" {
		c.Paths.Audio = "data/audio"
	}
	if c.Paths.Text == "" {
		c.Paths.Text = "data/text"
	}
	if c.Paths.Summary == "" {
		c.Paths.Summary = "data/summary"
	}

	if len(c.Media.VideoExtensions) == 0 {
		c.Media.VideoExtensions = defaultVideoExtensions
	}
	if len(c.Media.AudioExtensions) == 0 {
		c.Media.AudioExtensions = defaultAudioExtensions
	}
	c.Media.VideoExtensions = normalizeExtensions(c.Media.VideoExtensions)
	c.Media.AudioExtensions = normalizeExtensions(c.Media.AudioExtensions)
	for _, v := range c.Media.VideoExtensions {
		for _, a := range c.Media.AudioExtensions {
			if v == a {
				return fmt.Errorf("media: extension %s is both video and audio", v)
			}
		}
	}
	switch c.Media.StemCollision {
	case "":
		c.Media.StemCollision = "merge"
	case "merge", "warn", "independent":
	default:
		return fmt.Errorf("media.stem_collision must be merge, warn or independent, got %q", c.Media.StemCollision)
	}

	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.AudioCodec == "" {
		c.FFmpeg.AudioCodec = "libmp3lame"
	}
	if c.FFmpeg.AudioQuality == "" {
		c.FFmpeg.AudioQuality = "2"
	}

	if c.Transcriber.Language == "" {
		c.Transcriber.Language = "ko"
	}
	switch c.Transcriber.Backend {
	case "", "whisper":
		c.Transcriber.Backend = "whisper"
		if c.Whisper.ModelPath == "" {
			return fmt.Errorf("whisper.model_path is required")
		}
		if c.Whisper.BinaryPath == "" {
			return fmt.Errorf("whisper.binary_path is required")
		}
	case "http":
		if c.HTTP.URL == "" {
			return fmt.Errorf("http.url is required for the http backend")
		}
	case "gemini":
		if len(c.Gemini.APIKeys) == 0 {
			return fmt.Errorf("gemini.api_keys is required for the gemini backend")
		}
	default:
		return fmt.Errorf("transcriber.backend must be whisper, http or gemini, got %q", c.Transcriber.Backend)
	}

	if c.Summary.Enabled && len(c.Gemini.APIKeys) == 0 {
		return fmt.Errorf("gemini.api_keys is required when summary is enabled")
	}

	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}
	if c.HTTP.Timeout == 0 {
		c.HTTP.Timeout = 10 * time.Minute
	}
	if c.HTTP.MaxElapsed == 0 {
		c.HTTP.MaxElapsed = 30 * time.Minute
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Ledger.MinAudioBytes == 0 {
		c.Ledger.MinAudioBytes = 1
	}
	if c.Ledger.MinAudioBytes < 0 || c.Ledger.MinTextBytes < 0 {
		return fmt.Errorf("ledger size floors must not be negative")
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = 3 * time.Second
	}
	if c.Summary.Language == "" {
		c.Summary.Language = c.Transcriber.Language
	}

	return nil
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}
