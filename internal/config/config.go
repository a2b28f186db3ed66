package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Error reports an unusable configuration value or a missing
// credential. The CLI maps it to its own exit code, away from option
// validation failures.
type Error struct {
	Detail string
}

func (e *Error) Error() string {
	return "config: " + e.Detail
}

// API contains connection settings for the transcription service.
type API struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// CustomSpelling maps a recognized form to a replacement spelling.
type CustomSpelling struct {
	From string `toml:"from"`
	To   string `toml:"to"`
}

// Transcription contains default values for the transcribe command.
// Every field can be overridden by a CLI flag.
type Transcription struct {
	Format              string           `toml:"format"`
	SpeechModel         string           `toml:"speech_model"`
	LanguageDetection   bool             `toml:"language_detection"`
	Language            string           `toml:"language"`
	Punctuate           bool             `toml:"punctuate"`
	FormatText          bool             `toml:"format_text"`
	Disfluencies        bool             `toml:"disfluencies"`
	FilterProfanity     bool             `toml:"filter_profanity"`
	SpeakerLabels       bool             `toml:"speaker_labels"`
	Multichannel        bool             `toml:"multichannel"`
	SpeechThreshold     *float64         `toml:"speech_threshold"`
	CharsPerCaption     int              `toml:"chars_per_caption"`
	WordBoost           []string         `toml:"word_boost"`
	CustomSpelling      []CustomSpelling `toml:"custom_spelling"`
	PollIntervalSeconds int              `toml:"poll_interval_seconds"`
	TimeoutSeconds      int              `toml:"timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for scribe.
//
// Configuration sections by subsystem:
//   - API: transcription service credentials and endpoint
//   - Transcription: per-run defaults the transcribe flags override
//   - Logging: log format and level
type Config struct {
	API           API           `toml:"api"`
	Transcription Transcription `toml:"transcription"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default
// configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/scribe/config.toml")
}

// Load locates, parses, and validates a configuration file. The
// returned config has all fields normalized and the resolved path
// reported alongside whether a file actually existed there.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, &Error{Detail: fmt.Sprintf("open config: %v", err)}
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, &Error{Detail: fmt.Sprintf("parse %s: %v", resolvedPath, err)}
		}
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("scribe.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// PollInterval returns the configured poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Transcription.PollIntervalSeconds) * time.Second
}

// Timeout returns the configured job timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Transcription.TimeoutSeconds) * time.Second
}

// FFmpegBinary returns the ffmpeg executable name used for audio
// extraction.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if len(pathValue) > 0 && pathValue[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other
// packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified
// location. The write is serialized with a sibling lock file so
// concurrent invocations do not interleave.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock config for writing: %w", err)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
