package config

import "fmt"

// Validate ensures the configuration is usable. Network credentials
// are deliberately not checked here; the API key may still arrive from
// the environment.
func (c *Config) Validate() error {
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTranscription() error {
	t := c.Transcription

	switch t.Format {
	case "text", "srt", "vtt":
	default:
		return &Error{Detail: fmt.Sprintf("transcription.format %q is not one of text, srt, vtt", t.Format)}
	}

	switch t.SpeechModel {
	case "best", "nano":
	default:
		return &Error{Detail: fmt.Sprintf("transcription.speech_model %q is not one of best, nano", t.SpeechModel)}
	}

	if t.LanguageDetection && t.Language != "" {
		return &Error{Detail: "transcription.language cannot be set while transcription.language_detection is true"}
	}

	if t.SpeechThreshold != nil {
		if v := *t.SpeechThreshold; v < 0 || v > 1 {
			return &Error{Detail: fmt.Sprintf("transcription.speech_threshold %v is outside 0..1", v)}
		}
	}

	if t.CharsPerCaption <= 0 {
		return &Error{Detail: "transcription.chars_per_caption must be greater than 0"}
	}

	for i, entry := range t.CustomSpelling {
		if entry.From == "" || entry.To == "" {
			return &Error{Detail: fmt.Sprintf("transcription.custom_spelling entry %d needs both from and to", i)}
		}
	}

	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return &Error{Detail: fmt.Sprintf("logging.format %q is not one of console, json", c.Logging.Format)}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &Error{Detail: fmt.Sprintf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)}
	}
	return nil
}
