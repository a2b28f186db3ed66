package config

import "strings"

func (c *Config) normalize() {
	c.normalizeAPI()
	c.normalizeTranscription()
	c.normalizeLogging()
}

func (c *Config) normalizeAPI() {
	c.API.APIKey = strings.TrimSpace(c.API.APIKey)
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaultBaseURL
	}
}

func (c *Config) normalizeTranscription() {
	t := &c.Transcription
	t.Format = strings.ToLower(strings.TrimSpace(t.Format))
	if t.Format == "" {
		t.Format = defaultFormat
	}
	t.SpeechModel = strings.ToLower(strings.TrimSpace(t.SpeechModel))
	if t.SpeechModel == "" {
		t.SpeechModel = defaultSpeechModel
	}
	t.Language = strings.TrimSpace(t.Language)

	boost := t.WordBoost[:0]
	for _, phrase := range t.WordBoost {
		if trimmed := strings.TrimSpace(phrase); trimmed != "" {
			boost = append(boost, trimmed)
		}
	}
	t.WordBoost = boost

	for i := range t.CustomSpelling {
		t.CustomSpelling[i].From = strings.TrimSpace(t.CustomSpelling[i].From)
		t.CustomSpelling[i].To = strings.TrimSpace(t.CustomSpelling[i].To)
	}

	if t.PollIntervalSeconds <= 0 {
		t.PollIntervalSeconds = defaultPollIntervalSeconds
	}
	if t.TimeoutSeconds < 0 {
		t.TimeoutSeconds = defaultTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
