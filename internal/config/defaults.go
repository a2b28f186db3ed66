package config

const (
	defaultBaseURL             = "https://api.assemblyai.com"
	defaultFormat              = "text"
	defaultSpeechModel         = "best"
	defaultCharsPerCaption     = 128
	defaultPollIntervalSeconds = 3
	defaultTimeoutSeconds      = 3600
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		API: API{
			BaseURL: defaultBaseURL,
		},
		Transcription: Transcription{
			Format:              defaultFormat,
			SpeechModel:         defaultSpeechModel,
			LanguageDetection:   true,
			Punctuate:           true,
			FormatText:          true,
			Multichannel:        true,
			CharsPerCaption:     defaultCharsPerCaption,
			PollIntervalSeconds: defaultPollIntervalSeconds,
			TimeoutSeconds:      defaultTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
