package config

import (
	"encoding/base64"
	"os"
	"strings"
)

// ResolveAPIKey returns the transcription service credential, checked
// in order: config api_key, SCRIBE_API_KEY, ASSEMBLYAI_API_KEY, then
// ASSEMBLY_AI_KEY (a base64-encoded variant accepted only when it
// decodes to a hex key). Keys that arrive base64-encoded through the
// other sources are decoded transparently.
func (c *Config) ResolveAPIKey() (string, error) {
	if key := strings.TrimSpace(c.API.APIKey); key != "" {
		return normalizeAPIKey(key), nil
	}

	for _, name := range []string{"SCRIBE_API_KEY", "ASSEMBLYAI_API_KEY"} {
		if value := strings.TrimSpace(os.Getenv(name)); value != "" {
			return normalizeAPIKey(value), nil
		}
	}

	if value := strings.TrimSpace(os.Getenv("ASSEMBLY_AI_KEY")); value != "" {
		if decoded, ok := decodeBase64HexKey(value); ok {
			return decoded, nil
		}
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = "~/.config/scribe/config.toml"
	}
	return "", &Error{Detail: "missing API key. Set ASSEMBLYAI_API_KEY or put api_key in " + defaultPath + " (create with 'scribe config init')"}
}

// ResolveBaseURL returns the service endpoint, with SCRIBE_BASE_URL
// and ASSEMBLYAI_BASE_URL taking precedence over the config value.
func (c *Config) ResolveBaseURL() string {
	for _, name := range []string{"SCRIBE_BASE_URL", "ASSEMBLYAI_BASE_URL"} {
		if value := strings.TrimSpace(os.Getenv(name)); value != "" {
			return strings.TrimRight(value, "/")
		}
	}
	return c.API.BaseURL
}

// normalizeAPIKey passes hex keys through untouched and transparently
// decodes base64-wrapped hex keys. Anything else is used as-is.
func normalizeAPIKey(value string) string {
	trimmed := strings.TrimSpace(value)
	if looksLikeHexKey(trimmed) {
		return trimmed
	}
	if decoded, ok := decodeBase64HexKey(trimmed); ok {
		return decoded
	}
	return trimmed
}

// decodeBase64HexKey decodes a base64 value, padding it as needed, and
// accepts the result only when it is a hex key.
func decodeBase64HexKey(value string) (string, bool) {
	padded := strings.TrimSpace(value)
	for len(padded)%4 != 0 {
		padded += "="
	}

	decoded, err := base64.StdEncoding.DecodeString(padded)
	if err != nil {
		return "", false
	}
	key := strings.TrimSpace(string(decoded))
	if !looksLikeHexKey(key) {
		return "", false
	}
	return key, true
}

// looksLikeHexKey reports whether the value has the shape of a service
// API key: 32 or 64 hex digits.
func looksLikeHexKey(value string) bool {
	if len(value) != 32 && len(value) != 64 {
		return false
	}
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
