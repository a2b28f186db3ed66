package assemblyai

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"scribe/internal/captions"
)

// Transcript status values with terminal semantics. Every other status
// string the service reports is treated uniformly as still in
// progress.
const (
	StatusCompleted = "completed"
	StatusErrored   = "error"
)

// Transcript mirrors the subset of the transcript resource this CLI
// consumes.
type Transcript struct {
	ID         string      `json:"id"`
	Status     string      `json:"status"`
	Text       *string     `json:"text"`
	Error      *string     `json:"error"`
	Utterances []Utterance `json:"utterances"`
}

// IsTerminal reports whether the transcript reached a state from which
// no further transition occurs.
func (t Transcript) IsTerminal() bool {
	return t.Status == StatusCompleted || t.Status == StatusErrored
}

// RawUtterances converts the wire utterances into the caption engine's
// input form, resolving the speaker label union to a string. It
// returns nil when the service provided no utterances at all.
func (t Transcript) RawUtterances() []captions.RawUtterance {
	if t.Utterances == nil {
		return nil
	}
	out := make([]captions.RawUtterance, 0, len(t.Utterances))
	for _, u := range t.Utterances {
		raw := captions.RawUtterance{Text: u.Text, Start: u.Start, End: u.End}
		if u.Speaker != nil {
			label := u.Speaker.String()
			raw.Speaker = &label
		}
		out = append(out, raw)
	}
	return out
}

// Utterance is one raw diarized record as returned by the service.
// Every field is optional on the wire.
type Utterance struct {
	Speaker *SpeakerLabel `json:"speaker"`
	Text    *string       `json:"text"`
	Start   *uint64       `json:"start"`
	End     *uint64       `json:"end"`
}

// SpeakerLabel is the service's number-or-string speaker identity. The
// union is resolved to a string before leaving this package; it never
// travels further into the pipeline.
type SpeakerLabel struct {
	number  uint32
	label   string
	numeric bool
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (s *SpeakerLabel) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var label string
		if err := json.Unmarshal(data, &label); err != nil {
			return err
		}
		*s = SpeakerLabel{label: label}
		return nil
	}
	var number uint32
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("speaker label must be a number or string: %w", err)
	}
	*s = SpeakerLabel{number: number, numeric: true}
	return nil
}

// String renders the label: numeric labels are stringified, textual
// labels pass through.
func (s SpeakerLabel) String() string {
	if s.numeric {
		return strconv.FormatUint(uint64(s.number), 10)
	}
	return s.label
}

// SubtitleFormat selects a server-rendered subtitle flavor.
type SubtitleFormat string

const (
	SubtitleSRT SubtitleFormat = "srt"
	SubtitleVTT SubtitleFormat = "vtt"
)

// CustomSpelling maps a recognized form to a replacement spelling.
type CustomSpelling struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// TranscriptParams carries the transcript creation options. Optional
// fields are pointers so unset values are omitted from the request
// body.
type TranscriptParams struct {
	SpeechModel       string
	LanguageDetection bool
	LanguageCode      string
	Punctuate         bool
	FormatText        bool
	Disfluencies      bool
	FilterProfanity   bool
	SpeakerLabels     bool
	Multichannel      bool
	SpeechThreshold   *float64
	WordBoost         []string
	CustomSpelling    []CustomSpelling
}

type createTranscriptRequest struct {
	AudioURL          string           `json:"audio_url"`
	SpeechModel       string           `json:"speech_model,omitempty"`
	LanguageDetection bool             `json:"language_detection"`
	LanguageCode      string           `json:"language_code,omitempty"`
	Punctuate         bool             `json:"punctuate"`
	FormatText        bool             `json:"format_text"`
	Disfluencies      bool             `json:"disfluencies"`
	FilterProfanity   bool             `json:"filter_profanity"`
	SpeakerLabels     bool             `json:"speaker_labels"`
	Multichannel      bool             `json:"multichannel"`
	SpeechThreshold   *float64         `json:"speech_threshold,omitempty"`
	WordBoost         []string         `json:"word_boost,omitempty"`
	CustomSpelling    []CustomSpelling `json:"custom_spelling,omitempty"`
}

func newCreateTranscriptRequest(audioURL string, params TranscriptParams) createTranscriptRequest {
	return createTranscriptRequest{
		AudioURL:          audioURL,
		SpeechModel:       params.SpeechModel,
		LanguageDetection: params.LanguageDetection,
		LanguageCode:      params.LanguageCode,
		Punctuate:         params.Punctuate,
		FormatText:        params.FormatText,
		Disfluencies:      params.Disfluencies,
		FilterProfanity:   params.FilterProfanity,
		SpeakerLabels:     params.SpeakerLabels,
		Multichannel:      params.Multichannel,
		SpeechThreshold:   params.SpeechThreshold,
		WordBoost:         params.WordBoost,
		CustomSpelling:    params.CustomSpelling,
	}
}

type uploadResponse struct {
	UploadURL string `json:"upload_url"`
}
