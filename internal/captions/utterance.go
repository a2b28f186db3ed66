package captions

import "strings"

// RawUtterance is one per-utterance record as received from the
// transcription service. Any field may be absent; the speaker label,
// when present, has already been resolved to a string at the transport
// boundary.
type RawUtterance struct {
	Speaker *string
	Text    *string
	Start   *uint64
	End     *uint64
}

// DiarizedUtterance is a validated, speaker-attributed span of
// transcript text. Values are immutable once constructed.
type DiarizedUtterance struct {
	StartMS uint64
	EndMS   uint64
	Speaker string
	Text    string
}

// NewDiarizedUtterance validates and constructs a DiarizedUtterance.
// The second return value is false when the span is non-positive or
// the speaker or text is empty after trimming.
func NewDiarizedUtterance(startMS, endMS uint64, speaker, text string) (DiarizedUtterance, bool) {
	if endMS <= startMS {
		return DiarizedUtterance{}, false
	}
	speaker = strings.TrimSpace(speaker)
	if speaker == "" {
		return DiarizedUtterance{}, false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return DiarizedUtterance{}, false
	}
	return DiarizedUtterance{StartMS: startMS, EndMS: endMS, Speaker: speaker, Text: text}, true
}

// MergeUtterances converts raw utterances into validated diarized
// utterances, preserving order. A missing speaker defaults to
// "Unknown" and missing text to the empty string. Records missing a
// start or end offset, and records that fail validation, are dropped
// silently: malformed data is a quality tolerance here, not an error.
// An input with no usable records yields an empty slice, which callers
// treat as diarization being unavailable.
func MergeUtterances(raw []RawUtterance) []DiarizedUtterance {
	out := make([]DiarizedUtterance, 0, len(raw))
	for _, r := range raw {
		speaker := "Unknown"
		if r.Speaker != nil {
			speaker = *r.Speaker
		}
		var text string
		if r.Text != nil {
			text = *r.Text
		}
		if r.Start == nil || r.End == nil {
			continue
		}
		if u, ok := NewDiarizedUtterance(*r.Start, *r.End, speaker, text); ok {
			out = append(out, u)
		}
	}
	return out
}
