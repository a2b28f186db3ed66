package captions

import (
	"fmt"
	"strconv"
	"strings"
)

// RenderText renders one "Speaker {s}: {text}" line per utterance.
func RenderText(utterances []DiarizedUtterance) string {
	var out strings.Builder
	for _, u := range utterances {
		out.WriteString("Speaker ")
		out.WriteString(u.Speaker)
		out.WriteString(": ")
		out.WriteString(u.Text)
		out.WriteByte('\n')
	}
	return out.String()
}

// RenderSRT renders utterances as a SubRip document. Cue indices are
// 1-based and increase monotonically across the whole document; they
// are never reset between utterances.
func RenderSRT(utterances []DiarizedUtterance, maxChars int) string {
	var out strings.Builder
	idx := 1

	for _, u := range utterances {
		prefix := speakerPrefix(u.Speaker)
		segments := SplitText(u.Text, segmentBudget(maxChars, prefix))
		for i, segment := range segments {
			start, end := SegmentWindow(u.StartMS, u.EndMS, i, len(segments))
			out.WriteString(strconv.Itoa(idx))
			out.WriteByte('\n')
			out.WriteString(Timestamp(start, StyleSRT))
			out.WriteString(" --> ")
			out.WriteString(Timestamp(end, StyleSRT))
			out.WriteByte('\n')
			out.WriteString(prefix)
			out.WriteString(segment)
			out.WriteString("\n\n")
			idx++
		}
	}

	return out.String()
}

// RenderVTT renders utterances as a WebVTT document. The structure
// matches RenderSRT except for the WEBVTT header, period-millisecond
// timestamps, and the absence of numeric cue indices.
func RenderVTT(utterances []DiarizedUtterance, maxChars int) string {
	var out strings.Builder
	out.WriteString("WEBVTT\n\n")

	for _, u := range utterances {
		prefix := speakerPrefix(u.Speaker)
		segments := SplitText(u.Text, segmentBudget(maxChars, prefix))
		for i, segment := range segments {
			start, end := SegmentWindow(u.StartMS, u.EndMS, i, len(segments))
			out.WriteString(Timestamp(start, StyleVTT))
			out.WriteString(" --> ")
			out.WriteString(Timestamp(end, StyleVTT))
			out.WriteByte('\n')
			out.WriteString(prefix)
			out.WriteString(segment)
			out.WriteString("\n\n")
		}
	}

	return out.String()
}

func speakerPrefix(speaker string) string {
	return fmt.Sprintf("Speaker %s: ", speaker)
}

// segmentBudget leaves at least one character of text per caption
// after the speaker prefix is accounted for.
func segmentBudget(maxChars int, prefix string) int {
	return max(maxChars-len(prefix), 1)
}
