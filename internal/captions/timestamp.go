package captions

import "fmt"

// Style selects the timestamp flavor used in rendered cues.
type Style int

const (
	// StyleSRT renders timestamps with a comma before the millisecond
	// field (00:00:02,000), per the SubRip grammar.
	StyleSRT Style = iota
	// StyleVTT renders timestamps with a period before the millisecond
	// field (00:00:02.000), per the WebVTT grammar.
	StyleVTT
)

// Timestamp renders a millisecond offset as a caption timestamp.
// Hours are not wrapped at 24; the function is total over all inputs.
func Timestamp(ms uint64, style Style) string {
	totalSeconds := ms / 1000
	msPart := ms % 1000
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	sep := ","
	if style == StyleVTT {
		sep = "."
	}
	return fmt.Sprintf("%02d:%02d:%02d%s%03d", hours, minutes, seconds, sep, msPart)
}
