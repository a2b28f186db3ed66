package media

import (
	"path/filepath"
	"strings"
)

// Kind categorizes a local input file for the transcription pipeline.
type Kind int

const (
	KindUnknown Kind = iota
	KindAudio
	KindVideo
)

// Classify reports whether a local path is audio, video, or
// unsupported, based solely on its extension. Video inputs require an
// ffmpeg extraction step before upload.
func Classify(path string) Kind {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "mp3", "wav", "flac", "m4a", "ogg":
		return KindAudio
	case "mp4", "avi", "mov", "mkv", "webm":
		return KindVideo
	default:
		return KindUnknown
	}
}
