// Package media classifies local inputs by extension and extracts
// audio from video files with ffmpeg.
package media
