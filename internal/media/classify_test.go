package media

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		path string
		want Kind
	}{
		{"episode.mp3", KindAudio},
		{"/tmp/recording.WAV", KindAudio},
		{"talk.flac", KindAudio},
		{"memo.m4a", KindAudio},
		{"stream.ogg", KindAudio},
		{"clip.mp4", KindVideo},
		{"raw.avi", KindVideo},
		{"screen.mov", KindVideo},
		{"show.mkv", KindVideo},
		{"call.webm", KindVideo},
		{"notes.txt", KindUnknown},
		{"archive.tar.gz", KindUnknown},
		{"noextension", KindUnknown},
		{"", KindUnknown},
	}

	for _, tc := range cases {
		if got := Classify(tc.path); got != tc.want {
			t.Errorf("Classify(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}
