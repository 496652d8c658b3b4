package contenttype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	cases := []struct {
		fileName string
		want     string
	}{
		{"song.mp3", "audio/mp3"},
		{"clip.MP4", "audio/mp4"},
		{"live.m3u8", "application/x-mpegURL"},
		{"movie.webm", "video/webm"},
		{"cover.jpg", "image/jpeg"},
		{"radio.aac", "video/mp4"},
		{"a.b.c.ogg", "audio/ogg"},
	}

	for _, tc := range cases {
		got, ok := Lookup(tc.fileName)
		assert.True(t, ok, tc.fileName)
		assert.Equal(t, tc.want, got, tc.fileName)
	}
}

func TestLookupUnknown(t *testing.T) {
	for _, fileName := range []string{"notes.txt", "archive.zip", "noextension", "", "file."} {
		got, ok := Lookup(fileName)
		assert.False(t, ok, fileName)
		assert.Empty(t, got, fileName)
	}
}
