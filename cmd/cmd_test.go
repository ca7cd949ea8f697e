package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/scorepad/notation"
	"github.com/jsphweid/scorepad/playback"
	"github.com/jsphweid/scorepad/render"
	"github.com/jsphweid/scorepad/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadNotationFromArgsAndFile(t *testing.T) {
	assert := assert.New(t)

	notationFile = ""
	text, err := readNotation([]string{"C4q", "|", "D4q"})
	assert.Nil(err)
	assert.Equal("C4q | D4q", text)

	path := filepath.Join(t.TempDir(), "song.txt")
	require.Nil(t, os.WriteFile(path, []byte("E4h"), 0644))
	notationFile = path
	defer func() { notationFile = "" }()
	text, err = readNotation(nil)
	assert.Nil(err)
	assert.Equal("E4h", text)

	notationFile = filepath.Join(t.TempDir(), "missing.txt")
	_, err = readNotation(nil)
	assert.NotNil(err)
}

func TestExportScore(t *testing.T) {
	score := notation.Parse("C4q D4q")
	cases := []struct {
		format string
		prefix string
	}{
		{"midi", "MThd"},
		{"svg", "<svg"},
		{"png", "\x89PNG"},
		{"wav", "RIFF"},
	}
	for _, c := range cases {
		t.Run(c.format, func(t *testing.T) {
			data, err := exportScore(c.format, score, render.Light)
			assert.Nil(t, err)
			assert.True(t, bytes.HasPrefix(data, []byte(c.prefix)))
		})
	}

	_, err := exportScore("pdf", score, render.Light)
	assert.NotNil(t, err)
}

func TestOpenStoreFromEnvironment(t *testing.T) {
	assert := assert.New(t)

	t.Setenv("STORE", "memory")
	t.Setenv("DATA_PATH", "")
	s, err := OpenStore()
	assert.Nil(err)
	assert.IsType(&store.Memory{}, s)

	t.Setenv("STORE", "cassette")
	_, err = OpenStore()
	assert.NotNil(err)
}

func TestNewSender(t *testing.T) {
	assert := assert.New(t)
	defer func() { dryRun, oscAddr = false, "" }()

	dryRun = true
	s, err := newSender()
	assert.Nil(err)
	assert.Equal(playback.LogSender{}, s)

	dryRun = false
	oscAddr = "127.0.0.1:9000"
	s, err = newSender()
	assert.Nil(err)
	assert.IsType(&playback.OSCSender{}, s)

	oscAddr = "no-port"
	_, err = newSender()
	assert.NotNil(err)
}
