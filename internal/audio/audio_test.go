package audio

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSpeech struct {
	transcript string
	audio      []byte
	err        error

	lastPath  string
	lastText  string
	lastVoice string
}

func (f *fakeSpeech) Transcribe(ctx context.Context, path string) (string, error) {
	f.lastPath = path
	return f.transcript, f.err
}

func (f *fakeSpeech) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	f.lastText = text
	f.lastVoice = voice
	return f.audio, f.err
}

func newTestService(t *testing.T, speech *fakeSpeech) *Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := NewService(speech, logger)
	require.NoError(t, err)
	return svc
}

func TestTranscribe(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "answer.wav")
	require.NoError(t, os.WriteFile(path, []byte("riff"), 0o600))

	speech := &fakeSpeech{transcript: "I built a search engine"}
	svc := newTestService(t, speech)

	text, err := svc.Transcribe(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "I built a search engine", text)
	assert.Equal(t, path, speech.lastPath)
}

func TestTranscribeMissingFile(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &fakeSpeech{})

	_, err := svc.Transcribe(context.Background(), filepath.Join(t.TempDir(), "missing.wav"))

	require.Error(t, err)
	assert.Empty(t, (&fakeSpeech{}).lastPath, "missing files never reach the remote service")
}

func TestSynthesize(t *testing.T) {
	t.Parallel()

	speech := &fakeSpeech{audio: []byte("mp3-bytes")}
	svc := newTestService(t, speech)

	data, err := svc.Synthesize(context.Background(), "welcome to the interview", "nova")

	require.NoError(t, err)
	assert.Equal(t, []byte("mp3-bytes"), data)
	assert.Equal(t, "welcome to the interview", speech.lastText)
	assert.Equal(t, "nova", speech.lastVoice)
}

func TestSynthesizeEmptyText(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &fakeSpeech{})

	_, err := svc.Synthesize(context.Background(), "", "nova")

	assert.Error(t, err)
}

func TestSynthesizeToFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	svc := newTestService(t, &fakeSpeech{audio: []byte("mp3-bytes")})

	path, err := svc.SynthesizeToFile(context.Background(), "hello", "", dir)

	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3-bytes"), data)
}

func TestSynthesizeToFilePropagatesError(t *testing.T) {
	t.Parallel()

	synthErr := errors.New("rate limited")
	svc := newTestService(t, &fakeSpeech{err: synthErr})

	_, err := svc.SynthesizeToFile(context.Background(), "hello", "", t.TempDir())

	assert.ErrorIs(t, err, synthErr)
}
