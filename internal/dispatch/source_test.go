package dispatch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenFileSourceMissingFile(t *testing.T) {
	_, err := OpenFileSource(filepath.Join(t.TempDir(), "non-existent-file.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileSourceScenario(t *testing.T) {
	src, err := OpenFileSource(filepath.Join("testdata", "commands", "scenario.txt"))
	require.NoError(t, err)
	defer src.Close()

	var out bytes.Buffer
	require.NoError(t, New(newEngine(t), &out).Process(context.Background(), src))

	golden(t).Assert(t, "scenario", out.Bytes())
}

func TestFileSourceInvalidCommand(t *testing.T) {
	src, err := OpenFileSource(filepath.Join("testdata", "commands", "invalid_command.txt"))
	require.NoError(t, err)
	defer src.Close()

	var out bytes.Buffer
	err = New(newEngine(t), &out).Process(context.Background(), src)
	assert.ErrorIs(t, err, ErrUnknownCommand)

	golden(t).Assert(t, "invalid_command", out.Bytes())
}

func TestReaderSource(t *testing.T) {
	src := NewReaderSource(strings.NewReader("status\nexit"))

	line, ok, err := src.Next()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "status", line)

	line, ok, err = src.Next()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "exit", line)

	_, ok, err = src.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReaderSourceLongLine(t *testing.T) {
	long := "park " + strings.Repeat("A", 70*1024) + " White"
	src := NewReaderSource(strings.NewReader(long + "\r\nstatus\n"))

	line, ok, err := src.Next()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, long, line)

	line, ok, err = src.Next()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "status", line)

	_, ok, err = src.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}
