package dispatch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// LineSource yields command lines one at a time. ok is false once input is
// exhausted.
type LineSource interface {
	Next() (line string, ok bool, err error)
}

// ReaderSource splits r into lines of any length. A trailing "\r" is
// dropped, and a final line without a newline is still returned.
type ReaderSource struct {
	reader *bufio.Reader
}

func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{reader: bufio.NewReader(r)}
}

func (s *ReaderSource) Next() (string, bool, error) {
	line, err := s.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, err
	}
	if err != nil && line == "" {
		return "", false, nil
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), true, nil
}

type FileSource struct {
	*ReaderSource
	file *os.File
}

// OpenFileSource opens path for reading. A missing file is reported here,
// before any line is dispatched; the error wraps os.ErrNotExist.
func OpenFileSource(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening command file: %w", err)
	}
	return &FileSource{
		ReaderSource: NewReaderSource(f),
		file:         f,
	}, nil
}

func (s *FileSource) Close() error {
	return s.file.Close()
}
