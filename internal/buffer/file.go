package buffer

// Loading and saving. The on-disk format is plain text with one line per
// newline-terminated record; a trailing "\r" is dropped on load.

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mnkhoi/kedit/internal/text"
)

// Load replaces the content of the buffer with the file at path and
// associates the buffer with it. On error the buffer is left untouched.
func (b *Buffer) Load(path string) error {
	f, err := b.fs.Open(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	defer f.Close()

	lines, err := readLines(f)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	b.lines = lines
	b.path = path
	b.dirty = false
	return nil
}

func readLines(r io.Reader) ([]text.Line, error) {
	var lines []text.Line
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		if errors.Is(err, io.EOF) && line == "" {
			break
		}

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		lines = append(lines, text.NewLine(line))

		if errors.Is(err, io.EOF) {
			break
		}
	}
	return lines, nil
}

// Save writes every line followed by a newline to the associated path. Without
// a path it does nothing. The dirty flag is only cleared when the whole file
// was written.
func (b *Buffer) Save() error {
	if b.path == "" {
		return nil
	}
	if err := b.writeFile(b.path); err != nil {
		return err
	}
	b.dirty = false
	return nil
}

func (b *Buffer) writeFile(path string) error {
	f, err := b.fs.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	writer := bufio.NewWriter(f)
	for _, line := range b.lines {
		if _, err := writer.WriteString(line.String() + "\n"); err != nil {
			f.Close()
			return fmt.Errorf("save %s: %w", path, err)
		}
	}
	if err := writer.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Size returns the number of bytes Save would write.
func (b *Buffer) Size() int64 {
	var size int64
	for _, line := range b.lines {
		size += int64(len(line.String())) + 1
	}
	return size
}
