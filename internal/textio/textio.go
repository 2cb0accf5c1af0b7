// Package textio moves buffers between disk and memory. It decodes file
// bytes from a named character encoding into a buffer and encodes buffer
// content back, writing files atomically.
package textio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/maubry-ortega/Xylux-sub000/internal/engine/buffer"
	"github.com/maubry-ortega/Xylux-sub000/internal/log"
)

var (
	// ErrUnknownEncoding indicates an encoding name that is not recognized.
	ErrUnknownEncoding = errors.New("unknown encoding")

	// ErrNoPath indicates a save without a destination path.
	ErrNoPath = errors.New("no file path")
)

// FileError records a failed file operation.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// LookupEncoding resolves an encoding name or alias ("latin1", "utf8",
// "shift_jis") and returns the encoding with its canonical name. An empty
// name means UTF-8.
func LookupEncoding(name string) (encoding.Encoding, string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, buffer.DefaultEncoding) || strings.EqualFold(name, "utf8") {
		return unicode.UTF8, "utf-8", nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	canonical, err := htmlindex.Name(enc)
	if err != nil {
		canonical = strings.ToLower(name)
	}
	return enc, canonical, nil
}

// Decode converts data in the named encoding to UTF-8 text. A byte order
// mark overrides the requested encoding and is stripped. It also returns the
// canonical name of the encoding actually used.
func Decode(data []byte, name string) (string, string, error) {
	enc, canonical, err := LookupEncoding(name)
	if err != nil {
		return "", "", err
	}
	if bom := bomEncoding(data); bom != "" {
		canonical = bom
	}

	out, _, err := transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), data)
	if err != nil {
		return "", "", fmt.Errorf("decode %s: %w", canonical, err)
	}
	return string(out), canonical, nil
}

// Encode converts UTF-8 text to the named encoding. Characters the encoding
// cannot represent are an error.
func Encode(text, name string) ([]byte, error) {
	enc, canonical, err := LookupEncoding(name)
	if err != nil {
		return nil, err
	}
	if canonical == "utf-8" {
		return []byte(text), nil
	}

	out, _, err := transform.Bytes(enc.NewEncoder(), []byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", canonical, err)
	}
	return out, nil
}

// bomEncoding names the encoding announced by a byte order mark.
func bomEncoding(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return "utf-8"
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return "utf-16le"
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return "utf-16be"
	}
	return ""
}

// Read decodes r into a new buffer. opts are applied after the encoding is
// set, so a path or line ending override can be passed along.
func Read(r io.Reader, encodingName string, opts ...buffer.Option) (*buffer.Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	text, canonical, err := Decode(data, encodingName)
	if err != nil {
		return nil, err
	}

	opts = append([]buffer.Option{buffer.WithEncoding(canonical)}, opts...)
	return buffer.New(text, opts...), nil
}

// Open reads the file at path into a buffer bound to that path.
func Open(path, encodingName string, opts ...buffer.Option) (*buffer.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	opts = append([]buffer.Option{buffer.WithPath(path)}, opts...)
	buf, err := Read(f, encodingName, opts...)
	if err != nil {
		return nil, &FileError{Op: "open", Path: path, Err: err}
	}

	log.Debug(log.CatIO, "opened file",
		"path", path,
		"encoding", buf.Encoding(),
		"line_ending", buf.LineEnding().String(),
		"lines", buf.LineCount(),
	)
	return buf, nil
}

// WriteFile encodes text and writes it to path atomically through a
// temporary file in the same directory.
func WriteFile(path, text, encodingName string) error {
	data, err := Encode(text, encodingName)
	if err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return &FileError{Op: "save", Path: path, Err: err}
	}

	log.Debug(log.CatIO, "wrote file", "path", path, "bytes", len(data))
	return nil
}

// Save writes buf to path, or to its own path when path is empty, and marks
// it saved. Saving to a new path rebinds the buffer to it.
func Save(buf *buffer.Buffer, path string) error {
	if path == "" {
		path = buf.Path()
	}
	if path == "" {
		return ErrNoPath
	}

	if err := WriteFile(path, buf.Content(), buf.Encoding()); err != nil {
		return err
	}
	buf.SetPath(path)
	buf.MarkSaved()
	return nil
}

// Writer returns a function that saves engine content to path; it matches
// the callback taken by engine.Engine.Save.
func Writer(path string) func(content, encodingName string) error {
	return func(content, encodingName string) error {
		if path == "" {
			return ErrNoPath
		}
		return WriteFile(path, content, encodingName)
	}
}
