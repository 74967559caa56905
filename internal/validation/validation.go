// Package validation checks user-supplied files before they reach the XML
// parser: path sanity, a content sniff, and a size cap.
package validation

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Limits applied to input files.
const (
	// MaxFileSize is the largest document the CLI will read (64 MB).
	MaxFileSize = 64 << 20
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096

	sniffLen = 512
)

// Common validation errors.
var (
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrPathTooLong      = errors.New("path too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrNotXML           = errors.New("content is not XML")
	ErrFileTooLarge     = errors.New("file too large")
)

// ValidatePath rejects empty or overlong paths and paths containing null
// bytes or control characters.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: null byte not allowed", ErrInvalidCharacter)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}
	return nil
}

// XMLReader checks that r starts like an XML document and returns a reader
// over the same content that fails with ErrFileTooLarge past limit bytes.
func XMLReader(r io.Reader, limit int64) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}
	if !looksLikeXML(head) {
		return nil, ErrNotXML
	}
	return &limitReader{r: br, n: limit}, nil
}

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// looksLikeXML reports whether buf, the head of a document, is text whose
// first non-space character is '<'.
func looksLikeXML(buf []byte) bool {
	buf = bytes.TrimPrefix(buf, utf8BOM)
	trimmed := bytes.TrimLeft(buf, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '<' {
		return false
	}
	return isLikelyText(buf)
}

// isLikelyText reports whether buf is mostly printable, with no null bytes.
func isLikelyText(buf []byte) bool {
	if bytes.IndexByte(buf, 0) != -1 {
		return false
	}

	printable, control := 0, 0
	for _, b := range buf {
		switch {
		case b >= 0x20 || b == '\t' || b == '\n' || b == '\r':
			printable++
		default:
			control++
		}
	}
	return printable > 0 && float64(printable)/float64(printable+control) > 0.95
}

// limitReader is io.LimitReader reporting overflow as ErrFileTooLarge
// instead of a silent EOF.
type limitReader struct {
	r io.Reader
	n int64
}

func (l *limitReader) Read(p []byte) (int, error) {
	if l.n <= 0 {
		var probe [1]byte
		n, err := l.r.Read(probe[:])
		if n > 0 {
			return 0, ErrFileTooLarge
		}
		if err == nil {
			err = io.EOF
		}
		return 0, err
	}
	if int64(len(p)) > l.n {
		p = p[:l.n]
	}
	n, err := l.r.Read(p)
	l.n -= int64(n)
	return n, err
}
