// Package fileutil opens input documents, decompressing xz and gzip
// content transparently.
package fileutil

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/ulikunitz/xz"
)

// Compression identifies how a document is stored on disk.
type Compression int

const (
	// None is an uncompressed document.
	None Compression = iota
	// XZ is an xz stream.
	XZ
	// Gzip is a gzip stream.
	Gzip
)

func (c Compression) String() string {
	switch c {
	case XZ:
		return "xz"
	case Gzip:
		return "gzip"
	default:
		return "none"
	}
}

var (
	xzMagic   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	gzipMagic = []byte{0x1f, 0x8b}
)

// Detect identifies the compression of a stream from its first bytes.
func Detect(head []byte) Compression {
	switch {
	case bytes.HasPrefix(head, xzMagic):
		return XZ
	case bytes.HasPrefix(head, gzipMagic):
		return Gzip
	default:
		return None
	}
}

// Reader is an opened document. Reads return decompressed content.
type Reader struct {
	io.Reader
	Compression  Compression
	file         *os.File
	decompressor io.Closer
}

// Open opens the document at path. The compression is detected from the
// content, not the file name.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}

	r, c, closer, err := decompress(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Reader{Reader: r, Compression: c, file: f, decompressor: closer}, nil
}

// NewReader wraps r with the decompressor its content calls for.
func NewReader(r io.Reader) (io.Reader, Compression, error) {
	dr, c, _, err := decompress(r)
	return dr, c, err
}

func decompress(r io.Reader) (io.Reader, Compression, io.Closer, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(xzMagic))
	if err != nil && err != io.EOF {
		return nil, None, nil, fmt.Errorf("read header: %w", err)
	}

	c := Detect(head)
	switch c {
	case XZ:
		xzr, err := xz.NewReader(br)
		if err != nil {
			return nil, c, nil, fmt.Errorf("xz reader: %w", err)
		}
		return xzr, c, nil, nil
	case Gzip:
		gzr, err := gzip.NewReader(br)
		if err != nil {
			return nil, c, nil, fmt.Errorf("gzip reader: %w", err)
		}
		return gzr, c, gzr, nil
	default:
		return br, c, nil, nil
	}
}

// Close closes the document and any decompressor.
func (r *Reader) Close() error {
	var errs []error
	if r.decompressor != nil {
		if err := r.decompressor.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := r.file.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
