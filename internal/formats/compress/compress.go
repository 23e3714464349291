// Package compress picks a stream codec from a file name suffix so that
// inputs and exports can be read or written compressed transparently.
package compress

import (
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Codec identifies a compression format.
type Codec int

const (
	None Codec = iota
	Gzip
	Zstd
	Xz
)

var suffixes = []struct {
	ext   string
	codec Codec
}{
	{".gz", Gzip},
	{".zst", Zstd},
	{".xz", Xz},
}

func (c Codec) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case Xz:
		return "xz"
	default:
		return "none"
	}
}

// Detect returns the codec implied by path's final extension.
func Detect(path string) Codec {
	lower := strings.ToLower(path)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s.ext) {
			return s.codec
		}
	}
	return None
}

// Strip removes a compression suffix from path, so "a.csv.zst" becomes "a.csv".
func Strip(path string) string {
	lower := strings.ToLower(path)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s.ext) {
			return path[:len(path)-len(s.ext)]
		}
	}
	return path
}

// NewReader wraps r with a decompressor for the codec implied by path. The
// returned close function releases decoder resources and never closes r.
func NewReader(r io.Reader, path string) (io.Reader, func() error, error) {
	switch Detect(path) {
	case Gzip:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gz, gz.Close, nil
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		return dec, func() error { dec.Close(); return nil }, nil
	case Xz:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return xr, func() error { return nil }, nil
	default:
		return r, func() error { return nil }, nil
	}
}

// NewWriter wraps w with a compressor for the codec implied by path. Closing
// the returned writer flushes the compressor but does not close w.
func NewWriter(w io.Writer, path string) (io.WriteCloser, error) {
	switch Detect(path) {
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd writer: %w", err)
		}
		return enc, nil
	case Xz:
		xw, err := xz.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz writer: %w", err)
		}
		return xw, nil
	default:
		return nopCloser{w}, nil
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
