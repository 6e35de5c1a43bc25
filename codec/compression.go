package codec

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// Compression applied to an encoded body.
type Compression int32

const (
	// CompressionInvalid is the zero-valued Compression, and is not valid.
	CompressionInvalid Compression = iota
	// CompressionNone applies no compression.
	CompressionNone
	// CompressionGzip applies gzip compression.
	CompressionGzip
	// CompressionSnappy applies snappy compression, using its framed format.
	CompressionSnappy
	// CompressionZstandard applies zstandard compression. It's unavailable
	// under the "nozstd" build tag.
	CompressionZstandard
)

var compressionNames = map[Compression]string{
	CompressionInvalid:   "INVALID",
	CompressionNone:      "NONE",
	CompressionGzip:      "GZIP",
	CompressionSnappy:    "SNAPPY",
	CompressionZstandard: "ZSTANDARD",
}

func (c Compression) String() string {
	if s, ok := compressionNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Compression(%d)", int32(c))
}

// Validate returns an error if the Compression is not a known, valid value.
func (c Compression) Validate() error {
	if _, ok := compressionNames[c]; !ok || c == CompressionInvalid {
		return fmt.Errorf("invalid compression (%d)", int32(c))
	}
	return nil
}

// ContentEncoding returns the lower-cased name of the Compression, suitable
// for a labels.ContentEncoding value. It's empty for CompressionNone.
func (c Compression) ContentEncoding() string {
	if c == CompressionNone {
		return ""
	}
	return strings.ToLower(c.String())
}

// ParseCompression parses a Compression from its case-insensitive name.
// An empty string parses as CompressionNone.
func ParseCompression(s string) (Compression, error) {
	if s == "" {
		return CompressionNone, nil
	}
	for c, name := range compressionNames {
		if c != CompressionInvalid && strings.EqualFold(name, s) {
			return c, nil
		}
	}
	return CompressionInvalid, fmt.Errorf("unknown compression %q", s)
}

// UnmarshalFlag implements flags.Unmarshaler.
func (c *Compression) UnmarshalFlag(value string) (err error) {
	*c, err = ParseCompression(value)
	return
}

// MarshalFlag implements flags.Marshaler.
func (c Compression) MarshalFlag() (string, error) { return c.String(), nil }

// Decompressor is a ReadCloser where Close closes and releases Decompressor
// state, but does not Close or affect the underlying Reader.
type Decompressor io.ReadCloser

// Compressor is a WriteCloser where Close closes and releases Compressor
// state, potentially flushing final content to the underlying Writer,
// but does not Close or otherwise affect the underlying Writer.
type Compressor io.WriteCloser

// NewDecompressor returns a Decompressor of the Reader encoded with Compression.
func NewDecompressor(r io.Reader, c Compression) (Decompressor, error) {
	switch c {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionGzip:
		return gzip.NewReader(r)
	case CompressionSnappy:
		return io.NopCloser(snappy.NewReader(r)), nil
	case CompressionZstandard:
		return zstdNewReader(r)
	default:
		return nil, fmt.Errorf("unsupported compression %s", c)
	}
}

// NewCompressor returns a Compressor wrapping the Writer encoding with Compression.
func NewCompressor(w io.Writer, c Compression) (Compressor, error) {
	switch c {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionGzip:
		return &GzipMultiMemberWriter{w: w}, nil
	case CompressionSnappy:
		return snappy.NewBufferedWriter(w), nil
	case CompressionZstandard:
		return zstdNewWriter(w)
	default:
		return nil, fmt.Errorf("unsupported compression %s", c)
	}
}

// Compress |b| with Compression |c|, returning the compressed bytes.
func Compress(b []byte, c Compression) ([]byte, error) {
	if c == CompressionNone {
		return b, nil
	}
	var out bytes.Buffer

	var w, err = NewCompressor(&out, c)
	if err != nil {
		return nil, err
	} else if _, err = w.Write(b); err != nil {
		return nil, errors.WithMessagef(err, "compressing with %s", c)
	} else if err = w.Close(); err != nil {
		return nil, errors.WithMessagef(err, "closing %s compressor", c)
	}
	return out.Bytes(), nil
}

// Decompress |b| which was compressed with Compression |c|.
func Decompress(b []byte, c Compression) ([]byte, error) {
	if c == CompressionNone {
		return b, nil
	}
	var r, err = NewDecompressor(bytes.NewReader(b), c)
	if err != nil {
		return nil, errors.WithMessagef(err, "opening %s decompressor", c)
	}
	defer r.Close()

	var out []byte
	if out, err = io.ReadAll(r); err != nil {
		return nil, errors.WithMessagef(err, "decompressing with %s", c)
	}
	return out, nil
}

// GzipMultiMemberWriter allows for batching multiple writes into a single gzip
// member, which are concatenated into a single file per RFC 1952. Members are
// terminated by calling Close, with a new gzip writer initialized on the next
// Write.
type GzipMultiMemberWriter struct {
	w  io.Writer
	gz *gzip.Writer
}

func (gzb *GzipMultiMemberWriter) Write(p []byte) (n int, err error) {
	if gzb.gz == nil {
		gzb.gz = gzip.NewWriter(gzb.w)
	}
	return gzb.gz.Write(p)
}

// Close the current member, if any.
func (gzb *GzipMultiMemberWriter) Close() error {
	if gzb.gz == nil {
		return nil
	} else if err := gzb.gz.Close(); err != nil {
		return err
	}
	gzb.gz = nil
	return nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

var (
	zstdNewReader = func(io.Reader) (io.ReadCloser, error) {
		return nil, fmt.Errorf("ZSTANDARD was not enabled at compile time")
	}
	zstdNewWriter = func(io.Writer) (io.WriteCloser, error) {
		return nil, fmt.Errorf("ZSTANDARD was not enabled at compile time")
	}
)
