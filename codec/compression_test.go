package codec

import (
	"bytes"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	gc "gopkg.in/check.v1"
)

type CompressionSuite struct{}

func (s *CompressionSuite) TestRoundTrips(c *gc.C) {
	var content = []byte(strings.Repeat("a compressible body. ", 100))

	for _, comp := range []Compression{CompressionNone, CompressionGzip, CompressionSnappy, CompressionZstandard} {
		var b, err = Compress(content, comp)
		c.Assert(err, gc.IsNil)

		if comp != CompressionNone {
			c.Check(len(b) < len(content), gc.Equals, true)
		}
		out, err := Decompress(b, comp)
		c.Assert(err, gc.IsNil)
		c.Check(out, gc.DeepEquals, content, gc.Commentf("compression %s", comp))
	}
}

func (s *CompressionSuite) TestParsing(c *gc.C) {
	for _, tc := range []struct {
		s      string
		expect Compression
	}{
		{"", CompressionNone},
		{"none", CompressionNone},
		{"GZIP", CompressionGzip},
		{"Snappy", CompressionSnappy},
		{"zstandard", CompressionZstandard},
	} {
		var comp, err = ParseCompression(tc.s)
		c.Check(err, gc.IsNil)
		c.Check(comp, gc.Equals, tc.expect)
	}
	var _, err = ParseCompression("lz4")
	c.Check(err, gc.ErrorMatches, `unknown compression "lz4"`)
	_, err = ParseCompression("invalid")
	c.Check(err, gc.ErrorMatches, `unknown compression "invalid"`)

	var comp Compression
	c.Check(comp.UnmarshalFlag("gzip"), gc.IsNil)
	c.Check(comp, gc.Equals, CompressionGzip)
	c.Check(comp.ContentEncoding(), gc.Equals, "gzip")
	c.Check(CompressionNone.ContentEncoding(), gc.Equals, "")

	c.Check(CompressionInvalid.Validate(), gc.ErrorMatches, `invalid compression \(0\)`)
	c.Check(Compression(99).Validate(), gc.ErrorMatches, `invalid compression \(99\)`)
	c.Check(Compression(99).String(), gc.Equals, "Compression(99)")
	c.Check(CompressionSnappy.Validate(), gc.IsNil)
}

func (s *CompressionSuite) TestUnsupportedCompression(c *gc.C) {
	var _, err = NewCompressor(io.Discard, CompressionInvalid)
	c.Check(err, gc.ErrorMatches, "unsupported compression INVALID")
	_, err = NewDecompressor(bytes.NewReader(nil), Compression(99))
	c.Check(err, gc.ErrorMatches, `unsupported compression Compression\(99\)`)
}

func (s *CompressionSuite) TestGzipMultiMemberWriter(c *gc.C) {
	var buf bytes.Buffer
	var w, err = NewCompressor(&buf, CompressionGzip)
	c.Assert(err, gc.IsNil)

	// Two members, each of two writes.
	for _, part := range []string{"one ", "two ", "three ", "four"} {
		_, err = w.Write([]byte(part))
		c.Assert(err, gc.IsNil)

		if part == "two " {
			c.Assert(w.Close(), gc.IsNil)
		}
	}
	c.Assert(w.Close(), gc.IsNil)
	c.Assert(w.Close(), gc.IsNil) // Idempotent.

	// A multistream reader reads through both members.
	r, err := gzip.NewReader(&buf)
	c.Assert(err, gc.IsNil)
	out, err := io.ReadAll(r)
	c.Assert(err, gc.IsNil)
	c.Check(string(out), gc.Equals, "one two three four")
}

func (s *CompressionSuite) TestDecompressCorruptContent(c *gc.C) {
	var _, err = Decompress([]byte("not gzip"), CompressionGzip)
	c.Check(err, gc.ErrorMatches, "opening GZIP decompressor: .*")
}

var _ = gc.Suite(&CompressionSuite{})
