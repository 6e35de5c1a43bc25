package streamctlcmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.gazette.dev/streammsg/codec"
	"go.gazette.dev/streammsg/stream"
	"gopkg.in/yaml.v2"
)

// run streamctl with |args| against filesystem |mfs| and |input| stdin,
// returning its stdout.
func run(t *testing.T, mfs afero.Fs, input string, args ...string) string {
	var out bytes.Buffer
	fs, stdin, stdout = mfs, strings.NewReader(input), &out

	var _, err = newParser().ParseArgs(args)
	require.NoError(t, err)
	return out.String()
}

func TestEncodeThenDecode(t *testing.T) {
	var mfs = afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mfs, "fields.yaml", []byte(fieldsFixture), 0644))

	for _, args := range [][]string{
		{"--transport.codec=fixed", "--transport.compression=none"},
		{"--transport.codec=json", "--transport.compression=gzip"},
		{"--transport.codec=fixed", "--transport.compression=ZSTANDARD"},
		{"--transport.codec=loopback", "--transport.compression=snappy"},
	} {
		run(t, mfs, "", append(args, "encode", "--input=fields.yaml", "--output=body")...)

		var body, err = afero.ReadFile(mfs, "body")
		require.NoError(t, err)
		assert.NotEmpty(t, body)

		// Decode to YAML, and expect it matches the input Fields.
		var out = run(t, mfs, "", append(args, "decode", "--input=body", "--format=yaml")...)

		var expect, actual = fixtureSpecs(t), parseSpecs(t, out)
		assert.Equal(t, fieldsOf(t, expect), fieldsOf(t, actual), "args %v", args)
	}
}

func TestEncodeFromStdin(t *testing.T) {
	var mfs = afero.NewMemMapFs()
	var out = run(t, mfs, "- kind: int\n  value: 7\n", "--transport.codec=fixed", "encode")

	var fields, err = codec.Fixed.Decode([]byte(out))
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, int32(7), fields[0].Value)
}

func TestDecodeTableAndJSON(t *testing.T) {
	var mfs = afero.NewMemMapFs()
	var body, err = codec.Fixed.Encode(fieldsOf(t, parseSpecs(t, `
- kind: int
  value: 42
- kind: string
  value: hello
- kind: bytes
`)), nil)
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(mfs, "body", body, 0644))

	var out = run(t, mfs, "", "--transport.codec=fixed", "decode", "--input=body")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "<null>")
	assert.Contains(t, out, "3 fields, 16 B body")

	out = run(t, mfs, "", "--transport.codec=fixed", "decode", "--input=body", "--format=json")
	assert.Equal(t, `{"kind":"int","value":42}`+"\n"+
		`{"kind":"string","value":"hello"}`+"\n"+
		`{"kind":"bytes","value":null}`+"\n", out)
}

func TestConvert(t *testing.T) {
	var mfs = afero.NewMemMapFs()
	var out = run(t, mfs, `
- kind: int
  value: 42
- kind: string
  value: "9000"
- kind: boolean
  value: true
- kind: int
  value: 7
`, "convert", "--as=long")

	assert.Contains(t, out, "42")
	assert.Contains(t, out, "9000")
	// The failed conversion is reported, and following fields still convert.
	assert.Contains(t, out, "cannot read boolean field as long")
	assert.Contains(t, out, "7")
}

func parseSpecs(t *testing.T, in string) []fieldSpec {
	var specs []fieldSpec
	require.NoError(t, yaml.UnmarshalStrict([]byte(in), &specs))
	return specs
}

func fieldsOf(t *testing.T, specs []fieldSpec) []stream.Field {
	var out []stream.Field
	for _, spec := range specs {
		var f, err = spec.toField()
		require.NoError(t, err)
		out = append(out, f)
	}
	return out
}

func TestDeliverCopies(t *testing.T) {
	var mfs = afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mfs, "fields.yaml", []byte(fieldsFixture), 0644))

	for _, args := range [][]string{
		{"--transport.codec=json", "--transport.compression=gzip"},
		{"--transport.codec=loopback"},
	} {
		var out = run(t, mfs, "", append(args, "--log.format=json",
			"deliver", "--input=fields.yaml", "--copies=5", "--parallelism=2")...)

		var lines = strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 5, "args %v", args)

		for _, line := range lines {
			assert.Contains(t, line, `"intact":true`)
			assert.Contains(t, line, `"mode":"read-only"`)
			assert.Contains(t, line, `"msg":"delivered message"`)
		}
	}
}

func TestVersion(t *testing.T) {
	var out = run(t, afero.NewMemMapFs(), "", "version")
	assert.Contains(t, out, "streamctl development")
	assert.Contains(t, out, "streammsg 1.0 (API 2.0)")
}
