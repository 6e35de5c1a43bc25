package streamctlcmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	mbp "go.gazette.dev/streammsg/mainboilerplate"
	"go.gazette.dev/streammsg/stream"
	"go.gazette.dev/streammsg/transport"
	"gopkg.in/yaml.v2"
)

type cmdDecode struct {
	InputConfig
	Format string `long:"format" short:"f" choice:"table" choice:"yaml" choice:"json" default:"table" description:"Output format"`
}

func init() {
	CommandRegistry.AddCommand("", "decode", "Decode and print a message body", `
Decode a message body read from --input, using the configured --transport.codec
and --transport.compression, and print its fields in order.

Results can be output in a variety of --format options:
yaml:  Prints a YAML field list, compatible with "encode"
json:  Prints fields encoded as JSON, one per line.
table: Prints as a table, with the encoded size of each field.
`, &cmdDecode{})
}

func (cmd *cmdDecode) Execute([]string) error {
	defer mbp.InitDiagnosticsAndRecover(baseCfg.Diagnostics)()
	var sess, tr = startup()

	var enc, ok = tr.(*transport.Encoded)
	if !ok {
		enc = defaultEncoding()
	}
	var b, err = cmd.read()
	mbp.Must(err, "failed to read input", "input", cmd.Input)

	msg, err := transport.DecodeBody(enc.Codec, enc.Compression, b,
		stream.Options{MaxBodySize: sess.Config().MaxBodySize})
	mbp.Must(err, "failed to decode message body")

	fields, err := readFields(msg)
	mbp.Must(err, "failed to read message")

	switch cmd.Format {
	case "table":
		outputTable(fields, len(b))
	case "yaml":
		var specs = make([]fieldSpec, len(fields))
		for i, f := range fields {
			specs[i] = newFieldSpec(f)
		}
		out, err := yaml.Marshal(specs)
		mbp.Must(err, "failed to encode YAML")
		_, _ = stdout.Write(out)
	case "json":
		var je = json.NewEncoder(stdout)
		for _, f := range fields {
			mbp.Must(je.Encode(newFieldSpec(f)), "failed to encode JSON")
		}
	}
	return nil
}

// readFields reads each Field of ReadOnly Message |msg| in order.
func readFields(msg *stream.Message) ([]stream.Field, error) {
	// ReadObject returns nil for both null Strings and Bytes, so
	// Kinds are taken from the Message's Fields.
	var kinds = msg.Fields()
	var out = make([]stream.Field, len(kinds))

	for i := range kinds {
		var v, err = msg.ReadObject()
		if err != nil {
			return nil, errors.WithMessagef(err, "reading field %d", i)
		} else if v == nil && kinds[i].Kind == stream.KindBytes {
			v = []byte(nil)
		}
		out[i] = stream.Field{Kind: kinds[i].Kind, Value: v}
	}
	return out, nil
}

func outputTable(fields []stream.Field, bodySize int) {
	var table = tablewriter.NewWriter(stdout)
	table.Header("#", "Kind", "Value", "Size")

	var total int
	for i, f := range fields {
		var value = "<null>"
		if !f.IsNull() {
			value = stream.FormatValue(f)
		}
		mbp.Must(table.Append([]string{
			strconv.Itoa(i),
			f.Kind.String(),
			value,
			humanize.IBytes(uint64(f.Size())),
		}), "failed to append table row")
		total += f.Size()
	}
	mbp.Must(table.Render(), "failed to render table")

	_, _ = fmt.Fprintf(stdout, "%d fields, %s body (%s encoded)\n",
		len(fields), humanize.IBytes(uint64(total)), humanize.IBytes(uint64(bodySize)))
}
