package streamctlcmd

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	mbp "go.gazette.dev/streammsg/mainboilerplate"
	"go.gazette.dev/streammsg/stream"
)

type cmdConvert struct {
	InputConfig
	As string `long:"as" required:"true" choice:"boolean" choice:"byte" choice:"short" choice:"char" choice:"int" choice:"long" choice:"float" choice:"double" choice:"string" choice:"bytes" description:"Kind to read each field as"`
}

func init() {
	CommandRegistry.AddCommand("", "convert", "Read each field of a YAML field list as a kind", `
Build a message from a YAML list of fields (see "encode"), and then read
each field as the --as kind, printing the converted value or the error of
the conversion. Fields which fail to convert are skipped.

For example, to check which fields may be read as a long:
>    streamctl convert --input fields.yaml --as long
`, &cmdConvert{})
}

func (cmd *cmdConvert) Execute([]string) error {
	defer mbp.InitDiagnosticsAndRecover(baseCfg.Diagnostics)()
	var sess, _ = startup()

	var kind, err = stream.ParseKind(cmd.As)
	mbp.Must(err, "invalid kind")

	var specs []fieldSpec
	if err = cmd.decodeYAML(&specs); err != nil {
		return err
	}
	var msg = sess.CreateStream()
	mbp.Must(buildMessage(msg, specs), "failed to build message")
	msg.Reset()

	var table = tablewriter.NewWriter(stdout)
	table.Header("#", "Field", "As "+kind.String(), "Error")

	for i, f := range msg.Fields() {
		var row = []string{strconv.Itoa(i), f.String(), "", ""}

		if value, err := readAs(msg, kind); err != nil {
			// Failed reads don't advance the Message. Skip the field.
			_, skipErr := msg.ReadObject()
			mbp.Must(skipErr, "failed to skip field")
			row[3] = err.Error()
		} else {
			row[2] = value
		}
		mbp.Must(table.Append(row), "failed to append table row")
	}
	mbp.Must(table.Render(), "failed to render table")
	return nil
}

// readAs reads the next Field of |msg| as Kind |kind|, returning its text.
func readAs(msg *stream.Message, kind stream.Kind) (string, error) {
	var v interface{}
	var err error

	switch kind {
	case stream.KindBoolean:
		v, err = msg.ReadBoolean()
	case stream.KindByte:
		v, err = msg.ReadInt8()
	case stream.KindShort:
		v, err = msg.ReadInt16()
	case stream.KindChar:
		v, err = msg.ReadChar()
	case stream.KindInt:
		v, err = msg.ReadInt32()
	case stream.KindLong:
		v, err = msg.ReadInt64()
	case stream.KindFloat:
		v, err = msg.ReadFloat32()
	case stream.KindDouble:
		v, err = msg.ReadFloat64()
	case stream.KindString:
		var s *string
		if s, err = msg.ReadString(); err == nil && s == nil {
			return "<null>", nil
		} else if err == nil {
			v = *s
		}
	case stream.KindBytes:
		return readAllBytes(msg)
	}
	if err != nil {
		return "", err
	}
	return stream.FormatValue(stream.Field{Kind: kind, Value: v}), nil
}

// readAllBytes reads a Bytes Field in chunks, returning its hex content.
func readAllBytes(msg *stream.Message) (string, error) {
	var chunk [16]byte
	var content []byte

	for first := true; ; first = false {
		var n, err = msg.ReadBytes(chunk[:])
		if err != nil {
			return "", err
		} else if n == -1 && first {
			return "<null>", nil
		} else if n == -1 || (n == 0 && first) {
			break // Drained, or empty.
		}
		content = append(content, chunk[:n]...)
	}
	return fmt.Sprintf("%x", content), nil
}
