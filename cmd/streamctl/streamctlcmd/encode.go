package streamctlcmd

import (
	"context"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	mbp "go.gazette.dev/streammsg/mainboilerplate"
	"go.gazette.dev/streammsg/transport"
)

type cmdEncode struct {
	InputConfig
	OutputConfig
}

func init() {
	CommandRegistry.AddCommand("", "encode", "Encode a YAML field list as a message body", `
Encode a YAML list of fields into a message body, using the configured
--transport.codec and --transport.compression.

Each field has a "kind" (one of boolean, byte, short, char, int, long, float,
double, string, bytes) and a "value". Bytes values are base64 encoded, and a
null string or bytes value is given as null or omitted:

>    - kind: int
>      value: 42
>    - kind: string
>      value: hello
>    - kind: bytes
>      value: yv4=
>    - kind: string

The body is written to --output.
`, &cmdEncode{})
}

func (cmd *cmdEncode) Execute([]string) error {
	defer mbp.InitDiagnosticsAndRecover(baseCfg.Diagnostics)()
	var sess, tr = startup()

	var specs []fieldSpec
	if err := cmd.decodeYAML(&specs); err != nil {
		return err
	}
	var msg = sess.CreateStream()
	mbp.Must(buildMessage(msg, specs), "failed to build message")

	var enc, ok = tr.(*transport.Encoded)
	if !ok {
		// Loopback transports have no body encoding. Deliver to validate
		// the Message, and encode with the default Codec.
		var _, err = tr.Deliver(context.Background(), msg)
		mbp.Must(err, "failed to deliver message")
		enc = defaultEncoding()
	}
	var b, err = transport.EncodeBody(enc.Codec, enc.Compression, msg)
	mbp.Must(err, "failed to encode message")
	mbp.Must(cmd.write(b), "failed to write output", "output", cmd.Output)

	log.WithFields(log.Fields{
		"fields": msg.Len(),
		"size":   humanize.IBytes(uint64(len(b))),
		"codec":  enc.Name(),
	}).Info("encoded message body")
	return nil
}

func defaultEncoding() *transport.Encoded {
	var tr, err = transport.New(transport.Config{Codec: "fixed"})
	mbp.Must(err, "failed to build default transport")
	return tr.(*transport.Encoded)
}
