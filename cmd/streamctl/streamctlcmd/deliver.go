package streamctlcmd

import (
	"bytes"
	"context"
	"errors"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"go.gazette.dev/streammsg/codec"
	mbp "go.gazette.dev/streammsg/mainboilerplate"
	"go.gazette.dev/streammsg/stream"
	"go.gazette.dev/streammsg/transport"
)

type cmdDeliver struct {
	InputConfig
	Copies      int `long:"copies" default:"1" description:"Number of copies of the message to deliver"`
	Parallelism int `long:"parallelism" default:"0" description:"Maximum number of concurrent deliveries. Zero is unbounded"`
}

func init() {
	CommandRegistry.AddCommand("", "deliver", "Deliver copies of a YAML field list through the transport", `
Build --copies messages from a YAML list of fields (see "encode"), and deliver
them concurrently through the configured --transport.codec and
--transport.compression. Each delivered message is checked against the
message which was sent, and a report entry is written to stdout in the
configured --log.format.

For example, to deliver 100 copies with at most 8 in flight:
>    streamctl deliver --input fields.yaml --copies 100 --parallelism 8
`, &cmdDeliver{})
}

func (cmd *cmdDeliver) Execute([]string) error {
	defer mbp.InitDiagnosticsAndRecover(baseCfg.Diagnostics)()
	var sess, tr = startup()

	if cmd.Copies < 1 {
		return errors.New("--copies must be at least one")
	}
	var specs []fieldSpec
	if err := cmd.decodeYAML(&specs); err != nil {
		return err
	}
	var msgs = make([]*stream.Message, cmd.Copies)
	for i := range msgs {
		msgs[i] = sess.CreateStream()
		mbp.Must(buildMessage(msgs[i], specs), "failed to build message")
	}
	var expect, err = codec.Fixed.Encode(msgs[0].Fields(), nil)
	mbp.Must(err, "failed to encode message")

	delivered, err := transport.DeliverAll(context.Background(), tr, msgs, cmd.Parallelism)
	mbp.Must(err, "failed to deliver messages")

	report, err := mbp.NewLogger(mbp.LogConfig{Level: "info", Format: baseCfg.Log.Format}, stdout)
	mbp.Must(err, "failed to build report logger")

	for i, m := range delivered {
		var actual, err = codec.Fixed.Encode(m.Fields(), nil)
		mbp.Must(err, "failed to encode delivered message")

		report.WithFields(log.Fields{
			"copy":      i,
			"transport": tr.Name(),
			"fields":    m.Len(),
			"size":      humanize.IBytes(uint64(m.Size())),
			"mode":      m.Mode().String(),
			"intact":    bytes.Equal(expect, actual),
		}).Info("delivered message")
	}
	return nil
}
