package streamctlcmd

import (
	"fmt"

	mbp "go.gazette.dev/streammsg/mainboilerplate"
	"go.gazette.dev/streammsg/session"
)

type cmdVersion struct{}

func init() {
	CommandRegistry.AddCommand("", "version", "Print version and provider metadata", `
Print the streamctl build version, and the messaging API and provider
versions of its sessions.
`, &cmdVersion{})
}

func (cmd *cmdVersion) Execute([]string) error {
	var md = session.New(baseCfg.Session).MetaData()

	_, err := fmt.Fprintf(stdout, "streamctl %s (built %s)\n%s\n", mbp.Version, mbp.BuildDate, md)
	return err
}
