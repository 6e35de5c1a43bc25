// Package streamctlcmd implements the sub-commands of streamctl, a tool for
// building, encoding, decoding, and inspecting stream message bodies.
package streamctlcmd

import (
	"errors"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/spf13/afero"
	mbp "go.gazette.dev/streammsg/mainboilerplate"
	"go.gazette.dev/streammsg/session"
	"go.gazette.dev/streammsg/transport"
	"gopkg.in/yaml.v2"
)

const iniFilename = "streamctl.ini"

var (
	baseCfg = new(struct {
		Log         mbp.LogConfig         `group:"Logging" namespace:"log" env-namespace:"LOG"`
		Diagnostics mbp.DiagnosticsConfig `group:"Debug" namespace:"debug" env-namespace:"DEBUG"`
		Session     session.Config        `group:"Session" namespace:"session" env-namespace:"SESSION"`
		Transport   transport.Config      `group:"Transport" namespace:"transport" env-namespace:"TRANSPORT"`
	})

	// CommandRegistry of streamctl sub-commands, which are added by init.
	CommandRegistry = mbp.NewCommandRegistry()

	// fs is the filesystem of command inputs and outputs.
	fs = afero.NewOsFs()
	// stdin and stdout of commands.
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
)

// InputConfig is common configuration of commands which read an input.
type InputConfig struct {
	Input string `long:"input" short:"i" default:"-" description:"Input path. Use '-' for stdin"`
}

// OutputConfig is common configuration of commands which write an output.
type OutputConfig struct {
	Output string `long:"output" short:"o" default:"-" description:"Output path. Use '-' for stdout"`
}

func (cfg InputConfig) read() ([]byte, error) {
	if cfg.Input == "-" {
		return io.ReadAll(stdin)
	}
	return afero.ReadFile(fs, cfg.Input)
}

func (cfg OutputConfig) write(b []byte) error {
	if cfg.Output == "-" {
		var _, err = stdout.Write(b)
		return err
	}
	return afero.WriteFile(fs, cfg.Output, b, 0644)
}

// decodeYAML strictly decodes the YAML input into |into|.
func (cfg InputConfig) decodeYAML(into interface{}) error {
	var buffer, err = cfg.read()
	mbp.Must(err, "failed to read YAML input", "input", cfg.Input)

	if err = yaml.UnmarshalStrict(buffer, into); err != nil {
		// `yaml` produces nicely formatted error messages that are best printed as-is.
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		return errors.New("YAML decode failed")
	}
	return nil
}

func startup() (*session.Session, transport.Transport) {
	mbp.InitLog(baseCfg.Log)

	mbp.Must(baseCfg.Session.Validate(), "invalid session configuration")
	var tr, err = transport.New(baseCfg.Transport)
	mbp.Must(err, "invalid transport configuration")

	return session.New(baseCfg.Session), tr
}

func newParser() *flags.Parser {
	var parser = flags.NewParser(baseCfg, flags.Default)

	mbp.AddPrintConfigCmd(parser, iniFilename)
	parser.LongDescription = `streamctl is a tool for building, encoding, and inspecting stream message bodies.

	See --help pages of each sub-command for documentation and usage examples.
	Optionally configure streamctl with a '` + iniFilename + `' file in the current working directory,
	or with '~/.config/streammsg/` + iniFilename + `'. Use the 'print-config' sub-command to inspect
	the tool's current configuration.
	`
	mbp.Must(CommandRegistry.AddCommands("", parser.Command, true), "could not add sub-commands")
	return parser
}

// Execute streamctl with process arguments and configuration.
func Execute() {
	mbp.MustParseConfig(newParser(), iniFilename)
}
