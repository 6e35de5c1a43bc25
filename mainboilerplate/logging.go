package mainboilerplate

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// LogConfig configures handling of application log events.
type LogConfig struct {
	Level  string `long:"level" env:"LEVEL" default:"warn" choice:"trace" choice:"debug" choice:"info" choice:"warn" choice:"error" choice:"fatal" description:"Logging level"`
	Format string `long:"format" env:"FORMAT" default:"text" choice:"json" choice:"text" choice:"color" description:"Logging output format"`
}

// InitLog configures the standard logger from the LogConfig.
func InitLog(cfg LogConfig) {
	if err := configureLogger(log.StandardLogger(), cfg); err != nil {
		log.WithField("err", err).Fatal("unrecognized log level")
	}
}

// NewLogger returns a Logger writing to |out| which is configured from the
// LogConfig, independent of the standard logger.
func NewLogger(cfg LogConfig, out io.Writer) (*log.Logger, error) {
	var l = log.New()
	l.SetOutput(out)
	return l, configureLogger(l, cfg)
}

func configureLogger(l *log.Logger, cfg LogConfig) error {
	switch cfg.Format {
	case "json":
		l.SetFormatter(&log.JSONFormatter{})
	case "text":
		l.SetFormatter(&log.TextFormatter{})
	case "color":
		l.SetFormatter(&log.TextFormatter{ForceColors: true})
	}

	var lvl, err = log.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	l.SetLevel(lvl)
	return nil
}
