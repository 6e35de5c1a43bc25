// Package session creates stream Messages under a common configuration,
// and describes the provider which implements them.
package session

import (
	"sync/atomic"

	petname "github.com/dustinkirkland/golang-petname"
	log "github.com/sirupsen/logrus"
	"go.gazette.dev/streammsg/metrics"
	"go.gazette.dev/streammsg/stream"
)

// Config of a Session.
type Config struct {
	ID          string `long:"id" env:"ID" description:"Unique ID of the session. Auto-generated if not set"`
	MaxBodySize int    `long:"max-body-size" env:"MAX_BODY_SIZE" default:"0" description:"Maximum body size of created stream messages, in bytes. Unlimited if zero"`
}

// Validate returns an error if the Config is invalid.
func (cfg Config) Validate() error {
	if cfg.MaxBodySize < 0 {
		return stream.NewProviderFailure(errInvalidMaxBodySize, "invalid session config")
	}
	return nil
}

// Session creates stream Messages. It's safe for concurrent use, though
// each Message it creates is not.
type Session struct {
	cfg     Config
	created int64 // Accessed atomically.
}

// New returns a Session of the Config. If Config.ID is empty, a random
// ID is generated.
func New(cfg Config) *Session {
	if cfg.ID == "" {
		cfg.ID = petname.Generate(2, "-")
	}
	log.WithFields(log.Fields{
		"id":          cfg.ID,
		"maxBodySize": cfg.MaxBodySize,
	}).Debug("new session")

	return &Session{cfg: cfg}
}

// ID returns the ID of the Session.
func (s *Session) ID() string { return s.cfg.ID }

// Config returns the Config of the Session.
func (s *Session) Config() Config { return s.cfg }

// Created returns the number of Messages created by the Session.
func (s *Session) Created() int64 { return atomic.LoadInt64(&s.created) }

// CreateStream returns a new, empty WriteOnly Message which is bounded by
// the Session's MaxBodySize.
func (s *Session) CreateStream() *stream.Message {
	var n = atomic.AddInt64(&s.created, 1)
	metrics.StreamsCreatedTotal.WithLabelValues(s.cfg.ID).Inc()

	if log.IsLevelEnabled(log.TraceLevel) {
		log.WithFields(log.Fields{"session": s.cfg.ID, "n": n}).Trace("created stream")
	}
	return stream.NewMessage(stream.Options{MaxBodySize: s.cfg.MaxBodySize})
}
