package session

import (
	"errors"
	"fmt"
)

// MetaData describes the messaging API implemented by a Session, and its provider.
type MetaData struct {
	APIVersion      string
	APIMajorVersion int
	APIMinorVersion int

	ProviderName         string
	ProviderVersion      string
	ProviderMajorVersion int
	ProviderMinorVersion int
}

// Versions of the messaging API and its provider.
const (
	APIMajorVersion      = 2
	APIMinorVersion      = 0
	ProviderName         = "streammsg"
	ProviderMajorVersion = 1
	ProviderMinorVersion = 0
)

// MetaData returns the MetaData of the Session.
func (s *Session) MetaData() MetaData {
	return MetaData{
		APIVersion:           fmt.Sprintf("%d.%d", APIMajorVersion, APIMinorVersion),
		APIMajorVersion:      APIMajorVersion,
		APIMinorVersion:      APIMinorVersion,
		ProviderName:         ProviderName,
		ProviderVersion:      fmt.Sprintf("%d.%d", ProviderMajorVersion, ProviderMinorVersion),
		ProviderMajorVersion: ProviderMajorVersion,
		ProviderMinorVersion: ProviderMinorVersion,
	}
}

func (md MetaData) String() string {
	return fmt.Sprintf("%s %s (API %s)", md.ProviderName, md.ProviderVersion, md.APIVersion)
}

var errInvalidMaxBodySize = errors.New("MaxBodySize must be non-negative")
