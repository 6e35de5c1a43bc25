package stream

import (
	"fmt"
	"strings"
)

// Kind is the type tag of a Field. Exactly ten Kinds exist and the set is closed.
type Kind uint8

const (
	// KindInvalid is the zero Kind. No Field of a Message ever has it.
	KindInvalid Kind = iota
	KindBoolean
	KindByte
	KindShort
	KindChar
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindString
	KindBytes
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindBoolean: "boolean",
	KindByte:    "byte",
	KindShort:   "short",
	KindChar:    "char",
	KindInt:     "int",
	KindLong:    "long",
	KindFloat:   "float",
	KindDouble:  "double",
	KindString:  "string",
	KindBytes:   "bytes",
}

// String returns the lower-case name of the Kind, eg "long".
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Valid returns true iff the Kind is one of the ten Field kinds.
func (k Kind) Valid() bool { return k >= KindBoolean && k <= KindBytes }

// Kinds returns all valid Kinds, in tag order.
func Kinds() []Kind {
	return []Kind{KindBoolean, KindByte, KindShort, KindChar, KindInt,
		KindLong, KindFloat, KindDouble, KindString, KindBytes}
}

// ParseKind maps a Kind name (case-insensitive) to its Kind.
func ParseKind(s string) (Kind, error) {
	var n = strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds() {
		if kindNames[k] == n {
			return k, nil
		}
	}
	return KindInvalid, fmt.Errorf("unknown field kind %q", s)
}
