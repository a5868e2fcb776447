package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"

	dErrors "medsim/pkg/domain-errors"
)

// maxKeyLength bounds every identifier accepted at a trust boundary.
const maxKeyLength = 256

// Identity is an opaque, already-authenticated caller identity.
type Identity string

// InstructorID keys the instructor registry. Instructors are keyed by their own identity.
type InstructorID = Identity

// SimulatorID keys the simulator registry.
type SimulatorID string

// ScenarioID keys the scenario registry.
type ScenarioID string

// SessionID keys the session ledger.
type SessionID string

func (i Identity) String() string    { return string(i) }
func (i SimulatorID) String() string { return string(i) }
func (i ScenarioID) String() string  { return string(i) }
func (i SessionID) String() string   { return string(i) }

func (i Identity) IsNil() bool    { return i == "" }
func (i SimulatorID) IsNil() bool { return i == "" }
func (i ScenarioID) IsNil() bool  { return i == "" }
func (i SessionID) IsNil() bool   { return i == "" }

// ParseIdentity validates a caller or instructor identity from external input.
func ParseIdentity(s string) (Identity, error) {
	v, err := parseKey("identity", s)
	return Identity(v), err
}

// ParseSimulatorID validates a simulator key from external input.
func ParseSimulatorID(s string) (SimulatorID, error) {
	v, err := parseKey("simulator id", s)
	return SimulatorID(v), err
}

// ParseScenarioID validates a scenario key from external input.
func ParseScenarioID(s string) (ScenarioID, error) {
	v, err := parseKey("scenario id", s)
	return ScenarioID(v), err
}

// ParseSessionID validates a session key from external input.
func ParseSessionID(s string) (SessionID, error) {
	v, err := parseKey("session id", s)
	return SessionID(v), err
}

// parseKey enforces the shared key invariant: non-blank, bounded, valid UTF-8,
// no control or invisible format characters. Keys are otherwise opaque and are
// returned exactly as given.
func parseKey(label, s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, label+" is required")
	}
	if len(s) > maxKeyLength {
		return "", dErrors.New(dErrors.CodeInvalidInput, label+" is too long")
	}
	if !utf8.ValidString(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, label+" is not valid UTF-8")
	}
	for _, r := range s {
		if unicode.IsControl(r) || unicode.Is(unicode.Cf, r) {
			return "", dErrors.New(dErrors.CodeInvalidInput, label+" contains invalid characters")
		}
	}
	return s, nil
}
