package model

import (
	"fmt"
	"strings"
	"time"
)

const SleepTimeLayout = "2006-01-02 15:04"

type SleepKind string

const (
	SleepKindSleep SleepKind = "Sleep"
	SleepKindWake  SleepKind = "Wake"
)

func (k SleepKind) IsValid() bool {
	switch k {
	case SleepKindSleep, SleepKindWake:
		return true
	default:
		return false
	}
}

type SleepEntry struct {
	Kind SleepKind
	At   time.Time
	// Raw holds a persisted label that could not be parsed.
	Raw string
}

func NewSleepEntry(kind SleepKind, at time.Time) (SleepEntry, error) {
	if !kind.IsValid() {
		return SleepEntry{}, fmt.Errorf("%w: %q", ErrInvalidSleepKind, kind)
	}
	return SleepEntry{Kind: kind, At: at.Truncate(time.Minute)}, nil
}

func (e SleepEntry) Valid() bool {
	return e.Raw == "" && e.Kind.IsValid() && !e.At.IsZero()
}

// Label renders the entry the way it is displayed and persisted, for example
// "Sleep at 2024-03-11 22:15".
func (e SleepEntry) Label() string {
	if e.Raw != "" || !e.Kind.IsValid() {
		return e.Raw
	}
	return fmt.Sprintf("%s at %s", e.Kind, e.At.Format(SleepTimeLayout))
}

// ParseSleepEntry reads a persisted label in local time. Labels that do not
// match "<Sleep|Wake> at YYYY-MM-DD HH:MM" are kept verbatim in Raw.
func ParseSleepEntry(label string) SleepEntry {
	kind, ts, ok := strings.Cut(label, " at ")
	if !ok {
		return SleepEntry{Raw: label}
	}
	k := SleepKind(strings.TrimSpace(kind))
	if !k.IsValid() {
		return SleepEntry{Raw: label}
	}
	at, err := time.ParseInLocation(SleepTimeLayout, strings.TrimSpace(ts), time.Local)
	if err != nil {
		return SleepEntry{Raw: label}
	}
	return SleepEntry{Kind: k, At: at}
}

type SleepLog []SleepEntry

func (l *SleepLog) Append(e SleepEntry) {
	*l = append(*l, e)
}
