package model

import "time"

// SprintDurationSeconds is the fixed length of a focus sprint.
const SprintDurationSeconds = 300

// SprintRecord marks one sprint that ran to completion.
type SprintRecord struct {
	CompletedAt time.Time
	// Raw holds a persisted value that could not be parsed. It is written back
	// unchanged and ignored by statistics.
	Raw string
}

func NewSprintRecord(at time.Time) SprintRecord {
	return SprintRecord{CompletedAt: at.Truncate(time.Microsecond)}
}

func (r SprintRecord) Valid() bool {
	return r.Raw == "" && !r.CompletedAt.IsZero()
}
