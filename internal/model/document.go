package model

// Document is the persisted application state.
type Document struct {
	Tasks         TaskList
	SprintRecords []SprintRecord
	SleepLog      SleepLog
	WeeklyReviews Reviews
}

func EmptyDocument() Document {
	return Document{
		Tasks:         TaskList{},
		SprintRecords: []SprintRecord{},
		SleepLog:      SleepLog{},
		WeeklyReviews: Reviews{},
	}
}

// Clone returns a copy that shares no slices with d.
func (d Document) Clone() Document {
	out := EmptyDocument()
	out.Tasks = append(out.Tasks, d.Tasks...)
	out.SprintRecords = append(out.SprintRecords, d.SprintRecords...)
	out.SleepLog = append(out.SleepLog, d.SleepLog...)
	out.WeeklyReviews = append(out.WeeklyReviews, d.WeeklyReviews...)
	return out
}
