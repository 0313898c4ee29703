package model

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// TaskList is the ordered list of task names. Duplicates are allowed and a
// task has no identity beyond its position.
type TaskList []string

func ValidateTaskName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("%w: task name is required", ErrInvalidInput)
	}
	return trimmed, nil
}

func (l *TaskList) Add(name string) error {
	trimmed, err := ValidateTaskName(name)
	if err != nil {
		return err
	}
	*l = append(*l, trimmed)
	return nil
}

func (l *TaskList) RemoveAt(index int) (string, error) {
	if index < 0 || index >= len(*l) {
		return "", fmt.Errorf("%w: task %d of %d", ErrOutOfRange, index, len(*l))
	}
	removed := (*l)[index]
	next := make(TaskList, 0, len(*l)-1)
	next = append(next, (*l)[:index]...)
	next = append(next, (*l)[index+1:]...)
	*l = next
	return removed, nil
}

func (l TaskList) At(index int) (string, error) {
	if index < 0 || index >= len(l) {
		return "", fmt.Errorf("%w: task %d of %d", ErrOutOfRange, index, len(l))
	}
	return l[index], nil
}

// PickRandom returns a uniformly chosen task without removing it.
func (l TaskList) PickRandom(rng *rand.Rand) (string, bool) {
	if len(l) == 0 {
		return "", false
	}
	if rng == nil {
		return l[rand.IntN(len(l))], true
	}
	return l[rng.IntN(len(l))], true
}
