package update

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func formatDuration(totalSec int) string {
	if totalSec < 0 {
		totalSec = 0
	}
	min := totalSec / 60
	sec := totalSec % 60
	return fmt.Sprintf("%02d:%02d", min, sec)
}

func clamp(value, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// typeInto appends typed runes directly and forwards editing keys to the
// input.
func typeInto(in textinput.Model, msg tea.KeyMsg) textinput.Model {
	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		in.SetValue(in.Value() + string(msg.Runes))
		in.CursorEnd()
		return in
	}
	in, _ = in.Update(msg)
	return in
}
