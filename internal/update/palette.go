package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusd/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case tea.KeyEnter:
		m = m.executePaletteCommand(m.commandInput.Value())
	default:
		m.commandInput = typeInto(m.commandInput, msg)
	}
	return m
}

func (m Model) executePaletteCommand(input string) Model {
	raw := strings.TrimSpace(input)
	res, err := commands.Run(raw, commands.ForState(m.ctx, m.state))
	m.closePalette()
	m.afterMutation(res.Message, err)
	return m
}

func (m *Model) closePalette() {
	m.mode = modeNormal
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func paletteUsage() []string {
	return commands.Usage()
}
