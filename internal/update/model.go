package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/focusd/internal/app"
	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/sprint"
	"github.com/sandeepkv93/focusd/internal/stats"
)

type View string

const (
	ViewDashboard View = "Dashboard"
	ViewReview    View = "Review"
	ViewHistory   View = "History"
)

var allViews = []View{ViewDashboard, ViewReview, ViewHistory}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Dashboard string
	Review    string
	History   string
	Help      string
	Quit      string
}

type inputMode int

const (
	modeNormal inputMode = iota
	modeAddTask
	modePalette
	modeConfirmReset
)

var reviewTitles = []string{"Wins", "Struggles", "Improvements", "Priorities"}

type reviewEditor struct {
	week   time.Time
	fields []textarea.Model
	focus  int
	dirty  bool
}

type Options struct {
	Context context.Context
	// MarkdownStyle is a glamour standard style name.
	MarkdownStyle string
}

type Model struct {
	CurrentView View
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	state         *app.State
	ctx           context.Context
	markdownStyle string
	mode          inputMode
	cursor        int

	doc    model.Document
	sprint sprint.State
	week   stats.WeeklyStats
	review reviewEditor

	taskList        list.Model
	addInput        textinput.Model
	commandInput    textinput.Model
	sprintProgress  progress.Model
	helpModel       help.Model
	historyViewport viewport.Model
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// StateChangeMsg carries a notification from app.State into the program.
type StateChangeMsg struct {
	Change app.Change
}

func NewModel(st *app.State, opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	style := opts.MarkdownStyle
	if style == "" {
		style = "dark"
	}
	m := Model{
		CurrentView: ViewDashboard,
		Keys: GlobalKeyMap{
			Dashboard: "1",
			Review:    "2",
			History:   "3",
			Help:      "?",
			Quit:      "q",
		},
		state:         st,
		ctx:           ctx,
		markdownStyle: style,
	}
	m.initBubbleComponents()
	m.refresh()
	m.loadReview()
	return m
}

func (m *Model) initBubbleComponents() {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	m.taskList = list.New([]list.Item{}, delegate, 44, 12)
	m.taskList.SetShowTitle(false)
	m.taskList.SetShowHelp(false)
	m.taskList.SetShowStatusBar(false)
	m.taskList.SetFilteringEnabled(false)

	m.addInput = textinput.New()
	m.addInput.Prompt = "add> "
	m.addInput.Placeholder = "task name"
	m.addInput.CharLimit = 256
	m.addInput.Width = 38

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.sprintProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(30))
	m.helpModel = help.New()
	m.historyViewport = viewport.New(96, 18)

	m.review.fields = make([]textarea.Model, len(reviewTitles))
	for i, title := range reviewTitles {
		ta := textarea.New()
		ta.SetWidth(92)
		ta.SetHeight(3)
		ta.ShowLineNumbers = false
		ta.Placeholder = title
		m.review.fields[i] = ta
	}
}

// refresh reloads everything derived from the document.
func (m *Model) refresh() {
	m.doc = m.state.Snapshot()
	m.sprint = m.state.Sprint()
	m.week = m.state.CurrentWeekStats()

	items := make([]list.Item, 0, len(m.doc.Tasks))
	for i, name := range m.doc.Tasks {
		title := name
		if name == m.sprint.CurrentTask {
			title = "* " + name
		}
		items = append(items, listItem{title: itoa(i+1) + ". " + title})
	}
	m.taskList.SetItems(items)
	m.cursor = clamp(m.cursor, 0, len(items)-1)
	if len(items) > 0 {
		m.taskList.Select(m.cursor)
	}

	m.historyViewport.SetContent(m.renderHistoryMarkdown())
}
