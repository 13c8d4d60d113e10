package live

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"feedbackbot/internal/logging"
	"feedbackbot/internal/survey"
)

// Options configures the live UI model.
type Options struct {
	Saver      survey.Saver
	Logger     survey.Logger
	Respondent string
	ExitWord   string
	NoColor    bool
	Now        func() time.Time
}

// Model renders a chat-style survey session using Bubble Tea. The driver is
// only touched by one command at a time: input is blocked while an answer
// or save is in flight.
type Model struct {
	ctx      context.Context
	driver   *survey.Driver
	opts     Options
	state    State
	viewport viewport.Model
	input    textinput.Model
	width    int
	saving   bool
	result   survey.Result
	err      error
}

// NewModel constructs a live UI model for a driver.
func NewModel(ctx context.Context, driver *survey.Driver, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	input := textinput.New()
	input.Prompt = "You: "
	input.Placeholder = "Type your answer"
	input.CharLimit = 2000
	input.Focus()
	return Model{
		ctx:      ctx,
		driver:   driver,
		opts:     opts,
		viewport: viewport.New(80, 20),
		input:    input,
		width:    80,
		state:    State{Phase: PhaseWaiting},
	}
}

// State returns the current UI state.
func (m Model) State() State {
	return m.state
}

// Result returns the session outcome.
func (m Model) Result() survey.Result {
	return m.result
}

// Err returns an unexpected session failure.
func (m Model) Err() error {
	return m.err
}

// startMsg begins the session.
type startMsg struct{}

// outcomeMsg carries the driver's verdict on an answer.
type outcomeMsg struct {
	outcome survey.Outcome
	err     error
}

// savedMsg carries the persistence result.
type savedMsg struct {
	err error
}

// Init focuses the input and starts the session.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg { return startMsg{} })
}

// Update consumes key presses and session messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.viewport.Width = typed.Width
		m.viewport.Height = max(typed.Height-4, 1)
		m.input.Width = max(typed.Width-len(m.input.Prompt)-1, 1)
		m.refresh()
		return m, nil
	case startMsg:
		m.opts.Logger.Infof("Survey started.")
		m.state = Reduce(m.state, Event{Kind: EventStart})
		return m.presentNext()
	case outcomeMsg:
		if typed.err != nil {
			m.err = typed.err
			return m, tea.Quit
		}
		m.state = Reduce(m.state, Event{Kind: EventOutcome, Outcome: typed.outcome})
		m.refresh()
		switch {
		case typed.outcome.Done:
			return m.complete()
		case typed.outcome.Kind == survey.Clarify:
			m.input.Focus()
			return m, nil
		default:
			return m.presentNext()
		}
	case savedMsg:
		m.saving = false
		if typed.err != nil {
			m.result.SaveErr = typed.err
			m.opts.Logger.Errorf("Error saving responses: %v", typed.err)
			m.state = Reduce(m.state, Event{Kind: EventSaveFailed, Err: typed.err})
		} else {
			m.result.Saved = true
			m.opts.Logger.Infof("Saved response %s.", m.result.Response.ID)
			m.state = Reduce(m.state, Event{Kind: EventSaved, Location: saverLocation(m.opts.Saver)})
		}
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleKey routes key presses by phase.
func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		if m.state.Phase == PhaseFinished {
			return m, tea.Quit
		}
		if m.saving {
			return m, nil
		}
		return m.exit()
	case tea.KeyEnter:
		switch m.state.Phase {
		case PhaseFinished:
			return m, tea.Quit
		case PhaseAnswering:
			return m.submit()
		default:
			return m, nil
		}
	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(key)
		return m, cmd
	}
	if m.state.Phase != PhaseAnswering {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

// submit hands the typed answer to the driver off the UI loop.
func (m Model) submit() (tea.Model, tea.Cmd) {
	answer := m.input.Value()
	m.input.SetValue("")
	if survey.IsExitCommand(answer, m.opts.ExitWord) {
		return m.exit()
	}
	m.state = Reduce(m.state, Event{Kind: EventAnswer, Text: answer})
	m.input.Blur()
	m.refresh()
	ctx, driver := m.ctx, m.driver
	return m, func() tea.Msg {
		outcome, err := driver.Submit(ctx, answer)
		return outcomeMsg{outcome: outcome, err: err}
	}
}

// presentNext shows the next question.
func (m Model) presentNext() (tea.Model, tea.Cmd) {
	if m.driver.State() == survey.Done {
		return m.complete()
	}
	prompt, err := m.driver.Present()
	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	m.state = Reduce(m.state, Event{Kind: EventPrompt, Prompt: prompt})
	m.input.Focus()
	m.refresh()
	return m, nil
}

// complete persists the finished survey.
func (m Model) complete() (tea.Model, tea.Cmd) {
	m.opts.Logger.Infof("Survey completed successfully.")
	m.result.Response = m.driver.Response(m.opts.Respondent, m.opts.Now())
	m.input.Blur()
	if m.opts.Saver == nil {
		m.state = Reduce(m.state, Event{Kind: EventSaved})
		m.refresh()
		return m, nil
	}
	m.saving = true
	ctx, saver, response := m.ctx, m.opts.Saver, m.result.Response
	return m, func() tea.Msg {
		return savedMsg{err: saver.Save(ctx, response)}
	}
}

// exit ends the session without persisting.
func (m Model) exit() (tea.Model, tea.Cmd) {
	m.opts.Logger.Infof("Survey terminated by user.")
	m.result = survey.Result{Exited: true}
	m.state = Reduce(m.state, Event{Kind: EventExit})
	m.refresh()
	return m, tea.Quit
}

// refresh re-renders the transcript into the viewport.
func (m *Model) refresh() {
	m.viewport.SetContent(renderTranscript(m.state, m.width, m.opts.NoColor))
	m.viewport.GotoBottom()
}

// View renders the live UI.
func (m Model) View() string {
	header := renderHeader(m.state, m.opts.NoColor)
	footer := renderFooter(m.state, m.opts.NoColor)
	input := ""
	if m.state.Phase == PhaseAnswering || m.state.Phase == PhaseWaiting {
		input = m.input.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View(), input, footer)
}

// Run runs a full survey session in the terminal.
func Run(ctx context.Context, driver *survey.Driver, programOpts []tea.ProgramOption, opts Options) (survey.Result, error) {
	if driver == nil {
		return survey.Result{}, errors.New("live: driver is nil")
	}
	model := NewModel(ctx, driver, opts)
	programOpts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(model.ctx)}, programOpts...)
	final, err := tea.NewProgram(model, programOpts...).Run()
	if err != nil {
		return survey.Result{}, err
	}
	finished, ok := final.(Model)
	if !ok {
		return survey.Result{}, errors.New("live: unexpected model type")
	}
	return finished.result, finished.err
}

func saverLocation(saver survey.Saver) string {
	if located, ok := saver.(interface{ Location() string }); ok {
		return located.Location()
	}
	return ""
}
