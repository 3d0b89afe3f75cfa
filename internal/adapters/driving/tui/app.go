package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/tubeqa/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/tubeqa/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/tubeqa/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tubeqa/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tubeqa/internal/adapters/driving/tui/views/chat"
	"github.com/custodia-labs/tubeqa/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/tubeqa/internal/adapters/driving/tui/views/video"
	"github.com/custodia-labs/tubeqa/internal/core/domain"
	"github.com/custodia-labs/tubeqa/internal/core/ports/driving"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
//
// The App owns the single session. Assistant calls run as commands and at
// most one is in flight; views only see copies handed to them by the App.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	videoView    *video.View
	chatView     *chat.View
	settingsView *settings.View
	statusBar    *status.Bar

	session driving.Session

	// summary describes the indexed video, nil until one succeeds.
	summary *domain.IndexSummary

	currentView  messages.ViewType
	previousView messages.ViewType

	// busy is set while an index or ask command is running.
	busy bool

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		videoView:    video.NewView(s),
		chatView:     chat.NewView(s),
		settingsView: settings.NewView(s),
		statusBar:    status.NewBar(s, km),
		session:      ports.Assistant.NewSession(),
		currentView:  messages.ViewVideo,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("tubeqa"),
		a.videoView.Init(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.VideoRequested:
		if a.busy {
			return a, nil
		}
		a.busy = true
		a.err = nil
		a.statusBar.SetState(status.StateProcessing)
		return a, a.indexVideo(msg.URL)

	case messages.VideoIndexed:
		a.busy = false
		if msg.Err != nil {
			a.fail(msg.Err)
			return a, nil
		}
		a.summary = msg.Summary
		a.videoView.SetSummary(msg.Summary)
		a.chatView.SetSummary(msg.Summary)
		a.chatView.SetTurns(nil)
		a.statusBar.SetState(status.StateReady)
		a.videoView.Reset()
		return a, a.switchTo(messages.ViewChat)

	case messages.QuestionSubmitted:
		if a.busy {
			return a, nil
		}
		if a.summary == nil {
			a.fail(domain.ErrNotIndexed)
			return a, nil
		}
		a.busy = true
		a.err = nil
		a.chatView.SetPending(msg.Question)
		a.statusBar.SetState(status.StateThinking)
		return a, a.ask(msg.Question)

	case messages.AnswerReceived:
		a.busy = false
		if msg.Err != nil {
			a.chatView.SetPending("")
			a.fail(msg.Err)
			return a, nil
		}
		a.chatView.SetTurns(msg.History)
		a.statusBar.SetState(status.StateReady)
		return a, nil

	case messages.HistoryCleared:
		if msg.Err != nil {
			a.fail(msg.Err)
			return a, nil
		}
		a.chatView.SetTurns(nil)
		a.statusBar.SetInfo("Conversation cleared")
		return a, nil

	case messages.SettingsSubmitted:
		if err := a.ports.Assistant.Configure(a.session, msg.Settings); err != nil {
			a.fail(err)
			return a, nil
		}
		a.statusBar.SetInfo("Settings saved. They apply to the next processed video.")
		return a, a.switchTo(a.previousView)

	case messages.ErrorOccurred:
		a.fail(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.forward(msg)
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keymap.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keymap.Settings):
		if a.busy || a.currentView == messages.ViewSettings {
			return a, nil
		}
		a.settingsView.SetSettings(a.session.Settings())
		a.settingsView.Reset()
		return a, a.switchTo(messages.ViewSettings)

	case key.Matches(msg, a.keymap.NewVideo):
		if a.currentView == messages.ViewSettings {
			return a, nil
		}
		return a, a.switchTo(messages.ViewVideo)

	case key.Matches(msg, a.keymap.ClearChat):
		if a.busy || a.currentView != messages.ViewChat {
			return a, nil
		}
		err := a.ports.Assistant.ClearHistory(a.session)
		return a, func() tea.Msg {
			return messages.HistoryCleared{Err: err}
		}

	case key.Matches(msg, a.keymap.Back):
		switch a.currentView {
		case messages.ViewSettings:
			return a, a.switchTo(a.previousView)
		case messages.ViewChat:
			return a, a.switchTo(messages.ViewVideo)
		case messages.ViewVideo:
			if a.summary != nil {
				return a, a.switchTo(messages.ViewChat)
			}
		}
		return a, nil
	}

	return a, a.forward(msg)
}

// forward passes a message to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewVideo:
		a.videoView, cmd = a.videoView.Update(msg)
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	}
	return cmd
}

// switchTo activates a view and updates the key hints.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	if view == messages.ViewSettings && a.currentView != messages.ViewSettings {
		a.previousView = a.currentView
	}
	a.currentView = view

	switch view {
	case messages.ViewVideo:
		a.statusBar.SetHints(a.keymap.VideoHelp())
		return a.videoView.Init()
	case messages.ViewChat:
		a.statusBar.SetHints(a.keymap.ChatHelp())
		return a.chatView.Init()
	case messages.ViewSettings:
		a.statusBar.SetHints(a.keymap.SettingsHelp())
	}
	return nil
}

// fail records an error and shows it in the status bar.
func (a *App) fail(err error) {
	a.err = err
	a.statusBar.SetError(describeError(err))
}

// indexVideo runs IndexVideo off the update loop.
func (a *App) indexVideo(rawURL string) tea.Cmd {
	ctx, assistant, session := a.ctx, a.ports.Assistant, a.session
	return func() tea.Msg {
		summary, err := assistant.IndexVideo(ctx, session, rawURL)
		return messages.VideoIndexed{Summary: summary, Err: err}
	}
}

// ask runs Ask off the update loop and returns the updated history.
func (a *App) ask(question string) tea.Cmd {
	ctx, assistant, session := a.ctx, a.ports.Assistant, a.session
	return func() tea.Msg {
		answer, err := assistant.Ask(ctx, session, question)
		if err != nil {
			return messages.AnswerReceived{Question: question, Err: err}
		}
		history, err := assistant.History(session)
		return messages.AnswerReceived{Question: question, Answer: answer, History: history, Err: err}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var content string
	switch a.currentView {
	case messages.ViewChat:
		content = a.chatView.View()
	case messages.ViewSettings:
		content = a.settingsView.View()
	default:
		content = a.videoView.View()
	}

	body := lipgloss.NewStyle().Height(max(a.height-1, 1)).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, body, a.statusBar.View())
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Session returns the session driven by the app.
func (a *App) Session() driving.Session {
	return a.session
}

// Summary returns the indexed video, or nil before the first success.
func (a *App) Summary() *domain.IndexSummary {
	return a.summary
}

// Busy returns whether an assistant call is in flight.
func (a *App) Busy() bool {
	return a.busy
}

// Status returns the status bar text.
func (a *App) Status() string {
	return a.statusBar.Text()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	contentHeight := max(height-1, 1)
	a.videoView.SetDimensions(width, contentHeight)
	a.chatView.SetDimensions(width, contentHeight)
	a.settingsView.SetDimensions(width, contentHeight)
	a.statusBar.SetWidth(width)
}
