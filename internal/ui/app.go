// Package ui implements the terminal presentation layer: a login screen
// followed by the chat view. It holds no chat logic of its own; everything
// flows through chat.Session.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/xaenox/rubot/internal/chat"
	"github.com/xaenox/rubot/internal/models"
)

type state int

const (
	stateLogin state = iota
	stateChat
)

// SessionFactory opens the chat session for the user who just logged in.
type SessionFactory func(user string) (*chat.Session, error)

// App is the bubbletea model for the whole client.
type App struct {
	state   state
	factory SessionFactory
	logger  *zap.Logger

	// login screen
	nameInput textinput.Model
	loginErr  string

	// chat screen
	session  *chat.Session
	viewport viewport.Model
	input    textarea.Model
	lines    []string

	width  int
	height int
	ready  bool
}

func NewApp(factory SessionFactory, logger *zap.Logger) *App {
	name := textinput.New()
	name.Placeholder = "Ваше имя"
	name.CharLimit = 64
	name.Focus()

	input := textarea.New()
	input.Placeholder = "Введите сообщение..."
	input.SetHeight(inputHeight)
	input.ShowLineNumbers = false

	return &App{
		state:     stateLogin,
		factory:   factory,
		logger:    logger,
		nameInput: name,
		input:     input,
	}
}

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil
	case tea.KeyMsg:
		if a.state == stateLogin {
			return a.updateLogin(msg)
		}
		return a.updateChat(msg)
	}
	return a.updateFocused(msg)
}

func (a *App) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return a, tea.Quit
	case tea.KeyEnter:
		name := strings.TrimSpace(a.nameInput.Value())
		if name == "" {
			return a, nil
		}
		return a, a.login(name)
	}

	var cmd tea.Cmd
	a.nameInput, cmd = a.nameInput.Update(msg)
	return a, cmd
}

// login opens the session and replays the stored conversation into the view.
func (a *App) login(name string) tea.Cmd {
	session, err := a.factory(name)
	if err != nil {
		a.logger.Error("Failed to open chat session",
			zap.Error(err),
			zap.String("user", name))
		a.loginErr = "Не удалось открыть чат. Попробуйте ещё раз."
		return nil
	}

	a.session = session
	a.lines = a.lines[:0]
	session.Start(func(m models.Message) {
		a.lines = append(a.lines, renderMessage(m))
	})

	a.state = stateChat
	a.loginErr = ""
	a.input.Focus()
	a.refreshViewport()
	return textarea.Blink
}

func (a *App) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC, msg.Type == tea.KeyEsc:
		a.session.Shutdown()
		return a, tea.Quit
	case msg.String() == "ctrl+l":
		a.session.Clear()
		a.reloadLines()
		return a, nil
	case msg.Type == tea.KeyEnter:
		if user, bot, ok := a.session.Send(a.input.Value()); ok {
			a.lines = append(a.lines, renderMessage(user), renderMessage(bot))
			a.refreshViewport()
		}
		a.input.Reset()
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.state {
	case stateLogin:
		a.nameInput, cmd = a.nameInput.Update(msg)
	case stateChat:
		a.input, cmd = a.input.Update(msg)
	}
	return a, cmd
}

// reloadLines re-renders the full log from the session, used after a clear.
func (a *App) reloadLines() {
	a.lines = a.lines[:0]
	for _, m := range a.session.Messages() {
		a.lines = append(a.lines, renderMessage(m))
	}
	a.refreshViewport()
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height

	chatHeight := height - inputHeight - chromeHeight
	if chatHeight < 1 {
		chatHeight = 1
	}
	if !a.ready {
		a.viewport = viewport.New(width, chatHeight)
		a.ready = true
	} else {
		a.viewport.Width = width
		a.viewport.Height = chatHeight
	}
	a.input.SetWidth(width)
	a.refreshViewport()
}

func (a *App) refreshViewport() {
	if !a.ready {
		return
	}
	a.viewport.SetContent(strings.Join(a.lines, "\n"))
	a.viewport.GotoBottom()
}
