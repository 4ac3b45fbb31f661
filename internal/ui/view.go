package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/xaenox/rubot/internal/models"
)

const (
	inputHeight  = 3
	chromeHeight = 3 // title bar plus the hint line under the input
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	hintStyle  = lipgloss.NewStyle().Faint(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))

	timeStyle      = lipgloss.NewStyle().Faint(true)
	userNameStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	botNameStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("130"))
	messageTextSty = lipgloss.NewStyle()
)

func (a *App) View() string {
	if a.state == stateLogin {
		return a.loginView()
	}
	return a.chatView()
}

func (a *App) loginView() string {
	view := titleStyle.Render("Вход в чат-бот") + "\n\n" +
		"Введите имя и нажмите Enter:\n\n" +
		a.nameInput.View() + "\n"
	if a.loginErr != "" {
		view += "\n" + errStyle.Render(a.loginErr) + "\n"
	}
	return view + "\n" + hintStyle.Render("esc — выход")
}

func (a *App) chatView() string {
	return titleStyle.Render("Чат с ботом — "+a.session.User()) + "\n" +
		a.viewport.View() + "\n" +
		a.input.View() + "\n" +
		hintStyle.Render("enter — отправить · ctrl+l — очистить чат · esc — выход")
}

// renderMessage renders one log entry as "[HH:mm] Author: text" with the
// author colored by side, matching Message.String.
func renderMessage(m models.Message) string {
	nameStyle := botNameStyle
	if m.IsUser {
		nameStyle = userNameStyle
	}
	return timeStyle.Render("["+m.Time+"] ") +
		nameStyle.Render(m.Author+": ") +
		messageTextSty.Render(m.Text)
}
