package live

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the title and progress line.
func renderHeader(state State, noColor bool) string {
	line := "Feedback Bot"
	if state.Total > 0 {
		current := min(state.Index+1, state.Total)
		line += " | Question " + strconv.Itoa(current) + "/" + strconv.Itoa(state.Total)
		line += " | Answered: " + strconv.Itoa(state.Answered) + " Skipped: " + strconv.Itoa(state.Skipped)
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderTranscript renders every transcript entry, wrapped to width.
func renderTranscript(state State, width int, noColor bool) string {
	lines := make([]string, 0, len(state.Entries))
	for _, entry := range state.Entries {
		lines = append(lines, renderEntry(entry, width, noColor))
	}
	return strings.Join(lines, "\n")
}

// renderEntry renders one speaker-prefixed entry.
func renderEntry(entry Entry, width int, noColor bool) string {
	var label string
	var color lipgloss.Color
	switch entry.Speaker {
	case SpeakerUser:
		label, color = "You: ", lipgloss.Color("250")
	case SpeakerNotice:
		label, color = "", lipgloss.Color("214")
	default:
		label, color = "Bot: ", lipgloss.Color("36")
	}
	text := label + entry.Text
	if width > 0 {
		text = lipgloss.NewStyle().Width(width).Render(text)
	}
	return stylize(text, noColor, color)
}

// renderFooter renders the last event line.
func renderFooter(state State, noColor bool) string {
	if state.LastEvent == "" {
		return ""
	}
	return stylize(state.LastEvent, noColor, lipgloss.Color("244"))
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
