package results

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	session    lipgloss.Style
	active     lipgloss.Style
	detail     lipgloss.Style
	pending    lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	tier       lipgloss.Style
	optimal    lipgloss.Style
	label      lipgloss.Style
	meta       lipgloss.Style
	positive   lipgloss.Style
	negative   lipgloss.Style
	neutral    lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		session:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		active:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		pending:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		tier:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		optimal:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("159")),
		label:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		meta:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		positive:   lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		negative:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		neutral:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
