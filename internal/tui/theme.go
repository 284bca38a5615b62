package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the subset the screens use.
const (
	colorRed      lipgloss.Color = "#f38ba8"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
	colorMantle   lipgloss.Color = "#181825"
)

const (
	colorPrimary = colorBlue
	colorDanger  = colorRed
	colorSuccess = colorGreen
	colorWarning = colorYellow
	colorFocus   = colorLavender
	colorMuted   = colorOverlay1
)

var (
	headerStyle = lipgloss.NewStyle().
			Background(colorMantle).
			Foreground(colorText).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorText)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1)
	cardSelectedStyle = cardStyle.BorderForeground(colorFocus)
	nameStyle         = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	detailStyle       = lipgloss.NewStyle().Foreground(colorSubtext0)
	emptyStyle        = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)

	primaryButtonStyle = lipgloss.NewStyle().
				Foreground(colorBase).
				Background(colorPrimary).
				Bold(true).
				Padding(0, 1)
	dangerButtonStyle = primaryButtonStyle.Background(colorDanger)
	idleButtonStyle   = lipgloss.NewStyle().
				Foreground(colorText).
				Background(colorSurface0).
				Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorFocus).
			Padding(1, 2)
	modalTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorText).MarginBottom(1)
	labelStyle      = lipgloss.NewStyle().Foreground(colorText)
	labelErrStyle   = lipgloss.NewStyle().Foreground(colorDanger)
	errorTextStyle  = lipgloss.NewStyle().Foreground(colorDanger)

	statusStyle    = lipgloss.NewStyle().Foreground(colorSuccess)
	statusErrStyle = lipgloss.NewStyle().Foreground(colorDanger)
	noticeStyle    = lipgloss.NewStyle().Foreground(colorWarning)

	keyStyle      = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
	helpDescStyle = lipgloss.NewStyle().Foreground(colorMuted)
)
