package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ContactForm is a standalone name/email form. Submitting shows the entered
// values and keeps them in the inputs.
type ContactForm struct {
	keys   keyMap
	help   help.Model
	inputs [2]textinput.Model
	focus  int
	ack    string

	width  int
	height int
}

func NewContactForm() *ContactForm {
	c := &ContactForm{keys: defaultKeys(), help: newHelp()}
	for i, label := range []string{"Name", "Email"} {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = label
		ti.Width = formWidth - 10
		ti.CharLimit = 0
		c.inputs[i] = ti
	}
	c.inputs[0].Focus()
	return c
}

func (c *ContactForm) Init() tea.Cmd { return textinput.Blink }

func (c *ContactForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
		c.height = msg.Height
		return c, nil
	case tea.KeyMsg:
		if key.Matches(msg, c.keys.ForceQuit) {
			return c, tea.Quit
		}
		if c.ack != "" {
			if key.Matches(msg, c.keys.Submit, c.keys.Cancel) {
				c.ack = ""
			}
			return c, nil
		}
		switch {
		case key.Matches(msg, c.keys.Cancel):
			return c, tea.Quit
		case key.Matches(msg, c.keys.Submit):
			c.ack = fmt.Sprintf("Name: %s, Email: %s", c.inputs[0].Value(), c.inputs[1].Value())
			return c, nil
		case key.Matches(msg, c.keys.Next, c.keys.Prev):
			c.inputs[c.focus].Blur()
			c.focus = 1 - c.focus
			return c, c.inputs[c.focus].Focus()
		}
	}

	var cmd tea.Cmd
	c.inputs[c.focus], cmd = c.inputs[c.focus].Update(msg)
	return c, cmd
}

// Ack returns the acknowledgment being shown, or "" when none is.
func (c *ContactForm) Ack() string { return c.ack }

func (c *ContactForm) View() string {
	width, height := c.width, c.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	lines := []string{modalTitleStyle.Render("Contact Form")}
	for i, label := range []string{"Name", "Email"} {
		marker := "  "
		if i == c.focus {
			marker = keyStyle.Render("› ")
		}
		lines = append(lines, marker+labelStyle.Render(label), "  "+c.inputs[i].View())
	}
	lines = append(lines, "", primaryButtonStyle.Render("Submit"))
	form := modalStyle.Width(formWidth).Render(strings.Join(lines, "\n"))

	bindings := []key.Binding{c.keys.Next, c.keys.Submit, c.keys.Cancel}
	if c.ack != "" {
		bindings = c.keys.dialogHelp(false)
	}
	base := placeWithFooter(form, c.help.ShortHelpView(bindings), height)
	if c.ack != "" {
		box := modalStyle.Render(strings.Join([]string{c.ack, "", primaryButtonStyle.Render("OK")}, "\n"))
		base = overlayCenter(base, box, width, height)
	}
	return base
}
