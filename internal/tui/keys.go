package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Quit   key.Binding

	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Cancel key.Binding

	Left  key.Binding
	Right key.Binding
	Yes   key.Binding
	No    key.Binding

	ForceQuit key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "haut")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "bas")),
		Add:    key.NewBinding(key.WithKeys("a", "+"), key.WithHelp("a", "ajouter")),
		Edit:   key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "modifier")),
		Delete: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "supprimer")),
		Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quitter")),

		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "suivant")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "précédent")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "valider")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "annuler")),

		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "choisir")),
		Right: key.NewBinding(key.WithKeys("right", "l")),
		Yes:   key.NewBinding(key.WithKeys("y", "o"), key.WithHelp("y", "oui")),
		No:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "non")),

		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Add, k.Edit, k.Delete, k.Quit}
}

func (k keyMap) formHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Submit, k.Cancel}
}

func (k keyMap) dialogHelp(confirm bool) []key.Binding {
	if confirm {
		return []key.Binding{k.Left, k.Yes, k.No, k.Submit, k.Cancel}
	}
	return []key.Binding{k.Submit}
}

func newHelp() help.Model {
	h := help.New()
	h.ShortSeparator = "  ·  "
	h.Styles.ShortKey = keyStyle
	h.Styles.ShortDesc = helpDescStyle
	h.Styles.ShortSeparator = helpDescStyle
	return h
}
