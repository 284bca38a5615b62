package tui

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/jask/usermgr/internal/service"
	"github.com/jask/usermgr/internal/users"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	formWidth     = 44
)

var labels = map[users.Field]string{
	users.FieldLastName:  "Nom",
	users.FieldFirstName: "Prénom",
	users.FieldEmail:     "Email",
	users.FieldPhone:     "Téléphone",
	users.FieldPassword:  "Mot de passe",
}

type formInput struct {
	field users.Field
	input textinput.Model
}

const (
	choiceCancel = iota
	choiceConfirm
)

// App is the user management screen.
type App struct {
	screen *service.UserScreen
	log    logrus.FieldLogger
	keys   keyMap
	help   help.Model

	inputs []formInput
	focus  int
	cursor int
	choice int

	width  int
	height int

	status    string
	statusErr bool
}

func New(screen *service.UserScreen, log logrus.FieldLogger) *App {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &App{
		screen: screen,
		log:    log,
		keys:   defaultKeys(),
		help:   newHelp(),
	}
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil
	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			return a, tea.Quit
		}
		snap := a.screen.Snapshot()
		if snap.Dialog != nil {
			return a.handleDialogKey(msg, *snap.Dialog)
		}
		if _, open := snap.Mode(); open {
			return a.handleFormKey(msg)
		}
		return a.handleListKey(msg, snap.Users)
	}

	if len(a.inputs) > 0 {
		var cmd tea.Cmd
		a.inputs[a.focus].input, cmd = a.inputs[a.focus].input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleListKey(msg tea.KeyMsg, list []users.User) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(list)-1 {
			a.cursor++
		}
	case key.Matches(msg, a.keys.Add):
		a.clearStatus()
		a.screen.OpenCreate()
		return a, a.loadForm()
	case key.Matches(msg, a.keys.Edit):
		if len(list) == 0 {
			return a, nil
		}
		a.clearStatus()
		if err := a.screen.OpenEdit(list[a.cursor].ID); err != nil {
			a.fail(err)
			return a, nil
		}
		return a, a.loadForm()
	case key.Matches(msg, a.keys.Delete):
		if len(list) == 0 {
			return a, nil
		}
		a.clearStatus()
		if err := a.screen.RequestDelete(list[a.cursor].ID); err != nil {
			a.fail(err)
			return a, nil
		}
		a.choice = choiceCancel
	}
	return a, nil
}

func (a *App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.screen.Cancel()
		a.inputs = nil
		return a, nil
	case key.Matches(msg, a.keys.Submit):
		return a.submit()
	case key.Matches(msg, a.keys.Next):
		return a, a.moveFocus(1)
	case key.Matches(msg, a.keys.Prev):
		return a, a.moveFocus(-1)
	}

	if len(a.inputs) == 0 {
		return a, nil
	}
	in := &a.inputs[a.focus]
	var cmd tea.Cmd
	in.input, cmd = in.input.Update(msg)
	a.screen.SetField(in.field, in.input.Value())
	return a, cmd
}

func (a *App) submit() (tea.Model, tea.Cmd) {
	for _, in := range a.inputs {
		a.screen.SetField(in.field, in.input.Value())
	}
	ok, err := a.screen.Submit()
	if err != nil {
		a.fail(err)
		if errors.Is(err, service.ErrUserNotFound) {
			a.screen.Cancel()
			a.inputs = nil
		}
		return a, nil
	}
	if !ok {
		return a, nil
	}
	a.inputs = nil
	a.cursor = min(a.cursor, max(0, a.screen.Store().Len()-1))
	return a, nil
}

func (a *App) handleDialogKey(msg tea.KeyMsg, d service.Dialog) (tea.Model, tea.Cmd) {
	if d.Kind == service.DialogSuccess {
		if key.Matches(msg, a.keys.Submit, a.keys.Cancel) {
			a.screen.Dismiss()
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Left, a.keys.Right):
		a.choice = 1 - a.choice
	case key.Matches(msg, a.keys.Yes):
		a.confirmDelete()
	case key.Matches(msg, a.keys.No, a.keys.Cancel):
		a.screen.CancelDelete()
	case key.Matches(msg, a.keys.Submit):
		if a.choice == choiceConfirm {
			a.confirmDelete()
		} else {
			a.screen.CancelDelete()
		}
	}
	return a, nil
}

func (a *App) confirmDelete() {
	if err := a.screen.ConfirmDelete(); err != nil {
		a.fail(err)
	}
	if n := a.screen.Store().Len(); a.cursor >= n {
		a.cursor = max(0, n-1)
	}
}

// loadForm builds the inputs for the open form from the screen's draft.
func (a *App) loadForm() tea.Cmd {
	snap := a.screen.Snapshot()
	_, editing := snap.Editing()

	a.inputs = a.inputs[:0]
	for _, f := range users.Fields {
		if f == users.FieldPassword && editing {
			continue
		}
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = labels[f]
		ti.Width = formWidth - 10
		ti.CharLimit = 0
		if f == users.FieldPassword {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		ti.SetValue(snap.Draft.Get(f))
		a.inputs = append(a.inputs, formInput{field: f, input: ti})
	}
	a.focus = 0
	return a.inputs[0].input.Focus()
}

func (a *App) moveFocus(delta int) tea.Cmd {
	if len(a.inputs) == 0 {
		return nil
	}
	a.inputs[a.focus].input.Blur()
	a.focus = (a.focus + delta + len(a.inputs)) % len(a.inputs)
	return a.inputs[a.focus].input.Focus()
}

func (a *App) fail(err error) {
	a.log.WithError(err).Warn("user screen action failed")
	a.status = err.Error()
	a.statusErr = true
}

func (a *App) clearStatus() {
	a.status = ""
	a.statusErr = false
}

func (a *App) View() string {
	width, height := a.size()
	snap := a.screen.Snapshot()

	body := []string{a.renderHeader(width), "", a.renderList(snap.Users, width)}
	bindings := a.keys.listHelp()
	if _, open := snap.Mode(); open {
		bindings = a.keys.formHelp()
	}
	if snap.Dialog != nil {
		bindings = a.keys.dialogHelp(snap.Dialog.Kind == service.DialogConfirmDelete)
	}
	footer := a.renderStatus(snap.Notice, width) + "\n" + a.help.ShortHelpView(bindings)

	base := placeWithFooter(strings.Join(body, "\n"), footer, height)
	if mode, open := snap.Mode(); open {
		base = overlayCenter(base, a.renderForm(mode, snap.Errors), width, height)
	}
	if snap.Dialog != nil {
		base = overlayCenter(base, a.renderDialog(*snap.Dialog), width, height)
	}
	return base
}

func (a *App) size() (int, int) {
	w, h := a.width, a.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

func (a *App) renderHeader(width int) string {
	title := titleStyle.Render("Gestion des Utilisateurs")
	add := primaryButtonStyle.Render("+ Ajouter")
	gap := max(1, width-2-lipgloss.Width(title)-lipgloss.Width(add))
	return headerStyle.Width(width).Render(title + strings.Repeat(" ", gap) + add)
}

func (a *App) renderList(list []users.User, width int) string {
	if len(list) == 0 {
		return emptyStyle.Render("Aucun utilisateur. Appuyez sur a pour en ajouter un.")
	}
	inner := max(10, width-4)
	rows := make([]string, 0, len(list))
	for i, u := range list {
		lines := []string{
			nameStyle.Render(truncate(u.FullName(), inner)),
			detailStyle.Render(truncate(u.Email, inner)),
			detailStyle.Render(truncate(u.Phone, inner)),
		}
		style := cardStyle
		if i == a.cursor {
			style = cardSelectedStyle
			lines = append(lines, primaryButtonStyle.Render("Modifier")+" "+dangerButtonStyle.Render("Supprimer"))
		}
		rows = append(rows, style.Width(width-2).Render(strings.Join(lines, "\n")))
	}
	return strings.Join(rows, "\n")
}

func (a *App) renderStatus(notice string, width int) string {
	switch {
	case a.status != "" && a.statusErr:
		return statusErrStyle.Render(truncate(a.status, width))
	case a.status != "":
		return statusStyle.Render(truncate(a.status, width))
	case notice != "":
		return noticeStyle.Render(truncate(notice, width))
	}
	return ""
}

func (a *App) renderForm(mode service.Mode, errs users.Errors) string {
	title, action := "Nouvel Utilisateur", "Créer"
	if _, ok := mode.(service.Edit); ok {
		title, action = "Modifier Utilisateur", "Mettre à jour"
	}

	lines := []string{modalTitleStyle.Render(title)}
	for i, in := range a.inputs {
		label := labelStyle
		if errs.Has(in.field) {
			label = labelErrStyle
		}
		marker := "  "
		if i == a.focus {
			marker = keyStyle.Render("› ")
		}
		lines = append(lines, marker+label.Render(labels[in.field]), "  "+in.input.View())
		if msg, ok := errs[in.field]; ok {
			lines = append(lines, "  "+errorTextStyle.Render(msg))
		}
	}
	lines = append(lines, "", idleButtonStyle.Render("Annuler")+"  "+primaryButtonStyle.Render(action))
	return modalStyle.Width(formWidth).Render(strings.Join(lines, "\n"))
}

func (a *App) renderDialog(d service.Dialog) string {
	var buttons string
	if d.Kind == service.DialogConfirmDelete {
		cancel, confirm := idleButtonStyle, idleButtonStyle
		if a.choice == choiceConfirm {
			confirm = dangerButtonStyle
		} else {
			cancel = primaryButtonStyle
		}
		buttons = cancel.Render("Annuler") + "  " + confirm.Render("Supprimer")
	} else {
		buttons = primaryButtonStyle.Render("OK")
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		modalTitleStyle.Render(d.Title),
		d.Message,
		"",
		buttons,
	)
	return modalStyle.Render(content)
}

// placeWithFooter pins footer to the last lines of a height-tall screen.
func placeWithFooter(body, footer string, height int) string {
	bodyLines := strings.Split(body, "\n")
	footerLines := strings.Split(footer, "\n")
	room := height - len(footerLines)
	if room < 0 {
		room = 0
	}
	if len(bodyLines) > room {
		bodyLines = bodyLines[:room]
	}
	for len(bodyLines) < room {
		bodyLines = append(bodyLines, "")
	}
	return strings.Join(append(bodyLines, footerLines...), "\n")
}
