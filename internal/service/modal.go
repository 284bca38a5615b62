package service

// Modal is the form's visibility state: Closed, or Open in a given Mode.
type Modal interface {
	isModal()
}

// Closed means no form is shown.
type Closed struct{}

// Open means the form is shown for Mode.
type Open struct {
	Mode Mode
}

func (Closed) isModal() {}
func (Open) isModal()   {}

// Mode is the purpose of an open form.
type Mode interface {
	isMode()
}

// Create fills a new record.
type Create struct{}

// Edit overwrites the record identified by UserID.
type Edit struct {
	UserID string
}

func (Create) isMode() {}
func (Edit) isMode()   {}

// DialogKind selects which blocking prompt is shown.
type DialogKind int

const (
	DialogConfirmDelete DialogKind = iota + 1
	DialogSuccess
)

// Dialog is a blocking prompt shown above everything else.
type Dialog struct {
	Kind    DialogKind
	Title   string
	Message string
	// TargetID is the record a ConfirmDelete dialog is about.
	TargetID string
}

const (
	titleConfirm = "Confirmation"
	titleSuccess = "Succès"

	msgConfirmDelete = "Voulez-vous vraiment supprimer cet utilisateur ?"
	msgCreated       = "Utilisateur créé avec succès"
	msgUpdated       = "Utilisateur mis à jour avec succès"
	msgDeleted       = "Utilisateur supprimé avec succès"
)

func successDialog(msg string) *Dialog {
	return &Dialog{Kind: DialogSuccess, Title: titleSuccess, Message: msg}
}
