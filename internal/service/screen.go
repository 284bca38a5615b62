package service

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/jask/usermgr/internal/users"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrModalClosed     = errors.New("form is not open")
	ErrNoPendingDelete = errors.New("no delete awaiting confirmation")
)

// Deps are the collaborators of a UserScreen. Nil members get defaults.
type Deps struct {
	IDs       users.IDGenerator
	Hasher    users.Hasher
	Validator *users.Validator
	Log       logrus.FieldLogger
	// Initial seeds the store.
	Initial users.Store
	// SimilarityDistance bounds the name edit distance for the duplicate
	// notice. Negative disables name matching.
	SimilarityDistance int
}

// UserScreen is the state of the user management screen. It is changed only
// through its methods and read through Snapshot.
type UserScreen struct {
	ids       users.IDGenerator
	hasher    users.Hasher
	validator *users.Validator
	log       logrus.FieldLogger
	distance  int

	store  users.Store
	modal  Modal
	draft  users.Draft
	errors users.Errors
	dialog *Dialog
	notice string
}

func NewUserScreen(deps Deps) *UserScreen {
	s := &UserScreen{
		ids:       deps.IDs,
		hasher:    deps.Hasher,
		validator: deps.Validator,
		log:       deps.Log,
		distance:  deps.SimilarityDistance,
		store:     deps.Initial,
		modal:     Closed{},
		errors:    users.Errors{},
	}
	if s.ids == nil {
		s.ids = users.NewID
	}
	if s.hasher == nil {
		s.hasher = users.BcryptHasher{}
	}
	if s.validator == nil {
		s.validator = users.NewValidator()
	}
	if s.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.log = l
	}
	return s
}

// Snapshot is a read-only copy of the screen state.
type Snapshot struct {
	Users  []users.User
	Modal  Modal
	Draft  users.Draft
	Errors users.Errors
	Dialog *Dialog
	Notice string
}

// Mode returns the form mode when the form is open.
func (s Snapshot) Mode() (Mode, bool) {
	open, ok := s.Modal.(Open)
	if !ok {
		return nil, false
	}
	return open.Mode, true
}

// Editing returns the identifier of the record being edited, if any.
func (s Snapshot) Editing() (string, bool) {
	mode, ok := s.Mode()
	if !ok {
		return "", false
	}
	edit, ok := mode.(Edit)
	return edit.UserID, ok
}

func (s *UserScreen) Snapshot() Snapshot {
	snap := Snapshot{
		Users:  s.store.All(),
		Modal:  s.modal,
		Draft:  s.draft,
		Errors: s.errors.Clone(),
		Notice: s.notice,
	}
	if s.dialog != nil {
		d := *s.dialog
		snap.Dialog = &d
	}
	return snap
}

// Store returns the current store. Stores are immutable, so the caller cannot
// affect the screen through it.
func (s *UserScreen) Store() users.Store { return s.store }

// OpenCreate shows an empty form for a new record.
func (s *UserScreen) OpenCreate() {
	s.resetForm()
	s.notice = ""
	s.modal = Open{Mode: Create{}}
}

// OpenEdit shows the form seeded from the record identified by id.
func (s *UserScreen) OpenEdit(id string) error {
	u, ok := s.store.Find(id)
	if !ok {
		return fmt.Errorf("edit %s: %w", id, ErrUserNotFound)
	}
	s.draft = users.DraftFrom(u)
	s.errors = users.Errors{}
	s.notice = ""
	s.modal = Open{Mode: Edit{UserID: id}}
	return nil
}

// SetField updates one draft field while the form is open.
func (s *UserScreen) SetField(f users.Field, value string) {
	if _, ok := s.modal.(Open); !ok {
		return
	}
	s.draft.Set(f, value)
}

// Validate replaces the error map with exactly the failing fields and reports
// whether the draft can be submitted.
func (s *UserScreen) Validate() bool {
	s.errors = s.validator.Validate(s.draft, !s.editing())
	return len(s.errors) == 0
}

// Submit validates the draft and writes it to the store. It returns false
// without touching the store when validation fails; the form stays open.
func (s *UserScreen) Submit() (bool, error) {
	open, ok := s.modal.(Open)
	if !ok {
		return false, ErrModalClosed
	}
	if !s.Validate() {
		s.log.WithField("fields", len(s.errors)).Debug("submit rejected by validation")
		return false, nil
	}

	switch mode := open.Mode.(type) {
	case Edit:
		next, ok := s.store.Update(mode.UserID, s.draft)
		if !ok {
			return false, fmt.Errorf("update %s: %w", mode.UserID, ErrUserNotFound)
		}
		s.store = next
		s.notice = s.similarNotice(mode.UserID)
		s.dialog = successDialog(msgUpdated)
		s.log.WithFields(logrus.Fields{"op": "update", "user_id": mode.UserID}).Info("user updated")
	default:
		hash, err := s.hasher.Hash(s.draft.Password)
		if err != nil {
			return false, err
		}
		s.notice = s.similarNotice("")
		u := users.User{
			ID:           s.ids(),
			LastName:     s.draft.LastName,
			FirstName:    s.draft.FirstName,
			Email:        s.draft.Email,
			Phone:        s.draft.Phone,
			PasswordHash: hash,
		}
		s.store = s.store.Append(u)
		s.dialog = successDialog(msgCreated)
		s.log.WithFields(logrus.Fields{"op": "create", "user_id": u.ID}).Info("user created")
	}

	s.modal = Closed{}
	s.resetForm()
	return true, nil
}

// Cancel closes the form without saving.
func (s *UserScreen) Cancel() {
	s.modal = Closed{}
	s.resetForm()
}

// RequestDelete asks for confirmation before removing the record.
func (s *UserScreen) RequestDelete(id string) error {
	if _, ok := s.store.Find(id); !ok {
		return fmt.Errorf("delete %s: %w", id, ErrUserNotFound)
	}
	s.dialog = &Dialog{Kind: DialogConfirmDelete, Title: titleConfirm, Message: msgConfirmDelete, TargetID: id}
	return nil
}

// ConfirmDelete removes the record awaiting confirmation.
func (s *UserScreen) ConfirmDelete() error {
	if s.dialog == nil || s.dialog.Kind != DialogConfirmDelete {
		return ErrNoPendingDelete
	}
	id := s.dialog.TargetID
	next, ok := s.store.Remove(id)
	if !ok {
		s.dialog = nil
		return fmt.Errorf("delete %s: %w", id, ErrUserNotFound)
	}
	s.store = next
	s.dialog = successDialog(msgDeleted)
	s.log.WithFields(logrus.Fields{"op": "delete", "user_id": id}).Info("user deleted")
	return nil
}

// CancelDelete drops a pending confirmation; the store is unchanged.
func (s *UserScreen) CancelDelete() {
	if s.dialog != nil && s.dialog.Kind == DialogConfirmDelete {
		s.dialog = nil
	}
}

// Dismiss acknowledges a success dialog.
func (s *UserScreen) Dismiss() {
	if s.dialog != nil && s.dialog.Kind == DialogSuccess {
		s.dialog = nil
	}
}

func (s *UserScreen) editing() bool {
	open, ok := s.modal.(Open)
	if !ok {
		return false
	}
	_, ok = open.Mode.(Edit)
	return ok
}

func (s *UserScreen) resetForm() {
	s.draft = users.Draft{}
	s.errors = users.Errors{}
}

func (s *UserScreen) similarNotice(skipID string) string {
	u, ok := users.Similar(s.store, s.draft, skipID, s.distance)
	if !ok {
		return ""
	}
	return fmt.Sprintf("Attention : utilisateur similaire existant (%s)", u.FullName())
}
