package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jask/usermgr/internal/users"
)

func sequentialIDs() users.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestScreen(t *testing.T, initial ...users.User) (*UserScreen, *logtest.Hook) {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	s := NewUserScreen(Deps{
		IDs:                sequentialIDs(),
		Hasher:             users.BcryptHasher{Cost: bcrypt.MinCost},
		Log:                logger,
		Initial:            users.NewStore(initial...),
		SimilarityDistance: 2,
	})
	return s, hook
}

func fill(s *UserScreen, d users.Draft) {
	for _, f := range users.Fields {
		s.SetField(f, d.Get(f))
	}
}

func dupont() users.Draft {
	return users.Draft{LastName: "Dupont", FirstName: "Jean", Email: "j@d.fr", Phone: "0102030405", Password: "x"}
}

func seeded() []users.User {
	return []users.User{
		{ID: "a", LastName: "Martin", FirstName: "Paul", Email: "paul@martin.fr", Phone: "0600000001", PasswordHash: []byte("h1")},
		{ID: "b", LastName: "Curie", FirstName: "Marie", Email: "marie@curie.fr", Phone: "0600000002", PasswordHash: []byte("h2")},
		{ID: "c", LastName: "Hugo", FirstName: "Victor", Email: "victor@hugo.fr", Phone: "0600000003", PasswordHash: []byte("h3")},
	}
}

func TestCreateAppendsRecord(t *testing.T) {
	s, hook := newTestScreen(t)

	s.OpenCreate()
	fill(s, dupont())
	ok, err := s.Submit()
	require.NoError(t, err)
	require.True(t, ok)

	snap := s.Snapshot()
	require.Len(t, snap.Users, 1)
	u := snap.Users[0]
	assert.Equal(t, "id-1", u.ID)
	assert.Equal(t, "Dupont", u.LastName)
	assert.Equal(t, "Jean", u.FirstName)
	assert.Equal(t, "j@d.fr", u.Email)
	assert.Equal(t, "0102030405", u.Phone)
	assert.True(t, users.CheckPassword(u, "x"))

	assert.Equal(t, Closed{}, snap.Modal)
	assert.Equal(t, users.Draft{}, snap.Draft)
	assert.Empty(t, snap.Errors)
	require.NotNil(t, snap.Dialog)
	assert.Equal(t, DialogSuccess, snap.Dialog.Kind)
	assert.Equal(t, "Utilisateur créé avec succès", snap.Dialog.Message)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "create", entry.Data["op"])
	assert.Equal(t, "id-1", entry.Data["user_id"])
	for _, e := range hook.AllEntries() {
		for _, v := range e.Data {
			assert.NotEqual(t, "x", v)
		}
	}
}

func TestCreateAppendsAtEnd(t *testing.T) {
	s, _ := newTestScreen(t, seeded()...)
	s.OpenCreate()
	fill(s, dupont())
	ok, err := s.Submit()
	require.NoError(t, err)
	require.True(t, ok)

	snap := s.Snapshot()
	require.Len(t, snap.Users, 4)
	assert.Equal(t, []string{"a", "b", "c", "id-1"}, idsOf(snap.Users))
}

func TestSubmitInvalidKeepsFormOpen(t *testing.T) {
	s, _ := newTestScreen(t, seeded()...)
	s.OpenCreate()
	s.SetField(users.FieldEmail, "abc")

	ok, err := s.Submit()
	require.NoError(t, err)
	require.False(t, ok)

	snap := s.Snapshot()
	assert.Equal(t, Open{Mode: Create{}}, snap.Modal)
	assert.Len(t, snap.Users, 3)
	assert.Nil(t, snap.Dialog)
	assert.Equal(t, users.Errors{
		users.FieldLastName:  "Le nom est requis",
		users.FieldFirstName: "Le prénom est requis",
		users.FieldEmail:     "Email invalide",
		users.FieldPhone:     "Le téléphone est requis",
		users.FieldPassword:  "Le mot de passe est requis",
	}, snap.Errors)
	assert.Equal(t, "abc", snap.Draft.Email)

	fill(s, dupont())
	ok, err = s.Submit()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, s.Snapshot().Errors)
}

func TestPasswordRequiredOnlyOnCreate(t *testing.T) {
	d := dupont()
	d.Password = ""

	s, _ := newTestScreen(t, seeded()...)
	s.OpenCreate()
	fill(s, d)
	require.False(t, s.Validate())
	require.True(t, s.Snapshot().Errors.Has(users.FieldPassword))

	require.NoError(t, s.OpenEdit("a"))
	fill(s, d)
	require.True(t, s.Validate())
	require.Empty(t, s.Snapshot().Errors)
}

func TestEditChangesOnlyTargetField(t *testing.T) {
	s, hook := newTestScreen(t, seeded()...)
	before := s.Snapshot().Users

	require.NoError(t, s.OpenEdit("b"))
	snap := s.Snapshot()
	id, ok := snap.Editing()
	require.True(t, ok)
	assert.Equal(t, "b", id)
	assert.Equal(t, "Curie", snap.Draft.LastName)
	assert.Empty(t, snap.Draft.Password)

	s.SetField(users.FieldLastName, "Sklodowska")
	ok, err := s.Submit()
	require.NoError(t, err)
	require.True(t, ok)

	after := s.Snapshot()
	require.Len(t, after.Users, len(before))
	want := before
	want[1].LastName = "Sklodowska"
	assert.Equal(t, want, after.Users)
	assert.Equal(t, "Utilisateur mis à jour avec succès", after.Dialog.Message)
	assert.Equal(t, Closed{}, after.Modal)
	assert.Equal(t, "update", hook.LastEntry().Data["op"])
}

func TestEditNeverWritesPassword(t *testing.T) {
	s, _ := newTestScreen(t, seeded()...)
	require.NoError(t, s.OpenEdit("c"))
	s.SetField(users.FieldPassword, "new-secret")
	ok, err := s.Submit()
	require.NoError(t, err)
	require.True(t, ok)

	u, found := s.Store().Find("c")
	require.True(t, found)
	assert.Equal(t, []byte("h3"), u.PasswordHash)
}

func TestOpenEditUnknown(t *testing.T) {
	s, _ := newTestScreen(t, seeded()...)
	err := s.OpenEdit("zzz")
	require.ErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, Closed{}, s.Snapshot().Modal)
}

func TestSubmitWhenClosed(t *testing.T) {
	s, _ := newTestScreen(t)
	ok, err := s.Submit()
	require.False(t, ok)
	require.ErrorIs(t, err, ErrModalClosed)
}

func TestEditTargetVanished(t *testing.T) {
	s, _ := newTestScreen(t, seeded()...)
	require.NoError(t, s.OpenEdit("a"))
	require.NoError(t, s.RequestDelete("a"))
	require.NoError(t, s.ConfirmDelete())

	ok, err := s.Submit()
	require.False(t, ok)
	require.True(t, errors.Is(err, ErrUserNotFound))
}

func TestDeleteConfirmed(t *testing.T) {
	s, hook := newTestScreen(t, seeded()...)
	require.NoError(t, s.RequestDelete("b"))

	snap := s.Snapshot()
	require.NotNil(t, snap.Dialog)
	assert.Equal(t, DialogConfirmDelete, snap.Dialog.Kind)
	assert.Equal(t, "Voulez-vous vraiment supprimer cet utilisateur ?", snap.Dialog.Message)
	assert.Len(t, snap.Users, 3)

	require.NoError(t, s.ConfirmDelete())
	snap = s.Snapshot()
	assert.Equal(t, []string{"a", "c"}, idsOf(snap.Users))
	assert.Equal(t, "Utilisateur supprimé avec succès", snap.Dialog.Message)
	assert.Equal(t, "delete", hook.LastEntry().Data["op"])

	s.Dismiss()
	assert.Nil(t, s.Snapshot().Dialog)
}

func TestDeleteCancelled(t *testing.T) {
	s, _ := newTestScreen(t, seeded()...)
	require.NoError(t, s.RequestDelete("b"))
	s.CancelDelete()

	snap := s.Snapshot()
	assert.Nil(t, snap.Dialog)
	assert.Equal(t, []string{"a", "b", "c"}, idsOf(snap.Users))
	require.ErrorIs(t, s.ConfirmDelete(), ErrNoPendingDelete)
}

func TestDeleteUnknown(t *testing.T) {
	s, _ := newTestScreen(t, seeded()...)
	require.ErrorIs(t, s.RequestDelete("nope"), ErrUserNotFound)
	assert.Nil(t, s.Snapshot().Dialog)
}

func TestOpenCreateThenCancel(t *testing.T) {
	s, _ := newTestScreen(t, seeded()...)
	s.OpenCreate()
	fill(s, dupont())
	s.Cancel()

	snap := s.Snapshot()
	assert.Equal(t, Closed{}, snap.Modal)
	assert.Equal(t, users.Draft{}, snap.Draft)
	assert.Empty(t, snap.Errors)
	assert.Equal(t, []string{"a", "b", "c"}, idsOf(snap.Users))
}

func TestOpenCreateClearsPreviousEdit(t *testing.T) {
	s, _ := newTestScreen(t, seeded()...)
	require.NoError(t, s.OpenEdit("a"))
	s.SetField(users.FieldEmail, "bad")
	require.False(t, s.Validate())

	s.OpenCreate()
	snap := s.Snapshot()
	assert.Equal(t, Open{Mode: Create{}}, snap.Modal)
	assert.Equal(t, users.Draft{}, snap.Draft)
	assert.Empty(t, snap.Errors)
	_, editing := snap.Editing()
	assert.False(t, editing)
}

func TestSetFieldIgnoredWhenClosed(t *testing.T) {
	s, _ := newTestScreen(t)
	s.SetField(users.FieldLastName, "x")
	assert.Equal(t, users.Draft{}, s.Snapshot().Draft)
}

func TestSimilarNotice(t *testing.T) {
	s, _ := newTestScreen(t, seeded()...)
	s.OpenCreate()
	d := dupont()
	d.FirstName, d.LastName = "Marie", "Curi"
	fill(s, d)
	ok, err := s.Submit()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Attention : utilisateur similaire existant (Marie Curie)", s.Snapshot().Notice)

	s.OpenCreate()
	assert.Empty(t, s.Snapshot().Notice)
}

func TestSnapshotIsIsolated(t *testing.T) {
	s, _ := newTestScreen(t, seeded()...)
	snap := s.Snapshot()
	snap.Users[0].LastName = "changed"
	snap.Errors[users.FieldEmail] = "x"

	again := s.Snapshot()
	assert.Equal(t, "Martin", again.Users[0].LastName)
	assert.Empty(t, again.Errors)
}

type failingHasher struct{}

func (failingHasher) Hash(string) ([]byte, error) { return nil, errors.New("boom") }

func TestSubmitHashFailure(t *testing.T) {
	s := NewUserScreen(Deps{Hasher: failingHasher{}})
	s.OpenCreate()
	fill(s, dupont())
	ok, err := s.Submit()
	require.False(t, ok)
	require.EqualError(t, err, "boom")
	assert.Empty(t, s.Snapshot().Users)
	assert.Equal(t, Open{Mode: Create{}}, s.Snapshot().Modal)
}

func idsOf(us []users.User) []string {
	out := make([]string, 0, len(us))
	for _, u := range us {
		out = append(out, u.ID)
	}
	return out
}

func TestPaddedOverlongPasswordIsAValidationError(t *testing.T) {
	s, _ := newTestScreen(t)
	s.OpenCreate()
	d := dupont()
	d.Password = strings.Repeat("a", 72) + "  "
	fill(s, d)

	require.False(t, s.Validate())
	ok, err := s.Submit()
	require.NoError(t, err)
	require.False(t, ok)
	assert.Contains(t, s.Snapshot().Errors, users.FieldPassword)
	assert.Empty(t, s.Snapshot().Users)
}

func TestPasswordHashedAsTyped(t *testing.T) {
	s, _ := newTestScreen(t)
	s.OpenCreate()
	d := dupont()
	d.Password = "  pw  "
	fill(s, d)

	ok, err := s.Submit()
	require.NoError(t, err)
	require.True(t, ok)
	u := s.Snapshot().Users[0]
	assert.True(t, users.CheckPassword(u, "  pw  "))
	assert.False(t, users.CheckPassword(u, "pw"))
}
