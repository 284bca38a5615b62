package testdata

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/jask/usermgr/internal/users"
)

// SamplePassword is the password every generated record is created with.
const SamplePassword = "motdepasse"

var (
	lastNames  = []string{"Martin", "Bernard", "Dubois", "Thomas", "Robert", "Richard", "Petit", "Durand", "Leroy", "Moreau"}
	firstNames = []string{"Camille", "Louis", "Léa", "Hugo", "Chloé", "Jules", "Manon", "Arthur", "Inès", "Gabriel"}
)

// Users builds n sample records from seed. The same seed gives the same
// names, emails and phones; IDs are always fresh.
func Users(seed int64, n int, hasher users.Hasher) ([]users.User, error) {
	if n <= 0 {
		return nil, nil
	}
	rng := rand.New(rand.NewSource(seed))
	hash, err := hasher.Hash(SamplePassword)
	if err != nil {
		return nil, err
	}

	out := make([]users.User, 0, n)
	for i := 0; i < n; i++ {
		last := lastNames[rng.Intn(len(lastNames))]
		first := firstNames[rng.Intn(len(firstNames))]
		out = append(out, users.User{
			ID:           uuid.NewString(),
			LastName:     last,
			FirstName:    first,
			Email:        fmt.Sprintf("%s.%s%d@exemple.fr", strings.ToLower(asciiFold(first)), strings.ToLower(last), i+1),
			Phone:        fmt.Sprintf("06%08d", rng.Intn(100000000)),
			PasswordHash: hash,
		})
	}
	return out, nil
}

func asciiFold(s string) string {
	return strings.NewReplacer("é", "e", "è", "e", "ï", "i").Replace(s)
}
