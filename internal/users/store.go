package users

// Store is the ordered in-memory sequence of user records. It is immutable:
// every mutation returns a new Store backed by a fresh slice and leaves the
// receiver untouched.
type Store struct {
	users []User
}

// NewStore builds a store holding a copy of us, in order.
func NewStore(us ...User) Store {
	return Store{users: clone(us)}
}

// Len returns the number of records.
func (s Store) Len() int { return len(s.users) }

// All returns a copy of the records in store order.
func (s Store) All() []User { return clone(s.users) }

// At returns the record at index i.
func (s Store) At(i int) (User, bool) {
	if i < 0 || i >= len(s.users) {
		return User{}, false
	}
	return s.users[i], true
}

// Find looks a record up by identifier.
func (s Store) Find(id string) (User, bool) {
	if i := s.index(id); i >= 0 {
		return s.users[i], true
	}
	return User{}, false
}

// Append returns a store with u added at the end. No collision check is made.
func (s Store) Append(u User) Store {
	next := make([]User, len(s.users), len(s.users)+1)
	copy(next, s.users)
	return Store{users: append(next, u)}
}

// Update returns a store where the record matching id has its profile fields
// replaced by d. The identifier and password hash are preserved.
func (s Store) Update(id string, d Draft) (Store, bool) {
	i := s.index(id)
	if i < 0 {
		return s, false
	}
	next := clone(s.users)
	next[i] = d.apply(next[i])
	return Store{users: next}, true
}

// Remove returns a store without the record matching id, the rest in order.
func (s Store) Remove(id string) (Store, bool) {
	i := s.index(id)
	if i < 0 {
		return s, false
	}
	next := make([]User, 0, len(s.users)-1)
	next = append(next, s.users[:i]...)
	next = append(next, s.users[i+1:]...)
	return Store{users: next}, true
}

func (s Store) index(id string) int {
	for i := range s.users {
		if s.users[i].ID == id {
			return i
		}
	}
	return -1
}

func clone(us []User) []User {
	if len(us) == 0 {
		return nil
	}
	out := make([]User, len(us))
	copy(out, us)
	return out
}
