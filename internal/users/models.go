package users

import "strings"

// Field names a user attribute editable through the form. The values double as
// error map keys.
type Field string

const (
	FieldLastName  Field = "nom"
	FieldFirstName Field = "prenom"
	FieldEmail     Field = "email"
	FieldPhone     Field = "tel"
	FieldPassword  Field = "password"
)

// Fields lists the editable fields in form order.
var Fields = []Field{FieldLastName, FieldFirstName, FieldEmail, FieldPhone, FieldPassword}

// User represents a user record.
type User struct {
	ID           string
	LastName     string
	FirstName    string
	Email        string
	Phone        string
	PasswordHash []byte
}

// FullName renders "Prénom Nom" the way the list shows it.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Draft is the transient, editable copy of a record's fields.
type Draft struct {
	LastName  string `form:"nom" validate:"required"`
	FirstName string `form:"prenom" validate:"required"`
	Email     string `form:"email" validate:"required,looseemail"`
	Phone     string `form:"tel" validate:"required"`
	Password  string `form:"password" validate:"-"`
}

// DraftFrom seeds a draft from an existing record. Only a hash of the password
// is kept, so the password slot stays empty.
func DraftFrom(u User) Draft {
	return Draft{
		LastName:  u.LastName,
		FirstName: u.FirstName,
		Email:     u.Email,
		Phone:     u.Phone,
	}
}

// Get returns the draft value for f.
func (d Draft) Get(f Field) string {
	switch f {
	case FieldLastName:
		return d.LastName
	case FieldFirstName:
		return d.FirstName
	case FieldEmail:
		return d.Email
	case FieldPhone:
		return d.Phone
	case FieldPassword:
		return d.Password
	}
	return ""
}

// Set updates the draft value for f. Unknown fields are ignored.
func (d *Draft) Set(f Field, value string) {
	switch f {
	case FieldLastName:
		d.LastName = value
	case FieldFirstName:
		d.FirstName = value
	case FieldEmail:
		d.Email = value
	case FieldPhone:
		d.Phone = value
	case FieldPassword:
		d.Password = value
	}
}

func (d Draft) trimmed() Draft {
	return Draft{
		LastName:  strings.TrimSpace(d.LastName),
		FirstName: strings.TrimSpace(d.FirstName),
		Email:     strings.TrimSpace(d.Email),
		Phone:     strings.TrimSpace(d.Phone),
		Password:  strings.TrimSpace(d.Password),
	}
}

// apply copies the four profile fields of the draft onto u. ID and password
// hash are left alone.
func (d Draft) apply(u User) User {
	u.LastName = d.LastName
	u.FirstName = d.FirstName
	u.Email = d.Email
	u.Phone = d.Phone
	return u
}

// Errors maps a field to its validation message. An empty map means the form
// may be submitted.
type Errors map[Field]string

// Has reports whether f failed validation.
func (e Errors) Has(f Field) bool {
	_, ok := e[f]
	return ok
}

// Clone returns an independent copy.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
