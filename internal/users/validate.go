package users

import (
	"errors"
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// emailPattern is deliberately loose: something, an @, something, a dot,
// something. It is not anchored.
var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

var requiredMessages = map[Field]string{
	FieldLastName:  "Le nom est requis",
	FieldFirstName: "Le prénom est requis",
	FieldEmail:     "L'email est requis",
	FieldPhone:     "Le téléphone est requis",
	FieldPassword:  "Le mot de passe est requis",
}

const (
	invalidEmailMessage    = "Email invalide"
	passwordTooLongMessage = "Le mot de passe ne doit pas dépasser 72 octets"
)

// Validator checks drafts and reports one message per failing field.
type Validator struct {
	v *validator.Validate
}

// NewValidator registers the form tag names and the custom rules.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("form")
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= maxPasswordBytes
	})
	return &Validator{v: v}
}

// Validate checks every field of d independently. Presence is checked after
// trimming. The password is only checked when requirePassword is set
// (create-mode), and its length on the raw value, which is what gets hashed.
func (v *Validator) Validate(d Draft, requirePassword bool) Errors {
	t := d.trimmed()
	errs := Errors{}
	v.collect(errs, v.v.Struct(t), "")
	if requirePassword {
		v.collect(errs, v.v.Var(t.Password, "required"), FieldPassword)
		v.collect(errs, v.v.Var(d.Password, "bcryptlen"), FieldPassword)
	}
	return errs
}

// collect folds validator errors into errs. For single-variable checks the
// validator reports no field name, so field supplies it.
func (v *Validator) collect(errs Errors, err error, field Field) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return
	}
	for _, fe := range verrs {
		f := field
		if f == "" {
			f = Field(fe.Field())
		}
		if errs.Has(f) {
			continue
		}
		errs[f] = message(f, fe.Tag())
	}
}

func message(f Field, tag string) string {
	switch tag {
	case "looseemail":
		return invalidEmailMessage
	case "bcryptlen":
		return passwordTooLongMessage
	}
	if msg, ok := requiredMessages[f]; ok {
		return msg
	}
	return "Champ invalide"
}
