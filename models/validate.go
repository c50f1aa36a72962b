// path: models/validate.go
package models

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	ErrMissingName    = errors.New("missing name")
	ErrInvalidAge     = errors.New("invalid age")
	ErrInvalidDate    = errors.New("invalid last_seen_date (YYYY-MM-DD)")
	ErrInvalidEmail   = errors.New("invalid contact_email")
	ErrMissingPayload = errors.New("empty payload")
)

const maxAge = 150

// fieldErrors maps a failing form field to the error reported to clients.
var fieldErrors = map[string]error{
	"Name":         ErrMissingName,
	"Age":          ErrInvalidAge,
	"LastSeenDate": ErrInvalidDate,
	"ContactEmail": ErrInvalidEmail,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// "age" is a whole number of years within [0, maxAge]
	_ = v.RegisterValidation("age", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Field().String())
		return err == nil && n >= 0 && n <= maxAge
	})
	return v
}

// Normalize trims every field of the form in place.
func (f *MissingPersonForm) Normalize() {
	for _, p := range []*string{
		&f.Name, &f.Age, &f.Gender, &f.LastSeen, &f.LastSeenDate, &f.Region,
		&f.Description, &f.ContactName, &f.ContactPhone, &f.ContactEmail,
	} {
		*p = strings.TrimSpace(*p)
	}
}

// Validate checks the trimmed fields against the form's validate tags. Only
// the name is required. The first failing field decides the error.
func (f MissingPersonForm) Validate() error {
	f.Normalize()
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if mapped, ok := fieldErrors[fe.StructField()]; ok {
				return mapped
			}
		}
	}
	return err
}

// ToMissingPerson validates the form and builds a record reported on now.
// The ID is left at zero; the store assigns it.
func (f MissingPersonForm) ToMissingPerson(now time.Time) (MissingPerson, error) {
	f.Normalize()
	if err := f.Validate(); err != nil {
		return MissingPerson{}, err
	}
	var age *int
	if f.Age != "" {
		v, _ := strconv.Atoi(f.Age)
		age = &v
	}
	return MissingPerson{
		Name:         f.Name,
		Age:          age,
		Gender:       f.Gender,
		LastSeen:     f.LastSeen,
		LastSeenDate: f.LastSeenDate,
		Region:       f.Region,
		Description:  f.Description,
		ContactName:  f.ContactName,
		ContactPhone: f.ContactPhone,
		ContactEmail: f.ContactEmail,
		PhotoURL:     DefaultPhotoURL,
		DateReported: now.Format(DateLayout),
	}, nil
}
