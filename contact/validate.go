package contact

import (
	"regexp"
	"strings"
)

// Validation messages shown next to the offending field.
const (
	MsgNameRequired        = "Vennligst fyll inn navn"
	MsgEmailRequired       = "Vennligst fyll inn e-post"
	MsgEmailInvalid        = "Vennligst oppgi en gyldig e-postadresse"
	MsgPhoneRequired       = "Vennligst fyll inn telefonnummer"
	MsgPhoneInvalid        = "Vennligst oppgi et gyldig telefonnummer"
	MsgDescriptionRequired = "Vennligst beskriv prosjektet"
)

// MinPhoneDigits is the number of digits a phone number needs once
// everything else is stripped.
const MinPhoneDigits = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationResult maps fields to error messages. A field without a message is valid.
// The zero value is an empty, valid result.
type ValidationResult struct {
	errs map[Field]string
}

// Set records msg for f. An empty msg clears the field.
func (v *ValidationResult) Set(f Field, msg string) {
	if msg == "" {
		v.Clear(f)
		return
	}
	if v.errs == nil {
		v.errs = make(map[Field]string)
	}
	v.errs[f] = msg
}

// Clear removes the error for a single field, as when the user edits it.
func (v *ValidationResult) Clear(f Field) {
	delete(v.errs, f)
}

// Reset removes every error.
func (v *ValidationResult) Reset() {
	clear(v.errs)
}

// Error returns the message for f, or "" if f is valid.
func (v ValidationResult) Error(f Field) string {
	return v.errs[f]
}

// Has reports whether f has an error.
func (v ValidationResult) Has(f Field) bool {
	_, ok := v.errs[f]
	return ok
}

// Valid reports whether no field has an error.
func (v ValidationResult) Valid() bool {
	return len(v.errs) == 0
}

// Invalid returns the failing fields in document order.
func (v ValidationResult) Invalid() []Field {
	var out []Field
	for _, f := range Fields {
		if v.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// FirstInvalid returns the first failing field in document order.
func (v ValidationResult) FirstInvalid() (Field, bool) {
	for _, f := range Fields {
		if v.Has(f) {
			return f, true
		}
	}
	return "", false
}

// Validate checks the required fields. Address, floor type, size and site
// visit are optional and never produce errors. Surrounding whitespace is
// ignored, so an untrimmed request validates like its trimmed form.
func Validate(req Request) ValidationResult {
	var res ValidationResult

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	phone := strings.TrimSpace(req.Phone)
	description := strings.TrimSpace(req.Description)

	if name == "" {
		res.Set(FieldName, MsgNameRequired)
	}

	switch {
	case email == "":
		res.Set(FieldEmail, MsgEmailRequired)
	case !emailPattern.MatchString(email):
		res.Set(FieldEmail, MsgEmailInvalid)
	}

	switch {
	case phone == "":
		res.Set(FieldPhone, MsgPhoneRequired)
	case countDigits(phone) < MinPhoneDigits:
		res.Set(FieldPhone, MsgPhoneInvalid)
	}

	if description == "" {
		res.Set(FieldDescription, MsgDescriptionRequired)
	}

	return res
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
