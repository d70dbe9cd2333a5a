// Package validate implements the field-level validation rules for the
// insurance entities and user registration. Every check is performed
// before any database write is attempted; a non-empty result means the
// operation must be rejected with no side effects. Messages are the
// Czech texts shown to agency staff.
package validate

import (
	"strings"
	"time"
	"unicode"

	"github.com/pojisteni/insurance-agency/internal/model"
)

// Validation messages. The email and password texts are the exact
// wording used by the agency's registration forms.
const (
	MsgEmailDomain      = "Email musí obsahovat '@seznam.cz'"
	MsgWeakPassword     = "Heslo musí obsahovat jedno malé a jedno velké písmeno a musí být min. 8 znaků dlouhé"
	MsgPasswordMismatch = "Hesla nejsou totožná"
	MsgRequired         = "Pole je povinné"
	MsgInvalidChoice    = "Neplatná hodnota"
	MsgDateOrder        = "Datum 'platné od' musí předcházet datu 'platné do'"
)

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string { return e.Field + ": " + e.Message }

// Email checks the agency's email domain rule: the address must
// contain "@seznam.cz".
func Email(value string) *FieldError {
	if !strings.Contains(value, "@seznam.cz") {
		return &FieldError{Field: "email", Message: MsgEmailDomain}
	}
	return nil
}

// PasswordOK reports whether the password contains at least one
// uppercase letter, at least one lowercase letter and is at least
// 8 characters long. RE2 has no lookaheads, so the rule is checked
// by scanning runes instead of with the original regex.
func PasswordOK(password string) bool {
	var upper, lower bool
	n := 0
	for _, r := range password {
		n++
		if unicode.IsUpper(r) {
			upper = true
		}
		if unicode.IsLower(r) {
			lower = true
		}
	}
	return upper && lower && n >= 8
}

// Registration validates a registration payload. Both password fields
// must independently satisfy the complexity rule and must be equal.
func Registration(username, password, passwordConfirm string) []FieldError {
	var errs []FieldError
	if strings.TrimSpace(username) == "" {
		errs = append(errs, FieldError{Field: "username", Message: MsgRequired})
	}
	if !PasswordOK(password) {
		errs = append(errs, FieldError{Field: "password", Message: MsgWeakPassword})
	}
	if !PasswordOK(passwordConfirm) {
		errs = append(errs, FieldError{Field: "password_confirm", Message: MsgWeakPassword})
	}
	if len(errs) == 0 && password != passwordConfirm {
		errs = append(errs, FieldError{Field: "password_confirm", Message: MsgPasswordMismatch})
	}
	return errs
}

// PolicyHolder validates the writable fields of a policyholder.
func PolicyHolder(p *model.PolicyHolder) []FieldError {
	var errs []FieldError
	errs = appendRequired(errs, "name", p.Name)
	errs = appendRequired(errs, "lastname", p.Lastname)
	errs = appendRequired(errs, "birth_id", p.BirthID)
	errs = appendRequired(errs, "email", p.Email)
	if p.Email != "" {
		if e := Email(p.Email); e != nil {
			errs = append(errs, *e)
		}
	}
	return errs
}

// Policy validates the writable fields of an insurance policy. The
// target amount arrives as a pointer so that an absent value can be
// told apart from an explicit zero; absence is a hard error.
func Policy(paidBy, insuranceType string, targetAmount *int64, validFrom, validTo time.Time) []FieldError {
	var errs []FieldError
	if !model.ValidPaidBy(paidBy) {
		errs = append(errs, FieldError{Field: "paid_by", Message: MsgInvalidChoice})
	}
	if !model.ValidInsuranceType(insuranceType) {
		errs = append(errs, FieldError{Field: "insurance_type", Message: MsgInvalidChoice})
	}
	if targetAmount == nil {
		errs = append(errs, FieldError{Field: "target_amount", Message: MsgRequired})
	}
	if validFrom.IsZero() {
		errs = append(errs, FieldError{Field: "valid_from", Message: MsgRequired})
	}
	if validTo.IsZero() {
		errs = append(errs, FieldError{Field: "valid_to", Message: MsgRequired})
	}
	if !validFrom.IsZero() && !validTo.IsZero() && validFrom.After(validTo) {
		errs = append(errs, FieldError{Field: "valid_from", Message: MsgDateOrder})
	}
	return errs
}

// Event validates the writable fields of a claim event.
func Event(title, contractNo string, eventDate time.Time) []FieldError {
	var errs []FieldError
	errs = appendRequired(errs, "title", title)
	errs = appendRequired(errs, "contract_no", contractNo)
	if eventDate.IsZero() {
		errs = append(errs, FieldError{Field: "event_date", Message: MsgRequired})
	}
	return errs
}

func appendRequired(errs []FieldError, field, value string) []FieldError {
	if strings.TrimSpace(value) == "" {
		errs = append(errs, FieldError{Field: field, Message: MsgRequired})
	}
	return errs
}
