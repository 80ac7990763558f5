package todo

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen11/todomvc/internal/domain"
)

const (
	// FieldText identifies the text field in violations.
	FieldText = "text"

	// DefaultMaxTextLength is used when no maximum is configured.
	DefaultMaxTextLength = 50

	minTextLength = 3

	msgLeadingSpace = "Text must not start with a space."
	msgTooShort     = "Text length must be at least 3 characters."
	msgTooLongFmt   = "Text length is too long (max %d chars)."
)

// Validator checks todo text. Every rule is evaluated on its own, so a
// single candidate can collect several violations.
type Validator struct {
	maxTextLength int
	validate      *validator.Validate
}

// NewValidator returns a Validator with the given maximum text length.
// Values below the minimum length fall back to DefaultMaxTextLength.
func NewValidator(maxTextLength int) *Validator {
	if maxTextLength < minTextLength {
		maxTextLength = DefaultMaxTextLength
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, "noleadingspace", noLeadingSpace)
	mustRegister(v, "trimmedmin", trimmedMin)
	mustRegister(v, "trimmedmax", trimmedMax)

	return &Validator{maxTextLength: maxTextLength, validate: v}
}

var (
	defaultOnce      sync.Once
	defaultValidator *Validator
)

// DefaultValidator returns a shared Validator using DefaultMaxTextLength.
func DefaultValidator() *Validator {
	defaultOnce.Do(func() {
		defaultValidator = NewValidator(DefaultMaxTextLength)
	})
	return defaultValidator
}

// MaxTextLength returns the configured maximum.
func (v *Validator) MaxTextLength() int {
	return v.maxTextLength
}

type rule struct {
	tag     string
	message string
}

func (v *Validator) rules() []rule {
	return []rule{
		{tag: "noleadingspace", message: msgLeadingSpace},
		{tag: "trimmedmin=" + strconv.Itoa(minTextLength), message: msgTooShort},
		{tag: "trimmedmax=" + strconv.Itoa(v.maxTextLength), message: fmt.Sprintf(msgTooLongFmt, v.maxTextLength)},
	}
}

// Validate returns the violations for t. An empty result means t is valid.
func (v *Validator) Validate(t Todo) []domain.Violation {
	var violations []domain.Violation
	for _, r := range v.rules() {
		if err := v.validate.Var(t.Text, r.tag); err != nil {
			violations = append(violations, domain.Violation{Field: FieldText, Message: r.message})
		}
	}
	return violations
}

// Check is Validate folded into an error.
func (v *Validator) Check(t Todo) error {
	return domain.NewValidationError(v.Validate(t))
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("registering %s validation: %v", tag, err))
	}
}

func noLeadingSpace(fl validator.FieldLevel) bool {
	r, _ := utf8.DecodeRuneInString(fl.Field().String())
	return !unicode.IsSpace(r)
}

func trimmedMin(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
}

func trimmedMax(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) <= n
}
