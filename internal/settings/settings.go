// Package settings loads and validates the settings.yml file that
// drives a run: SMTP credentials, exchange rules, and the
// participant list.
package settings

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/noelops/secret-santa/internal/models"
)

// ErrPasswordEnvMissing is returned when the SMTP password points at
// an environment variable that is not set.
var ErrPasswordEnvMissing = errors.New("smtp password env var not set")

// SMTP holds the mail server connection details.
type SMTP struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required,gt=0,lte=65535"`
	User string `yaml:"user" validate:"required,email"`

	// Password starting with "$" names an environment variable to
	// read the real password from; a leading `\$` escapes a literal
	// dollar sign. Resolved by ResolvePassword, not at load time.
	Password string `yaml:"password"`
}

// Contact is the address used by test-email mode.
type Contact struct {
	Name  string `yaml:"name" validate:"required"`
	Email string `yaml:"email" validate:"required,email"`
}

// Config is the "config" section of the settings file.
type Config struct {
	EmailSubject string  `yaml:"email_subject" validate:"required"`
	SMTP         SMTP    `yaml:"smtp"`
	Testing      Contact `yaml:"testing"`
}

// Rules is the "rules" section; its fields are handed verbatim to the
// mail template.
type Rules struct {
	LimitDollars float64   `yaml:"limit_dollars" validate:"required,gt=0"`
	OpeningDay   time.Time `yaml:"opening_day" validate:"required"`
}

// Settings is the full parsed settings file.
type Settings struct {
	Config       Config               `yaml:"config"`
	Rules        Rules                `yaml:"rules"`
	Participants []models.Participant `yaml:"participants" validate:"min=2,unique=Name,dive"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads and validates the settings file at path.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Validate checks the settings against the schema: required fields,
// e-mail syntax, a positive spending limit, and at least two
// participants with unique names. Duplicate names would let a broken
// pairing slip through the invariant check, so they are rejected here.
func (s *Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldError(fe))
	}
	return fmt.Errorf("invalid settings: %s", strings.Join(msgs, "; "))
}

// fieldError turns a validator error into something a user editing
// settings.yml can act on.
func fieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	field = strings.TrimPrefix(field, "Settings.")

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s is not a valid e-mail address", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s needs at least %s entries", field, fe.Param())
	case "unique":
		return fmt.Sprintf("%s contains duplicate names", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// ResolvePassword expands the SMTP password in place. "$VAR" reads
// the password from the environment; a missing variable is only
// tolerated on a dry run (nothing will authenticate anyway). "\$..."
// becomes a literal "$...".
func (s *Settings) ResolvePassword(dryRun bool) error {
	pw := s.Config.SMTP.Password

	switch {
	case strings.HasPrefix(pw, "$"):
		name := pw[1:]
		val, ok := os.LookupEnv(name)
		if !ok {
			if dryRun {
				s.Config.SMTP.Password = ""
				return nil
			}
			return fmt.Errorf("%w: %s", ErrPasswordEnvMissing, name)
		}
		s.Config.SMTP.Password = val
	case strings.HasPrefix(pw, `\$`):
		s.Config.SMTP.Password = pw[1:]
	}

	return nil
}
