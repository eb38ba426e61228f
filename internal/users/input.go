package users

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/angelmondragon/libreria-backend/pkg/errors"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 150
	maxNameLen     = 150
	maxEmailLen    = 254
	minPasswordLen = 8
)

var (
	validate        = validator.New()
	usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)
)

// CreateInput is a new account. IsActive defaults to true.
type CreateInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	IsAdmin   bool
	IsActive  *bool
}

// UpdateInput replaces the editable profile. A nil Password keeps the
// current credential.
type UpdateInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	IsAdmin   bool
	IsActive  bool
	Password  *string
}

func (in *CreateInput) normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
}

func (in CreateInput) validate() error {
	fields := pkgerrors.Fields{}
	checkProfile(fields, in.Username, in.Email, in.FirstName, in.LastName)
	CheckPassword(fields, "password", in.Password)
	return fields.Err()
}

func (in *UpdateInput) normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
}

func (in UpdateInput) validate() error {
	fields := pkgerrors.Fields{}
	checkProfile(fields, in.Username, in.Email, in.FirstName, in.LastName)
	if in.Password != nil {
		CheckPassword(fields, "password", *in.Password)
	}
	return fields.Err()
}

func checkProfile(fields pkgerrors.Fields, username, email, firstName, lastName string) {
	fields.Required("username", username)
	if n := utf8.RuneCountInString(username); username != "" && n < minUsernameLen {
		fields.Add("username", "must be at least 3 characters")
	}
	fields.MaxLen("username", username, maxUsernameLen)
	if username != "" && !usernamePattern.MatchString(username) {
		fields.Add("username", "may contain only letters, digits and @/./+/-/_")
	}

	fields.Required("email", email)
	fields.MaxLen("email", email, maxEmailLen)
	if email != "" && validate.Var(email, "email") != nil {
		fields.Add("email", "must be a valid email address")
	}

	fields.MaxLen("first_name", firstName, maxNameLen)
	fields.MaxLen("last_name", lastName, maxNameLen)
}

// CheckPassword records the password policy failures under field.
func CheckPassword(fields pkgerrors.Fields, field, password string) {
	fields.Required(field, password)
	if password != "" && utf8.RuneCountInString(password) < minPasswordLen {
		fields.Add(field, "must be at least 8 characters")
	}
}
