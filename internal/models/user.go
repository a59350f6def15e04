package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

type User struct {
	ID      int             `json:"id"`
	Login   string          `json:"login"`
	Campus  string          `json:"campus"`
	Attrs   UserAttrs       `json:"attrs"`
	Profile json.RawMessage `json:"profile,omitempty"`
}

// UserAttrs is the free-form attribute bag of a user. The endpoint returns
// it either as an object or as a JSON-encoded string of one; anything that
// cannot be decoded yields empty attributes.
type UserAttrs struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Education  string `json:"education"`
	Background string `json:"background"`
	Skills     string `json:"skills"`
}

type userAttrs UserAttrs

func (a *UserAttrs) UnmarshalJSON(b []byte) error {
	*a = UserAttrs{}

	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		b = []byte(s)
	}

	var v userAttrs
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	*a = UserAttrs(v)
	return nil
}

// FullName joins first and last name.
func (a UserAttrs) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// HasBackground reports whether any background attribute is set.
func (a UserAttrs) HasBackground() bool {
	return a.Education != "" || a.Background != "" || a.Skills != ""
}

// Initial is the upper-cased first letter of the login, "?" when empty.
func (u User) Initial() string {
	for _, r := range u.Login {
		return strings.ToUpper(string(r))
	}
	return "?"
}
