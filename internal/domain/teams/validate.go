package teams

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MinFounded is the earliest accepted founding year.
const MinFounded = 1701

// Messages returned per field when a draft is rejected.
const (
	MsgNameRequired    = "Name is required."
	MsgLeagueRequired  = "League is required."
	MsgCountryRequired = "Country is required."
	MsgFoundedNumber   = "Founded must be a number."
	MsgFoundedTooEarly = "Founded must be 1701 or later."
	MsgStadiumRequired = "Stadium is required."
	MsgNameTaken       = "A team with this name already exists."
)

// FieldErrors maps an attribute name to the reason it was rejected.
type FieldErrors map[string]string

// Validate checks a draft for a new team against the current roster. Every
// rule runs; nothing short-circuits.
func (d Draft) Validate(roster []Team) FieldErrors {
	return d.validate(roster, func(Team) bool { return false })
}

// ValidateFor checks a draft replacing the team with the given id, which is
// left out of the name uniqueness check.
func (d Draft) ValidateFor(id ID, roster []Team) FieldErrors {
	return d.validate(roster, func(t Team) bool { return t.ID.Equal(id) })
}

func (d Draft) validate(roster []Team, skip func(Team) bool) FieldErrors {
	errs := FieldErrors{}
	if d.Name == "" {
		errs[FieldName] = MsgNameRequired
	}
	if d.League == "" {
		errs[FieldLeague] = MsgLeagueRequired
	}
	if d.Country == "" {
		errs[FieldCountry] = MsgCountryRequired
	}
	switch {
	case !d.FoundedValid:
		errs[FieldFounded] = MsgFoundedNumber
	case d.Founded < MinFounded:
		errs[FieldFounded] = MsgFoundedTooEarly
	}
	if d.Stadium == "" {
		errs[FieldStadium] = MsgStadiumRequired
	}
	if d.Name != "" && nameTaken(d.Name, roster, skip) {
		errs[FieldName] = MsgNameTaken
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func nameTaken(name string, roster []Team, skip func(Team) bool) bool {
	want := foldName(name)
	for _, t := range roster {
		if skip(t) {
			continue
		}
		if foldName(t.Name) == want {
			return true
		}
	}
	return false
}

// foldName is the key names are compared by: trimmed and lowercased.
// Special casing such as ß to ss is not applied.
func foldName(name string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(name))
}

// SameName reports whether two names collide under case-insensitive
// comparison.
func SameName(a, b string) bool {
	return foldName(a) == foldName(b)
}
