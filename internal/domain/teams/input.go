package teams

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// Input carries the attributes a client submits on create or update, before
// trimming and validation.
type Input struct {
	Name    Text `json:"name"`
	League  Text `json:"league"`
	Country Text `json:"country"`
	Founded Year `json:"founded"`
	Stadium Text `json:"stadium"`
}

// Text is a submitted string attribute. Any non-string JSON value decodes to
// the empty string rather than rejecting the request body.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*t = ""
		return nil
	}
	*t = Text(s)
	return nil
}

// Year is a submitted founding year. Valid is false when the value was
// absent or could not be read as an integer.
type Year struct {
	Value int
	Valid bool
}

// YearOf returns a present, valid year.
func YearOf(v int) Year {
	return Year{Value: v, Valid: true}
}

// UnmarshalJSON accepts integers, floats (truncated), booleans and strings
// holding a base-10 integer.
func (y *Year) UnmarshalJSON(data []byte) error {
	*y = coerceYear(data)
	return nil
}

func (y Year) MarshalJSON() ([]byte, error) {
	if !y.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(y.Value)
}

func coerceYear(data []byte) Year {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Year{}
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return Year{}
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return Year{}
		}
		return YearOf(n)
	case 't':
		return YearOf(1)
	case 'f':
		return YearOf(0)
	case 'n', '{', '[':
		return Year{}
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return Year{}
	}
	if n, err := strconv.Atoi(num.String()); err == nil || errors.Is(err, strconv.ErrRange) {
		return YearOf(n)
	}
	f, err := num.Float64()
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return Year{}
	}
	return YearOf(clampInt(math.Trunc(f)))
}

// clampInt converts f to int, saturating at the int range.
func clampInt(f float64) int {
	switch {
	case f >= float64(math.MaxInt):
		return math.MaxInt
	case f <= float64(math.MinInt):
		return math.MinInt
	}
	return int(f)
}

// Draft is a trimmed and coerced Input ready for validation.
type Draft struct {
	Name         string
	League       string
	Country      string
	Founded      int
	FoundedValid bool
	Stadium      string
}

// Normalize trims the string attributes and carries the coerced year.
func (in Input) Normalize() Draft {
	return Draft{
		Name:         strings.TrimSpace(string(in.Name)),
		League:       strings.TrimSpace(string(in.League)),
		Country:      strings.TrimSpace(string(in.Country)),
		Founded:      in.Founded.Value,
		FoundedValid: in.Founded.Valid,
		Stadium:      strings.TrimSpace(string(in.Stadium)),
	}
}

// NewTeam builds a team record from a validated draft. The id is written as
// a JSON string.
func (d Draft) NewTeam(id ID) Team {
	return Team{
		ID:      id,
		Name:    d.Name,
		League:  d.League,
		Country: d.Country,
		Founded: d.Founded,
		Stadium: d.Stadium,
	}
}
