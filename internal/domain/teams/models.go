package teams

import (
	"bytes"
	"encoding/json"
	"sort"
)

// JSON attribute names of a team record.
const (
	FieldID      = "id"
	FieldName    = "name"
	FieldLeague  = "league"
	FieldCountry = "country"
	FieldFounded = "founded"
	FieldStadium = "stadium"
)

// UnknownLeague groups teams whose record carries no league.
const UnknownLeague = "Unknown"

// Team is one record of the document. Attributes the service does not know
// about are kept as raw JSON and written back untouched.
type Team struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	League  string `json:"league"`
	Country string `json:"country"`
	Founded int    `json:"founded"`
	Stadium string `json:"stadium"`

	numericID bool
	absent    fieldSet
	extra     map[string]json.RawMessage
}

type fieldSet uint8

const (
	bitID fieldSet = 1 << iota
	bitName
	bitLeague
	bitCountry
	bitFounded
	bitStadium
)

var knownFields = []struct {
	key string
	bit fieldSet
}{
	{FieldID, bitID},
	{FieldName, bitName},
	{FieldLeague, bitLeague},
	{FieldCountry, bitCountry},
	{FieldFounded, bitFounded},
	{FieldStadium, bitStadium},
}

// LeagueOrUnknown returns the league used for aggregation.
func (t Team) LeagueOrUnknown() string {
	if t.absent&bitLeague != 0 {
		return UnknownLeague
	}
	return t.League
}

// Extra returns a raw attribute the service does not model.
func (t Team) Extra(key string) (json.RawMessage, bool) {
	raw, ok := t.extra[key]
	return raw, ok
}

// Apply overwrites the editable attributes with a validated draft. The id and
// unmodelled attributes are preserved.
func (t *Team) Apply(d Draft) {
	t.Name = d.Name
	t.League = d.League
	t.Country = d.Country
	t.Founded = d.Founded
	t.Stadium = d.Stadium
	editable := bitName | bitLeague | bitCountry | bitFounded | bitStadium
	t.absent &^= editable
	for _, f := range knownFields {
		if f.bit&editable != 0 {
			delete(t.extra, f.key)
		}
	}
}

func (t Team) clone() Team {
	if t.extra != nil {
		extra := make(map[string]json.RawMessage, len(t.extra))
		for k, v := range t.extra {
			extra[k] = v
		}
		t.extra = extra
	}
	return t
}

// UnmarshalJSON decodes a stored record leniently: a known attribute whose
// value has an unexpected type is kept raw instead of failing the document.
func (t *Team) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var out Team
	for _, f := range knownFields {
		if _, ok := fields[f.key]; !ok {
			out.absent |= f.bit
		}
	}
	if raw, ok := fields[FieldID]; ok {
		if id, numeric, err := CanonicalID(raw); err == nil {
			out.ID = id
			out.numericID = numeric
			delete(fields, FieldID)
		}
	}
	take(fields, FieldName, &out.Name)
	take(fields, FieldLeague, &out.League)
	take(fields, FieldCountry, &out.Country)
	take(fields, FieldFounded, &out.Founded)
	take(fields, FieldStadium, &out.Stadium)
	// Whatever known key is still here could not be decoded.
	for _, f := range knownFields {
		if _, ok := fields[f.key]; ok {
			out.absent |= f.bit
		}
	}
	if len(fields) > 0 {
		out.extra = fields
	}
	*t = out
	return nil
}

// MarshalJSON writes known attributes in a fixed order followed by the
// preserved ones sorted by key.
func (t Team) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	write := func(key string, value any) error {
		encoded, err := json.Marshal(value)
		if err != nil {
			return err
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, _ := json.Marshal(key)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(encoded)
		return nil
	}

	var idValue any = string(t.ID)
	if t.numericID {
		idValue = json.Number(t.ID)
	}
	values := map[string]any{
		FieldID:      idValue,
		FieldName:    t.Name,
		FieldLeague:  t.League,
		FieldCountry: t.Country,
		FieldFounded: t.Founded,
		FieldStadium: t.Stadium,
	}
	for _, f := range knownFields {
		if t.absent&f.bit != 0 {
			continue
		}
		if err := write(f.key, values[f.key]); err != nil {
			return nil, err
		}
	}

	keys := make([]string, 0, len(t.extra))
	for k := range t.extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := write(k, t.extra[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// take decodes fields[key] into dst and removes it from fields. Null and
// mistyped values are left in place.
func take[T any](fields map[string]json.RawMessage, key string, dst *T) {
	raw, ok := fields[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return
	}
	*dst = v
	delete(fields, key)
}
