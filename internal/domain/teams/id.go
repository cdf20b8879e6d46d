package teams

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// ID identifies a team. Ids minted by the service are decimal integers, but
// documents written by other tools may carry any JSON primitive, so every
// comparison goes through the canonical textual form.
type ID string

// NewID returns the canonical id for a minted counter value.
func NewID(n int64) ID {
	return ID(strconv.FormatInt(n, 10))
}

// ParseID canonicalizes an id taken from a request path.
func ParseID(raw string) ID {
	return ID(raw)
}

func (id ID) String() string {
	return string(id)
}

// Numeric returns the integer value of a decimal id.
func (id ID) Numeric() (int64, bool) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Equal compares two ids by canonical form.
func (id ID) Equal(other ID) bool {
	return id == other
}

var errUnsupportedID = errors.New("id must be a string, number or boolean")

// CanonicalID converts a stored JSON id value to its canonical form. The
// second return reports whether the value was a JSON number, so it can be
// written back the same way.
func CanonicalID(raw json.RawMessage) (ID, bool, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false, errUnsupportedID
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false, err
		}
		return ID(s), false, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return "", false, err
		}
		return ID(strconv.FormatBool(b)), false, nil
	case '{', '[', 'n':
		return "", false, errUnsupportedID
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", false, err
		}
		return ID(n.String()), true, nil
	}
}
