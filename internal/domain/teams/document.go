package teams

import (
	"encoding/json"
	"fmt"
)

const (
	docKeyTeams  = "teams"
	docKeyNextID = "nextId"
)

// Document is the persisted root: the ordered team list and the counter used
// to mint ids. Top-level keys the service does not model survive a rewrite.
type Document struct {
	Teams  []Team `json:"teams"`
	NextID int64  `json:"nextId"`

	extra map[string]json.RawMessage
}

type documentJSON struct {
	Teams  []Team `json:"teams"`
	NextID int64  `json:"nextId,omitempty"`
}

// NewDocument returns an empty document whose first minted id is origin.
func NewDocument(origin int64) Document {
	return Document{Teams: []Team{}, NextID: origin}
}

// Index returns the position of the team with the given id, or -1.
func (d Document) Index(id ID) int {
	for i, t := range d.Teams {
		if t.ID.Equal(id) {
			return i
		}
	}
	return -1
}

// MaxNumericID returns the largest decimal id in the document.
func (d Document) MaxNumericID() (int64, bool) {
	var (
		max   int64
		found bool
	)
	for _, t := range d.Teams {
		n, ok := t.ID.Numeric()
		if !ok {
			continue
		}
		if !found || n > max {
			max = n
			found = true
		}
	}
	return max, found
}

// RepairNextID makes the counter strictly greater than every numeric id and
// no smaller than origin. A document written without a counter starts at
// origin.
func (d *Document) RepairNextID(origin int64) {
	if d.NextID < origin {
		d.NextID = origin
	}
	if max, ok := d.MaxNumericID(); ok && d.NextID <= max {
		d.NextID = max + 1
	}
}

// Mint returns the next free id and advances the counter past it.
func (d *Document) Mint() ID {
	for {
		id := NewID(d.NextID)
		d.NextID++
		if d.Index(id) < 0 {
			return id
		}
	}
}

// Clone returns a deep copy safe to mutate independently.
func (d Document) Clone() Document {
	out := Document{NextID: d.NextID}
	if d.Teams != nil {
		out.Teams = make([]Team, len(d.Teams))
		for i, t := range d.Teams {
			out.Teams[i] = t.clone()
		}
	}
	if d.extra != nil {
		out.extra = make(map[string]json.RawMessage, len(d.extra))
		for k, v := range d.extra {
			out.extra[k] = v
		}
	}
	return out
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return fmt.Errorf("document must be a JSON object")
	}
	var body documentJSON
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	delete(fields, docKeyTeams)
	delete(fields, docKeyNextID)

	out := Document{Teams: body.Teams, NextID: body.NextID}
	if out.Teams == nil {
		out.Teams = []Team{}
	}
	if len(fields) > 0 {
		out.extra = fields
	}
	*d = out
	return nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	teams := d.Teams
	if teams == nil {
		teams = []Team{}
	}
	body, err := json.Marshal(documentJSON{Teams: teams, NextID: d.NextID})
	if err != nil {
		return nil, err
	}
	if len(d.extra) == 0 {
		return body, nil
	}
	merged := make(map[string]json.RawMessage, len(d.extra)+2)
	for k, v := range d.extra {
		merged[k] = v
	}
	var known map[string]json.RawMessage
	if err := json.Unmarshal(body, &known); err != nil {
		return nil, err
	}
	for k, v := range known {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// EncodeDocument serializes a document the way it is kept on disk.
func EncodeDocument(d Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// DecodeDocument parses persisted document content.
func DecodeDocument(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	return d, nil
}
