package teams

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestTeamJSONTags(t *testing.T) {
	type fieldCheck struct {
		name string
		tag  string
	}
	teamType := reflect.TypeOf(Team{})
	fields := []fieldCheck{
		{"ID", "id"},
		{"Name", "name"},
		{"League", "league"},
		{"Country", "country"},
		{"Founded", "founded"},
		{"Stadium", "stadium"},
	}
	for _, fc := range fields {
		f, ok := teamType.FieldByName(fc.name)
		if !ok {
			t.Fatalf("missing field %s", fc.name)
		}
		if tag := f.Tag.Get("json"); tag != fc.tag {
			t.Fatalf("field %s expected tag %s, got %s", fc.name, fc.tag, tag)
		}
	}
}

func TestTeamMarshalKnownFieldsInOrder(t *testing.T) {
	team := Team{ID: "3", Name: "Ajax", League: "Eredivisie", Country: "Netherlands", Founded: 1900, Stadium: "Johan Cruijff ArenA"}
	data, err := json.Marshal(team)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":"3","name":"Ajax","league":"Eredivisie","country":"Netherlands","founded":1900,"stadium":"Johan Cruijff ArenA"}`
	if string(data) != want {
		t.Fatalf("unexpected json\n got %s\nwant %s", data, want)
	}
}

func TestTeamUnmarshalNumericIDKeepsNumberOnWrite(t *testing.T) {
	var team Team
	if err := json.Unmarshal([]byte(`{"id":7,"name":"Porto","league":"Primeira Liga","country":"Portugal","founded":1893,"stadium":"Dragao"}`), &team); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if team.ID != "7" {
		t.Fatalf("expected canonical id 7, got %q", team.ID)
	}
	data, _ := json.Marshal(team)
	var raw map[string]any
	_ = json.Unmarshal(data, &raw)
	if _, ok := raw["id"].(float64); !ok {
		t.Fatalf("expected numeric id to be written as a number, got %T", raw["id"])
	}
}

func TestTeamUnmarshalPreservesUnknownAndMistypedAttributes(t *testing.T) {
	var team Team
	in := `{"id":"1","name":"Celtic","country":"Scotland","founded":"1887","stadium":"Celtic Park","coach":"Rodgers"}`
	if err := json.Unmarshal([]byte(in), &team); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if team.LeagueOrUnknown() != UnknownLeague {
		t.Fatalf("expected missing league to aggregate as Unknown, got %q", team.LeagueOrUnknown())
	}
	if team.Founded != 0 {
		t.Fatalf("expected mistyped founded to stay out of the typed field, got %d", team.Founded)
	}
	if raw, ok := team.Extra("coach"); !ok || string(raw) != `"Rodgers"` {
		t.Fatalf("expected coach preserved, got %s", raw)
	}

	out, err := json.Marshal(team)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got, want map[string]any
	_ = json.Unmarshal(out, &got)
	_ = json.Unmarshal([]byte(in), &want)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected content preserved\n got %v\nwant %v", got, want)
	}
}

func TestTeamApplyClearsAbsentAndKeepsExtras(t *testing.T) {
	var team Team
	if err := json.Unmarshal([]byte(`{"id":"1","name":"Old","founded":"x","coach":"someone"}`), &team); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	team.Apply(Draft{Name: "New", League: "L", Country: "C", Founded: 1900, FoundedValid: true, Stadium: "S"})

	if team.LeagueOrUnknown() != "L" {
		t.Fatalf("expected league set, got %q", team.LeagueOrUnknown())
	}
	out, _ := json.Marshal(team)
	var got map[string]any
	_ = json.Unmarshal(out, &got)
	if got["founded"] != float64(1900) {
		t.Fatalf("expected founded overwritten, got %v", got["founded"])
	}
	if got["coach"] != "someone" {
		t.Fatalf("expected coach preserved, got %v", got["coach"])
	}
	if got["id"] != "1" {
		t.Fatalf("expected id preserved, got %v", got["id"])
	}
}

func TestCanonicalID(t *testing.T) {
	cases := []struct {
		raw     string
		want    ID
		numeric bool
		wantErr bool
	}{
		{raw: `"12"`, want: "12"},
		{raw: `12`, want: "12", numeric: true},
		{raw: `true`, want: "true"},
		{raw: `"abc"`, want: "abc"},
		{raw: `null`, wantErr: true},
		{raw: `{}`, wantErr: true},
	}
	for _, tc := range cases {
		got, numeric, err := CanonicalID(json.RawMessage(tc.raw))
		if tc.wantErr {
			if err == nil {
				t.Fatalf("expected error for %s", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tc.raw, err)
		}
		if got != tc.want || numeric != tc.numeric {
			t.Fatalf("CanonicalID(%s) = %q,%v want %q,%v", tc.raw, got, numeric, tc.want, tc.numeric)
		}
	}
}

func TestIDNumeric(t *testing.T) {
	if n, ok := NewID(42).Numeric(); !ok || n != 42 {
		t.Fatalf("expected 42, got %d %v", n, ok)
	}
	if _, ok := ParseID("abc").Numeric(); ok {
		t.Fatalf("expected non-numeric id")
	}
}
