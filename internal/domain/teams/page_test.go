package teams

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func roster(n int) []Team {
	out := make([]Team, n)
	for i := range out {
		out[i] = Team{ID: NewID(int64(i + 1)), Name: fmt.Sprintf("Team %d", i+1), League: "L"}
	}
	return out
}

func TestParsePage(t *testing.T) {
	cases := map[string]int{
		"":     1,
		"abc":  1,
		"0":    1,
		"-3":   1,
		"2":    2,
		" 3 ":  3,
		"1.5":  1,
		"9999": 9999,

		"99999999999999999999":  math.MaxInt,
		"-99999999999999999999": 1,
	}
	for raw, want := range cases {
		if got := ParsePage(raw); got != want {
			t.Fatalf("ParsePage(%q) = %d, want %d", raw, got, want)
		}
	}
}

func TestPaginate(t *testing.T) {
	all := roster(23)
	cases := []struct {
		page      int
		wantPage  int
		wantLen   int
		wantFirst ID
	}{
		{page: 1, wantPage: 1, wantLen: 10, wantFirst: "1"},
		{page: 3, wantPage: 3, wantLen: 3, wantFirst: "21"},
		{page: 4, wantPage: 4, wantLen: 0},
		{page: 0, wantPage: 1, wantLen: 10, wantFirst: "1"},
		{page: 1 << 62, wantPage: 1 << 62, wantLen: 0},
	}
	for _, tc := range cases {
		got := Paginate(all, tc.page)
		if got.Page != tc.wantPage || len(got.Items) != tc.wantLen {
			t.Fatalf("page %d: got page %d with %d items", tc.page, got.Page, len(got.Items))
		}
		if got.TotalCount != 23 || got.PageSize != PageSize {
			t.Fatalf("unexpected totals %+v", got)
		}
		if tc.wantLen > 0 && got.Items[0].ID != tc.wantFirst {
			t.Fatalf("page %d: expected first id %s, got %s", tc.page, tc.wantFirst, got.Items[0].ID)
		}
		if got.Items == nil {
			t.Fatalf("expected empty slice rather than nil")
		}
	}
}

func TestPaginateOverflowedPageIsEmpty(t *testing.T) {
	got := Paginate(roster(5), ParsePage("99999999999999999999"))
	if len(got.Items) != 0 || got.TotalCount != 5 {
		t.Fatalf("expected empty page past the end, got %+v", got)
	}
}

func TestPaginateExactMultiple(t *testing.T) {
	if got := Paginate(roster(20), 3); len(got.Items) != 0 {
		t.Fatalf("expected empty third page, got %d", len(got.Items))
	}
}

func TestSummarize(t *testing.T) {
	all := []Team{{League: "A"}, {League: "B"}, {League: "A"}}
	var noLeague Team
	_ = noLeague.UnmarshalJSON([]byte(`{"id":"9","name":"X"}`))
	all = append(all, noLeague)

	stats := Summarize(all)
	if stats.TotalCount != 4 {
		t.Fatalf("expected 4 teams, got %d", stats.TotalCount)
	}
	sum := 0
	for _, n := range stats.TeamsPerLeague {
		sum += n
	}
	if sum != stats.TotalCount {
		t.Fatalf("expected per-league counts to add up, got %d", sum)
	}
	if stats.TeamsPerLeague["A"] != 2 || stats.TeamsPerLeague[UnknownLeague] != 1 {
		t.Fatalf("unexpected per-league counts %v", stats.TeamsPerLeague)
	}
}

func TestStorageErrorWrapping(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError(OpSave, cause)
	if !IsStorage(err) || !errors.Is(err, cause) {
		t.Fatalf("expected wrapped storage error, got %v", err)
	}
	if again := NewStorageError(OpLoad, err); again != err {
		t.Fatalf("expected existing storage error returned as-is")
	}
	if NewStorageError(OpLoad, nil) != nil {
		t.Fatalf("expected nil for nil cause")
	}
	if !IsNotFound(fmt.Errorf("wrapped: %w", &NotFoundError{ID: "1"})) {
		t.Fatalf("expected not found detection through wrapping")
	}
}
