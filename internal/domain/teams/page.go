package teams

import (
	"errors"
	"strconv"
	"strings"
)

// PageSize is fixed; clients cannot ask for larger pages.
const PageSize = 10

// Page is one slice of the roster in document order.
type Page struct {
	Items      []Team `json:"items"`
	TotalCount int    `json:"totalCount"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
}

// Stats aggregates the whole roster.
type Stats struct {
	TotalCount     int            `json:"totalCount"`
	TeamsPerLeague map[string]int `json:"teamsPerLeague"`
}

// ParsePage reads a raw page query value. Anything unparsable or below one
// means the first page. Integers too large for int saturate, which lands past
// the last page.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 1
	}
	return NormalizePage(n)
}

// NormalizePage clamps non-positive pages to one.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Paginate returns the requested page of roster. Past the end it yields an
// empty page, never an error.
func Paginate(roster []Team, page int) Page {
	page = NormalizePage(page)
	total := len(roster)
	items := []Team{}
	// Compare before multiplying so a huge page cannot overflow the offset.
	if page-1 <= total/PageSize {
		start := (page - 1) * PageSize
		if start < total {
			end := min(start+PageSize, total)
			items = make([]Team, end-start)
			copy(items, roster[start:end])
		}
	}
	return Page{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PageSize:   PageSize,
	}
}

// Summarize counts teams overall and per league.
func Summarize(roster []Team) Stats {
	perLeague := make(map[string]int)
	for _, t := range roster {
		perLeague[t.LeagueOrUnknown()]++
	}
	return Stats{
		TotalCount:     len(roster),
		TeamsPerLeague: perLeague,
	}
}
