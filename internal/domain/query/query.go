package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/Norte-Development/lexsearch/internal/domain"
)

// DefaultMaxResults caps each result bucket when the caller sets no limit.
const DefaultMaxResults = 20

// Query is a validated search request.
type Query struct {
	text    string
	filters Filters
}

// New trims and validates the query text and normalizes the filters.
func New(text string, filters Filters) (Query, error) {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return Query{}, fmt.Errorf("%w: empty search query", domain.ErrInvalidQuery)
	}
	if err := filters.validate(); err != nil {
		return Query{}, fmt.Errorf("%w: %s", domain.ErrInvalidQuery, err)
	}
	filters.applyDefaults()
	return Query{text: cleaned, filters: filters}, nil
}

// Text returns the trimmed query text.
func (q Query) Text() string { return q.text }

// Filters returns the effective (normalized) filters.
func (q Query) Filters() Filters { return q.filters }

// Filters narrows a search request.
type Filters struct {
	Categories    []Category
	Jurisdiction  string
	Provincia     string
	StartDate     *time.Time
	EndDate       *time.Time
	DocumentTypes []DocumentType
	MaxResults    int
}

// DateRange returns the inclusive date bounds, or ok=false when unset.
func (f Filters) DateRange() (r DateRange, ok bool) {
	if f.StartDate == nil && f.EndDate == nil {
		return DateRange{}, false
	}
	return DateRange{Start: f.StartDate, End: f.EndDate}, true
}

// Includes reports whether the given document type is selected.
// An empty selection includes every type.
func (f Filters) Includes(t DocumentType) bool {
	if len(f.DocumentTypes) == 0 {
		return true
	}
	for _, dt := range f.DocumentTypes {
		if dt == t {
			return true
		}
	}
	return false
}

func (f Filters) validate() error {
	for _, c := range f.Categories {
		if !c.Valid() {
			return fmt.Errorf("unknown normativa category %q", c)
		}
	}
	for _, t := range f.DocumentTypes {
		if !t.Valid() {
			return fmt.Errorf("unknown document type %q", t)
		}
	}
	if f.Provincia != "" && !ValidJurisdiction(f.Provincia) {
		return fmt.Errorf("unknown provincia %q", f.Provincia)
	}
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return fmt.Errorf("end date precedes start date")
	}
	if f.MaxResults < 0 {
		return fmt.Errorf("max results must be positive")
	}
	return nil
}

func (f *Filters) applyDefaults() {
	if f.MaxResults == 0 {
		f.MaxResults = DefaultMaxResults
	}
}

// DateRange is an inclusive date window; nil bounds are open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}
