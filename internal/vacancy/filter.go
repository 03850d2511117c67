package vacancy

import (
	"strings"

	"github.com/nextcareer/nextcareer/internal/models"
)

// All is the sentinel that disables a location or type filter.
const All = "all"

// Filter holds the search and filter selections of a page visit.
type Filter struct {
	Search   string
	Location string
	Type     string
}

// NewFilter returns a filter that matches every listing.
func NewFilter() Filter {
	return Filter{Location: All, Type: All}
}

// Reset clears all selections.
func (f *Filter) Reset() {
	*f = NewFilter()
}

// Apply returns the listings that match every selection, in input order.
func (f Filter) Apply(listings []models.Listing) []models.Listing {
	term := strings.ToLower(f.Search)
	out := make([]models.Listing, 0, len(listings))
	for _, listing := range listings {
		if f.matches(listing, term) {
			out = append(out, listing)
		}
	}
	return out
}

func (f Filter) matches(listing models.Listing, term string) bool {
	if !strings.Contains(strings.ToLower(listing.Title), term) &&
		!strings.Contains(strings.ToLower(listing.Company), term) {
		return false
	}
	if !isAll(f.Location) && listing.Location != f.Location {
		return false
	}
	if !isAll(f.Type) && string(listing.WorkType) != f.Type {
		return false
	}
	return true
}

// An unset selection behaves like the sentinel.
func isAll(value string) bool {
	return value == All || value == ""
}

// LocationOptions returns the sentinel followed by each distinct non-empty
// location in first-seen order.
func LocationOptions(listings []models.Listing) []string {
	options := []string{All}
	seen := map[string]struct{}{}
	for _, listing := range listings {
		if listing.Location == "" {
			continue
		}
		if _, ok := seen[listing.Location]; ok {
			continue
		}
		seen[listing.Location] = struct{}{}
		options = append(options, listing.Location)
	}
	return options
}

func TypeOptions() []string {
	options := []string{All}
	for _, wt := range models.WorkTypes {
		options = append(options, string(wt))
	}
	return options
}

// ParseTypeOption maps user input such as "remote" onto a type option.
func ParseTypeOption(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if isAll(strings.ToLower(value)) {
		return All, true
	}
	for _, wt := range models.WorkTypes {
		if strings.EqualFold(value, string(wt)) {
			return string(wt), true
		}
	}
	return "", false
}
