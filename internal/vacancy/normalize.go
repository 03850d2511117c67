package vacancy

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/nextcareer/nextcareer/internal/models"
)

// FallbackLogo replaces a missing company logo.
const FallbackLogo = "https://via.placeholder.com/64?text=Logo"

// IDGenerator produces identifiers for records that carry none.
type IDGenerator func() string

// Normalizer maps raw API records onto display listings.
type Normalizer struct {
	newID    IDGenerator
	location *time.Location
}

type Option func(*Normalizer)

// WithIDGenerator overrides the identifier fallback (uuid by default).
func WithIDGenerator(gen IDGenerator) Option {
	return func(n *Normalizer) {
		if gen != nil {
			n.newID = gen
		}
	}
}

// WithLocation sets the timezone used for posted labels.
func WithLocation(loc *time.Location) Option {
	return func(n *Normalizer) {
		if loc != nil {
			n.location = loc
		}
	}
}

func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{
		newID:    uuid.NewString,
		location: jakarta(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize never fails: every field has a fallback.
func (n *Normalizer) Normalize(raw models.RawJobRecord) models.Listing {
	postedAt, postedErr := parsePostedAt(deref(raw.CreatedAt))
	posted := models.Placeholder
	if postedErr == nil {
		postedAt = postedAt.In(n.location)
		posted = FormatPosted(postedAt)
	}

	logo := deref(raw.CompanyLogo)
	if strings.TrimSpace(logo) == "" {
		logo = FallbackLogo
	}

	return models.Listing{
		ID:           n.resolveID(raw),
		Title:        orPlaceholder(raw.Title),
		Company:      orPlaceholder(raw.CompanyName),
		LogoURL:      logo,
		Location:     orPlaceholder(raw.CompanyCity),
		WorkType:     ClassifyWorkType(deref(raw.WorkType)),
		Status:       StatusFromCode(raw.Status),
		Salary:       FormatSalary(raw.SalaryMin, raw.SalaryMax),
		Description:  deref(raw.Description),
		Requirements: SplitRequirements(deref(raw.Qualification)),
		Posted:       posted,
		PostedAt:     postedAt,
	}
}

// NormalizeAll maps records in order.
func (n *Normalizer) NormalizeAll(raws []models.RawJobRecord) []models.Listing {
	out := make([]models.Listing, 0, len(raws))
	for _, raw := range raws {
		out = append(out, n.Normalize(raw))
	}
	return out
}

func (n *Normalizer) resolveID(raw models.RawJobRecord) string {
	switch {
	case raw.NumericID != "":
		return raw.NumericID
	case raw.StringID != "":
		return raw.StringID
	case raw.AltID != "":
		return raw.AltID
	}
	return n.newID()
}

var workTypeAliases = map[string]models.WorkType{
	"workfromhome": models.WorkRemote,
	"wfh":          models.WorkRemote,
	"remote":       models.WorkRemote,
	"onsite":       models.WorkOnsite,
	"hybrid":       models.WorkHybrid,
	"hybird":       models.WorkHybrid,
}

// ClassifyWorkType is case and whitespace insensitive. Unknown values are Onsite.
func ClassifyWorkType(value string) models.WorkType {
	key := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, value)
	if wt, ok := workTypeAliases[key]; ok {
		return wt
	}
	return models.WorkOnsite
}

func StatusFromCode(code *int) models.Status {
	if code != nil && *code == 1 {
		return models.StatusOpen
	}
	return models.StatusClosed
}

// FormatSalary renders bounds in whole millions of rupiah. Zero or negative
// bounds count as absent.
func FormatSalary(min, max *float64) string {
	lo, hasLo := millions(min)
	hi, hasHi := millions(max)
	if !hasLo && !hasHi {
		return models.Placeholder
	}
	if !hasLo {
		lo = hi
	}
	if !hasHi {
		hi = lo
	}
	if lo != hi {
		return fmt.Sprintf("Rp %d-%d juta", lo, hi)
	}
	return fmt.Sprintf("Rp %d juta", lo)
}

func millions(value *float64) (int64, bool) {
	if value == nil || *value <= 0 {
		return 0, false
	}
	m := math.Round(*value / 1_000_000)
	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
	if !(m < math.MaxInt64) {
		return 0, false
	}
	return int64(m), true
}

// SplitRequirements breaks a qualification blob on commas, newlines,
// bullets and dashes.
func SplitRequirements(value string) []string {
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == '\n' || r == '•' || r == '-'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

var idMonths = [...]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}

// FormatPosted renders t as an Indonesian medium date with a short time,
// e.g. "15 Jan 2024, 10.04".
func FormatPosted(t time.Time) string {
	return fmt.Sprintf("%d %s %d, %02d.%02d", t.Day(), idMonths[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

var postedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

var errEmptyTimestamp = errors.New("empty timestamp")

// Timestamps without a zone are read as UTC.
func parsePostedAt(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errEmptyTimestamp
	}
	for _, layout := range postedLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time format: %s", value)
}

func jakarta() *time.Location {
	if loc, err := time.LoadLocation("Asia/Jakarta"); err == nil {
		return loc
	}
	return time.FixedZone("WIB", 7*60*60)
}

func orPlaceholder(value *string) string {
	if value == nil {
		return models.Placeholder
	}
	return *value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
