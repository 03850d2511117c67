package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/nextcareer/nextcareer/internal/models"
)

func sampleListings() []models.Listing {
	return []models.Listing{
		{
			ID:           "1",
			Title:        "Backend Engineer",
			Company:      "Acme",
			LogoURL:      "https://cdn.example.com/acme.png",
			Location:     "Jakarta",
			WorkType:     models.WorkRemote,
			Status:       models.StatusOpen,
			Salary:       "Rp 5-8 juta",
			Description:  "<p>Build <b>APIs</b></p><ul><li>Own services</li><li>Ship fast</li></ul>",
			Requirements: []string{"Go", "PostgreSQL"},
			Posted:       "15 Jan 2024, 10.04",
			PostedAt:     time.Date(2024, 1, 15, 3, 4, 5, 0, time.UTC),
		},
		{
			ID:           "2",
			Title:        "Designer",
			Company:      models.Placeholder,
			LogoURL:      "https://via.placeholder.com/64?text=Logo",
			Location:     "Bandung",
			WorkType:     models.WorkHybrid,
			Status:       models.StatusClosed,
			Salary:       models.Placeholder,
			Requirements: []string{},
			Posted:       models.Placeholder,
		},
	}
}

func TestWriteListingsTableAligned(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteListings(&buf, sampleListings(), FormatTable, WriteOptions{}); err != nil {
		t.Fatalf("WriteListings() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "id") || !strings.HasSuffix(lines[0], "status") {
		t.Fatalf("unexpected header: %q", lines[0])
	}

	col := strings.Index(lines[0], "type")
	for _, line := range lines[1:] {
		runes := []rune(line)
		headerRunes := []rune(lines[0])
		offset := len([]rune(lines[0][:col]))
		if len(runes) <= offset || len(headerRunes) <= offset {
			t.Fatalf("row too short: %q", line)
		}
		if got := string(runes[offset : offset+6]); got != "Remote" && got != "Hybrid" {
			t.Fatalf("type column misaligned in %q (got %q)", line, got)
		}
	}
}

func TestWriteListingsEmpty(t *testing.T) {
	for _, format := range []Format{FormatTable, FormatMarkdown} {
		var buf bytes.Buffer
		if err := WriteListings(&buf, nil, format, WriteOptions{}); err != nil {
			t.Fatalf("WriteListings(%s) error = %v", format, err)
		}
		if buf.String() != EmptyTitle+"\n"+EmptyHint+"\n" {
			t.Fatalf("WriteListings(%s) = %q", format, buf.String())
		}
	}

	var buf bytes.Buffer
	if err := WriteListings(&buf, nil, FormatJSON, WriteOptions{}); err != nil {
		t.Fatalf("WriteListings(json) error = %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("empty json = %q, want []", buf.String())
	}
}

func TestWriteListingsCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteListings(&buf, sampleListings(), FormatCSV, WriteOptions{}); err != nil {
		t.Fatalf("WriteListings() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	row := records[1]
	if row[0] != "1" || row[4] != "Remote" || row[5] != "Open" || row[6] != "Rp 5-8 juta" {
		t.Fatalf("unexpected row: %v", row)
	}
	if row[8] != "2024-01-15T03:04:05Z" {
		t.Fatalf("posted_at = %q", row[8])
	}
	if row[9] != "Go; PostgreSQL" {
		t.Fatalf("requirements = %q", row[9])
	}
	if row[11] != "Build APIs • Own services • Ship fast" {
		t.Fatalf("description = %q", row[11])
	}
	if records[2][8] != "" {
		t.Fatalf("missing posted_at should be empty, got %q", records[2][8])
	}
}

func TestWriteListingsTSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteListings(&buf, sampleListings()[:1], FormatTSV, WriteOptions{}); err != nil {
		t.Fatalf("WriteListings() error = %v", err)
	}
	header := strings.SplitN(buf.String(), "\n", 2)[0]
	if header != strings.Join(csvHeader(), "\t") {
		t.Fatalf("tsv header = %q", header)
	}
}

func TestWriteListingsJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteListings(&buf, sampleListings(), FormatJSON, WriteOptions{}); err != nil {
		t.Fatalf("WriteListings() error = %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if len(decoded) != 2 || decoded[0]["type"] != "Remote" || decoded[1]["status"] != "Closed" {
		t.Fatalf("unexpected json: %v", decoded)
	}
	if decoded[0]["posted_at"] != "2024-01-15T03:04:05Z" {
		t.Fatalf("posted_at = %v", decoded[0]["posted_at"])
	}
	if v, ok := decoded[1]["posted_at"]; ok {
		t.Fatalf("listing without a timestamp must omit posted_at, got %v", v)
	}
}

func TestWriteListingsMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteListings(&buf, sampleListings(), FormatMarkdown, WriteOptions{}); err != nil {
		t.Fatalf("WriteListings() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"- **Backend Engineer** (Acme)",
		"  Requirements: Go, PostgreSQL",
		"- **Designer** (—)",
		"  Status: Closed",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("markdown missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "Requirements:") != 1 {
		t.Fatalf("listings without requirements must omit the line:\n%s", out)
	}
}

func TestWriteDetail(t *testing.T) {
	listing := sampleListings()[0]
	now := listing.PostedAt.Add(3*24*time.Hour + time.Hour)

	var buf bytes.Buffer
	if err := WriteDetail(&buf, listing, DetailOptions{Now: func() time.Time { return now }}); err != nil {
		t.Fatalf("WriteDetail() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Backend Engineer\n",
		"Acme · Jakarta\n",
		"Remote  Open\n",
		"Salary:   Rp 5-8 juta\n",
		"Posted:   15 Jan 2024, 10.04 (3 days ago)\n",
		"Logo:     https://cdn.example.com/acme.png\n",
		"  Build APIs\n",
		"  • Own services\n",
		"  • Go\n  • PostgreSQL\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("detail missing %q:\n%s", want, out)
		}
	}
}

func TestWriteDetailPlaceholders(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDetail(&buf, sampleListings()[1], DetailOptions{}); err != nil {
		t.Fatalf("WriteDetail() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Posted:   —\n") {
		t.Fatalf("posted placeholder missing:\n%s", out)
	}
	if !strings.Contains(out, "Description\n  —\n") || !strings.Contains(out, "Requirements\n  —\n") {
		t.Fatalf("empty sections should show the placeholder:\n%s", out)
	}
}

func TestPlainText(t *testing.T) {
	cases := map[string]string{
		"":                                 "",
		"Plain   text\twith  spaces":       "Plain text with spaces",
		"<p>One</p><p>Two<br>Three</p>":    "One\nTwo\nThree",
		"Fish &amp; chips":                 "Fish & chips",
		"<ul><li>Go</li><li>SQL</li></ul>": "• Go\n• SQL",
	}
	for in, want := range cases {
		if got := PlainText(in); got != want {
			t.Fatalf("PlainText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestShortURLLabelAndHyperlink(t *testing.T) {
	if got := shortURLLabel("https://www.example.com/logos/acme.png"); got != "example.com/logos/acme.png" {
		t.Fatalf("shortURLLabel() = %q", got)
	}
	link := logoLink(nil, "https://example.com/a.png", DetailOptions{Hyperlinks: true, LinkStyle: LinkStyleShort})
	if !strings.HasPrefix(link, "\x1b]8;;https://example.com/a.png\x1b\\example.com/a.png") {
		t.Fatalf("logoLink() = %q", link)
	}
}
