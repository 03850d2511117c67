package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"github.com/nextcareer/nextcareer/internal/models"
	"github.com/nextcareer/nextcareer/internal/ui"
	"github.com/rivo/uniseg"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatTSV      Format = "tsv"
)

// Shown instead of an empty table or list.
const (
	EmptyTitle = "No jobs found"
	EmptyHint  = "Try adjusting your search criteria"
)

type WriteOptions struct {
	ColorEnabled bool
}

func WriteListings(w io.Writer, listings []models.Listing, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, listings)
	case FormatCSV:
		return writeCSV(w, listings, ',')
	case FormatTSV:
		return writeCSV(w, listings, '\t')
	case FormatMarkdown:
		return writeMarkdown(w, listings)
	default:
		return writeTable(w, listings, opts)
	}
}

func writeJSON(w io.Writer, listings []models.Listing) error {
	if listings == nil {
		listings = []models.Listing{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(listings)
}

func writeCSV(w io.Writer, listings []models.Listing, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write(csvHeader()); err != nil {
		return err
	}
	for _, listing := range listings {
		if err := writer.Write(csvRow(listing)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeEmpty(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n", EmptyTitle, EmptyHint)
	return err
}

func writeMarkdown(w io.Writer, listings []models.Listing) error {
	if len(listings) == 0 {
		return writeEmpty(w)
	}
	for _, listing := range listings {
		lines := []string{
			fmt.Sprintf("- **%s** (%s)", safe(listing.Title), safe(listing.Company)),
			fmt.Sprintf("  ID: `%s`", listing.ID),
			fmt.Sprintf("  Location: %s", safe(listing.Location)),
			fmt.Sprintf("  Type: %s", listing.WorkType),
			fmt.Sprintf("  Status: %s", listing.Status),
			fmt.Sprintf("  Salary: %s", safe(listing.Salary)),
			fmt.Sprintf("  Posted: %s", safe(listing.Posted)),
		}
		if len(listing.Requirements) > 0 {
			lines = append(lines, fmt.Sprintf("  Requirements: %s", strings.Join(listing.Requirements, ", ")))
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func csvHeader() []string {
	return []string{
		"id",
		"title",
		"company",
		"location",
		"type",
		"status",
		"salary",
		"posted",
		"posted_at",
		"requirements",
		"logo_url",
		"description",
	}
}

func csvRow(listing models.Listing) []string {
	posted := ""
	if !listing.PostedAt.IsZero() {
		posted = listing.PostedAt.Format(time.RFC3339)
	}
	return []string{
		listing.ID,
		listing.Title,
		listing.Company,
		listing.Location,
		string(listing.WorkType),
		string(listing.Status),
		listing.Salary,
		listing.Posted,
		posted,
		strings.Join(listing.Requirements, "; "),
		listing.LogoURL,
		strings.ReplaceAll(PlainText(listing.Description), "\n", " "),
	}
}

func safe(value string) string {
	return strings.TrimSpace(value)
}

func tableHeader() []string {
	return []string{
		"id",
		"title",
		"company",
		"location",
		"salary",
		"posted",
		"type",
		"status",
	}
}

func tableRow(listing models.Listing) []string {
	return []string{
		safe(listing.ID),
		safe(listing.Title),
		safe(listing.Company),
		safe(listing.Location),
		safe(listing.Salary),
		safe(listing.Posted),
		string(listing.WorkType),
		string(listing.Status),
	}
}

// writeTable pads cells by display width before coloring them, so escape
// sequences never shift the columns.
func writeTable(w io.Writer, listings []models.Listing, opts WriteOptions) error {
	if len(listings) == 0 {
		return writeEmpty(w)
	}

	header := tableHeader()
	rows := make([][]string, 0, len(listings))
	widths := make([]int, len(header))
	for i, cell := range header {
		widths[i] = uniseg.StringWidth(cell)
	}
	for _, listing := range listings {
		row := tableRow(listing)
		for i, cell := range row {
			widths[i] = max(widths[i], uniseg.StringWidth(cell))
		}
		rows = append(rows, row)
	}

	output := termenv.NewOutput(w)
	if err := writeTableLine(w, header, widths, nil); err != nil {
		return err
	}
	for i, row := range rows {
		listing := listings[i]
		style := func(col int, padded string) string {
			switch col {
			case 6:
				return strings.Replace(padded, row[col], ui.WorkTypeBadge(output, opts.ColorEnabled, listing.WorkType), 1)
			case 7:
				return strings.Replace(padded, row[col], ui.StatusBadge(output, opts.ColorEnabled, listing.Status), 1)
			default:
				return padded
			}
		}
		if err := writeTableLine(w, row, widths, style); err != nil {
			return err
		}
	}
	return nil
}

func writeTableLine(w io.Writer, cells []string, widths []int, style func(int, string) string) error {
	var b strings.Builder
	for i, cell := range cells {
		padded := cell
		if i < len(cells)-1 {
			padded += strings.Repeat(" ", widths[i]-uniseg.StringWidth(cell)+2)
		}
		if style != nil && cell != "" {
			padded = style(i, padded)
		}
		b.WriteString(padded)
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	return err
}
