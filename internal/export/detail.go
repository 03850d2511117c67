package export

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
	"github.com/nextcareer/nextcareer/internal/models"
	"github.com/nextcareer/nextcareer/internal/ui"
)

type LinkStyle string

const (
	LinkStyleShort LinkStyle = "short"
	LinkStyleFull  LinkStyle = "full"
)

// DetailOptions controls the single-listing view.
type DetailOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
	LinkStyle    LinkStyle
	Now          func() time.Time
}

// WriteDetail prints everything known about one listing.
func WriteDetail(w io.Writer, listing models.Listing, opts DetailOptions) error {
	output := termenv.NewOutput(w)
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	title := safe(listing.Title)
	if opts.ColorEnabled {
		title = output.String(title).Bold().String()
	}

	posted := safe(listing.Posted)
	if !listing.PostedAt.IsZero() {
		posted = fmt.Sprintf("%s (%s)", posted, humanize.RelTime(listing.PostedAt, now(), "ago", "from now"))
	}

	lines := []string{
		title,
		fmt.Sprintf("%s · %s", safe(listing.Company), safe(listing.Location)),
		fmt.Sprintf("%s  %s",
			ui.WorkTypeBadge(output, opts.ColorEnabled, listing.WorkType),
			ui.StatusBadge(output, opts.ColorEnabled, listing.Status)),
		"",
		fmt.Sprintf("ID:       %s", listing.ID),
		fmt.Sprintf("Salary:   %s", safe(listing.Salary)),
		fmt.Sprintf("Posted:   %s", posted),
		fmt.Sprintf("Logo:     %s", logoLink(output, listing.LogoURL, opts)),
		"",
		"Description",
	}

	description := PlainText(listing.Description)
	if description == "" {
		lines = append(lines, "  "+models.Placeholder)
	}
	for _, line := range strings.Split(description, "\n") {
		if line != "" {
			lines = append(lines, "  "+line)
		}
	}

	lines = append(lines, "", "Requirements")
	if len(listing.Requirements) == 0 {
		lines = append(lines, "  "+models.Placeholder)
	}
	for _, req := range listing.Requirements {
		lines = append(lines, "  • "+req)
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func logoLink(output *termenv.Output, raw string, opts DetailOptions) string {
	raw = safe(raw)
	if raw == "" {
		return models.Placeholder
	}
	label := raw
	if opts.LinkStyle == LinkStyleShort && opts.Hyperlinks {
		label = shortURLLabel(raw)
	}
	label = ui.ColorizeLink(output, opts.ColorEnabled, label)
	if opts.Hyperlinks {
		label = hyperlink(raw, label)
	}
	return label
}

// PlainText strips markup from an HTML fragment, keeping one line per
// block element. Plain input comes back with whitespace collapsed.
func PlainText(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return collapseSpaces(fragment)
	}
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, li, h1, h2, h3, h4, h5, h6, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("• ")
	})

	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		if line = collapseSpaces(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func collapseSpaces(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

func hyperlink(url string, text string) string {
	const esc = "\x1b"
	return esc + "]8;;" + url + esc + "\\" + text + esc + "]8;;" + esc + "\\"
}

func shortURLLabel(raw string) string {
	const maxLen = 60
	label := strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil {
		host := strings.TrimPrefix(parsed.Host, "www.")
		if host != "" {
			label = host + parsed.Path
		}
	}
	if label == "" {
		label = raw
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}
	return label
}
