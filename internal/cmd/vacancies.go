package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/nextcareer/nextcareer/internal/export"
	"github.com/nextcareer/nextcareer/internal/models"
	"github.com/nextcareer/nextcareer/internal/vacancy"
)

type VacanciesCmd struct {
	Search   string `arg:"" optional:"" help:"Match title or company (case-insensitive)."`
	Location string `help:"Exact location, or 'all'." env:"NEXTCAREER_LOCATION"`
	Type     string `help:"Work type: all, Remote, Onsite, Hybrid." env:"NEXTCAREER_TYPE"`
	Format   string `help:"Output format: table, csv, tsv, json, md." enum:",table,csv,tsv,json,md" default:""`
	Output   string `name:"output" short:"o" help:"Write output to a file."`
	Proxies  string `help:"Comma-separated proxy URLs." env:"NEXTCAREER_PROXIES"`
}

func (v *VacanciesCmd) Run(ctx *Context) error {
	typeValue := firstNonEmpty(v.Type, ctx.Config.DefaultType)
	typeOption, ok := vacancy.ParseTypeOption(typeValue)
	if !ok {
		return fmt.Errorf("unknown work type %q (want one of %s)", typeValue, strings.Join(vacancy.TypeOptions(), ", "))
	}

	format, err := resolveFormat(ctx, v.Format, v.Output)
	if err != nil {
		return err
	}

	page, err := visit(ctx, v.Proxies)
	if err != nil {
		return err
	}
	listings := page.State().Listings

	filter := vacancy.NewFilter()
	filter.Search = strings.TrimSpace(v.Search)
	filter.Type = typeOption
	filter.Location = matchOption(
		vacancy.LocationOptions(listings),
		firstNonEmpty(v.Location, ctx.Config.DefaultLocation),
	)
	visible := page.Visible(filter)

	writer := ctx.Out
	if v.Output != "" {
		file, err := os.Create(v.Output)
		if err != nil {
			return err
		}
		defer file.Close()
		writer = file
	}

	colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled && v.Output == ""
	if err := export.WriteListings(writer, visible, format, export.WriteOptions{ColorEnabled: colorEnabled}); err != nil {
		return err
	}

	printSummary(ctx, len(listings), visible)
	return nil
}

// matchOption returns the option equal to value ignoring case, or value
// itself so the filter stays exact.
func matchOption(options []string, value string) string {
	value = strings.TrimSpace(value)
	for _, option := range options {
		if strings.EqualFold(option, value) {
			return option
		}
	}
	return value
}

func printSummary(ctx *Context, total int, visible []models.Listing) {
	if ctx == nil || ctx.Err == nil {
		return
	}
	_, _ = fmt.Fprintf(ctx.Err, "%s\n", formatSummary(total, visible))
}

func formatSummary(total int, visible []models.Listing) string {
	counts := countByType(visible)
	parts := make([]string, 0, len(counts))
	for _, count := range counts {
		parts = append(parts, fmt.Sprintf("%s:%d", count.workType, count.total))
	}
	byType := "none"
	if len(parts) > 0 {
		byType = strings.Join(parts, ", ")
	}
	return fmt.Sprintf("summary: jobs=%d shown=%d by_type=%s", total, len(visible), byType)
}

type typeCount struct {
	workType models.WorkType
	total    int
}

func countByType(listings []models.Listing) []typeCount {
	totals := make(map[models.WorkType]int, len(models.WorkTypes))
	for _, listing := range listings {
		totals[listing.WorkType]++
	}

	counts := make([]typeCount, 0, len(totals))
	for _, wt := range models.WorkTypes {
		if totals[wt] == 0 {
			continue
		}
		counts = append(counts, typeCount{workType: wt, total: totals[wt]})
	}
	return counts
}

func resolveFormat(ctx *Context, requested string, outputPath string) (export.Format, error) {
	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	if requested != "" {
		return parseFormat(requested)
	}
	if outputPath != "" {
		return formatFromPath(outputPath), nil
	}
	if isTTY(ctx.Out) {
		return export.FormatTable, nil
	}
	return export.FormatCSV, nil
}

func formatFromPath(path string) export.Format {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".json"):
		return export.FormatJSON
	case strings.HasSuffix(lower, ".tsv"):
		return export.FormatTSV
	case strings.HasSuffix(lower, ".md"), strings.HasSuffix(lower, ".markdown"):
		return export.FormatMarkdown
	default:
		return export.FormatCSV
	}
}

func parseFormat(value string) (export.Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "csv":
		return export.FormatCSV, nil
	case "json":
		return export.FormatJSON, nil
	case "md", "markdown":
		return export.FormatMarkdown, nil
	case "tsv":
		return export.FormatTSV, nil
	case "table", "":
		return export.FormatTable, nil
	default:
		return "", fmt.Errorf("unknown format: %s", value)
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
