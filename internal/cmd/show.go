package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nextcareer/nextcareer/internal/export"
)

var ErrNotFound = errors.New("listing not found")

type ShowCmd struct {
	ID      string `arg:"" help:"Listing id, as printed by 'vacancies'."`
	Links   string `help:"Logo link display: short or full." enum:"short,full" default:"full"`
	Proxies string `help:"Comma-separated proxy URLs." env:"NEXTCAREER_PROXIES"`
}

func (s *ShowCmd) Run(ctx *Context) error {
	id := strings.TrimSpace(s.ID)
	if id == "" {
		return fmt.Errorf("listing id is required")
	}

	page, err := visit(ctx, s.Proxies)
	if err != nil {
		return err
	}

	listing, ok := page.Find(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(listing)
	}

	colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled
	linkStyle := export.LinkStyleShort
	if strings.EqualFold(s.Links, string(export.LinkStyleFull)) {
		linkStyle = export.LinkStyleFull
	}
	return export.WriteDetail(ctx.Out, listing, export.DetailOptions{
		ColorEnabled: colorEnabled,
		Hyperlinks:   colorEnabled && isTTY(ctx.Out),
		LinkStyle:    linkStyle,
		Now:          ctx.Now,
	})
}
