package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/nextcareer/nextcareer/internal/vacancy"
)

type LocationsCmd struct {
	Types   bool   `help:"List the work type options instead."`
	Proxies string `help:"Comma-separated proxy URLs." env:"NEXTCAREER_PROXIES"`
}

func (l *LocationsCmd) Run(ctx *Context) error {
	var options []string
	if l.Types {
		options = vacancy.TypeOptions()
	} else {
		page, err := visit(ctx, l.Proxies)
		if err != nil {
			return err
		}
		options = vacancy.LocationOptions(page.State().Listings)
	}

	if ctx.JSONOutput {
		return json.NewEncoder(ctx.Out).Encode(options)
	}
	for _, option := range options {
		if _, err := fmt.Fprintln(ctx.Out, option); err != nil {
			return err
		}
	}
	return nil
}
