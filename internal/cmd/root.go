package cmd

import (
	"github.com/alecthomas/kong"
)

type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	JSON    bool   `help:"JSON output to stdout; disables colors."`
	Plain   bool   `help:"TSV output to stdout; disables colors."`
	Verbose bool   `help:"Enable debug logging."`

	VersionFlag kong.VersionFlag `help:"Print version."`

	Version   VersionCmd   `cmd:"" help:"Print version."`
	Config    ConfigCmd    `cmd:"" help:"Manage configuration."`
	Vacancies VacanciesCmd `cmd:"" default:"withargs" aliases:"jobs,ls" help:"List job vacancies."`
	Show      ShowCmd      `cmd:"" help:"Show one vacancy in detail."`
	Locations LocationsCmd `cmd:"" help:"List the location filter options."`
	Proxies   ProxiesCmd   `cmd:"" help:"Proxy utilities."`
}

func NewCLI() *CLI {
	return &CLI{}
}
