package cmd

import (
	"io"
	"time"

	"github.com/nextcareer/nextcareer/internal/config"
	"github.com/nextcareer/nextcareer/internal/ui"
	"github.com/nextcareer/nextcareer/internal/vacancy"
	"github.com/rs/zerolog"
)

type Context struct {
	Out        io.Writer
	Err        io.Writer
	UI         *ui.UI
	Config     config.Config
	ConfigDir  string
	Logger     zerolog.Logger
	Verbose    bool
	JSONOutput bool
	PlainText  bool
	Version    string
	ColorMode  ui.ColorMode

	// Fetcher replaces the HTTP source when set.
	Fetcher vacancy.Fetcher
	Now     func() time.Time
}
