package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"github.com/nextcareer/nextcareer/internal/models"
)

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

const LinkColor = "#87CEEB"

// Badge colors used by the listing cards of the site.
const (
	openColor    = "#16A34A"
	closedColor  = "#DC2626"
	remoteColor  = "#2563EB"
	onsiteColor  = "#9333EA"
	hybridColor  = "#EA580C"
	neutralColor = "8"
)

type UI struct {
	Out          io.Writer
	Err          io.Writer
	Output       *termenv.Output
	ErrOutput    *termenv.Output
	ColorEnabled bool
}

func New(out io.Writer, err io.Writer, mode ColorMode, disableColor bool) *UI {
	output := termenv.NewOutput(out)
	errOutput := termenv.NewOutput(err)

	return &UI{
		Out:          out,
		Err:          err,
		Output:       output,
		ErrOutput:    errOutput,
		ColorEnabled: shouldEnableColor(output, mode, disableColor),
	}
}

func shouldEnableColor(output *termenv.Output, mode ColorMode, disableColor bool) bool {
	if disableColor {
		return false
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return output.ColorProfile() != termenv.Ascii
	}
}

func (u *UI) Errorf(format string, args ...any) {
	u.printf(u.Err, u.ErrOutput, "1", format, args...)
}

func (u *UI) Warnf(format string, args ...any) {
	u.printf(u.Err, u.ErrOutput, "3", format, args...)
}

func (u *UI) Infof(format string, args ...any) {
	u.printf(u.Out, u.Output, "4", format, args...)
}

func (u *UI) Successf(format string, args ...any) {
	u.printf(u.Out, u.Output, "2", format, args...)
}

// Mutedf writes secondary text, such as hints, to stdout.
func (u *UI) Mutedf(format string, args ...any) {
	u.printf(u.Out, u.Output, neutralColor, format, args...)
}

func (u *UI) printf(w io.Writer, output *termenv.Output, color string, format string, args ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	if u.ColorEnabled && output != nil {
		msg = output.String(msg).Foreground(output.Color(color)).String()
	}
	fmt.Fprintln(w, msg)
}

func ColorizeLink(output *termenv.Output, enabled bool, text string) string {
	return colorize(output, enabled, LinkColor, text)
}

func (u *UI) LinkText(text string) string {
	return ColorizeLink(u.Output, u.ColorEnabled, text)
}

// StatusBadge renders an Open/Closed label, green or red.
func StatusBadge(output *termenv.Output, enabled bool, status models.Status) string {
	color := closedColor
	if status == models.StatusOpen {
		color = openColor
	}
	return colorize(output, enabled, color, string(status))
}

// WorkTypeBadge renders a work arrangement label in its badge color.
func WorkTypeBadge(output *termenv.Output, enabled bool, wt models.WorkType) string {
	return colorize(output, enabled, workTypeColor(wt), string(wt))
}

func workTypeColor(wt models.WorkType) string {
	switch wt {
	case models.WorkRemote:
		return remoteColor
	case models.WorkOnsite:
		return onsiteColor
	case models.WorkHybrid:
		return hybridColor
	default:
		return neutralColor
	}
}

func colorize(output *termenv.Output, enabled bool, color string, text string) string {
	if !enabled || output == nil {
		return text
	}
	return output.String(text).Foreground(output.Color(color)).String()
}

func NormalizeColorMode(value string) ColorMode {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case string(ColorAlways):
		return ColorAlways
	case string(ColorNever):
		return ColorNever
	default:
		return ColorAuto
	}
}
