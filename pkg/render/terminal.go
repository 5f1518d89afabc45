package render

import (
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	apperr "github.com/matzehuels/autotype/pkg/errors"
)

// Terminal styles.
const (
	StyleAuto  = "auto"
	StyleDark  = "dark"
	StyleLight = "light"
	StyleNoTTY = "notty"
	StyleASCII = "ascii"
)

// Styles lists every supported terminal style.
var Styles = []string{StyleAuto, StyleDark, StyleLight, StyleNoTTY, StyleASCII}

// DefaultWidth is the word-wrap width used when none is set.
const DefaultWidth = 80

// TerminalOptions configures a [Terminal].
type TerminalOptions struct {
	// Width is the word-wrap width. Zero means DefaultWidth.
	Width int
	// Style is one of [Styles]. Empty means StyleAuto.
	Style string
	// Profile is the color profile. Nil means the profile detected on
	// standard output.
	Profile *termenv.Profile
}

// Terminal renders markdown for a terminal.
type Terminal struct {
	r *glamour.TermRenderer
}

// NewTerminal creates a terminal renderer.
func NewTerminal(opts TerminalOptions) (*Terminal, error) {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Style == "" {
		opts.Style = StyleAuto
	}
	if err := apperr.ValidateFormat(opts.Style, Styles...); err != nil {
		return nil, err
	}
	profile := termenv.ColorProfile()
	if opts.Profile != nil {
		profile = *opts.Profile
	}

	options := []glamour.TermRendererOption{
		glamour.WithWordWrap(opts.Width),
		glamour.WithColorProfile(profile),
	}
	if opts.Style == StyleAuto {
		options = append(options, glamour.WithAutoStyle())
	} else {
		options = append(options, glamour.WithStandardStyle(opts.Style))
	}

	r, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "create terminal renderer")
	}
	return &Terminal{r: r}, nil
}

// Render renders markdown.
func (t *Terminal) Render(markdown string) (string, error) {
	out, err := t.r.Render(markdown)
	if err != nil {
		return "", apperr.Wrap(apperr.ErrCodeInternal, err, "render markdown")
	}
	return out, nil
}
