// Package pipeline turns a record into a rendered document.
//
// This package is the one place the CLI and the HTTP server render records,
// so both produce identical output and share the same cache keys.
//
// # Stages
//
//  1. Decode: the record is decoded into a typed resume (skipped for json)
//  2. Layout: the resume is laid out as markdown
//  3. Render: markdown is styled for a terminal (terminal format only)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Render(ctx, rec, pipeline.Options{
//	    Format: pipeline.FormatTerminal,
//	    Width:  100,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Data)
//
// Rendering without a cache:
//
//	data, err := pipeline.Render(rec, opts)
package pipeline

import (
	"time"

	"github.com/muesli/termenv"

	"github.com/matzehuels/autotype/pkg/cache"
	apperr "github.com/matzehuels/autotype/pkg/errors"
	"github.com/matzehuels/autotype/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// Format constants for output formats.
const (
	FormatTerminal = render.FormatTerminal
	FormatMarkdown = render.FormatMarkdown
	FormatJSON     = render.FormatJSON
)

const (
	// DefaultFormat is the output format used when none is set.
	DefaultFormat = FormatTerminal

	// DefaultStyle is the terminal style used when none is set.
	DefaultStyle = render.StyleAuto

	// DefaultWidth is the word-wrap width used when none is set.
	DefaultWidth = render.DefaultWidth
)

// =============================================================================
// Options - Render Configuration
// =============================================================================

// Options configures a render. It supports JSON so the server can take it
// from a query.
type Options struct {
	Format  string `json:"format,omitempty"`
	Style   string `json:"style,omitempty"`
	Width   int    `json:"width,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`

	// Profile is the terminal color profile. Nil means the profile detected
	// on standard output.
	Profile *termenv.Profile `json:"-"`
}

// Result contains the output of a render.
type Result struct {
	// Data is the rendered document.
	Data []byte

	// RecordHash is the content hash of the rendered record.
	RecordHash string

	// CacheHit reports whether Data came from the cache.
	CacheHit bool

	// Duration is the time spent rendering, or reading the cache on a hit.
	Duration time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return apperr.ValidateFormat(format, render.Formats...)
}

// ValidateStyle checks that a terminal style is valid.
func ValidateStyle(style string) error {
	return apperr.ValidateFormat(style, render.Styles...)
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills in unset fields.
func (o *Options) SetDefaults() {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Profile == nil {
		p := termenv.ColorProfile()
		o.Profile = &p
	}
}

// ValidateAndSetDefaults applies defaults and checks the result.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// IsTerminal returns true if the output is styled for a terminal.
func (o *Options) IsTerminal() bool {
	return o.Format == FormatTerminal
}

// RenderKeyOpts returns cache key options. Style, width and profile only
// change terminal output, so they are left out of the key for other formats.
func (o *Options) RenderKeyOpts() cache.RenderKeyOpts {
	if !o.IsTerminal() {
		return cache.RenderKeyOpts{Format: o.Format}
	}
	opts := cache.RenderKeyOpts{Format: o.Format, Style: o.Style, Width: o.Width}
	if o.Profile != nil {
		opts.Profile = int(*o.Profile)
	}
	return opts
}
