package pipeline

import (
	"bytes"

	"github.com/matzehuels/autotype/pkg/io"
	"github.com/matzehuels/autotype/pkg/record"
	"github.com/matzehuels/autotype/pkg/render"
)

// Render renders rec in the format named by opts without caching.
// opts must have been validated.
func Render(rec *record.Record, opts Options) ([]byte, error) {
	if opts.Format == FormatJSON {
		var buf bytes.Buffer
		if err := io.WriteJSON(rec, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	md, err := render.RecordMarkdown(rec)
	if err != nil {
		return nil, err
	}
	if !opts.IsTerminal() {
		return []byte(md), nil
	}

	term, err := render.NewTerminal(render.TerminalOptions{
		Width:   opts.Width,
		Style:   opts.Style,
		Profile: opts.Profile,
	})
	if err != nil {
		return nil, err
	}
	out, err := term.Render(md)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}
