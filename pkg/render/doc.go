// Package render turns resume snapshots into readable documents.
//
// # Overview
//
// [Markdown] lays a [resume.Resume] out as markdown: the profile header, then
// each section in display order under its heading. Sections without a
// heading (nothing typed yet) are left out, so a document grows section by
// section as an animation runs.
//
// [Terminal] renders that markdown for a terminal with glamour:
//
//	term, err := render.NewTerminal(render.TerminalOptions{Width: 80})
//	if err != nil {
//	    return err
//	}
//	out, err := term.Render(render.Markdown(r))
//
// # Formats
//
// [FormatTerminal], [FormatMarkdown] and [FormatJSON] name the outputs the
// render pipeline can produce.
package render
