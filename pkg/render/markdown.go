package render

import (
	"fmt"
	"strings"

	"github.com/matzehuels/autotype/pkg/record"
	"github.com/matzehuels/autotype/pkg/resume"
)

// Output formats.
const (
	FormatTerminal = "terminal"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Formats lists every supported output format.
var Formats = []string{FormatTerminal, FormatMarkdown, FormatJSON}

// RecordMarkdown decodes a snapshot and lays it out as markdown.
func RecordMarkdown(r *record.Record) (string, error) {
	res, err := resume.FromRecord(r)
	if err != nil {
		return "", err
	}
	return Markdown(res), nil
}

// Markdown lays a resume out as markdown.
func Markdown(r *resume.Resume) string {
	var b strings.Builder
	writeProfile(&b, r.Profile)

	for _, s := range resume.Sections {
		heading := r.Heading(s)
		if heading == "" {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", heading)
		switch s {
		case resume.SectionWork:
			for _, w := range r.WorkExperiences {
				writeEntry(&b, w.Company, join(" · ", bold(w.JobTitle), w.Date), w.Descriptions)
			}
		case resume.SectionEducation:
			for _, e := range r.Educations {
				gpa := ""
				if e.GPA != "" {
					gpa = "GPA " + e.GPA
				}
				writeEntry(&b, e.School, join(" · ", bold(e.Degree), e.Date, gpa), e.Descriptions)
			}
		case resume.SectionProjects:
			for _, p := range r.Projects {
				writeEntry(&b, p.Project, p.Date, p.Descriptions)
			}
		case resume.SectionSkills:
			writeSkills(&b, r.Skills)
		case resume.SectionCustom:
			writeBullets(&b, r.Custom.Descriptions)
		case resume.SectionReferences:
			for _, ref := range r.References.References {
				writeEntry(&b, ref.Name, join(" · ", ref.Title, ref.Company, ref.Email, ref.Phone), nil)
			}
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeProfile(b *strings.Builder, p resume.Profile) {
	if p.Name != "" {
		fmt.Fprintf(b, "# %s\n\n", p.Name)
	}
	if contact := join(" · ", p.Email, p.Phone, p.URL, p.Location); contact != "" {
		fmt.Fprintf(b, "%s\n\n", contact)
	}
	if p.Summary != "" {
		fmt.Fprintf(b, "%s\n\n", p.Summary)
	}
}

func writeEntry(b *strings.Builder, title, subtitle string, bullets []string) {
	if title != "" {
		fmt.Fprintf(b, "### %s\n\n", title)
	}
	if subtitle != "" {
		fmt.Fprintf(b, "%s\n\n", subtitle)
	}
	writeBullets(b, bullets)
}

func writeBullets(b *strings.Builder, bullets []string) {
	n := 0
	for _, line := range bullets {
		if line == "" {
			continue
		}
		fmt.Fprintf(b, "- %s\n", line)
		n++
	}
	if n > 0 {
		b.WriteByte('\n')
	}
}

func writeSkills(b *strings.Builder, s resume.Skills) {
	var featured []string
	for _, fs := range s.FeaturedSkills {
		if fs.Skill == "" {
			continue
		}
		featured = append(featured, fmt.Sprintf("%s %s", fs.Skill, stars(fs.Rating)))
	}
	writeBullets(b, featured)

	for _, c := range s.Categories {
		skills := join(", ", c.Skills...)
		switch {
		case c.Name != "" && skills != "":
			fmt.Fprintf(b, "**%s**: %s\n\n", c.Name, skills)
		case c.Name != "":
			fmt.Fprintf(b, "**%s**\n\n", c.Name)
		case skills != "":
			fmt.Fprintf(b, "%s\n\n", skills)
		}
	}
}

// stars draws a rating out of five.
func stars(rating int) string {
	rating = max(0, min(5, rating))
	return strings.Repeat("●", rating) + strings.Repeat("○", 5-rating)
}

func bold(s string) string {
	if s == "" {
		return ""
	}
	return "**" + s + "**"
}

// join joins the non-empty parts with sep.
func join(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
