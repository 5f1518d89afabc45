package resume

// Section names a resume section below the profile.
type Section string

const (
	SectionWork       Section = "workExperiences"
	SectionEducation  Section = "educations"
	SectionProjects   Section = "projects"
	SectionSkills     Section = "skills"
	SectionCustom     Section = "custom"
	SectionReferences Section = "references"
)

// Sections lists the sections in display order.
var Sections = []Section{
	SectionWork,
	SectionEducation,
	SectionProjects,
	SectionSkills,
	SectionCustom,
	SectionReferences,
}

// Heading returns the heading shown above a section, or "" while the
// section has nothing to show yet. A heading appears as soon as the first
// entry of its section has its title typed.
func (r *Resume) Heading(s Section) string {
	switch s {
	case SectionWork:
		if len(r.WorkExperiences) > 0 && r.WorkExperiences[0].Company != "" {
			return "WORK EXPERIENCE"
		}
	case SectionEducation:
		if len(r.Educations) > 0 && r.Educations[0].School != "" {
			return "EDUCATION"
		}
	case SectionProjects:
		if len(r.Projects) > 0 && r.Projects[0].Project != "" {
			return "PROJECT"
		}
	case SectionSkills:
		if len(r.Skills.FeaturedSkills) > 0 || len(r.Skills.Categories) > 0 {
			return "SKILLS"
		}
	case SectionCustom:
		if len(r.Custom.Descriptions) > 0 {
			return "CUSTOM"
		}
	case SectionReferences:
		if len(r.References.References) > 0 {
			return "REFERENCES"
		}
	}
	return ""
}

// Headings returns the heading of every section, keyed by section.
func (r *Resume) Headings() map[Section]string {
	out := make(map[Section]string, len(Sections))
	for _, s := range Sections {
		out[s] = r.Heading(s)
	}
	return out
}
