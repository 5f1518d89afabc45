// Package resume gives animation snapshots of a resume a typed view.
//
// Snapshots are generic records. [FromRecord] decodes one into a [Resume]
// with mapstructure, tolerating the partial values a snapshot holds while it
// is being typed: missing sections stay empty and ratings may still be blank
// text.
package resume

import (
	"bytes"
	_ "embed"

	"github.com/mitchellh/mapstructure"

	apperr "github.com/matzehuels/autotype/pkg/errors"
	"github.com/matzehuels/autotype/pkg/io"
	"github.com/matzehuels/autotype/pkg/record"
)

// Resume is a complete resume document.
type Resume struct {
	Profile         Profile          `json:"profile" mapstructure:"profile"`
	WorkExperiences []WorkExperience `json:"workExperiences" mapstructure:"workExperiences"`
	Educations      []Education      `json:"educations" mapstructure:"educations"`
	Projects        []Project        `json:"projects" mapstructure:"projects"`
	Skills          Skills           `json:"skills" mapstructure:"skills"`
	Custom          Custom           `json:"custom" mapstructure:"custom"`
	References      References       `json:"references" mapstructure:"references"`
}

// Profile is the header of a resume.
type Profile struct {
	Name     string `json:"name" mapstructure:"name"`
	Email    string `json:"email" mapstructure:"email"`
	Phone    string `json:"phone" mapstructure:"phone"`
	URL      string `json:"url" mapstructure:"url"`
	Summary  string `json:"summary" mapstructure:"summary"`
	Location string `json:"location" mapstructure:"location"`
}

type WorkExperience struct {
	Company      string   `json:"company" mapstructure:"company"`
	JobTitle     string   `json:"jobTitle" mapstructure:"jobTitle"`
	Date         string   `json:"date" mapstructure:"date"`
	Descriptions []string `json:"descriptions" mapstructure:"descriptions"`
}

type Education struct {
	School       string   `json:"school" mapstructure:"school"`
	Degree       string   `json:"degree" mapstructure:"degree"`
	Date         string   `json:"date" mapstructure:"date"`
	GPA          string   `json:"gpa" mapstructure:"gpa"`
	Descriptions []string `json:"descriptions" mapstructure:"descriptions"`
}

type Project struct {
	Project      string   `json:"project" mapstructure:"project"`
	Date         string   `json:"date" mapstructure:"date"`
	Descriptions []string `json:"descriptions" mapstructure:"descriptions"`
}

// FeaturedSkill is a skill with a rating from 1 to 5. The rating is stored
// as text in records and decoded to a number here.
type FeaturedSkill struct {
	Skill  string `json:"skill" mapstructure:"skill"`
	Rating int    `json:"rating" mapstructure:"rating"`
}

type SkillCategory struct {
	Name   string   `json:"name" mapstructure:"name"`
	Skills []string `json:"skills" mapstructure:"skills"`
}

type Skills struct {
	FeaturedSkills []FeaturedSkill `json:"featuredSkills" mapstructure:"featuredSkills"`
	Categories     []SkillCategory `json:"categories" mapstructure:"categories"`
}

type Custom struct {
	Descriptions []string `json:"descriptions" mapstructure:"descriptions"`
}

type Reference struct {
	Name    string `json:"name" mapstructure:"name"`
	Title   string `json:"title" mapstructure:"title"`
	Company string `json:"company" mapstructure:"company"`
	Email   string `json:"email" mapstructure:"email"`
	Phone   string `json:"phone" mapstructure:"phone"`
}

type References struct {
	References []Reference `json:"references" mapstructure:"references"`
}

// FromRecord decodes a record into a Resume. Unknown keys are ignored.
func FromRecord(r *record.Record) (*Resume, error) {
	var out Resume
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "create decoder")
	}
	if err := dec.Decode(r.Map()); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "decode resume")
	}
	return &out, nil
}

//go:embed demo.yaml
var demoYAML []byte

// Demo returns the built-in demo pair.
func Demo() (*io.Pair, error) {
	return io.ReadPair(bytes.NewReader(demoYAML))
}

// DemoSource returns the raw demo pair file.
func DemoSource() []byte {
	return bytes.Clone(demoYAML)
}
