// Package model holds the resume record edited by the resume builder.
package model

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Template selects the validation profile and preview layout.
type Template string

const (
	Professional Template = "professional"
	Personal     Template = "personal"
)

// ErrUnknownTemplate is returned for template names other than professional or personal.
var ErrUnknownTemplate = errors.New("unknown resume template")

// ParseTemplate accepts the template names used in builder links.
func ParseTemplate(raw string) (Template, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "professional", "pro":
		return Professional, nil
	case "personal":
		return Personal, nil
	default:
		return "", errors.Wrapf(ErrUnknownTemplate, "%q", raw)
	}
}

// Education is one education entry.
type Education struct {
	Degree    string `json:"degree"`
	Institute string `json:"institute"`
	Year      string `json:"year"`
}

// Experience is one job held.
type Experience struct {
	Role             string   `json:"role"`
	Company          string   `json:"company"`
	Duration         string   `json:"duration"`
	Responsibilities []string `json:"responsibilities"`
}

// Project is one portfolio project.
type Project struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Record is the full resume. Photo is an inline base64 data URL.
type Record struct {
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
	DOB            string       `json:"dob"`
	Address        string       `json:"address"`
	JobTitle       string       `json:"jobTitle"`
	LinkedIn       string       `json:"linkedin"`
	Profile        string       `json:"profile"`
	Skills         []string     `json:"skills"`
	Education      []Education  `json:"education"`
	Experience     []Experience `json:"experience"`
	Projects       []Project    `json:"projects"`
	Links          string       `json:"links"`
	AdditionalInfo string       `json:"additionalInfo"`
	Photo          string       `json:"photo,omitempty"`
	Template       Template     `json:"template,omitempty"`
}

// New returns an empty record with one blank element per repeating section.
func New() Record {
	var r Record
	r.fillDefaults()
	return r
}

func newExperience() Experience {
	return Experience{Responsibilities: []string{""}}
}

// fillDefaults restores the one-element minimum for every list.
func (r *Record) fillDefaults() {
	if len(r.Skills) == 0 {
		r.Skills = []string{""}
	}
	if len(r.Education) == 0 {
		r.Education = []Education{{}}
	}
	if len(r.Experience) == 0 {
		r.Experience = []Experience{newExperience()}
	}
	for i := range r.Experience {
		if len(r.Experience[i].Responsibilities) == 0 {
			r.Experience[i].Responsibilities = []string{""}
		}
	}
	if len(r.Projects) == 0 {
		r.Projects = []Project{{}}
	}
}

// Clone returns a deep copy.
func (r Record) Clone() Record {
	out := r
	out.Skills = append([]string(nil), r.Skills...)
	out.Education = append([]Education(nil), r.Education...)
	out.Projects = append([]Project(nil), r.Projects...)
	out.Experience = make([]Experience, len(r.Experience))
	for i, exp := range r.Experience {
		exp.Responsibilities = append([]string(nil), exp.Responsibilities...)
		out.Experience[i] = exp
	}
	return out
}

// Encode serialises the record for a storage slot.
func (r Record) Encode() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", errors.Wrap(err, "encode resume")
	}
	return string(data), nil
}

// Decode parses a stored record. Missing lists are filled with their defaults
// so a decoded draft can be edited like a fresh one.
func Decode(raw string) (Record, error) {
	var r Record
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return Record{}, errors.Wrap(err, "decode resume")
	}
	r.fillDefaults()
	return r, nil
}

// DecodeSubmitted parses a submitted record exactly as it was stored.
func DecodeSubmitted(raw string) (Record, error) {
	var r Record
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return Record{}, errors.Wrap(err, "decode resume")
	}
	return r, nil
}
