package model

import (
	"fmt"
	"strings"
)

// ValidationError lists the required fields that are blank.
type ValidationError struct {
	Template Template
	Missing  []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s resume is missing required fields: %s", e.Template, strings.Join(e.Missing, ", "))
}

// Validator checks a record against one template's required fields.
type Validator interface {
	Template() Template
	Validate(r Record) error
}

// ValidatorFor returns the validator for t. Unknown templates get the stricter
// professional profile.
func ValidatorFor(t Template) Validator {
	if t == Personal {
		return personalValidator{}
	}
	return professionalValidator{}
}

type professionalValidator struct{}

func (professionalValidator) Template() Template { return Professional }

// Validate requires every field except additionalInfo, photo and responsibilities.
func (professionalValidator) Validate(r Record) error {
	var m missing
	m.need("name", r.Name)
	m.need("email", r.Email)
	m.need("phone", r.Phone)
	m.need("dob", r.DOB)
	m.need("address", r.Address)
	m.need("jobTitle", r.JobTitle)
	m.need("linkedin", r.LinkedIn)
	m.need("profile", r.Profile)
	if len(r.Skills) == 0 {
		m.add("skills")
	}
	for i, s := range r.Skills {
		m.need(fmt.Sprintf("skills[%d]", i), s)
	}
	for i, e := range r.Education {
		m.need(fmt.Sprintf("education[%d].degree", i), e.Degree)
		m.need(fmt.Sprintf("education[%d].institute", i), e.Institute)
		m.need(fmt.Sprintf("education[%d].year", i), e.Year)
	}
	for i, e := range r.Experience {
		m.need(fmt.Sprintf("experience[%d].role", i), e.Role)
		m.need(fmt.Sprintf("experience[%d].company", i), e.Company)
		m.need(fmt.Sprintf("experience[%d].duration", i), e.Duration)
	}
	for i, p := range r.Projects {
		m.need(fmt.Sprintf("projects[%d].title", i), p.Title)
		m.need(fmt.Sprintf("projects[%d].description", i), p.Description)
	}
	m.need("links", r.Links)
	return m.err(Professional)
}

type personalValidator struct{}

func (personalValidator) Template() Template { return Personal }

// Validate requires contact details, one education entry with degree and
// institute, and one titled project. Experience is optional.
func (personalValidator) Validate(r Record) error {
	var m missing
	m.need("name", r.Name)
	m.need("email", r.Email)
	m.need("phone", r.Phone)

	hasEducation := false
	for _, e := range r.Education {
		if filled(e.Degree) && filled(e.Institute) {
			hasEducation = true
			break
		}
	}
	if !hasEducation {
		m.add("education")
	}

	hasProject := false
	for _, p := range r.Projects {
		if filled(p.Title) {
			hasProject = true
			break
		}
	}
	if !hasProject {
		m.add("projects")
	}
	return m.err(Personal)
}

type missing []string

func (m *missing) add(path string) { *m = append(*m, path) }

func (m *missing) need(path, value string) {
	if !filled(value) {
		m.add(path)
	}
}

func (m missing) err(t Template) error {
	if len(m) == 0 {
		return nil
	}
	return &ValidationError{Template: t, Missing: m}
}

func filled(s string) bool {
	return strings.TrimSpace(s) != ""
}
