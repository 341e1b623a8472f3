package model

import (
	"strings"

	"github.com/pkg/errors"
)

// Section names a repeating part of the record.
type Section string

const (
	SectionSkills     Section = "skills"
	SectionEducation  Section = "education"
	SectionExperience Section = "experience"
	SectionProjects   Section = "projects"
)

var (
	ErrUnknownField   = errors.New("unknown field")
	ErrUnknownSection = errors.New("unknown section")
	ErrIndex          = errors.New("index out of range")
	// ErrLastItem is returned when removing the only element of a list.
	ErrLastItem = errors.New("cannot remove the last item")
	ErrPhoto    = errors.New("photo must be an image data URL")
)

// SetField sets a top-level text field by its JSON name.
func (r *Record) SetField(name, value string) error {
	switch name {
	case "name":
		r.Name = value
	case "email":
		r.Email = value
	case "phone":
		r.Phone = value
	case "dob":
		r.DOB = value
	case "address":
		r.Address = value
	case "jobTitle":
		r.JobTitle = value
	case "linkedin":
		r.LinkedIn = value
	case "profile":
		r.Profile = value
	case "links":
		r.Links = value
	case "additionalInfo":
		r.AdditionalInfo = value
	default:
		return errors.Wrap(ErrUnknownField, name)
	}
	return nil
}

// SetItemField sets one field of a list element. Skills are plain strings and
// ignore field.
func (r *Record) SetItemField(section Section, index int, field, value string) error {
	if err := r.checkIndex(section, index); err != nil {
		return err
	}
	switch section {
	case SectionSkills:
		r.Skills[index] = value
		return nil
	case SectionEducation:
		e := &r.Education[index]
		switch field {
		case "degree":
			e.Degree = value
		case "institute":
			e.Institute = value
		case "year":
			e.Year = value
		default:
			return errors.Wrap(ErrUnknownField, "education."+field)
		}
	case SectionExperience:
		e := &r.Experience[index]
		switch field {
		case "role":
			e.Role = value
		case "company":
			e.Company = value
		case "duration":
			e.Duration = value
		default:
			return errors.Wrap(ErrUnknownField, "experience."+field)
		}
	case SectionProjects:
		p := &r.Projects[index]
		switch field {
		case "title":
			p.Title = value
		case "description":
			p.Description = value
		default:
			return errors.Wrap(ErrUnknownField, "projects."+field)
		}
	}
	return nil
}

// AddItem appends a blank element to section.
func (r *Record) AddItem(section Section) error {
	switch section {
	case SectionSkills:
		r.Skills = append(r.Skills, "")
	case SectionEducation:
		r.Education = append(r.Education, Education{})
	case SectionExperience:
		r.Experience = append(r.Experience, newExperience())
	case SectionProjects:
		r.Projects = append(r.Projects, Project{})
	default:
		return errors.Wrap(ErrUnknownSection, string(section))
	}
	return nil
}

// RemoveItem deletes one element. The last remaining element is never removed.
func (r *Record) RemoveItem(section Section, index int) error {
	if err := r.checkIndex(section, index); err != nil {
		return err
	}
	if r.length(section) == 1 {
		return ErrLastItem
	}
	switch section {
	case SectionSkills:
		r.Skills = append(r.Skills[:index], r.Skills[index+1:]...)
	case SectionEducation:
		r.Education = append(r.Education[:index], r.Education[index+1:]...)
	case SectionExperience:
		r.Experience = append(r.Experience[:index], r.Experience[index+1:]...)
	case SectionProjects:
		r.Projects = append(r.Projects[:index], r.Projects[index+1:]...)
	}
	return nil
}

// AddResponsibility appends a blank line to one experience entry.
func (r *Record) AddResponsibility(exp int) error {
	if err := r.checkIndex(SectionExperience, exp); err != nil {
		return err
	}
	r.Experience[exp].Responsibilities = append(r.Experience[exp].Responsibilities, "")
	return nil
}

// SetResponsibility replaces one responsibility line.
func (r *Record) SetResponsibility(exp, line int, value string) error {
	if err := r.checkIndex(SectionExperience, exp); err != nil {
		return err
	}
	lines := r.Experience[exp].Responsibilities
	if line < 0 || line >= len(lines) {
		return ErrIndex
	}
	lines[line] = value
	return nil
}

// RemoveResponsibility deletes one responsibility line, keeping at least one.
func (r *Record) RemoveResponsibility(exp, line int) error {
	if err := r.checkIndex(SectionExperience, exp); err != nil {
		return err
	}
	lines := r.Experience[exp].Responsibilities
	if line < 0 || line >= len(lines) {
		return ErrIndex
	}
	if len(lines) == 1 {
		return ErrLastItem
	}
	r.Experience[exp].Responsibilities = append(lines[:line], lines[line+1:]...)
	return nil
}

// SetPhoto stores an inline image. An empty value clears the photo.
func (r *Record) SetPhoto(dataURL string) error {
	if dataURL != "" && !strings.HasPrefix(dataURL, "data:image/") {
		return ErrPhoto
	}
	r.Photo = dataURL
	return nil
}

func (r *Record) length(section Section) int {
	switch section {
	case SectionSkills:
		return len(r.Skills)
	case SectionEducation:
		return len(r.Education)
	case SectionExperience:
		return len(r.Experience)
	case SectionProjects:
		return len(r.Projects)
	default:
		return -1
	}
}

func (r *Record) checkIndex(section Section, index int) error {
	n := r.length(section)
	if n < 0 {
		return errors.Wrap(ErrUnknownSection, string(section))
	}
	if index < 0 || index >= n {
		return ErrIndex
	}
	return nil
}
