// Package render exports a submitted resume as PDF or Word documents.
package render

import (
	"strings"

	"github.com/pkg/errors"

	"careercraft-backend/internal/shared/util"
	"careercraft-backend/resume/model"
)

// Format is an export file type.
type Format string

const (
	PDF  Format = "pdf"
	Word Format = "doc"
)

// ErrUnsupportedFormat is returned for formats other than pdf and doc.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Document is a rendered file ready to be downloaded.
type Document struct {
	FileName    string
	ContentType string
	Body        []byte
}

// ParseFormat accepts "pdf", "doc" and "word".
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pdf":
		return PDF, nil
	case "doc", "word":
		return Word, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedFormat, "%q", raw)
	}
}

// Render produces the export of r in format f.
func Render(r model.Record, f Format) (Document, error) {
	switch f {
	case PDF:
		body, err := RenderPDF(r)
		if err != nil {
			return Document{}, err
		}
		return Document{FileName: FileName(r.Name, f), ContentType: "application/pdf", Body: body}, nil
	case Word:
		body, err := RenderDoc(r)
		if err != nil {
			return Document{}, err
		}
		return Document{FileName: FileName(r.Name, f), ContentType: "application/msword", Body: body}, nil
	default:
		return Document{}, errors.Wrapf(ErrUnsupportedFormat, "%q", f)
	}
}

// FileName builds "<Name_With_Underscores>_resume.<ext>".
func FileName(name string, f Format) string {
	return util.Underscored(strings.TrimSpace(name)) + "_resume." + string(f)
}

// nonBlank drops entries that are empty after trimming.
func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if filled(s) {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

// details is the contact block shown beside the main column.
func details(r model.Record) []string {
	return nonBlank([]string{r.Address, r.Phone, r.Email, r.DOB, r.LinkedIn, r.Links})
}

func filled(s string) bool {
	return strings.TrimSpace(s) != ""
}

func hasExperience(r model.Record) bool {
	for _, e := range r.Experience {
		if filled(e.Role + e.Company) {
			return true
		}
	}
	return false
}

func hasEducation(r model.Record) bool {
	for _, e := range r.Education {
		if filled(e.Degree + e.Institute) {
			return true
		}
	}
	return false
}

func hasProjects(r model.Record) bool {
	for _, p := range r.Projects {
		if filled(p.Title) {
			return true
		}
	}
	return false
}
