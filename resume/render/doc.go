package render

import (
	"bytes"
	"embed"
	"html/template"
	"strings"

	"github.com/pkg/errors"

	"careercraft-backend/resume/model"
)

//go:embed templates/resume.doc.html
var docFiles embed.FS

var docTemplate = template.Must(template.New("resume.doc.html").
	Funcs(template.FuncMap{"upper": strings.ToUpper}).
	ParseFS(docFiles, "templates/resume.doc.html"))

type docExperience struct {
	Heading          string
	Duration         string
	Responsibilities []string
}

type docEducation struct {
	Degree string
	Meta   string
}

type docView struct {
	Name           string
	JobTitle       string
	Photo          template.URL
	Details        []string
	Profile        string
	Skills         []string
	Experience     []docExperience
	Education      []docEducation
	Projects       []model.Project
	AdditionalInfo string
}

// RenderDoc writes an HTML document that Word opens as a .doc file.
func RenderDoc(r model.Record) ([]byte, error) {
	view := docView{
		Name:           strings.TrimSpace(r.Name),
		JobTitle:       strings.TrimSpace(r.JobTitle),
		Details:        details(r),
		Profile:        strings.TrimSpace(r.Profile),
		Skills:         nonBlank(r.Skills),
		AdditionalInfo: strings.TrimSpace(r.AdditionalInfo),
	}
	if _, _, ok := decodeDataURL(r.Photo); ok {
		// Only well-formed base64 image URLs reach here.
		view.Photo = template.URL(r.Photo)
	}
	for _, e := range r.Experience {
		if !filled(e.Role + e.Company) {
			continue
		}
		view.Experience = append(view.Experience, docExperience{
			Heading:          joinNonBlank(" - ", e.Role, e.Company),
			Duration:         strings.TrimSpace(e.Duration),
			Responsibilities: nonBlank(e.Responsibilities),
		})
	}
	for _, e := range r.Education {
		if !filled(e.Degree + e.Institute) {
			continue
		}
		view.Education = append(view.Education, docEducation{Degree: e.Degree, Meta: joinNonBlank(", ", e.Institute, e.Year)})
	}
	for _, p := range r.Projects {
		if filled(p.Title) {
			view.Projects = append(view.Projects, p)
		}
	}

	var buf bytes.Buffer
	if err := docTemplate.Execute(&buf, view); err != nil {
		return nil, errors.Wrap(err, "render doc")
	}
	return buf.Bytes(), nil
}
