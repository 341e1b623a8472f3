package render

import (
	"bytes"
	"encoding/base64"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"careercraft-backend/resume/model"
)

const (
	pageMargin = 15.0
	lineHeight = 5.5
	photoSize  = 28.0
)

// RenderPDF lays the resume out on A4 pages.
func RenderPDF(r model.Record) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle(strings.TrimSpace(r.Name)+" - Resume", true)
	pdf.AddPage()

	w := &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	w.header(r)
	w.section("Details", len(details(r)) > 0, func() {
		for _, d := range details(r) {
			w.text("body", d)
		}
	})
	w.section("Profile", filled(r.Profile), func() { w.text("body", r.Profile) })
	w.section("Skills", len(nonBlank(r.Skills)) > 0, func() {
		for _, s := range nonBlank(r.Skills) {
			w.bullet(s)
		}
	})
	w.section("Experience", hasExperience(r), func() {
		for _, e := range r.Experience {
			if !filled(e.Role + e.Company) {
				continue
			}
			w.text("roleLine", joinNonBlank(" - ", e.Role, e.Company))
			w.text("meta", e.Duration)
			for _, line := range nonBlank(e.Responsibilities) {
				w.bullet(line)
			}
			pdf.Ln(2)
		}
	})
	w.section("Education", hasEducation(r), func() {
		for _, e := range r.Education {
			if !filled(e.Degree + e.Institute) {
				continue
			}
			w.text("roleLine", e.Degree)
			w.text("meta", joinNonBlank(", ", e.Institute, e.Year))
		}
	})
	w.section("Projects", hasProjects(r), func() {
		for _, p := range r.Projects {
			if !filled(p.Title) {
				continue
			}
			w.text("roleLine", p.Title)
			w.text("body", p.Description)
		}
	})
	w.section("Additional Information", filled(r.AdditionalInfo), func() { w.text("body", r.AdditionalInfo) })

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "write pdf")
	}
	return buf.Bytes(), nil
}

type pdfWriter struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (w *pdfWriter) use(style string) {
	s := styles[style]
	w.pdf.SetFont("Helvetica", s.fontStyle(), s.Size)
	w.pdf.SetTextColor(s.Color[0], s.Color[1], s.Color[2])
}

func (w *pdfWriter) header(r model.Record) {
	if w.photo(r.Photo) {
		w.pdf.SetY(pageMargin + photoSize + 4)
	}
	w.use("name")
	w.pdf.CellFormat(0, 10, w.tr(strings.ToUpper(strings.TrimSpace(r.Name))), "", 1, "C", false, 0, "")
	if title := strings.TrimSpace(r.JobTitle); title != "" {
		w.use("jobTitle")
		w.pdf.CellFormat(0, 7, w.tr(strings.ToUpper(title)), "", 1, "C", false, 0, "")
	}
	w.pdf.Ln(3)
}

// photo draws the inline image centred above the name. Unsupported or
// undecodable images are skipped.
func (w *pdfWriter) photo(dataURL string) bool {
	imageType, data, ok := decodeDataURL(dataURL)
	if !ok {
		return false
	}
	opts := fpdf.ImageOptions{ImageType: imageType, ReadDpi: false}
	w.pdf.RegisterImageOptionsReader("photo", opts, bytes.NewReader(data))
	if w.pdf.Err() {
		w.pdf.ClearError()
		return false
	}
	pageW, _ := w.pdf.GetPageSize()
	w.pdf.ImageOptions("photo", (pageW-photoSize)/2, pageMargin, photoSize, photoSize, false, opts, 0, "")
	return true
}

// section writes a heading and its body; sections with no content are skipped.
func (w *pdfWriter) section(title string, hasContent bool, body func()) {
	if !hasContent {
		return
	}
	w.use("sectionHeading")
	w.pdf.CellFormat(0, 7, w.tr(strings.ToUpper(title)), "B", 1, "L", false, 0, "")
	w.pdf.Ln(1)
	body()
	w.pdf.Ln(3)
}

func (w *pdfWriter) text(style, s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	w.use(style)
	w.pdf.MultiCell(0, lineHeight, w.tr(s), "", "L", false)
}

func (w *pdfWriter) bullet(s string) {
	w.use("body")
	w.pdf.CellFormat(5, lineHeight, w.tr("•"), "", 0, "L", false, 0, "")
	w.pdf.MultiCell(0, lineHeight, w.tr(strings.TrimSpace(s)), "", "L", false)
}

func decodeDataURL(dataURL string) (string, []byte, bool) {
	meta, payload, found := strings.Cut(dataURL, ",")
	if !found || !strings.HasSuffix(meta, ";base64") {
		return "", nil, false
	}
	var imageType string
	switch {
	case strings.HasPrefix(meta, "data:image/png"):
		imageType = "PNG"
	case strings.HasPrefix(meta, "data:image/jpeg"), strings.HasPrefix(meta, "data:image/jpg"):
		imageType = "JPG"
	case strings.HasPrefix(meta, "data:image/gif"):
		imageType = "GIF"
	default:
		return "", nil, false
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return "", nil, false
	}
	return imageType, data, true
}

func joinNonBlank(sep string, parts ...string) string {
	return strings.Join(nonBlank(parts), sep)
}
