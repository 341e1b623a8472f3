package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ledongthuc/pdf"

	"careercraft-backend/resume/model"
	"careercraft-backend/resume/render"
)

func main() {
	in := flag.String("in", "", "resume JSON as stored in resumeData (sample resume when empty)")
	outDir := flag.String("out", "./out", "output directory")
	flag.Parse()

	r := sampleResume()
	if *in != "" {
		raw, err := os.ReadFile(*in)
		if err != nil {
			exitErr("read resume: %v", err)
		}
		if r, err = model.Decode(string(raw)); err != nil {
			exitErr("%v", err)
		}
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		exitErr("create output dir: %v", err)
	}
	for _, f := range []render.Format{render.PDF, render.Word} {
		doc, err := render.Render(r, f)
		if err != nil {
			exitErr("render %s: %v", f, err)
		}
		path := filepath.Join(*outDir, doc.FileName)
		if err := os.WriteFile(path, doc.Body, 0o644); err != nil {
			exitErr("write %s: %v", path, err)
		}
		if f == render.PDF {
			if err := checkPDF(doc.Body); err != nil {
				exitErr("pdf check: %v", err)
			}
		}
		fmt.Printf("OK: wrote %s\n", path)
	}
}

// checkPDF parses the rendered file back and makes sure it has pages.
func checkPDF(body []byte) error {
	reader, err := pdf.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return err
	}
	if reader.NumPage() < 1 {
		return fmt.Errorf("rendered pdf has no pages")
	}
	return nil
}

func sampleResume() model.Record {
	r := model.New()
	r.Template = model.Professional
	r.Name = "Jordan Lee"
	r.Email = "jordan.lee@example.com"
	r.Phone = "+1 555 0100"
	r.JobTitle = "Backend Engineer"
	r.Profile = "Engineer focused on reliable services and clear APIs."
	r.Skills = []string{"Go", "PostgreSQL", "Kubernetes"}
	r.Education = []model.Education{{Degree: "BSc Computer Science", Institute: "State University", Year: "2018"}}
	r.Experience = []model.Experience{{
		Role:     "Software Engineer",
		Company:  "Acme Corp",
		Duration: "2019 - present",
		Responsibilities: []string{
			"Built the billing API",
			"Cut p99 latency by 40%",
		},
	}}
	r.Projects = []model.Project{{Title: "Notes", Description: "Self-hosted markdown notes"}}
	return r
}

func exitErr(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
