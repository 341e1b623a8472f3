// Package prompt renders the instruction text sent to the language model.
package prompt

import (
	"embed"
	"regexp"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

var templates = template.Must(template.ParseFS(templateFiles, "templates/*.tmpl"))

// NotProvided stands in for any empty field.
const NotProvided = "N/A"

// HistoryLimit is how many recent interview turns are replayed in a prompt.
const HistoryLimit = 10

var farewellPattern = regexp.MustCompile(`(?i)\b(bye|goodbye|see you|exit|quit|thanks|thank you)\b`)

// Turn is one message of an interview transcript.
type Turn struct {
	Role string // "user" or "ai"
	Text string
}

// CareerGuidance asks for 3-5 career paths with a summary and steps each.
func CareerGuidance(skills, interests, degree string) string {
	return render("career_guidance.tmpl", map[string]any{
		"Skills":    field(skills),
		"Interests": field(interests),
		"Degree":    field(degree),
	})
}

// JobSearch asks for the count best job roles for the given profile.
func JobSearch(skills, degree string, count int) string {
	return render("job_search.tmpl", map[string]any{
		"Skills": field(skills),
		"Degree": field(degree),
		"Count":  count,
	})
}

// IsFarewell reports whether the candidate is ending the interview.
func IsFarewell(message string) bool {
	return farewellPattern.MatchString(message)
}

// Interview builds the next interviewer prompt. When the message is a
// farewell the closing prompt is returned and farewell is true.
func Interview(message string, history []Turn) (text string, farewell bool) {
	if IsFarewell(message) {
		return Farewell(message, history), true
	}
	return render("interview.tmpl", turnData(message, history)), false
}

// Farewell builds the prompt that closes the interview.
func Farewell(message string, history []Turn) string {
	return render("farewell.tmpl", turnData(message, history))
}

func turnData(message string, history []Turn) map[string]any {
	return map[string]any{
		"Message": field(message),
		"History": recent(history),
	}
}

func field(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return NotProvided
	}
	return s
}

type line struct {
	Speaker string
	Text    string
}

func recent(history []Turn) []line {
	if len(history) > HistoryLimit {
		history = history[len(history)-HistoryLimit:]
	}
	out := make([]line, 0, len(history))
	for _, t := range history {
		speaker := "Candidate"
		if t.Role == "ai" {
			speaker = "Interviewer"
		}
		out = append(out, line{Speaker: speaker, Text: strings.TrimSpace(t.Text)})
	}
	return out
}

func render(name string, data any) string {
	var b strings.Builder
	// Templates are embedded and their inputs are plain strings; execution cannot fail.
	if err := templates.ExecuteTemplate(&b, name, data); err != nil {
		panic(err)
	}
	return strings.TrimSpace(b.String())
}
