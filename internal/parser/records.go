package parser

// Career is one suggested career path.
type Career struct {
	Name    string   `json:"name"`
	Summary string   `json:"summary"`
	Steps   []string `json:"steps"`
}

// Job is one suggested job role.
type Job struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Why         []string `json:"why"`
}

var (
	careerGrammar = Grammar{Points: stepWords, BulletFallback: true}
	jobGrammar    = Grammar{Points: whyWords}
)

// Careers parses a career-guidance reply.
func Careers(reply string) []Career {
	items := careerGrammar.Parse(reply)
	out := make([]Career, 0, len(items))
	for _, it := range items {
		out = append(out, Career{Name: it.Title, Summary: it.Body, Steps: it.Points})
	}
	return out
}

// Jobs parses a job-search reply.
func Jobs(reply string) []Job {
	items := jobGrammar.Parse(reply)
	out := make([]Job, 0, len(items))
	for _, it := range items {
		out = append(out, Job{Title: it.Title, Description: it.Body, Why: it.Points})
	}
	return out
}
