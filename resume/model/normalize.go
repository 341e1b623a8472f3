package model

// Normalize prepares a validated record for the submitted slot: the template
// tag is set, blank responsibility lines are dropped and, for the personal
// template, list entries with no content are removed.
func Normalize(r Record, t Template) Record {
	out := r.Clone()
	out.Template = t

	for i := range out.Experience {
		lines := out.Experience[i].Responsibilities[:0]
		for _, line := range out.Experience[i].Responsibilities {
			if filled(line) {
				lines = append(lines, line)
			}
		}
		out.Experience[i].Responsibilities = lines
	}

	if t != Personal {
		return out
	}

	skills := out.Skills[:0]
	for _, s := range out.Skills {
		if filled(s) {
			skills = append(skills, s)
		}
	}
	out.Skills = skills

	education := out.Education[:0]
	for _, e := range out.Education {
		if filled(e.Degree) || filled(e.Institute) || filled(e.Year) {
			education = append(education, e)
		}
	}
	out.Education = education

	experience := out.Experience[:0]
	for _, e := range out.Experience {
		if filled(e.Role) || filled(e.Company) || filled(e.Duration) || len(e.Responsibilities) > 0 {
			experience = append(experience, e)
		}
	}
	out.Experience = experience

	projects := out.Projects[:0]
	for _, p := range out.Projects {
		if filled(p.Title) || filled(p.Description) {
			projects = append(projects, p)
		}
	}
	out.Projects = projects
	return out
}
