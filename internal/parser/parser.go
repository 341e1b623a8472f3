// Package parser turns free-form numbered-list replies into records.
//
// A reply is an optional preamble followed by items. Each item starts with a
// "N." marker at the beginning of the reply or of a line; its first line is
// the title and the remaining lines form the body. Parsing never fails: text
// without any marker yields no records.
package parser

import (
	"regexp"
	"strings"
)

var (
	itemSplit   = regexp.MustCompile(`\n\s*\d+\.\s*`)
	leadMarker  = regexp.MustCompile(`^\s*\d+\.\s*`)
	anyMarker   = regexp.MustCompile(`(?m)^\s*\d+\.`)
	bulletLine  = regexp.MustCompile(`^(?:\d+\.|[-*•])\s?`)
	stepWords   = regexp.MustCompile(`(?i)step|start|begin|how to|action`)
	whyWords    = regexp.MustCompile(`(?i)why`)
	emphasisSet = "*#_ \t"
)

// Item is one numbered entry before use-case mapping.
type Item struct {
	Title  string
	Body   string
	Points []string
}

// Grammar describes how item bodies are split for one use case.
type Grammar struct {
	// Points selects body lines that become list points.
	Points *regexp.Regexp
	// BulletFallback turns bulleted body lines into points when Points matched nothing.
	BulletFallback bool
}

// Parse splits reply into items.
func (g Grammar) Parse(reply string) []Item {
	reply = strings.ReplaceAll(reply, "\r\n", "\n")
	if !anyMarker.MatchString(reply) {
		return []Item{}
	}

	segments := itemSplit.Split(reply, -1)
	if loc := leadMarker.FindStringIndex(segments[0]); loc != nil {
		segments[0] = segments[0][loc[1]:]
	} else {
		segments = segments[1:]
	}

	items := make([]Item, 0, len(segments))
	for _, seg := range segments {
		if strings.TrimSpace(seg) == "" {
			continue
		}
		items = append(items, g.item(seg))
	}
	return items
}

func (g Grammar) item(seg string) Item {
	lines := strings.Split(seg, "\n")
	it := Item{Title: cleanTitle(lines[0]), Points: []string{}}

	var body []string
	for _, raw := range lines[1:] {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if g.Points != nil && g.Points.MatchString(line) {
			it.Points = append(it.Points, stripBullet(line))
			continue
		}
		body = append(body, line)
	}

	if g.BulletFallback && len(it.Points) == 0 {
		kept := body[:0]
		for _, line := range body {
			if bulletLine.MatchString(line) {
				if point := stripBullet(line); point != "" {
					it.Points = append(it.Points, point)
				}
				continue
			}
			kept = append(kept, line)
		}
		body = kept
	}

	it.Body = strings.Join(body, " ")
	return it
}

func cleanTitle(s string) string {
	s = strings.TrimSpace(s)
	s = bulletLine.ReplaceAllString(s, "")
	return strings.Trim(s, emphasisSet)
}

func stripBullet(s string) string {
	return strings.TrimSpace(bulletLine.ReplaceAllString(strings.TrimSpace(s), ""))
}
