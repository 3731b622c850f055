// Package palette holds the command-palette actions and their query filter.
// The overlay and its keyboard toggle live in the page script.
package palette

import "strings"

// Action is one navigable palette entry.
type Action struct {
	ID    string `json:"id" koanf:"id"`
	Label string `json:"label" koanf:"label"`
	Href  string `json:"href" koanf:"href"`
}

// DefaultActions returns the section shortcuts of the portfolio page.
func DefaultActions() []Action {
	return []Action{
		{ID: "system", Label: "System Overview", Href: "#system"},
		{ID: "logs", Label: "Changelog", Href: "#logs"},
		{ID: "rfc", Label: "Architecture Reviews", Href: "#rfc"},
		{ID: "writing", Label: "Technical Writing", Href: "#writing"},
		{ID: "connect", Label: "Open Ticket", Href: "#connect"},
	}
}

// Filter keeps the actions whose label contains query, ignoring case.
// An empty query keeps everything. Order is preserved.
func Filter(actions []Action, query string) []Action {
	q := strings.ToLower(query)
	out := make([]Action, 0, len(actions))
	for _, a := range actions {
		if strings.Contains(strings.ToLower(a.Label), q) {
			out = append(out, a)
		}
	}
	return out
}
