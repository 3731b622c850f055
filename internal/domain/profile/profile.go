// Package profile holds the portfolio content rendered by the page.
package profile

import (
	"fmt"
	"strings"

	"github.com/okian/statusfolio/internal/domain/palette"
	"github.com/okian/statusfolio/internal/domain/radar"
)

// Profile is everything the single page shows apart from the live log.
type Profile struct {
	Name      string           `json:"name" koanf:"name"`
	Headline  string           `json:"headline" koanf:"headline"`
	Bio       []string         `json:"bio" koanf:"bio"`
	Links     []Link           `json:"links" koanf:"links"`
	Status    Status           `json:"status" koanf:"status"`
	Stack     []Tech           `json:"stack" koanf:"stack"`
	Changelog []Release        `json:"changelog" koanf:"changelog"`
	Layers    []Layer          `json:"layers" koanf:"layers"`
	Skills    []radar.Skill    `json:"skills" koanf:"skills"`
	Projects  []Project        `json:"projects" koanf:"projects"`
	Posts     []Post           `json:"posts" koanf:"posts"`
	Contact   Contact          `json:"contact" koanf:"contact"`
	Commands  []palette.Action `json:"commands" koanf:"commands"`
}

// Link is an outbound profile link (GitHub, LinkedIn, mail).
type Link struct {
	Label string `json:"label" koanf:"label"`
	URL   string `json:"url" koanf:"url"`
}

// Status is the cosmetic "system status" panel.
type Status struct {
	Availability string `json:"availability" koanf:"availability"`
	Region       string `json:"region" koanf:"region"`
	Uptime       string `json:"uptime" koanf:"uptime"`
}

// Tech is one item of the scrolling tech marquee.
type Tech struct {
	Name string `json:"name" koanf:"name"`
	Icon string `json:"icon" koanf:"icon"`
}

// Release is one changelog row.
type Release struct {
	Version     string `json:"version" koanf:"version"`
	Date        string `json:"date" koanf:"date"`
	Title       string `json:"title" koanf:"title"`
	Description string `json:"description" koanf:"description"`
}

// Layer groups skill cards in the dependency graph section.
type Layer struct {
	Title string      `json:"title" koanf:"title"`
	Items []LayerItem `json:"items" koanf:"items"`
}

// LayerItem is one card inside a Layer.
type LayerItem struct {
	Name        string `json:"name" koanf:"name"`
	Icon        string `json:"icon" koanf:"icon"`
	Description string `json:"description" koanf:"description"`
}

// Project is an "architecture review" card.
type Project struct {
	ID         string   `json:"id" koanf:"id"`
	Title      string   `json:"title" koanf:"title"`
	Stack      []string `json:"stack" koanf:"stack"`
	Latency    string   `json:"latency" koanf:"latency"`
	Throughput string   `json:"throughput" koanf:"throughput"`
}

// Post is a technical writing entry.
type Post struct {
	Title    string   `json:"title" koanf:"title"`
	Date     string   `json:"date" koanf:"date"`
	ReadTime string   `json:"read_time" koanf:"read_time"`
	Tags     []string `json:"tags" koanf:"tags"`
	Link     string   `json:"link" koanf:"link"`
}

// Contact describes the "open ticket" form. The form posts straight to an
// external endpoint; nothing is stored here.
type Contact struct {
	Action   string   `json:"action" koanf:"action"`
	Subjects []string `json:"subjects" koanf:"subjects"`
	Email    string   `json:"email" koanf:"email"`
}

// Validate checks the fields the page cannot render without.
func (p *Profile) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: missing name", ErrInvalidProfile)
	case len(p.Skills) == 0:
		return fmt.Errorf("%w: at least one skill is required", ErrInvalidProfile)
	}
	for i, s := range p.Skills {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("%w: skill %d has no name", ErrInvalidProfile, i)
		}
	}
	return nil
}

// Marquee returns the stack twice in a row so the scroll can loop seamlessly.
func (p *Profile) Marquee() []Tech {
	out := make([]Tech, 0, 2*len(p.Stack))
	out = append(out, p.Stack...)
	return append(out, p.Stack...)
}

// fillFrom copies every empty section of p from def.
func (p *Profile) fillFrom(def *Profile) {
	if p.Name == "" {
		p.Name = def.Name
	}
	if p.Headline == "" {
		p.Headline = def.Headline
	}
	if len(p.Bio) == 0 {
		p.Bio = def.Bio
	}
	if len(p.Links) == 0 {
		p.Links = def.Links
	}
	if p.Status == (Status{}) {
		p.Status = def.Status
	}
	if len(p.Stack) == 0 {
		p.Stack = def.Stack
	}
	if len(p.Changelog) == 0 {
		p.Changelog = def.Changelog
	}
	if len(p.Layers) == 0 {
		p.Layers = def.Layers
	}
	if len(p.Skills) == 0 {
		p.Skills = def.Skills
	}
	if len(p.Projects) == 0 {
		p.Projects = def.Projects
	}
	if len(p.Posts) == 0 {
		p.Posts = def.Posts
	}
	if p.Contact.Action == "" && len(p.Contact.Subjects) == 0 && p.Contact.Email == "" {
		p.Contact = def.Contact
	}
	if len(p.Commands) == 0 {
		p.Commands = def.Commands
	}
}
