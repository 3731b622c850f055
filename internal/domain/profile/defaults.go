package profile

import (
	"github.com/okian/statusfolio/internal/domain/palette"
	"github.com/okian/statusfolio/internal/domain/radar"
)

// Default returns the built-in portfolio content.
func Default() *Profile {
	return &Profile{
		Name:     "SEMMOZHIYAN",
		Headline: "JAVA_DEVELOPER :: DEVOPS_ENGINEER",
		Bio: []string{
			"Aspiring DevOps Engineer & Java Developer.",
			"Stack: Java, Python, AWS, Jenkins, Kubernetes, Linux, Docker.",
			"Focused on automation and scalable infrastructure.",
		},
		Links: []Link{
			{Label: "GitHub", URL: "https://github.com/Semmozhidouble"},
			{Label: "LinkedIn", URL: "https://www.linkedin.com/in/semmozhiyan-n-s-aa7478296/"},
			{Label: "Email", URL: "mailto:semmozhiyan40@gmail.com"},
		},
		Status: Status{Availability: "active", Region: "US-EAST-1", Uptime: "5 YEARS"},
		Stack: []Tech{
			{Name: "React", Icon: "layout"},
			{Name: "Node.js", Icon: "server"},
			{Name: "Python", Icon: "terminal"},
			{Name: "PostgreSQL", Icon: "database"},
			{Name: "AWS", Icon: "activity"},
			{Name: "Docker", Icon: "box"},
			{Name: "TypeScript", Icon: "code"},
			{Name: "Git", Icon: "git-commit"},
			{Name: "System Design", Icon: "layers"},
			{Name: "DevOps", Icon: "cpu"},
		},
		Changelog: []Release{
			{Version: "v3.0.0", Date: "2024", Title: "Senior Engineer", Description: "Leading frontend infrastructure and design systems."},
			{Version: "v2.1.0", Date: "2023", Title: "Full Stack Dev", Description: "Scaled microservices to handle 10k+ concurrent users."},
			{Version: "v1.0.0", Date: "2021", Title: "Initial Commit", Description: "Started journey in systems programming and web dev."},
		},
		Layers: []Layer{
			{Title: "Layer 1: Infrastructure", Items: []LayerItem{
				{Name: "Docker", Icon: "server", Description: "Containerization for consistent dev/prod parity."},
				{Name: "AWS", Icon: "activity", Description: "EC2, S3, and Lambda for scalable cloud architecture."},
			}},
			{Title: "Layer 2: Application", Items: []LayerItem{
				{Name: "React", Icon: "layout", Description: "Component-driven UI architecture with strict typing."},
				{Name: "Python", Icon: "terminal", Description: "Data processing pipelines and ML integration."},
				{Name: "PostgreSQL", Icon: "database", Description: "Relational data modeling and complex queries."},
			}},
		},
		Skills: []radar.Skill{
			{Name: "Java", Level: 90},
			{Name: "Docker", Level: 85},
			{Name: "Linux", Level: 80},
			{Name: "AWS", Level: 75},
			{Name: "Python", Level: 70},
			{Name: "Kubernetes", Level: 65},
		},
		Projects: []Project{
			{ID: "RFC-001", Title: "Hospital Management System", Stack: []string{"Python", "Tkinter", "SQLite"}, Latency: "-40%", Throughput: "1k ops/s"},
			{ID: "RFC-002", Title: "AirPreQ Prediction Engine", Stack: []string{"Python", "Flask", "ML"}, Latency: "-150ms", Throughput: "Real-time"},
		},
		Posts: []Post{
			{Title: "Understanding React Server Components", Date: "2024-03-10", ReadTime: "5 min", Tags: []string{"React", "Architecture"}, Link: "#"},
			{Title: "System Design: Scaling WebSockets", Date: "2024-02-15", ReadTime: "8 min", Tags: []string{"System Design", "Node.js"}, Link: "#"},
			{Title: "Effective Monorepo Strategies", Date: "2024-01-20", ReadTime: "6 min", Tags: []string{"DevOps", "Tooling"}, Link: "#"},
		},
		Contact: Contact{
			Action:   "https://formspree.io/f/mwpbjoad",
			Subjects: []string{"Collaboration", "Hiring", "Query"},
			Email:    "semmozhiyan40@gmail.com",
		},
		Commands: palette.DefaultActions(),
	}
}
