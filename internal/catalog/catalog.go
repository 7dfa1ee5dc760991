// Package catalog holds the static portfolio content (profile, projects,
// experience, achievements, Web3 work, tech stack) and the pure filters
// applied to it.
//
// A Catalog is loaded once at startup and never modified afterwards; every
// filter returns a new slice.
package catalog

import "github.com/contributorsambhav/portfolio/internal/errors"

// Category classifies a project.
type Category string

const (
	CategoryWeb        Category = "web"
	CategoryWeb3       Category = "web3"
	CategoryAI         Category = "ai"
	CategoryFullstack  Category = "fullstack"
	CategoryBlockchain Category = "blockchain"
)

// Categories lists every project category.
var Categories = []Category{CategoryWeb, CategoryWeb3, CategoryAI, CategoryFullstack, CategoryBlockchain}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Metric is a labelled headline number shown on a project card.
type Metric struct {
	Label string `json:"label" yaml:"label" validate:"required"`
	Value string `json:"value" yaml:"value" validate:"required"`
}

// Project is one showcase entry.
type Project struct {
	ID              string   `json:"id" yaml:"id" validate:"required"`
	Title           string   `json:"title" yaml:"title" validate:"required"`
	Tagline         string   `json:"tagline" yaml:"tagline"`
	Description     string   `json:"description" yaml:"description"`
	LongDescription string   `json:"long_description" yaml:"long_description"`
	Technologies    []string `json:"technologies" yaml:"technologies"`
	Category        Category `json:"category" yaml:"category" validate:"required,oneof=web web3 ai fullstack blockchain"`
	Featured        bool     `json:"featured" yaml:"featured"`
	GitHub          string   `json:"github,omitempty" yaml:"github" validate:"omitempty,url"`
	Live            string   `json:"live,omitempty" yaml:"live" validate:"omitempty,url"`
	Video           string   `json:"video,omitempty" yaml:"video" validate:"omitempty,url"`
	Image           string   `json:"image,omitempty" yaml:"image"`
	Highlights      []string `json:"highlights" yaml:"highlights"`
	Metrics         []Metric `json:"metrics,omitempty" yaml:"metrics" validate:"dive"`
}

// SocialLink is a profile contact link.
type SocialLink struct {
	Name string `json:"name" yaml:"name" validate:"required"`
	URL  string `json:"url" yaml:"url" validate:"required"`
	Icon string `json:"icon" yaml:"icon"`
}

// Profile describes the site owner.
type Profile struct {
	Name     string       `json:"name" yaml:"name" validate:"required"`
	Title    string       `json:"title" yaml:"title"`
	Bio      string       `json:"bio" yaml:"bio"`
	Location string       `json:"location" yaml:"location"`
	Email    string       `json:"email" yaml:"email" validate:"omitempty,email"`
	Avatar   string       `json:"avatar" yaml:"avatar"`
	Social   []SocialLink `json:"social" yaml:"social" validate:"dive"`
}

// Link is a labelled URL.
type Link struct {
	Label string `json:"label" yaml:"label" validate:"required"`
	URL   string `json:"url" yaml:"url" validate:"required,url"`
}

// Experience is one work history entry.
type Experience struct {
	ID           string   `json:"id" yaml:"id" validate:"required"`
	Company      string   `json:"company" yaml:"company" validate:"required"`
	Role         string   `json:"role" yaml:"role" validate:"required"`
	Location     string   `json:"location" yaml:"location"`
	Duration     string   `json:"duration" yaml:"duration"`
	StartDate    string   `json:"start_date" yaml:"start_date"`
	EndDate      string   `json:"end_date" yaml:"end_date"`
	Current      bool     `json:"current" yaml:"current"`
	Description  []string `json:"description" yaml:"description"`
	Achievements []string `json:"achievements" yaml:"achievements"`
	Technologies []string `json:"technologies" yaml:"technologies"`
	CompanyURL   string   `json:"company_url,omitempty" yaml:"company_url"`
	ProjectLinks []Link   `json:"project_links,omitempty" yaml:"project_links" validate:"dive"`
}

// Achievement is an award, hackathon result or certification.
type Achievement struct {
	ID           string `json:"id" yaml:"id" validate:"required"`
	Title        string `json:"title" yaml:"title" validate:"required"`
	Description  string `json:"description" yaml:"description"`
	Date         string `json:"date" yaml:"date"`
	Category     string `json:"category" yaml:"category" validate:"required,oneof=hackathon competition certification award"`
	Organization string `json:"organization,omitempty" yaml:"organization"`
	Proof        string `json:"proof,omitempty" yaml:"proof"`
	Icon         string `json:"icon,omitempty" yaml:"icon"`
}

// Technology is one tech-stack entry.
type Technology struct {
	Name string `json:"name" yaml:"name" validate:"required"`
	Logo string `json:"logo,omitempty" yaml:"logo"`
}

// TechCategory groups tech-stack entries under a heading.
type TechCategory struct {
	Category     string       `json:"category" yaml:"category" validate:"required"`
	Technologies []Technology `json:"technologies" yaml:"technologies" validate:"dive"`
}

// Catalog is the full static content of the site.
type Catalog struct {
	Profile      Profile        `json:"profile" yaml:"profile"`
	Projects     []Project      `json:"projects" yaml:"projects" validate:"dive"`
	Experience   []Experience   `json:"experience" yaml:"experience" validate:"dive"`
	Achievements []Achievement  `json:"achievements" yaml:"achievements" validate:"dive"`
	Web3         []Web3Project  `json:"web3" yaml:"web3" validate:"dive"`
	TechStack    []TechCategory `json:"tech_stack" yaml:"tech_stack" validate:"dive"`
}

// Project returns the project with the given id.
func (c *Catalog) Project(id string) (*Project, error) {
	for i := range c.Projects {
		if c.Projects[i].ID == id {
			p := c.Projects[i]
			return &p, nil
		}
	}
	return nil, errors.NewNotFound("project", id)
}

// TechNames returns every tech-stack entry name in display order.
func (c *Catalog) TechNames() []string {
	var names []string
	for _, cat := range c.TechStack {
		for _, t := range cat.Technologies {
			names = append(names, t.Name)
		}
	}
	return names
}
