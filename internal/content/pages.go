// Package content holds the informational pages of the site: pricing,
// the enrichment roadmap and agency policies.
package content

import (
	"fmt"
	"sort"

	"github.com/Freeeeeet/tuition_site/internal/model"
	"github.com/gosimple/slug"
)

type Section struct {
	Heading string   `json:"heading"`
	Body    string   `json:"body,omitempty"`
	Items   []string `json:"items,omitempty"`
}

type Page struct {
	Slug     string    `json:"slug"`
	Title    string    `json:"title"`
	Summary  string    `json:"summary"`
	Sections []Section `json:"sections"`
	Data     any       `json:"data,omitempty"`
}

// Catalog is an immutable set of pages keyed by slug.
type Catalog struct {
	pages map[string]Page
	order []string
}

// NewCatalog builds a catalog, deriving each slug from the title.
func NewCatalog(pages ...Page) (*Catalog, error) {
	c := &Catalog{pages: make(map[string]Page, len(pages))}
	for _, p := range pages {
		if p.Slug == "" {
			p.Slug = slug.Make(p.Title)
		}
		if _, dup := c.pages[p.Slug]; dup {
			return nil, fmt.Errorf("duplicate page slug %q", p.Slug)
		}
		c.pages[p.Slug] = p
		c.order = append(c.order, p.Slug)
	}
	return c, nil
}

// DefaultCatalog returns the site's built-in pages.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(pricingPage(), roadmapPage(), policiesPage())
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Get(s string) (Page, bool) {
	p, ok := c.pages[slug.Make(s)]
	return p, ok
}

// List returns page headers (no sections) in catalog order.
func (c *Catalog) List() []Page {
	out := make([]Page, 0, len(c.order))
	for _, s := range c.order {
		p := c.pages[s]
		out = append(out, Page{Slug: p.Slug, Title: p.Title, Summary: p.Summary})
	}
	return out
}

func pricingPage() Page {
	bands := []string{model.BandPrimary, model.BandSecondary, model.BandJC, model.BandOther}
	sections := make([]Section, 0, len(bands))
	for _, band := range bands {
		types := make([]string, 0, 4)
		for tt := range rateGuide[band] {
			types = append(types, string(tt))
		}
		sort.Strings(types)

		items := make([]string, 0, len(types))
		for _, tt := range types {
			r := rateGuide[band][model.TutorType(tt)]
			items = append(items, fmt.Sprintf("%s: $%d - $%d / hour", tt, r.Min, r.Max))
		}
		sections = append(sections, Section{Heading: band, Items: items})
	}
	sections = append(sections, Section{
		Heading: "Agency fee",
		Body:    "No fee for parents. Tutors pay 50% of the first month's lessons once an assignment is confirmed.",
	})

	return Page{
		Title:    "Pricing",
		Summary:  "Indicative hourly rates by level and tutor profile.",
		Sections: sections,
		Data:     rateGuide,
	}
}

func roadmapPage() Page {
	return Page{
		Title:   "Enrichment Roadmap",
		Slug:    "roadmap",
		Summary: "How the school enrichment programme runs across the year.",
		Sections: []Section{
			{Heading: "Term 1", Items: []string{"Needs assessment with the school", "Programme design and trainer assignment"}},
			{Heading: "Term 2", Items: []string{"Weekly workshops", "Mid-programme feedback"}},
			{Heading: "Term 3", Items: []string{"Project work and showcases"}},
			{Heading: "Term 4", Items: []string{"Final review and report to the school"}},
		},
	}
}

func policiesPage() Page {
	return Page{
		Title:   "Policies",
		Summary: "Privacy, cancellation and tutor replacement.",
		Sections: []Section{
			{Heading: "Privacy", Body: "Contact details are used only to arrange lessons and are never sold. Records can be deleted on request."},
			{Heading: "Cancellation", Body: "Lessons cancelled less than 24 hours ahead may be charged in full."},
			{Heading: "Tutor replacement", Body: "If the first lesson is not a good fit we propose another tutor at no extra cost."},
		},
	}
}
