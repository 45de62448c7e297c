// Package content holds the site copy that feeds the lead forms: pricing
// plans, whose titles prefill the pricing inquiry subject, and contact
// channels.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var siteYAML []byte

// ErrUnknownPlan is returned by Site.Plan for ids and titles it does not know.
var ErrUnknownPlan = errors.New("content: unknown plan")

// Plan is one pricing tier.
type Plan struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Price       string   `yaml:"price" json:"price"`
	Description string   `yaml:"description" json:"description"`
	Features    []string `yaml:"features" json:"features"`
}

// Channel is one way to reach the agency.
type Channel struct {
	Kind  string `yaml:"kind" json:"kind"`
	Title string `yaml:"title" json:"title"`
	Value string `yaml:"value" json:"value"`
	Href  string `yaml:"href" json:"href"`
}

// Site groups plans and channels.
type Site struct {
	Plans    []Plan    `yaml:"plans" json:"plans"`
	Channels []Channel `yaml:"channels" json:"channels"`
}

// Default returns the built-in site content.
func Default() (Site, error) {
	return Parse(siteYAML)
}

// Parse decodes site content from YAML and checks plan ids are unique.
func Parse(data []byte) (Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return Site{}, fmt.Errorf("content: parse: %w", err)
	}
	seen := make(map[string]bool, len(site.Plans))
	for i, plan := range site.Plans {
		id := strings.TrimSpace(plan.ID)
		if id == "" || strings.TrimSpace(plan.Title) == "" {
			return Site{}, fmt.Errorf("content: plan %d needs an id and a title", i)
		}
		if seen[id] {
			return Site{}, fmt.Errorf("content: duplicate plan %q", id)
		}
		seen[id] = true
		site.Plans[i].ID = id
	}
	return site, nil
}

// Plan finds a plan by id or, case-insensitively, by title.
func (s Site) Plan(key string) (Plan, error) {
	key = strings.TrimSpace(key)
	for _, plan := range s.Plans {
		if plan.ID == key || strings.EqualFold(plan.Title, key) {
			return plan, nil
		}
	}
	return Plan{}, fmt.Errorf("%w: %q", ErrUnknownPlan, key)
}

// Channel returns the channel of the given kind.
func (s Site) Channel(kind string) (Channel, bool) {
	for _, ch := range s.Channels {
		if ch.Kind == kind {
			return ch, true
		}
	}
	return Channel{}, false
}
