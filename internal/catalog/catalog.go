package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultData []byte

// MaxCompare is the largest number of tools shown side by side.
const MaxCompare = 3

// DefaultArea is the trend series returned for an unknown area.
const DefaultArea = "frontend"

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownTool     = errors.New("unknown tool")
	ErrTooManyTools    = fmt.Errorf("at most %d tools can be compared", MaxCompare)
)

// Tool is one comparable technology with its 0-100 scores.
type Tool struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Popularity  int      `yaml:"popularity" json:"popularity"`
	Learning    int      `yaml:"learning" json:"learning"`
	Community   int      `yaml:"community" json:"community"`
	Performance int      `yaml:"performance" json:"performance"`
	Features    []string `yaml:"features" json:"features"`
	BestFor     []string `yaml:"bestFor" json:"bestFor"`
}

// Category groups tools. Some categories are listed without tools yet.
type Category struct {
	Name  string `yaml:"name" json:"name"`
	Tools []Tool `yaml:"tools" json:"tools,omitempty"`
}

// CategorySummary is the listing form of a category.
type CategorySummary struct {
	Name      string `json:"name"`
	ToolCount int    `json:"toolCount"`
}

// TrendingTool is one adoption figure with its recent change.
type TrendingTool struct {
	Name   string `yaml:"name" json:"name"`
	Value  int    `yaml:"value" json:"value"`
	Change int    `yaml:"change" json:"change"`
	Trend  string `yaml:"trend" json:"trend"`
}

// Share is one slice of the category distribution.
type Share struct {
	Name  string `yaml:"name" json:"name"`
	Value int    `yaml:"value" json:"value"`
}

// Point is one month of a trend series.
type Point struct {
	Month  string         `yaml:"month" json:"month"`
	Values map[string]int `yaml:"values" json:"values"`
}

// Series is the monthly popularity of the tools of one area.
type Series struct {
	Area   string            `yaml:"-" json:"area"`
	Tools  []string          `yaml:"tools" json:"tools"`
	Colors map[string]string `yaml:"colors" json:"colors"`
	Points []Point           `yaml:"points" json:"points"`
}

// Movers splits the trending list into rising and falling tools.
type Movers struct {
	Rising  []TrendingTool `json:"rising"`
	Falling []TrendingTool `json:"falling"`
}

type document struct {
	Categories []Category         `yaml:"categories"`
	Trending   []TrendingTool     `yaml:"trending"`
	Share      []Share            `yaml:"share"`
	Series     map[string]*Series `yaml:"series"`
}

// Catalog serves read-only comparison and trend data.
type Catalog struct {
	doc document
}

// Default loads the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultData)
}

// Parse decodes a catalog YAML document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(doc.Categories) == 0 {
		return nil, errors.New("parse catalog: no categories")
	}
	for area, s := range doc.Series {
		if s == nil {
			return nil, fmt.Errorf("parse catalog: empty series %q", area)
		}
		s.Area = area
	}
	if _, ok := doc.Series[DefaultArea]; !ok {
		return nil, fmt.Errorf("parse catalog: missing %q series", DefaultArea)
	}
	return &Catalog{doc: doc}, nil
}

// Categories lists every category in catalog order.
func (c *Catalog) Categories() []CategorySummary {
	out := make([]CategorySummary, 0, len(c.doc.Categories))
	for _, cat := range c.doc.Categories {
		out = append(out, CategorySummary{Name: cat.Name, ToolCount: len(cat.Tools)})
	}
	return out
}

// Tools returns the tools of a category whose name contains query, case-insensitively.
func (c *Catalog) Tools(category, query string) ([]Tool, error) {
	cat, ok := c.category(category)
	if !ok {
		return nil, ErrUnknownCategory
	}
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]Tool, 0, len(cat.Tools))
	for _, tool := range cat.Tools {
		if query == "" || strings.Contains(strings.ToLower(tool.Name), query) {
			out = append(out, tool)
		}
	}
	return out, nil
}

// Compare returns the named tools in the requested order. With no names it returns the
// first two tools of the category.
func (c *Catalog) Compare(category string, names []string) ([]Tool, error) {
	cat, ok := c.category(category)
	if !ok {
		return nil, ErrUnknownCategory
	}
	if len(names) == 0 {
		n := 2
		if len(cat.Tools) < n {
			n = len(cat.Tools)
		}
		return append([]Tool(nil), cat.Tools[:n]...), nil
	}

	seen := make(map[string]struct{}, len(names))
	out := make([]Tool, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		tool, ok := findTool(cat, name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
		}
		out = append(out, tool)
	}
	if len(out) > MaxCompare {
		return nil, ErrTooManyTools
	}
	return out, nil
}

// Trending returns the trending list. limit <= 0 returns every entry.
func (c *Catalog) Trending(limit int) []TrendingTool {
	items := c.doc.Trending
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return append([]TrendingTool(nil), items...)
}

// Movers returns rising tools by largest gain and falling tools by largest loss.
func (c *Catalog) Movers() Movers {
	var m Movers
	for _, item := range c.doc.Trending {
		switch item.Trend {
		case "up":
			m.Rising = append(m.Rising, item)
		case "down":
			m.Falling = append(m.Falling, item)
		}
	}
	sort.SliceStable(m.Rising, func(i, j int) bool { return m.Rising[i].Change > m.Rising[j].Change })
	sort.SliceStable(m.Falling, func(i, j int) bool { return m.Falling[i].Change < m.Falling[j].Change })
	return m
}

// Share returns the category distribution.
func (c *Catalog) Share() []Share {
	return append([]Share(nil), c.doc.Share...)
}

// Series returns the monthly series of an area, falling back to DefaultArea.
func (c *Catalog) Series(area string) Series {
	s, ok := c.doc.Series[strings.ToLower(strings.TrimSpace(area))]
	if !ok {
		s = c.doc.Series[DefaultArea]
	}
	return *s
}

// Areas lists the series areas in sorted order.
func (c *Catalog) Areas() []string {
	out := make([]string, 0, len(c.doc.Series))
	for area := range c.doc.Series {
		out = append(out, area)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) category(name string) (Category, bool) {
	name = strings.TrimSpace(name)
	for _, cat := range c.doc.Categories {
		if strings.EqualFold(cat.Name, name) {
			return cat, true
		}
	}
	return Category{}, false
}

func findTool(cat Category, name string) (Tool, bool) {
	for _, tool := range cat.Tools {
		if strings.EqualFold(tool.Name, name) {
			return tool, true
		}
	}
	return Tool{}, false
}
