package sector

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"gopkg.in/yaml.v3"
)

// Sector is the partition key for every news and market operation.
type Sector string

const (
	Offshore Sector = "offshore"
	Wind     Sector = "wind"
	SMR      Sector = "smr"
)

// ErrInvalidSector is returned for keys outside the catalog.
var ErrInvalidSector = errors.New("invalid sector")

//go:embed sectors.yaml
var catalogYAML []byte

type entry struct {
	Key     Sector   `yaml:"key"`
	Label   string   `yaml:"label"`
	Feed    string   `yaml:"feed"`
	Domains []string `yaml:"domains"`
}

type catalog struct {
	Sectors []entry           `yaml:"sectors"`
	Sources map[string]string `yaml:"sources"`
}

var (
	ordered []Sector
	byKey   map[Sector]entry
	sources map[string]string
)

func init() {
	var c catalog
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		panic(fmt.Sprintf("sector: invalid embedded catalog: %v", err))
	}
	byKey = make(map[Sector]entry, len(c.Sectors))
	for _, e := range c.Sectors {
		ordered = append(ordered, e.Key)
		byKey[e.Key] = e
	}
	sources = c.Sources
}

// Parse normalizes a query value into a known sector.
func Parse(s string) (Sector, error) {
	key := Sector(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := byKey[key]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidSector, s)
	}
	return key, nil
}

// All returns the sectors in catalog order.
func All() []Sector {
	out := make([]Sector, len(ordered))
	copy(out, ordered)
	return out
}

func (s Sector) String() string { return string(s) }

// Valid reports whether s is in the catalog.
func (s Sector) Valid() bool {
	_, ok := byKey[s]
	return ok
}

// Label is the human readable name embedded in upstream queries.
func (s Sector) Label() string { return byKey[s].Label }

// Domains is the allow-list of trusted news domains for the search stage.
func (s Sector) Domains() []string {
	d := byKey[s].Domains
	out := make([]string, len(d))
	copy(out, d)
	return out
}

// FeedURL is the RSS feed used by the RSS news source.
func (s Sector) FeedURL() string { return byKey[s].Feed }

// SourceName maps a result URL to a display name. Unknown hosts are returned
// bare; empty or unparsable URLs yield "Unknown".
func SourceName(rawURL string) string {
	if rawURL == "" {
		return "Unknown"
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "Unknown"
	}
	host := strings.Replace(u.Hostname(), "www.", "", 1)
	if name, ok := sources[host]; ok {
		return name
	}
	return host
}
