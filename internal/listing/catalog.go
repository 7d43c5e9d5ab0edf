package listing

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"slices"
)

//go:embed data/businesses.json
var defaultData []byte

// Catalog is the read-only listing set loaded at startup.
type Catalog struct {
	listings []Listing
	byID     map[string]int
	cities   []string
}

func NewCatalog(listings []Listing) *Catalog {
	c := &Catalog{
		listings: listings,
		byID:     make(map[string]int, len(listings)),
	}

	seen := make(map[string]bool)
	for i, l := range listings {
		c.byID[l.ListingID] = i
		if l.City != "" && !seen[l.City] {
			seen[l.City] = true
			c.cities = append(c.cities, l.City)
		}
	}
	return c
}

// LoadCatalog reads listings from path, or the bundled data when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	data := defaultData
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read listings file: %w", err)
		}
		data = b
	}

	listings, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return NewCatalog(listings), nil
}

func Decode(data []byte) ([]Listing, error) {
	var listings []Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("decode listings: %w", err)
	}
	return listings, nil
}

func (c *Catalog) Search(q Query) []Listing {
	return Search(c.listings, q)
}

func (c *Catalog) Get(listingID string) (Listing, bool) {
	i, ok := c.byID[listingID]
	if !ok {
		return Listing{}, false
	}
	return c.listings[i], true
}

func (c *Catalog) Cities() []string {
	return slices.Clone(c.cities)
}

func (c *Catalog) All() []Listing {
	return slices.Clone(c.listings)
}

func (c *Catalog) Len() int {
	return len(c.listings)
}
