// Package listing holds the static directory catalog and the search over it.
package listing

type Listing struct {
	Source       string   `json:"source"`
	ListingID    string   `json:"listing_id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Subcategory  string   `json:"subcategory"`
	Address      string   `json:"address"`
	Locality     string   `json:"locality"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Pincode      string   `json:"pincode"`
	PhoneNumbers []string `json:"phone_numbers"`
	Website      string   `json:"website"`
	Email        string   `json:"email"`
	OpeningHours []string `json:"opening_hours"`
	Rating       float64  `json:"rating"`
	ReviewsCount int      `json:"reviews_count"`
	Description  string   `json:"description"`
	Images       []string `json:"images"`
	GeoLat       float64  `json:"geo_lat"`
	GeoLon       float64  `json:"geo_lon"`
	Verified     bool     `json:"verified"`
	LastUpdated  string   `json:"last_updated"`
	ScrapedAt    string   `json:"scraped_at"`
}
