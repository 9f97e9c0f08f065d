package model

// Location is a city in which theaters operate.
type Location struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Theater is a single screen.  LayoutID references the Layout catalog; a
// theater pointing at an unknown layout is a data-integrity bug.
type Theater struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	LocationID string `json:"location_id"`
	LayoutID   string `json:"layout_id"`
}

// Movie is a title currently on screen.
type Movie struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	PosterURL          string   `json:"poster_url"`
	Genre              string   `json:"genre"`
	ThemeColor         string   `json:"theme_color"`
	AvailableLanguages []string `json:"available_languages"`
}

// OffersLanguage reports whether the movie is screened in the language.
func (m Movie) OffersLanguage(lang string) bool {
	for _, l := range m.AvailableLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// DiscountType selects how a coupon's Value is applied.
type DiscountType string

const (
	DiscountFixed      DiscountType = "fixed"
	DiscountPercentage DiscountType = "percentage"
)

// Coupon is a static promotional code.  For DiscountFixed the Value is in
// paise, for DiscountPercentage it is a whole percent.  MinTickets is the
// smallest cart the coupon applies to (0 means no minimum).
type Coupon struct {
	Code         string       `json:"code"`
	Description  string       `json:"description"`
	DiscountType DiscountType `json:"discount_type"`
	Value        int64        `json:"value"`
	MinTickets   int          `json:"min_tickets,omitempty"`
}
