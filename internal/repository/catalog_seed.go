package repository

import "github.com/iliyamo/cinema-seat-booking/internal/model"

func defaultLayouts() map[string]model.Layout {
	wideCorridor := make([]model.Gap, 0, 10)
	for _, row := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "J", "K"} {
		wideCorridor = append(wideCorridor, model.Gap{Row: row, Seats: []int{8, 9, 10, 11, 12}})
	}
	return map[string]model.Layout{
		// standard with side aisles: 3 | 8 | 3
		"layout1": {
			ID:           "layout1",
			Rows:         []string{"A", "B", "C", "D", "E", "F", "G", "H"},
			SeatsPerRow:  14,
			Aisles:       []int{3, 11},
			BlockedSeats: []string{"C5", "C6", "F9", "F10"},
		},
		// middle entry
		"layout2": {
			ID:          "layout2",
			Rows:        []string{"A", "B", "C", "D", "E", "F", "G", "H", "J"},
			SeatsPerRow: 12,
			Gaps: []model.Gap{
				{Row: "J", Seats: []int{5, 6, 7, 8}},
				{Row: "H", Seats: []int{5, 6, 7, 8}},
				{Row: "G", Seats: []int{5, 6, 7, 8}},
			},
			BlockedSeats: []string{"D6", "D7"},
		},
		// side entry
		"layout3": {
			ID:          "layout3",
			Rows:        []string{"A", "B", "C", "D", "E", "F", "G", "H"},
			SeatsPerRow: 12,
			Aisles:      []int{6},
			Gaps: []model.Gap{
				{Row: "F", Seats: []int{1, 2}},
				{Row: "G", Seats: []int{1, 2}},
				{Row: "H", Seats: []int{1, 2}},
			},
			BlockedSeats: []string{"B8", "B9"},
		},
		// wide center corridor, entry from front and back
		"layout4": {
			ID:           "layout4",
			Rows:         []string{"A", "B", "C", "D", "E", "F", "G", "H", "J", "K"},
			SeatsPerRow:  19,
			Gaps:         wideCorridor,
			BlockedSeats: []string{"D1", "D19", "E1", "E19"},
		},
		"layout5": {
			ID:           "layout5",
			Rows:         []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"},
			SeatsPerRow:  16,
			Aisles:       []int{4, 8, 12},
			BlockedSeats: []string{"J1", "J16", "A8", "A9"},
		},
		// recliners in pairs
		"layout6": {
			ID:          "layout6",
			Rows:        []string{"A", "B", "C", "D", "E"},
			SeatsPerRow: 10,
			Aisles:      []int{2, 5, 8},
		},
	}
}

func defaultLocations() []model.Location {
	return []model.Location{
		{ID: "vis", Name: "Visakhapatnam"},
		{ID: "vij", Name: "Vijayawada"},
		{ID: "gun", Name: "Guntur"},
		{ID: "nel", Name: "Nellore"},
		{ID: "kur", Name: "Kurnool"},
		{ID: "raj", Name: "Rajahmundry"},
		{ID: "tir", Name: "Tirupati"},
		{ID: "kad", Name: "Kadapa"},
		{ID: "kak", Name: "Kakinada"},
		{ID: "ana", Name: "Anantapur"},
	}
}

func defaultTheaters() []model.Theater {
	return []model.Theater{
		{ID: "t1", Name: "INOX - Varun Beach", LocationID: "vis", LayoutID: "layout1"},
		{ID: "t2", Name: "Jagadamba Multiplex", LocationID: "vis", LayoutID: "layout2"},
		{ID: "t8", Name: "Mukta A2 Cinemas", LocationID: "vis", LayoutID: "layout4"},
		{ID: "t18", Name: "CMR Central", LocationID: "vis", LayoutID: "layout3"},

		{ID: "t3", Name: "PVP Square", LocationID: "vij", LayoutID: "layout1"},
		{ID: "t4", Name: "INOX - LEPL", LocationID: "vij", LayoutID: "layout3"},
		{ID: "t9", Name: "Capital Cinemas", LocationID: "vij", LayoutID: "layout5"},
		{ID: "t19", Name: "Trendset Mall", LocationID: "vij", LayoutID: "layout2"},

		{ID: "t5", Name: "PVR - Phoenix", LocationID: "gun", LayoutID: "layout2"},
		{ID: "t10", Name: "Hollywood Cinemas", LocationID: "gun", LayoutID: "layout6"},
		{ID: "t20", Name: "Krishna Mahal", LocationID: "gun", LayoutID: "layout1"},

		{ID: "t11", Name: "M Cinemas", LocationID: "nel", LayoutID: "layout1"},
		{ID: "t21", Name: "Asian Multiplex", LocationID: "nel", LayoutID: "layout4"},

		{ID: "t12", Name: "SVEC Cinemas", LocationID: "kur", LayoutID: "layout2"},
		{ID: "t22", Name: "Alankar Cinemas", LocationID: "kur", LayoutID: "layout5"},

		{ID: "t6", Name: "Cinepolis - Srikanya", LocationID: "raj", LayoutID: "layout1"},
		{ID: "t13", Name: "Geetha Apsara", LocationID: "raj", LayoutID: "layout4"},

		{ID: "t7", Name: "SVC Tirupati", LocationID: "tir", LayoutID: "layout3"},
		{ID: "t14", Name: "PRC Multiplex", LocationID: "tir", LayoutID: "layout5"},
		{ID: "t23", Name: "Cinepolis - Sudha", LocationID: "tir", LayoutID: "layout6"},

		{ID: "t15", Name: "Ravi & Raghu Cine Complex", LocationID: "kad", LayoutID: "layout3"},
		{ID: "t24", Name: "LNV Cinemas", LocationID: "kad", LayoutID: "layout1"},

		{ID: "t16", Name: "Devi Multiplex", LocationID: "kak", LayoutID: "layout1"},
		{ID: "t25", Name: "Carnival Cinemas", LocationID: "kak", LayoutID: "layout2"},

		{ID: "t17", Name: "SSS Multiplex", LocationID: "ana", LayoutID: "layout6"},
		{ID: "t26", Name: "Gowri Theatre", LocationID: "ana", LayoutID: "layout5"},
	}
}

func defaultMovies() []model.Movie {
	return []model.Movie{
		{
			ID:                 "m1",
			Title:              "Kalki 2898 AD",
			PosterURL:          "https://stat5.bollywoodhungama.in/wp-content/uploads/2024/06/Kalki-2898-AD-10.jpg",
			Genre:              "Sci-Fi | Action",
			ThemeColor:         "#f97316",
			AvailableLanguages: []string{"Telugu", "Hindi", "Tamil"},
		},
		{
			ID:                 "m2",
			Title:              "Pushpa 2: The Rule",
			PosterURL:          "https://i.pinimg.com/1200x/31/b1/ea/31b1ea4c9e3d8302460b69f00e31c74a.jpg",
			Genre:              "Action | Drama",
			ThemeColor:         "#dc2626",
			AvailableLanguages: []string{"Telugu", "Hindi", "Tamil", "Malayalam", "Kannada"},
		},
		{
			ID:                 "m3",
			Title:              "Coolie",
			PosterURL:          "https://www.wallsnapy.com/img_gallery/coolie-movie-rajini--poster-4k-download-9445507.jpg",
			Genre:              "Action | Comedy",
			ThemeColor:         "#3b82f6",
			AvailableLanguages: []string{"Tamil", "Telugu"},
		},
		{
			ID:                 "m4",
			Title:              "War 2",
			PosterURL:          "https://upload.wikimedia.org/wikipedia/en/f/f5/War_2_official_poster.jpg",
			Genre:              "Action | Thriller",
			ThemeColor:         "#10b981",
			AvailableLanguages: []string{"Hindi", "Telugu", "Tamil"},
		},
	}
}

// Fixed coupon values are in paise.
func defaultCoupons() []model.Coupon {
	return []model.Coupon{
		{Code: "SUPERHIT", Description: "Flat ₹100 Off", DiscountType: model.DiscountFixed, Value: 10000},
		{Code: "CINE20", Description: "20% Off on tickets", DiscountType: model.DiscountPercentage, Value: 20},
		{Code: "FAMILYFUN", Description: "Flat ₹150 for 4+ tickets", DiscountType: model.DiscountFixed, Value: 15000, MinTickets: 4},
		{Code: "WEEKDAY", Description: "30% off on weekdays", DiscountType: model.DiscountPercentage, Value: 30},
		{Code: "FIRSTBOOK", Description: "Flat ₹50 Off on first booking", DiscountType: model.DiscountFixed, Value: 5000},
	}
}
