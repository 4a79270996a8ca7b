package models

// DefaultExtras 可加購項目（每日價格）
func DefaultExtras() []BookingExtra {
	return []BookingExtra{
		{ID: "1", Name: "GPS Navigation", Price: 15},
		{ID: "2", Name: "Child Seat", Price: 25},
		{ID: "3", Name: "Additional Driver", Price: 30},
		{ID: "4", Name: "Wifi Hotspot", Price: 20},
		{ID: "5", Name: "Baby Seat", Price: 20},
	}
}

// DefaultInsurancePackages 保險方案（每日價格）
func DefaultInsurancePackages() []InsurancePackage {
	return []InsurancePackage{
		{
			ID:       "1",
			Name:     "Basic Insurance",
			Price:    0,
			Coverage: []string{"Compulsory traffic insurance", "Collision damage (2000 deductible)"},
		},
		{
			ID:       "2",
			Name:     "Comprehensive Insurance",
			Price:    45,
			Coverage: []string{"Compulsory traffic insurance", "Full collision damage", "Glass cover", "Reduced deductible"},
		},
		{
			ID:       "3",
			Name:     "Premium Insurance",
			Price:    75,
			Coverage: []string{"Compulsory traffic insurance", "Full collision damage", "Glass cover", "Zero deductible", "Personal belongings cover"},
		},
	}
}
