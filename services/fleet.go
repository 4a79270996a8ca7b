package services

import (
	"context"

	"carrental/models"
)

// FleetFilter 前台車輛篩選條件，零值代表不篩選
type FleetFilter struct {
	PickupLocation string              `form:"pickupLocation"`
	Brand          string              `form:"brand"`
	Category       models.CarCategory  `form:"category"`
	Transmission   models.Transmission `form:"transmission"`
	FuelType       models.FuelType     `form:"fuelType"`
	MinPrice       int                 `form:"minPrice" binding:"gte=0"`
	MaxPrice       int                 `form:"maxPrice" binding:"gte=0"`
	OnlyAvailable  bool                `form:"onlyAvailable"`
}

// Matches 檢查車輛是否符合所有條件
func (f FleetFilter) Matches(car *models.Car) bool {
	switch {
	case f.PickupLocation != "" && car.Location != f.PickupLocation:
		return false
	case f.Brand != "" && car.Brand != f.Brand:
		return false
	case f.Category != "" && car.Category != f.Category:
		return false
	case f.Transmission != "" && car.Transmission != f.Transmission:
		return false
	case f.FuelType != "" && car.FuelType != f.FuelType:
		return false
	case f.MinPrice > 0 && car.PricePerDay < f.MinPrice:
		return false
	case f.MaxPrice > 0 && car.PricePerDay > f.MaxPrice:
		return false
	case f.OnlyAvailable && !car.Available:
		return false
	}
	return true
}

// FilterCars 依條件篩選車輛，保留原本順序
func FilterCars(cars []models.Car, f FleetFilter) []models.Car {
	out := make([]models.Car, 0, len(cars))
	for i := range cars {
		if f.Matches(&cars[i]) {
			out = append(out, cars[i])
		}
	}
	return out
}

// Browse 取得所有車輛後依前台條件篩選
func (s *CarService) Browse(ctx context.Context, f FleetFilter) ([]models.Car, error) {
	cars, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterCars(cars, f), nil
}
