package seeders

import (
	"context"
	"fmt"

	"carrental/models"

	"go.uber.org/zap"
)

type carStore interface {
	List(ctx context.Context) ([]models.Car, error)
	Create(ctx context.Context, car models.Car) (*models.Car, error)
}

type locationStore interface {
	List(ctx context.Context) ([]models.Location, error)
	Create(ctx context.Context, location models.Location) (*models.Location, error)
}

// SeedDemo 資料庫為空時寫入展示用據點與車輛
func SeedDemo(ctx context.Context, cars carStore, locations locationStore, logger *zap.Logger) error {
	logger.Info("Checking demo data...")

	existingLocations, err := locations.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to count locations: %w", err)
	}
	if len(existingLocations) == 0 {
		for _, l := range demoLocations() {
			if _, err := locations.Create(ctx, l); err != nil {
				return fmt.Errorf("failed to seed location %s: %w", l.Name, err)
			}
		}
		logger.Info("Seeded demo locations", zap.Int("count", len(demoLocations())))
	}

	existingCars, err := cars.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to count cars: %w", err)
	}
	if len(existingCars) > 0 {
		return nil
	}
	for _, c := range demoCars() {
		if _, err := cars.Create(ctx, c); err != nil {
			return fmt.Errorf("failed to seed car %s: %w", c.Name, err)
		}
	}
	logger.Info("Seeded demo cars", zap.Int("count", len(demoCars())))
	return nil
}

func demoLocations() []models.Location {
	return []models.Location{
		{Name: "Girne Office", Address: "Ziya Rızkı Cd. 12", City: "Girne", Phone: "+90 392 815 0000", WorkingHours: "08:00-20:00", Status: models.LocationActive, Capacity: 40},
		{Name: "Ercan Airport", Address: "Ercan Airport Arrivals", City: "Lefkoşa", Phone: "+90 392 231 0000", WorkingHours: "00:00-24:00", Status: models.LocationActive, Capacity: 80},
		{Name: "Mağusa Office", Address: "İstiklal Cd. 5", City: "Gazimağusa", Phone: "+90 392 366 0000", WorkingHours: "09:00-18:00", Status: models.LocationActive, Capacity: 25},
	}
}

func demoCars() []models.Car {
	return []models.Car{
		{
			Name: "Clio", Brand: "Renault", Model: "Clio V", Year: 2023, Mileage: 12000,
			Category: models.CategoryEconomy, Seats: 5, Transmission: models.TransmissionManual, FuelType: models.FuelPetrol,
			PricePerDay: 45, MPG: 48, Features: []string{"Bluetooth", "Air conditioning"},
			EngineSize: "1.0L", TrunkCapacity: "391L", KmLimit: 300, Location: "Girne", Available: true, PlateNumber: "GR 101",
		},
		{
			Name: "Corolla", Brand: "Toyota", Model: "Corolla Hybrid", Year: 2022, Mileage: 25000,
			Category: models.CategoryEconomy, Seats: 5, Transmission: models.TransmissionAutomatic, FuelType: models.FuelHybrid,
			PricePerDay: 60, MPG: 60, IsPopular: true, Features: []string{"Bluetooth", "Lane assist", "Cruise control"},
			EngineSize: "1.8L", TrunkCapacity: "471L", KmLimit: 300, Location: "Lefkoşa", Available: true, PlateNumber: "LF 202",
		},
		{
			Name: "X5", Brand: "BMW", Model: "xDrive40i", Year: 2023, Mileage: 8000,
			Category: models.CategorySUV, Seats: 5, Transmission: models.TransmissionAutomatic, FuelType: models.FuelDiesel,
			PricePerDay: 180, MPG: 32, IsPopular: true, Features: []string{"Leather seats", "GPS", "Panoramic roof"},
			EngineSize: "3.0L", TrunkCapacity: "650L", KmLimit: 250, Location: "Girne", Available: true, PlateNumber: "GR 303",
		},
		{
			Name: "911", Brand: "Porsche", Model: "Carrera S", Year: 2024, Mileage: 3000,
			Category: models.CategorySports, Seats: 4, Transmission: models.TransmissionAutomatic, FuelType: models.FuelPetrol,
			PricePerDay: 400, MPG: 24, Features: []string{"Sport chrono", "Bose audio"},
			EngineSize: "3.0L", TrunkCapacity: "132L", KmLimit: 200, Location: "Gazimağusa", Available: true, PlateNumber: "GM 404",
		},
		{
			Name: "Model 3", Brand: "Tesla", Model: "Long Range", Year: 2023, Mileage: 15000,
			Category: models.CategoryLuxury, Seats: 5, Transmission: models.TransmissionAutomatic, FuelType: models.FuelElectric,
			PricePerDay: 150, Features: []string{"Autopilot", "Glass roof"},
			EngineSize: "Dual motor", TrunkCapacity: "561L", KmLimit: 350, Location: "Lefkoşa", Available: true, PlateNumber: "LF 505",
		},
	}
}
