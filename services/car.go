package services

import (
	"context"
	"fmt"
	"strings"

	"carrental/database"
	"carrental/models"

	"go.uber.org/zap"
)

var carSearchFields = []string{"name", "brand", "model"}

// CarService 車輛資料存取，不負責維護可用性規則
type CarService struct {
	store  database.Client
	logger *zap.Logger
}

// NewCarService 建立 CarService
func NewCarService(store database.Client, logger *zap.Logger) *CarService {
	return &CarService{store: store, logger: logger}
}

func (s *CarService) query(ctx context.Context, filters []database.Filter, anyOf []database.Filter) ([]models.Car, error) {
	records, err := s.store.Select(ctx, database.Query{
		Collection: database.CollectionCars,
		Filters:    filters,
		AnyOf:      anyOf,
		OrderBy:    "created_at",
		Descending: true,
	})
	if err != nil {
		s.logger.Error("Failed to query cars", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch cars: %w", err)
	}
	return fromRecords[models.Car](records)
}

// List 取得所有車輛（新到舊）
func (s *CarService) List(ctx context.Context) ([]models.Car, error) {
	return s.query(ctx, nil, nil)
}

// GetByID 取得單一車輛，不存在時回傳 ErrNotFound
func (s *CarService) GetByID(ctx context.Context, id string) (*models.Car, error) {
	records, err := s.store.Select(ctx, database.Query{
		Collection: database.CollectionCars,
		Filters:    []database.Filter{database.Eq("id", id)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch car %s: %w", id, err)
	}
	if len(records) == 0 {
		return nil, notFound("car", id)
	}

	var car models.Car
	if err := fromRecord(records[0], &car); err != nil {
		return nil, err
	}
	return &car, nil
}

// Create 新增車輛，新車沒有訂單所以一律可租
func (s *CarService) Create(ctx context.Context, car models.Car) (*models.Car, error) {
	if err := ValidateCar(&car); err != nil {
		return nil, err
	}
	car.Available = true

	rec, err := toRecord(car)
	if err != nil {
		return nil, err
	}
	inserted, err := s.store.Insert(ctx, database.CollectionCars, rec)
	if err != nil {
		s.logger.Error("Failed to create car", zap.String("name", car.Name), zap.Error(err))
		return nil, fmt.Errorf("failed to create car: %w", err)
	}

	var created models.Car
	if err := fromRecord(inserted, &created); err != nil {
		return nil, err
	}
	s.logger.Info("Car created", zap.String("car_id", created.ID), zap.String("name", created.Name))
	return &created, nil
}

// Update 以完整資料覆寫車輛，欄位驗證由呼叫端負責
func (s *CarService) Update(ctx context.Context, id string, car models.Car) (*models.Car, error) {
	rec, err := toRecord(car)
	if err != nil {
		return nil, err
	}
	stored, err := s.store.Update(ctx, database.CollectionCars, id, rec)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, notFound("car", id)
		}
		return nil, fmt.Errorf("failed to update car %s: %w", id, err)
	}

	var updated models.Car
	if err := fromRecord(stored, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete 刪除車輛，不檢查是否仍有訂單
func (s *CarService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, database.CollectionCars, id); err != nil {
		return fmt.Errorf("failed to delete car %s: %w", id, err)
	}
	s.logger.Info("Car deleted", zap.String("car_id", id))
	return nil
}

// Search 以名稱、品牌、型號做不分大小寫的模糊搜尋
func (s *CarService) Search(ctx context.Context, term string) ([]models.Car, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.List(ctx)
	}
	return s.query(ctx, nil, database.AnyILike(term, carSearchFields...))
}

// FilterByCategory 依類別篩選
func (s *CarService) FilterByCategory(ctx context.Context, category models.CarCategory) ([]models.Car, error) {
	return s.query(ctx, []database.Filter{database.Eq("category", string(category))}, nil)
}

// ListAvailable 取得可租車輛
func (s *CarService) ListAvailable(ctx context.Context) ([]models.Car, error) {
	return s.query(ctx, []database.Filter{database.Eq("available", true)}, nil)
}

// ListUnavailable 取得已被佔用的車輛
func (s *CarService) ListUnavailable(ctx context.Context) ([]models.Car, error) {
	return s.query(ctx, []database.Filter{database.Eq("available", false)}, nil)
}

// ValidateCar 檢查車輛必填欄位與列舉值
func ValidateCar(car *models.Car) error {
	if strings.TrimSpace(car.Name) == "" {
		return newValidationError("name", "is required")
	}
	if strings.TrimSpace(car.Brand) == "" {
		return newValidationError("brand", "is required")
	}
	if car.Category != "" && !car.Category.IsValid() {
		return newValidationError("category", "invalid category %q", car.Category)
	}
	if car.Transmission != "" && !car.Transmission.IsValid() {
		return newValidationError("transmission", "invalid transmission %q", car.Transmission)
	}
	if car.FuelType != "" && !car.FuelType.IsValid() {
		return newValidationError("fuelType", "invalid fuel type %q", car.FuelType)
	}
	if car.PricePerDay < 0 {
		return newValidationError("pricePerDay", "must not be negative")
	}
	return nil
}
