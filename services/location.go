package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"carrental/database"
	"carrental/models"

	"go.uber.org/zap"
)

var locationSearchFields = []string{"name", "city"}

// LocationService 取還車據點資料存取
type LocationService struct {
	store  database.Client
	logger *zap.Logger
	now    func() time.Time
}

// NewLocationService 建立 LocationService
func NewLocationService(store database.Client, logger *zap.Logger) *LocationService {
	return &LocationService{store: store, logger: logger, now: time.Now}
}

func (s *LocationService) query(ctx context.Context, filters []database.Filter, anyOf []database.Filter) ([]models.Location, error) {
	records, err := s.store.Select(ctx, database.Query{
		Collection: database.CollectionLocations,
		Filters:    filters,
		AnyOf:      anyOf,
		OrderBy:    "created_at",
		Descending: true,
	})
	if err != nil {
		s.logger.Error("Failed to query locations", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch locations: %w", err)
	}
	return fromRecords[models.Location](records)
}

// List 取得所有據點
func (s *LocationService) List(ctx context.Context) ([]models.Location, error) {
	return s.query(ctx, nil, nil)
}

// GetByID 取得單一據點，不存在時回傳 ErrNotFound
func (s *LocationService) GetByID(ctx context.Context, id string) (*models.Location, error) {
	records, err := s.store.Select(ctx, database.Query{
		Collection: database.CollectionLocations,
		Filters:    []database.Filter{database.Eq("id", id)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch location %s: %w", id, err)
	}
	if len(records) == 0 {
		return nil, notFound("location", id)
	}

	var location models.Location
	if err := fromRecord(records[0], &location); err != nil {
		return nil, err
	}
	return &location, nil
}

// Create 新增據點
func (s *LocationService) Create(ctx context.Context, location models.Location) (*models.Location, error) {
	if err := validateLocation(&location); err != nil {
		return nil, err
	}
	if location.Status == "" {
		location.Status = models.LocationActive
	}

	rec, err := toRecord(location)
	if err != nil {
		return nil, err
	}
	delete(rec, "updated_at")

	inserted, err := s.store.Insert(ctx, database.CollectionLocations, rec)
	if err != nil {
		s.logger.Error("Failed to create location", zap.String("name", location.Name), zap.Error(err))
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	var created models.Location
	if err := fromRecord(inserted, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update 更新據點並記錄更新時間
func (s *LocationService) Update(ctx context.Context, id string, location models.Location) (*models.Location, error) {
	if err := validateLocation(&location); err != nil {
		return nil, err
	}

	rec, err := toRecord(location)
	if err != nil {
		return nil, err
	}
	if location.Status == "" {
		delete(rec, "status")
	}
	rec["updated_at"] = s.now().UTC().Format(time.RFC3339Nano)

	stored, err := s.store.Update(ctx, database.CollectionLocations, id, rec)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, notFound("location", id)
		}
		return nil, fmt.Errorf("failed to update location %s: %w", id, err)
	}

	var updated models.Location
	if err := fromRecord(stored, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete 刪除據點
func (s *LocationService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, database.CollectionLocations, id); err != nil {
		return fmt.Errorf("failed to delete location %s: %w", id, err)
	}
	return nil
}

// Search 以名稱、城市模糊搜尋
func (s *LocationService) Search(ctx context.Context, term string) ([]models.Location, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.List(ctx)
	}
	return s.query(ctx, nil, database.AnyILike(term, locationSearchFields...))
}

// FilterByStatus 依狀態篩選
func (s *LocationService) FilterByStatus(ctx context.Context, status models.LocationStatus) ([]models.Location, error) {
	return s.query(ctx, []database.Filter{database.Eq("status", string(status))}, nil)
}

// FilterByCity 依城市篩選
func (s *LocationService) FilterByCity(ctx context.Context, city string) ([]models.Location, error) {
	return s.query(ctx, []database.Filter{database.Eq("city", city)}, nil)
}

func validateLocation(l *models.Location) error {
	if strings.TrimSpace(l.Name) == "" {
		return newValidationError("name", "is required")
	}
	if strings.TrimSpace(l.City) == "" {
		return newValidationError("city", "is required")
	}
	if l.Status != "" && !l.Status.IsValid() {
		return newValidationError("status", "invalid status %q", l.Status)
	}
	if l.Capacity < 0 {
		return newValidationError("capacity", "must not be negative")
	}
	return nil
}
