package services

import (
	"context"
	"fmt"

	"carrental/database"
	"carrental/models"

	"go.uber.org/zap"
)

// carAccessor 可用性同步需要的車輛讀寫
type carAccessor interface {
	List(ctx context.Context) ([]models.Car, error)
	GetByID(ctx context.Context, id string) (*models.Car, error)
	Update(ctx context.Context, id string, car models.Car) (*models.Car, error)
}

// SideEffect 一次車輛可用性寫入的結果；Err 不為 nil 代表寫入失敗，但不影響主要操作
type SideEffect struct {
	CarID  string `json:"carId"`
	Booked bool   `json:"booked"`
	Err    error  `json:"-"`
	Error  string `json:"error,omitempty"`
}

// OK 是否成功
func (e SideEffect) OK() bool {
	return e.Err == nil
}

func failedSideEffect(carID string, booked bool, err error) SideEffect {
	return SideEffect{CarID: carID, Booked: booked, Err: err, Error: err.Error()}
}

func occupyingStatusValues() []string {
	values := make([]string, len(models.OccupyingStatuses))
	for i, status := range models.OccupyingStatuses {
		values[i] = string(status)
	}
	return values
}

// SyncReport 全量同步結果
type SyncReport struct {
	Checked  int          `json:"checked"`
	Failed   int          `json:"failed"`
	Outcomes []SideEffect `json:"outcomes"`
}

// AvailabilitySync 維護 cars.available 與訂單狀態的一致性
type AvailabilitySync struct {
	cars   carAccessor
	store  database.Client
	logger *zap.Logger
	locks  *keyedMutex // nil 表示不序列化
}

// NewAvailabilitySync 建立 AvailabilitySync；serialize 為 true 時同一台車的讀改寫會依序執行
func NewAvailabilitySync(cars carAccessor, store database.Client, logger *zap.Logger, serialize bool) *AvailabilitySync {
	a := &AvailabilitySync{cars: cars, store: store, logger: logger}
	if serialize {
		a.locks = newKeyedMutex()
	}
	return a
}

func (a *AvailabilitySync) lock(carID string) func() {
	if a.locks == nil {
		return func() {}
	}
	return a.locks.Lock(carID)
}

// SetCarAvailability 讀取車輛後以 available = !booked 寫回；錯誤只記錄並回報，不會往上拋
func (a *AvailabilitySync) SetCarAvailability(ctx context.Context, carID string, booked bool) SideEffect {
	unlock := a.lock(carID)
	defer unlock()
	return a.setAvailability(ctx, carID, booked)
}

func (a *AvailabilitySync) setAvailability(ctx context.Context, carID string, booked bool) SideEffect {
	car, err := a.cars.GetByID(ctx, carID)
	if err != nil {
		a.logger.Error("Failed to load car for availability update",
			zap.String("car_id", carID), zap.Bool("booked", booked), zap.Error(err))
		return failedSideEffect(carID, booked, err)
	}

	car.Available = !booked
	if _, err := a.cars.Update(ctx, carID, *car); err != nil {
		a.logger.Error("Failed to update car availability",
			zap.String("car_id", carID), zap.Bool("booked", booked), zap.Error(err))
		return failedSideEffect(carID, booked, err)
	}

	a.logger.Debug("Car availability updated", zap.String("car_id", carID), zap.Bool("available", !booked))
	return SideEffect{CarID: carID, Booked: booked}
}

// RecomputeCar 依目前 Pending/Active 訂單重新計算單一車輛的可用性
func (a *AvailabilitySync) RecomputeCar(ctx context.Context, carID string) SideEffect {
	unlock := a.lock(carID)
	defer unlock()

	records, err := a.store.Select(ctx, database.Query{
		Collection: database.CollectionBookings,
		Filters: []database.Filter{
			database.Eq("car_id", carID),
			database.In("status", occupyingStatusValues()),
		},
	})
	if err != nil {
		a.logger.Error("Failed to query occupying bookings", zap.String("car_id", carID), zap.Error(err))
		return failedSideEffect(carID, false, fmt.Errorf("failed to query bookings for car %s: %w", carID, err))
	}
	return a.setAvailability(ctx, carID, len(records) > 0)
}

// SyncAll 逐台重新計算所有車輛的可用性，單台失敗不會中斷
func (a *AvailabilitySync) SyncAll(ctx context.Context) (*SyncReport, error) {
	cars, err := a.cars.List(ctx)
	if err != nil {
		a.logger.Error("Failed to fetch cars for availability sync", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch cars for availability sync: %w", err)
	}

	report := &SyncReport{Outcomes: make([]SideEffect, 0, len(cars))}
	for _, car := range cars {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		outcome := a.RecomputeCar(ctx, car.ID)
		report.Checked++
		if !outcome.OK() {
			report.Failed++
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	a.logger.Info("Successfully synced car availability",
		zap.Int("checked", report.Checked), zap.Int("failed", report.Failed))
	return report, nil
}

// BookedCarIDs 有 Pending/Active 訂單的車輛 id（不重複）
func (a *AvailabilitySync) BookedCarIDs(ctx context.Context) ([]string, error) {
	records, err := a.store.Select(ctx, database.Query{
		Collection: database.CollectionBookings,
		Filters:    []database.Filter{database.In("status", occupyingStatusValues())},
		OrderBy:    "created_at",
		Descending: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booked cars: %w", err)
	}

	seen := make(map[string]bool)
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		id, _ := rec["car_id"].(string)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

// AvailableCarIDs 不在已預訂清單中的車輛 id，依訂單即時計算而非讀取 available 欄位
func (a *AvailabilitySync) AvailableCarIDs(ctx context.Context) ([]string, error) {
	booked, err := a.BookedCarIDs(ctx)
	if err != nil {
		return nil, err
	}
	bookedSet := make(map[string]bool, len(booked))
	for _, id := range booked {
		bookedSet[id] = true
	}

	cars, err := a.cars.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cars: %w", err)
	}
	ids := make([]string, 0, len(cars))
	for _, car := range cars {
		if !bookedSet[car.ID] {
			ids = append(ids, car.ID)
		}
	}
	return ids, nil
}
