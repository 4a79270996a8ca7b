package services

import (
	"context"
	"sync"
	"testing"

	"carrental/database"
	"carrental/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// faultyStore 包裝記憶體資料庫，可針對集合注入錯誤
type faultyStore struct {
	database.Client

	mu         sync.Mutex
	selectErrs map[string]error
	updateErrs map[string]error
	insertErrs map[string]error
}

func newFaultyStore(inner database.Client) *faultyStore {
	return &faultyStore{
		Client:     inner,
		selectErrs: make(map[string]error),
		updateErrs: make(map[string]error),
		insertErrs: make(map[string]error),
	}
}

func (f *faultyStore) failSelect(collection string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selectErrs[collection] = err
}

func (f *faultyStore) failUpdate(collection string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateErrs[collection] = err
}

func (f *faultyStore) failInsert(collection string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertErrs[collection] = err
}

func (f *faultyStore) Select(ctx context.Context, q database.Query) ([]database.Record, error) {
	f.mu.Lock()
	err := f.selectErrs[q.Collection]
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.Client.Select(ctx, q)
}

func (f *faultyStore) Insert(ctx context.Context, collection string, rec database.Record) (database.Record, error) {
	f.mu.Lock()
	err := f.insertErrs[collection]
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.Client.Insert(ctx, collection, rec)
}

func (f *faultyStore) Update(ctx context.Context, collection, id string, rec database.Record) (database.Record, error) {
	f.mu.Lock()
	err := f.updateErrs[collection]
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.Client.Update(ctx, collection, id, rec)
}

type fixture struct {
	ctx          context.Context
	mem          *database.MemoryClient
	store        *faultyStore
	logs         *observer.ObservedLogs
	cars         *CarService
	customers    *CustomerService
	locations    *LocationService
	availability *AvailabilitySync
	bookings     *BookingService
	reservations *ReservationService
	stats        *StatsService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithMode(t, false)
}

func newFixtureWithMode(t *testing.T, serialize bool) *fixture {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	mem := database.NewMemoryClient()
	store := newFaultyStore(mem)

	f := &fixture{ctx: context.Background(), mem: mem, store: store, logs: logs}
	f.cars = NewCarService(store, logger)
	f.customers = NewCustomerService(store, logger)
	f.locations = NewLocationService(store, logger)
	f.availability = NewAvailabilitySync(f.cars, store, logger, serialize)
	f.bookings = NewBookingService(store, f.customers, f.availability, logger)
	f.reservations = NewReservationService(f.cars, f.customers, f.bookings, logger)
	f.stats = NewStatsService(f.cars, f.customers, f.bookings, logger)
	return f
}

func (f *fixture) addCar(t *testing.T, name string, price int) *models.Car {
	t.Helper()
	car, err := f.cars.Create(f.ctx, models.Car{
		Name:         name,
		Brand:        "Brand " + name,
		Model:        "Model " + name,
		Year:         2023,
		Category:     models.CategorySUV,
		Seats:        5,
		Transmission: models.TransmissionAutomatic,
		FuelType:     models.FuelPetrol,
		PricePerDay:  price,
		Features:     []string{"GPS"},
		Location:     "Girne",
		Available:    true,
		PlateNumber:  "PL " + name,
	})
	require.NoError(t, err)
	return car
}

func (f *fixture) addCustomer(t *testing.T, name, email string, status models.CustomerStatus) *models.Customer {
	t.Helper()
	customer, err := f.customers.Create(f.ctx, models.Customer{
		FullName:   name,
		Email:      email,
		Phone:      "+90 555 " + name,
		NationalID: "TC-" + name,
		Status:     status,
	})
	require.NoError(t, err)
	return customer
}

func newBooking(carID string, status models.BookingStatus) models.Booking {
	return models.Booking{
		CustomerName: "Walk-in",
		CarID:        carID,
		CarName:      "snapshot",
		PickupDate:   "2024-07-01",
		ReturnDate:   "2024-07-04",
		Status:       status,
		TotalAmount:  300,
	}
}

func (f *fixture) book(t *testing.T, carID string, status models.BookingStatus) *models.Booking {
	t.Helper()
	result, err := f.bookings.Create(f.ctx, newBooking(carID, status))
	require.NoError(t, err)
	require.True(t, result.SideEffectsOK())
	return result.Booking
}

func (f *fixture) available(t *testing.T, carID string) bool {
	t.Helper()
	car, err := f.cars.GetByID(f.ctx, carID)
	require.NoError(t, err)
	return car.Available
}
