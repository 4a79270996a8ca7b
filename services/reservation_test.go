package services

import (
	"testing"
	"time"

	"carrental/database"
	"carrental/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reservationRequest(carID string) ReservationRequest {
	return ReservationRequest{
		CarID:          carID,
		PickupDate:     "2024-07-01",
		ReturnDate:     "2024-07-04",
		PickupTime:     "10:00",
		ReturnTime:     "10:00",
		PickupLocation: "Ercan Airport",
		ReturnLocation: "Girne Office",
		ExtraIDs:       []string{"1", "2"},
		InsuranceID:    "2",
		FullName:       "Deniz Aksoy",
		Email:          "deniz@example.com",
		Phone:          "+90 533 111 2233",
		NationalID:     "12345678901",
	}
}

func TestReserveCreatesCustomerAndPendingBooking(t *testing.T) {
	f := newFixture(t)
	car := f.addCar(t, "X5", 180)

	result, err := f.reservations.Reserve(f.ctx, reservationRequest(car.ID))
	require.NoError(t, err)

	assert.True(t, result.CustomerCreated)
	assert.Equal(t, models.CustomerActive, result.Customer.Status)
	assert.Equal(t, 795, result.Quote.TotalAmount)

	booking := result.Booking
	assert.Equal(t, models.BookingPending, booking.Status)
	assert.Equal(t, result.Customer.ID, booking.CustomerID)
	assert.Equal(t, "Deniz Aksoy", booking.CustomerName)
	assert.Equal(t, "X5", booking.CarName)
	assert.Equal(t, car.PlateNumber, booking.CarPlate)
	assert.Equal(t, 795, booking.TotalAmount)
	assert.Len(t, booking.Extras, 2)
	require.NotNil(t, booking.Insurance)
	assert.Equal(t, 45, booking.Insurance.Price)

	assert.True(t, result.SideEffectsOK())
	assert.False(t, f.available(t, car.ID))
}

func TestReserveReusesExistingCustomer(t *testing.T) {
	f := newFixture(t)
	car := f.addCar(t, "Clio", 45)
	other := f.addCar(t, "Corolla", 60)

	first, err := f.reservations.Reserve(f.ctx, reservationRequest(car.ID))
	require.NoError(t, err)

	// email 不同但身分證號相同
	req := reservationRequest(other.ID)
	req.Email = "deniz.new@example.com"
	second, err := f.reservations.Reserve(f.ctx, req)
	require.NoError(t, err)

	assert.False(t, second.CustomerCreated)
	assert.Equal(t, first.Customer.ID, second.Customer.ID)
	assert.Equal(t, 1, f.mem.Count(database.CollectionCustomers))
	assert.Equal(t, 2, f.mem.Count(database.CollectionBookings))
}

func TestReserveRejectsUnavailableCar(t *testing.T) {
	f := newFixture(t)
	car := f.addCar(t, "Clio", 45)
	f.book(t, car.ID, models.BookingActive)

	_, err := f.reservations.Reserve(f.ctx, reservationRequest(car.ID))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "carId", ve.Field)
	assert.Equal(t, 0, f.mem.Count(database.CollectionCustomers))

	_, err = f.reservations.Reserve(f.ctx, reservationRequest("ghost"))
	assert.True(t, IsValidationError(err))
}

func TestReserveRejectsInactiveCustomer(t *testing.T) {
	f := newFixture(t)
	car := f.addCar(t, "Clio", 45)
	_, err := f.customers.Create(f.ctx, models.Customer{
		FullName: "Deniz Aksoy",
		Email:    "deniz@example.com",
		Status:   models.CustomerInactive,
	})
	require.NoError(t, err)

	_, err = f.reservations.Reserve(f.ctx, reservationRequest(car.ID))
	assert.True(t, IsValidationError(err))
	assert.True(t, f.available(t, car.ID))
	assert.Equal(t, 0, f.mem.Count(database.CollectionBookings))
}

func TestReserveRejectsUnknownExtra(t *testing.T) {
	f := newFixture(t)
	car := f.addCar(t, "Clio", 45)

	req := reservationRequest(car.ID)
	req.ExtraIDs = []string{"99"}
	_, err := f.reservations.Reserve(f.ctx, req)
	assert.True(t, IsValidationError(err))
	assert.Equal(t, 0, f.mem.Count(database.CollectionCustomers))
}

func TestQuote(t *testing.T) {
	f := newFixture(t)
	car := f.addCar(t, "X5", 180)

	q, err := f.reservations.Quote(f.ctx, car.ID, "2024-07-01", "2024-07-01", nil, "")
	require.NoError(t, err)
	assert.Equal(t, 1, q.Days)
	assert.Equal(t, 180, q.TotalAmount)
	assert.Equal(t, 0, f.mem.Count(database.CollectionBookings))

	_, err = f.reservations.Quote(f.ctx, "ghost", "2024-07-01", "2024-07-02", nil, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDashboardStats(t *testing.T) {
	f := newFixture(t)
	f.stats.now = func() time.Time { return time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC) }

	f.customers.today = func() string { return "2024-04-30" }
	f.addCustomer(t, "Old", "old@example.com", models.CustomerActive)
	f.customers.today = func() string { return "2024-05-02" }
	f.addCustomer(t, "New", "new@example.com", models.CustomerActive)

	a := f.addCar(t, "A", 100)
	b := f.addCar(t, "B", 100)
	f.addCar(t, "C", 100)

	mk := func(carID string, status models.BookingStatus, total int) {
		bk := newBooking(carID, status)
		bk.TotalAmount = total
		_, err := f.bookings.Create(f.ctx, bk)
		require.NoError(t, err)
	}
	mk(a.ID, models.BookingActive, 300)
	mk(b.ID, models.BookingCompleted, 200)
	mk(b.ID, models.BookingCancelled, 1000)

	stats, err := f.stats.Dashboard(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalBookings)
	assert.Equal(t, 500, stats.Revenue)
	assert.Equal(t, 1, stats.NewCustomers)
	assert.Equal(t, 1, stats.AvailableCars)
}
