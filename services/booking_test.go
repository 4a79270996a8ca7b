package services

import (
	"errors"
	"testing"

	"carrental/database"
	"carrental/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingReassignmentMovesOccupancy(t *testing.T) {
	f := newFixture(t)
	oldCar := f.addCar(t, "Old", 50)
	newCar := f.addCar(t, "New", 70)
	booking := f.book(t, oldCar.ID, models.BookingActive)

	moved := *booking
	moved.CarID = newCar.ID
	result, err := f.bookings.Update(f.ctx, booking.ID, moved)
	require.NoError(t, err)

	require.Len(t, result.SideEffects, 2)
	assert.Equal(t, SideEffect{CarID: oldCar.ID, Booked: false}, result.SideEffects[0])
	assert.Equal(t, SideEffect{CarID: newCar.ID, Booked: true}, result.SideEffects[1])
	assert.True(t, f.available(t, oldCar.ID))
	assert.False(t, f.available(t, newCar.ID))
	assert.Equal(t, newCar.ID, result.Booking.CarID)
}

func TestBookingTerminalStatusReleasesCar(t *testing.T) {
	for _, status := range []models.BookingStatus{models.BookingCompleted, models.BookingCancelled} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture(t)
			car := f.addCar(t, "Car", 50)
			booking := f.book(t, car.ID, models.BookingPending)

			closed := *booking
			closed.Status = status
			result, err := f.bookings.Update(f.ctx, booking.ID, closed)
			require.NoError(t, err)
			assert.Equal(t, []SideEffect{{CarID: car.ID, Booked: false}}, result.SideEffects)
			assert.True(t, f.available(t, car.ID))

			// 重新開啟會再次佔用
			reopened := closed
			reopened.Status = models.BookingActive
			_, err = f.bookings.Update(f.ctx, booking.ID, reopened)
			require.NoError(t, err)
			assert.False(t, f.available(t, car.ID))
		})
	}
}

func TestBookingDeleteReleasesCar(t *testing.T) {
	f := newFixture(t)
	car := f.addCar(t, "Car", 50)
	booking := f.book(t, car.ID, models.BookingActive)

	result, err := f.bookings.Delete(f.ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, result.Booking.ID)
	assert.Equal(t, []SideEffect{{CarID: car.ID, Booked: false}}, result.SideEffects)
	assert.True(t, f.available(t, car.ID))
	assert.Equal(t, 0, f.mem.Count(database.CollectionBookings))

	_, err = f.bookings.GetByID(f.ctx, booking.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingUpdateOfMissingBooking(t *testing.T) {
	f := newFixture(t)
	car := f.addCar(t, "Car", 50)

	result, err := f.bookings.Update(f.ctx, "missing", newBooking(car.ID, models.BookingActive))
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, f.available(t, car.ID), "no side effect without a booking")
	assert.Equal(t, 0, f.mem.Count(database.CollectionBookings))

	_, err = f.bookings.Delete(f.ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingGetByIDNotFound(t *testing.T) {
	f := newFixture(t)
	booking, err := f.bookings.GetByID(f.ctx, "nope")
	assert.Nil(t, booking)
	assert.True(t, IsNotFoundError(err))
}

func TestBookingValidation(t *testing.T) {
	f := newFixture(t)
	car := f.addCar(t, "Car", 50)

	tests := []struct {
		name   string
		modify func(b *models.Booking)
		field  string
	}{
		{"missing car", func(b *models.Booking) { b.CarID = "" }, "carId"},
		{"bad status", func(b *models.Booking) { b.Status = "Lost" }, "status"},
		{"bad pickup", func(b *models.Booking) { b.PickupDate = "07/01/2024" }, "pickupDate"},
		{"bad return", func(b *models.Booking) { b.ReturnDate = "" }, "returnDate"},
		{"return before pickup", func(b *models.Booking) { b.ReturnDate = "2024-06-30" }, "returnDate"},
		{"same day return", func(b *models.Booking) { b.ReturnDate = b.PickupDate }, "returnDate"},
		{"negative total", func(b *models.Booking) { b.TotalAmount = -1 }, "totalAmount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBooking(car.ID, models.BookingPending)
			tt.modify(&b)
			_, err := f.bookings.Create(f.ctx, b)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
	assert.Equal(t, 0, f.mem.Count(database.CollectionBookings))
	assert.True(t, f.available(t, car.ID))
}

func TestBookingDefaultsToPending(t *testing.T) {
	f := newFixture(t)
	car := f.addCar(t, "Car", 50)

	result, err := f.bookings.Create(f.ctx, newBooking(car.ID, ""))
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, result.Booking.Status)
}

func TestBookingStoreFailurePropagates(t *testing.T) {
	f := newFixture(t)
	car := f.addCar(t, "Car", 50)
	f.store.failInsert(database.CollectionBookings, errors.New("disk full"))

	result, err := f.bookings.Create(f.ctx, newBooking(car.ID, models.BookingPending))
	assert.Nil(t, result)
	assert.ErrorContains(t, err, "disk full")
	assert.True(t, f.available(t, car.ID))
}

func TestBookingJoinsCarAndCustomer(t *testing.T) {
	f := newFixture(t)
	car := f.addCar(t, "X5", 180)
	customer := f.addCustomer(t, "Ayşe", "ayse@example.com", models.CustomerActive)

	b := newBooking(car.ID, models.BookingPending)
	b.CustomerID = customer.ID
	b.Extras = []models.BookingExtra{{ID: "gps", Name: "GPS Navigation", Price: 15, Selected: true}}
	b.Insurance = &models.InsurancePackage{ID: "basic", Name: "Basic", Price: 0, Coverage: []string{"Third party"}}
	created, err := f.bookings.Create(f.ctx, b)
	require.NoError(t, err)

	got, err := f.bookings.GetByID(f.ctx, created.Booking.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Car)
	assert.Equal(t, "X5", got.Car.Name)
	assert.Equal(t, 180, got.Car.PricePerDay)
	require.NotNil(t, got.Customer)
	assert.Equal(t, "Ayşe", got.Customer.FullName)
	assert.Equal(t, b.Extras, got.Extras)
	assert.Equal(t, b.Insurance, got.Insurance)

	require.NoError(t, f.customers.Delete(f.ctx, customer.ID))
	got, err = f.bookings.GetByID(f.ctx, created.Booking.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Customer)
	assert.NotNil(t, got.Car)
}

func TestCreateWithCustomerValidation(t *testing.T) {
	f := newFixture(t)
	car := f.addCar(t, "Car", 50)
	active := f.addCustomer(t, "Active", "active@example.com", models.CustomerActive)
	inactive := f.addCustomer(t, "Inactive", "inactive@example.com", models.CustomerInactive)

	t.Run("missing customer", func(t *testing.T) {
		_, err := f.bookings.CreateWithCustomerValidation(f.ctx, newBooking(car.ID, models.BookingPending), "ghost")
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "customerId", ve.Field)
		assert.Contains(t, ve.Message, "does not exist")
	})

	t.Run("inactive customer", func(t *testing.T) {
		_, err := f.bookings.CreateWithCustomerValidation(f.ctx, newBooking(car.ID, models.BookingPending), inactive.ID)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Message, "not active")
	})

	assert.Equal(t, 0, f.mem.Count(database.CollectionBookings))
	assert.True(t, f.available(t, car.ID))

	t.Run("active customer", func(t *testing.T) {
		b := newBooking(car.ID, models.BookingPending)
		b.CustomerName = ""
		result, err := f.bookings.CreateWithCustomerValidation(f.ctx, b, active.ID)
		require.NoError(t, err)
		assert.Equal(t, active.ID, result.Booking.CustomerID)
		assert.Equal(t, "Active", result.Booking.CustomerName)
		assert.False(t, f.available(t, car.ID))
	})

	t.Run("no customer given", func(t *testing.T) {
		other := f.addCar(t, "Other", 50)
		result, err := f.bookings.CreateWithCustomerValidation(f.ctx, newBooking(other.ID, models.BookingPending), "")
		require.NoError(t, err)
		assert.Empty(t, result.Booking.CustomerID)
	})

	t.Run("store failure", func(t *testing.T) {
		f.store.failSelect(database.CollectionCustomers, errors.New("timeout"))
		defer f.store.failSelect(database.CollectionCustomers, nil)

		_, err := f.bookings.CreateWithCustomerValidation(f.ctx, newBooking(car.ID, models.BookingPending), active.ID)
		require.Error(t, err)
		assert.False(t, IsValidationError(err))
		assert.ErrorContains(t, err, "timeout")
	})
}

func TestBookingSearchAndFilters(t *testing.T) {
	f := newFixture(t)
	car := f.addCar(t, "Car", 50)

	mk := func(customer, plate, pickup string, status models.BookingStatus) {
		b := newBooking(car.ID, status)
		b.CustomerName = customer
		b.CarPlate = plate
		b.PickupDate = pickup
		b.ReturnDate = "2024-09-01"
		_, err := f.bookings.Create(f.ctx, b)
		require.NoError(t, err)
	}
	mk("Mehmet Yılmaz", "GR 101", "2024-07-01", models.BookingPending)
	mk("Elif Kaya", "LF 202", "2024-07-10", models.BookingCompleted)
	mk("Can Demir", "GR 303", "2024-08-01", models.BookingCancelled)

	found, err := f.bookings.Search(f.ctx, "kaya")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Elif Kaya", found[0].CustomerName)

	found, err = f.bookings.Search(f.ctx, "gr ")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	all, err := f.bookings.Search(f.ctx, "  ")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "Can Demir", all[0].CustomerName, "newest first")

	completed, err := f.bookings.FilterByStatus(f.ctx, models.BookingCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "Elif Kaya", completed[0].CustomerName)

	july, err := f.bookings.FilterByPickupDateRange(f.ctx, "2024-07-01", "2024-07-10")
	require.NoError(t, err)
	assert.Len(t, july, 2)

	_, err = f.bookings.FilterByPickupDateRange(f.ctx, "July", "2024-07-10")
	assert.True(t, IsValidationError(err))
}
