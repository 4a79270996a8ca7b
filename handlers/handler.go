package handlers

import (
	"carrental/services"

	"go.uber.org/zap"
)

// Handler 持有各個 service，所有 HTTP handler 都掛在它上面
type Handler struct {
	Cars         *services.CarService
	Customers    *services.CustomerService
	Bookings     *services.BookingService
	Locations    *services.LocationService
	Availability *services.AvailabilitySync
	Reservations *services.ReservationService
	Stats        *services.StatsService
	Logger       *zap.Logger
}
