package services

import (
	"context"
	"strings"
	"time"

	"carrental/models"

	"go.uber.org/zap"
)

// DashboardStats 後台首頁統計
type DashboardStats struct {
	TotalBookings int `json:"totalBookings"`
	Revenue       int `json:"revenue"`
	NewCustomers  int `json:"newCustomers"`
	AvailableCars int `json:"availableCars"`
}

// StatsService 後台統計
type StatsService struct {
	cars      *CarService
	customers *CustomerService
	bookings  *BookingService
	logger    *zap.Logger
	now       func() time.Time
}

// NewStatsService 建立 StatsService
func NewStatsService(cars *CarService, customers *CustomerService, bookings *BookingService, logger *zap.Logger) *StatsService {
	return &StatsService{cars: cars, customers: customers, bookings: bookings, logger: logger, now: time.Now}
}

// Dashboard 計算訂單數、營收（不含取消）、本月新客戶、可租車輛
func (s *StatsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, err
	}
	available, err := s.cars.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalBookings: len(bookings),
		AvailableCars: len(available),
	}
	for _, b := range bookings {
		if b.Status != models.BookingCancelled {
			stats.Revenue += b.TotalAmount
		}
	}

	month := s.now().Format("2006-01")
	for _, c := range customers {
		if strings.HasPrefix(c.RegistrationDate, month) {
			stats.NewCustomers++
		}
	}

	s.logger.Debug("Dashboard stats computed",
		zap.Int("total_bookings", stats.TotalBookings),
		zap.Int("revenue", stats.Revenue))
	return stats, nil
}
