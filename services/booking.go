package services

import (
	"context"
	"fmt"
	"strings"

	"carrental/database"
	"carrental/models"
	"carrental/utils"

	"go.uber.org/zap"
)

var bookingSearchFields = []string{"customer_name", "car_name", "car_plate"}

var bookingJoins = []database.Join{
	{Collection: database.CollectionCars, LocalKey: "car_id", As: "car"},
	{Collection: database.CollectionCustomers, LocalKey: "customer_id", As: "customer"},
}

// availabilitySetter 訂單寫入後同步車輛可用性
type availabilitySetter interface {
	SetCarAvailability(ctx context.Context, carID string, booked bool) SideEffect
}

// customerGetter 建立訂單前驗證客戶
type customerGetter interface {
	GetByID(ctx context.Context, id string) (*models.Customer, error)
}

// BookingResult 訂單寫入結果與車輛可用性同步結果
type BookingResult struct {
	Booking     *models.Booking `json:"booking,omitempty"`
	SideEffects []SideEffect    `json:"sideEffects"`
}

// SideEffectsOK 所有車輛可用性同步是否成功
func (r *BookingResult) SideEffectsOK() bool {
	for _, e := range r.SideEffects {
		if !e.OK() {
			return false
		}
	}
	return true
}

// BookingService 訂單資料存取；每次寫入後同步車輛可用性
type BookingService struct {
	store        database.Client
	customers    customerGetter
	availability availabilitySetter
	logger       *zap.Logger
}

// NewBookingService 建立 BookingService
func NewBookingService(store database.Client, customers customerGetter, availability availabilitySetter, logger *zap.Logger) *BookingService {
	return &BookingService{
		store:        store,
		customers:    customers,
		availability: availability,
		logger:       logger,
	}
}

func (s *BookingService) query(ctx context.Context, filters []database.Filter, anyOf []database.Filter) ([]models.Booking, error) {
	records, err := s.store.Select(ctx, database.Query{
		Collection: database.CollectionBookings,
		Filters:    filters,
		AnyOf:      anyOf,
		Joins:      bookingJoins,
		OrderBy:    "created_at",
		Descending: true,
	})
	if err != nil {
		s.logger.Error("Failed to query bookings", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	return fromRecords[models.Booking](records)
}

// List 取得所有訂單（含車輛、客戶關聯資料）
func (s *BookingService) List(ctx context.Context) ([]models.Booking, error) {
	return s.query(ctx, nil, nil)
}

// GetByID 取得單一訂單，不存在時回傳 ErrNotFound
func (s *BookingService) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	records, err := s.store.Select(ctx, database.Query{
		Collection: database.CollectionBookings,
		Filters:    []database.Filter{database.Eq("id", id)},
		Joins:      bookingJoins,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	if len(records) == 0 {
		return nil, notFound("booking", id)
	}

	var booking models.Booking
	if err := fromRecord(records[0], &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// Create 新增訂單，成功後將車輛標記為已預訂（不論訂單狀態）
func (s *BookingService) Create(ctx context.Context, booking models.Booking) (*BookingResult, error) {
	if err := ValidateBooking(&booking); err != nil {
		return nil, err
	}

	rec, err := toRecord(booking)
	if err != nil {
		return nil, err
	}
	inserted, err := s.store.Insert(ctx, database.CollectionBookings, rec)
	if err != nil {
		s.logger.Error("Failed to create booking", zap.String("car_id", booking.CarID), zap.Error(err))
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	var created models.Booking
	if err := fromRecord(inserted, &created); err != nil {
		return nil, err
	}
	s.logger.Info("Booking created",
		zap.String("booking_id", created.ID),
		zap.String("car_id", created.CarID),
		zap.String("status", string(created.Status)))

	result := &BookingResult{Booking: &created}
	result.SideEffects = append(result.SideEffects, s.availability.SetCarAvailability(ctx, created.CarID, true))
	return result, nil
}

// CreateWithCustomerValidation 指定客戶時，客戶必須存在且為 Active 才會建立訂單
func (s *BookingService) CreateWithCustomerValidation(ctx context.Context, booking models.Booking, customerID string) (*BookingResult, error) {
	if customerID != "" {
		customer, err := s.customers.GetByID(ctx, customerID)
		if err != nil {
			if IsNotFoundError(err) {
				return nil, newValidationError("customerId", "customer %s does not exist", customerID)
			}
			return nil, fmt.Errorf("failed to validate customer %s: %w", customerID, err)
		}
		if !customer.IsActive() {
			return nil, newValidationError("customerId", "customer %s is not active", customerID)
		}
		booking.CustomerID = customer.ID
		if booking.CustomerName == "" {
			booking.CustomerName = customer.FullName
		}
	}
	return s.Create(ctx, booking)
}

// Update 以完整資料覆寫訂單，並依車輛或狀態變化同步可用性
func (s *BookingService) Update(ctx context.Context, id string, booking models.Booking) (*BookingResult, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ValidateBooking(&booking); err != nil {
		return nil, err
	}

	rec, err := toRecord(booking)
	if err != nil {
		return nil, err
	}
	stored, err := s.store.Update(ctx, database.CollectionBookings, id, rec)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, notFound("booking", id)
		}
		return nil, fmt.Errorf("failed to update booking %s: %w", id, err)
	}

	var updated models.Booking
	if err := fromRecord(stored, &updated); err != nil {
		return nil, err
	}

	result := &BookingResult{Booking: &updated}
	if current.CarID != updated.CarID {
		s.logger.Info("Booking reassigned to another car",
			zap.String("booking_id", id),
			zap.String("from_car_id", current.CarID),
			zap.String("to_car_id", updated.CarID))
		result.SideEffects = append(result.SideEffects,
			s.availability.SetCarAvailability(ctx, current.CarID, false),
			s.availability.SetCarAvailability(ctx, updated.CarID, true))
	} else {
		booked := !updated.Status.IsTerminal()
		result.SideEffects = append(result.SideEffects, s.availability.SetCarAvailability(ctx, updated.CarID, booked))
	}
	return result, nil
}

// Delete 刪除訂單並釋放車輛
func (s *BookingService) Delete(ctx context.Context, id string) (*BookingResult, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, database.CollectionBookings, id); err != nil {
		return nil, fmt.Errorf("failed to delete booking %s: %w", id, err)
	}
	s.logger.Info("Booking deleted", zap.String("booking_id", id), zap.String("car_id", current.CarID))

	result := &BookingResult{Booking: current}
	result.SideEffects = append(result.SideEffects, s.availability.SetCarAvailability(ctx, current.CarID, false))
	return result, nil
}

// Search 以客戶名稱、車名、車牌模糊搜尋
func (s *BookingService) Search(ctx context.Context, term string) ([]models.Booking, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.List(ctx)
	}
	return s.query(ctx, nil, database.AnyILike(term, bookingSearchFields...))
}

// FilterByStatus 依狀態篩選
func (s *BookingService) FilterByStatus(ctx context.Context, status models.BookingStatus) ([]models.Booking, error) {
	return s.query(ctx, []database.Filter{database.Eq("status", string(status))}, nil)
}

// FilterByPickupDateRange 取車日介於 from 與 to 之間（含兩端）
func (s *BookingService) FilterByPickupDateRange(ctx context.Context, from, to string) ([]models.Booking, error) {
	if !utils.IsDate(from) {
		return nil, newValidationError("from", "must be a YYYY-MM-DD date")
	}
	if !utils.IsDate(to) {
		return nil, newValidationError("to", "must be a YYYY-MM-DD date")
	}
	return s.query(ctx, []database.Filter{
		database.Gte("pickup_date", from),
		database.Lte("pickup_date", to),
	}, nil)
}

// ValidateBooking 檢查訂單狀態與日期
func ValidateBooking(b *models.Booking) error {
	if strings.TrimSpace(b.CarID) == "" {
		return newValidationError("carId", "is required")
	}
	if b.Status == "" {
		b.Status = models.BookingPending
	}
	if !b.Status.IsValid() {
		return newValidationError("status", "invalid status %q", b.Status)
	}

	pickup, err := utils.ParseDate(b.PickupDate)
	if err != nil {
		return newValidationError("pickupDate", "must be a YYYY-MM-DD date")
	}
	ret, err := utils.ParseDate(b.ReturnDate)
	if err != nil {
		return newValidationError("returnDate", "must be a YYYY-MM-DD date")
	}
	if !ret.After(pickup) {
		return newValidationError("returnDate", "must be after pickup date")
	}
	if b.TotalAmount < 0 {
		return newValidationError("totalAmount", "must not be negative")
	}
	return nil
}
