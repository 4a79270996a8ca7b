package services

import (
	"context"
	"fmt"
	"strings"

	"carrental/models"

	"go.uber.org/zap"
)

// ReservationRequest 前台訂車表單
type ReservationRequest struct {
	CarID          string   `json:"carId" binding:"required"`
	PickupDate     string   `json:"pickupDate" binding:"required,isodate"`
	ReturnDate     string   `json:"returnDate" binding:"required,isodate"`
	PickupTime     string   `json:"pickupTime"`
	ReturnTime     string   `json:"returnTime"`
	PickupLocation string   `json:"pickupLocation"`
	ReturnLocation string   `json:"returnLocation"`
	ExtraIDs       []string `json:"extras"`
	InsuranceID    string   `json:"insurance"`

	FullName            string `json:"fullName" binding:"required"`
	Email               string `json:"email" binding:"required,email"`
	Phone               string `json:"phone" binding:"required"`
	NationalID          string `json:"nationalId"`
	DateOfBirth         string `json:"dateOfBirth" binding:"omitempty,isodate"`
	DriverLicenseNumber string `json:"driverLicenseNumber"`
	DriverLicenseExpiry string `json:"driverLicenseExpiry" binding:"omitempty,isodate"`
	Address             string `json:"address"`
}

// ReservationResult 訂車結果
type ReservationResult struct {
	*BookingResult
	Customer        *models.Customer `json:"customer"`
	CustomerCreated bool             `json:"customerCreated"`
	Quote           *Quote           `json:"quote"`
}

// customerDirectory 訂車流程需要的客戶查詢與建立
type customerDirectory interface {
	FindByEmail(ctx context.Context, email string) (*models.Customer, error)
	FindByNationalID(ctx context.Context, nationalID string) (*models.Customer, error)
	FindByPhone(ctx context.Context, phone string) (*models.Customer, error)
	Create(ctx context.Context, customer models.Customer) (*models.Customer, error)
}

type carGetter interface {
	GetByID(ctx context.Context, id string) (*models.Car, error)
}

// ReservationService 前台訪客訂車流程：選車 -> 加購/保險 -> 客戶資料
type ReservationService struct {
	cars      carGetter
	customers customerDirectory
	bookings  *BookingService
	logger    *zap.Logger
}

// NewReservationService 建立 ReservationService
func NewReservationService(cars carGetter, customers customerDirectory, bookings *BookingService, logger *zap.Logger) *ReservationService {
	return &ReservationService{cars: cars, customers: customers, bookings: bookings, logger: logger}
}

// Quote 只計算報價，不寫入資料
func (s *ReservationService) Quote(ctx context.Context, carID, pickupDate, returnDate string, extraIDs []string, insuranceID string) (*Quote, error) {
	car, err := s.cars.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	return BuildQuote(car, pickupDate, returnDate, extraIDs, insuranceID)
}

// Reserve 建立 Pending 訂單；客戶依 email、身分證號、電話依序查找，找不到時建立新客戶
func (s *ReservationService) Reserve(ctx context.Context, req ReservationRequest) (*ReservationResult, error) {
	car, err := s.cars.GetByID(ctx, req.CarID)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, newValidationError("carId", "car %s does not exist", req.CarID)
		}
		return nil, err
	}
	if !car.Available {
		return nil, newValidationError("carId", "car %s is not available", req.CarID)
	}

	quote, err := BuildQuote(car, req.PickupDate, req.ReturnDate, req.ExtraIDs, req.InsuranceID)
	if err != nil {
		return nil, err
	}

	customer, created, err := s.resolveCustomer(ctx, req)
	if err != nil {
		return nil, err
	}

	booking := models.Booking{
		CustomerName:   customer.FullName,
		CarID:          car.ID,
		CarName:        car.Name,
		CarPlate:       car.PlateNumber,
		PickupDate:     req.PickupDate,
		ReturnDate:     req.ReturnDate,
		PickupTime:     req.PickupTime,
		ReturnTime:     req.ReturnTime,
		PickupLocation: req.PickupLocation,
		ReturnLocation: req.ReturnLocation,
		Status:         models.BookingPending,
		TotalAmount:    quote.TotalAmount,
		Extras:         quote.Extras,
		Insurance:      quote.Insurance,
	}

	result, err := s.bookings.CreateWithCustomerValidation(ctx, booking, customer.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Reservation created",
		zap.String("booking_id", result.Booking.ID),
		zap.String("car_id", car.ID),
		zap.String("customer_id", customer.ID),
		zap.Bool("customer_created", created),
		zap.Int("total_amount", quote.TotalAmount))

	return &ReservationResult{
		BookingResult:   result,
		Customer:        customer,
		CustomerCreated: created,
		Quote:           quote,
	}, nil
}

func (s *ReservationService) resolveCustomer(ctx context.Context, req ReservationRequest) (*models.Customer, bool, error) {
	lookups := []struct {
		value string
		find  func(context.Context, string) (*models.Customer, error)
	}{
		{strings.TrimSpace(req.Email), s.customers.FindByEmail},
		{strings.TrimSpace(req.NationalID), s.customers.FindByNationalID},
		{strings.TrimSpace(req.Phone), s.customers.FindByPhone},
	}
	for _, l := range lookups {
		if l.value == "" {
			continue
		}
		customer, err := l.find(ctx, l.value)
		if err != nil {
			return nil, false, fmt.Errorf("failed to look up customer: %w", err)
		}
		if customer != nil {
			return customer, false, nil
		}
	}

	customer, err := s.customers.Create(ctx, models.Customer{
		FullName:            strings.TrimSpace(req.FullName),
		Email:               strings.TrimSpace(req.Email),
		Phone:               strings.TrimSpace(req.Phone),
		NationalID:          strings.TrimSpace(req.NationalID),
		DateOfBirth:         req.DateOfBirth,
		DriverLicenseNumber: req.DriverLicenseNumber,
		DriverLicenseExpiry: req.DriverLicenseExpiry,
		Address:             req.Address,
		Status:              models.CustomerActive,
	})
	if err != nil {
		return nil, false, err
	}
	return customer, true, nil
}
