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

var customerSearchFields = []string{"full_name", "email", "phone"}

// 建立後由系統維護的欄位，更新客戶資料時不會寫入
var customerSystemColumns = []string{"registration_date", "number_of_bookings", "last_booking_date"}

// CustomerService 客戶資料存取
type CustomerService struct {
	store  database.Client
	logger *zap.Logger
	today  func() string
}

// NewCustomerService 建立 CustomerService
func NewCustomerService(store database.Client, logger *zap.Logger) *CustomerService {
	return &CustomerService{store: store, logger: logger, today: utils.Today}
}

func (s *CustomerService) query(ctx context.Context, filters []database.Filter, anyOf []database.Filter) ([]models.Customer, error) {
	records, err := s.store.Select(ctx, database.Query{
		Collection: database.CollectionCustomers,
		Filters:    filters,
		AnyOf:      anyOf,
		OrderBy:    "created_at",
		Descending: true,
	})
	if err != nil {
		s.logger.Error("Failed to query customers", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch customers: %w", err)
	}
	return fromRecords[models.Customer](records)
}

// List 取得所有客戶（新到舊）
func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	return s.query(ctx, nil, nil)
}

// GetByID 取得單一客戶，不存在時回傳 ErrNotFound
func (s *CustomerService) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	customer, err := s.findOne(ctx, "id", id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, notFound("customer", id)
	}
	return customer, nil
}

// Create 新增客戶，註冊日為今天、訂單數為 0
func (s *CustomerService) Create(ctx context.Context, customer models.Customer) (*models.Customer, error) {
	if err := validateCustomer(&customer); err != nil {
		return nil, err
	}
	if customer.Status == "" {
		customer.Status = models.CustomerActive
	}

	rec, err := toRecord(customer)
	if err != nil {
		return nil, err
	}
	rec["registration_date"] = s.today()
	rec["number_of_bookings"] = 0
	delete(rec, "last_booking_date")

	inserted, err := s.store.Insert(ctx, database.CollectionCustomers, rec)
	if err != nil {
		s.logger.Error("Failed to create customer", zap.String("email", customer.Email), zap.Error(err))
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	var created models.Customer
	if err := fromRecord(inserted, &created); err != nil {
		return nil, err
	}
	s.logger.Info("Customer created", zap.String("customer_id", created.ID))
	return &created, nil
}

// Update 更新客戶資料，不會變更註冊日與訂單統計
func (s *CustomerService) Update(ctx context.Context, id string, customer models.Customer) (*models.Customer, error) {
	if err := validateCustomer(&customer); err != nil {
		return nil, err
	}

	rec, err := toRecord(customer)
	if err != nil {
		return nil, err
	}
	for _, col := range customerSystemColumns {
		delete(rec, col)
	}
	if customer.Status == "" {
		delete(rec, "status")
	}

	stored, err := s.store.Update(ctx, database.CollectionCustomers, id, rec)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, notFound("customer", id)
		}
		return nil, fmt.Errorf("failed to update customer %s: %w", id, err)
	}

	var updated models.Customer
	if err := fromRecord(stored, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete 刪除客戶，既有訂單的客戶關聯會變成 nil
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, database.CollectionCustomers, id); err != nil {
		return fmt.Errorf("failed to delete customer %s: %w", id, err)
	}
	s.logger.Info("Customer deleted", zap.String("customer_id", id))
	return nil
}

// Search 以姓名、email、電話模糊搜尋
func (s *CustomerService) Search(ctx context.Context, term string) ([]models.Customer, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.List(ctx)
	}
	return s.query(ctx, nil, database.AnyILike(term, customerSearchFields...))
}

// FilterByStatus 依狀態篩選
func (s *CustomerService) FilterByStatus(ctx context.Context, status models.CustomerStatus) ([]models.Customer, error) {
	return s.query(ctx, []database.Filter{database.Eq("status", string(status))}, nil)
}

// FindByEmail 找不到時回傳 nil, nil
func (s *CustomerService) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return s.findOne(ctx, "email", email)
}

// FindByNationalID 找不到時回傳 nil, nil
func (s *CustomerService) FindByNationalID(ctx context.Context, nationalID string) (*models.Customer, error) {
	return s.findOne(ctx, "national_id", nationalID)
}

// FindByPhone 找不到時回傳 nil, nil
func (s *CustomerService) FindByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	return s.findOne(ctx, "phone", phone)
}

func (s *CustomerService) findOne(ctx context.Context, field, value string) (*models.Customer, error) {
	records, err := s.store.Select(ctx, database.Query{
		Collection: database.CollectionCustomers,
		Filters:    []database.Filter{database.Eq(field, value)},
		Limit:      1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find customer by %s: %w", field, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var customer models.Customer
	if err := fromRecord(records[0], &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func validateCustomer(c *models.Customer) error {
	if strings.TrimSpace(c.FullName) == "" {
		return newValidationError("fullName", "is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		return newValidationError("email", "is required")
	}
	if c.Status != "" && !c.Status.IsValid() {
		return newValidationError("status", "invalid status %q", c.Status)
	}
	for field, value := range map[string]string{
		"dateOfBirth":         c.DateOfBirth,
		"driverLicenseExpiry": c.DriverLicenseExpiry,
	} {
		if value != "" && !utils.IsDate(value) {
			return newValidationError(field, "must be a YYYY-MM-DD date")
		}
	}
	return nil
}
