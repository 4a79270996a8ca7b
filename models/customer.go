package models

// CustomerStatus 客戶狀態
type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "Active"
	CustomerInactive CustomerStatus = "Inactive"
)

func (s CustomerStatus) IsValid() bool {
	return s == CustomerActive || s == CustomerInactive
}

// Customer 客戶資料
// RegistrationDate、NumberOfBookings、LastBookingDate 只在建立時設定，更新時不會寫入
type Customer struct {
	ID                  string         `json:"id"`
	FullName            string         `json:"fullName" binding:"required"`
	Email               string         `json:"email" binding:"required,email"`
	Phone               string         `json:"phone" binding:"required"`
	DateOfBirth         string         `json:"dateOfBirth" binding:"omitempty,isodate"`
	NationalID          string         `json:"nationalId"`
	DriverLicenseNumber string         `json:"driverLicenseNumber"`
	DriverLicenseExpiry string         `json:"driverLicenseExpiry" binding:"omitempty,isodate"`
	Address             string         `json:"address"`
	Notes               string         `json:"notes"`
	Status              CustomerStatus `json:"status" binding:"omitempty,customerstatus"`
	RegistrationDate    string         `json:"registrationDate,omitempty"`
	NumberOfBookings    int            `json:"numberOfBookings"`
	LastBookingDate     string         `json:"lastBookingDate,omitempty"`
	CreatedAt           string         `json:"createdAt,omitempty"`
}

// IsActive 客戶是否可以建立訂單
func (c *Customer) IsActive() bool {
	return c.Status == CustomerActive
}
