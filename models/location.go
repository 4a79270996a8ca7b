package models

// LocationStatus 據點狀態
type LocationStatus string

const (
	LocationActive   LocationStatus = "Active"
	LocationInactive LocationStatus = "Inactive"
)

func (s LocationStatus) IsValid() bool {
	return s == LocationActive || s == LocationInactive
}

// Location 取還車據點
type Location struct {
	ID           string         `json:"id"`
	Name         string         `json:"name" binding:"required"`
	Address      string         `json:"address" binding:"required"`
	City         string         `json:"city" binding:"required"`
	Phone        string         `json:"phone"`
	WorkingHours string         `json:"workingHours"`
	Status       LocationStatus `json:"status" binding:"omitempty,locationstatus"`
	Email        string         `json:"email" binding:"omitempty,email"`
	Manager      string         `json:"manager"`
	Capacity     int            `json:"capacity" binding:"gte=0"`
	CreatedAt    string         `json:"createdAt,omitempty"`
	UpdatedAt    string         `json:"updatedAt,omitempty"`
}
