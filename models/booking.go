package models

// BookingStatus 訂單狀態
type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingActive    BookingStatus = "Active"
	BookingCompleted BookingStatus = "Completed"
	BookingCancelled BookingStatus = "Cancelled"
)

// OccupyingStatuses 會佔用車輛的訂單狀態
var OccupyingStatuses = []BookingStatus{BookingPending, BookingActive}

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingActive, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// IsTerminal 已結束的訂單（Completed、Cancelled）不再佔用車輛
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// Occupies 是否佔用車輛
func (s BookingStatus) Occupies() bool {
	return s == BookingPending || s == BookingActive
}

// BookingExtra 加購項目
type BookingExtra struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Selected bool   `json:"selected"`
}

// InsurancePackage 保險方案
type InsurancePackage struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    int      `json:"price"`
	Coverage []string `json:"coverage"`
}

// Booking 訂單
// CustomerName、CarName、CarPlate 是建立時的快照；Customer、Car 是讀取時關聯的即時資料，可能為 nil
type Booking struct {
	ID             string            `json:"id"`
	CustomerID     string            `json:"customerId"`
	CustomerName   string            `json:"customerName"`
	CarID          string            `json:"carId" binding:"required"`
	CarName        string            `json:"carName"`
	CarPlate       string            `json:"carPlate"`
	PickupDate     string            `json:"pickupDate" binding:"required,isodate"`
	ReturnDate     string            `json:"returnDate" binding:"required,isodate"`
	PickupTime     string            `json:"pickupTime"`
	ReturnTime     string            `json:"returnTime"`
	PickupLocation string            `json:"pickupLocation"`
	ReturnLocation string            `json:"returnLocation"`
	Status         BookingStatus     `json:"status" binding:"omitempty,bookingstatus"`
	TotalAmount    int               `json:"totalAmount" binding:"gte=0"`
	Extras         []BookingExtra    `json:"extras"`
	Insurance      *InsurancePackage `json:"insurance"`
	CreatedAt      string            `json:"createdAt,omitempty"`

	Car      *Car      `json:"car,omitempty" binding:"-"`
	Customer *Customer `json:"customer,omitempty" binding:"-"`
}

// SelectedExtras 回傳已勾選的加購項目
func (b *Booking) SelectedExtras() []BookingExtra {
	selected := make([]BookingExtra, 0, len(b.Extras))
	for _, e := range b.Extras {
		if e.Selected {
			selected = append(selected, e)
		}
	}
	return selected
}
