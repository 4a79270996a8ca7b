package models

// CarCategory 車輛類別
type CarCategory string

const (
	CategoryEconomy CarCategory = "Economy"
	CategorySports  CarCategory = "Sports"
	CategorySUV     CarCategory = "SUV"
	CategoryLuxury  CarCategory = "Luxury"
)

// IsValid 檢查類別是否合法
func (c CarCategory) IsValid() bool {
	switch c {
	case CategoryEconomy, CategorySports, CategorySUV, CategoryLuxury:
		return true
	}
	return false
}

// Transmission 變速箱
type Transmission string

const (
	TransmissionAutomatic Transmission = "Automatic"
	TransmissionManual    Transmission = "Manual"
)

func (t Transmission) IsValid() bool {
	return t == TransmissionAutomatic || t == TransmissionManual
}

// FuelType 燃料種類
type FuelType string

const (
	FuelPetrol   FuelType = "Petrol"
	FuelDiesel   FuelType = "Diesel"
	FuelElectric FuelType = "Electric"
	FuelHybrid   FuelType = "Hybrid"
)

func (f FuelType) IsValid() bool {
	switch f {
	case FuelPetrol, FuelDiesel, FuelElectric, FuelHybrid:
		return true
	}
	return false
}

// Car 車輛
// Available 是衍生欄位：只要有 Pending 或 Active 的訂單指向此車即為 false
type Car struct {
	ID            string       `json:"id"`
	Name          string       `json:"name" binding:"required"`
	Brand         string       `json:"brand" binding:"required"`
	Model         string       `json:"model" binding:"required"`
	Year          int          `json:"year" binding:"gte=0"`
	Mileage       int          `json:"mileage" binding:"gte=0"`
	Category      CarCategory  `json:"category" binding:"required,carcategory"`
	Seats         int          `json:"seats" binding:"gte=0"`
	Transmission  Transmission `json:"transmission" binding:"required,transmission"`
	FuelType      FuelType     `json:"fuelType" binding:"required,fueltype"`
	PricePerDay   int          `json:"pricePerDay" binding:"gte=0"`
	Image         string       `json:"image"`
	Images        []string     `json:"images"`
	MPG           float64      `json:"mpg"`
	IsPopular     bool         `json:"isPopular"`
	Features      []string     `json:"features"`
	EngineSize    string       `json:"engineSize"`
	TrunkCapacity string       `json:"trunkCapacity"`
	KmLimit       int          `json:"kmLimit" binding:"gte=0"`
	Location      string       `json:"location"`
	Available     bool         `json:"available"`
	PlateNumber   string       `json:"plateNumber"`
	CreatedAt     string       `json:"createdAt,omitempty"`
}
