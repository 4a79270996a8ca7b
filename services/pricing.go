package services

import (
	"math"

	"carrental/models"
	"carrental/utils"
)

// RentalDays 計算租期天數：取還車日期差向上取整，最少 1 天
func RentalDays(pickupDate, returnDate string) (int, error) {
	pickup, err := utils.ParseDate(pickupDate)
	if err != nil {
		return 0, newValidationError("pickupDate", "%v", err)
	}
	ret, err := utils.ParseDate(returnDate)
	if err != nil {
		return 0, newValidationError("returnDate", "%v", err)
	}

	days := int(math.Ceil(math.Abs(ret.Sub(pickup).Hours()) / 24))
	if days < 1 {
		days = 1
	}
	return days, nil
}

// TotalAmount 總金額 = 天數 × (日租金 + 已選加購 + 保險)
func TotalAmount(pricePerDay int, extras []models.BookingExtra, insurance *models.InsurancePackage, days int) int {
	daily := pricePerDay
	for _, e := range extras {
		if e.Selected {
			daily += e.Price
		}
	}
	if insurance != nil {
		daily += insurance.Price
	}
	return daily * days
}

// Quote 報價明細
type Quote struct {
	Days           int                      `json:"days"`
	PricePerDay    int                      `json:"pricePerDay"`
	ExtrasPerDay   int                      `json:"extrasPerDay"`
	InsurancePrice int                      `json:"insurancePerDay"`
	TotalAmount    int                      `json:"totalAmount"`
	Extras         []models.BookingExtra    `json:"extras"`
	Insurance      *models.InsurancePackage `json:"insurance,omitempty"`
}

// BuildQuote 依車輛與目錄選項計算報價
func BuildQuote(car *models.Car, pickupDate, returnDate string, extraIDs []string, insuranceID string) (*Quote, error) {
	days, err := RentalDays(pickupDate, returnDate)
	if err != nil {
		return nil, err
	}
	extras, err := SelectExtras(extraIDs)
	if err != nil {
		return nil, err
	}
	insurance, err := SelectInsurance(insuranceID)
	if err != nil {
		return nil, err
	}

	q := &Quote{
		Days:        days,
		PricePerDay: car.PricePerDay,
		Extras:      extras,
		Insurance:   insurance,
		TotalAmount: TotalAmount(car.PricePerDay, extras, insurance, days),
	}
	for _, e := range extras {
		q.ExtrasPerDay += e.Price
	}
	if insurance != nil {
		q.InsurancePrice = insurance.Price
	}
	return q, nil
}

// SelectExtras 依 id 從目錄取出加購項目並標記為已選
func SelectExtras(ids []string) ([]models.BookingExtra, error) {
	catalog := models.DefaultExtras()
	byID := make(map[string]models.BookingExtra, len(catalog))
	for _, e := range catalog {
		byID[e.ID] = e
	}

	selected := make([]models.BookingExtra, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		extra, ok := byID[id]
		if !ok {
			return nil, newValidationError("extras", "unknown extra %q", id)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		extra.Selected = true
		selected = append(selected, extra)
	}
	return selected, nil
}

// SelectInsurance 依 id 取出保險方案，空字串表示不加保
func SelectInsurance(id string) (*models.InsurancePackage, error) {
	if id == "" {
		return nil, nil
	}
	for _, p := range models.DefaultInsurancePackages() {
		if p.ID == id {
			pkg := p
			return &pkg, nil
		}
	}
	return nil, newValidationError("insurance", "unknown insurance package %q", id)
}
