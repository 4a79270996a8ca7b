package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldTranslation(t *testing.T) {
	cases := map[string]string{
		"fuelType":            "fuel_type",
		"pricePerDay":         "price_per_day",
		"nationalId":          "national_id",
		"driverLicenseExpiry": "driver_license_expiry",
		"carPlate":            "car_plate",
		"totalAmount":         "total_amount",
		"workingHours":        "working_hours",
	}
	for app, store := range cases {
		assert.Equal(t, store, StoreField(app))
		assert.Equal(t, app, AppField(store))
	}

	// 未列出的欄位保持原樣
	assert.Equal(t, "available", StoreField("available"))
	assert.Equal(t, "mpg", AppField("mpg"))
}

func TestToAppKeysRenamesNestedRecords(t *testing.T) {
	in := map[string]interface{}{
		"car_id":      "c1",
		"pickup_date": "2024-07-01",
		"car": map[string]interface{}{
			"price_per_day": 180,
			"plate_number":  "34 ABC 123",
		},
		"customer": nil,
	}

	out := ToAppKeys(in)
	assert.Equal(t, "c1", out["carId"])
	assert.Equal(t, "2024-07-01", out["pickupDate"])
	car := out["car"].(map[string]interface{})
	assert.Equal(t, 180, car["pricePerDay"])
	assert.Equal(t, "34 ABC 123", car["plateNumber"])
	assert.Nil(t, out["customer"])

	back := ToStoreKeys(out)
	assert.Equal(t, in, back)
}

func TestBookingStatus(t *testing.T) {
	assert.True(t, BookingPending.Occupies())
	assert.True(t, BookingActive.Occupies())
	assert.False(t, BookingCompleted.Occupies())
	assert.True(t, BookingCancelled.IsTerminal())
	assert.False(t, BookingStatus("Lost").IsValid())
}

func TestEnums(t *testing.T) {
	assert.True(t, CategorySUV.IsValid())
	assert.False(t, CarCategory("Van").IsValid())
	assert.True(t, TransmissionManual.IsValid())
	assert.True(t, FuelHybrid.IsValid())
	assert.False(t, FuelType("Coal").IsValid())
	assert.True(t, CustomerInactive.IsValid())
	assert.True(t, LocationActive.IsValid())
}

func TestSelectedExtras(t *testing.T) {
	b := Booking{Extras: []BookingExtra{
		{ID: "1", Price: 15, Selected: true},
		{ID: "2", Price: 25},
	}}
	selected := b.SelectedExtras()
	assert.Len(t, selected, 1)
	assert.Equal(t, "1", selected[0].ID)
}

func TestCatalogPrices(t *testing.T) {
	extras := DefaultExtras()
	assert.Len(t, extras, 5)
	assert.Equal(t, 15, extras[0].Price)

	packages := DefaultInsurancePackages()
	assert.Len(t, packages, 3)
	assert.Equal(t, 0, packages[0].Price)
	assert.Equal(t, 45, packages[1].Price)
	assert.Equal(t, 75, packages[2].Price)
}
