package models

// 應用層欄位（camelCase）與資料庫欄位（snake_case）的對照表，未列出的欄位名稱兩邊相同
var appToStore = map[string]string{
	"fuelType":            "fuel_type",
	"pricePerDay":         "price_per_day",
	"isPopular":           "is_popular",
	"engineSize":          "engine_size",
	"trunkCapacity":       "trunk_capacity",
	"kmLimit":             "km_limit",
	"plateNumber":         "plate_number",
	"fullName":            "full_name",
	"dateOfBirth":         "date_of_birth",
	"nationalId":          "national_id",
	"driverLicenseNumber": "driver_license_number",
	"driverLicenseExpiry": "driver_license_expiry",
	"registrationDate":    "registration_date",
	"numberOfBookings":    "number_of_bookings",
	"lastBookingDate":     "last_booking_date",
	"customerId":          "customer_id",
	"customerName":        "customer_name",
	"carId":               "car_id",
	"carName":             "car_name",
	"carPlate":            "car_plate",
	"pickupDate":          "pickup_date",
	"returnDate":          "return_date",
	"pickupTime":          "pickup_time",
	"returnTime":          "return_time",
	"pickupLocation":      "pickup_location",
	"returnLocation":      "return_location",
	"totalAmount":         "total_amount",
	"workingHours":        "working_hours",
	"createdAt":           "created_at",
	"updatedAt":           "updated_at",
}

var storeToApp = invert(appToStore)

func invert(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// StoreField 將應用層欄位名稱轉成資料庫欄位名稱
func StoreField(name string) string {
	if mapped, ok := appToStore[name]; ok {
		return mapped
	}
	return name
}

// AppField 將資料庫欄位名稱轉成應用層欄位名稱
func AppField(name string) string {
	if mapped, ok := storeToApp[name]; ok {
		return mapped
	}
	return name
}

// ToStoreKeys 轉換整筆資料的欄位名稱（巢狀物件一併轉換）
func ToStoreKeys(in map[string]interface{}) map[string]interface{} {
	return renameKeys(in, StoreField)
}

// ToAppKeys 轉換整筆資料的欄位名稱（巢狀物件一併轉換）
func ToAppKeys(in map[string]interface{}) map[string]interface{} {
	return renameKeys(in, AppField)
}

func renameKeys(in map[string]interface{}, rename func(string) string) map[string]interface{} {
	if in == nil {
		return nil
	}
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		if nested, ok := v.(map[string]interface{}); ok {
			v = renameKeys(nested, rename)
		}
		out[rename(k)] = v
	}
	return out
}
