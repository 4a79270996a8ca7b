package database

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// carRow 資料表結構，僅供遷移與欄位型別判斷使用
type carRow struct {
	ID            string `gorm:"primaryKey;size:36"`
	Name          string `gorm:"size:100;not null"`
	Brand         string `gorm:"size:50;index"`
	Model         string `gorm:"size:50"`
	Year          int
	Mileage       int
	Category      string `gorm:"size:20;index"`
	Seats         int
	Transmission  string `gorm:"size:20"`
	FuelType      string `gorm:"size:20"`
	PricePerDay   int
	Image         string `gorm:"size:500"`
	Images        datatypes.JSON
	MPG           float64 `gorm:"column:mpg"`
	IsPopular     bool    `gorm:"default:false"`
	Features      datatypes.JSON
	EngineSize    string `gorm:"size:20"`
	TrunkCapacity string `gorm:"size:20"`
	KmLimit       int
	Location      string    `gorm:"size:100"`
	Available     bool      `gorm:"default:true;index"`
	PlateNumber   string    `gorm:"size:20"`
	CreatedAt     time.Time `gorm:"index"`
}

func (carRow) TableName() string { return CollectionCars }

type customerRow struct {
	ID                  string `gorm:"primaryKey;size:36"`
	FullName            string `gorm:"size:100;not null"`
	Email               string `gorm:"size:100;index"`
	Phone               string `gorm:"size:30;index"`
	DateOfBirth         *datatypes.Date
	NationalID          string `gorm:"size:30;index"`
	DriverLicenseNumber string `gorm:"size:50"`
	DriverLicenseExpiry *datatypes.Date
	Address             string `gorm:"size:255"`
	Notes               string `gorm:"type:text"`
	Status              string `gorm:"size:20;index;default:Active"`
	RegistrationDate    *datatypes.Date
	NumberOfBookings    int `gorm:"default:0"`
	LastBookingDate     *datatypes.Date
	CreatedAt           time.Time `gorm:"index"`
}

func (customerRow) TableName() string { return CollectionCustomers }

type bookingRow struct {
	ID             string          `gorm:"primaryKey;size:36"`
	CustomerID     string          `gorm:"size:36;index"`
	CustomerName   string          `gorm:"size:100"`
	CarID          string          `gorm:"size:36;index"`
	CarName        string          `gorm:"size:100"`
	CarPlate       string          `gorm:"size:20"`
	PickupDate     *datatypes.Date `gorm:"index"`
	ReturnDate     *datatypes.Date
	PickupTime     string `gorm:"size:10"`
	ReturnTime     string `gorm:"size:10"`
	PickupLocation string `gorm:"size:100"`
	ReturnLocation string `gorm:"size:100"`
	Status         string `gorm:"size:20;index;default:Pending"`
	TotalAmount    int
	Extras         datatypes.JSON
	Insurance      datatypes.JSON
	CreatedAt      time.Time `gorm:"index"`
}

func (bookingRow) TableName() string { return CollectionBookings }

type locationRow struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string `gorm:"size:100;not null"`
	Address      string `gorm:"size:255"`
	City         string `gorm:"size:50;index"`
	Phone        string `gorm:"size:30"`
	WorkingHours string `gorm:"size:100"`
	Status       string `gorm:"size:20;index;default:Active"`
	Email        string `gorm:"size:100"`
	Manager      string `gorm:"size:100"`
	Capacity     int
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    *time.Time
}

func (locationRow) TableName() string { return CollectionLocations }

// AutoMigrate 建立或更新資料表
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&carRow{}, &customerRow{}, &bookingRow{}, &locationRow{}); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}
	return nil
}

// timestampLayout 固定小數位數，字串排序即時間排序
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

type columnKind int

const (
	kindText columnKind = iota
	kindInt
	kindFloat
	kindBool
	kindJSON
	kindDate
	kindTime
)

// collectionSchema 欄位名稱 -> 欄位型別
type collectionSchema map[string]columnKind

var collectionSchemas = map[string]collectionSchema{
	CollectionCars:      buildSchema(&carRow{}),
	CollectionCustomers: buildSchema(&customerRow{}),
	CollectionBookings:  buildSchema(&bookingRow{}),
	CollectionLocations: buildSchema(&locationRow{}),
}

func lookupSchema(collection string) (collectionSchema, error) {
	s, ok := collectionSchemas[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
	return s, nil
}

func buildSchema(model interface{}) collectionSchema {
	parsed, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		panic(fmt.Sprintf("failed to parse schema for %T: %v", model, err))
	}
	cols := make(collectionSchema, len(parsed.Fields))
	for _, field := range parsed.Fields {
		if field.DBName == "" {
			continue
		}
		cols[field.DBName] = kindOf(field.FieldType)
	}
	return cols
}

var (
	jsonType = reflect.TypeOf(datatypes.JSON{})
	dateType = reflect.TypeOf(datatypes.Date{})
	timeType = reflect.TypeOf(time.Time{})
)

func kindOf(t reflect.Type) columnKind {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t {
	case jsonType:
		return kindJSON
	case dateType:
		return kindDate
	case timeType:
		return kindTime
	}
	switch t.Kind() {
	case reflect.Bool:
		return kindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return kindInt
	case reflect.Float32, reflect.Float64:
		return kindFloat
	}
	return kindText
}

func (s collectionSchema) has(column string) bool {
	_, ok := s[column]
	return ok
}

// encode 轉成可寫入資料庫的值，非資料表欄位（例如關聯資料）會被略過
func (s collectionSchema) encode(rec Record) (Record, error) {
	out := make(Record, len(rec))
	for col, v := range rec {
		kind, ok := s[col]
		if !ok {
			continue
		}
		switch kind {
		case kindJSON:
			if v == nil {
				out[col] = nil
				continue
			}
			b, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("failed to encode column %s: %w", col, err)
			}
			out[col] = datatypes.JSON(b)
		case kindDate:
			if str, ok := v.(string); ok && str == "" {
				out[col] = nil
				continue
			}
			out[col] = v
		case kindTime:
			if str, ok := v.(string); ok {
				if str == "" {
					out[col] = nil
					continue
				}
				t, err := time.Parse(time.RFC3339Nano, str)
				if err != nil {
					return nil, fmt.Errorf("invalid timestamp for column %s: %w", col, err)
				}
				out[col] = t
				continue
			}
			out[col] = v
		default:
			out[col] = v
		}
	}
	return out, nil
}

// decode 將資料庫回傳的值正規化（JSON 反序列化、tinyint 轉 bool、日期轉字串）
func (s collectionSchema) decode(row map[string]interface{}) Record {
	rec := make(Record, len(row))
	for col, v := range row {
		rec[col] = decodeValue(s[col], v)
	}
	return rec
}

func decodeValue(kind columnKind, v interface{}) interface{} {
	if v == nil {
		return nil
	}
	switch kind {
	case kindBool:
		switch b := v.(type) {
		case bool:
			return b
		case int64:
			return b != 0
		case int:
			return b != 0
		case float64:
			return b != 0
		case []byte:
			return string(b) == "1" || strings.EqualFold(string(b), "true")
		case string:
			return b == "1" || strings.EqualFold(b, "true")
		}
	case kindJSON:
		var raw []byte
		switch j := v.(type) {
		case datatypes.JSON:
			raw = j
		case []byte:
			raw = j
		case string:
			raw = []byte(j)
		default:
			return v
		}
		if len(raw) == 0 {
			return nil
		}
		var out interface{}
		if err := json.Unmarshal(raw, &out); err != nil {
			return string(raw)
		}
		return out
	case kindDate:
		switch d := v.(type) {
		case time.Time:
			return d.Format("2006-01-02")
		case datatypes.Date:
			return time.Time(d).Format("2006-01-02")
		case []byte:
			return trimDate(string(d))
		case string:
			return trimDate(d)
		}
	case kindTime:
		switch t := v.(type) {
		case time.Time:
			return t.UTC().Format(timestampLayout)
		case []byte:
			return string(t)
		}
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

func trimDate(s string) string {
	if len(s) >= 10 {
		return s[:10]
	}
	return s
}
