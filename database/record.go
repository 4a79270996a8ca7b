package database

import (
	"context"
	"encoding/json"
)

// 資料集合名稱
const (
	CollectionCars      = "cars"
	CollectionCustomers = "customers"
	CollectionBookings  = "bookings"
	CollectionLocations = "locations"
)

// Record 一筆資料，key 為資料庫欄位名稱（snake_case）
type Record map[string]interface{}

// ID 回傳資料的 id 欄位
func (r Record) ID() string {
	id, _ := r["id"].(string)
	return id
}

// Clone 深拷貝，避免呼叫端修改共用資料
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch val := v.(type) {
	case Record:
		return val.Clone()
	case map[string]interface{}:
		return map[string]interface{}(Record(val).Clone())
	case []interface{}:
		out := make([]interface{}, len(val))
		for i := range val {
			out[i] = cloneValue(val[i])
		}
		return out
	case []string:
		return append([]string(nil), val...)
	case json.RawMessage:
		return append(json.RawMessage(nil), val...)
	default:
		return v
	}
}

// Operator 查詢條件運算子
type Operator string

const (
	OpEq    Operator = "eq"
	OpNeq   Operator = "neq"
	OpGte   Operator = "gte"
	OpLte   Operator = "lte"
	OpIn    Operator = "in"
	OpILike Operator = "ilike" // 不分大小寫的子字串比對
)

// Filter 單一欄位的查詢條件
type Filter struct {
	Field string
	Op    Operator
	Value interface{}
}

// Eq 欄位等於
func Eq(field string, value interface{}) Filter {
	return Filter{Field: field, Op: OpEq, Value: value}
}

// Neq 欄位不等於
func Neq(field string, value interface{}) Filter {
	return Filter{Field: field, Op: OpNeq, Value: value}
}

// Gte 欄位大於等於
func Gte(field string, value interface{}) Filter {
	return Filter{Field: field, Op: OpGte, Value: value}
}

// Lte 欄位小於等於
func Lte(field string, value interface{}) Filter {
	return Filter{Field: field, Op: OpLte, Value: value}
}

// In 欄位值屬於 values（slice）
func In(field string, values interface{}) Filter {
	return Filter{Field: field, Op: OpIn, Value: values}
}

// ILike 欄位不分大小寫包含 term
func ILike(field, term string) Filter {
	return Filter{Field: field, Op: OpILike, Value: term}
}

// AnyILike 產生多個欄位的 ilike 條件，搭配 Query.AnyOf 以 OR 組合
func AnyILike(term string, fields ...string) []Filter {
	filters := make([]Filter, 0, len(fields))
	for _, f := range fields {
		filters = append(filters, ILike(f, term))
	}
	return filters
}

// Join 透過外鍵附加另一個集合的資料，找不到時為 nil
type Join struct {
	Collection string
	LocalKey   string
	As         string
}

// Query 查詢參數
// Filters 之間為 AND；AnyOf 內的條件以 OR 組合後再與 Filters AND
type Query struct {
	Collection string
	Filters    []Filter
	AnyOf      []Filter
	Joins      []Join
	OrderBy    string
	Descending bool
	Limit      int
}

// Client 資料存取介面
type Client interface {
	Select(ctx context.Context, q Query) ([]Record, error)
	// Insert 由資料庫產生 id 與 created_at，回傳寫入後的資料
	Insert(ctx context.Context, collection string, rec Record) (Record, error)
	// Update 依 id 覆寫欄位，找不到資料時回傳 ErrRecordNotFound
	Update(ctx context.Context, collection, id string, rec Record) (Record, error)
	// Delete 依 id 刪除，資料不存在不視為錯誤
	Delete(ctx context.Context, collection, id string) error
}
