package database

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryClient 記憶體版資料存取，用於測試與本機展示
type MemoryClient struct {
	mu     sync.RWMutex
	tables map[string][]memoryRow
	seq    int64
	newID  func() string
	now    func() time.Time
}

type memoryRow struct {
	seq int64
	rec Record
}

// NewMemoryClient 建立空的記憶體資料庫
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{
		tables: make(map[string][]memoryRow),
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// Select 查詢資料
func (m *MemoryClient) Select(ctx context.Context, q Query) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s, err := lookupSchema(q.Collection)
	if err != nil {
		return nil, err
	}
	for _, f := range append(append([]Filter(nil), q.Filters...), q.AnyOf...) {
		if !s.has(f.Field) {
			return nil, fmt.Errorf("unknown filter column %q", f.Field)
		}
	}
	if q.OrderBy != "" && !s.has(q.OrderBy) {
		return nil, fmt.Errorf("unknown order column %q on %s", q.OrderBy, q.Collection)
	}

	m.mu.RLock()
	var matched []memoryRow
	for _, row := range m.tables[q.Collection] {
		if matchesAll(row.rec, q.Filters) && matchesAny(row.rec, q.AnyOf) {
			matched = append(matched, memoryRow{seq: row.seq, rec: row.rec.Clone()})
		}
	}
	m.mu.RUnlock()

	if q.OrderBy != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			cmp, ok := compareValues(matched[i].rec[q.OrderBy], matched[j].rec[q.OrderBy])
			if !ok || cmp == 0 {
				cmp = int(matched[i].seq - matched[j].seq)
			}
			if q.Descending {
				return cmp > 0
			}
			return cmp < 0
		})
	}
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}

	records := make([]Record, len(matched))
	for i, row := range matched {
		records[i] = row.rec
	}
	if err := attachJoins(ctx, m, records, q.Joins); err != nil {
		return nil, err
	}
	return records, nil
}

// Insert 新增資料
func (m *MemoryClient) Insert(ctx context.Context, collection string, rec Record) (Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row, err := m.normalize(collection, rec)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if row.ID() == "" {
		row["id"] = m.newID()
	}
	row["created_at"] = m.now().UTC().Format(timestampLayout)
	m.seq++
	m.tables[collection] = append(m.tables[collection], memoryRow{seq: m.seq, rec: row})
	return row.Clone(), nil
}

// Update 依 id 更新資料
func (m *MemoryClient) Update(ctx context.Context, collection, id string, rec Record) (Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row, err := m.normalize(collection, rec)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rows := m.tables[collection]
	for i := range rows {
		if rows[i].rec.ID() != id {
			continue
		}
		for k, v := range row {
			if k == "id" || k == "created_at" {
				continue
			}
			rows[i].rec[k] = v
		}
		return rows[i].rec.Clone(), nil
	}
	return nil, fmt.Errorf("%s %s: %w", collection, id, ErrRecordNotFound)
}

// Delete 依 id 刪除資料
func (m *MemoryClient) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := lookupSchema(collection); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rows := m.tables[collection]
	for i := range rows {
		if rows[i].rec.ID() == id {
			m.tables[collection] = append(rows[:i], rows[i+1:]...)
			return nil
		}
	}
	return nil
}

// Count 回傳集合內的資料筆數
func (m *MemoryClient) Count(collection string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tables[collection])
}

// normalize 與 GormClient 相同的編碼規則，讓兩種實作回傳一致的資料型別
func (m *MemoryClient) normalize(collection string, rec Record) (Record, error) {
	s, err := lookupSchema(collection)
	if err != nil {
		return nil, err
	}
	encoded, err := s.encode(rec.Clone())
	if err != nil {
		return nil, err
	}
	return s.decode(encoded), nil
}

func matchesAll(rec Record, filters []Filter) bool {
	for _, f := range filters {
		if !matches(rec, f) {
			return false
		}
	}
	return true
}

func matchesAny(rec Record, filters []Filter) bool {
	if len(filters) == 0 {
		return true
	}
	for _, f := range filters {
		if matches(rec, f) {
			return true
		}
	}
	return false
}

func matches(rec Record, f Filter) bool {
	v := rec[f.Field]
	switch f.Op {
	case OpEq:
		return equalValues(v, f.Value)
	case OpNeq:
		return !equalValues(v, f.Value)
	case OpGte:
		cmp, ok := compareValues(v, f.Value)
		return ok && cmp >= 0
	case OpLte:
		cmp, ok := compareValues(v, f.Value)
		return ok && cmp <= 0
	case OpIn:
		for _, candidate := range toSlice(f.Value) {
			if equalValues(v, candidate) {
				return true
			}
		}
		return false
	case OpILike:
		str, ok := v.(string)
		if !ok {
			return false
		}
		term := fmt.Sprint(f.Value)
		return strings.Contains(strings.ToLower(str), strings.ToLower(term))
	}
	return false
}

// plain 將具名型別（例如 models.BookingStatus）還原為基本型別
func plain(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	}
	return v
}

func equalValues(a, b interface{}) bool {
	a, b = plain(a), plain(b)
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.DeepEqual(a, b)
}

// compareValues 比較字串或數字，型別不同時 ok 為 false
func compareValues(a, b interface{}) (int, bool) {
	a, b = plain(a), plain(b)
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(av, bv), true
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return 0, false
		}
		switch {
		case av < bv:
			return -1, true
		case av > bv:
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
