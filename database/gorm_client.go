package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormClient 以 GORM 實作的資料存取（MySQL / PostgreSQL）
type GormClient struct {
	db    *gorm.DB
	newID func() string
	now   func() time.Time
}

// NewGormClient 建立 GormClient
func NewGormClient(db *gorm.DB) *GormClient {
	return &GormClient{
		db:    db,
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// Select 查詢資料
func (c *GormClient) Select(ctx context.Context, q Query) ([]Record, error) {
	s, err := lookupSchema(q.Collection)
	if err != nil {
		return nil, err
	}

	tx := c.db.WithContext(ctx).Table(q.Collection)
	for _, f := range q.Filters {
		clause, args, err := filterClause(s, f)
		if err != nil {
			return nil, err
		}
		tx = tx.Where(clause, args...)
	}

	if len(q.AnyOf) > 0 {
		parts := make([]string, 0, len(q.AnyOf))
		var args []interface{}
		for _, f := range q.AnyOf {
			clause, fargs, err := filterClause(s, f)
			if err != nil {
				return nil, err
			}
			parts = append(parts, clause)
			args = append(args, fargs...)
		}
		tx = tx.Where("("+strings.Join(parts, " OR ")+")", args...)
	}

	if q.OrderBy != "" {
		if !s.has(q.OrderBy) {
			return nil, fmt.Errorf("unknown order column %q on %s", q.OrderBy, q.Collection)
		}
		order := q.OrderBy
		if q.Descending {
			order += " DESC"
		}
		tx = tx.Order(order)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var rows []map[string]interface{}
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", q.Collection, err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, s.decode(row))
	}

	if err := attachJoins(ctx, c, records, q.Joins); err != nil {
		return nil, err
	}
	return records, nil
}

// Insert 新增資料
func (c *GormClient) Insert(ctx context.Context, collection string, rec Record) (Record, error) {
	s, err := lookupSchema(collection)
	if err != nil {
		return nil, err
	}

	row, err := s.encode(rec)
	if err != nil {
		return nil, err
	}
	id := row.ID()
	if id == "" {
		id = c.newID()
		row["id"] = id
	}
	row["created_at"] = c.now()

	if err := c.db.WithContext(ctx).Table(collection).Create(map[string]interface{}(row)).Error; err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	return c.fetch(ctx, collection, id)
}

// Update 依 id 更新資料
func (c *GormClient) Update(ctx context.Context, collection, id string, rec Record) (Record, error) {
	s, err := lookupSchema(collection)
	if err != nil {
		return nil, err
	}

	row, err := s.encode(rec)
	if err != nil {
		return nil, err
	}
	// id 與 created_at 由資料庫維護
	delete(row, "id")
	delete(row, "created_at")

	if len(row) > 0 {
		if err := c.db.WithContext(ctx).Table(collection).Where("id = ?", id).Updates(map[string]interface{}(row)).Error; err != nil {
			return nil, fmt.Errorf("failed to update %s %s: %w", collection, id, err)
		}
	}
	// MySQL 在值未變動時 RowsAffected 為 0，因此以重新讀取判斷是否存在
	return c.fetch(ctx, collection, id)
}

// Delete 依 id 刪除資料
func (c *GormClient) Delete(ctx context.Context, collection, id string) error {
	if _, err := lookupSchema(collection); err != nil {
		return err
	}
	if err := c.db.WithContext(ctx).Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", collection), id).Error; err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", collection, id, err)
	}
	return nil
}

func (c *GormClient) fetch(ctx context.Context, collection, id string) (Record, error) {
	records, err := c.Select(ctx, Query{Collection: collection, Filters: []Filter{Eq("id", id)}})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s %s: %w", collection, id, ErrRecordNotFound)
	}
	return records[0], nil
}

func filterClause(s collectionSchema, f Filter) (string, []interface{}, error) {
	if !s.has(f.Field) {
		return "", nil, fmt.Errorf("unknown filter column %q", f.Field)
	}
	col := f.Field
	switch f.Op {
	case OpEq:
		if f.Value == nil {
			return col + " IS NULL", nil, nil
		}
		return col + " = ?", []interface{}{f.Value}, nil
	case OpNeq:
		if f.Value == nil {
			return col + " IS NOT NULL", nil, nil
		}
		return col + " <> ?", []interface{}{f.Value}, nil
	case OpGte:
		return col + " >= ?", []interface{}{f.Value}, nil
	case OpLte:
		return col + " <= ?", []interface{}{f.Value}, nil
	case OpIn:
		values := toSlice(f.Value)
		if len(values) == 0 {
			return "1 = 0", nil, nil
		}
		return col + " IN ?", []interface{}{values}, nil
	case OpILike:
		term, _ := f.Value.(string)
		return "LOWER(" + col + ") LIKE ?", []interface{}{"%" + escapeLike(strings.ToLower(term)) + "%"}, nil
	}
	return "", nil, fmt.Errorf("unsupported operator %q", f.Op)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
