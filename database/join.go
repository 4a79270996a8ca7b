package database

import (
	"context"
	"fmt"
	"reflect"
)

// attachJoins 以第二次 IN 查詢取得關聯資料，並放在 join.As 欄位下
func attachJoins(ctx context.Context, c Client, records []Record, joins []Join) error {
	for _, j := range joins {
		seen := make(map[string]bool)
		var ids []string
		for _, rec := range records {
			id, _ := rec[j.LocalKey].(string)
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}

		related := make(map[string]Record, len(ids))
		if len(ids) > 0 {
			rows, err := c.Select(ctx, Query{Collection: j.Collection, Filters: []Filter{In("id", ids)}})
			if err != nil {
				return fmt.Errorf("failed to join %s: %w", j.Collection, err)
			}
			for _, row := range rows {
				related[row.ID()] = row
			}
		}

		for _, rec := range records {
			id, _ := rec[j.LocalKey].(string)
			if row, ok := related[id]; ok {
				rec[j.As] = map[string]interface{}(row.Clone())
			} else {
				rec[j.As] = nil
			}
		}
	}
	return nil
}

// toSlice 將任意 slice 轉成 []interface{}
func toSlice(v interface{}) []interface{} {
	if v == nil {
		return nil
	}
	if s, ok := v.([]interface{}); ok {
		return s
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []interface{}{v}
	}
	out := make([]interface{}, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
