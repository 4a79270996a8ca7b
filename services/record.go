package services

import (
	"encoding/json"
	"fmt"

	"carrental/database"
	"carrental/models"
)

// 寫入時忽略的欄位：id、created_at 由資料庫產生，car、customer 為讀取時的關聯資料
var readOnlyColumns = []string{"id", "created_at", "car", "customer"}

// toRecord 將 model 轉成資料庫欄位名稱的 Record
func toRecord(v interface{}) (database.Record, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %T: %w", v, err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("failed to encode %T: %w", v, err)
	}

	rec := database.Record(models.ToStoreKeys(m))
	for _, col := range readOnlyColumns {
		delete(rec, col)
	}
	return rec, nil
}

// fromRecord 將 Record 轉回 model
func fromRecord(rec database.Record, out interface{}) error {
	b, err := json.Marshal(models.ToAppKeys(rec))
	if err != nil {
		return fmt.Errorf("failed to decode record %s: %w", rec.ID(), err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("failed to decode record %s into %T: %w", rec.ID(), out, err)
	}
	return nil
}

func fromRecords[T any](records []database.Record) ([]T, error) {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		var v T
		if err := fromRecord(rec, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
