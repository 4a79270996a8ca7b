package utils

import (
	"fmt"
	"time"
)

// DateLayout 日期欄位的儲存格式
const DateLayout = "2006-01-02"

// Today 回傳今天的日期字串（YYYY-MM-DD）
func Today() string {
	return time.Now().Format(DateLayout)
}

// ParseDate 解析 YYYY-MM-DD 格式的日期
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return t, nil
}

// IsDate 檢查字串是否為合法日期
func IsDate(value string) bool {
	_, err := time.Parse(DateLayout, value)
	return err == nil
}
