package database

import (
	"errors"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrRecordNotFound 依 id 更新時找不到資料
var ErrRecordNotFound = errors.New("record not found")

// ErrUnknownCollection 查詢未註冊的集合
var ErrUnknownCollection = errors.New("unknown collection")

// IsNotFound 判斷是否為找不到資料的錯誤
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateKey 判斷是否違反唯一鍵（MySQL 1062、PostgreSQL 23505）
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	var mysqlErr *gomysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
