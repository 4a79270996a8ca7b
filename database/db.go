package database

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"carrental/config"

	gomysql "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open 依設定建立資料存取實作；mysql、postgres 會執行資料表遷移
func Open(cfg config.DatabaseConfig, ginMode string, log *zap.Logger) (Client, error) {
	if cfg.Driver == "memory" {
		log.Warn("Using in-memory record store, data will not survive a restart")
		return NewMemoryClient(), nil
	}

	db, err := InitDB(cfg, ginMode, log)
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	log.Info("Database migration completed")
	return NewGormClient(db), nil
}

// InitDB 連線資料庫，失敗時依設定重試
func InitDB(cfg config.DatabaseConfig, ginMode string, log *zap.Logger) (*gorm.DB, error) {
	// 根據環境設置日誌級別
	logLevel := logger.Info
	if ginMode == "release" {
		logLevel = logger.Warn // 生產環境減少日誌
	}

	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	// 重試機制
	var db *gorm.DB
	for i := 0; i < cfg.MaxRetries; i++ {
		db, err = gorm.Open(dialector, &gorm.Config{
			Logger: logger.Default.LogMode(logLevel),
		})
		if err == nil {
			break
		}
		log.Warn("Failed to connect to database",
			zap.Int("attempt", i+1),
			zap.Int("max_retries", cfg.MaxRetries),
			zap.Error(err))
		if i < cfg.MaxRetries-1 {
			time.Sleep(cfg.RetryInterval)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database after %d attempts: %w", cfg.MaxRetries, err)
	}

	// 設置連線池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// 檢查連線
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("Database initialized successfully with GORM",
		zap.String("driver", cfg.Driver),
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Name))
	return db, nil
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "mysql":
		return mysql.Open(MySQLDSN(cfg)), nil
	case "postgres":
		return postgres.Open(PostgresDSN(cfg)), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// MySQLDSN 組出 MySQL 連線字串
func MySQLDSN(cfg config.DatabaseConfig) string {
	dsn := gomysql.NewConfig()
	dsn.User = cfg.User
	dsn.Passwd = cfg.Password
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	dsn.DBName = cfg.Name
	dsn.ParseTime = true
	dsn.Loc = time.Local
	dsn.Params = map[string]string{"charset": "utf8mb4"}
	return dsn.FormatDSN()
}

// PostgresDSN 組出 PostgreSQL 連線字串
func PostgresDSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}
