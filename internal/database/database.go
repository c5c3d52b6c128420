package database

import (
	"context"
	"fmt"
	"time"

	"github.com/mautops/envgen-gin/internal/config"
	"github.com/mautops/envgen-gin/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PoolConfig 连接池配置
type PoolConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime int // 秒
	ConnMaxIdleTime int // 秒
}

// BuildDSN 构建 PostgreSQL DSN
func BuildDSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
}

// GetPoolConfig 获取连接池配置
func GetPoolConfig() *PoolConfig {
	return &PoolConfig{
		MaxIdleConns:    10,
		MaxOpenConns:    100,
		ConnMaxLifetime: 3600, // 1 小时
		ConnMaxIdleTime: 600,  // 10 分钟
	}
}

// Connect 连接数据库
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := BuildDSN(cfg)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	// 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// 从配置中读取连接池参数,如果没有配置则使用默认值
	poolConfig := GetPoolConfig()
	if cfg.MaxIdleConns > 0 {
		poolConfig.MaxIdleConns = cfg.MaxIdleConns
	}
	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxOpenConns = cfg.MaxOpenConns
	}
	if cfg.ConnMaxLifetime > 0 {
		poolConfig.ConnMaxLifetime = cfg.ConnMaxLifetime
	}
	if cfg.ConnMaxIdleTime > 0 {
		poolConfig.ConnMaxIdleTime = cfg.ConnMaxIdleTime
	}

	sqlDB.SetMaxIdleConns(poolConfig.MaxIdleConns)
	sqlDB.SetMaxOpenConns(poolConfig.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(poolConfig.ConnMaxLifetime) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(poolConfig.ConnMaxIdleTime) * time.Second)

	return db, nil
}

// Migrate 执行数据库迁移
func Migrate(db *gorm.DB) error {
	// 检测数据库类型
	dialector := db.Dialector.Name()

	// SQLite 需要手动建表并开启外键约束（级联删除依赖外键）
	// GORM SQLite dialector 的名称可能是 "sqlite" 或 "sqlite3"
	if dialector == "sqlite" || dialector == "sqlite3" {
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		if err := createSQLiteTables(db); err != nil {
			return fmt.Errorf("failed to create SQLite tables: %w", err)
		}
	} else {
		// PostgreSQL 等其他数据库使用 AutoMigrate
		if err := db.AutoMigrate(
			&model.Template{},
			&model.TemplateVariable{},
			&model.Client{},
			&model.ClientVariable{},
		); err != nil {
			return fmt.Errorf("failed to auto migrate: %w", err)
		}
	}

	// 创建索引
	if err := CreateIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// createSQLiteTables 为 SQLite 手动创建表（带级联删除外键）
func createSQLiteTables(db *gorm.DB) error {
	// 创建 templates 表
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS templates (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name VARCHAR(255) NOT NULL,
			content TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create templates table: %w", err)
	}

	// 创建 template_variables 表
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS template_variables (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			template_id INTEGER NOT NULL,
			key VARCHAR(255) NOT NULL,
			is_common BOOLEAN NOT NULL DEFAULT 0,
			is_required BOOLEAN NOT NULL DEFAULT 0,
			common_value TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			FOREIGN KEY (template_id) REFERENCES templates(id) ON DELETE CASCADE
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create template_variables table: %w", err)
	}

	// 创建 clients 表
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS clients (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			template_id INTEGER NOT NULL,
			name VARCHAR(255) NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			FOREIGN KEY (template_id) REFERENCES templates(id) ON DELETE CASCADE
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create clients table: %w", err)
	}

	// 创建 client_variables 表
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS client_variables (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			client_id INTEGER NOT NULL,
			template_variable_id INTEGER NOT NULL,
			value TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE,
			FOREIGN KEY (template_variable_id) REFERENCES template_variables(id) ON DELETE CASCADE
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create client_variables table: %w", err)
	}

	return nil
}

// CreateIndexes 创建数据库索引
func CreateIndexes(db *gorm.DB) error {
	// templates 表索引
	if err := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_templates_name ON templates(name)").Error; err != nil {
		return fmt.Errorf("failed to create idx_templates_name: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_templates_created_at ON templates(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create idx_templates_created_at: %w", err)
	}

	// template_variables 表索引
	if err := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_template_variables_template_key ON template_variables(template_id, key)").Error; err != nil {
		return fmt.Errorf("failed to create idx_template_variables_template_key: %w", err)
	}

	// clients 表索引
	if err := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_clients_template_name ON clients(template_id, name)").Error; err != nil {
		return fmt.Errorf("failed to create idx_clients_template_name: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_clients_created_at ON clients(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create idx_clients_created_at: %w", err)
	}

	// client_variables 表索引
	if err := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_client_variables_client_variable ON client_variables(client_id, template_variable_id)").Error; err != nil {
		return fmt.Errorf("failed to create idx_client_variables_client_variable: %w", err)
	}

	return nil
}

// ConnectWithRetry 带重试的数据库连接
func ConnectWithRetry(cfg config.DatabaseConfig, maxRetries int, retryInterval time.Duration) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for i := 0; i < maxRetries; i++ {
		db, err = Connect(cfg)
		if err == nil {
			return db, nil
		}

		// 如果不是最后一次重试,等待后重试
		if i < maxRetries-1 {
			time.Sleep(retryInterval)
			retryInterval *= 2 // 指数退避
		}
	}

	return nil, fmt.Errorf("failed to connect database after %d retries: %w", maxRetries, err)
}

// CheckHealth 检查数据库连接健康状态
func CheckHealth(db *gorm.DB) bool {
	if db == nil {
		return false
	}

	sqlDB, err := db.DB()
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return false
	}

	return true
}
