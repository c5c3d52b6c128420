package container

import (
	"fmt"
	"time"

	"github.com/mautops/envgen-gin/internal/config"
	"github.com/mautops/envgen-gin/internal/database"
	"gorm.io/gorm"
)

// Container 依赖注入容器
// 持有数据库连接等跨服务共享的依赖
type Container struct {
	db *gorm.DB
}

// NewContainer 创建依赖注入容器
// 根据配置初始化数据库并执行迁移
func NewContainer(cfg *config.Config) (*Container, error) {
	// 初始化数据库（带重试机制）
	// 默认重试 3 次，初始间隔 1 秒，指数退避
	db, err := database.ConnectWithRetry(cfg.Database, 3, time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// 执行数据库迁移（含业务索引）
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Container{db: db}, nil
}

// DB 获取数据库连接
func (c *Container) DB() *gorm.DB {
	return c.db
}

// Close 关闭容器持有的资源
func (c *Container) Close() error {
	if c.db != nil {
		sqlDB, err := c.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
