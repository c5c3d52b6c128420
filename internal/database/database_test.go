package database

import (
	"testing"

	"github.com/mautops/envgen-gin/internal/config"
	"github.com/mautops/envgen-gin/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

// TestBuildDSN 测试 PostgreSQL DSN 拼装
func TestBuildDSN(t *testing.T) {
	dsn := BuildDSN(config.DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "envgen",
		Password: "secret",
		DBName:   "envgen",
		SSLMode:  "require",
	})
	assert.Equal(t, "host=db.internal port=5433 user=envgen password=secret dbname=envgen sslmode=require", dsn)
}

// TestMigrate_CreatesSchema 测试迁移创建全部表
func TestMigrate_CreatesSchema(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"templates", "template_variables", "clients", "client_variables"} {
		var count int64
		err := db.Raw("SELECT count(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count).Error
		require.NoError(t, err)
		assert.Equal(t, int64(1), count, "table %s should exist", table)
	}
}

// TestMigrate_UniqueIndexes 测试唯一索引生效
func TestMigrate_UniqueIndexes(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Create(&model.Template{Name: "backend", Content: "A={{A}}"}).Error)
	err := db.Create(&model.Template{Name: "backend", Content: "B={{B}}"}).Error
	assert.Error(t, err, "duplicate template name should violate unique index")
}

// TestMigrate_CascadeDelete 测试外键级联删除链路
func TestMigrate_CascadeDelete(t *testing.T) {
	db := openTestDB(t)

	template := &model.Template{Name: "backend", Content: "DB_HOST={{DB_HOST}}"}
	require.NoError(t, db.Create(template).Error)

	variable := &model.TemplateVariable{TemplateID: template.ID, Key: "DB_HOST", IsRequired: true}
	require.NoError(t, db.Create(variable).Error)

	client := &model.Client{TemplateID: template.ID, Name: "acme"}
	require.NoError(t, db.Create(client).Error)

	value := &model.ClientVariable{ClientID: client.ID, TemplateVariableID: variable.ID, Value: "db.acme"}
	require.NoError(t, db.Create(value).Error)

	// 删除模板,整条链路级联清空
	require.NoError(t, db.Delete(&model.Template{}, template.ID).Error)

	for _, m := range []interface{}{
		&model.TemplateVariable{}, &model.Client{}, &model.ClientVariable{},
	} {
		var count int64
		require.NoError(t, db.Model(m).Count(&count).Error)
		assert.Zero(t, count)
	}
}

// TestCheckHealth 测试健康检查
func TestCheckHealth(t *testing.T) {
	assert.False(t, CheckHealth(nil))

	db := openTestDB(t)
	assert.True(t, CheckHealth(db))
}
