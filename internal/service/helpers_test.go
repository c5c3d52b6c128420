package service

import (
	"context"
	"testing"

	"github.com/mautops/envgen-gin/internal/database"
	"github.com/mautops/envgen-gin/internal/model"
	"github.com/mautops/envgen-gin/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB 创建带完整 schema 的 SQLite 内存数据库
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = database.Migrate(db)
	require.NoError(t, err)

	return db
}

// newTemplateService 基于测试数据库构建模板服务
func newTemplateService(db *gorm.DB) TemplateService {
	return NewTemplateService(db, repository.NewTemplateRepository(db))
}

// createTestTemplate 创建一个带三类典型变量的模板
// APP_NAME 公共, DB_HOST 必填, LOG_LEVEL 可选
func createTestTemplate(t *testing.T, db *gorm.DB, name string) *model.Template {
	t.Helper()

	svc := newTemplateService(db)
	template, err := svc.Create(context.Background(), &CreateTemplateRequest{
		Name: name,
		Variables: []VariableInput{
			{Key: "APP_NAME", IsCommon: true, CommonValue: "myapp"},
			{Key: "DB_HOST", IsRequired: true},
			{Key: "LOG_LEVEL"},
		},
	})
	require.NoError(t, err)
	return template
}

// createTestClient 在模板下创建客户端
func createTestClient(t *testing.T, db *gorm.DB, templateID uint, name string) *model.Client {
	t.Helper()

	svc := NewClientService(repository.NewClientRepository(db), repository.NewTemplateRepository(db))
	client, err := svc.Create(context.Background(), &CreateClientRequest{
		TemplateID: templateID,
		Name:       name,
	})
	require.NoError(t, err)
	return client
}

// variableIDByKey 按 key 查找模板变量 ID
func variableIDByKey(t *testing.T, template *model.Template, key string) uint {
	t.Helper()

	for _, v := range template.Variables {
		if v.Key == key {
			return v.ID
		}
	}
	t.Fatalf("variable %s not found in template %d", key, template.ID)
	return 0
}
