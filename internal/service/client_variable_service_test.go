package service

import (
	"context"
	"testing"

	"github.com/mautops/envgen-gin/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestClientVariableService_List 测试合并视图: 每个非公共变量出现一次,按 key 排序
func TestClientVariableService_List(t *testing.T) {
	db := setupTestDB(t)
	template := createTestTemplate(t, db, "backend")
	client := createTestClient(t, db, template.ID, "acme")

	svc := NewClientVariableService(db)
	_, err := svc.Upsert(context.Background(), client.ID, &UpsertClientVariableRequest{
		TemplateVariableID: variableIDByKey(t, template, "DB_HOST"),
		Value:              "db.acme",
	})
	require.NoError(t, err)

	views, err := svc.List(client.ID)
	require.NoError(t, err)

	// 公共变量 APP_NAME 不在视图中; DB_HOST 和 LOG_LEVEL 按 key 排序
	require.Len(t, views, 2)
	assert.Equal(t, "DB_HOST", views[0].Key)
	assert.True(t, views[0].HasValue)
	assert.Equal(t, "db.acme", views[0].Value)
	assert.True(t, views[0].IsRequired)

	assert.Equal(t, "LOG_LEVEL", views[1].Key)
	assert.False(t, views[1].HasValue)
	assert.Empty(t, views[1].Value)
}

// TestClientVariableService_Upsert_UpdatesExisting 测试重复设置覆盖旧值
func TestClientVariableService_Upsert_UpdatesExisting(t *testing.T) {
	db := setupTestDB(t)
	template := createTestTemplate(t, db, "backend")
	client := createTestClient(t, db, template.ID, "acme")
	variableID := variableIDByKey(t, template, "DB_HOST")

	svc := NewClientVariableService(db)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, client.ID, &UpsertClientVariableRequest{TemplateVariableID: variableID, Value: "old"})
	require.NoError(t, err)
	view, err := svc.Upsert(ctx, client.ID, &UpsertClientVariableRequest{TemplateVariableID: variableID, Value: "new"})
	require.NoError(t, err)
	assert.Equal(t, "new", view.Value)

	views, err := svc.List(client.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", views[0].Value)
}

// TestClientVariableService_Upsert_BlankDeletes 测试空白值等价于删除取值
func TestClientVariableService_Upsert_BlankDeletes(t *testing.T) {
	db := setupTestDB(t)
	template := createTestTemplate(t, db, "backend")
	client := createTestClient(t, db, template.ID, "acme")
	variableID := variableIDByKey(t, template, "DB_HOST")

	svc := NewClientVariableService(db)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, client.ID, &UpsertClientVariableRequest{TemplateVariableID: variableID, Value: "db.acme"})
	require.NoError(t, err)

	view, err := svc.Upsert(ctx, client.ID, &UpsertClientVariableRequest{TemplateVariableID: variableID, Value: "   "})
	require.NoError(t, err)
	assert.False(t, view.HasValue)

	views, err := svc.List(client.ID)
	require.NoError(t, err)
	assert.False(t, views[0].HasValue)

	// 取值被清除后,严格模式生成必然缺失该必填变量
	envSvc := NewEnvService(db)
	_, err = envSvc.Generate(ctx, &GenerateEnvRequest{TemplateID: template.ID, ClientID: client.ID})
	var missingErr *apperrors.MissingRequiredVariablesError
	require.ErrorAs(t, err, &missingErr)
	assert.Contains(t, missingErr.Keys, "DB_HOST")
}

// TestClientVariableService_Upsert_RejectsCommon 测试公共变量不接受客户端取值
func TestClientVariableService_Upsert_RejectsCommon(t *testing.T) {
	db := setupTestDB(t)
	template := createTestTemplate(t, db, "backend")
	client := createTestClient(t, db, template.ID, "acme")

	svc := NewClientVariableService(db)
	_, err := svc.Upsert(context.Background(), client.ID, &UpsertClientVariableRequest{
		TemplateVariableID: variableIDByKey(t, template, "APP_NAME"),
		Value:              "override",
	})

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

// TestClientVariableService_Upsert_RejectsForeignVariable 测试跨模板变量被拒绝
func TestClientVariableService_Upsert_RejectsForeignVariable(t *testing.T) {
	db := setupTestDB(t)
	t1 := createTestTemplate(t, db, "backend")
	t2 := createTestTemplate(t, db, "frontend")
	client := createTestClient(t, db, t1.ID, "acme")

	svc := NewClientVariableService(db)
	_, err := svc.Upsert(context.Background(), client.ID, &UpsertClientVariableRequest{
		TemplateVariableID: variableIDByKey(t, t2, "DB_HOST"),
		Value:              "db.other",
	})

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

// TestClientVariableService_Delete 测试显式删除取值
func TestClientVariableService_Delete(t *testing.T) {
	db := setupTestDB(t)
	template := createTestTemplate(t, db, "backend")
	client := createTestClient(t, db, template.ID, "acme")
	variableID := variableIDByKey(t, template, "DB_HOST")

	svc := NewClientVariableService(db)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, client.ID, &UpsertClientVariableRequest{TemplateVariableID: variableID, Value: "db.acme"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, client.ID, variableID))

	views, err := svc.List(client.ID)
	require.NoError(t, err)
	assert.False(t, views[0].HasValue)
}
