package service

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/mautops/envgen-gin/internal/apperrors"
	"github.com/mautops/envgen-gin/internal/envfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEnvService_Generate 测试严格模式生成完整 .env 内容
func TestEnvService_Generate(t *testing.T) {
	db := setupTestDB(t)
	template := createTestTemplate(t, db, "backend")
	client := createTestClient(t, db, template.ID, "acme")

	varSvc := NewClientVariableService(db)
	_, err := varSvc.Upsert(context.Background(), client.ID, &UpsertClientVariableRequest{
		TemplateVariableID: variableIDByKey(t, template, "DB_HOST"),
		Value:              "db.acme",
	})
	require.NoError(t, err)

	svc := NewEnvService(db)
	result, err := svc.Generate(context.Background(), &GenerateEnvRequest{
		TemplateID: template.ID,
		ClientID:   client.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "acme", result.ClientName)
	assert.Equal(t, "backend", result.TemplateName)
	// 按模板定义顺序输出; 可选变量未配置时为空值
	assert.Equal(t, "APP_NAME=myapp\nDB_HOST=db.acme\nLOG_LEVEL=", result.EnvContent)
}

// TestEnvService_Generate_MissingRequired 测试缺失必填变量时整体失败
func TestEnvService_Generate_MissingRequired(t *testing.T) {
	db := setupTestDB(t)
	template := createTestTemplate(t, db, "backend")
	client := createTestClient(t, db, template.ID, "acme")

	svc := NewEnvService(db)
	_, err := svc.Generate(context.Background(), &GenerateEnvRequest{
		TemplateID: template.ID,
		ClientID:   client.ID,
	})

	var missingErr *apperrors.MissingRequiredVariablesError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, []string{"DB_HOST"}, missingErr.Keys)
}

// TestEnvService_Generate_ClientFromOtherTemplate 测试客户端与模板不匹配
func TestEnvService_Generate_ClientFromOtherTemplate(t *testing.T) {
	db := setupTestDB(t)
	t1 := createTestTemplate(t, db, "backend")
	t2 := createTestTemplate(t, db, "frontend")
	client := createTestClient(t, db, t2.ID, "acme")

	svc := NewEnvService(db)
	_, err := svc.Generate(context.Background(), &GenerateEnvRequest{
		TemplateID: t1.ID,
		ClientID:   client.ID,
	})

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

// TestEnvService_ExportZip 测试批量导出: 每个客户端一个文件,缺失值不阻断导出
func TestEnvService_ExportZip(t *testing.T) {
	db := setupTestDB(t)
	template := createTestTemplate(t, db, "backend")
	complete := createTestClient(t, db, template.ID, "complete")
	_ = createTestClient(t, db, template.ID, "in complete")

	varSvc := NewClientVariableService(db)
	_, err := varSvc.Upsert(context.Background(), complete.ID, &UpsertClientVariableRequest{
		TemplateVariableID: variableIDByKey(t, template, "DB_HOST"),
		Value:              "db.complete",
	})
	require.NoError(t, err)

	svc := NewEnvService(db)
	export, err := svc.ExportZip(context.Background(), template.ID)
	require.NoError(t, err)
	assert.Equal(t, "env-files-backend.zip", export.Filename)

	var buf bytes.Buffer
	require.NoError(t, export.WriteTo(&buf))

	reader, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, reader.File, 2)

	contents := make(map[string]string)
	for _, f := range reader.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		contents[f.Name] = string(data)
	}

	// 配置完整的客户端: 干净的文件
	completeContent, ok := contents["complete.env"]
	require.True(t, ok)
	assert.False(t, strings.HasPrefix(completeContent, envfile.MissingWarning))
	assert.Contains(t, completeContent, "DB_HOST=db.complete")

	// 配置不完整的客户端: 文件名被清洗,内容带警告和占位符
	incompleteContent, ok := contents["in_complete.env"]
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(incompleteContent, envfile.MissingWarning))
	assert.Contains(t, incompleteContent, "DB_HOST={{DB_HOST}}")
}

// TestEnvService_ExportZip_NoClients 测试没有客户端时拒绝导出
func TestEnvService_ExportZip_NoClients(t *testing.T) {
	db := setupTestDB(t)
	template := createTestTemplate(t, db, "backend")

	svc := NewEnvService(db)
	_, err := svc.ExportZip(context.Background(), template.ID)

	var noClientsErr *apperrors.NoClientsError
	require.ErrorAs(t, err, &noClientsErr)
	assert.Equal(t, template.ID, noClientsErr.TemplateID)
}

// TestEnvService_ExportZip_TemplateNotFound 测试模板不存在时返回 404 错误
func TestEnvService_ExportZip_TemplateNotFound(t *testing.T) {
	db := setupTestDB(t)

	svc := NewEnvService(db)
	_, err := svc.ExportZip(context.Background(), 999)

	var notFoundErr *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}
