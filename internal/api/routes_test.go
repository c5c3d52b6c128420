package api

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mautops/envgen-gin/internal/config"
	"github.com/mautops/envgen-gin/internal/database"
	"github.com/mautops/envgen-gin/internal/repository"
	"github.com/mautops/envgen-gin/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// buildTestRouter 构建与生产一致的完整路由
func buildTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := config.Default()
	router := SetupRoutes(db, cfg)

	templateController := NewTemplateController(service.NewTemplateService(db, repository.NewTemplateRepository(db)))
	clientController := NewClientController(service.NewClientService(repository.NewClientRepository(db), repository.NewTemplateRepository(db)))
	clientVarController := NewClientVariableController(service.NewClientVariableService(db))
	envController := NewEnvController(service.NewEnvService(db))

	v1 := router.Group("/api/v1")
	{
		templates := v1.Group("/templates")
		{
			templates.POST("/analyze-import", templateController.AnalyzeImport)
			templates.POST("/confirm-import", templateController.ConfirmImport)
			templates.POST("", templateController.Create)
			templates.GET("", templateController.List)
			templates.GET("/:id", templateController.Get)
			templates.PUT("/:id", templateController.Update)
			templates.DELETE("/:id", templateController.Delete)
			templates.GET("/:id/export", envController.ExportZip)
		}

		clients := v1.Group("/clients")
		{
			clients.GET("", clientController.List)
			clients.POST("", clientController.Create)
			clients.PUT("/:id", clientController.Update)
			clients.DELETE("/:id", clientController.Delete)
			clients.GET("/:id/variables", clientVarController.List)
			clients.PUT("/:id/variables", clientVarController.Upsert)
			clients.DELETE("/:id/variables/:variableId", clientVarController.Delete)
		}

		env := v1.Group("/env")
		{
			env.POST("/generate", envController.Generate)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		Error(c, http.StatusNotFound, "route not found", "the requested route does not exist")
	})

	return router
}

// doJSON 发送 JSON 请求并返回响应
func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// dataFromResponse 从统一响应里取 data 字段
func dataFromResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var resp struct {
		Code int             `json:"code"`
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 0, resp.Code)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	return data
}

// TestAPI_TemplateLifecycle 测试模板从创建到导出的完整链路
func TestAPI_TemplateLifecycle(t *testing.T) {
	router := buildTestRouter(t)

	// 1. 创建模板
	w := doJSON(router, http.MethodPost, "/api/v1/templates", gin.H{
		"name": "backend",
		"variables": []gin.H{
			{"key": "APP_NAME", "isCommon": true, "commonValue": "myapp"},
			{"key": "DB_HOST", "isRequired": true},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	template := dataFromResponse(t, w)
	templateID := int(template["id"].(float64))

	variables := template["variables"].([]interface{})
	require.Len(t, variables, 2)
	var dbHostID int
	for _, v := range variables {
		variable := v.(map[string]interface{})
		if variable["key"] == "DB_HOST" {
			dbHostID = int(variable["id"].(float64))
		}
	}
	require.NotZero(t, dbHostID)

	// 2. 重名创建被拒绝
	w = doJSON(router, http.MethodPost, "/api/v1/templates", gin.H{
		"name":      "backend",
		"variables": []gin.H{{"key": "X"}},
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// 3. 创建客户端
	w = doJSON(router, http.MethodPost, "/api/v1/clients", gin.H{
		"templateId": templateID,
		"name":       "acme",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	client := dataFromResponse(t, w)
	clientID := int(client["id"].(float64))

	// 4. 缺失必填变量时严格生成失败
	w = doJSON(router, http.MethodPost, "/api/v1/env/generate", gin.H{
		"templateId": templateID,
		"clientId":   clientID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "DB_HOST")

	// 5. 设置取值后生成成功
	w = doJSON(router, http.MethodPut, fmt.Sprintf("/api/v1/clients/%d/variables", clientID), gin.H{
		"templateVariableId": dbHostID,
		"value":              "db.acme",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(router, http.MethodPost, "/api/v1/env/generate", gin.H{
		"templateId": templateID,
		"clientId":   clientID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	generated := dataFromResponse(t, w)
	assert.Equal(t, "APP_NAME=myapp\nDB_HOST=db.acme", generated["envContent"])

	// 6. ZIP 导出
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/templates/%d/export", templateID), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "env-files-backend.zip")

	reader, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	require.NoError(t, err)
	require.Len(t, reader.File, 1)
	assert.Equal(t, "acme.env", reader.File[0].Name)

	// 7. 删除模板后列表为空
	w = doJSON(router, http.MethodDelete, fmt.Sprintf("/api/v1/templates/%d", templateID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/templates", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listResp struct {
		Data []interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Empty(t, listResp.Data)
}

// TestAPI_AnalyzeImport_JSON 测试 JSON 形式的导入分析
func TestAPI_AnalyzeImport_JSON(t *testing.T) {
	router := buildTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/v1/templates/analyze-import", gin.H{
		"files": []gin.H{
			{"filename": "alpha.env", "content": "SHARED=same\nDB_HOST=db.alpha\n"},
			{"filename": "beta.env", "content": "SHARED=same\nDB_HOST=db.beta\n"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	analysis := dataFromResponse(t, w)
	stats := analysis["statistics"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["commonVariables"])
	assert.Equal(t, float64(1), stats["customVariables"])
	assert.Equal(t, float64(0), stats["partialVariables"])
}

// TestAPI_AnalyzeImport_Multipart 测试 multipart 文件上传分析
func TestAPI_AnalyzeImport_Multipart(t *testing.T) {
	router := buildTestRouter(t)

	var body bytes.Buffer
	mw := newMultipartBody(t, &body, map[string]string{
		"alpha.env": "KEY=1\n",
		"beta.env":  "KEY=2\n",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/templates/analyze-import", &body)
	req.Header.Set("Content-Type", mw)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	analysis := dataFromResponse(t, w)
	assert.Equal(t, float64(2), analysis["totalFiles"])
}

// newMultipartBody 构造含多个上传文件的 multipart 请求体,返回 Content-Type
func newMultipartBody(t *testing.T, buf *bytes.Buffer, files map[string]string) string {
	t.Helper()

	mw := multipart.NewWriter(buf)
	for filename, content := range files {
		part, err := mw.CreateFormFile("files", filename)
		require.NoError(t, err)
		_, err = io.WriteString(part, content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return mw.FormDataContentType()
}

// TestAPI_NoRoute 测试未匹配路由返回 JSON 404
func TestAPI_NoRoute(t *testing.T) {
	router := buildTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/v1/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "route not found")
}

// TestAPI_Health 测试健康检查端点
func TestAPI_Health(t *testing.T) {
	router := buildTestRouter(t)

	w := doJSON(router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}
