package api

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mautops/envgen-gin/internal/envfile"
	"github.com/mautops/envgen-gin/internal/service"
	"github.com/mautops/envgen-gin/internal/utils"
)

// maxImportFiles 单次分析允许的最大文件数,由 SetupRoutes 按配置覆盖
var maxImportFiles = 100

// TemplateController 模板控制器
type TemplateController struct {
	templateService service.TemplateService
}

// NewTemplateController 创建模板控制器
func NewTemplateController(templateService service.TemplateService) *TemplateController {
	return &TemplateController{
		templateService: templateService,
	}
}

// parseIDParam 解析路径中的数字 ID
func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		Error(ctx, http.StatusBadRequest, "invalid id", "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// List 查询模板列表
// @Summary      查询模板列表
// @Description  返回所有模板及其客户端/变量统计,按创建时间倒序
// @Tags         模板管理
// @Produce      json
// @Success      200  {object}  Response
// @Failure      500  {object}  ErrorResponse
// @Router       /templates [get]
func (c *TemplateController) List(ctx *gin.Context) {
	templates, err := c.templateService.List()
	if err != nil {
		RespondError(ctx, err)
		return
	}

	Success(ctx, templates)
}

// Get 获取模板详情
// @Summary      获取模板详情
// @Description  根据 ID 获取模板及其变量定义
// @Tags         模板管理
// @Produce      json
// @Param        id path int true "模板 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /templates/{id} [get]
func (c *TemplateController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	template, err := c.templateService.Get(id)
	if err != nil {
		RespondError(ctx, err)
		return
	}

	Success(ctx, template)
}

// Create 创建模板
// @Summary      创建模板
// @Description  创建新模板及其变量定义,模板文本按定义自动生成
// @Tags         模板管理
// @Accept       json
// @Produce      json
// @Param        request body service.CreateTemplateRequest true "模板信息"
// @Success      201  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /templates [post]
func (c *TemplateController) Create(ctx *gin.Context) {
	var req service.CreateTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	// 输入验证和清理
	if err := utils.ValidateName(req.Name); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid template name", err.Error())
		return
	}
	req.Name, _ = utils.TrimAndValidate(req.Name, 255)

	template, err := c.templateService.Create(ctx.Request.Context(), &req)
	if err != nil {
		RespondError(ctx, err)
		return
	}

	Created(ctx, template)
}

// Update 更新模板
// @Summary      更新模板
// @Description  更新模板名称并整体替换变量定义
// @Tags         模板管理
// @Accept       json
// @Produce      json
// @Param        id path int true "模板 ID"
// @Param        request body service.UpdateTemplateRequest true "模板信息"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /templates/{id} [put]
func (c *TemplateController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.UpdateTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	if err := utils.ValidateName(req.Name); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid template name", err.Error())
		return
	}
	req.Name, _ = utils.TrimAndValidate(req.Name, 255)

	template, err := c.templateService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		RespondError(ctx, err)
		return
	}

	Success(ctx, template)
}

// Delete 删除模板
// @Summary      删除模板
// @Description  删除模板,级联删除其变量、客户端和取值
// @Tags         模板管理
// @Produce      json
// @Param        id path int true "模板 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /templates/{id} [delete]
func (c *TemplateController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.templateService.Delete(ctx.Request.Context(), id); err != nil {
		RespondError(ctx, err)
		return
	}

	Success(ctx, gin.H{"deleted": true})
}

// analyzeImportJSONRequest JSON 形式的分析请求
type analyzeImportJSONRequest struct {
	Files []envfile.SourceFile `json:"files" binding:"required,min=1,dive"`
}

// AnalyzeImport 分析上传的 .env 文件
// @Summary      分析导入文件
// @Description  上传一批 .env 文件,按变量在各文件中的分布分类为公共/自定义/部分变量
// @Tags         模板管理
// @Accept       mpfd
// @Produce      json
// @Param        files formData file true "一个或多个 .env 文件"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Router       /templates/analyze-import [post]
func (c *TemplateController) AnalyzeImport(ctx *gin.Context) {
	files, ok := c.readSourceFiles(ctx)
	if !ok {
		return
	}

	analysis, err := c.templateService.AnalyzeImport(files)
	if err != nil {
		RespondError(ctx, err)
		return
	}

	Success(ctx, analysis)
}

// readSourceFiles 从请求中读取 .env 文件
// 支持 multipart 上传和 JSON 两种形式
func (c *TemplateController) readSourceFiles(ctx *gin.Context) ([]envfile.SourceFile, bool) {
	if strings.Contains(ctx.ContentType(), "application/json") {
		var req analyzeImportJSONRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
			return nil, false
		}
		if len(req.Files) > maxImportFiles {
			Error(ctx, http.StatusBadRequest, "too many files",
				"at most "+strconv.Itoa(maxImportFiles)+" files per analysis")
			return nil, false
		}
		return req.Files, true
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		Error(ctx, http.StatusBadRequest, "invalid multipart form", err.Error())
		return nil, false
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		Error(ctx, http.StatusBadRequest, "no files uploaded", "field 'files' is required")
		return nil, false
	}
	if len(headers) > maxImportFiles {
		Error(ctx, http.StatusBadRequest, "too many files",
			"at most "+strconv.Itoa(maxImportFiles)+" files per analysis")
		return nil, false
	}

	files := make([]envfile.SourceFile, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			Error(ctx, http.StatusBadRequest, "failed to read uploaded file", err.Error())
			return nil, false
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			Error(ctx, http.StatusBadRequest, "failed to read uploaded file", err.Error())
			return nil, false
		}
		files = append(files, envfile.SourceFile{
			Filename: header.Filename,
			Content:  string(content),
		})
	}

	return files, true
}

// ConfirmImport 确认导入
// @Summary      确认导入
// @Description  根据分析结果和部分变量取舍决定,一次性创建模板、客户端和取值
// @Tags         模板管理
// @Accept       json
// @Produce      json
// @Param        request body service.ConfirmImportRequest true "确认导入信息"
// @Success      201  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /templates/confirm-import [post]
func (c *TemplateController) ConfirmImport(ctx *gin.Context) {
	var req service.ConfirmImportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	if err := utils.ValidateName(req.TemplateName); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid template name", err.Error())
		return
	}
	req.TemplateName, _ = utils.TrimAndValidate(req.TemplateName, 255)

	result, err := c.templateService.ConfirmImport(ctx.Request.Context(), &req)
	if err != nil {
		RespondError(ctx, err)
		return
	}

	Created(ctx, result)
}
