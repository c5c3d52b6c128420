package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mautops/envgen-gin/internal/service"
)

// EnvController 环境文件生成控制器
type EnvController struct {
	envService service.EnvService
}

// NewEnvController 创建环境文件生成控制器
func NewEnvController(envService service.EnvService) *EnvController {
	return &EnvController{
		envService: envService,
	}
}

// Generate 生成单客户端 .env 内容
// @Summary      生成 .env 内容
// @Description  严格模式: 任何必填变量缺失时整体失败,不产出部分内容
// @Tags         环境文件
// @Accept       json
// @Produce      json
// @Param        request body service.GenerateEnvRequest true "生成参数"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /env/generate [post]
func (c *EnvController) Generate(ctx *gin.Context) {
	var req service.GenerateEnvRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	result, err := c.envService.Generate(ctx.Request.Context(), &req)
	if err != nil {
		RespondError(ctx, err)
		return
	}

	Success(ctx, result)
}

// ExportZip 批量导出模板的全部客户端
// @Summary      批量导出 ZIP
// @Description  宽松模式: 为模板的每个客户端生成一个 .env 文件并打包下载,缺失必填变量的文件带占位符和警告注释
// @Tags         环境文件
// @Produce      application/zip
// @Param        id path int true "模板 ID"
// @Success      200  {file}    binary
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /templates/{id}/export [get]
func (c *EnvController) ExportZip(ctx *gin.Context) {
	templateID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	export, err := c.envService.ExportZip(ctx.Request.Context(), templateID)
	if err != nil {
		RespondError(ctx, err)
		return
	}

	// 先提交响应头,再把归档直接流入响应体
	ctx.Header("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	ctx.Header("Content-Type", "application/zip")
	ctx.Status(http.StatusOK)
	if err := export.WriteTo(ctx.Writer); err != nil {
		// 响应头已写出,只能记录错误并中断流
		GetLogger().WithError(err).Error("导出 ZIP 流写入失败")
	}
}
