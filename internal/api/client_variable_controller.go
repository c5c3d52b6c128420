package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mautops/envgen-gin/internal/service"
)

// ClientVariableController 客户端变量取值控制器
type ClientVariableController struct {
	clientVariableService service.ClientVariableService
}

// NewClientVariableController 创建客户端变量取值控制器
func NewClientVariableController(clientVariableService service.ClientVariableService) *ClientVariableController {
	return &ClientVariableController{
		clientVariableService: clientVariableService,
	}
}

// List 查询客户端变量合并视图
// @Summary      查询客户端变量
// @Description  返回模板所有非公共变量及客户端已配置的取值,按变量名排序
// @Tags         客户端变量
// @Produce      json
// @Param        id path int true "客户端 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /clients/{id}/variables [get]
func (c *ClientVariableController) List(ctx *gin.Context) {
	clientID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	views, err := c.clientVariableService.List(clientID)
	if err != nil {
		RespondError(ctx, err)
		return
	}

	Success(ctx, views)
}

// Upsert 设置客户端变量取值
// @Summary      设置客户端变量取值
// @Description  设置或更新客户端对某个非公共变量的取值,空白值等价于删除
// @Tags         客户端变量
// @Accept       json
// @Produce      json
// @Param        id path int true "客户端 ID"
// @Param        request body service.UpsertClientVariableRequest true "取值信息"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /clients/{id}/variables [put]
func (c *ClientVariableController) Upsert(ctx *gin.Context) {
	clientID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.UpsertClientVariableRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	view, err := c.clientVariableService.Upsert(ctx.Request.Context(), clientID, &req)
	if err != nil {
		RespondError(ctx, err)
		return
	}

	Success(ctx, view)
}

// Delete 删除客户端变量取值
// @Summary      删除客户端变量取值
// @Tags         客户端变量
// @Produce      json
// @Param        id path int true "客户端 ID"
// @Param        variableId path int true "模板变量 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /clients/{id}/variables/{variableId} [delete]
func (c *ClientVariableController) Delete(ctx *gin.Context) {
	clientID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	variableID, ok := parseIDParam(ctx, "variableId")
	if !ok {
		return
	}

	if err := c.clientVariableService.Delete(ctx.Request.Context(), clientID, variableID); err != nil {
		RespondError(ctx, err)
		return
	}

	Success(ctx, gin.H{"deleted": true})
}
