package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mautops/envgen-gin/internal/service"
	"github.com/mautops/envgen-gin/internal/utils"
)

// ClientController 客户端控制器
type ClientController struct {
	clientService service.ClientService
}

// NewClientController 创建客户端控制器
func NewClientController(clientService service.ClientService) *ClientController {
	return &ClientController{
		clientService: clientService,
	}
}

// List 查询客户端列表
// @Summary      查询客户端列表
// @Description  返回指定模板下的客户端,按创建时间倒序
// @Tags         客户端管理
// @Produce      json
// @Param        templateId query int true "模板 ID"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /clients [get]
func (c *ClientController) List(ctx *gin.Context) {
	templateID, err := strconv.ParseUint(ctx.Query("templateId"), 10, 64)
	if err != nil || templateID == 0 {
		Error(ctx, http.StatusBadRequest, "invalid template id", "query parameter 'templateId' must be a positive integer")
		return
	}

	clients, err := c.clientService.List(uint(templateID))
	if err != nil {
		RespondError(ctx, err)
		return
	}

	Success(ctx, clients)
}

// Create 创建客户端
// @Summary      创建客户端
// @Description  在指定模板下创建客户端,名称在模板内唯一
// @Tags         客户端管理
// @Accept       json
// @Produce      json
// @Param        request body service.CreateClientRequest true "客户端信息"
// @Success      201  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /clients [post]
func (c *ClientController) Create(ctx *gin.Context) {
	var req service.CreateClientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	if err := utils.ValidateName(req.Name); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid client name", err.Error())
		return
	}
	req.Name, _ = utils.TrimAndValidate(req.Name, 255)

	client, err := c.clientService.Create(ctx.Request.Context(), &req)
	if err != nil {
		RespondError(ctx, err)
		return
	}

	Created(ctx, client)
}

// Update 重命名客户端
// @Summary      重命名客户端
// @Tags         客户端管理
// @Accept       json
// @Produce      json
// @Param        id path int true "客户端 ID"
// @Param        request body service.UpdateClientRequest true "客户端信息"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /clients/{id} [put]
func (c *ClientController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.UpdateClientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	if err := utils.ValidateName(req.Name); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid client name", err.Error())
		return
	}
	req.Name, _ = utils.TrimAndValidate(req.Name, 255)

	client, err := c.clientService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		RespondError(ctx, err)
		return
	}

	Success(ctx, client)
}

// Delete 删除客户端
// @Summary      删除客户端
// @Description  删除客户端及其所有变量取值
// @Tags         客户端管理
// @Produce      json
// @Param        id path int true "客户端 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /clients/{id} [delete]
func (c *ClientController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.clientService.Delete(ctx.Request.Context(), id); err != nil {
		RespondError(ctx, err)
		return
	}

	Success(ctx, gin.H{"deleted": true})
}
