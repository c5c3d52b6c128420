package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mautops/envgen-gin/internal/apperrors"
	"github.com/mautops/envgen-gin/internal/envfile"
	"github.com/mautops/envgen-gin/internal/metrics"
	"github.com/mautops/envgen-gin/internal/model"
	"github.com/mautops/envgen-gin/internal/repository"
	"github.com/mautops/envgen-gin/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TemplateService 模板服务接口
type TemplateService interface {
	List() ([]*TemplateWithStats, error)
	Get(id uint) (*model.Template, error)
	Create(ctx context.Context, req *CreateTemplateRequest) (*model.Template, error)
	Update(ctx context.Context, id uint, req *UpdateTemplateRequest) (*model.Template, error)
	Delete(ctx context.Context, id uint) error
	AnalyzeImport(files []envfile.SourceFile) (*envfile.Analysis, error)
	ConfirmImport(ctx context.Context, req *ConfirmImportRequest) (*ImportResult, error)
}

// VariableInput 模板变量定义输入
// @Description 模板变量定义
type VariableInput struct {
	Key         string `json:"key" example:"DB_HOST" binding:"required"` // 变量名
	IsCommon    bool   `json:"isCommon"`                                 // 是否为公共变量
	IsRequired  bool   `json:"isRequired"`                               // 是否必填（仅非公共变量）
	CommonValue string `json:"commonValue" example:"localhost"`          // 公共值（仅公共变量）
}

// CreateTemplateRequest 创建模板请求
// @Description 创建模板的请求参数
type CreateTemplateRequest struct {
	Name      string          `json:"name" example:"backend-api" binding:"required"` // 模板名称
	Variables []VariableInput `json:"variables" binding:"required,min=1,dive"`       // 变量定义列表
}

// UpdateTemplateRequest 更新模板请求
// @Description 更新模板的请求参数,变量列表整体替换
type UpdateTemplateRequest struct {
	Name      string          `json:"name" example:"backend-api" binding:"required"` // 模板名称
	Variables []VariableInput `json:"variables" binding:"required,min=1,dive"`       // 变量定义列表
}

// ConfirmImportRequest 确认导入请求
// @Description 批量导入分析确认后创建模板、客户端和取值
type ConfirmImportRequest struct {
	TemplateName     string                   `json:"templateName" binding:"required"`     // 新模板名称
	ClientNames      []string                 `json:"clientNames" binding:"required,min=1"` // 客户端名称列表
	Variables        envfile.VariableAnalysis `json:"variables"`                           // 分析结果中的变量分类
	PartialDecisions map[string]bool          `json:"partialDecisions"`                    // 部分变量的取舍决定
}

// ImportResult 确认导入结果
type ImportResult struct {
	Template               *model.Template `json:"template"`
	ClientsCreated         int             `json:"clientsCreated"`
	VariablesCreated       int             `json:"variablesCreated"`
	ClientVariablesCreated int             `json:"clientVariablesCreated"`
}

// TemplateStats 模板统计信息
type TemplateStats struct {
	ClientsCount   int `json:"clientsCount"`
	VariablesCount int `json:"variablesCount"`
}

// TemplateWithStats 带统计信息的模板
type TemplateWithStats struct {
	*model.Template
	Stats TemplateStats `json:"stats"`
}

// templateService 模板服务实现
type templateService struct {
	db   *gorm.DB
	repo repository.TemplateRepository
}

// NewTemplateService 创建模板服务
func NewTemplateService(db *gorm.DB, repo repository.TemplateRepository) TemplateService {
	return &templateService{
		db:   db,
		repo: repo,
	}
}

// List 查询模板列表（带统计信息,按创建时间倒序）
func (s *templateService) List() ([]*TemplateWithStats, error) {
	templates, err := s.repo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	result := make([]*TemplateWithStats, 0, len(templates))
	for _, t := range templates {
		stats := TemplateStats{
			ClientsCount:   len(t.Clients),
			VariablesCount: len(t.Variables),
		}
		// 客户端列表只用于统计,不随响应返回
		t.Clients = nil
		result = append(result, &TemplateWithStats{Template: t, Stats: stats})
	}

	return result, nil
}

// Get 获取模板详情（带变量）
func (s *templateService) Get(id uint) (*model.Template, error) {
	template, err := s.repo.FindByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("template")
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return template, nil
}

// Create 创建模板及其变量（单一事务）
func (s *templateService) Create(ctx context.Context, req *CreateTemplateRequest) (*model.Template, error) {
	if err := validateVariableInputs(req.Variables); err != nil {
		return nil, err
	}

	content := envfile.TemplateContent(inputsToRenderVars(req.Variables))

	var created *model.Template
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		template := &model.Template{
			Name:    strings.TrimSpace(req.Name),
			Content: content,
		}
		if err := tx.Create(template).Error; err != nil {
			return err
		}

		variables := inputsToModels(template.ID, req.Variables)
		if err := tx.Create(&variables).Error; err != nil {
			return err
		}

		created = template
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("a template with this name already exists")
		}
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	metrics.RecordTemplateCreated()

	// 重新加载带变量的模板用于响应
	return s.Get(created.ID)
}

// Update 更新模板: 整体替换变量列表（单一事务）
// 原有变量全部删除并重建,客户端对被删除变量的取值随之级联删除
func (s *templateService) Update(ctx context.Context, id uint, req *UpdateTemplateRequest) (*model.Template, error) {
	if err := validateVariableInputs(req.Variables); err != nil {
		return nil, err
	}

	content := envfile.TemplateContent(inputsToRenderVars(req.Variables))

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var template model.Template
		if err := tx.First(&template, id).Error; err != nil {
			return err
		}

		// 更新模板本体
		updates := map[string]interface{}{
			"name":    strings.TrimSpace(req.Name),
			"content": content,
		}
		if err := tx.Model(&template).Updates(updates).Error; err != nil {
			return err
		}

		// 删除所有现有变量（级联删除客户端取值）
		if err := tx.Where("template_id = ?", id).Delete(&model.TemplateVariable{}).Error; err != nil {
			return err
		}

		// 重建变量
		variables := inputsToModels(id, req.Variables)
		return tx.Create(&variables).Error
	})
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("template")
		}
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("a template with this name already exists")
		}
		return nil, fmt.Errorf("failed to update template: %w", err)
	}

	return s.Get(id)
}

// Delete 删除模板,级联删除变量、客户端和取值
func (s *templateService) Delete(ctx context.Context, id uint) error {
	template, err := s.repo.FindByIDWithClients(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return apperrors.NewNotFoundError("template")
		}
		return fmt.Errorf("failed to get template: %w", err)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"template_id": id,
		"template":    template.Name,
		"variables":   len(template.Variables),
		"clients":     len(template.Clients),
	}).Info("已删除模板及其级联数据")

	return nil
}

// AnalyzeImport 分析上传的 .env 文件,分类变量
func (s *templateService) AnalyzeImport(files []envfile.SourceFile) (*envfile.Analysis, error) {
	analysis, err := envfile.Analyze(files)
	if err != nil {
		return nil, err
	}

	metrics.RecordImportAnalysis()
	return analysis, nil
}

// ConfirmImport 确认导入: 在单一事务中创建模板、变量、客户端和取值
func (s *templateService) ConfirmImport(ctx context.Context, req *ConfirmImportRequest) (*ImportResult, error) {
	definitions, clientValues := envfile.BuildImport(req.Variables, req.PartialDecisions)
	if len(definitions) == 0 {
		return nil, apperrors.NewValidationError("import would create a template without variables")
	}

	// 客户端名在模板内唯一,事务前先查重,避免把客户端冲突误报成模板名冲突
	seenClients := make(map[string]struct{}, len(req.ClientNames))
	for _, name := range req.ClientNames {
		if _, dup := seenClients[name]; dup {
			return nil, apperrors.NewValidationError("duplicate client name %q in import", name)
		}
		seenClients[name] = struct{}{}
	}

	content := envfile.TemplateContent(definitionsToRenderVars(definitions))

	result := &ImportResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 创建模板
		template := &model.Template{
			Name:    strings.TrimSpace(req.TemplateName),
			Content: content,
		}
		if err := tx.Create(template).Error; err != nil {
			return err
		}

		// 2. 创建模板变量
		variables := make([]model.TemplateVariable, 0, len(definitions))
		for _, def := range definitions {
			variables = append(variables, definitionToModel(template.ID, def))
		}
		if err := tx.Create(&variables).Error; err != nil {
			return err
		}

		// 3. 创建客户端
		clients := make([]model.Client, 0, len(req.ClientNames))
		for _, name := range req.ClientNames {
			clients = append(clients, model.Client{TemplateID: template.ID, Name: name})
		}
		if err := tx.Create(&clients).Error; err != nil {
			return err
		}

		// 4. 创建客户端取值
		// key → templateVariableId 和 clientName → clientId 的映射
		variableIDs := make(map[string]uint, len(variables))
		for _, v := range variables {
			variableIDs[v.Key] = v.ID
		}
		clientIDs := make(map[string]uint, len(clients))
		for _, c := range clients {
			clientIDs[c.Name] = c.ID
		}

		values := make([]model.ClientVariable, 0, len(clientValues))
		for _, cv := range clientValues {
			variableID, okVar := variableIDs[cv.Key]
			clientID, okClient := clientIDs[cv.ClientName]
			if !okVar || !okClient {
				continue
			}
			values = append(values, model.ClientVariable{
				ClientID:           clientID,
				TemplateVariableID: variableID,
				Value:              cv.Value,
			})
		}
		if len(values) > 0 {
			if err := tx.Create(&values).Error; err != nil {
				return err
			}
		}

		result.ClientsCreated = len(clients)
		result.VariablesCreated = len(variables)
		result.ClientVariablesCreated = len(values)
		result.Template = template
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("a template with this name already exists")
		}
		return nil, fmt.Errorf("failed to confirm import: %w", err)
	}

	metrics.RecordTemplateCreated()

	// 重新加载带变量的模板用于响应
	template, err := s.Get(result.Template.ID)
	if err != nil {
		return nil, err
	}
	result.Template = template

	return result, nil
}

// validateVariableInputs 验证变量定义列表
// 不变量: key 非空且模板内唯一; isCommon 与 isRequired 互斥;
// 公共变量必须有公共值,非公共变量不能有公共值
func validateVariableInputs(inputs []VariableInput) error {
	if len(inputs) == 0 {
		return apperrors.NewValidationError("at least one variable is required")
	}

	seen := make(map[string]struct{}, len(inputs))
	for _, v := range inputs {
		if err := utils.ValidateVariableKey(v.Key); err != nil {
			return apperrors.NewValidationError("invalid variable key %q: %s", v.Key, err.Error())
		}
		if _, dup := seen[v.Key]; dup {
			return apperrors.NewConflictError("duplicate variable key %q", v.Key)
		}
		seen[v.Key] = struct{}{}

		if v.IsCommon && v.IsRequired {
			return apperrors.NewValidationError("variable %q cannot be both common and required", v.Key)
		}
		if v.IsCommon && v.CommonValue == "" {
			return apperrors.NewValidationError("common variable %q must have a value", v.Key)
		}
	}

	return nil
}

// inputsToRenderVars 把变量输入转为渲染用的变量定义
func inputsToRenderVars(inputs []VariableInput) []envfile.Variable {
	vars := make([]envfile.Variable, 0, len(inputs))
	for _, v := range inputs {
		vars = append(vars, envfile.Variable{
			Key:         v.Key,
			IsCommon:    v.IsCommon,
			IsRequired:  v.IsRequired,
			CommonValue: v.CommonValue,
		})
	}
	return vars
}

// definitionsToRenderVars 把导入定义转为渲染用的变量定义
func definitionsToRenderVars(defs []envfile.VariableDefinition) []envfile.Variable {
	vars := make([]envfile.Variable, 0, len(defs))
	for _, d := range defs {
		vars = append(vars, envfile.Variable{
			Key:         d.Key,
			IsCommon:    d.IsCommon,
			IsRequired:  d.IsRequired,
			CommonValue: d.CommonValue,
		})
	}
	return vars
}

// inputsToModels 把变量输入转为数据模型
func inputsToModels(templateID uint, inputs []VariableInput) []model.TemplateVariable {
	variables := make([]model.TemplateVariable, 0, len(inputs))
	for _, v := range inputs {
		variables = append(variables, definitionToModel(templateID, envfile.VariableDefinition{
			Key:         v.Key,
			IsCommon:    v.IsCommon,
			IsRequired:  v.IsRequired,
			CommonValue: v.CommonValue,
		}))
	}
	return variables
}

// definitionToModel 单个变量定义转数据模型
// commonValue 仅公共变量持有,非公共变量一律存 NULL
func definitionToModel(templateID uint, def envfile.VariableDefinition) model.TemplateVariable {
	var commonValue *string
	if def.IsCommon {
		value := def.CommonValue
		commonValue = &value
	}
	return model.TemplateVariable{
		TemplateID:  templateID,
		Key:         def.Key,
		IsCommon:    def.IsCommon,
		IsRequired:  def.IsRequired,
		CommonValue: commonValue,
	}
}
