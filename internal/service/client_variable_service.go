package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mautops/envgen-gin/internal/apperrors"
	"github.com/mautops/envgen-gin/internal/model"
	"github.com/mautops/envgen-gin/internal/repository"
	"gorm.io/gorm"
)

// ClientVariableService 客户端变量取值服务接口
type ClientVariableService interface {
	List(clientID uint) ([]*ClientVariableView, error)
	Upsert(ctx context.Context, clientID uint, req *UpsertClientVariableRequest) (*ClientVariableView, error)
	Delete(ctx context.Context, clientID, variableID uint) error
}

// UpsertClientVariableRequest 设置客户端变量取值请求
// @Description 空白值等价于删除该取值
type UpsertClientVariableRequest struct {
	TemplateVariableID uint   `json:"templateVariableId" example:"1" binding:"required"` // 模板变量 ID
	Value              string `json:"value" example:"db.acme.internal"`                  // 取值,空白表示清除
}

// ClientVariableView 客户端视角的变量合并视图
// 模板的每个非公共变量都出现一次,无论客户端是否已配置取值
type ClientVariableView struct {
	TemplateVariableID uint   `json:"templateVariableId"`
	Key                string `json:"key"`
	IsRequired         bool   `json:"isRequired"`
	Value              string `json:"value"`
	HasValue           bool   `json:"hasValue"`
}

// clientVariableService 客户端变量取值服务实现
type clientVariableService struct {
	db         *gorm.DB
	clientRepo repository.ClientRepository
	valueRepo  repository.ClientVariableRepository
}

// NewClientVariableService 创建客户端变量取值服务
func NewClientVariableService(db *gorm.DB) ClientVariableService {
	return &clientVariableService{
		db:         db,
		clientRepo: repository.NewClientRepository(db),
		valueRepo:  repository.NewClientVariableRepository(db),
	}
}

// List 查询客户端的变量合并视图,按变量名排序
// 公共变量不出现在视图中,其值由模板统一决定
func (s *clientVariableService) List(clientID uint) ([]*ClientVariableView, error) {
	client, err := s.clientRepo.FindByID(clientID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("client")
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	var variables []model.TemplateVariable
	if err := s.db.
		Where("template_id = ? AND is_common = ?", client.TemplateID, false).
		Find(&variables).Error; err != nil {
		return nil, fmt.Errorf("failed to load template variables: %w", err)
	}

	values, err := s.valueRepo.FindByClient(clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load client values: %w", err)
	}
	valueByVariable := make(map[uint]string, len(values))
	for _, v := range values {
		valueByVariable[v.TemplateVariableID] = v.Value
	}

	views := make([]*ClientVariableView, 0, len(variables))
	for _, variable := range variables {
		value, ok := valueByVariable[variable.ID]
		views = append(views, &ClientVariableView{
			TemplateVariableID: variable.ID,
			Key:                variable.Key,
			IsRequired:         variable.IsRequired,
			Value:              value,
			HasValue:           ok,
		})
	}

	sort.Slice(views, func(i, j int) bool {
		return views[i].Key < views[j].Key
	})

	return views, nil
}

// Upsert 设置或更新客户端变量取值
// 空白值等价于删除已有取值; 公共变量不接受客户端取值
func (s *clientVariableService) Upsert(ctx context.Context, clientID uint, req *UpsertClientVariableRequest) (*ClientVariableView, error) {
	client, err := s.clientRepo.FindByID(clientID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("client")
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	var variable model.TemplateVariable
	if err := s.db.First(&variable, req.TemplateVariableID).Error; err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("template variable")
		}
		return nil, fmt.Errorf("failed to get template variable: %w", err)
	}

	if variable.TemplateID != client.TemplateID {
		return nil, apperrors.NewValidationError("variable does not belong to the client's template")
	}
	if variable.IsCommon {
		return nil, apperrors.NewValidationError("common variables cannot have per-client values")
	}

	value := strings.TrimSpace(req.Value)
	if value == "" {
		// 空白值: 清除已有取值
		if err := s.valueRepo.DeleteByPair(clientID, variable.ID); err != nil {
			return nil, fmt.Errorf("failed to clear client value: %w", err)
		}
		return &ClientVariableView{
			TemplateVariableID: variable.ID,
			Key:                variable.Key,
			IsRequired:         variable.IsRequired,
		}, nil
	}

	if err := s.valueRepo.Upsert(&model.ClientVariable{
		ClientID:           clientID,
		TemplateVariableID: variable.ID,
		Value:              value,
	}); err != nil {
		return nil, fmt.Errorf("failed to save client value: %w", err)
	}

	return &ClientVariableView{
		TemplateVariableID: variable.ID,
		Key:                variable.Key,
		IsRequired:         variable.IsRequired,
		Value:              value,
		HasValue:           true,
	}, nil
}

// Delete 删除客户端对某个变量的取值
func (s *clientVariableService) Delete(ctx context.Context, clientID, variableID uint) error {
	if _, err := s.clientRepo.FindByID(clientID); err != nil {
		if repository.IsNotFound(err) {
			return apperrors.NewNotFoundError("client")
		}
		return fmt.Errorf("failed to get client: %w", err)
	}

	if err := s.valueRepo.DeleteByPair(clientID, variableID); err != nil {
		return fmt.Errorf("failed to delete client value: %w", err)
	}
	return nil
}
