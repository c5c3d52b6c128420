package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mautops/envgen-gin/internal/apperrors"
	"github.com/mautops/envgen-gin/internal/model"
	"github.com/mautops/envgen-gin/internal/repository"
)

// ClientService 客户端服务接口
type ClientService interface {
	List(templateID uint) ([]*model.Client, error)
	Create(ctx context.Context, req *CreateClientRequest) (*model.Client, error)
	Update(ctx context.Context, id uint, req *UpdateClientRequest) (*model.Client, error)
	Delete(ctx context.Context, id uint) error
}

// CreateClientRequest 创建客户端请求
// @Description 在指定模板下创建客户端
type CreateClientRequest struct {
	TemplateID uint   `json:"templateId" example:"1" binding:"required"` // 所属模板 ID
	Name       string `json:"name" example:"acme-prod" binding:"required"` // 客户端名称
}

// UpdateClientRequest 更新客户端请求
type UpdateClientRequest struct {
	Name string `json:"name" example:"acme-prod" binding:"required"` // 客户端名称
}

// clientService 客户端服务实现
type clientService struct {
	clientRepo   repository.ClientRepository
	templateRepo repository.TemplateRepository
}

// NewClientService 创建客户端服务
func NewClientService(clientRepo repository.ClientRepository, templateRepo repository.TemplateRepository) ClientService {
	return &clientService{
		clientRepo:   clientRepo,
		templateRepo: templateRepo,
	}
}

// List 查询模板下的客户端列表
func (s *clientService) List(templateID uint) ([]*model.Client, error) {
	exists, err := s.templateRepo.Exists(templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to check template: %w", err)
	}
	if !exists {
		return nil, apperrors.NewNotFoundError("template")
	}

	clients, err := s.clientRepo.FindByTemplate(templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

// Create 创建客户端
// 名称在同一模板内唯一,跨模板允许重名
func (s *clientService) Create(ctx context.Context, req *CreateClientRequest) (*model.Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("client name is required")
	}

	exists, err := s.templateRepo.Exists(req.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("failed to check template: %w", err)
	}
	if !exists {
		return nil, apperrors.NewNotFoundError("template")
	}

	client := &model.Client{
		TemplateID: req.TemplateID,
		Name:       name,
	}
	if err := s.clientRepo.Create(client); err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("a client with this name already exists in the template")
		}
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// Update 重命名客户端
func (s *clientService) Update(ctx context.Context, id uint, req *UpdateClientRequest) (*model.Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("client name is required")
	}

	client, err := s.clientRepo.FindByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("client")
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	client.Name = name
	if err := s.clientRepo.Save(client); err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("a client with this name already exists in the template")
		}
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	return client, nil
}

// Delete 删除客户端,级联删除其变量取值
func (s *clientService) Delete(ctx context.Context, id uint) error {
	_, err := s.clientRepo.FindByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return apperrors.NewNotFoundError("client")
		}
		return fmt.Errorf("failed to get client: %w", err)
	}

	if err := s.clientRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}
