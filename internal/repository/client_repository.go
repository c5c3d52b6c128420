package repository

import (
	"github.com/mautops/envgen-gin/internal/model"
	"gorm.io/gorm"
)

// ClientRepository 客户端仓储接口
type ClientRepository interface {
	FindByTemplate(templateID uint) ([]*model.Client, error)
	FindByID(id uint) (*model.Client, error)
	Create(client *model.Client) error
	Save(client *model.Client) error
	Delete(id uint) error
}

// clientRepository 客户端仓储实现
type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository 创建客户端仓储
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

// FindByTemplate 查找模板下的所有客户端（带取值,按创建时间倒序）
func (r *clientRepository) FindByTemplate(templateID uint) ([]*model.Client, error) {
	var clients []*model.Client
	err := r.db.
		Preload("Variables").
		Where("template_id = ?", templateID).
		Order("created_at DESC").
		Find(&clients).Error
	return clients, err
}

// FindByID 根据 ID 查找客户端
func (r *clientRepository) FindByID(id uint) (*model.Client, error) {
	var client model.Client
	if err := r.db.First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// Create 创建客户端
func (r *clientRepository) Create(client *model.Client) error {
	return r.db.Create(client).Error
}

// Save 保存客户端
func (r *clientRepository) Save(client *model.Client) error {
	return r.db.Save(client).Error
}

// Delete 删除客户端,级联删除其变量取值
func (r *clientRepository) Delete(id uint) error {
	return r.db.Delete(&model.Client{}, id).Error
}
