package repository

import (
	"errors"

	"github.com/mautops/envgen-gin/internal/model"
	"gorm.io/gorm"
)

// TemplateRepository 模板仓储接口
type TemplateRepository interface {
	FindAll() ([]*model.Template, error)
	FindByID(id uint) (*model.Template, error)
	FindByIDWithClients(id uint) (*model.Template, error)
	Delete(id uint) error
	Exists(id uint) (bool, error)
}

// templateRepository 模板仓储实现
type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository 创建模板仓储
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

// FindAll 查找所有模板（带变量和客户端,按创建时间倒序）
func (r *templateRepository) FindAll() ([]*model.Template, error) {
	var templates []*model.Template
	err := r.db.
		Preload("Variables", orderByID).
		Preload("Clients").
		Order("created_at DESC").
		Find(&templates).Error
	return templates, err
}

// FindByID 根据 ID 查找模板（带变量,按定义顺序）
func (r *templateRepository) FindByID(id uint) (*model.Template, error) {
	var template model.Template
	if err := r.db.Preload("Variables", orderByID).First(&template, id).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// FindByIDWithClients 根据 ID 查找模板,带变量和客户端（含客户端取值）
func (r *templateRepository) FindByIDWithClients(id uint) (*model.Template, error) {
	var template model.Template
	err := r.db.
		Preload("Variables", orderByID).
		Preload("Clients").
		Preload("Clients.Variables").
		First(&template, id).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// Delete 删除模板,级联删除变量和客户端
func (r *templateRepository) Delete(id uint) error {
	return r.db.Delete(&model.Template{}, id).Error
}

// Exists 判断模板是否存在
func (r *templateRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Template{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// orderByID 关联预加载时按主键排序,保证变量的定义顺序稳定
func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// IsNotFound 判断是否为记录不存在错误
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
