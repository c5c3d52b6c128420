package repository

import (
	"github.com/mautops/envgen-gin/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ClientVariableRepository 客户端变量取值仓储接口
type ClientVariableRepository interface {
	FindByClient(clientID uint) ([]*model.ClientVariable, error)
	Upsert(value *model.ClientVariable) error
	DeleteByPair(clientID, templateVariableID uint) error
}

// clientVariableRepository 客户端变量取值仓储实现
type clientVariableRepository struct {
	db *gorm.DB
}

// NewClientVariableRepository 创建客户端变量取值仓储
func NewClientVariableRepository(db *gorm.DB) ClientVariableRepository {
	return &clientVariableRepository{db: db}
}

// FindByClient 查找客户端的所有取值
func (r *clientVariableRepository) FindByClient(clientID uint) ([]*model.ClientVariable, error) {
	var values []*model.ClientVariable
	err := r.db.Where("client_id = ?", clientID).Find(&values).Error
	return values, err
}

// Upsert 创建或更新取值
// (client_id, template_variable_id) 唯一,冲突时更新 value
func (r *clientVariableRepository) Upsert(value *model.ClientVariable) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "client_id"}, {Name: "template_variable_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(value).Error
}

// DeleteByPair 按 (clientId, templateVariableId) 删除取值
func (r *clientVariableRepository) DeleteByPair(clientID, templateVariableID uint) error {
	return r.db.
		Where("client_id = ? AND template_variable_id = ?", clientID, templateVariableID).
		Delete(&model.ClientVariable{}).Error
}
