package model

import (
	"errors"
	"time"
)

// TemplateVariable 模板变量数据模型
// 每个变量要么是公共变量（所有客户端共享一个值）,要么是客户端专属变量
type TemplateVariable struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TemplateID  uint      `gorm:"not null;uniqueIndex:idx_template_variables_template_key" json:"templateId"`
	Key         string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_template_variables_template_key" json:"key"`
	IsCommon    bool      `gorm:"not null;default:false" json:"isCommon"`   // 为 true 时所有客户端共享同一个值
	IsRequired  bool      `gorm:"not null;default:false" json:"isRequired"` // 为 true 时生成文件前必须有值
	CommonValue *string   `gorm:"type:text" json:"commonValue"`             // 公共值（仅 isCommon=true 时非空）
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`

	// 关联: 删除变量时级联删除客户端的取值
	ClientValues []ClientVariable `gorm:"foreignKey:TemplateVariableID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (TemplateVariable) TableName() string {
	return "template_variables"
}

// Validate 验证模板变量模型
// 不变量: isCommon 和 isRequired 互斥; commonValue 当且仅当 isCommon=true 时非空
func (tv *TemplateVariable) Validate() error {
	if tv.Key == "" {
		return errors.New("variable key is required")
	}
	if tv.IsCommon && tv.IsRequired {
		return errors.New("a common variable cannot be required")
	}
	if tv.IsCommon && (tv.CommonValue == nil || *tv.CommonValue == "") {
		return errors.New("a common variable must have a common value")
	}
	if !tv.IsCommon && tv.CommonValue != nil {
		return errors.New("a non-common variable cannot have a common value")
	}
	return nil
}
