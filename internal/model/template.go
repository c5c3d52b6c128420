package model

import (
	"errors"
	"time"
)

// Template 模板数据模型
// 一个模板描述一类 .env 文件的结构,拥有变量定义和客户端
type Template struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_templates_name" json:"name"`
	Content   string    `gorm:"type:text;not null" json:"content"` // 带占位符的渲染文本（冗余存储）
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`

	// 关联: 删除模板时级联删除变量和客户端
	Variables []TemplateVariable `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE" json:"variables,omitempty"`
	Clients   []Client           `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE" json:"clients,omitempty"`
}

// TableName 指定表名
func (Template) TableName() string {
	return "templates"
}

// Validate 验证模板模型
func (t *Template) Validate() error {
	if t.Name == "" {
		return errors.New("template name is required")
	}
	if t.Content == "" {
		return errors.New("template content is required")
	}
	return nil
}
