package model

import (
	"errors"
	"time"
)

// Client 客户端数据模型
// 每个客户端属于一个模板,持有该模板非公共变量的取值
// 客户端名称在模板内唯一（不同模板下允许同名客户端）
type Client struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TemplateID uint      `gorm:"not null;uniqueIndex:idx_clients_template_name" json:"templateId"`
	Name       string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_clients_template_name" json:"name"`
	CreatedAt  time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"not null" json:"updatedAt"`

	// 关联: 删除客户端时级联删除其变量取值
	Variables []ClientVariable `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"variables,omitempty"`
}

// TableName 指定表名
func (Client) TableName() string {
	return "clients"
}

// Validate 验证客户端模型
func (c *Client) Validate() error {
	if c.TemplateID == 0 {
		return errors.New("client template id is required")
	}
	if c.Name == "" {
		return errors.New("client name is required")
	}
	return nil
}
