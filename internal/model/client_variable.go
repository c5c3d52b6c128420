package model

import (
	"errors"
	"time"
)

// ClientVariable 客户端变量取值数据模型
// 只为非公共变量（isCommon=false）存在; (clientId, templateVariableId) 唯一
type ClientVariable struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	ClientID           uint      `gorm:"not null;uniqueIndex:idx_client_variables_client_variable" json:"clientId"`
	TemplateVariableID uint      `gorm:"not null;uniqueIndex:idx_client_variables_client_variable" json:"templateVariableId"`
	Value              string    `gorm:"type:text;not null" json:"value"`
	CreatedAt          time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt          time.Time `gorm:"not null" json:"updatedAt"`
}

// TableName 指定表名
func (ClientVariable) TableName() string {
	return "client_variables"
}

// Validate 验证客户端变量模型
func (cv *ClientVariable) Validate() error {
	if cv.ClientID == 0 {
		return errors.New("client id is required")
	}
	if cv.TemplateVariableID == 0 {
		return errors.New("template variable id is required")
	}
	if cv.Value == "" {
		return errors.New("value cannot be empty")
	}
	return nil
}
