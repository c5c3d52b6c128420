package service

import (
	"context"
	"fmt"
	"io"

	"github.com/mautops/envgen-gin/internal/apperrors"
	"github.com/mautops/envgen-gin/internal/archive"
	"github.com/mautops/envgen-gin/internal/envfile"
	"github.com/mautops/envgen-gin/internal/metrics"
	"github.com/mautops/envgen-gin/internal/model"
	"github.com/mautops/envgen-gin/internal/repository"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// EnvService 环境文件生成服务接口
type EnvService interface {
	Generate(ctx context.Context, req *GenerateEnvRequest) (*GeneratedEnv, error)
	ExportZip(ctx context.Context, templateID uint) (*ZipExport, error)
}

// GenerateEnvRequest 单客户端生成请求
type GenerateEnvRequest struct {
	TemplateID uint `json:"templateId" example:"1" binding:"required"` // 模板 ID
	ClientID   uint `json:"clientId" example:"1" binding:"required"`   // 客户端 ID
}

// GeneratedEnv 单客户端生成结果
type GeneratedEnv struct {
	ClientName   string `json:"clientName"`
	TemplateName string `json:"templateName"`
	EnvContent   string `json:"envContent"`
}

// ZipExport ZIP 批量导出结果
// 先用 Filename 设置响应头,再通过 WriteTo 把归档流式写入响应体,
// 避免整包缓冲在内存里
type ZipExport struct {
	Filename string // 下载文件名 env-files-<模板名>.zip
	stream   func(w io.Writer) error
}

// WriteTo 将归档内容写入 w
func (z *ZipExport) WriteTo(w io.Writer) error {
	return z.stream(w)
}

// envService 环境文件生成服务实现
type envService struct {
	db           *gorm.DB
	templateRepo repository.TemplateRepository
	clientRepo   repository.ClientRepository
	valueRepo    repository.ClientVariableRepository
}

// NewEnvService 创建环境文件生成服务
func NewEnvService(db *gorm.DB) EnvService {
	return &envService{
		db:           db,
		templateRepo: repository.NewTemplateRepository(db),
		clientRepo:   repository.NewClientRepository(db),
		valueRepo:    repository.NewClientVariableRepository(db),
	}
}

// Generate 严格模式: 为单个客户端生成 .env 内容
// 任何必填变量缺失时整体失败,不产出部分内容
func (s *envService) Generate(ctx context.Context, req *GenerateEnvRequest) (*GeneratedEnv, error) {
	template, err := s.templateRepo.FindByID(req.TemplateID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("template")
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	client, err := s.clientRepo.FindByID(req.ClientID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("client")
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	if client.TemplateID != template.ID {
		return nil, apperrors.NewValidationError("client does not belong to the template")
	}

	vars := variablesToRender(template.Variables)
	overrides, err := s.clientOverrides(client.ID)
	if err != nil {
		return nil, err
	}

	content, err := envfile.Render(vars, overrides)
	if err != nil {
		metrics.RecordEnvGenerated("missing_required")
		return nil, err
	}

	metrics.RecordEnvGenerated("success")
	return &GeneratedEnv{
		ClientName:   client.Name,
		TemplateName: template.Name,
		EnvContent:   content,
	}, nil
}

// ExportZip 宽松模式: 为模板的全部客户端打包 .env 文件
// 缺失必填变量的客户端仍会出现在包里,内容带占位符和警告注释;
// 客户端从不被静默跳过,单个客户端的意外错误以错误标记文件形式隔离
func (s *envService) ExportZip(ctx context.Context, templateID uint) (*ZipExport, error) {
	template, err := s.templateRepo.FindByID(templateID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("template")
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	clients, err := s.clientRepo.FindByTemplate(templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	if len(clients) == 0 {
		return nil, &apperrors.NoClientsError{TemplateID: templateID}
	}

	vars := variablesToRender(template.Variables)

	stream := func(w io.Writer) error {
		zw := archive.NewWriter(w)

		withWarnings := 0
		for _, client := range clients {
			overrides, err := s.clientOverrides(client.ID)
			if err != nil {
				// 单个客户端出错不阻断导出,写入错误标记文件
				logrus.WithFields(logrus.Fields{
					"template_id": templateID,
					"client_id":   client.ID,
					"client":      client.Name,
				}).WithError(err).Error("导出时读取客户端取值失败")

				marker := fmt.Sprintf("# ERROR: could not generate this file\n# client: %s\n", client.Name)
				if err := zw.Add(envfile.EnvFilename(client.Name)+".error.txt", []byte(marker)); err != nil {
					return fmt.Errorf("failed to write zip entry: %w", err)
				}
				continue
			}

			result := envfile.RenderLenient(vars, overrides)
			if result.HasErrors {
				withWarnings++
			}

			if err := zw.Add(envfile.EnvFilename(client.Name), []byte(result.Content)); err != nil {
				return fmt.Errorf("failed to write zip entry: %w", err)
			}
		}

		if err := zw.Close(); err != nil {
			return fmt.Errorf("failed to finalize zip: %w", err)
		}

		logrus.WithFields(logrus.Fields{
			"template_id":   templateID,
			"template":      template.Name,
			"clients":       len(clients),
			"with_warnings": withWarnings,
		}).Info("已导出环境文件包")

		metrics.RecordZipExport()
		return nil
	}

	return &ZipExport{
		Filename: envfile.ArchiveName(template.Name),
		stream:   stream,
	}, nil
}

// clientOverrides 读取客户端取值并转成 变量ID → 值 的映射
func (s *envService) clientOverrides(clientID uint) (map[uint]string, error) {
	values, err := s.valueRepo.FindByClient(clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load client values: %w", err)
	}
	overrides := make(map[uint]string, len(values))
	for _, v := range values {
		overrides[v.TemplateVariableID] = v.Value
	}
	return overrides, nil
}

// variablesToRender 把数据模型变量转为渲染用的变量定义,保持模板定义顺序
func variablesToRender(variables []model.TemplateVariable) []envfile.Variable {
	vars := make([]envfile.Variable, 0, len(variables))
	for _, v := range variables {
		var commonValue string
		if v.CommonValue != nil {
			commonValue = *v.CommonValue
		}
		vars = append(vars, envfile.Variable{
			ID:          v.ID,
			Key:         v.Key,
			IsCommon:    v.IsCommon,
			IsRequired:  v.IsRequired,
			CommonValue: commonValue,
		})
	}
	return vars
}
