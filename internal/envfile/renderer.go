package envfile

import (
	"regexp"
	"strings"

	"github.com/mautops/envgen-gin/internal/apperrors"
)

var filenameSafe = regexp.MustCompile(`[^a-zA-Z0-9]`)

// EnvFilename 根据客户端名生成 ZIP 内的文件名
// 非字母数字字符全部替换为下划线,如 "acme prod" → "acme_prod.env"
func EnvFilename(clientName string) string {
	return filenameSafe.ReplaceAllString(clientName, "_") + ".env"
}

// ArchiveName 批量导出 ZIP 的下载文件名,模板名同样清洗
func ArchiveName(templateName string) string {
	return "env-files-" + filenameSafe.ReplaceAllString(templateName, "_") + ".zip"
}

// Variable 渲染用的变量定义,按模板定义顺序传入
type Variable struct {
	ID          uint
	Key         string
	IsCommon    bool
	IsRequired  bool
	CommonValue string
}

// RenderResult 宽松模式渲染结果
type RenderResult struct {
	Content   string
	HasErrors bool // 为 true 时内容里含有未配置必填变量的占位符
}

// MissingWarning 宽松模式下缺失必填变量时加在文件头部的警告注释
const MissingWarning = "# ATTENTION: some required variables are not configured for this client\n# Configure the missing values before use\n\n"

// Placeholder 返回变量的占位符字面量 {{KEY}}
func Placeholder(key string) string {
	return "{{" + key + "}}"
}

// TemplateContent 根据变量定义生成模板的规范文本
// 公共变量输出 KEY=公共值,其余输出 KEY={{KEY}} 占位符
func TemplateContent(vars []Variable) string {
	lines := make([]string, 0, len(vars))
	for _, v := range vars {
		if v.IsCommon && v.CommonValue != "" {
			lines = append(lines, v.Key+"="+v.CommonValue)
		} else {
			lines = append(lines, v.Key+"="+Placeholder(v.Key))
		}
	}
	return strings.Join(lines, "\n")
}

// Render 严格模式渲染: 为一个客户端生成 .env 文本
// 取值顺序: 公共值 → 客户端取值（非空）→ 必填则记为缺失,否则为空字符串
// 任何必填变量缺失时整体失败,返回 MissingRequiredVariablesError,不产生内容
// 公共变量永远不查客户端取值,即使存在对应记录
func Render(vars []Variable, overrides map[uint]string) (string, error) {
	values, missing := resolve(vars, overrides, false)
	if len(missing) > 0 {
		return "", &apperrors.MissingRequiredVariablesError{Keys: missing}
	}
	return joinLines(vars, values), nil
}

// RenderLenient 宽松模式渲染（ZIP 批量导出）
// 缺失的必填变量用 {{KEY}} 占位符替代并标记 HasErrors,
// 此时在内容前加上警告注释,渲染始终产出全部行
func RenderLenient(vars []Variable, overrides map[uint]string) RenderResult {
	values, missing := resolve(vars, overrides, true)
	content := joinLines(vars, values)

	if len(missing) > 0 {
		return RenderResult{Content: MissingWarning + content, HasErrors: true}
	}
	return RenderResult{Content: content, HasErrors: false}
}

// resolve 解析每个变量的取值,返回取值表和缺失的必填变量
// lenient 为 true 时缺失的必填变量取占位符,否则不写入取值表
func resolve(vars []Variable, overrides map[uint]string, lenient bool) (map[uint]string, []string) {
	values := make(map[uint]string, len(vars))
	var missing []string

	for _, v := range vars {
		if v.IsCommon {
			// 公共变量: 直接使用模板里的公共值
			values[v.ID] = v.CommonValue
			continue
		}

		if override, ok := overrides[v.ID]; ok && override != "" {
			values[v.ID] = override
			continue
		}

		// 没有取值
		if v.IsRequired {
			missing = append(missing, v.Key)
			if lenient {
				values[v.ID] = Placeholder(v.Key)
			}
		} else {
			values[v.ID] = ""
		}
	}

	return values, missing
}

// joinLines 按模板定义顺序拼接 KEY=VALUE 行
func joinLines(vars []Variable, values map[uint]string) string {
	lines := make([]string, 0, len(vars))
	for _, v := range vars {
		lines = append(lines, v.Key+"="+values[v.ID])
	}
	return strings.Join(lines, "\n")
}
