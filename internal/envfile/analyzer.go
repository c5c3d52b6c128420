package envfile

import (
	"strings"

	"github.com/mautops/envgen-gin/internal/apperrors"
)

// SourceFile 一个待分析的 .env 文件
type SourceFile struct {
	Filename string `json:"filename" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

// CommonVariable 公共变量: 在所有文件中出现且取值一致
type CommonVariable struct {
	Key        string `json:"key"`
	Value      string `json:"value"`
	IsCommon   bool   `json:"isCommon"`
	IsRequired bool   `json:"isRequired"`
}

// CustomVariable 专属变量: 在所有文件中出现但取值不一致
type CustomVariable struct {
	Key          string            `json:"key"`
	IsCommon     bool              `json:"isCommon"`
	IsRequired   bool              `json:"isRequired"`
	ClientValues map[string]string `json:"clientValues"`
}

// PartialVariable 部分变量: 只在部分文件中出现,是否纳入模板由人工决定
type PartialVariable struct {
	Key               string            `json:"key"`
	PresentIn         []string          `json:"presentIn"`
	MissingIn         []string          `json:"missingIn"`
	ClientValues      map[string]string `json:"clientValues"`
	HasMultipleValues bool              `json:"hasMultipleValues"`
}

// Statistics 分析统计信息
type Statistics struct {
	CommonVariables  int `json:"commonVariables"`
	CustomVariables  int `json:"customVariables"`
	PartialVariables int `json:"partialVariables"`
	TotalVariables   int `json:"totalVariables"`
}

// VariableAnalysis 按类别分组的变量分析结果
type VariableAnalysis struct {
	Common  []CommonVariable  `json:"common"`
	Custom  []CustomVariable  `json:"custom"`
	Partial []PartialVariable `json:"partial"`
}

// Analysis 多文件分析的完整结果
type Analysis struct {
	ClientNames      []string         `json:"clientNames"`
	TotalFiles       int              `json:"totalFiles"`
	Statistics       Statistics       `json:"statistics"`
	VariableAnalysis VariableAnalysis `json:"variableAnalysis"`
}

// SourceLabel 从文件名提取客户端名称: 去掉路径前缀和 .env 扩展名
func SourceLabel(filename string) string {
	name := strings.TrimSuffix(filename, ".env")
	if idx := strings.LastIndexAny(name, "/\\"); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}

// Analyze 分析多个 .env 文件,把每个变量归入 common / custom / partial 三类之一
//   - common: 所有文件都有且取值相同
//   - custom: 所有文件都有但取值不同,默认标记为必填
//   - partial: 至少缺席一个文件,携带出现/缺席名单和取值,由下游决策归类
//
// 同一类别内的顺序为变量首次出现的顺序,结果是确定性的
func Analyze(files []SourceFile) (*Analysis, error) {
	if len(files) == 0 {
		return nil, apperrors.NewValidationError("at least one .env file is required")
	}

	// 第一阶段: 提取所有文件的变量
	// variableMap: key -> (clientName -> value), keyOrder 记录首次出现顺序
	variableMap := make(map[string]map[string]string)
	var keyOrder []string
	clientNames := make([]string, 0, len(files))

	for _, file := range files {
		clientName := SourceLabel(file.Filename)
		clientNames = append(clientNames, clientName)

		for _, pair := range Parse(file.Content) {
			values, seen := variableMap[pair.Key]
			if !seen {
				values = make(map[string]string)
				variableMap[pair.Key] = values
				keyOrder = append(keyOrder, pair.Key)
			}
			// 同一文件内重复定义时后者覆盖前者
			values[clientName] = pair.Value
		}
	}

	// 第二阶段: 分类变量
	totalFiles := len(files)
	common := make([]CommonVariable, 0)
	custom := make([]CustomVariable, 0)
	partial := make([]PartialVariable, 0)

	for _, key := range keyOrder {
		clientValues := variableMap[key]
		uniqueValues := make(map[string]struct{})
		for _, v := range clientValues {
			uniqueValues[v] = struct{}{}
		}

		if len(clientValues) == totalFiles {
			if len(uniqueValues) == 1 {
				// 所有文件取值相同 → 公共变量
				var value string
				for v := range uniqueValues {
					value = v
				}
				common = append(common, CommonVariable{
					Key:        key,
					Value:      value,
					IsCommon:   true,
					IsRequired: false,
				})
			} else {
				// 取值不同 → 专属变量
				custom = append(custom, CustomVariable{
					Key:          key,
					IsCommon:     false,
					IsRequired:   true,
					ClientValues: copyValues(clientValues),
				})
			}
		} else {
			// 只在部分文件中出现 → 部分变量
			presentIn := make([]string, 0, len(clientValues))
			missingIn := make([]string, 0, totalFiles-len(clientValues))
			for _, name := range clientNames {
				if _, ok := clientValues[name]; ok {
					presentIn = append(presentIn, name)
				} else {
					missingIn = append(missingIn, name)
				}
			}

			partial = append(partial, PartialVariable{
				Key:               key,
				PresentIn:         presentIn,
				MissingIn:         missingIn,
				ClientValues:      copyValues(clientValues),
				HasMultipleValues: len(uniqueValues) > 1,
			})
		}
	}

	return &Analysis{
		ClientNames: clientNames,
		TotalFiles:  totalFiles,
		Statistics: Statistics{
			CommonVariables:  len(common),
			CustomVariables:  len(custom),
			PartialVariables: len(partial),
			TotalVariables:   len(variableMap),
		},
		VariableAnalysis: VariableAnalysis{
			Common:  common,
			Custom:  custom,
			Partial: partial,
		},
	}, nil
}

// copyValues 复制取值映射,避免调用方共享内部状态
func copyValues(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
