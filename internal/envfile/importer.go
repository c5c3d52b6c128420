package envfile

// VariableDefinition 导入确认后产出的模板变量定义
type VariableDefinition struct {
	Key         string
	IsCommon    bool
	IsRequired  bool
	CommonValue string
}

// ClientValue 导入确认后需要写入的客户端取值
type ClientValue struct {
	ClientName string
	Key        string
	Value      string
}

// BuildImport 确认导入的纯变换: 把分析结果和人工对部分变量的取舍决定
// 映射为最终的模板变量定义和客户端取值
//   - 公共变量原样保留（公共,不必填）
//   - 专属变量保留为必填,并为每个客户端产出取值记录
//   - 被采纳的部分变量按 hasMultipleValues 归类: 取值不同 → 专属（带取值记录）,
//     取值相同 → 公共（取任一取值,无记录）
//   - 未被采纳的部分变量完全丢弃
func BuildImport(analysis VariableAnalysis, partialDecisions map[string]bool) ([]VariableDefinition, []ClientValue) {
	definitions := make([]VariableDefinition, 0, len(analysis.Common)+len(analysis.Custom)+len(analysis.Partial))
	values := make([]ClientValue, 0)

	// 公共变量
	for _, v := range analysis.Common {
		definitions = append(definitions, VariableDefinition{
			Key:         v.Key,
			IsCommon:    true,
			IsRequired:  false,
			CommonValue: v.Value,
		})
	}

	// 专属变量
	for _, v := range analysis.Custom {
		definitions = append(definitions, VariableDefinition{
			Key:        v.Key,
			IsCommon:   false,
			IsRequired: true,
		})
		for clientName, value := range v.ClientValues {
			values = append(values, ClientValue{ClientName: clientName, Key: v.Key, Value: value})
		}
	}

	// 部分变量: 根据人工决定取舍
	for _, v := range analysis.Partial {
		if !partialDecisions[v.Key] {
			continue
		}

		if v.HasMultipleValues {
			// 取值不同 → 专属
			definitions = append(definitions, VariableDefinition{
				Key:        v.Key,
				IsCommon:   false,
				IsRequired: true,
			})
			for clientName, value := range v.ClientValues {
				values = append(values, ClientValue{ClientName: clientName, Key: v.Key, Value: value})
			}
		} else {
			// 取值相同 → 公共
			var existing string
			for _, value := range v.ClientValues {
				existing = value
				break
			}
			definitions = append(definitions, VariableDefinition{
				Key:         v.Key,
				IsCommon:    true,
				IsRequired:  false,
				CommonValue: existing,
			})
		}
	}

	return definitions, values
}
