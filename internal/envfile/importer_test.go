package envfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuildImport_CommonAndCustom 测试公共变量和专属变量的映射规则
func TestBuildImport_CommonAndCustom(t *testing.T) {
	analysis := VariableAnalysis{
		Common: []CommonVariable{
			{Key: "APP_NAME", Value: "myapp", IsCommon: true},
		},
		Custom: []CustomVariable{
			{Key: "DB_HOST", IsRequired: true, ClientValues: map[string]string{
				"alpha": "db.alpha",
				"beta":  "db.beta",
			}},
		},
	}

	definitions, values := BuildImport(analysis, nil)
	require.Len(t, definitions, 2)

	assert.Equal(t, VariableDefinition{Key: "APP_NAME", IsCommon: true, CommonValue: "myapp"}, definitions[0])
	assert.Equal(t, VariableDefinition{Key: "DB_HOST", IsRequired: true}, definitions[1])

	require.Len(t, values, 2)
	byClient := make(map[string]string)
	for _, v := range values {
		assert.Equal(t, "DB_HOST", v.Key)
		byClient[v.ClientName] = v.Value
	}
	assert.Equal(t, map[string]string{"alpha": "db.alpha", "beta": "db.beta"}, byClient)
}

// TestBuildImport_PartialDecisions 测试部分变量的取舍和归类
// 被采纳且多值 → 专属; 被采纳且单值 → 公共; 未采纳 → 丢弃
func TestBuildImport_PartialDecisions(t *testing.T) {
	analysis := VariableAnalysis{
		Partial: []PartialVariable{
			{Key: "FEATURE", HasMultipleValues: true, ClientValues: map[string]string{
				"alpha": "on",
				"beta":  "off",
			}},
			{Key: "REGION", HasMultipleValues: false, ClientValues: map[string]string{
				"alpha": "eu-west",
			}},
			{Key: "DROPPED", HasMultipleValues: false, ClientValues: map[string]string{
				"beta": "x",
			}},
		},
	}
	decisions := map[string]bool{
		"FEATURE": true,
		"REGION":  true,
		"DROPPED": false,
	}

	definitions, values := BuildImport(analysis, decisions)
	require.Len(t, definitions, 2)

	assert.Equal(t, VariableDefinition{Key: "FEATURE", IsRequired: true}, definitions[0])
	assert.Equal(t, VariableDefinition{Key: "REGION", IsCommon: true, CommonValue: "eu-west"}, definitions[1])

	// 只有多值部分变量产生取值记录
	require.Len(t, values, 2)
	for _, v := range values {
		assert.Equal(t, "FEATURE", v.Key)
	}
}

// TestBuildImport_MissingDecisionDropsPartial 测试未给出决定的部分变量被丢弃
func TestBuildImport_MissingDecisionDropsPartial(t *testing.T) {
	analysis := VariableAnalysis{
		Partial: []PartialVariable{
			{Key: "UNDECIDED", ClientValues: map[string]string{"a": "1"}},
		},
	}

	definitions, values := BuildImport(analysis, map[string]bool{})
	assert.Empty(t, definitions)
	assert.Empty(t, values)
}
