package envfile

import (
	"testing"

	"github.com/mautops/envgen-gin/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSourceLabel 测试从文件名提取客户端名称
func TestSourceLabel(t *testing.T) {
	assert.Equal(t, "acme", SourceLabel("acme.env"))
	assert.Equal(t, "acme", SourceLabel("uploads/acme.env"))
	assert.Equal(t, "acme", SourceLabel(`C:\files\acme.env`))
	assert.Equal(t, "acme-prod", SourceLabel("acme-prod"))
	assert.Equal(t, ".env", SourceLabel(".env.env"))
}

// TestAnalyze_EmptyInput 测试空输入返回验证错误
func TestAnalyze_EmptyInput(t *testing.T) {
	_, err := Analyze(nil)
	require.Error(t, err)

	var validationErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

// TestAnalyze_Classification 测试三类变量的分类规则
// 两个文件: SHARED 取值一致 → common; DB_HOST 取值不同 → custom;
// ONLY_A 只在一个文件出现 → partial
func TestAnalyze_Classification(t *testing.T) {
	files := []SourceFile{
		{Filename: "alpha.env", Content: "SHARED=same\nDB_HOST=db.alpha\nONLY_A=yes\n"},
		{Filename: "beta.env", Content: "SHARED=same\nDB_HOST=db.beta\n"},
	}

	analysis, err := Analyze(files)
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "beta"}, analysis.ClientNames)
	assert.Equal(t, 2, analysis.TotalFiles)

	va := analysis.VariableAnalysis
	require.Len(t, va.Common, 1)
	assert.Equal(t, "SHARED", va.Common[0].Key)
	assert.Equal(t, "same", va.Common[0].Value)
	assert.True(t, va.Common[0].IsCommon)
	assert.False(t, va.Common[0].IsRequired)

	require.Len(t, va.Custom, 1)
	assert.Equal(t, "DB_HOST", va.Custom[0].Key)
	assert.True(t, va.Custom[0].IsRequired)
	assert.Equal(t, map[string]string{"alpha": "db.alpha", "beta": "db.beta"}, va.Custom[0].ClientValues)

	require.Len(t, va.Partial, 1)
	assert.Equal(t, "ONLY_A", va.Partial[0].Key)
	assert.Equal(t, []string{"alpha"}, va.Partial[0].PresentIn)
	assert.Equal(t, []string{"beta"}, va.Partial[0].MissingIn)
	assert.False(t, va.Partial[0].HasMultipleValues)

	stats := analysis.Statistics
	assert.Equal(t, 1, stats.CommonVariables)
	assert.Equal(t, 1, stats.CustomVariables)
	assert.Equal(t, 1, stats.PartialVariables)
	assert.Equal(t, 3, stats.TotalVariables)
}

// TestAnalyze_SingleFile 测试单文件时所有变量都是公共变量
func TestAnalyze_SingleFile(t *testing.T) {
	files := []SourceFile{
		{Filename: "solo.env", Content: "A=1\nB=2\n"},
	}

	analysis, err := Analyze(files)
	require.NoError(t, err)
	assert.Len(t, analysis.VariableAnalysis.Common, 2)
	assert.Empty(t, analysis.VariableAnalysis.Custom)
	assert.Empty(t, analysis.VariableAnalysis.Partial)
}

// TestAnalyze_PartialWithMultipleValues 测试部分变量携带多值标记
func TestAnalyze_PartialWithMultipleValues(t *testing.T) {
	files := []SourceFile{
		{Filename: "a.env", Content: "FEATURE=on\n"},
		{Filename: "b.env", Content: "FEATURE=off\n"},
		{Filename: "c.env", Content: "OTHER=x\n"},
	}

	analysis, err := Analyze(files)
	require.NoError(t, err)

	va := analysis.VariableAnalysis
	require.Len(t, va.Partial, 2)

	feature := va.Partial[0]
	assert.Equal(t, "FEATURE", feature.Key)
	assert.True(t, feature.HasMultipleValues)
	assert.Equal(t, []string{"a", "b"}, feature.PresentIn)
	assert.Equal(t, []string{"c"}, feature.MissingIn)
}

// TestAnalyze_DeterministicOrder 测试类别内顺序是变量首次出现的顺序
func TestAnalyze_DeterministicOrder(t *testing.T) {
	files := []SourceFile{
		{Filename: "a.env", Content: "Z=1\nM=1\nA=1\n"},
		{Filename: "b.env", Content: "Z=1\nM=1\nA=1\n"},
	}

	for i := 0; i < 10; i++ {
		analysis, err := Analyze(files)
		require.NoError(t, err)

		keys := make([]string, 0, 3)
		for _, v := range analysis.VariableAnalysis.Common {
			keys = append(keys, v.Key)
		}
		assert.Equal(t, []string{"Z", "M", "A"}, keys)
	}
}

// TestAnalyze_DuplicateKeyInFile 测试同一文件内重复键后者覆盖前者
func TestAnalyze_DuplicateKeyInFile(t *testing.T) {
	files := []SourceFile{
		{Filename: "a.env", Content: "KEY=first\nKEY=second\n"},
		{Filename: "b.env", Content: "KEY=second\n"},
	}

	analysis, err := Analyze(files)
	require.NoError(t, err)

	// 覆盖后两个文件取值一致 → 公共变量
	require.Len(t, analysis.VariableAnalysis.Common, 1)
	assert.Equal(t, "second", analysis.VariableAnalysis.Common[0].Value)
}
