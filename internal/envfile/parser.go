package envfile

import "strings"

// Pair 一行解析出的键值对
type Pair struct {
	Key   string
	Value string
}

// Parse 解析 .env 格式的文本内容,返回按出现顺序排列的键值对
// 规则: 逐行处理,跳过空行和 # 注释; 在第一个 = 处切分,键值两侧去除空白;
// 没有 = 或键为空的行被静默忽略; 值为原始字符串,第一个 = 之后的 = 原样保留
func Parse(content string) []Pair {
	var pairs []Pair

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)

		// 忽略注释和空行
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		// 解析 KEY=value
		equalIndex := strings.Index(trimmed, "=")
		if equalIndex <= 0 {
			continue
		}

		key := strings.TrimSpace(trimmed[:equalIndex])
		value := strings.TrimSpace(trimmed[equalIndex+1:])
		pairs = append(pairs, Pair{Key: key, Value: value})
	}

	return pairs
}

// ParseMap 解析 .env 文本为键值映射,同一个键重复出现时后者覆盖前者
func ParseMap(content string) map[string]string {
	values := make(map[string]string)
	for _, pair := range Parse(content) {
		values[pair.Key] = pair.Value
	}
	return values
}
