package service

import (
	"strconv"
	"strings"
)

// GenerationSettings 出题配置，构造时完成全部校验和兜底，
// 下游组件不再重复校验
type GenerationSettings struct {
	NumQuestions  int
	Difficulty    string
	QuestionTypes string
	Title         string
}

const (
	DefaultNumQuestions = 5
	MinNumQuestions     = 1
	MaxNumQuestions     = 20
	DefaultTitle        = "AI Generated Quiz"
)

var validDifficulties = map[string]bool{
	"easy":   true,
	"medium": true,
	"hard":   true,
}

var validQuestionTypes = map[string]bool{
	"mixed":     true,
	"mcq":       true,
	"truefalse": true,
	"fillblank": true,
}

// NewGenerationSettings 接受任意原始输入，非法值一律退回默认值，不返回错误
func NewGenerationSettings(raw map[string]interface{}) GenerationSettings {
	s := GenerationSettings{
		NumQuestions:  safeInt(raw["numQuestions"], DefaultNumQuestions, MinNumQuestions, MaxNumQuestions),
		Difficulty:    "medium",
		QuestionTypes: "mixed",
		Title:         DefaultTitle,
	}

	if d, ok := raw["difficulty"].(string); ok {
		d = strings.ToLower(strings.TrimSpace(d))
		if validDifficulties[d] {
			s.Difficulty = d
		}
	}

	if t, ok := raw["questionTypes"].(string); ok {
		t = strings.ToLower(strings.TrimSpace(t))
		if validQuestionTypes[t] {
			s.QuestionTypes = t
		}
	}

	if title, ok := raw["title"].(string); ok {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			s.Title = trimmed
		}
	}

	return s
}

// safeInt 宽松转换为整数并限制在 [min, max]，转换失败返回默认值
func safeInt(value interface{}, def, min, max int) int {
	var result int
	switch v := value.(type) {
	case int:
		result = v
	case int64:
		result = int(v)
	case float64:
		result = int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return def
		}
		result = n
	default:
		return def
	}

	if result < min {
		return min
	}
	if result > max {
		return max
	}
	return result
}
