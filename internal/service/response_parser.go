package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrNoJSONFound      = errors.New("no JSON found in model response")
	ErrMissingQuestions = errors.New("response missing questions array")
)

// MalformedJSONError 携带解码错误和修复后字符串的前 500 字符，方便排查
type MalformedJSONError struct {
	Detail  string
	Snippet string
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("invalid JSON format: %s", e.Detail)
}

const malformedSnippetLimit = 500

var (
	jsonSpanPattern      = regexp.MustCompile(`(?s)\{.*\}`)
	trailingCommaObject  = regexp.MustCompile(`,\s*}`)
	trailingCommaArray   = regexp.MustCompile(`,\s*]`)
	controlCharacterScan = regexp.MustCompile(`[\x00-\x1f\x7f-\x9f]`)
)

// RawQuestion 模型输出的单题原始结构，Options 元素可能是任意类型
type RawQuestion struct {
	Type          string        `json:"type"`
	Question      string        `json:"question"`
	Options       []interface{} `json:"options"`
	CorrectAnswer string        `json:"correct_answer"`
	Points        interface{}   `json:"points"`
}

// ParseGenerationResponse 从模型回复中提取并修复 JSON，
// 修复顺序：对象尾逗号、数组尾逗号、控制字符。
// 任何失败都会使调用方丢弃整个生成结果，不做部分采用
func ParseGenerationResponse(response string) ([]RawQuestion, error) {
	jsonStr := jsonSpanPattern.FindString(response)
	if jsonStr == "" {
		return nil, ErrNoJSONFound
	}

	jsonStr = trailingCommaObject.ReplaceAllString(jsonStr, "}")
	jsonStr = trailingCommaArray.ReplaceAllString(jsonStr, "]")
	jsonStr = controlCharacterScan.ReplaceAllString(jsonStr, "")

	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			// JSON 合法但顶层不是对象
			return nil, ErrMissingQuestions
		}
		snippet := jsonStr
		if len(snippet) > malformedSnippetLimit {
			snippet = snippet[:malformedSnippetLimit]
		}
		return nil, &MalformedJSONError{Detail: err.Error(), Snippet: snippet}
	}

	rawList, ok := payload["questions"]
	if !ok {
		return nil, ErrMissingQuestions
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(rawList, &entries); err != nil {
		return nil, ErrMissingQuestions
	}
	if len(entries) == 0 {
		return nil, ErrMissingQuestions
	}

	// 单条解码失败只跳过该条，交给规范化阶段统一判空
	questions := make([]RawQuestion, 0, len(entries))
	for _, entry := range entries {
		var q RawQuestion
		if err := json.Unmarshal(entry, &q); err != nil {
			continue
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, ErrMissingQuestions
	}

	return questions, nil
}
