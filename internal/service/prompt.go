package service

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxPromptTextLength 送入模型的正文上限，超出部分截断并加省略号
const MaxPromptTextLength = 6000

var difficultyGuide = map[string]string{
	"easy":   "Focus on basic facts, simple recall, and obvious concepts from the text",
	"medium": "Test understanding, connections between ideas, and application of concepts",
	"hard":   "Require analysis, synthesis, critical thinking, and deep understanding",
}

// BuildPrompt 将正文和出题配置拼装为单条生成指令，
// 输出契约要求模型只返回 JSON 对象
func BuildPrompt(text string, settings GenerationSettings) string {
	// 按字符截断，避免多字节文本被切在 rune 中间
	if utf8.RuneCountInString(text) > MaxPromptTextLength {
		runes := []rune(text)
		text = string(runes[:MaxPromptTextLength]) + "..."
	}

	var typeInstruction string
	switch settings.QuestionTypes {
	case "mcq":
		typeInstruction = fmt.Sprintf("Create %d multiple choice questions with 4 options each", settings.NumQuestions)
	case "truefalse":
		typeInstruction = fmt.Sprintf("Create %d true/false questions", settings.NumQuestions)
	case "fillblank":
		typeInstruction = fmt.Sprintf("Create %d short answer questions", settings.NumQuestions)
	default:
		typeInstruction = "Create a mix of multiple choice (60%), true/false (25%), and short answer (15%) questions"
	}

	guide, ok := difficultyGuide[settings.Difficulty]
	if !ok {
		guide = "balanced difficulty"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert quiz creator. Based on the following educational text, create %d high-quality quiz questions.\n\n", settings.NumQuestions)
	fmt.Fprintf(&b, "TEXT CONTENT:\n%s\n\n", text)
	b.WriteString("REQUIREMENTS:\n")
	fmt.Fprintf(&b, "- Difficulty: %s (%s)\n", settings.Difficulty, guide)
	fmt.Fprintf(&b, "- Question Distribution: %s\n", typeInstruction)
	b.WriteString("- All questions must be based directly on the provided text content\n")
	b.WriteString("- Make questions specific and test real understanding\n")
	b.WriteString("- Ensure multiple choice options are plausible but clearly distinct\n")
	b.WriteString("- Use varied question complexity appropriate for the difficulty level\n\n")
	b.WriteString(`OUTPUT FORMAT (JSON only):
{
  "questions": [
    {
      "type": "multiple_choice",
      "question": "Based on the text, what is...",
      "options": ["Correct answer", "Wrong option 1", "Wrong option 2", "Wrong option 3"],
      "correct_answer": "Correct answer",
      "points": 1
    },
    {
      "type": "true_false",
      "question": "According to the text, [specific statement]",
      "correct_answer": "True",
      "points": 1
    },
    {
      "type": "short_answer",
      "question": "Explain the concept mentioned in the text about...",
      "correct_answer": "Expected answer based on text content",
      "points": 2
    }
  ]
}

CRITICAL REQUIREMENTS:
- Return ONLY valid JSON, no other text
- Base all questions on the actual content provided
- Ensure each multiple choice question has exactly 4 options
- Make sure correct_answer matches one of the options exactly
- Questions should be specific to the text, not generic knowledge
`)

	return b.String()
}
