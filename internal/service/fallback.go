package service

import (
	"fmt"
	"quizgen_backend/internal/model"
)

// AdditionalQuestionPrefix 超出题库容量的循环复用题目的文本标记
const AdditionalQuestionPrefix = "[Additional] "

// fallbackPool 固定题库，三种题型混排。视为只读模板，
// 选题时必须复制，不能直接引用
var fallbackPool = []model.QuizQuestion{
	{
		QuestionText: "What is the most effective strategy for understanding complex information?",
		QuestionType: model.MultipleChoice,
		Points:       1,
		Answers: []model.QuizAnswer{
			{AnswerText: "Breaking it into smaller parts and connecting concepts", IsCorrect: true},
			{AnswerText: "Reading everything as quickly as possible", IsCorrect: false},
			{AnswerText: "Memorizing without understanding context", IsCorrect: false},
			{AnswerText: "Focusing only on the conclusion", IsCorrect: false},
		},
	},
	{
		QuestionText: "Active learning involves engaging with material through questioning and analysis.",
		QuestionType: model.TrueFalse,
		Points:       1,
		Answers: []model.QuizAnswer{
			{AnswerText: "True", IsCorrect: true},
			{AnswerText: "False", IsCorrect: false},
		},
	},
	{
		QuestionText: "Describe the importance of connecting new information to existing knowledge.",
		QuestionType: model.ShortAnswer,
		Points:       2,
		Answers: []model.QuizAnswer{
			{AnswerText: "Connecting new information to existing knowledge strengthens memory pathways, improves comprehension, enables better retention, and facilitates application in different contexts", IsCorrect: true},
		},
	},
	{
		QuestionText: "Which approach leads to deeper understanding of subject matter?",
		QuestionType: model.MultipleChoice,
		Points:       1,
		Answers: []model.QuizAnswer{
			{AnswerText: "Analyzing relationships between concepts and asking critical questions", IsCorrect: true},
			{AnswerText: "Passive reading without taking notes", IsCorrect: false},
			{AnswerText: "Skipping difficult sections entirely", IsCorrect: false},
			{AnswerText: "Focusing only on memorizing definitions", IsCorrect: false},
		},
	},
	{
		QuestionText: "Effective studying requires both understanding concepts and practicing their application.",
		QuestionType: model.TrueFalse,
		Points:       1,
		Answers: []model.QuizAnswer{
			{AnswerText: "True", IsCorrect: true},
			{AnswerText: "False", IsCorrect: false},
		},
	},
	{
		QuestionText: "Explain why reflection is an important part of the learning process.",
		QuestionType: model.ShortAnswer,
		Points:       2,
		Answers: []model.QuizAnswer{
			{AnswerText: "Reflection helps consolidate learning, identify knowledge gaps, make connections between concepts, and improve future learning strategies", IsCorrect: true},
		},
	},
}

// BuildFallbackQuestions 从固定题库按序选题，数量超出题库容量时
// 从头循环复用并加前缀标记。纯函数，相同输入产出相同结果，
// 每道题的答案列表独立持有
func BuildFallbackQuestions(numQuestions int) []model.QuizQuestion {
	if numQuestions < 1 {
		numQuestions = 1
	}

	questions := make([]model.QuizQuestion, 0, numQuestions)

	limit := numQuestions
	if limit > len(fallbackPool) {
		limit = len(fallbackPool)
	}
	for i := 0; i < limit; i++ {
		questions = append(questions, copyPoolQuestion(fallbackPool[i], len(questions)+1, false))
	}

	for len(questions) < numQuestions {
		baseIdx := len(questions) % len(fallbackPool)
		questions = append(questions, copyPoolQuestion(fallbackPool[baseIdx], len(questions)+1, true))
	}

	return questions
}

func copyPoolQuestion(template model.QuizQuestion, order int, additional bool) model.QuizQuestion {
	q := model.QuizQuestion{
		QuestionText: template.QuestionText,
		QuestionType: template.QuestionType,
		Points:       template.Points,
		Order:        order,
		Answers:      make([]model.QuizAnswer, len(template.Answers)),
	}
	if additional {
		q.QuestionText = AdditionalQuestionPrefix + q.QuestionText
	}
	for i, a := range template.Answers {
		q.Answers[i] = model.QuizAnswer{
			AnswerText: a.AnswerText,
			IsCorrect:  a.IsCorrect,
		}
	}
	return q
}

// FallbackDescription 兜底测验的描述文案
func FallbackDescription(count int) string {
	return fmt.Sprintf("Enhanced educational quiz with %d questions", count)
}
