package service

import (
	"fmt"
	"quizgen_backend/internal/model"
	"quizgen_backend/pkg/logger"
	"strings"

	"go.uber.org/zap"
)

const (
	MinQuestionPoints = 1
	MaxQuestionPoints = 10
	MCQOptionCount    = 4
)

var questionTypeAliases = map[string]model.QuestionType{
	"multiple_choice": model.MultipleChoice,
	"mcq":             model.MultipleChoice,
	"mc":              model.MultipleChoice,
	"multiple-choice": model.MultipleChoice,
	"true_false":      model.TrueFalse,
	"truefalse":       model.TrueFalse,
	"true/false":      model.TrueFalse,
	"tf":              model.TrueFalse,
	"true-false":      model.TrueFalse,
	"short_answer":    model.ShortAnswer,
	"fill_blank":      model.ShortAnswer,
	"fillblank":       model.ShortAnswer,
	"fill-blank":      model.ShortAnswer,
	"essay":           model.ShortAnswer,
}

var truthyAnswers = map[string]bool{
	"true": true,
	"t":    true,
	"1":    true,
	"yes":  true,
}

// NormalizeQuestionType 别名归一化，未识别的类型按多选题处理
func NormalizeQuestionType(raw string) model.QuestionType {
	if t, ok := questionTypeAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return t
	}
	return model.MultipleChoice
}

// NormalizeQuestions 逐条规范化，单条非法只跳过并告警，不影响其余题目。
// 全部被拒时返回空切片，由调用方决定是否转入兜底
func NormalizeQuestions(rawQuestions []RawQuestion) []model.QuizQuestion {
	questions := make([]model.QuizQuestion, 0, len(rawQuestions))

	for idx, raw := range rawQuestions {
		q, err := normalizeQuestion(raw, len(questions)+1)
		if err != nil {
			logger.Log.Warn("skipping malformed question",
				zap.Int("index", idx+1),
				zap.Error(err),
			)
			continue
		}
		questions = append(questions, q)
	}

	return questions
}

func normalizeQuestion(raw RawQuestion, order int) (model.QuizQuestion, error) {
	qType := NormalizeQuestionType(raw.Type)

	text := strings.TrimSpace(raw.Question)
	if text == "" {
		return model.QuizQuestion{}, fmt.Errorf("question text is empty")
	}

	defaultPoints := 1
	if qType == model.ShortAnswer {
		defaultPoints = 2
	}
	points := safeInt(raw.Points, defaultPoints, MinQuestionPoints, MaxQuestionPoints)

	question := model.QuizQuestion{
		QuestionText: text,
		QuestionType: qType,
		Points:       points,
		Order:        order,
	}

	correctAnswer := strings.TrimSpace(raw.CorrectAnswer)

	switch qType {
	case model.MultipleChoice:
		if len(raw.Options) < 2 {
			return model.QuizQuestion{}, fmt.Errorf("multiple choice needs at least 2 options")
		}
		if correctAnswer == "" {
			return model.QuizQuestion{}, fmt.Errorf("multiple choice needs a correct answer")
		}

		options := make([]string, 0, MCQOptionCount)
		for _, opt := range raw.Options {
			options = append(options, strings.TrimSpace(fmt.Sprintf("%v", opt)))
		}
		// 不足 4 项时补占位选项，超出则截断
		for len(options) < MCQOptionCount {
			options = append(options, fmt.Sprintf("Option %d", len(options)+1))
		}
		options = options[:MCQOptionCount]

		correctFound := false
		for _, opt := range options {
			isCorrect := opt == correctAnswer
			if isCorrect {
				correctFound = true
			}
			question.Answers = append(question.Answers, model.QuizAnswer{
				AnswerText: opt,
				IsCorrect:  isCorrect,
			})
		}

		// 模型给出的答案不在选项里时，固定选第一个选项，
		// 保持结果确定而不是丢题
		if !correctFound {
			logger.Log.Warn("correct answer not among options, forcing first option",
				zap.String("question", text),
				zap.String("correctAnswer", correctAnswer),
			)
			for i := range question.Answers {
				question.Answers[i].IsCorrect = i == 0
			}
		}

	case model.TrueFalse:
		isTrueCorrect := truthyAnswers[strings.ToLower(correctAnswer)]
		question.Answers = []model.QuizAnswer{
			{AnswerText: "True", IsCorrect: isTrueCorrect},
			{AnswerText: "False", IsCorrect: !isTrueCorrect},
		}

	case model.ShortAnswer:
		if correctAnswer == "" {
			return model.QuizQuestion{}, fmt.Errorf("short answer needs a correct answer")
		}
		question.Answers = []model.QuizAnswer{
			{AnswerText: correctAnswer, IsCorrect: true},
		}
	}

	if len(question.Answers) == 0 {
		return model.QuizQuestion{}, fmt.Errorf("no answers generated for question")
	}

	return question, nil
}
