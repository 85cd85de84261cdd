package service

import (
	"quizgen_backend/internal/model"
	"reflect"
	"strings"
	"testing"
)

func TestBuildFallbackQuestions(t *testing.T) {
	t.Run("takes pool entries in order", func(t *testing.T) {
		questions := BuildFallbackQuestions(3)
		if len(questions) != 3 {
			t.Fatalf("got %d questions, want 3", len(questions))
		}
		wantTypes := []model.QuestionType{model.MultipleChoice, model.TrueFalse, model.ShortAnswer}
		for i, q := range questions {
			if q.QuestionType != wantTypes[i] {
				t.Errorf("question %d type = %v, want %v", i, q.QuestionType, wantTypes[i])
			}
			if q.Order != i+1 {
				t.Errorf("question %d order = %d, want %d", i, q.Order, i+1)
			}
		}
	})

	t.Run("cycles with marker beyond pool size", func(t *testing.T) {
		questions := BuildFallbackQuestions(8)
		if len(questions) != 8 {
			t.Fatalf("got %d questions, want 8", len(questions))
		}
		for i := 0; i < 6; i++ {
			if strings.HasPrefix(questions[i].QuestionText, AdditionalQuestionPrefix) {
				t.Errorf("question %d should not carry the marker", i)
			}
		}
		for i := 6; i < 8; i++ {
			if !strings.HasPrefix(questions[i].QuestionText, AdditionalQuestionPrefix) {
				t.Errorf("question %d should carry the marker", i)
			}
		}
		// 循环从题库头部重新开始
		if questions[6].QuestionText != AdditionalQuestionPrefix+questions[0].QuestionText {
			t.Errorf("question 6 should repeat pool entry 0")
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		a := BuildFallbackQuestions(8)
		b := BuildFallbackQuestions(8)
		if !reflect.DeepEqual(a, b) {
			t.Error("identical inputs must produce identical output")
		}
	})

	t.Run("repeats own their answer lists", func(t *testing.T) {
		questions := BuildFallbackQuestions(7)
		questions[6].Answers[0].AnswerText = "mutated"
		if questions[0].Answers[0].AnswerText == "mutated" {
			t.Error("repeat shares answer storage with original")
		}
		fresh := BuildFallbackQuestions(1)
		if fresh[0].Answers[0].AnswerText == "mutated" {
			t.Error("pool template was mutated")
		}
	})

	t.Run("invariants hold for every question", func(t *testing.T) {
		for _, q := range BuildFallbackQuestions(12) {
			correct := 0
			for _, a := range q.Answers {
				if a.IsCorrect {
					correct++
				}
			}
			switch q.QuestionType {
			case model.MultipleChoice:
				if len(q.Answers) != 4 || correct != 1 {
					t.Errorf("mcq %q: %d answers, %d correct", q.QuestionText, len(q.Answers), correct)
				}
			case model.TrueFalse:
				if len(q.Answers) != 2 || correct != 1 {
					t.Errorf("tf %q: %d answers, %d correct", q.QuestionText, len(q.Answers), correct)
				}
			case model.ShortAnswer:
				if len(q.Answers) != 1 || correct != 1 {
					t.Errorf("short %q: %d answers, %d correct", q.QuestionText, len(q.Answers), correct)
				}
			}
			if q.Points < MinQuestionPoints || q.Points > MaxQuestionPoints {
				t.Errorf("%q points out of range: %d", q.QuestionText, q.Points)
			}
		}
	})

	t.Run("at least one question for degenerate input", func(t *testing.T) {
		if len(BuildFallbackQuestions(0)) != 1 {
			t.Error("zero request should still yield one question")
		}
	})
}
