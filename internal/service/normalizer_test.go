package service

import (
	"quizgen_backend/internal/model"
	"testing"
)

func TestNormalizeQuestionType(t *testing.T) {
	tests := []struct {
		raw  string
		want model.QuestionType
	}{
		{"multiple_choice", model.MultipleChoice},
		{"mcq", model.MultipleChoice},
		{"mc", model.MultipleChoice},
		{"multiple-choice", model.MultipleChoice},
		{"MCQ", model.MultipleChoice},
		{"true_false", model.TrueFalse},
		{"truefalse", model.TrueFalse},
		{"true/false", model.TrueFalse},
		{"tf", model.TrueFalse},
		{"true-false", model.TrueFalse},
		{"short_answer", model.ShortAnswer},
		{"fill_blank", model.ShortAnswer},
		{"fillblank", model.ShortAnswer},
		{"fill-blank", model.ShortAnswer},
		{"essay", model.ShortAnswer},
		{"", model.MultipleChoice},
		{"matching", model.MultipleChoice},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := NormalizeQuestionType(tt.raw); got != tt.want {
				t.Errorf("NormalizeQuestionType(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeQuestionsMultipleChoice(t *testing.T) {
	t.Run("options padded to four", func(t *testing.T) {
		questions := NormalizeQuestions([]RawQuestion{{
			Type:          "mcq",
			Question:      "Pick the right one",
			Options:       []interface{}{"Right", "Wrong"},
			CorrectAnswer: "Right",
		}})
		if len(questions) != 1 {
			t.Fatalf("got %d questions, want 1", len(questions))
		}
		q := questions[0]
		if len(q.Answers) != 4 {
			t.Fatalf("got %d answers, want 4", len(q.Answers))
		}
		if q.Answers[2].AnswerText != "Option 3" || q.Answers[3].AnswerText != "Option 4" {
			t.Errorf("padding wrong: %+v", q.Answers)
		}
		if !q.Answers[0].IsCorrect {
			t.Error("matched option should be correct")
		}
	})

	t.Run("options truncated to four", func(t *testing.T) {
		questions := NormalizeQuestions([]RawQuestion{{
			Type:          "multiple_choice",
			Question:      "Pick one",
			Options:       []interface{}{"a", "b", "c", "d", "e", "f"},
			CorrectAnswer: "c",
		}})
		if len(questions[0].Answers) != 4 {
			t.Fatalf("got %d answers, want 4", len(questions[0].Answers))
		}
	})

	t.Run("exactly one correct answer", func(t *testing.T) {
		questions := NormalizeQuestions([]RawQuestion{{
			Type:          "mcq",
			Question:      "Pick one",
			Options:       []interface{}{"a", "b", "c", "d"},
			CorrectAnswer: "b",
		}})
		correct := 0
		for _, a := range questions[0].Answers {
			if a.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			t.Errorf("got %d correct answers, want 1", correct)
		}
	})

	t.Run("unmatched correct answer forces first option", func(t *testing.T) {
		questions := NormalizeQuestions([]RawQuestion{{
			Type:          "mcq",
			Question:      "Pick one",
			Options:       []interface{}{"a", "b", "c", "d"},
			CorrectAnswer: "not in the list",
		}})
		q := questions[0]
		if !q.Answers[0].IsCorrect {
			t.Error("first option should be forced correct")
		}
		for i := 1; i < len(q.Answers); i++ {
			if q.Answers[i].IsCorrect {
				t.Errorf("answer %d should not be correct", i)
			}
		}
	})

	t.Run("correct answer matched after trimming", func(t *testing.T) {
		questions := NormalizeQuestions([]RawQuestion{{
			Type:          "mcq",
			Question:      "Pick one",
			Options:       []interface{}{"  Paris  ", "London", "Rome", "Berlin"},
			CorrectAnswer: "Paris",
		}})
		if !questions[0].Answers[0].IsCorrect {
			t.Error("trimmed option should match correct answer")
		}
	})

	t.Run("fewer than two options rejected", func(t *testing.T) {
		questions := NormalizeQuestions([]RawQuestion{{
			Type:          "mcq",
			Question:      "Pick one",
			Options:       []interface{}{"only"},
			CorrectAnswer: "only",
		}})
		if len(questions) != 0 {
			t.Errorf("got %d questions, want 0", len(questions))
		}
	})

	t.Run("missing correct answer rejected", func(t *testing.T) {
		questions := NormalizeQuestions([]RawQuestion{{
			Type:     "mcq",
			Question: "Pick one",
			Options:  []interface{}{"a", "b"},
		}})
		if len(questions) != 0 {
			t.Errorf("got %d questions, want 0", len(questions))
		}
	})
}

func TestNormalizeQuestionsTrueFalse(t *testing.T) {
	tests := []struct {
		name          string
		correctAnswer string
		wantTrue      bool
	}{
		{"true", "True", true},
		{"lowercase true", "true", true},
		{"t", "t", true},
		{"numeric one", "1", true},
		{"yes", "yes", true},
		{"false", "False", false},
		{"no", "no", false},
		{"arbitrary text", "maybe", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions := NormalizeQuestions([]RawQuestion{{
				Type:          "true_false",
				Question:      "Statement?",
				CorrectAnswer: tt.correctAnswer,
			}})
			if len(questions) != 1 {
				t.Fatalf("got %d questions, want 1", len(questions))
			}
			q := questions[0]
			if len(q.Answers) != 2 || q.Answers[0].AnswerText != "True" || q.Answers[1].AnswerText != "False" {
				t.Fatalf("canonical True/False answers expected, got %+v", q.Answers)
			}
			if q.Answers[0].IsCorrect != tt.wantTrue {
				t.Errorf("True correct = %v, want %v", q.Answers[0].IsCorrect, tt.wantTrue)
			}
			if q.Answers[1].IsCorrect == tt.wantTrue {
				t.Error("exactly one answer must be correct")
			}
		})
	}
}

func TestNormalizeQuestionsShortAnswer(t *testing.T) {
	t.Run("reference answer emitted correct", func(t *testing.T) {
		questions := NormalizeQuestions([]RawQuestion{{
			Type:          "short_answer",
			Question:      "Explain X",
			CorrectAnswer: "Because of Y",
		}})
		if len(questions) != 1 {
			t.Fatalf("got %d questions, want 1", len(questions))
		}
		q := questions[0]
		if len(q.Answers) != 1 || !q.Answers[0].IsCorrect || q.Answers[0].AnswerText != "Because of Y" {
			t.Errorf("unexpected answers: %+v", q.Answers)
		}
		if q.Points != 2 {
			t.Errorf("got %d points, want short answer default of 2", q.Points)
		}
	})

	t.Run("missing reference answer rejected", func(t *testing.T) {
		questions := NormalizeQuestions([]RawQuestion{{
			Type:     "essay",
			Question: "Explain X",
		}})
		if len(questions) != 0 {
			t.Errorf("got %d questions, want 0", len(questions))
		}
	})
}

func TestNormalizeQuestionsGeneralRules(t *testing.T) {
	t.Run("empty text rejected", func(t *testing.T) {
		questions := NormalizeQuestions([]RawQuestion{{
			Type:          "true_false",
			Question:      "   ",
			CorrectAnswer: "True",
		}})
		if len(questions) != 0 {
			t.Errorf("got %d questions, want 0", len(questions))
		}
	})

	t.Run("points clamped to bounds", func(t *testing.T) {
		questions := NormalizeQuestions([]RawQuestion{
			{Type: "true_false", Question: "A?", CorrectAnswer: "True", Points: float64(50)},
			{Type: "true_false", Question: "B?", CorrectAnswer: "True", Points: float64(-2)},
			{Type: "true_false", Question: "C?", CorrectAnswer: "True", Points: "bogus"},
		})
		if questions[0].Points != 10 {
			t.Errorf("got %d, want clamp to 10", questions[0].Points)
		}
		if questions[1].Points != 1 {
			t.Errorf("got %d, want clamp to 1", questions[1].Points)
		}
		if questions[2].Points != 1 {
			t.Errorf("got %d, want default 1", questions[2].Points)
		}
	})

	t.Run("bad entry skipped, rest processed", func(t *testing.T) {
		questions := NormalizeQuestions([]RawQuestion{
			{Type: "mcq", Question: "broken", Options: []interface{}{"x"}, CorrectAnswer: "x"},
			{Type: "true_false", Question: "fine?", CorrectAnswer: "True"},
		})
		if len(questions) != 1 {
			t.Fatalf("got %d questions, want 1", len(questions))
		}
		if questions[0].QuestionText != "fine?" {
			t.Errorf("wrong survivor: %+v", questions[0])
		}
	})

	t.Run("order counts only accepted questions", func(t *testing.T) {
		questions := NormalizeQuestions([]RawQuestion{
			{Type: "short_answer", Question: "rejected"},
			{Type: "true_false", Question: "first?", CorrectAnswer: "True"},
			{Type: "true_false", Question: "second?", CorrectAnswer: "False"},
		})
		if questions[0].Order != 1 || questions[1].Order != 2 {
			t.Errorf("orders = %d, %d; want 1, 2", questions[0].Order, questions[1].Order)
		}
	})
}
