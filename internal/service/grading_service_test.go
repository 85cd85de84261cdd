package service

import (
	"quizgen_backend/internal/model"
	"testing"
)

func mcQuestion(id uint, points int, correct string, others ...string) model.QuizQuestion {
	q := model.QuizQuestion{
		QuestionText: "Pick one",
		QuestionType: model.MultipleChoice,
		Points:       points,
	}
	q.ID = id
	q.Answers = append(q.Answers, model.QuizAnswer{AnswerText: correct, IsCorrect: true})
	for _, o := range others {
		q.Answers = append(q.Answers, model.QuizAnswer{AnswerText: o})
	}
	return q
}

func tfQuestion(id uint, trueCorrect bool) model.QuizQuestion {
	q := model.QuizQuestion{
		QuestionText: "Statement?",
		QuestionType: model.TrueFalse,
		Points:       1,
		Answers: []model.QuizAnswer{
			{AnswerText: "True", IsCorrect: trueCorrect},
			{AnswerText: "False", IsCorrect: !trueCorrect},
		},
	}
	q.ID = id
	return q
}

func shortQuestion(id uint, reference string) model.QuizQuestion {
	q := model.QuizQuestion{
		QuestionText: "Explain",
		QuestionType: model.ShortAnswer,
		Points:       2,
		Answers: []model.QuizAnswer{
			{AnswerText: reference, IsCorrect: true},
		},
	}
	q.ID = id
	return q
}

func TestGradeAnswer(t *testing.T) {
	tests := []struct {
		name        string
		question    model.QuizQuestion
		submitted   string
		wantCorrect bool
		wantPoints  int
	}{
		{
			name:        "true_false exact",
			question:    tfQuestion(1, true),
			submitted:   "True",
			wantCorrect: true,
			wantPoints:  1,
		},
		{
			name:        "true_false case-insensitive",
			question:    tfQuestion(1, true),
			submitted:   "true",
			wantCorrect: true,
			wantPoints:  1,
		},
		{
			name:        "true_false surrounding whitespace",
			question:    tfQuestion(1, true),
			submitted:   " True  ",
			wantCorrect: true,
			wantPoints:  1,
		},
		{
			name:        "true_false wrong answer",
			question:    tfQuestion(1, true),
			submitted:   "False",
			wantCorrect: false,
			wantPoints:  0,
		},
		{
			name:        "mcq exact match",
			question:    mcQuestion(2, 3, "Paris", "London", "Rome", "Berlin"),
			submitted:   "paris",
			wantCorrect: true,
			wantPoints:  3,
		},
		{
			name:        "mcq partial text is not enough",
			question:    mcQuestion(2, 3, "Paris", "London", "Rome", "Berlin"),
			submitted:   "Par",
			wantCorrect: false,
			wantPoints:  0,
		},
		{
			name:        "short answer substring match",
			question:    shortQuestion(3, "Paris is the capital of France"),
			submitted:   "paris",
			wantCorrect: true,
			wantPoints:  2,
		},
		{
			name:        "short answer no containment",
			question:    shortQuestion(3, "Paris is the capital of France"),
			submitted:   "London",
			wantCorrect: false,
			wantPoints:  0,
		},
		{
			name:        "empty submission is incorrect",
			question:    tfQuestion(1, true),
			submitted:   "",
			wantCorrect: false,
			wantPoints:  0,
		},
		{
			name:        "whitespace-only submission is incorrect",
			question:    shortQuestion(3, "anything"),
			submitted:   "   ",
			wantCorrect: false,
			wantPoints:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			graded := GradeAnswer(&tt.question, tt.submitted)
			if graded.IsCorrect != tt.wantCorrect {
				t.Errorf("IsCorrect = %v, want %v", graded.IsCorrect, tt.wantCorrect)
			}
			if graded.PointsEarned != tt.wantPoints {
				t.Errorf("PointsEarned = %d, want %d", graded.PointsEarned, tt.wantPoints)
			}
			if graded.PointsPossible != tt.question.Points {
				t.Errorf("PointsPossible = %d, want %d", graded.PointsPossible, tt.question.Points)
			}
		})
	}
}

func TestAggregateAttempt(t *testing.T) {
	t.Run("percentage rounded to two decimals", func(t *testing.T) {
		quiz := &model.Quiz{TotalPoints: 4}
		graded := []GradedAnswer{
			{PointsEarned: 1},
			{PointsEarned: 2},
			{PointsEarned: 0},
		}
		attempt := AggregateAttempt(quiz, graded)
		if attempt.Score != 3 {
			t.Errorf("Score = %d, want 3", attempt.Score)
		}
		if attempt.TotalPoints != 4 {
			t.Errorf("TotalPoints = %d, want 4", attempt.TotalPoints)
		}
		if attempt.Percentage != 75.0 {
			t.Errorf("Percentage = %v, want 75.0", attempt.Percentage)
		}
	})

	t.Run("zero total points yields zero percentage", func(t *testing.T) {
		attempt := AggregateAttempt(&model.Quiz{TotalPoints: 0}, nil)
		if attempt.Percentage != 0 {
			t.Errorf("Percentage = %v, want 0", attempt.Percentage)
		}
	})

	t.Run("uneven division rounds", func(t *testing.T) {
		attempt := AggregateAttempt(&model.Quiz{TotalPoints: 3}, []GradedAnswer{{PointsEarned: 1}})
		if attempt.Percentage != 33.33 {
			t.Errorf("Percentage = %v, want 33.33", attempt.Percentage)
		}
	})

	t.Run("answers carried into attempt", func(t *testing.T) {
		graded := []GradedAnswer{
			{QuestionID: 7, UserAnswer: "x", IsCorrect: true, PointsEarned: 2},
			{QuestionID: 8, UserAnswer: "", IsCorrect: false, PointsEarned: 0},
		}
		attempt := AggregateAttempt(&model.Quiz{TotalPoints: 4}, graded)
		if len(attempt.Answers) != 2 {
			t.Fatalf("got %d answers, want 2", len(attempt.Answers))
		}
		if attempt.Answers[0].QuestionID != 7 || !attempt.Answers[0].IsCorrect {
			t.Errorf("unexpected first answer: %+v", attempt.Answers[0])
		}
	})
}
