package service

import (
	"errors"
	"quizgen_backend/internal/model"
	"strings"
	"testing"
)

type stubGenerator struct {
	response string
	err      error
	prompts  []string
}

func (s *stubGenerator) Generate(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

const sampleText = "Machine learning is a subset of artificial intelligence that focuses on algorithms that can learn from data and improve through experience."

func checkTotals(t *testing.T, quiz *model.Quiz) {
	t.Helper()
	if quiz.TotalQuestions != len(quiz.Questions) {
		t.Errorf("TotalQuestions = %d, want %d", quiz.TotalQuestions, len(quiz.Questions))
	}
	sum := 0
	for _, q := range quiz.Questions {
		sum += q.Points
	}
	if quiz.TotalPoints != sum {
		t.Errorf("TotalPoints = %d, want %d", quiz.TotalPoints, sum)
	}
}

func TestBuildQuiz(t *testing.T) {
	t.Run("uses generated questions on success", func(t *testing.T) {
		gen := &stubGenerator{response: `{"questions":[
			{"type":"true_false","question":"ML learns from data?","correct_answer":"True"},
			{"type":"short_answer","question":"Define ML","correct_answer":"Algorithms that learn from data"}
		]}`}
		svc := NewQuizService(nil, gen, nil)

		quiz, reason := svc.buildQuiz(sampleText, NewGenerationSettings(map[string]interface{}{"numQuestions": 2, "title": "ML Quiz"}))
		if reason != fallbackNone {
			t.Fatalf("fallback reason %q, want none", reason)
		}
		if quiz.Title != "ML Quiz" {
			t.Errorf("Title = %q", quiz.Title)
		}
		if len(quiz.Questions) != 2 {
			t.Fatalf("got %d questions, want 2", len(quiz.Questions))
		}
		checkTotals(t, quiz)
		if len(gen.prompts) != 1 || !strings.Contains(gen.prompts[0], "Machine learning") {
			t.Error("prompt should embed the source text")
		}
	})

	t.Run("short text skips generation", func(t *testing.T) {
		gen := &stubGenerator{}
		svc := NewQuizService(nil, gen, nil)

		quiz, reason := svc.buildQuiz("too short", NewGenerationSettings(map[string]interface{}{"numQuestions": 4}))
		if reason != fallbackShortText {
			t.Fatalf("reason = %q, want %q", reason, fallbackShortText)
		}
		if len(gen.prompts) != 0 {
			t.Error("generator should not be called for short text")
		}
		if len(quiz.Questions) != 4 {
			t.Errorf("got %d questions, want 4", len(quiz.Questions))
		}
		checkTotals(t, quiz)
	})

	t.Run("length gate counts characters not bytes", func(t *testing.T) {
		gen := &stubGenerator{response: `{"questions":[
			{"type":"true_false","question":"容易吗？","correct_answer":"True"}
		]}`}
		svc := NewQuizService(nil, gen, nil)

		// 50 个多字节字符，按字节算会超过阈值两倍
		text := strings.Repeat("学", MinSourceTextLength)
		_, reason := svc.buildQuiz(text, NewGenerationSettings(map[string]interface{}{"numQuestions": 1}))
		if reason != fallbackNone {
			t.Fatalf("reason = %q, want none", reason)
		}
		if len(gen.prompts) != 1 {
			t.Error("generator should be called for 50-character text")
		}
	})

	t.Run("generation failure falls back", func(t *testing.T) {
		gen := &stubGenerator{err: errors.New("network down")}
		svc := NewQuizService(nil, gen, nil)

		quiz, reason := svc.buildQuiz(sampleText, NewGenerationSettings(map[string]interface{}{"numQuestions": 8}))
		if reason != fallbackGeneration {
			t.Fatalf("reason = %q, want %q", reason, fallbackGeneration)
		}
		if len(quiz.Questions) != 8 {
			t.Fatalf("got %d questions, want 8", len(quiz.Questions))
		}
		for i := 6; i < 8; i++ {
			if !strings.HasPrefix(quiz.Questions[i].QuestionText, AdditionalQuestionPrefix) {
				t.Errorf("question %d should carry the marker", i)
			}
		}
		checkTotals(t, quiz)
	})

	t.Run("unparseable response falls back", func(t *testing.T) {
		gen := &stubGenerator{response: "I refuse to answer in JSON."}
		svc := NewQuizService(nil, gen, nil)

		quiz, reason := svc.buildQuiz(sampleText, NewGenerationSettings(map[string]interface{}{"numQuestions": 3}))
		if reason != fallbackParse {
			t.Fatalf("reason = %q, want %q", reason, fallbackParse)
		}
		if len(quiz.Questions) != 3 {
			t.Errorf("got %d questions, want 3", len(quiz.Questions))
		}
		checkTotals(t, quiz)
	})

	t.Run("all entries rejected falls back", func(t *testing.T) {
		gen := &stubGenerator{response: `{"questions":[{"type":"short_answer","question":"no reference"}]}`}
		svc := NewQuizService(nil, gen, nil)

		quiz, reason := svc.buildQuiz(sampleText, NewGenerationSettings(map[string]interface{}{"numQuestions": 2}))
		if reason != fallbackEmpty {
			t.Fatalf("reason = %q, want %q", reason, fallbackEmpty)
		}
		if len(quiz.Questions) != 2 {
			t.Errorf("got %d questions, want 2", len(quiz.Questions))
		}
	})

	t.Run("totals recomputed, upstream counts ignored", func(t *testing.T) {
		// 模型声称 points 超限，规范化已夹紧，总分按夹紧后求和
		gen := &stubGenerator{response: `{"questions":[
			{"type":"true_false","question":"A?","correct_answer":"True","points":99},
			{"type":"true_false","question":"B?","correct_answer":"False","points":2}
		]}`}
		svc := NewQuizService(nil, gen, nil)

		quiz, _ := svc.buildQuiz(sampleText, NewGenerationSettings(nil))
		if quiz.TotalPoints != 12 {
			t.Errorf("TotalPoints = %d, want 12 (10 clamped + 2)", quiz.TotalPoints)
		}
		checkTotals(t, quiz)
	})
}

func TestAttachAttemptSummaries(t *testing.T) {
	quizzes := []model.Quiz{
		{BaseModel: model.BaseModel{ID: 1}, Title: "First"},
		{BaseModel: model.BaseModel{ID: 2}, Title: "Second"},
	}
	attempts := []model.QuizAttempt{
		{QuizID: 1, Percentage: 50},
		{QuizID: 1, Percentage: 80},
		{QuizID: 3, Percentage: 100}, // 已删除测验的历史作答不影响列表
	}

	out := AttachAttemptSummaries(quizzes, attempts)
	if len(out) != 2 {
		t.Fatalf("got %d entries, want 2", len(out))
	}
	if out[0].AttemptCount != 2 || out[0].BestPercentage != 80 {
		t.Errorf("quiz 1 summary = %d/%.0f, want 2/80", out[0].AttemptCount, out[0].BestPercentage)
	}
	if out[1].AttemptCount != 0 || out[1].BestPercentage != 0 {
		t.Errorf("quiz 2 summary = %d/%.0f, want 0/0", out[1].AttemptCount, out[1].BestPercentage)
	}
}
