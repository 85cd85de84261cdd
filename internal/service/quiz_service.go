package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"quizgen_backend/internal/model"
	"quizgen_backend/internal/repository"
	"quizgen_backend/internal/util"
	"quizgen_backend/pkg/logger"
	"quizgen_backend/pkg/monitoring"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MinSourceTextLength 低于此长度的正文不足以出题，直接走兜底题库
const MinSourceTextLength = 50

const studentViewCacheTTL = 10 * time.Minute

// fallbackReason 生成链路失败后转入兜底的原因标记
type fallbackReason string

const (
	fallbackNone       fallbackReason = ""
	fallbackShortText  fallbackReason = "fallback_short_text"
	fallbackGeneration fallbackReason = "fallback_generation"
	fallbackParse      fallbackReason = "fallback_parse"
	fallbackEmpty      fallbackReason = "fallback_empty"
)

type QuizService struct {
	QuizRepo  *repository.QuizRepository
	Generator TextGenerator
	Redis     *redis.Client
}

func NewQuizService(quizRepo *repository.QuizRepository, generator TextGenerator, rdb *redis.Client) *QuizService {
	return &QuizService{
		QuizRepo:  quizRepo,
		Generator: generator,
		Redis:     rdb,
	}
}

// CreateResult 建题结果，生成链路的失败已在内部兜底，
// 对外只有存储失败一种可见错误
type CreateResult struct {
	Success        bool   `json:"success"`
	QuizID         uint   `json:"quizId"`
	QuestionsCount int    `json:"questionsCount"`
	Message        string `json:"message"`
}

// CreateFromText 从正文生成测验并原子落库
func (s *QuizService) CreateFromText(ctx context.Context, text string, rawSettings map[string]interface{}, userID uint, documentID *uint) (*CreateResult, error) {
	settings := NewGenerationSettings(rawSettings)

	start := time.Now()
	quiz, reason := s.buildQuiz(text, settings)
	monitoring.GenerationDuration.Observe(time.Since(start).Seconds())

	outcome := "ai"
	if reason != fallbackNone {
		outcome = string(reason)
	}
	monitoring.GenerationCounter.WithLabelValues(outcome).Inc()

	quiz.CreatedBy = userID
	quiz.DocumentID = documentID

	if err := s.QuizRepo.CreateWithQuestions(quiz); err != nil {
		logger.Log.Error("failed to persist quiz", zap.Error(err))
		return nil, err
	}

	message := fmt.Sprintf("Quiz created with %d questions", quiz.TotalQuestions)
	if reason != fallbackNone {
		message = fmt.Sprintf("Quiz created with %d questions (fallback questions used)", quiz.TotalQuestions)
	}

	return &CreateResult{
		Success:        true,
		QuizID:         quiz.ID,
		QuestionsCount: quiz.TotalQuestions,
		Message:        message,
	}, nil
}

// buildQuiz 生成→解析→规范化的纯装配流水线，任何一步失败
// 都换用兜底题库而不是向上抛错。总题数和总分永远按最终
// 题目列表重新计算，不信任上游报告的数量
func (s *QuizService) buildQuiz(text string, settings GenerationSettings) (*model.Quiz, fallbackReason) {
	questions, reason := s.generateQuestions(text, settings)

	description := fmt.Sprintf("AI-generated quiz with %d intelligent questions from your content", len(questions))
	if reason != fallbackNone {
		description = FallbackDescription(len(questions))
	}

	quiz := &model.Quiz{
		Title:       settings.Title,
		Description: description,
		Difficulty:  model.Difficulty(settings.Difficulty),
		Questions:   questions,
	}

	quiz.TotalQuestions = len(quiz.Questions)
	totalPoints := 0
	for _, q := range quiz.Questions {
		totalPoints += q.Points
	}
	quiz.TotalPoints = totalPoints

	return quiz, reason
}

func (s *QuizService) generateQuestions(text string, settings GenerationSettings) ([]model.QuizQuestion, fallbackReason) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < MinSourceTextLength {
		logger.Log.Warn("source text too short, using fallback",
			zap.Int("length", utf8.RuneCountInString(text)),
		)
		return BuildFallbackQuestions(settings.NumQuestions), fallbackShortText
	}

	prompt := BuildPrompt(text, settings)

	response, err := s.Generator.Generate(prompt)
	if err != nil {
		logger.Log.Warn("generation failed, using fallback", zap.Error(err))
		return BuildFallbackQuestions(settings.NumQuestions), fallbackGeneration
	}

	rawQuestions, err := ParseGenerationResponse(response)
	if err != nil {
		var malformed *MalformedJSONError
		if errors.As(err, &malformed) {
			logger.Log.Warn("malformed generation response, using fallback",
				zap.String("detail", malformed.Detail),
				zap.String("snippet", malformed.Snippet),
			)
		} else {
			logger.Log.Warn("unusable generation response, using fallback", zap.Error(err))
		}
		return BuildFallbackQuestions(settings.NumQuestions), fallbackParse
	}

	questions := NormalizeQuestions(rawQuestions)
	if len(questions) == 0 {
		logger.Log.Warn("no valid questions after normalization, using fallback")
		return BuildFallbackQuestions(settings.NumQuestions), fallbackEmpty
	}

	return questions, fallbackNone
}

// StudentQuizView 学生视角的测验，选项不暴露正确性
type StudentQuizView struct {
	ID             uint                  `json:"id"`
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	Difficulty     model.Difficulty      `json:"difficulty"`
	TotalQuestions int                   `json:"totalQuestions"`
	TotalPoints    int                   `json:"totalPoints"`
	Questions      []StudentQuestionView `json:"questions"`
}

type StudentQuestionView struct {
	ID           uint               `json:"id"`
	QuestionText string             `json:"questionText"`
	QuestionType model.QuestionType `json:"questionType"`
	Points       int                `json:"points"`
	Order        int                `json:"order"`
	Answers      []StudentAnswer    `json:"answers"`
}

type StudentAnswer struct {
	ID         uint   `json:"id"`
	AnswerText string `json:"answerText"`
}

// GetStudentView 返回隐藏答案的测验视图，带 Redis 缓存
func (s *QuizService) GetStudentView(ctx context.Context, quizID uint) (*StudentQuizView, error) {
	cacheKey := studentViewCacheKey(quizID)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var view StudentQuizView
			if err := json.Unmarshal([]byte(cached), &view); err == nil {
				return &view, nil
			}
		}
	}

	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	view := &StudentQuizView{
		ID:             quiz.ID,
		Title:          quiz.Title,
		Description:    quiz.Description,
		Difficulty:     quiz.Difficulty,
		TotalQuestions: quiz.TotalQuestions,
		TotalPoints:    quiz.TotalPoints,
		Questions:      make([]StudentQuestionView, 0, len(quiz.Questions)),
	}

	for _, q := range quiz.Questions {
		qv := StudentQuestionView{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			QuestionType: q.QuestionType,
			Points:       q.Points,
			Order:        q.Order,
			Answers:      make([]StudentAnswer, 0, len(q.Answers)),
		}
		for _, a := range q.Answers {
			qv.Answers = append(qv.Answers, StudentAnswer{
				ID:         a.ID,
				AnswerText: a.AnswerText,
			})
		}
		view.Questions = append(view.Questions, qv)
	}

	if s.Redis != nil {
		if data, err := json.Marshal(view); err == nil {
			s.Redis.Set(ctx, cacheKey, data, studentViewCacheTTL)
		}
	}

	return view, nil
}

// GetQuiz 完整测验（含答案正确性），供判分和属主查看
func (s *QuizService) GetQuiz(quizID uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) ListByUser(userID uint) ([]model.Quiz, error) {
	return s.QuizRepo.ListByUser(userID)
}

// QuizWithAttempts 列表项：测验加上该用户的作答摘要
type QuizWithAttempts struct {
	model.Quiz
	AttemptCount   int     `json:"attemptCount"`
	BestPercentage float64 `json:"bestPercentage"`
}

// AttachAttemptSummaries 将用户历史作答按测验归并为摘要
func AttachAttemptSummaries(quizzes []model.Quiz, attempts []model.QuizAttempt) []QuizWithAttempts {
	countByQuiz := make(map[uint]int)
	bestByQuiz := make(map[uint]float64)
	for _, a := range attempts {
		countByQuiz[a.QuizID]++
		if a.Percentage > bestByQuiz[a.QuizID] {
			bestByQuiz[a.QuizID] = a.Percentage
		}
	}

	out := make([]QuizWithAttempts, 0, len(quizzes))
	for _, q := range quizzes {
		out = append(out, QuizWithAttempts{
			Quiz:           q,
			AttemptCount:   countByQuiz[q.ID],
			BestPercentage: bestByQuiz[q.ID],
		})
	}
	return out
}

// Delete 仅属主可删除，同时失效学生视图缓存
func (s *QuizService) Delete(ctx context.Context, quizID, userID uint) error {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuizNotFound
		}
		return err
	}

	if quiz.CreatedBy != userID {
		return util.ErrPermissionDenied
	}

	if err := s.QuizRepo.Delete(quizID); err != nil {
		return err
	}

	if s.Redis != nil {
		s.Redis.Del(ctx, studentViewCacheKey(quizID))
	}

	return nil
}

func studentViewCacheKey(quizID uint) string {
	return fmt.Sprintf("quiz:student_view:%d", quizID)
}
