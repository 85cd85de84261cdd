package service

import (
	"context"
	"errors"
	"math"
	"quizgen_backend/internal/model"
	"quizgen_backend/internal/repository"
	"quizgen_backend/internal/util"
	"strings"
	"time"

	"gorm.io/gorm"
)

type GradingService struct {
	QuizRepo    *repository.QuizRepository
	AttemptRepo *repository.AttemptRepository
}

func NewGradingService(quizRepo *repository.QuizRepository, attemptRepo *repository.AttemptRepository) *GradingService {
	return &GradingService{
		QuizRepo:    quizRepo,
		AttemptRepo: attemptRepo,
	}
}

// GradedAnswer 单题判分结果
type GradedAnswer struct {
	QuestionID     uint   `json:"questionId"`
	QuestionText   string `json:"questionText"`
	UserAnswer     string `json:"userAnswer"`
	CorrectAnswer  string `json:"correctAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
	PointsEarned   int    `json:"pointsEarned"`
	PointsPossible int    `json:"pointsPossible"`
}

// SubmissionResult 整卷判分结果
type SubmissionResult struct {
	Success     bool           `json:"success"`
	AttemptID   uint           `json:"attemptId"`
	Score       int            `json:"score"`
	TotalPoints int            `json:"totalPoints"`
	Percentage  float64        `json:"percentage"`
	CompletedAt string         `json:"completedAt,omitempty"`
	Results     []GradedAnswer `json:"perQuestionResults"`
}

// GradeAnswer 纯函数判分。多选/判断：两侧去空白后忽略大小写精确匹配；
// 简答：提交文本（小写去空白）是参考答案的子串即判对。
// 空提交一律判错，不报错
func GradeAnswer(question *model.QuizQuestion, submittedText string) GradedAnswer {
	graded := GradedAnswer{
		QuestionID:     question.ID,
		QuestionText:   question.QuestionText,
		UserAnswer:     submittedText,
		PointsPossible: question.Points,
	}

	correct := question.CorrectAnswer()
	if correct == nil {
		return graded
	}
	graded.CorrectAnswer = correct.AnswerText

	submitted := strings.TrimSpace(submittedText)
	if submitted == "" {
		return graded
	}

	switch question.QuestionType {
	case model.MultipleChoice, model.TrueFalse:
		graded.IsCorrect = strings.EqualFold(submitted, strings.TrimSpace(correct.AnswerText))
	case model.ShortAnswer:
		reference := strings.ToLower(strings.TrimSpace(correct.AnswerText))
		graded.IsCorrect = strings.Contains(reference, strings.ToLower(submitted))
	}

	if graded.IsCorrect {
		graded.PointsEarned = question.Points
	}

	return graded
}

// AggregateAttempt 汇总判分结果。TotalPoints 取测验当前总分快照，
// 之后测验变更不影响历史成绩；总分为 0 时百分比为 0
func AggregateAttempt(quiz *model.Quiz, graded []GradedAnswer) *model.QuizAttempt {
	score := 0
	for _, g := range graded {
		score += g.PointsEarned
	}

	percentage := 0.0
	if quiz.TotalPoints > 0 {
		percentage = math.Round(float64(score)/float64(quiz.TotalPoints)*100*100) / 100
	}

	attempt := &model.QuizAttempt{
		QuizID:      quiz.ID,
		Score:       score,
		TotalPoints: quiz.TotalPoints,
		Percentage:  percentage,
		CompletedAt: time.Now(),
		Answers:     make([]model.AttemptAnswer, 0, len(graded)),
	}

	for _, g := range graded {
		attempt.Answers = append(attempt.Answers, model.AttemptAnswer{
			QuestionID:   g.QuestionID,
			UserAnswer:   g.UserAnswer,
			IsCorrect:    g.IsCorrect,
			PointsEarned: g.PointsEarned,
		})
	}

	return attempt
}

// SubmitAttempt 按测验题目顺序逐题判分并原子落库。
// 未提交的题目判错计零分，提交中未知的题目 ID 忽略
func (s *GradingService) SubmitAttempt(ctx context.Context, quizID, userID uint, submissions map[uint]string) (*SubmissionResult, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	if len(quiz.Questions) == 0 {
		return nil, util.ErrEmptyQuiz
	}

	graded := make([]GradedAnswer, 0, len(quiz.Questions))
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		graded = append(graded, GradeAnswer(q, submissions[q.ID]))
	}

	attempt := AggregateAttempt(quiz, graded)
	attempt.UserID = userID

	if err := s.AttemptRepo.CreateWithAnswers(attempt); err != nil {
		return nil, err
	}

	return &SubmissionResult{
		Success:     true,
		AttemptID:   attempt.ID,
		Score:       attempt.Score,
		TotalPoints: attempt.TotalPoints,
		Percentage:  attempt.Percentage,
		CompletedAt: attempt.CompletedAt.Format(util.TimeFormat),
		Results:     graded,
	}, nil
}

// GetAttemptResult 作答详情，仅本人可见
func (s *GradingService) GetAttemptResult(attemptID, userID uint) (*SubmissionResult, error) {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}

	if attempt.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	quiz, err := s.QuizRepo.FindByID(attempt.QuizID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	questionByID := map[uint]*model.QuizQuestion{}
	if quiz != nil {
		for i := range quiz.Questions {
			questionByID[quiz.Questions[i].ID] = &quiz.Questions[i]
		}
	}

	results := make([]GradedAnswer, 0, len(attempt.Answers))
	for _, a := range attempt.Answers {
		g := GradedAnswer{
			QuestionID:   a.QuestionID,
			UserAnswer:   a.UserAnswer,
			IsCorrect:    a.IsCorrect,
			PointsEarned: a.PointsEarned,
		}
		if q, ok := questionByID[a.QuestionID]; ok {
			g.QuestionText = q.QuestionText
			g.PointsPossible = q.Points
			if correct := q.CorrectAnswer(); correct != nil {
				g.CorrectAnswer = correct.AnswerText
			}
		}
		results = append(results, g)
	}

	return &SubmissionResult{
		Success:     true,
		AttemptID:   attempt.ID,
		Score:       attempt.Score,
		TotalPoints: attempt.TotalPoints,
		Percentage:  attempt.Percentage,
		CompletedAt: attempt.CompletedAt.Format(util.TimeFormat),
		Results:     results,
	}, nil
}

// ListAttempts 某用户在某测验下的历史作答
func (s *GradingService) ListAttempts(quizID, userID uint) ([]model.QuizAttempt, error) {
	return s.AttemptRepo.ListByUserAndQuiz(userID, quizID)
}

// ListUserAttempts 某用户的全部历史作答
func (s *GradingService) ListUserAttempts(userID uint) ([]model.QuizAttempt, error) {
	return s.AttemptRepo.ListByUser(userID)
}
