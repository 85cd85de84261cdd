package repository

import (
	"quizgen_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

// CreateWithQuestions 在单个事务内写入测验、题目和选项，
// 任何一条失败则整体回滚
func (r *QuizRepository) CreateWithQuestions(quiz *model.Quiz) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(quiz).Error
	})
}

// FindByID 加载测验及其题目和答案，题目按 order 排序
func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_questions.question_order ASC")
		}).
		Preload("Questions.Answers").
		First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) ListByUser(userID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.
		Where("created_by = ?", userID).
		Order("created_at DESC").
		Find(&quizzes).Error
	return quizzes, err
}

// Delete 级联删除测验及其题目、选项和历史作答
func (r *QuizRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&model.QuizQuestion{}).
			Where("quiz_id = ?", id).
			Pluck("id", &questionIDs).Error; err != nil {
			return err
		}

		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).
				Delete(&model.QuizAnswer{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("quiz_id = ?", id).
			Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}

		var attemptIDs []uint
		if err := tx.Model(&model.QuizAttempt{}).
			Where("quiz_id = ?", id).
			Pluck("id", &attemptIDs).Error; err != nil {
			return err
		}

		if len(attemptIDs) > 0 {
			if err := tx.Where("attempt_id IN ?", attemptIDs).
				Delete(&model.AttemptAnswer{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("quiz_id = ?", id).
			Delete(&model.QuizAttempt{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Quiz{}, id).Error
	})
}
