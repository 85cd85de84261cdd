package model

import "time"

// QuizAttempt 一次提交的判分结果。TotalPoints 在创建时从 Quiz 快照，
// 之后测验变更不影响历史记录
type QuizAttempt struct {
	BaseModel
	UserID      uint            `gorm:"index;not null" json:"userId"`
	QuizID      uint            `gorm:"index;not null" json:"quizId"`
	Score       int             `gorm:"default:0" json:"score"`
	TotalPoints int             `gorm:"default:0" json:"totalPoints"`
	Percentage  float64         `gorm:"type:decimal(5,2);default:0" json:"percentage"`
	CompletedAt time.Time       `json:"completedAt"`
	Answers     []AttemptAnswer `gorm:"foreignKey:AttemptID" json:"answers,omitempty"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

type AttemptAnswer struct {
	BaseModel
	AttemptID    uint   `gorm:"index;not null" json:"attemptId"`
	QuestionID   uint   `gorm:"index;not null" json:"questionId"`
	UserAnswer   string `gorm:"type:text" json:"userAnswer"`
	IsCorrect    bool   `gorm:"default:false" json:"isCorrect"`
	PointsEarned int    `gorm:"default:0" json:"pointsEarned"`
}

func (AttemptAnswer) TableName() string {
	return "attempt_answers"
}
