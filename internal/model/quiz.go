package model

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	ShortAnswer    QuestionType = "short_answer"
)

// Quiz 测验聚合根，TotalQuestions/TotalPoints 由装配时根据题目列表计算
type Quiz struct {
	BaseModel
	Title          string         `gorm:"size:255;not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	Difficulty     Difficulty     `gorm:"type:enum('easy','medium','hard');default:'medium'" json:"difficulty"`
	TotalQuestions int            `gorm:"default:0" json:"totalQuestions"`
	TotalPoints    int            `gorm:"default:0" json:"totalPoints"`
	CreatedBy      uint           `gorm:"index;not null" json:"createdBy"`
	DocumentID     *uint          `gorm:"index" json:"documentId,omitempty"`
	Questions      []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

type QuizQuestion struct {
	BaseModel
	QuizID       uint         `gorm:"index;not null" json:"quizId"`
	QuestionText string       `gorm:"type:text;not null" json:"questionText"`
	QuestionType QuestionType `gorm:"type:enum('multiple_choice','true_false','short_answer');default:'multiple_choice'" json:"questionType"`
	Points       int          `gorm:"default:1" json:"points"`
	Order        int          `gorm:"column:question_order;default:0" json:"order"`
	Answers      []QuizAnswer `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// CorrectAnswer 返回标记为正确的答案，多选/判断按构造恰有一个
func (q *QuizQuestion) CorrectAnswer() *QuizAnswer {
	for i := range q.Answers {
		if q.Answers[i].IsCorrect {
			return &q.Answers[i]
		}
	}
	return nil
}

type QuizAnswer struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	AnswerText string `gorm:"type:text;not null" json:"answerText"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
}

func (QuizAnswer) TableName() string {
	return "quiz_answers"
}
