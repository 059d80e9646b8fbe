package model

// ProgressLecture 用户对单个讲座的学习进度
// Learned 为看到过的最远位置（水位线），LastPosition 为最近一次上报的位置
type ProgressLecture struct {
	TrackedModel
	UserID       uint    `gorm:"uniqueIndex:idx_progress_lecture_user;not null" json:"userId"`
	LectureID    uint    `gorm:"uniqueIndex:idx_progress_lecture_user;not null" json:"lectureId"`
	Learned      float64 `gorm:"default:0" json:"learned"`
	LastPosition float64 `gorm:"default:0" json:"lastPosition"`
	Percent      float64 `gorm:"default:0" json:"percent"`
	Status       Status  `gorm:"size:20;default:'active'" json:"status"`
}

func (ProgressLecture) TableName() string {
	return "progress_lectures"
}

type ProgressQuiz struct {
	TrackedModel
	UserID        uint    `gorm:"uniqueIndex:idx_progress_quiz_user;not null" json:"userId"`
	QuizID        uint    `gorm:"uniqueIndex:idx_progress_quiz_user;not null" json:"quizId"`
	QuestionsDone int     `gorm:"default:0" json:"questionsDone"`
	Percent       float64 `gorm:"default:0" json:"percent"`
	Status        Status  `gorm:"size:20;default:'active'" json:"status"`
}

func (ProgressQuiz) TableName() string {
	return "progress_quizzes"
}

// AnswerUser 用户对某道题提交的作答内容，不做判分
type AnswerUser struct {
	TrackedModel
	UserID     uint   `gorm:"uniqueIndex:idx_answer_user_question;not null" json:"userId"`
	QuestionID uint   `gorm:"uniqueIndex:idx_answer_user_question;not null" json:"questionId"`
	Content    string `gorm:"type:text" json:"content"`
	Status     Status `gorm:"size:20;default:'active'" json:"status"`
}

func (AnswerUser) TableName() string {
	return "answers_users"
}
