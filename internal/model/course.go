package model

import (
	"gorm.io/datatypes"
)

// swagger:model Course
type Course struct {
	BaseModel
	Title     string `gorm:"size:100;not null" json:"title"`
	Thumbnail string `gorm:"size:255" json:"thumbnail"`
	Status    Status `gorm:"size:20;default:'active';index" json:"status"`
	CreatedBy uint   `gorm:"index" json:"createdBy"`
}

func (Course) TableName() string {
	return "courses"
}

// swagger:model Section
type Section struct {
	BaseModel
	CourseID    uint   `gorm:"index;not null" json:"courseId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Order       int    `gorm:"column:order;default:0" json:"order"`
	Status      Status `gorm:"size:20;default:'active'" json:"status"`
}

func (Section) TableName() string {
	return "sections"
}

type LectureType string

const (
	LectureVideo LectureType = "video"
	LectureFile  LectureType = "file"
)

// Lecture Duration 对视频是秒数，对文件是页数
// swagger:model Lecture
type Lecture struct {
	BaseModel
	SectionID   uint        `gorm:"index;not null" json:"sectionId"`
	Title       string      `gorm:"size:255;not null" json:"title"`
	Type        LectureType `gorm:"size:20;default:'video'" json:"type"`
	ContentLink string      `gorm:"size:512" json:"contentLink"`
	Duration    float64     `gorm:"default:0" json:"duration"`
	Order       int         `gorm:"column:order;default:0" json:"order"`
	Status      Status      `gorm:"size:20;default:'active'" json:"status"`
}

func (Lecture) TableName() string {
	return "lectures"
}

// Quiz 正常挂在 Section 下；旧数据中存在只挂在课程上的测验（SectionID 为空，CourseID 有值）
// swagger:model Quiz
type Quiz struct {
	BaseModel
	SectionID *uint  `gorm:"index" json:"sectionId"`
	CourseID  *uint  `gorm:"index" json:"courseId"`
	Title     string `gorm:"size:255;not null" json:"title"`
	Order     int    `gorm:"column:order;default:0" json:"order"`
	Status    Status `gorm:"size:20;default:'active'" json:"status"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model Question
type Question struct {
	BaseModel
	QuizID   uint           `gorm:"index;not null" json:"quizId"`
	Question string         `gorm:"type:text;not null" json:"question"`
	Options  datatypes.JSON `json:"options"`
	Answer   string         `gorm:"type:text" json:"-"`
	Order    int            `gorm:"column:order;default:0" json:"order"`
	Status   Status         `gorm:"size:20;default:'active'" json:"status"`
}

func (Question) TableName() string {
	return "questions"
}
