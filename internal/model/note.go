package model

// Note 学生在讲座某个时间点记下的笔记
// swagger:model Note
type Note struct {
	BaseModel
	UserID       uint   `gorm:"index;not null" json:"-"`
	CourseID     uint   `gorm:"index;not null" json:"courseId"`
	SectionID    uint   `gorm:"not null" json:"sectionId"`
	LectureID    uint   `gorm:"index;not null" json:"lectureId"`
	CurrentTime  int    `gorm:"default:0" json:"currentTime"`
	LectureTitle string `gorm:"size:255" json:"lectureTitle"`
	Content      string `gorm:"type:text;not null" json:"content"`
}

func (Note) TableName() string {
	return "notes"
}
