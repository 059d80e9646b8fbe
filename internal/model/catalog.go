package model

// CourseCatalog 一门课程当前有效的目录快照（只含 active 数据），与用户无关，可整体缓存
type CourseCatalog struct {
	Course          Course       `json:"course"`
	Sections        []Section    `json:"sections"`
	Lectures        []Lecture    `json:"lectures"`
	Quizzes         []Quiz       `json:"quizzes"`
	TopLevelQuizzes []Quiz       `json:"topLevelQuizzes"`
	QuestionCounts  map[uint]int `json:"questionCounts"`
}

// LectureIDs 返回快照中全部讲座 ID
func (c *CourseCatalog) LectureIDs() []uint {
	ids := make([]uint, 0, len(c.Lectures))
	for _, l := range c.Lectures {
		ids = append(ids, l.ID)
	}
	return ids
}

// QuizIDs 返回快照中全部测验 ID，包括直接挂在课程上的测验
func (c *CourseCatalog) QuizIDs() []uint {
	ids := make([]uint, 0, len(c.Quizzes)+len(c.TopLevelQuizzes))
	for _, q := range c.Quizzes {
		ids = append(ids, q.ID)
	}
	for _, q := range c.TopLevelQuizzes {
		ids = append(ids, q.ID)
	}
	return ids
}
