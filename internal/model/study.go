package model

import "gorm.io/datatypes"

// 以下类型为学习进度计算过程中的临时结构，不落库

type ContentKind string

const (
	KindLecture ContentKind = "lecture"
	KindQuiz    ContentKind = "quiz"
)

const CourseNodeSection = "section"

// ContentItem 是 Section 下的可学习单元，只有 *LectureItem 与 *QuizItem 两种实现
type ContentItem interface {
	Kind() ContentKind
	ItemID() uint
	ItemTitle() string
	ItemOrder() int
	ProgressPercent() *float64
	contentItem()
}

// CourseNode 是课程第一层节点：*SectionNode，或旧数据中直接挂在课程上的 *QuizItem
type CourseNode interface {
	NodeTitle() string
	NodeOrder() int
	courseNode()
}

type LectureItem struct {
	ID                 uint        `json:"id"`
	SectionID          uint        `json:"sectionId"`
	Title              string      `json:"title"`
	Order              int         `json:"order"`
	ContentSectionType ContentKind `json:"contentSectionType"`
	Type               LectureType `json:"type"`
	ContentLink        string      `json:"-"`
	Duration           float64     `json:"duration"`
	DurationDisplay    string      `json:"durationDisplay"`
	Learned            *float64    `json:"learned"`
	Percent            *float64    `json:"percent"`
}

func (l *LectureItem) Kind() ContentKind         { return KindLecture }
func (l *LectureItem) ItemID() uint              { return l.ID }
func (l *LectureItem) ItemTitle() string         { return l.Title }
func (l *LectureItem) ItemOrder() int            { return l.Order }
func (l *LectureItem) ProgressPercent() *float64 { return l.Percent }
func (l *LectureItem) contentItem()              {}

type QuizItem struct {
	ID                 uint        `json:"id"`
	SectionID          *uint       `json:"sectionId"`
	Title              string      `json:"title"`
	Order              int         `json:"order"`
	ContentSectionType ContentKind `json:"contentSectionType"`
	ContentCourseType  string      `json:"contentCourseType,omitempty"`
	TotalQuestionCount int         `json:"totalQuestionCount"`
	QuestionsDone      *int        `json:"questionsDone"`
	Percent            *float64    `json:"percent"`
}

func (q *QuizItem) Kind() ContentKind         { return KindQuiz }
func (q *QuizItem) ItemID() uint              { return q.ID }
func (q *QuizItem) ItemTitle() string         { return q.Title }
func (q *QuizItem) ItemOrder() int            { return q.Order }
func (q *QuizItem) ProgressPercent() *float64 { return q.Percent }
func (q *QuizItem) contentItem()              {}
func (q *QuizItem) NodeTitle() string         { return q.Title }
func (q *QuizItem) NodeOrder() int            { return q.Order }
func (q *QuizItem) courseNode()               {}

// SectionSummary 各计数在聚合阶段填充；ContentCount/ContentDone 只统计讲座，保持旧版字段含义
type SectionSummary struct {
	ContentCount int `json:"contentCount"`
	ContentDone  int `json:"contentDone"`
	QuizCount    int `json:"quizCount"`
	QuizDone     int `json:"quizDone"`
	TotalCount   int `json:"totalCount"`
	TotalDone    int `json:"totalDone"`
}

type SectionNode struct {
	ID                uint          `json:"id"`
	Title             string        `json:"title"`
	Order             int           `json:"order"`
	ContentCourseType string        `json:"contentCourseType"`
	DurationDisplay   string        `json:"durationDisplay"`
	SectionContent    []ContentItem `json:"sectionContent"`
	SectionSummary
}

func (s *SectionNode) NodeTitle() string { return s.Title }
func (s *SectionNode) NodeOrder() int    { return s.Order }
func (s *SectionNode) courseNode()       {}

// CourseSummary 课程级汇总。TotalLectureCount/TotalLectureDone 为兼容字段，
// 与 TotalCount/TotalDone 相同，同时包含讲座和测验
type CourseSummary struct {
	TotalCount        int     `json:"totalCount"`
	TotalDone         int     `json:"totalDone"`
	TotalLectureCount int     `json:"totalLectureCount"`
	TotalLectureDone  int     `json:"totalLectureDone"`
	ProgressPercent   float64 `json:"progressPercent"`
}

type QuestionView struct {
	ID         uint           `json:"id"`
	QuizID     uint           `json:"quizId"`
	Question   string         `json:"question"`
	Options    datatypes.JSON `json:"options"`
	Order      int            `json:"order"`
	AnswerUser *string        `json:"answerUser"`
}

type CurrentLecture struct {
	LectureItem
	ContentURL string `json:"contentUrl"`
}

type CurrentQuiz struct {
	QuizItem
	NextQuestionIndex int           `json:"nextQuestionIndex"`
	NextQuestion      *QuestionView `json:"nextQuestion"`
}

// CurrentContent 学生继续学习时落地的内容，Lecture 与 Quiz 只会有一个非空
type CurrentContent struct {
	CurrentContentType ContentKind     `json:"currentContentType"`
	Lecture            *CurrentLecture `json:"lecture,omitempty"`
	Quiz               *CurrentQuiz    `json:"quiz,omitempty"`
}

type StudyState struct {
	CourseTitle    string          `json:"courseTitle"`
	CurrentContent *CurrentContent `json:"currentContent"`
	AllContent     []CourseNode    `json:"allContent"`
	CourseSummary
}

type ContentTree struct {
	AllContent []CourseNode `json:"allContent"`
	CourseSummary
}

// UserCourse 已购课程列表中的一项，进度为整数百分比
type UserCourse struct {
	ID              uint   `json:"id"`
	Thumbnail       string `json:"thumbnail"`
	Title           string `json:"title"`
	Creator         string `json:"creator"`
	TotalCount      int    `json:"totalCount"`
	TotalDone       int    `json:"totalDone"`
	ProgressPercent int    `json:"progressPercent"`
}

// IsDone 完成判定是硬阈值：percent >= 100，没有进度记录视为未完成
func IsDone(item ContentItem) bool {
	p := item.ProgressPercent()
	return p != nil && *p >= 100
}
