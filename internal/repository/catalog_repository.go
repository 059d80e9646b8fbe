package repository

import (
	"context"
	"database/sql"
	"edunity_backend/internal/model"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogRepository 课程目录只读访问：课程、章节、讲座、测验、题目
type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

// byPosition 按 order 升序，order 相同按 id；order 是保留字，交给 gorm 转义
func byPosition(table string) clause.OrderBy {
	return clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Table: table, Name: "order"}},
		{Column: clause.Column{Table: table, Name: "id"}},
	}}
}

func (r *CatalogRepository) FindActiveCourse(ctx context.Context, courseID uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.WithContext(ctx).
		Where("id = ? AND status = ?", courseID, model.StatusActive).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CatalogRepository) ListActiveCourses(ctx context.Context, courseIDs []uint) ([]model.Course, error) {
	var courses []model.Course
	if len(courseIDs) == 0 {
		return courses, nil
	}
	err := r.DB.WithContext(ctx).
		Where("id IN ? AND status = ?", courseIDs, model.StatusActive).
		Order("id").
		Find(&courses).Error
	return courses, err
}

func (r *CatalogRepository) ListActiveSections(ctx context.Context, courseID uint) ([]model.Section, error) {
	var sections []model.Section
	err := r.DB.WithContext(ctx).
		Where("course_id = ? AND status = ?", courseID, model.StatusActive).
		Order(byPosition("sections")).
		Find(&sections).Error
	return sections, err
}

func (r *CatalogRepository) ListActiveLectures(ctx context.Context, sectionIDs ...uint) ([]model.Lecture, error) {
	var lectures []model.Lecture
	if len(sectionIDs) == 0 {
		return lectures, nil
	}
	err := r.DB.WithContext(ctx).
		Where("section_id IN ? AND status = ?", sectionIDs, model.StatusActive).
		Order(byPosition("lectures")).
		Find(&lectures).Error
	return lectures, err
}

func (r *CatalogRepository) ListActiveQuizzes(ctx context.Context, sectionIDs ...uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	if len(sectionIDs) == 0 {
		return quizzes, nil
	}
	err := r.DB.WithContext(ctx).
		Where("section_id IN ? AND status = ?", sectionIDs, model.StatusActive).
		Order(byPosition("quizzes")).
		Find(&quizzes).Error
	return quizzes, err
}

// ListTopLevelQuizzes 旧数据：没有章节、直接挂在课程上的测验
func (r *CatalogRepository) ListTopLevelQuizzes(ctx context.Context, courseID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.WithContext(ctx).
		Where("section_id IS NULL AND course_id = ? AND status = ?", courseID, model.StatusActive).
		Order(byPosition("quizzes")).
		Find(&quizzes).Error
	return quizzes, err
}

// ListQuestions 测验下的有效题目，按 order 排序
func (r *CatalogRepository) ListQuestions(ctx context.Context, quizID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.WithContext(ctx).
		Where("quiz_id = ? AND status = ?", quizID, model.StatusActive).
		Order(byPosition("questions")).
		Find(&questions).Error
	return questions, err
}

// CountQuestions 统计每个测验的有效题目数，没有题目的测验不在结果中
func (r *CatalogRepository) CountQuestions(ctx context.Context, quizIDs ...uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(quizIDs))
	if len(quizIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		QuizID uint
		Total  int
	}
	err := r.DB.WithContext(ctx).Model(&model.Question{}).
		Select("quiz_id, COUNT(*) AS total").
		Where("quiz_id IN ? AND status = ?", quizIDs, model.StatusActive).
		Group("quiz_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.QuizID] = row.Total
	}
	return counts, nil
}

// FindActiveLecture 讲座本身及其章节都必须有效，且章节属于该课程
func (r *CatalogRepository) FindActiveLecture(ctx context.Context, courseID, lectureID uint) (*model.Lecture, error) {
	var lecture model.Lecture
	err := r.DB.WithContext(ctx).Model(&model.Lecture{}).
		Select("lectures.*").
		Joins("JOIN sections ON sections.id = lectures.section_id AND sections.deleted_at IS NULL").
		Where("lectures.id = ? AND lectures.status = ?", lectureID, model.StatusActive).
		Where("sections.course_id = ? AND sections.status = ?", courseID, model.StatusActive).
		First(&lecture).Error
	if err != nil {
		return nil, err
	}
	return &lecture, nil
}

// FindActiveQuiz 同时支持章节内测验与直接挂在课程上的旧测验
func (r *CatalogRepository) FindActiveQuiz(ctx context.Context, courseID, quizID uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.WithContext(ctx).Model(&model.Quiz{}).
		Select("quizzes.*").
		Joins("LEFT JOIN sections ON sections.id = quizzes.section_id AND sections.deleted_at IS NULL").
		Where("quizzes.id = ? AND quizzes.status = ?", quizID, model.StatusActive).
		Where("(quizzes.section_id IS NOT NULL AND sections.course_id = ? AND sections.status = ?) OR (quizzes.section_id IS NULL AND quizzes.course_id = ?)",
			courseID, model.StatusActive, courseID).
		First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// FindQuestion 题目必须有效且属于该测验
func (r *CatalogRepository) FindQuestion(ctx context.Context, quizID, questionID uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.WithContext(ctx).
		Where("id = ? AND quiz_id = ? AND status = ?", questionID, quizID, model.StatusActive).
		First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// LoadCatalog 一次性读取课程的全部有效目录数据
func (r *CatalogRepository) LoadCatalog(ctx context.Context, courseID uint) (*model.CourseCatalog, error) {
	course, err := r.FindActiveCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	sections, err := r.ListActiveSections(ctx, courseID)
	if err != nil {
		return nil, err
	}
	sectionIDs := make([]uint, 0, len(sections))
	for _, s := range sections {
		sectionIDs = append(sectionIDs, s.ID)
	}

	lectures, err := r.ListActiveLectures(ctx, sectionIDs...)
	if err != nil {
		return nil, err
	}
	quizzes, err := r.ListActiveQuizzes(ctx, sectionIDs...)
	if err != nil {
		return nil, err
	}
	topLevel, err := r.ListTopLevelQuizzes(ctx, courseID)
	if err != nil {
		return nil, err
	}

	catalog := &model.CourseCatalog{
		Course:          *course,
		Sections:        sections,
		Lectures:        lectures,
		Quizzes:         quizzes,
		TopLevelQuizzes: topLevel,
	}
	catalog.QuestionCounts, err = r.CountQuestions(ctx, catalog.QuizIDs()...)
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

// UnmeasuredLecture 还没有时长的视频讲座及其所属课程
type UnmeasuredLecture struct {
	model.Lecture
	CourseID uint
}

// ListUnmeasuredVideos 列出 duration 为 0 的有效视频讲座
func (r *CatalogRepository) ListUnmeasuredVideos(ctx context.Context, limit int) ([]UnmeasuredLecture, error) {
	var rows []UnmeasuredLecture
	q := r.DB.WithContext(ctx).Model(&model.Lecture{}).
		Select("lectures.*, sections.course_id AS course_id").
		Joins("JOIN sections ON sections.id = lectures.section_id AND sections.deleted_at IS NULL").
		Where("lectures.type = ? AND lectures.status = ?", model.LectureVideo, model.StatusActive).
		Where("lectures.duration <= 0 AND lectures.content_link <> ''").
		Order("lectures.id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Scan(&rows).Error
	return rows, err
}

func (r *CatalogRepository) UpdateLectureDuration(ctx context.Context, lectureID uint, seconds float64) error {
	return r.DB.WithContext(ctx).Model(&model.Lecture{}).
		Where("id = ?", lectureID).
		Update("duration", seconds).Error
}

// catalogVersionSQL 统计课程目录各表的行数与最近修改/删除时间，包含已软删除的行
const catalogVersionSQL = `
SELECT COUNT(*) AS total, MAX(updated_at) AS last_update, MAX(deleted_at) AS last_delete FROM courses WHERE id = @course
UNION ALL
SELECT COUNT(*), MAX(updated_at), MAX(deleted_at) FROM sections WHERE course_id = @course
UNION ALL
SELECT COUNT(*), MAX(updated_at), MAX(deleted_at) FROM lectures
	WHERE section_id IN (SELECT id FROM sections WHERE course_id = @course)
UNION ALL
SELECT COUNT(*), MAX(updated_at), MAX(deleted_at) FROM quizzes
	WHERE course_id = @course OR section_id IN (SELECT id FROM sections WHERE course_id = @course)
UNION ALL
SELECT COUNT(*), MAX(updated_at), MAX(deleted_at) FROM questions
	WHERE quiz_id IN (SELECT id FROM quizzes WHERE course_id = @course OR section_id IN (SELECT id FROM sections WHERE course_id = @course))`

type catalogVersionRow struct {
	Total      int64
	LastUpdate sql.NullString
	LastDelete sql.NullString
}

// CatalogVersion 课程、章节、讲座、测验或题目任一变更（含状态切换与删除）都会改变返回值
func (r *CatalogRepository) CatalogVersion(ctx context.Context, courseID uint) (string, error) {
	var rows []catalogVersionRow
	err := r.DB.WithContext(ctx).
		Raw(catalogVersionSQL, sql.Named("course", courseID)).
		Scan(&rows).Error
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(rows))
	for _, row := range rows {
		parts = append(parts, fmt.Sprintf("%d/%s/%s", row.Total, row.LastUpdate.String, row.LastDelete.String))
	}
	return strings.Join(parts, "|"), nil
}
