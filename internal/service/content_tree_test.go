package service

import (
	"edunity_backend/internal/model"
	"edunity_backend/pkg/i18n"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func section(id uint, title string, order int) model.Section {
	s := model.Section{CourseID: 1, Title: title, Order: order, Status: model.StatusActive}
	s.ID = id
	return s
}

func lecture(id, sectionID uint, title string, order int, duration float64) model.Lecture {
	l := model.Lecture{SectionID: sectionID, Title: title, Type: model.LectureVideo, Duration: duration, Order: order, Status: model.StatusActive}
	l.ID = id
	return l
}

func quiz(id, sectionID uint, title string, order int) model.Quiz {
	q := model.Quiz{SectionID: uintPtr(sectionID), Title: title, Order: order, Status: model.StatusActive}
	q.ID = id
	return q
}

func topQuiz(id uint, title string, order int) model.Quiz {
	q := model.Quiz{CourseID: uintPtr(1), Title: title, Order: order, Status: model.StatusActive}
	q.ID = id
	return q
}

// sampleCatalog Section A(1): L1 100s, Q1 2 题; Section B(2): L2 50s
func sampleCatalog() *model.CourseCatalog {
	c := &model.CourseCatalog{
		Sections: []model.Section{section(2, "Section B", 2), section(1, "Section A", 1)},
		Lectures: []model.Lecture{lecture(10, 1, "Intro video", 1, 100), lecture(20, 2, "Closing video", 1, 50)},
		Quizzes:  []model.Quiz{quiz(30, 1, "Warm-up quiz", 2)},
		QuestionCounts: map[uint]int{
			30: 2,
		},
	}
	c.Course.ID = 1
	c.Course.Title = "Go"
	return c
}

func noProgress() UserProgress {
	return UserProgress{Lectures: map[uint]model.ProgressLecture{}, Quizzes: map[uint]model.ProgressQuiz{}}
}

func buildSample(t *testing.T, progress UserProgress) []model.CourseNode {
	t.Helper()
	return NewContentTreeBuilder(i18n.Default, i18n.LocaleEN).Build(sampleCatalog(), progress)
}

func TestBuildOrdersSectionsAndItems(t *testing.T) {
	nodes := buildSample(t, noProgress())
	require.Len(t, nodes, 2)

	a := nodes[0].(*model.SectionNode)
	b := nodes[1].(*model.SectionNode)
	assert.Equal(t, "Section A", a.Title)
	assert.Equal(t, "Section B", b.Title)
	assert.Equal(t, model.CourseNodeSection, a.ContentCourseType)
	assert.Equal(t, "1 min 40 sec", a.DurationDisplay)

	require.Len(t, a.SectionContent, 2)
	l1 := a.SectionContent[0].(*model.LectureItem)
	q1 := a.SectionContent[1].(*model.QuizItem)
	assert.Equal(t, uint(10), l1.ID)
	assert.Equal(t, model.KindLecture, l1.ContentSectionType)
	assert.Nil(t, l1.Percent)
	assert.Nil(t, l1.Learned)
	assert.Equal(t, uint(30), q1.ID)
	assert.Equal(t, 2, q1.TotalQuestionCount)
	assert.Nil(t, q1.QuestionsDone)
}

func TestBuildAttachesProgress(t *testing.T) {
	progress := noProgress()
	progress.Lectures[10] = model.ProgressLecture{LectureID: 10, Learned: 40, Percent: 40}
	progress.Quizzes[30] = model.ProgressQuiz{QuizID: 30, QuestionsDone: 1, Percent: 50}

	nodes := buildSample(t, progress)
	a := nodes[0].(*model.SectionNode)

	l1 := a.SectionContent[0].(*model.LectureItem)
	require.NotNil(t, l1.Percent)
	assert.Equal(t, 40.0, *l1.Percent)
	assert.Equal(t, 40.0, *l1.Learned)

	q1 := a.SectionContent[1].(*model.QuizItem)
	require.NotNil(t, q1.QuestionsDone)
	assert.Equal(t, 1, *q1.QuestionsDone)
	assert.Equal(t, 50.0, *q1.Percent)
}

func TestBuildLectureBeforeQuizOnEqualOrder(t *testing.T) {
	catalog := &model.CourseCatalog{
		Sections: []model.Section{section(1, "Only", 1)},
		Lectures: []model.Lecture{lecture(5, 1, "Same order lecture", 1, 10)},
		Quizzes:  []model.Quiz{quiz(3, 1, "Same order quiz", 1)},
	}
	nodes := NewContentTreeBuilder(nil, i18n.LocaleEN).Build(catalog, noProgress())
	items := nodes[0].(*model.SectionNode).SectionContent
	require.Len(t, items, 2)
	assert.Equal(t, model.KindLecture, items[0].Kind())
	assert.Equal(t, model.KindQuiz, items[1].Kind())
}

func TestBuildFileLectureShowsPages(t *testing.T) {
	l := lecture(7, 1, "Slides", 1, 12)
	l.Type = model.LectureFile
	catalog := &model.CourseCatalog{
		Sections: []model.Section{section(1, "Docs", 1)},
		Lectures: []model.Lecture{l},
	}
	nodes := NewContentTreeBuilder(i18n.Default, i18n.LocaleVI).Build(catalog, noProgress())
	sec := nodes[0].(*model.SectionNode)
	assert.Equal(t, "12 trang", sec.SectionContent[0].(*model.LectureItem).DurationDisplay)
	// 章节时长只统计视频
	assert.Equal(t, "0 giây", sec.DurationDisplay)
}

func TestBuildInterleavesTopLevelQuizzes(t *testing.T) {
	catalog := sampleCatalog()
	catalog.TopLevelQuizzes = []model.Quiz{topQuiz(40, "Final exam", 3), topQuiz(41, "Placement test", 1)}

	nodes := NewContentTreeBuilder(i18n.Default, i18n.LocaleEN).Build(catalog, noProgress())
	require.Len(t, nodes, 4)

	assert.Equal(t, "Section A", nodes[0].NodeTitle())
	assert.Equal(t, "Placement test", nodes[1].NodeTitle())
	assert.Equal(t, "Section B", nodes[2].NodeTitle())
	assert.Equal(t, "Final exam", nodes[3].NodeTitle())

	top := nodes[1].(*model.QuizItem)
	assert.Nil(t, top.SectionID)
	assert.Equal(t, "quiz", top.ContentCourseType)
}

func TestBuildEmptyCatalog(t *testing.T) {
	nodes := NewContentTreeBuilder(i18n.Default, i18n.LocaleEN).Build(&model.CourseCatalog{}, noProgress())
	assert.NotNil(t, nodes)
	assert.Empty(t, nodes)
}

func TestFilterTree(t *testing.T) {
	nodes := buildSample(t, noProgress())

	t.Run("section title keeps whole section", func(t *testing.T) {
		out := FilterTree(nodes, "section a")
		require.Len(t, out, 1)
		assert.Len(t, out[0].(*model.SectionNode).SectionContent, 2)
	})

	t.Run("item title keeps only matching items", func(t *testing.T) {
		out := FilterTree(nodes, "VIDEO")
		require.Len(t, out, 2)
		a := out[0].(*model.SectionNode)
		require.Len(t, a.SectionContent, 1)
		assert.Equal(t, "Intro video", a.SectionContent[0].ItemTitle())

		// 原树不受影响
		assert.Len(t, nodes[0].(*model.SectionNode).SectionContent, 2)
	})

	t.Run("sections without matches are dropped", func(t *testing.T) {
		out := FilterTree(nodes, "quiz")
		require.Len(t, out, 1)
		assert.Equal(t, "Section A", out[0].NodeTitle())
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, FilterTree(nodes, "kubernetes"))
	})

	t.Run("blank keyword", func(t *testing.T) {
		assert.Len(t, FilterTree(nodes, "  "), 2)
	})
}
