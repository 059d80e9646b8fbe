package service

import (
	"edunity_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateProgressThresholdIsHard(t *testing.T) {
	progress := noProgress()
	progress.Lectures[10] = model.ProgressLecture{LectureID: 10, Percent: 99.99}
	progress.Lectures[20] = model.ProgressLecture{LectureID: 20, Percent: 100}

	nodes := buildSample(t, progress)
	summary := AggregateProgress(nodes)

	a := nodes[0].(*model.SectionNode)
	assert.Equal(t, 1, a.ContentCount)
	assert.Equal(t, 0, a.ContentDone)
	assert.Equal(t, 1, a.QuizCount)
	assert.Equal(t, 0, a.QuizDone)
	assert.Equal(t, 2, a.TotalCount)
	assert.Equal(t, 0, a.TotalDone)

	b := nodes[1].(*model.SectionNode)
	assert.Equal(t, 1, b.ContentDone)
	assert.Equal(t, 1, b.TotalDone)

	assert.Equal(t, 3, summary.TotalCount)
	assert.Equal(t, 1, summary.TotalDone)
	assert.Equal(t, summary.TotalCount, summary.TotalLectureCount)
	assert.Equal(t, summary.TotalDone, summary.TotalLectureDone)
	assert.Equal(t, 33.33, summary.ProgressPercent)
}

func TestAggregateProgressCountsQuizzes(t *testing.T) {
	progress := noProgress()
	progress.Lectures[10] = model.ProgressLecture{LectureID: 10, Percent: 100}
	progress.Quizzes[30] = model.ProgressQuiz{QuizID: 30, QuestionsDone: 2, Percent: 100}

	nodes := buildSample(t, progress)
	summary := AggregateProgress(nodes)

	a := nodes[0].(*model.SectionNode)
	assert.Equal(t, 1, a.QuizDone)
	assert.Equal(t, 2, a.TotalDone)
	assert.Equal(t, 66.67, summary.ProgressPercent)
}

func TestAggregateProgressIncludesTopLevelQuizzes(t *testing.T) {
	catalog := sampleCatalog()
	catalog.TopLevelQuizzes = []model.Quiz{topQuiz(40, "Final exam", 9)}
	progress := noProgress()
	progress.Quizzes[40] = model.ProgressQuiz{QuizID: 40, Percent: 100}

	nodes := NewContentTreeBuilder(nil, "en").Build(catalog, progress)
	summary := AggregateProgress(nodes)

	assert.Equal(t, 4, summary.TotalCount)
	assert.Equal(t, 1, summary.TotalDone)
	assert.Equal(t, 25.0, summary.ProgressPercent)
}

func TestAggregateProgressEmpty(t *testing.T) {
	summary := AggregateProgress(nil)
	assert.Equal(t, model.CourseSummary{}, summary)

	nodes := []model.CourseNode{&model.SectionNode{ID: 1, Title: "Empty"}}
	summary = AggregateProgress(nodes)
	assert.Equal(t, 0, summary.TotalCount)
	assert.Equal(t, 0.0, summary.ProgressPercent)
}

func TestOverviewPercent(t *testing.T) {
	assert.Equal(t, 0, OverviewPercent(model.CourseSummary{}))
	assert.Equal(t, 33, OverviewPercent(model.CourseSummary{TotalCount: 3, TotalDone: 1}))
	assert.Equal(t, 67, OverviewPercent(model.CourseSummary{TotalCount: 3, TotalDone: 2}))
	assert.Equal(t, 100, OverviewPercent(model.CourseSummary{TotalCount: 4, TotalDone: 4}))
}

func TestPercentHelpers(t *testing.T) {
	assert.Equal(t, 0.0, LecturePercent(50, 0))
	assert.Equal(t, 50.0, LecturePercent(50, 100))
	assert.Equal(t, 100.0, LecturePercent(150, 100))
	assert.Equal(t, 33.33, LecturePercent(1, 3))
	assert.Equal(t, 0.0, LecturePercent(-5, 100))
	// 入库前保留两位小数，99.996 视为已完成，99.99 仍未完成
	assert.Equal(t, 100.0, LecturePercent(99.996, 100))
	assert.Equal(t, 99.99, LecturePercent(99.99, 100))

	assert.Equal(t, 0.0, QuizPercent(1, 0))
	assert.Equal(t, 50.0, QuizPercent(1, 2))
	assert.Equal(t, 100.0, QuizPercent(3, 3))
	assert.Equal(t, 66.67, QuizPercent(2, 3))
}

func TestResolveCursor(t *testing.T) {
	t.Run("first incomplete in document order", func(t *testing.T) {
		progress := noProgress()
		progress.Lectures[10] = model.ProgressLecture{LectureID: 10, Percent: 100}
		item := ResolveCursor(buildSample(t, progress))
		require.NotNil(t, item)
		assert.Equal(t, model.KindQuiz, item.Kind())
		assert.Equal(t, uint(30), item.ItemID())
	})

	t.Run("partial progress is still current", func(t *testing.T) {
		progress := noProgress()
		progress.Lectures[10] = model.ProgressLecture{LectureID: 10, Percent: 99.99}
		item := ResolveCursor(buildSample(t, progress))
		assert.Equal(t, uint(10), item.ItemID())
	})

	t.Run("falls back to first item when all done", func(t *testing.T) {
		progress := noProgress()
		progress.Lectures[10] = model.ProgressLecture{LectureID: 10, Percent: 100}
		progress.Lectures[20] = model.ProgressLecture{LectureID: 20, Percent: 100}
		progress.Quizzes[30] = model.ProgressQuiz{QuizID: 30, Percent: 100}
		item := ResolveCursor(buildSample(t, progress))
		require.NotNil(t, item)
		assert.Equal(t, model.KindLecture, item.Kind())
		assert.Equal(t, uint(10), item.ItemID())
	})

	t.Run("empty tree", func(t *testing.T) {
		assert.Nil(t, ResolveCursor(nil))
		assert.Nil(t, ResolveCursor([]model.CourseNode{&model.SectionNode{ID: 1}}))
	})

	t.Run("top level quiz participates", func(t *testing.T) {
		catalog := &model.CourseCatalog{TopLevelQuizzes: []model.Quiz{topQuiz(40, "Final exam", 1)}}
		nodes := NewContentTreeBuilder(nil, "en").Build(catalog, noProgress())
		item := ResolveCursor(nodes)
		require.NotNil(t, item)
		assert.Equal(t, uint(40), item.ItemID())
	})
}

func TestFlattenTree(t *testing.T) {
	catalog := sampleCatalog()
	catalog.TopLevelQuizzes = []model.Quiz{topQuiz(40, "Final exam", 9)}
	nodes := NewContentTreeBuilder(nil, "en").Build(catalog, noProgress())

	entries := flattenTree(nodes)
	require.Len(t, entries, 4)
	assert.Equal(t, cursorEntry{NodeIndex: 0, ItemIndex: 1, Item: entries[1].Item}, entries[1])
	assert.Equal(t, 2, entries[3].NodeIndex)
	assert.Equal(t, -1, entries[3].ItemIndex)

	assert.NotNil(t, findItem(nodes, model.KindQuiz, 40))
	assert.Nil(t, findItem(nodes, model.KindLecture, 40))
}
