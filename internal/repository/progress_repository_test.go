package repository

import (
	"context"
	"edunity_backend/internal/model"
	"edunity_backend/internal/testutil"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUpsertLectureProgress(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProgressRepository(db)
	ctx := context.Background()

	p, err := repo.GetLectureProgress(ctx, 1, 10)
	require.NoError(t, err)
	assert.Nil(t, p)

	raise := func(v float64) func(*model.ProgressLecture) {
		return func(p *model.ProgressLecture) {
			p.Percent = math.Max(p.Percent, v)
			p.LastPosition = v
		}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		_, err := repo.WithTx(tx).UpsertLectureProgress(ctx, 1, 10, raise(60))
		return err
	})
	require.NoError(t, err)

	saved, err := repo.UpsertLectureProgress(ctx, 1, 10, raise(20))
	require.NoError(t, err)
	assert.Equal(t, 60.0, saved.Percent)
	assert.Equal(t, 20.0, saved.LastPosition)

	var count int64
	require.NoError(t, db.Model(&model.ProgressLecture{}).Where("user_id = ? AND lecture_id = ?", 1, 10).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	all, err := repo.ListLectureProgress(ctx, 1, 10, 11)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 60.0, all[10].Percent)

	empty, err := repo.ListLectureProgress(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUpsertQuizProgressAndAnswers(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.NewFixture(t, db)
	repo := NewProgressRepository(db)
	ctx := context.Background()

	owner := f.User("Grace", "Hopper")
	course := f.Course("Go", owner.ID)
	section := f.Section(course.ID, "S", 1)
	quiz := f.Quiz(section.ID, "Q", 1, 0)
	q1 := f.Question(quiz.ID, "one", 1)
	q2 := f.Question(quiz.ID, "two", 2)
	otherQuiz := f.Quiz(section.ID, "Other", 2, 0)
	kept := f.Question(otherQuiz.ID, "kept", 1)

	_, err := repo.UpsertQuizProgress(ctx, 7, quiz.ID, func(p *model.ProgressQuiz) {
		p.QuestionsDone = 2
		p.Percent = 100
	})
	require.NoError(t, err)

	require.NoError(t, repo.UpsertAnswer(ctx, 7, q1.ID, "A"))
	require.NoError(t, repo.UpsertAnswer(ctx, 7, q1.ID, "B"))
	require.NoError(t, repo.UpsertAnswer(ctx, 7, q2.ID, "C"))
	require.NoError(t, repo.UpsertAnswer(ctx, 7, kept.ID, "D"))
	require.NoError(t, repo.UpsertAnswer(ctx, 8, q1.ID, "other user"))

	answer, err := repo.GetAnswer(ctx, 7, q1.ID)
	require.NoError(t, err)
	require.NotNil(t, answer)
	assert.Equal(t, "B", answer.Content)

	// 已删除题目的作答同样要清理
	require.NoError(t, db.Delete(q2).Error)

	require.NoError(t, repo.DeleteQuizProgress(ctx, 7, quiz.ID))
	require.NoError(t, repo.DeleteAnswersForQuiz(ctx, 7, quiz.ID))

	p, err := repo.GetQuizProgress(ctx, 7, quiz.ID)
	require.NoError(t, err)
	assert.Nil(t, p)

	var remaining []model.AnswerUser
	require.NoError(t, db.Order("id").Find(&remaining).Error)
	require.Len(t, remaining, 2)
	assert.Equal(t, kept.ID, remaining[0].QuestionID)
	assert.Equal(t, uint(8), remaining[1].UserID)

	// 物理删除后可以重新写入
	_, err = repo.UpsertQuizProgress(ctx, 7, quiz.ID, func(p *model.ProgressQuiz) { p.QuestionsDone = 1 })
	require.NoError(t, err)
	p, err = repo.GetQuizProgress(ctx, 7, quiz.ID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 1, p.QuestionsDone)
	assert.Equal(t, 0.0, p.Percent)
}
