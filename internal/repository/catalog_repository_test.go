package repository

import (
	"context"
	"edunity_backend/internal/model"
	"edunity_backend/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestLoadCatalog(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.NewFixture(t, db)
	repo := NewCatalogRepository(db)
	ctx := context.Background()

	owner := f.User("Grace", "Hopper")
	course := f.Course("Go", owner.ID)
	second := f.Section(course.ID, "Second", 2)
	first := f.Section(course.ID, "First", 1)
	hidden := f.Section(course.ID, "Hidden", 3)
	f.Deactivate(hidden)

	f.Lecture(first.ID, "b", 2, 10)
	a := f.Lecture(first.ID, "a", 1, 10)
	off := f.Lecture(second.ID, "off", 1, 10)
	f.Deactivate(off)
	f.Lecture(hidden.ID, "in hidden", 1, 10)

	quiz := f.Quiz(first.ID, "quiz", 3, 3)
	f.Quiz(hidden.ID, "hidden quiz", 1, 1)
	top := f.CourseQuiz(course.ID, "legacy", 9, 2)

	var q model.Question
	require.NoError(t, db.Where("quiz_id = ?", quiz.ID).Order("id DESC").First(&q).Error)
	f.Deactivate(&q)

	catalog, err := repo.LoadCatalog(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go", catalog.Course.Title)

	require.Len(t, catalog.Sections, 2)
	assert.Equal(t, first.ID, catalog.Sections[0].ID)
	assert.Equal(t, second.ID, catalog.Sections[1].ID)

	require.Len(t, catalog.Lectures, 2)
	assert.Equal(t, a.ID, catalog.Lectures[0].ID)

	require.Len(t, catalog.Quizzes, 1)
	require.Len(t, catalog.TopLevelQuizzes, 1)
	assert.Equal(t, top.ID, catalog.TopLevelQuizzes[0].ID)

	assert.Equal(t, 2, catalog.QuestionCounts[quiz.ID])
	assert.Equal(t, 2, catalog.QuestionCounts[top.ID])
	assert.ElementsMatch(t, []uint{quiz.ID, top.ID}, catalog.QuizIDs())

	f.Deactivate(course)
	_, err = repo.LoadCatalog(ctx, course.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindActiveItems(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.NewFixture(t, db)
	repo := NewCatalogRepository(db)
	ctx := context.Background()

	owner := f.User("Grace", "Hopper")
	course := f.Course("Go", owner.ID)
	other := f.Course("Rust", owner.ID)
	section := f.Section(course.ID, "S", 1)
	otherSection := f.Section(other.ID, "S", 1)

	lecture := f.Lecture(section.ID, "L", 1, 10)
	foreign := f.Lecture(otherSection.ID, "F", 1, 10)
	quiz := f.Quiz(section.ID, "Q", 2, 1)
	top := f.CourseQuiz(course.ID, "Top", 3, 1)
	otherTop := f.CourseQuiz(other.ID, "Other top", 3, 1)

	got, err := repo.FindActiveLecture(ctx, course.ID, lecture.ID)
	require.NoError(t, err)
	assert.Equal(t, lecture.ID, got.ID)

	_, err = repo.FindActiveLecture(ctx, course.ID, foreign.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	gotQuiz, err := repo.FindActiveQuiz(ctx, course.ID, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, quiz.ID, gotQuiz.ID)

	gotQuiz, err = repo.FindActiveQuiz(ctx, course.ID, top.ID)
	require.NoError(t, err)
	assert.Equal(t, top.ID, gotQuiz.ID)

	_, err = repo.FindActiveQuiz(ctx, course.ID, otherTop.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// 章节下线后其中的内容一并失效
	f.Deactivate(section)
	_, err = repo.FindActiveLecture(ctx, course.ID, lecture.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.FindActiveQuiz(ctx, course.ID, quiz.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListQuestionsOrder(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.NewFixture(t, db)
	repo := NewCatalogRepository(db)

	owner := f.User("Grace", "Hopper")
	course := f.Course("Go", owner.ID)
	section := f.Section(course.ID, "S", 1)
	quiz := f.Quiz(section.ID, "Q", 1, 0)
	third := f.Question(quiz.ID, "third", 3)
	first := f.Question(quiz.ID, "first", 1)
	second := f.Question(quiz.ID, "second", 2)

	questions, err := repo.ListQuestions(context.Background(), quiz.ID)
	require.NoError(t, err)
	require.Len(t, questions, 3)
	assert.Equal(t, []uint{first.ID, second.ID, third.ID}, []uint{questions[0].ID, questions[1].ID, questions[2].ID})

	_, err = repo.FindQuestion(context.Background(), quiz.ID+1, first.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPaidCourses(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.NewFixture(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	owner := f.User("Grace", "Hopper")
	student := f.User("Ada", "Lovelace")
	paid := f.Course("Paid", owner.ID)
	pending := f.Course("Pending", owner.ID)
	f.Purchase(student.ID, paid.ID)
	f.Purchase(student.ID, paid.ID)

	order := &model.Order{UserID: student.ID, PaymentStatus: model.PaymentPending, Status: model.StatusActive}
	require.NoError(t, db.Create(order).Error)
	require.NoError(t, db.Create(&model.OrderItem{OrderID: order.ID, CourseID: pending.ID, Status: model.StatusActive}).Error)

	ok, err := repo.HasPaidCourse(ctx, student.ID, paid.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.HasPaidCourse(ctx, student.ID, pending.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.HasPaidCourse(ctx, owner.ID, paid.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ids, err := repo.ListPaidCourseIDs(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{paid.ID}, ids)
}
