package service

import (
	"context"
	"edunity_backend/internal/repository"
	"edunity_backend/internal/testutil"
	"edunity_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.NewFixture(t, db)
	svc := NewNoteService(repository.NewNoteRepository(db), repository.NewCatalogRepository(db))
	ctx := context.Background()

	owner := f.User("Grace", "Hopper")
	student := f.User("Ada", "Lovelace")
	other := f.User("Alan", "Turing")
	course := f.Course("Go", owner.ID)
	section := f.Section(course.ID, "Basics", 1)
	lecture := f.Lecture(section.ID, "Goroutines", 1, 300)

	note, err := svc.Create(ctx, student.ID, NoteInput{
		CourseID: course.ID, SectionID: section.ID, LectureID: lecture.ID, CurrentTime: 42, Content: "select blocks",
	})
	require.NoError(t, err)
	assert.Equal(t, "Goroutines", note.LectureTitle)

	second, err := svc.Create(ctx, student.ID, NoteInput{
		CourseID: course.ID, SectionID: section.ID, LectureID: lecture.ID, CurrentTime: 90, Content: "channels",
	})
	require.NoError(t, err)

	notes, err := svc.ListByCourse(ctx, student.ID, course.ID)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, second.ID, notes[0].ID)

	notes, err = svc.ListByCourse(ctx, other.ID, course.ID)
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)

	content := "select blocks until a case is ready"
	updated, err := svc.Update(ctx, student.ID, note.ID, NotePatch{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, content, updated.Content)
	assert.Equal(t, 42, updated.CurrentTime)

	// 其他用户看不到、也改不了
	_, err = svc.Get(ctx, other.ID, note.ID)
	assert.ErrorIs(t, err, util.ErrNoteNotFound)
	_, err = svc.Update(ctx, other.ID, note.ID, NotePatch{Content: &content})
	assert.ErrorIs(t, err, util.ErrNoteNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, other.ID, note.ID), util.ErrNoteNotFound)

	require.NoError(t, svc.Delete(ctx, student.ID, note.ID))
	_, err = svc.Get(ctx, student.ID, note.ID)
	assert.ErrorIs(t, err, util.ErrNoteNotFound)
}

func TestNoteRequiresMatchingLecture(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.NewFixture(t, db)
	svc := NewNoteService(repository.NewNoteRepository(db), repository.NewCatalogRepository(db))
	ctx := context.Background()

	owner := f.User("Grace", "Hopper")
	course := f.Course("Go", owner.ID)
	s1 := f.Section(course.ID, "One", 1)
	s2 := f.Section(course.ID, "Two", 2)
	lecture := f.Lecture(s1.ID, "Intro", 1, 60)

	_, err := svc.Create(ctx, owner.ID, NoteInput{CourseID: course.ID, SectionID: s2.ID, LectureID: lecture.ID, Content: "x"})
	assert.ErrorIs(t, err, util.ErrLectureNotFound)

	_, err = svc.Create(ctx, owner.ID, NoteInput{CourseID: course.ID + 1, SectionID: s1.ID, LectureID: lecture.ID, Content: "x"})
	assert.ErrorIs(t, err, util.ErrLectureNotFound)

	f.Deactivate(lecture)
	_, err = svc.Create(ctx, owner.ID, NoteInput{CourseID: course.ID, SectionID: s1.ID, LectureID: lecture.ID, Content: "x"})
	assert.ErrorIs(t, err, util.ErrLectureNotFound)
}
