package service

import (
	"context"
	"edunity_backend/internal/model"
	"edunity_backend/internal/repository"
	"edunity_backend/internal/util"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type NoteService struct {
	repo        *repository.NoteRepository
	catalogRepo *repository.CatalogRepository
}

func NewNoteService(repo *repository.NoteRepository, catalogRepo *repository.CatalogRepository) *NoteService {
	return &NoteService{repo: repo, catalogRepo: catalogRepo}
}

// NoteInput 创建笔记的参数
type NoteInput struct {
	CourseID    uint
	SectionID   uint
	LectureID   uint
	CurrentTime int
	Content     string
}

// NotePatch 为 nil 的字段保持不变
type NotePatch struct {
	CurrentTime *int
	Content     *string
}

func (s *NoteService) ListByCourse(ctx context.Context, userID, courseID uint) ([]model.Note, error) {
	notes, err := s.repo.ListByCourse(ctx, userID, courseID)
	if err != nil {
		return nil, errors.Wrap(err, "list notes")
	}
	if notes == nil {
		notes = []model.Note{}
	}
	return notes, nil
}

func (s *NoteService) Get(ctx context.Context, userID, id uint) (*model.Note, error) {
	note, err := s.repo.FindByID(ctx, userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNoteNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find note")
	}
	return note, nil
}

// Create 讲座必须有效，并且属于给定的章节和课程
func (s *NoteService) Create(ctx context.Context, userID uint, in NoteInput) (*model.Note, error) {
	lecture, err := s.catalogRepo.FindActiveLecture(ctx, in.CourseID, in.LectureID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLectureNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find lecture")
	}
	if lecture.SectionID != in.SectionID {
		return nil, util.ErrLectureNotFound
	}

	note := &model.Note{
		UserID:       userID,
		CourseID:     in.CourseID,
		SectionID:    in.SectionID,
		LectureID:    lecture.ID,
		CurrentTime:  in.CurrentTime,
		LectureTitle: lecture.Title,
		Content:      in.Content,
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, errors.Wrap(err, "create note")
	}
	return note, nil
}

func (s *NoteService) Update(ctx context.Context, userID, id uint, patch NotePatch) (*model.Note, error) {
	note, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.CurrentTime != nil {
		note.CurrentTime = *patch.CurrentTime
	}
	if patch.Content != nil {
		note.Content = *patch.Content
	}
	if err := s.repo.Update(ctx, note); err != nil {
		return nil, errors.Wrap(err, "update note")
	}
	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, userID, id uint) error {
	note, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	return errors.Wrap(s.repo.Delete(ctx, note), "delete note")
}
