package repository

import (
	"context"
	"edunity_backend/internal/model"

	"gorm.io/gorm"
)

type NoteRepository struct {
	DB *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{DB: db}
}

// ListByCourse 用户在某门课程下的笔记，最新的在前
func (r *NoteRepository) ListByCourse(ctx context.Context, userID, courseID uint) ([]model.Note, error) {
	var notes []model.Note
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("created_at DESC, id DESC").
		Find(&notes).Error
	return notes, err
}

// FindByID 只能读到自己的笔记
func (r *NoteRepository) FindByID(ctx context.Context, userID, id uint) (*model.Note, error) {
	var note model.Note
	err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&note).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *NoteRepository) Create(ctx context.Context, note *model.Note) error {
	return r.DB.WithContext(ctx).Create(note).Error
}

func (r *NoteRepository) Update(ctx context.Context, note *model.Note) error {
	return r.DB.WithContext(ctx).Save(note).Error
}

func (r *NoteRepository) Delete(ctx context.Context, note *model.Note) error {
	return r.DB.WithContext(ctx).Delete(note).Error
}
