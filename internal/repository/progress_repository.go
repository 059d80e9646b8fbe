package repository

import (
	"context"
	"edunity_backend/internal/model"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRepository 用户学习进度与作答记录
type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// WithTx 返回绑定到事务上的仓库，事务内只能使用它
func (r *ProgressRepository) WithTx(tx *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: tx}
}

func (r *ProgressRepository) ListLectureProgress(ctx context.Context, userID uint, lectureIDs ...uint) (map[uint]model.ProgressLecture, error) {
	result := make(map[uint]model.ProgressLecture, len(lectureIDs))
	if len(lectureIDs) == 0 {
		return result, nil
	}

	var rows []model.ProgressLecture
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND lecture_id IN ? AND status = ?", userID, lectureIDs, model.StatusActive).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.LectureID] = row
	}
	return result, nil
}

func (r *ProgressRepository) ListQuizProgress(ctx context.Context, userID uint, quizIDs ...uint) (map[uint]model.ProgressQuiz, error) {
	result := make(map[uint]model.ProgressQuiz, len(quizIDs))
	if len(quizIDs) == 0 {
		return result, nil
	}

	var rows []model.ProgressQuiz
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND quiz_id IN ? AND status = ?", userID, quizIDs, model.StatusActive).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.QuizID] = row
	}
	return result, nil
}

// GetLectureProgress 没有记录时返回 nil, nil
func (r *ProgressRepository) GetLectureProgress(ctx context.Context, userID, lectureID uint) (*model.ProgressLecture, error) {
	var progress model.ProgressLecture
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND lecture_id = ? AND status = ?", userID, lectureID, model.StatusActive).
		First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// GetQuizProgress 没有记录时返回 nil, nil
func (r *ProgressRepository) GetQuizProgress(ctx context.Context, userID, quizID uint) (*model.ProgressQuiz, error) {
	var progress model.ProgressQuiz
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND quiz_id = ? AND status = ?", userID, quizID, model.StatusActive).
		First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// UpsertLectureProgress 先保证记录存在，再加行锁读出，交给 merge 计算新值后写回。
// 需要在事务内调用，行锁才会持续到提交
func (r *ProgressRepository) UpsertLectureProgress(ctx context.Context, userID, lectureID uint, merge func(p *model.ProgressLecture)) (*model.ProgressLecture, error) {
	db := r.DB.WithContext(ctx)

	seed := model.ProgressLecture{UserID: userID, LectureID: lectureID, Status: model.StatusActive}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return nil, err
	}

	var progress model.ProgressLecture
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND lecture_id = ?", userID, lectureID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}

	merge(&progress)
	progress.Status = model.StatusActive
	if err := db.Save(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

// UpsertQuizProgress 与 UpsertLectureProgress 相同的加锁读改写流程
func (r *ProgressRepository) UpsertQuizProgress(ctx context.Context, userID, quizID uint, merge func(p *model.ProgressQuiz)) (*model.ProgressQuiz, error) {
	db := r.DB.WithContext(ctx)

	seed := model.ProgressQuiz{UserID: userID, QuizID: quizID, Status: model.StatusActive}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return nil, err
	}

	var progress model.ProgressQuiz
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}

	merge(&progress)
	progress.Status = model.StatusActive
	if err := db.Save(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) DeleteQuizProgress(ctx context.Context, userID, quizID uint) error {
	return r.DB.WithContext(ctx).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Delete(&model.ProgressQuiz{}).Error
}

// GetAnswer 没有作答时返回 nil, nil
func (r *ProgressRepository) GetAnswer(ctx context.Context, userID, questionID uint) (*model.AnswerUser, error) {
	var answer model.AnswerUser
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND question_id = ? AND status = ?", userID, questionID, model.StatusActive).
		First(&answer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *ProgressRepository) UpsertAnswer(ctx context.Context, userID, questionID uint, content string) error {
	answer := model.AnswerUser{
		UserID:     userID,
		QuestionID: questionID,
		Content:    content,
		Status:     model.StatusActive,
	}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "status", "updated_at"}),
	}).Create(&answer).Error
}

// DeleteAnswersForQuiz 删除用户在该测验所有题目上的作答，包括已下线的题目
func (r *ProgressRepository) DeleteAnswersForQuiz(ctx context.Context, userID, quizID uint) error {
	db := r.DB.WithContext(ctx)
	questionIDs := db.Unscoped().Model(&model.Question{}).Select("id").Where("quiz_id = ?", quizID)
	return db.Where("user_id = ? AND question_id IN (?)", userID, questionIDs).
		Delete(&model.AnswerUser{}).Error
}
