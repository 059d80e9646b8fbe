package controller

import (
	"edunity_backend/internal/service"
	"edunity_backend/internal/util"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type NoteController struct {
	service *service.NoteService
}

func NewNoteController(s *service.NoteService) *NoteController {
	return &NoteController{service: s}
}

type CreateNoteRequest struct {
	CourseID    uint   `json:"courseId" binding:"required"`
	SectionID   uint   `json:"sectionId" binding:"required"`
	LectureID   uint   `json:"lectureId" binding:"required"`
	CurrentTime int    `json:"currentTime" binding:"gte=0"`
	Content     string `json:"content" binding:"required,max=5000"`
}

// UpdateNoteRequest 只更新传入的字段
type UpdateNoteRequest struct {
	CurrentTime *int    `json:"currentTime" binding:"omitempty,gte=0"`
	Content     *string `json:"content" binding:"omitempty,min=1,max=5000"`
}

func noteError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrNoteNotFound):
		util.NotFound(ctx, "note_not_found")
	case errors.Is(err, util.ErrLectureNotFound):
		util.NotFound(ctx, "lecture_not_found")
	default:
		util.LogInternalError(ctx, err)
	}
}

func noteIDParam(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.Fail(ctx, http.StatusBadRequest, "invalid_request")
		return 0, false
	}
	return uint(id), true
}

// ListByCourse godoc
// @Summary 课程笔记
// @Tags 笔记
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.Response{data=[]model.Note}
// @Router /notes/course/{courseId} [get]
func (c *NoteController) ListByCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	courseID, ok := courseIDParam(ctx)
	if !ok {
		return
	}

	notes, err := c.service.ListByCourse(ctx.Request.Context(), user.UserID, courseID)
	if err != nil {
		noteError(ctx, err)
		return
	}
	util.Success(ctx, notes)
}

// GetNote godoc
// @Summary 笔记详情
// @Tags 笔记
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "笔记ID"
// @Success 200 {object} util.Response{data=model.Note}
// @Failure 404 {object} util.Response
// @Router /notes/{id} [get]
func (c *NoteController) GetNote(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := noteIDParam(ctx)
	if !ok {
		return
	}

	note, err := c.service.Get(ctx.Request.Context(), user.UserID, id)
	if err != nil {
		noteError(ctx, err)
		return
	}
	util.Success(ctx, note)
}

// CreateNote godoc
// @Summary 新建笔记
// @Description 讲座必须有效且属于给定的章节和课程
// @Tags 笔记
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CreateNoteRequest true "笔记内容"
// @Success 201 {object} util.Response{data=model.Note}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /notes [post]
func (c *NoteController) CreateNote(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ValidationError(ctx, err)
		return
	}

	note, err := c.service.Create(ctx.Request.Context(), user.UserID, service.NoteInput{
		CourseID:    req.CourseID,
		SectionID:   req.SectionID,
		LectureID:   req.LectureID,
		CurrentTime: req.CurrentTime,
		Content:     req.Content,
	})
	if err != nil {
		noteError(ctx, err)
		return
	}
	util.Created(ctx, "note_created", note)
}

// UpdateNote godoc
// @Summary 修改笔记
// @Tags 笔记
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "笔记ID"
// @Param body body UpdateNoteRequest true "需要修改的字段"
// @Success 200 {object} util.Response{data=model.Note}
// @Failure 404 {object} util.Response
// @Router /notes/{id} [put]
func (c *NoteController) UpdateNote(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := noteIDParam(ctx)
	if !ok {
		return
	}

	var req UpdateNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ValidationError(ctx, err)
		return
	}

	note, err := c.service.Update(ctx.Request.Context(), user.UserID, id, service.NotePatch{
		CurrentTime: req.CurrentTime,
		Content:     req.Content,
	})
	if err != nil {
		noteError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "note_updated", note)
}

// DeleteNote godoc
// @Summary 删除笔记
// @Tags 笔记
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "笔记ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /notes/{id} [delete]
func (c *NoteController) DeleteNote(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := noteIDParam(ctx)
	if !ok {
		return
	}

	if err := c.service.Delete(ctx.Request.Context(), user.UserID, id); err != nil {
		noteError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "note_deleted", nil)
}
