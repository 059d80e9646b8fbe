package controller

import (
	"edunity_backend/internal/model"
	"edunity_backend/internal/service"
	"edunity_backend/internal/util"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type StudyController struct {
	service *service.StudyService
}

func NewStudyController(s *service.StudyService) *StudyController {
	return &StudyController{service: s}
}

// AdvanceRequest 学生离开一个内容、进入另一个内容时上报
type AdvanceRequest struct {
	OldType       model.ContentKind `json:"oldType" binding:"omitempty,oneof=lecture quiz"`
	OldID         uint              `json:"oldId"`
	NewType       model.ContentKind `json:"newType" binding:"required,oneof=lecture quiz"`
	NewID         uint              `json:"newId" binding:"required"`
	Learned       float64           `json:"learned" binding:"gte=0"`
	QuestionsDone int               `json:"questionsDone" binding:"gte=0"`
	QuestionID    uint              `json:"questionId"`
	AnswerContent string            `json:"answerContent" binding:"max=10000"`
	RedoQuiz      bool              `json:"redoQuiz"`
	Keyword       string            `json:"keyword" binding:"max=255"`
}

func (r AdvanceRequest) event() service.AdvanceEvent {
	return service.AdvanceEvent{
		OldType:       r.OldType,
		OldID:         r.OldID,
		NewType:       r.NewType,
		NewID:         r.NewID,
		Learned:       r.Learned,
		QuestionsDone: r.QuestionsDone,
		QuestionID:    r.QuestionID,
		AnswerContent: r.AnswerContent,
		RedoQuiz:      r.RedoQuiz,
		Keyword:       r.Keyword,
	}
}

func courseIDParam(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("courseId"), 10, 32)
	if err != nil || id == 0 {
		util.Fail(ctx, http.StatusBadRequest, "invalid_request")
		return 0, false
	}
	return uint(id), true
}

// studyError 业务错误转为对应状态码，其余按 500 处理
func studyError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotPurchased):
		util.Fail(ctx, http.StatusForbidden, "course_not_purchased")
	case errors.Is(err, util.ErrNoCoursesFound):
		util.NotFound(ctx, "no_courses_found")
	default:
		util.LogInternalError(ctx, err)
	}
}

// ListCourses godoc
// @Summary 我的课程
// @Description 已购买课程列表及学习进度，title 与 creator 任一匹配即返回
// @Tags 学习
// @Produce json
// @Security ApiKeyAuth
// @Param title query string false "课程标题关键字"
// @Param creator query string false "讲师姓名关键字"
// @Success 200 {object} util.Response{data=[]model.UserCourse}
// @Failure 404 {object} util.Response
// @Router /study/courses [get]
func (c *StudyController) ListCourses(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courses, err := c.service.ListUserCourses(ctx.Request.Context(), user.UserID, ctx.Query("title"), ctx.Query("creator"))
	if err != nil {
		studyError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// ResolveStudyState godoc
// @Summary 继续学习
// @Description 返回课程内容树、学习进度以及当前应学习的内容
// @Tags 学习
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Param keyword query string false "按标题过滤内容"
// @Param lang query string false "语言 en / vi"
// @Success 200 {object} util.Response{data=model.StudyState}
// @Failure 403 {object} util.Response
// @Router /study/courses/{courseId} [get]
func (c *StudyController) ResolveStudyState(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	courseID, ok := courseIDParam(ctx)
	if !ok {
		return
	}

	state, err := c.service.ResolveStudyState(ctx.Request.Context(), user.UserID, courseID, ctx.Query("keyword"))
	if err != nil {
		studyError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// AdvanceContent godoc
// @Summary 切换学习内容
// @Description 保存离开内容的进度（或重做测验），返回进入内容的详情和最新进度
// @Tags 学习
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Param body body AdvanceRequest true "切换事件"
// @Success 200 {object} util.Response{data=model.StudyState}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /study/courses/{courseId}/advance [post]
func (c *StudyController) AdvanceContent(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	courseID, ok := courseIDParam(ctx)
	if !ok {
		return
	}

	var req AdvanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ValidationError(ctx, err)
		return
	}

	state, err := c.service.AdvanceContent(ctx.Request.Context(), user.UserID, courseID, req.event())
	if err != nil {
		studyError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// GetContentTree godoc
// @Summary 课程内容目录
// @Description 只读的内容树与进度汇总，不计算当前内容
// @Tags 学习
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Param keyword query string false "按标题过滤内容"
// @Success 200 {object} util.Response{data=model.ContentTree}
// @Failure 403 {object} util.Response
// @Router /study/courses/{courseId}/content [get]
func (c *StudyController) GetContentTree(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	courseID, ok := courseIDParam(ctx)
	if !ok {
		return
	}

	tree, err := c.service.GetContentTree(ctx.Request.Context(), user.UserID, courseID, ctx.Query("keyword"))
	if err != nil {
		studyError(ctx, err)
		return
	}
	util.Success(ctx, tree)
}

// RefreshCatalog godoc
// @Summary 刷新课程目录缓存
// @Description 讲师或管理员修改章节、讲座、测验后调用
// @Tags 学习
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /study/courses/{courseId}/catalog/refresh [post]
func (c *StudyController) RefreshCatalog(ctx *gin.Context) {
	courseID, ok := courseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.service.RefreshCatalog(ctx.Request.Context(), courseID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "catalog_refreshed", nil)
}
