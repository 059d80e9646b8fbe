package service

import (
	"context"
	"edunity_backend/internal/model"
	"edunity_backend/internal/repository"
	"edunity_backend/internal/util"
	"edunity_backend/pkg/i18n"
	"edunity_backend/pkg/logger"
	"edunity_backend/pkg/monitoring"
	"edunity_backend/pkg/tracing"
	"math"
	"strings"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PurchaseChecker 订单侧的只读接口
type PurchaseChecker interface {
	HasPaidCourse(ctx context.Context, userID, courseID uint) (bool, error)
	ListPaidCourseIDs(ctx context.Context, userID uint) ([]uint, error)
}

// ContentURLResolver 把讲座 content_link 转成可访问地址
type ContentURLResolver interface {
	ContentURL(ctx context.Context, link string) (string, error)
}

// AdvanceEvent 学生从一个内容切换到另一个内容时上报的数据
type AdvanceEvent struct {
	OldType       model.ContentKind
	OldID         uint
	NewType       model.ContentKind
	NewID         uint
	Learned       float64 // 讲座：本次上报的观看位置（秒）
	QuestionsDone int     // 测验：已完成题数
	QuestionID    uint    // 测验：刚作答的题目
	AnswerContent string
	RedoQuiz      bool
	Keyword       string
}

type StudyService struct {
	DB           *gorm.DB
	Catalog      CatalogReader
	CatalogRepo  *repository.CatalogRepository
	ProgressRepo *repository.ProgressRepository
	Orders       PurchaseChecker
	UserRepo     *repository.UserRepository
	Storage      ContentURLResolver
	Bundle       *i18n.Bundle
}

func NewStudyService(
	db *gorm.DB,
	catalog CatalogReader,
	catalogRepo *repository.CatalogRepository,
	progressRepo *repository.ProgressRepository,
	orders PurchaseChecker,
	userRepo *repository.UserRepository,
	storage ContentURLResolver,
) *StudyService {
	return &StudyService{
		DB:           db,
		Catalog:      catalog,
		CatalogRepo:  catalogRepo,
		ProgressRepo: progressRepo,
		Orders:       orders,
		UserRepo:     userRepo,
		Storage:      storage,
		Bundle:       i18n.Default,
	}
}

// ResolveStudyState 继续学习：返回课程内容树、课程汇总以及应当落地的内容
func (s *StudyService) ResolveStudyState(ctx context.Context, userID, courseID uint, keyword string) (state *model.StudyState, err error) {
	ctx, span := tracing.StartSpan(ctx, "StudyService.ResolveStudyState",
		attribute.Int64("user.id", int64(userID)), attribute.Int64("course.id", int64(courseID)))
	defer func() { tracing.EndSpan(span, err) }()

	if err := s.ensurePurchased(ctx, userID, courseID); err != nil {
		return nil, err
	}

	catalog, nodes, summary, err := s.loadTree(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	// 汇总基于完整内容树，游标在过滤后的内容树上查找
	filtered := FilterTree(nodes, keyword)
	current, err := s.describe(ctx, userID, ResolveCursor(filtered), false)
	if err != nil {
		return nil, err
	}

	return &model.StudyState{
		CourseTitle:    catalog.Course.Title,
		CurrentContent: current,
		AllContent:     filtered,
		CourseSummary:  summary,
	}, nil
}

// AdvanceContent 先写入离开内容的进度，再返回进入内容的详情与最新的内容树
func (s *StudyService) AdvanceContent(ctx context.Context, userID, courseID uint, event AdvanceEvent) (state *model.StudyState, err error) {
	ctx, span := tracing.StartSpan(ctx, "StudyService.AdvanceContent",
		attribute.Int64("user.id", int64(userID)), attribute.Int64("course.id", int64(courseID)),
		attribute.String("old.type", string(event.OldType)), attribute.Int64("old.id", int64(event.OldID)),
		attribute.String("new.type", string(event.NewType)), attribute.Int64("new.id", int64(event.NewID)))
	defer func() { tracing.EndSpan(span, err) }()

	if err := s.ensurePurchased(ctx, userID, courseID); err != nil {
		return nil, err
	}

	if err := s.applyLeave(ctx, userID, courseID, event); err != nil {
		return nil, err
	}

	catalog, nodes, summary, err := s.loadTree(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	// 进入的内容直接按类型和 ID 定位，不重新走游标；无效时为 nil
	current, err := s.describe(ctx, userID, findItem(nodes, event.NewType, event.NewID), true)
	if err != nil {
		return nil, err
	}

	return &model.StudyState{
		CourseTitle:    catalog.Course.Title,
		CurrentContent: current,
		AllContent:     FilterTree(nodes, event.Keyword),
		CourseSummary:  summary,
	}, nil
}

// GetContentTree 只读的内容浏览视图，不计算当前内容
func (s *StudyService) GetContentTree(ctx context.Context, userID, courseID uint, keyword string) (tree *model.ContentTree, err error) {
	ctx, span := tracing.StartSpan(ctx, "StudyService.GetContentTree",
		attribute.Int64("user.id", int64(userID)), attribute.Int64("course.id", int64(courseID)))
	defer func() { tracing.EndSpan(span, err) }()

	if err := s.ensurePurchased(ctx, userID, courseID); err != nil {
		return nil, err
	}

	_, nodes, summary, err := s.loadTree(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	return &model.ContentTree{AllContent: FilterTree(nodes, keyword), CourseSummary: summary}, nil
}

// RefreshCatalog 课程目录被修改后清掉缓存快照；未启用缓存时什么也不做
func (s *StudyService) RefreshCatalog(ctx context.Context, courseID uint) error {
	inv, ok := s.Catalog.(catalogInvalidator)
	if !ok {
		return nil
	}
	return errors.Wrapf(inv.Invalidate(ctx, courseID), "invalidate catalog %d", courseID)
}

// ListUserCourses 已购课程概览；title 与 creator 任一命中即保留
func (s *StudyService) ListUserCourses(ctx context.Context, userID uint, title, creator string) (courses []model.UserCourse, err error) {
	ctx, span := tracing.StartSpan(ctx, "StudyService.ListUserCourses", attribute.Int64("user.id", int64(userID)))
	defer func() { tracing.EndSpan(span, err) }()

	courseIDs, err := s.Orders.ListPaidCourseIDs(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list paid courses")
	}
	if len(courseIDs) == 0 {
		return nil, util.ErrNoCoursesFound
	}

	rows, err := s.CatalogRepo.ListActiveCourses(ctx, courseIDs)
	if err != nil {
		return nil, errors.Wrap(err, "list courses")
	}

	creatorIDs := make([]uint, 0, len(rows))
	for _, c := range rows {
		creatorIDs = append(creatorIDs, c.CreatedBy)
	}
	creators, err := s.UserRepo.FindByIDs(ctx, creatorIDs)
	if err != nil {
		return nil, errors.Wrap(err, "load creators")
	}

	title = strings.ToLower(strings.TrimSpace(title))
	creator = strings.ToLower(strings.TrimSpace(creator))

	courses = make([]model.UserCourse, 0, len(rows))
	for _, c := range rows {
		_, _, summary, err := s.loadTree(ctx, userID, c.ID)
		if err != nil {
			return nil, err
		}

		item := model.UserCourse{
			ID:              c.ID,
			Thumbnail:       c.Thumbnail,
			Title:           c.Title,
			Creator:         creators[c.CreatedBy].DisplayName(),
			TotalCount:      summary.TotalCount,
			TotalDone:       summary.TotalDone,
			ProgressPercent: OverviewPercent(summary),
		}
		if title != "" || creator != "" {
			matchTitle := title != "" && strings.Contains(strings.ToLower(item.Title), title)
			matchCreator := creator != "" && strings.Contains(strings.ToLower(item.Creator), creator)
			if !matchTitle && !matchCreator {
				continue
			}
		}
		courses = append(courses, item)
	}

	if len(courses) == 0 {
		return nil, util.ErrNoCoursesFound
	}
	return courses, nil
}

func (s *StudyService) ensurePurchased(ctx context.Context, userID, courseID uint) error {
	ok, err := s.Orders.HasPaidCourse(ctx, userID, courseID)
	if err != nil {
		return errors.Wrap(err, "check purchase")
	}
	if !ok {
		return util.ErrCourseNotPurchased
	}
	return nil
}

// loadTree 读取目录与用户进度，组装内容树并回填统计。课程不存在或已下线时返回空树
func (s *StudyService) loadTree(ctx context.Context, userID, courseID uint) (*model.CourseCatalog, []model.CourseNode, model.CourseSummary, error) {
	catalog, err := s.Catalog.LoadCatalog(ctx, courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Log.Debug("course not active", zap.Uint("courseId", courseID))
		catalog = &model.CourseCatalog{}
	} else if err != nil {
		return nil, nil, model.CourseSummary{}, errors.Wrap(err, "load catalog")
	}

	lectures, err := s.ProgressRepo.ListLectureProgress(ctx, userID, catalog.LectureIDs()...)
	if err != nil {
		return nil, nil, model.CourseSummary{}, errors.Wrap(err, "load lecture progress")
	}
	quizzes, err := s.ProgressRepo.ListQuizProgress(ctx, userID, catalog.QuizIDs()...)
	if err != nil {
		return nil, nil, model.CourseSummary{}, errors.Wrap(err, "load quiz progress")
	}

	builder := NewContentTreeBuilder(s.Bundle, i18n.LocaleFrom(ctx))
	nodes := builder.Build(catalog, UserProgress{Lectures: lectures, Quizzes: quizzes})
	summary := AggregateProgress(nodes)
	return catalog, nodes, summary, nil
}

// describe 生成当前内容详情。exhaustedShowsLast 为 true 时，题目已做完的测验展示最后一题
func (s *StudyService) describe(ctx context.Context, userID uint, item model.ContentItem, exhaustedShowsLast bool) (*model.CurrentContent, error) {
	switch it := item.(type) {
	case *model.LectureItem:
		url, err := s.Storage.ContentURL(ctx, it.ContentLink)
		if err != nil {
			logger.Log.Warn("resolve lecture url failed", zap.Uint("lectureId", it.ID), zap.Error(err))
		}
		return &model.CurrentContent{
			CurrentContentType: model.KindLecture,
			Lecture:            &model.CurrentLecture{LectureItem: *it, ContentURL: url},
		}, nil

	case *model.QuizItem:
		questions, err := s.CatalogRepo.ListQuestions(ctx, it.ID)
		if err != nil {
			return nil, errors.Wrap(err, "list questions")
		}

		done := 0
		if it.QuestionsDone != nil && *it.QuestionsDone > 0 {
			done = *it.QuestionsDone
		}
		current := &model.CurrentQuiz{QuizItem: *it, NextQuestionIndex: done}

		var next *model.Question
		switch {
		case done < len(questions):
			next = &questions[done]
		case exhaustedShowsLast && len(questions) > 0:
			next = &questions[len(questions)-1]
		}
		if next != nil {
			view := model.QuestionView{
				ID:       next.ID,
				QuizID:   next.QuizID,
				Question: next.Question,
				Options:  next.Options,
				Order:    next.Order,
			}
			answer, err := s.ProgressRepo.GetAnswer(ctx, userID, next.ID)
			if err != nil {
				return nil, errors.Wrap(err, "load answer")
			}
			if answer != nil {
				content := answer.Content
				view.AnswerUser = &content
			}
			current.NextQuestion = &view
		}
		return &model.CurrentContent{CurrentContentType: model.KindQuiz, Quiz: current}, nil
	}
	return nil, nil
}

// applyLeave 处理离开的内容：讲座/测验进度写入或测验重做。目标无效时跳过写入
func (s *StudyService) applyLeave(ctx context.Context, userID, courseID uint, event AdvanceEvent) error {
	if event.OldID == 0 {
		return nil
	}

	switch event.OldType {
	case model.KindLecture:
		return s.leaveLecture(ctx, userID, courseID, event)
	case model.KindQuiz:
		if event.RedoQuiz {
			return s.redoQuiz(ctx, userID, courseID, event.OldID)
		}
		return s.leaveQuiz(ctx, userID, courseID, event)
	}
	return nil
}

func (s *StudyService) leaveLecture(ctx context.Context, userID, courseID uint, event AdvanceEvent) error {
	lecture, err := s.CatalogRepo.FindActiveLecture(ctx, courseID, event.OldID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		monitoring.ProgressWrites.WithLabelValues(string(model.KindLecture), "skipped").Inc()
		logger.Log.Debug("skip lecture progress", zap.Uint("lectureId", event.OldID), zap.Uint("courseId", courseID))
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "find lecture")
	}

	learned := math.Max(event.Learned, 0)
	percent := LecturePercent(learned, lecture.Duration)

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.ProgressRepo.WithTx(tx).UpsertLectureProgress(ctx, userID, lecture.ID, func(p *model.ProgressLecture) {
			p.Learned = math.Max(p.Learned, learned)
			p.LastPosition = learned
			p.Percent = math.Max(p.Percent, percent)
		})
		return err
	})
	if err != nil {
		return errors.Wrap(err, "save lecture progress")
	}

	monitoring.ProgressWrites.WithLabelValues(string(model.KindLecture), "written").Inc()
	return nil
}

func (s *StudyService) leaveQuiz(ctx context.Context, userID, courseID uint, event AdvanceEvent) error {
	quiz, err := s.CatalogRepo.FindActiveQuiz(ctx, courseID, event.OldID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		monitoring.ProgressWrites.WithLabelValues(string(model.KindQuiz), "skipped").Inc()
		logger.Log.Debug("skip quiz progress", zap.Uint("quizId", event.OldID), zap.Uint("courseId", courseID))
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "find quiz")
	}

	counts, err := s.CatalogRepo.CountQuestions(ctx, quiz.ID)
	if err != nil {
		return errors.Wrap(err, "count questions")
	}
	total := counts[quiz.ID]
	done := clampInt(event.QuestionsDone, 0, total)
	percent := QuizPercent(done, total)

	// 作答只记录属于该测验的有效题目
	var questionID uint
	if event.QuestionID > 0 {
		question, err := s.CatalogRepo.FindQuestion(ctx, quiz.ID, event.QuestionID)
		switch {
		case err == nil:
			questionID = question.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			logger.Log.Debug("skip answer for foreign question", zap.Uint("questionId", event.QuestionID), zap.Uint("quizId", quiz.ID))
		default:
			return errors.Wrap(err, "find question")
		}
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.ProgressRepo.WithTx(tx)
		if questionID > 0 {
			if err := repo.UpsertAnswer(ctx, userID, questionID, event.AnswerContent); err != nil {
				return err
			}
		}
		_, err := repo.UpsertQuizProgress(ctx, userID, quiz.ID, func(p *model.ProgressQuiz) {
			p.QuestionsDone = done
			p.Percent = math.Max(p.Percent, percent)
		})
		return err
	})
	if err != nil {
		return errors.Wrap(err, "save quiz progress")
	}

	monitoring.ProgressWrites.WithLabelValues(string(model.KindQuiz), "written").Inc()
	return nil
}

// redoQuiz 删除测验进度与全部作答，不写入新进度
func (s *StudyService) redoQuiz(ctx context.Context, userID, courseID, quizID uint) error {
	quiz, err := s.CatalogRepo.FindActiveQuiz(ctx, courseID, quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Log.Debug("skip quiz redo", zap.Uint("quizId", quizID), zap.Uint("courseId", courseID))
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "find quiz")
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.ProgressRepo.WithTx(tx)
		if err := repo.DeleteQuizProgress(ctx, userID, quiz.ID); err != nil {
			return err
		}
		return repo.DeleteAnswersForQuiz(ctx, userID, quiz.ID)
	})
	if err != nil {
		return errors.Wrap(err, "redo quiz")
	}

	monitoring.QuizRedos.Inc()
	logger.Log.Info("quiz progress reset", zap.Uint("userId", userID), zap.Uint("quizId", quiz.ID))
	return nil
}

// LecturePercent learned/duration*100，封顶 100，保留两位小数；时长为 0 时为 0
func LecturePercent(learned, duration float64) float64 {
	if duration <= 0 || learned <= 0 {
		return 0
	}
	return util.Round2(math.Min(100, learned/duration*100))
}

// QuizPercent 题目数为 0 时为 0
func QuizPercent(done, total int) float64 {
	if total <= 0 || done <= 0 {
		return 0
	}
	return util.Round2(math.Min(100, float64(done)/float64(total)*100))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
