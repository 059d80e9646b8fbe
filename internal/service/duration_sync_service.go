package service

import (
	"context"
	"edunity_backend/internal/repository"
	"edunity_backend/internal/util"
	"edunity_backend/pkg/logger"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type lectureSource interface {
	ListUnmeasuredVideos(ctx context.Context, limit int) ([]repository.UnmeasuredLecture, error)
	UpdateLectureDuration(ctx context.Context, lectureID uint, seconds float64) error
}

type localCopier interface {
	LocalCopy(ctx context.Context, link string) (string, func(), error)
}

type catalogInvalidator interface {
	Invalidate(ctx context.Context, courseID uint) error
}

// DurationSyncService 用 ffprobe 补齐视频讲座的时长，进度百分比依赖该字段
type DurationSyncService struct {
	Lectures lectureSource
	Storage  localCopier
	Catalog  CatalogReader
	Inspect  func(path string) (*util.VideoInfo, error)
}

func NewDurationSyncService(lectures lectureSource, storage localCopier, catalog CatalogReader) *DurationSyncService {
	return &DurationSyncService{
		Lectures: lectures,
		Storage:  storage,
		Catalog:  catalog,
		Inspect:  util.InspectVideo,
	}
}

type DurationSyncResult struct {
	Updated int
	Failed  int
}

// Run 单个讲座失败只记录日志，继续处理后面的讲座
func (s *DurationSyncService) Run(ctx context.Context, limit int) (*DurationSyncResult, error) {
	lectures, err := s.Lectures.ListUnmeasuredVideos(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list unmeasured lectures")
	}

	result := &DurationSyncResult{}
	touched := make(map[uint]bool)
	for _, l := range lectures {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if !util.IsVideoFile(l.ContentLink) {
			continue
		}

		seconds, err := s.measure(ctx, l.ContentLink)
		if err != nil {
			result.Failed++
			logger.Log.Warn("inspect lecture failed", zap.Uint("lectureId", l.ID), zap.String("link", l.ContentLink), zap.Error(err))
			continue
		}
		if err := s.Lectures.UpdateLectureDuration(ctx, l.ID, seconds); err != nil {
			return result, errors.Wrapf(err, "update lecture %d", l.ID)
		}
		result.Updated++
		touched[l.CourseID] = true
	}

	if inv, ok := s.Catalog.(catalogInvalidator); ok {
		for courseID := range touched {
			if err := inv.Invalidate(ctx, courseID); err != nil {
				logger.Log.Warn("invalidate catalog cache failed", zap.Uint("courseId", courseID), zap.Error(err))
			}
		}
	}
	return result, nil
}

func (s *DurationSyncService) measure(ctx context.Context, link string) (float64, error) {
	path, cleanup, err := s.Storage.LocalCopy(ctx, link)
	if err != nil {
		return 0, err
	}
	defer cleanup()

	info, err := s.Inspect(path)
	if err != nil {
		return 0, err
	}
	if info.Duration <= 0 {
		return 0, errors.Errorf("invalid duration %v", info.Duration)
	}
	return util.Round2(info.Duration), nil
}
