// 补齐视频讲座时长脚本
//
// 讲座进度百分比 = learned / duration，duration 为 0 的视频永远无法完成。
// 批量导入课程或迁移存储后运行一次，读取视频文件并写回时长。
//
// 用法: go run scripts/sync_lecture_durations.go [-limit 100]

package main

import (
	"context"
	"edunity_backend/internal/config"
	"edunity_backend/internal/repository"
	"edunity_backend/internal/service"
	"edunity_backend/internal/util"
	"edunity_backend/pkg/database"
	"edunity_backend/pkg/logger"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	limit := flag.Int("limit", 0, "最多处理的讲座数量，0 表示全部")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	if version, err := util.GetFFmpegVersion(); err != nil {
		log.Fatalf("未检测到 ffmpeg: %v", err)
	} else {
		logger.Log.Info("ffmpeg detected", zap.String("version", version))
	}

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode, false)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	rdb, err := database.InitRedis(context.Background(), &cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, skip cache invalidation", zap.Error(err))
	}

	repo := repository.NewCatalogRepository(db)
	catalog := service.NewCachedCatalog(repo, rdb, cfg.Study.CatalogCacheTTL())
	sync := service.NewDurationSyncService(repo, service.NewStorageService(cfg), catalog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := sync.Run(ctx, *limit)
	if err != nil {
		log.Fatalf("同步失败: %v", err)
	}
	logger.Log.Info("lecture durations synced",
		zap.Int("updated", result.Updated),
		zap.Int("failed", result.Failed),
	)
}
