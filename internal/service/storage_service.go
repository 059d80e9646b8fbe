package service

import (
	"context"
	"edunity_backend/internal/config"
	"edunity_backend/internal/util"
	"edunity_backend/pkg/logger"
	"os"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// StorageProvider 讲座媒体文件所在的存储
type StorageProvider interface {
	// URL 返回学生可直接访问的地址
	URL(ctx context.Context, key string) (string, error)
	// LocalCopy 返回可供 ffprobe 读取的本地路径，用完调用 cleanup
	LocalCopy(ctx context.Context, key string) (path string, cleanup func(), err error)
}

// LocalStorageProvider 本地存储实现，文件由静态路由 /uploads 提供
type LocalStorageProvider struct {
	Config *config.StorageConfig
}

func (p *LocalStorageProvider) URL(ctx context.Context, key string) (string, error) {
	return "/uploads/" + strings.TrimPrefix(key, "/"), nil
}

func (p *LocalStorageProvider) LocalCopy(ctx context.Context, key string) (string, func(), error) {
	path := filepath.Join(p.Config.LocalPath, filepath.FromSlash(key))
	if _, err := os.Stat(path); err != nil {
		return "", nil, errors.Wrapf(err, "stat %s", path)
	}
	return path, func() {}, nil
}

// MinioStorageProvider MinIO存储实现，对外只给预签名链接
type MinioStorageProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioSecure,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Config: cfg, Client: client}, nil
}

func (p *MinioStorageProvider) URL(ctx context.Context, key string) (string, error) {
	u, err := p.Client.PresignedGetObject(ctx, p.Config.MinioBucket, strings.TrimPrefix(key, "/"), p.Config.PresignExpiry(), nil)
	if err != nil {
		return "", errors.Wrapf(err, "presign %s", key)
	}
	return u.String(), nil
}

func (p *MinioStorageProvider) LocalCopy(ctx context.Context, key string) (string, func(), error) {
	tmp, err := os.CreateTemp("", "lecture-*"+filepath.Ext(key))
	if err != nil {
		return "", nil, errors.Wrap(err, "create temp file")
	}
	tmp.Close()
	cleanup := func() { os.Remove(tmp.Name()) }

	if err := p.Client.FGetObject(ctx, p.Config.MinioBucket, strings.TrimPrefix(key, "/"), tmp.Name(), minio.GetObjectOptions{}); err != nil {
		cleanup()
		return "", nil, errors.Wrapf(err, "download %s", key)
	}
	return tmp.Name(), cleanup, nil
}

type StorageService struct {
	Provider StorageProvider
}

func NewStorageService(cfg *config.Config) *StorageService {
	var provider StorageProvider
	if cfg.Storage.Type == util.StorageMinio {
		p, err := NewMinioStorageProvider(&cfg.Storage)
		if err != nil {
			logger.Log.Error("init minio storage failed, falling back to local", zap.Error(err))
		} else {
			provider = p
		}
	}

	if provider == nil {
		provider = &LocalStorageProvider{Config: &cfg.Storage}
	}

	return &StorageService{Provider: provider}
}

// ContentURL 讲座 content_link 可能是外链，也可能是存储里的对象 key
func (s *StorageService) ContentURL(ctx context.Context, link string) (string, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", nil
	}
	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link, nil
	}
	return s.Provider.URL(ctx, link)
}

func (s *StorageService) LocalCopy(ctx context.Context, link string) (string, func(), error) {
	return s.Provider.LocalCopy(ctx, link)
}
