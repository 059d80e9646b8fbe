package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// gin.Context 中使用的 key
const (
	ContextUserKey      = "user"
	ContextLocaleKey    = "locale"
	ContextRequestIDKey = "request_id"
	HeaderRequestID     = "X-Request-ID"
)

var (
	AllowedVideoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".wmv", ".flv", ".webm"}
)
