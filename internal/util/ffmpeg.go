package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// VideoInfo 讲座视频的元数据
type VideoInfo struct {
	Duration float64 `json:"duration"` // 秒
	Format   string  `json:"format"`
	Size     int64   `json:"size"`
}

type ffmpegFormat struct {
	Format struct {
		Duration string `json:"duration"`
		Size     string `json:"size"`
		Format   string `json:"format_name"`
	} `json:"format"`
}

// InspectVideo 通过 ffprobe 读取本地视频文件的时长
func InspectVideo(videoPath string) (*VideoInfo, error) {
	fileInfo, err := os.Stat(videoPath)
	if err != nil {
		return nil, fmt.Errorf("视频文件不存在: %v", err)
	}

	raw, err := ffmpeg.Probe(videoPath)
	if err != nil {
		return nil, fmt.Errorf("获取视频信息失败: %v", err)
	}
	return parseVideoInfo(raw, fileInfo.Size())
}

func parseVideoInfo(raw string, fileSize int64) (*VideoInfo, error) {
	var out ffmpegFormat
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("解析视频信息失败: %v", err)
	}

	duration, err := strconv.ParseFloat(out.Format.Duration, 64)
	if err != nil {
		duration = 0
	}
	size, err := strconv.ParseInt(out.Format.Size, 10, 64)
	if err != nil {
		size = fileSize
	}

	format := "unknown"
	if out.Format.Format != "" {
		format = strings.Split(out.Format.Format, ",")[0]
	}

	return &VideoInfo{Duration: duration, Format: format, Size: size}, nil
}

// IsVideoFile 按扩展名判断
func IsVideoFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range AllowedVideoExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// GetFFmpegVersion 检查 ffmpeg 是否安装
func GetFFmpegVersion() (string, error) {
	cmd := exec.Command("ffmpeg", "-version", "-hide_banner")
	var out bytes.Buffer
	var errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("获取FFmpeg版本失败，请确保FFmpeg已正确安装: %v, %s", err, errOut.String())
	}
	return strings.SplitN(out.String(), "\n", 2)[0], nil
}
