package i18n

import (
	"math"
	"strconv"
)

// FormatDuration 视频时长展示：不足 1 分钟只显示秒；不足 1 小时显示分和秒；
// 满 1 小时显示时和分，秒数省略
func (b *Bundle) FormatDuration(locale string, seconds float64) string {
	total := int(math.Round(seconds))
	if total < 0 {
		total = 0
	}

	if total < 60 {
		return b.T(locale, "duration.seconds", strconv.Itoa(total))
	}

	minutes, secs := total/60, total%60
	if minutes < 60 {
		if secs > 0 {
			return b.T(locale, "duration.minutes_seconds", strconv.Itoa(minutes), strconv.Itoa(secs))
		}
		return b.T(locale, "duration.minutes", strconv.Itoa(minutes))
	}

	hours, mins := minutes/60, minutes%60
	if mins > 0 {
		return b.T(locale, "duration.hours_minutes", strconv.Itoa(hours), strconv.Itoa(mins))
	}
	return b.T(locale, "duration.hours", strconv.Itoa(hours))
}

// FormatPages 文件类讲座的 duration 存的是页数
func (b *Bundle) FormatPages(locale string, pages float64) string {
	return b.T(locale, "duration.pages", strconv.FormatFloat(pages, 'f', -1, 64))
}
