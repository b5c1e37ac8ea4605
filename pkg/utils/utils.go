// Package utils 工具函数
package utils

import (
	"fmt"
	"time"
)

// FormatDuration 格式化时长显示
func FormatDuration(seconds int64) string {
	d := time.Duration(seconds) * time.Second

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd%dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh%dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm%ds", minutes, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

// DaysBetween 计算两个时间之间的天数
func DaysBetween(a, b time.Time) int {
	if a.After(b) {
		a, b = b, a
	}
	return int(b.Sub(a).Hours() / 24)
}

// IsExpired 判断时间是否已过期
func IsExpired(expiryTime time.Time) bool {
	return time.Now().After(expiryTime)
}

// TotalPages 计算分页总页数
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

// TruncateString 截断过长的字符串
func TruncateString(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
