// Package utils 工具函数测试
package utils

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name    string
		seconds int64
		want    string
	}{
		{"秒", 45, "45s"},
		{"分秒", 125, "2m5s"},
		{"时分", 3900, "1h5m"},
		{"天时", 90000, "1d1h"},
		{"零", 0, "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.seconds); got != tt.want {
				t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, pageSize, want int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{5, 0, 0},
	}

	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.pageSize); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.pageSize, got, tt.want)
		}
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("hello", 10); got != "hello" {
		t.Errorf("短串不应截断，得到 %q", got)
	}
	if got := TruncateString("hello world", 5); got != "hell…" {
		t.Errorf("TruncateString = %q", got)
	}
	if got := TruncateString("你好世界啊", 3); got != "你好…" {
		t.Errorf("多字节截断 = %q", got)
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

	if got := DaysBetween(a, b); got != 7 {
		t.Errorf("DaysBetween = %d, want 7", got)
	}
	// 参数颠倒结果相同
	if got := DaysBetween(b, a); got != 7 {
		t.Errorf("DaysBetween 应与顺序无关，得到 %d", got)
	}
}

func TestCacheRoundTrip(t *testing.T) {
	CacheSet("test:key", "value", SearchCacheTTL)
	if v, ok := CacheGet("test:key"); !ok || v != "value" {
		t.Fatalf("写入后应命中: %v %v", v, ok)
	}

	CacheDelete("test:key")
	if _, ok := CacheGet("test:key"); ok {
		t.Error("删除后不应命中")
	}

	CacheSet("test:a", 1, BanCacheTTL)
	CacheSet("test:b", 2, BanCacheTTL)
	CacheFlush()
	if _, ok := CacheGet("test:a"); ok {
		t.Error("清空后不应命中")
	}
	if _, ok := CacheGet("test:b"); ok {
		t.Error("清空后不应命中")
	}
}
