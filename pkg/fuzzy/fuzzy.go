// Package fuzzy 名称模糊匹配
package fuzzy

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Similarity 计算两个字符串的归一化相似度，范围 [0, 1]
// 大小写不敏感，多余空白折叠后比较，结果对称且确定
func Similarity(a, b string) float64 {
	na := Normalize(a)
	nb := Normalize(b)

	if na == "" && nb == "" {
		return 1.0
	}
	if na == "" || nb == "" {
		return 0.0
	}
	if na == nb {
		return 1.0
	}

	lev := metrics.NewLevenshtein()
	lev.CaseSensitive = false

	return strutil.Similarity(na, nb, lev)
}

// Matches 判断相似度是否达到阈值（含边界）
func Matches(a, b string, threshold float64) bool {
	return Similarity(a, b) >= threshold
}

// Normalize 规整字符串：小写 + 折叠空白
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
