// Package fuzzy 模糊匹配测试
package fuzzy

import (
	"testing"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		min  float64
		max  float64
	}{
		{"完全相同", "Zero Two", "Zero Two", 1.0, 1.0},
		{"大小写不同", "zero two", "ZERO TWO", 1.0, 1.0},
		{"多余空白", "  Zero   Two ", "zero two", 1.0, 1.0},
		{"一字之差", "Nezuko", "Nezuka", 0.7, 0.99},
		{"完全不同", "Rem", "Mikasa Ackerman", 0.0, 0.3},
		{"双空串", "", "", 1.0, 1.0},
		{"单空串", "Rem", "", 0.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if got < tt.min || got > tt.max {
				t.Errorf("Similarity(%q, %q) = %v, want in [%v, %v]", tt.a, tt.b, got, tt.min, tt.max)
			}
		})
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"Zero Two", "Zero Tsu"},
		{"Marin Kitagawa", "marin"},
		{"Asuna Yuuki", "Asuna"},
	}

	for _, p := range pairs {
		ab := Similarity(p[0], p[1])
		ba := Similarity(p[1], p[0])
		if ab != ba {
			t.Errorf("Similarity 不对称: (%q, %q) = %v, 反向 = %v", p[0], p[1], ab, ba)
		}
	}
}

func TestMatches_ThresholdInclusive(t *testing.T) {
	// 阈值边界必须是包含关系：相似度恰好等于阈值时算命中
	if !Matches("rem", "rem", 1.0) {
		t.Error("相似度 1.0 在阈值 1.0 下应当命中")
	}
	if !Matches("anything", "anything", 0.7) {
		t.Error("相同字符串在阈值 0.7 下应当命中")
	}
	if Matches("Rem", "Mikasa Ackerman", 0.7) {
		t.Error("完全不同的名字不应在阈值 0.7 下命中")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Zero   Two ", "zero two"},
		{"REM", "rem"},
		{"", ""},
		{"\tMarin\nKitagawa", "marin kitagawa"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
