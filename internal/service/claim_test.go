// Package service 认领逻辑测试
package service

import (
	"testing"
)

func TestNameMatch(t *testing.T) {
	tests := []struct {
		name      string
		guess     string
		target    string
		threshold float64
		want      bool
	}{
		{"完全一致", "Rem", "Rem", 0.7, true},
		{"大小写不敏感", "rem", "Rem", 0.7, true},
		{"空白折叠", "  Megumin  ", "Megumin", 0.7, true},
		{"轻微拼错达标", "Megumi", "Megumin", 0.7, true},
		{"完全不同", "Batman", "Rem", 0.7, false},
		{"空串不匹配", "", "Rem", 0.7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim, got := nameMatch(tt.guess, tt.target, tt.threshold)
			if got != tt.want {
				t.Errorf("nameMatch(%q, %q) = %v (sim %.2f), want %v",
					tt.guess, tt.target, got, sim, tt.want)
			}
		})
	}
}

// 阈值是含边界的：相似度恰好等于阈值也算认领成功
func TestNameMatch_ThresholdInclusive(t *testing.T) {
	sim, _ := nameMatch("Megumi", "Megumin", 0)
	if sim <= 0 || sim >= 1 {
		t.Fatalf("相似度应落在 (0,1)，实际 %.4f", sim)
	}
	if _, ok := nameMatch("Megumi", "Megumin", sim); !ok {
		t.Errorf("相似度 %.4f 恰好等于阈值时应该匹配", sim)
	}
}
