// Package handlers 处理器参数解析测试
package handlers

import (
	"testing"
)

func TestParseGiveMeArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		all     bool
		id      uint
		wantErr bool
	}{
		{"无参数发全目录", nil, true, 0, false},
		{"空切片发全目录", []string{}, true, 0, false},
		{"单个数字发单个", []string{"42"}, false, 42, false},
		{"非数字报错", []string{"rem"}, false, 0, true},
		{"参数过多报错", []string{"1", "2"}, false, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			all, id, err := parseGiveMeArgs(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseGiveMeArgs(%v) err = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if all != tt.all || id != tt.id {
				t.Errorf("parseGiveMeArgs(%v) = (%v, %d), want (%v, %d)",
					tt.args, all, id, tt.all, tt.id)
			}
		})
	}
}
