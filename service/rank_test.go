package service

import "testing"

func TestIsSage(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"sage", true},
		{"SAGE", true},
		{"Sage", true},
		{"sAgE", true},
		{"", false},
		{"sage ", false},
		{"sage@example.com", false},
		{"user@example.com", false},
	}
	for _, tt := range tests {
		if got := IsSage(tt.email); got != tt.want {
			t.Errorf("IsSage(%q) = %v, 期望 %v", tt.email, got, tt.want)
		}
	}
}

func TestComputeScore(t *testing.T) {
	tests := []struct {
		name         string
		maxCommentID uint64
		sages        int64
		penalty      int64
		want         int64
	}{
		{"新主题帖无评论", 100, 0, 150, 100},
		{"一条非 sage 评论", 101, 0, 150, 101},
		{"非 sage 后跟一条 sage", 101, 1, 150, -49},
		{"多条 sage 可为大负数", 100, 10, 150, -1400},
		{"罚分为零时退化为活跃度", 200, 5, 0, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeScore(tt.maxCommentID, tt.sages, tt.penalty); got != tt.want {
				t.Errorf("ComputeScore(%d, %d, %d) = %d, 期望 %d",
					tt.maxCommentID, tt.sages, tt.penalty, got, tt.want)
			}
		})
	}
}
