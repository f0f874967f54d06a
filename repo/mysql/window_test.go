package mysql

import "testing"

func TestTailLimitWindow(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		n          int
		wantOffset int
		wantLimit  int
	}{
		{"正常窗口", 10, 3, 7, 3},
		{"集合长度等于窗口", 3, 3, 0, 3},
		{"集合长度不足", 5, 10, 0, 5},
		{"空集合", 0, 3, 0, 0},
		{"窗口为零", 5, 0, 5, 0},
		{"窗口为负按零处理", 5, -1, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := tailLimitWindow(tt.total, tt.n)
			if offset != tt.wantOffset || limit != tt.wantLimit {
				t.Errorf("tailLimitWindow(%d, %d) = (%d, %d), 期望 (%d, %d)",
					tt.total, tt.n, offset, limit, tt.wantOffset, tt.wantLimit)
			}
		})
	}
}

func TestTailPageWindow(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		page, step int
		wantOffset int
		wantLimit  int
	}{
		{"第 0 页是最近一段", 40, 0, 15, 25, 15},
		{"第 1 页紧邻其前", 40, 1, 15, 10, 15},
		{"最后一页收敛为剩余部分", 40, 2, 15, 0, 10},
		{"整页数据", 30, 1, 15, 0, 15},
		{"集合长度不足一页", 7, 0, 15, 0, 7},
		{"空集合", 0, 0, 15, 0, 0},
		{"负页码按第 0 页处理", 40, -1, 15, 25, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := tailPageWindow(tt.total, tt.page, tt.step)
			if offset != tt.wantOffset || limit != tt.wantLimit {
				t.Errorf("tailPageWindow(%d, %d, %d) = (%d, %d), 期望 (%d, %d)",
					tt.total, tt.page, tt.step, offset, limit, tt.wantOffset, tt.wantLimit)
			}
		})
	}
}

// 相邻页必须无重叠且无遗漏地覆盖整个集合。
func TestTailPageWindowPartition(t *testing.T) {
	const total, step = 47, 15

	covered := make([]bool, total)
	for page := 0; ; page++ {
		offset, limit := tailPageWindow(total, page, step)
		if limit == 0 {
			break
		}
		for i := offset; i < offset+limit; i++ {
			if covered[i] {
				t.Fatalf("第 %d 页与之前的页在下标 %d 处重叠", page, i)
			}
			covered[i] = true
		}
		if offset == 0 {
			break
		}
	}
	for i, ok := range covered {
		if !ok {
			t.Errorf("下标 %d 未被任何页覆盖", i)
		}
	}
}

// tailPage(0) 必须与 tailLimit(step) 给出同一个窗口。
func TestTailPageFirstPageMatchesTailLimit(t *testing.T) {
	for _, total := range []int64{0, 1, 14, 15, 16, 40, 100} {
		pOffset, pLimit := tailPageWindow(total, 0, 15)
		lOffset, lLimit := tailLimitWindow(total, 15)
		if pOffset != lOffset || pLimit != lLimit {
			t.Errorf("total=%d: tailPage(0)=(%d,%d) 与 tailLimit=(%d,%d) 不一致",
				total, pOffset, pLimit, lOffset, lLimit)
		}
	}
}
