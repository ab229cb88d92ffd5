package methods

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseFlexDate 解析Lark日期字段的几种存储形态
// 毫秒时间戳 / 秒时间戳 / "YYYY-MM-DD"（含ISO带T的变体）
func ParseFlexDate(val string) (time.Time, bool) {
	if val == "" {
		return time.Time{}, false
	}
	if n, err := strconv.ParseInt(val, 10, 64); err == nil {
		if len(val) > 10 {
			return time.UnixMilli(n), true
		}
		return time.Unix(n, 0), true
	}
	datePart := strings.SplitN(val, "T", 2)[0]
	t, err := time.Parse("2006-01-02", datePart)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// QuarterOf "2026 Q3"形式的季度标签
func QuarterOf(t time.Time) string {
	return fmt.Sprintf("%d Q%d", t.Year(), (int(t.Month())-1)/3+1)
}

// LastQuarters 从now往前数n个季度的标签，升序返回
func LastQuarters(now time.Time, n int) []string {
	quarters := make([]string, 0, n)
	curr := now
	for i := 0; i < n; i++ {
		quarters = append(quarters, QuarterOf(curr))
		curr = curr.AddDate(0, 0, -95)
	}
	// 反转为升序
	for i, j := 0, len(quarters)-1; i < j; i, j = i+1, j-1 {
		quarters[i], quarters[j] = quarters[j], quarters[i]
	}
	return quarters
}
