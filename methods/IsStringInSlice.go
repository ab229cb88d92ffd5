package methods

import "strings"

func IsStringInSlice(s string, slice []string) bool {
	set := make(map[string]bool)
	for _, v := range slice {
		set[v] = true
	}
	return set[s]
}

// TrimmedStatus 工单状态统一去除首尾空白后再比较
func TrimmedStatus(s string) string {
	return strings.TrimSpace(s)
}
