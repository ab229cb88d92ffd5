package methods

import (
	"fmt"
	"strconv"
)

// ToString 将Lark字段展平后的值转为字符串，nil转为空串
func ToString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		// JSON数字统一是float64，整数值不带小数输出
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return fmt.Sprint(val)
	}
}

// ToInt64 数值列的宽松转换，无法解析时取0
func ToInt64(v interface{}) int64 {
	switch val := v.(type) {
	case nil:
		return 0
	case float64:
		return int64(val)
	case int:
		return int64(val)
	case int64:
		return val
	case string:
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func ToInt(v interface{}) int {
	return int(ToInt64(v))
}
