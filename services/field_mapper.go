package services

import (
	"strings"

	"github.com/GrainArc/TPBoard/methods"
)

// SyncEntity 可同步的镜像表实体，由models侧实现
type SyncEntity interface {
	GetRecordID() string
	SetUpdatedAt(ms int64)
	SetRawFields(raw []byte)
	// LarkMapping 显式的Lark字段名→列名映射，优先于NormalizeLarkKey
	LarkMapping() map[string]string
	// SetColumn 按列名赋值，列名不存在时返回false
	SetColumn(name string, value interface{}) bool
}

// MapStats 单条记录的字段映射统计，未命中的字段静默丢弃但计数可观测
type MapStats struct {
	Mapped   int
	Unmapped int
}

// NormalizeLarkKey 将Lark字段名归一化为列名
// "Ticket Number" -> "ticket_number"
// "Due Day (Quarter)" -> "due_day_quarter"（去括号）
func NormalizeLarkKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "(", "")
	key = strings.ReplaceAll(key, ")", "")
	key = strings.ReplaceAll(key, "-", "_")
	return key
}

// FlattenLarkValue Lark字段值展平
// 对象列表（人员/选项）-> 取name/text/email逗号拼接
// 标量列表 -> 逗号拼接；空列表 -> nil
// 单个对象 -> name/text，否则JSON序列化兜底
// 标量 -> 原样返回
func FlattenLarkValue(value interface{}) interface{} {
	switch v := value.(type) {
	case []interface{}:
		if len(v) == 0 {
			return nil
		}
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if obj, ok := item.(map[string]interface{}); ok {
				parts = append(parts, displayValue(obj))
			} else {
				parts = append(parts, methods.ToString(item))
			}
		}
		return strings.Join(parts, ", ")
	case map[string]interface{}:
		return displayValue(v)
	default:
		return value
	}
}

// displayValue 对象的可读值，常见键为name（人员/选项）、text（文本）、email
func displayValue(obj map[string]interface{}) string {
	for _, k := range []string{"name", "text", "email"} {
		if v, ok := obj[k]; ok {
			if s := methods.ToString(v); s != "" {
				return s
			}
		}
	}
	// 没有可读键时整体序列化兜底
	raw, err := json.Marshal(obj)
	if err != nil {
		return ""
	}
	return string(raw)
}

// MapFields 将一条Lark记录的字段覆盖到实体列上，未知字段跳过不报错
func MapFields(entity SyncEntity, fields map[string]interface{}) MapStats {
	var stats MapStats
	mapping := entity.LarkMapping()
	for key, value := range fields {
		colName, ok := mapping[key]
		if !ok {
			colName = NormalizeLarkKey(key)
		}
		if entity.SetColumn(colName, FlattenLarkValue(value)) {
			stats.Mapped++
		} else {
			stats.Unmapped++
		}
	}
	return stats
}
