package services

import (
	"testing"

	"github.com/GrainArc/TPBoard/models"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeLarkKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ticket Number", "ticket_number"},
		{"Due Day (Quarter)", "due_day_quarter"},
		{"TCG Tickets", "tcg_tickets"},
		{"Created Year-Month", "created_year_month"},
		{"title", "title"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeLarkKey(tt.in))
	}
}

func TestFlattenLarkValue(t *testing.T) {
	// 人员/选项列表取name拼接
	v := FlattenLarkValue([]interface{}{
		map[string]interface{}{"name": "Alice"},
		map[string]interface{}{"name": "Bob"},
	})
	assert.Equal(t, "Alice, Bob", v)

	// 文本对象取text
	v = FlattenLarkValue([]interface{}{map[string]interface{}{"text": "TP-001"}})
	assert.Equal(t, "TP-001", v)

	// 无可读键时JSON序列化兜底
	v = FlattenLarkValue([]interface{}{map[string]interface{}{"id": "ou_xxx"}})
	assert.Contains(t, v.(string), "ou_xxx")

	// 标量列表逗号拼接
	v = FlattenLarkValue([]interface{}{"a", "b"})
	assert.Equal(t, "a, b", v)

	// 空列表归为nil
	assert.Nil(t, FlattenLarkValue([]interface{}{}))

	// 单个对象
	assert.Equal(t, "N", FlattenLarkValue(map[string]interface{}{"name": "N"}))

	// 标量原样透传
	assert.Equal(t, float64(42), FlattenLarkValue(float64(42)))
	assert.Equal(t, "plain", FlattenLarkValue("plain"))
}

func TestMapFieldsSkipsUnknownSilently(t *testing.T) {
	ticket := &models.TcgTicket{}
	stats := MapFields(ticket, map[string]interface{}{
		"TCG Tickets":   "TCG-1",
		"Title":         []interface{}{map[string]interface{}{"text": "Hello"}},
		"Unknown Field": "whatever",
	})

	assert.Equal(t, 2, stats.Mapped)
	assert.Equal(t, 1, stats.Unmapped)
	assert.Equal(t, "TCG-1", ticket.TcgTickets)
	assert.Equal(t, "Hello", ticket.Title)
}

func TestMapFieldsExplicitMappingWins(t *testing.T) {
	// "TCG Ticket"（单数）靠显式映射表落到tcg_tickets列
	ticket := &models.TcgTicket{}
	stats := MapFields(ticket, map[string]interface{}{
		"TCG Ticket": "TCG-2",
	})

	assert.Equal(t, 1, stats.Mapped)
	assert.Equal(t, "TCG-2", ticket.TcgTickets)
}

func TestMapFieldsDoesNotTouchDerivedColumns(t *testing.T) {
	tp := &models.TpProject{CompletedPercentage: 66, SortOrder: 3}
	stats := MapFields(tp, map[string]interface{}{
		// 归一化后正好等于统计列名，也必须拒绝
		"Completed Percentage": float64(1),
		"Sort Order":           float64(9),
		"Ticket Number":        "TP-001",
	})

	assert.Equal(t, 1, stats.Mapped)
	assert.Equal(t, 2, stats.Unmapped)
	assert.Equal(t, 66, tp.CompletedPercentage)
	assert.Equal(t, 3, tp.SortOrder)
	assert.Equal(t, "TP-001", tp.TicketNumber)
}
