package services

import (
	"errors"
	"testing"

	"github.com/GrainArc/TPBoard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyActiveTickets(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.TcgTicket{RecordID: "r1", TcgTickets: "TCG-1", JiraStatus: "Open"}).Error)
	require.NoError(t, db.Create(&models.TcgTicket{RecordID: "r2", TcgTickets: "TCG-2", JiraStatus: "Open"}).Error)
	require.NoError(t, db.Create(&models.TcgTicket{RecordID: "r3", TcgTickets: "TCG-3", JiraStatus: "In Progress"}).Error)
	require.NoError(t, db.Create(&models.TcgTicket{RecordID: "r4", TcgTickets: "TCG-4", JiraStatus: "Closed"}).Error)

	tracker := &fakeTracker{results: map[string]TicketLookup{
		"TCG-2": {NotFound: true},
		"TCG-3": {Err: errors.New("rate limited")},
	}}
	s := NewVerifyService(db, tracker)
	s.VerifyActiveTickets()

	// Closed工单不参与校验
	assert.NotContains(t, tracker.queried, "TCG-4")

	// 404的工单：本地删除且写入屏蔽名单
	var tickets []models.TcgTicket
	require.NoError(t, db.Order("record_id").Find(&tickets).Error)
	numbers := make([]string, 0, len(tickets))
	for _, tk := range tickets {
		numbers = append(numbers, tk.TcgTickets)
	}
	assert.Equal(t, []string{"TCG-1", "TCG-3", "TCG-4"}, numbers)

	var removed models.TcgRemovedTicket
	require.NoError(t, db.First(&removed, "ticket_number = ?", "TCG-2").Error)
	assert.Greater(t, removed.DeletedAt, int64(0))

	// 瞬时错误的工单保留，也不进屏蔽名单
	var count int64
	db.Model(&models.TcgRemovedTicket{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestVerifySkipsTicketsWithoutKey(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.TcgTicket{RecordID: "r1", TcgTickets: "", JiraStatus: "Open"}).Error)

	tracker := &fakeTracker{}
	s := NewVerifyService(db, tracker)
	s.VerifyActiveTickets()

	assert.Empty(t, tracker.queried)
	var count int64
	db.Model(&models.TcgTicket{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
