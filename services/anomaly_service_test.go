package services

import (
	"testing"

	"github.com/GrainArc/TPBoard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnomalyRule1ParentOpenChildActive(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.TpProject{
		RecordID: "rtp", TicketNumber: "TP-001", Title: "项目A", JiraStatus: StatusInProgress,
	}).Error)
	require.NoError(t, db.Create(&models.TcgTicket{
		RecordID: "rp", TcgTickets: "TCG-100", TpNumber: "TP-001",
		IssueType: "Change Request", JiraStatus: "Open", Assignee: "alice",
	}).Error)
	require.NoError(t, db.Create(&models.TcgTicket{
		RecordID: "rc", TcgTickets: "TCG-101", TpNumber: "TP-001",
		JiraStatus: "In Progress", ParentTickets: "TCG-100",
	}).Error)

	require.NoError(t, NewAnomalyService(db).RefreshAnomalies())

	var anomalies []models.TicketAnomaly
	require.NoError(t, db.Find(&anomalies).Error)
	require.Len(t, anomalies, 1)
	a := anomalies[0]
	assert.Equal(t, "TCG-100", a.TicketNumber)
	assert.Equal(t, "TP-001", a.TpNumber)
	assert.Equal(t, "Open", a.ParentStatus)
	assert.Contains(t, a.AnomalyReason, "TCG-101(In Progress)")
	assert.Greater(t, a.DetectedAt, int64(0))
}

func TestAnomalyRule2ParentInProgressChildrenInactive(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.TpProject{
		RecordID: "rtp", TicketNumber: "TP-001", JiraStatus: StatusInProgress,
	}).Error)
	require.NoError(t, db.Create(&models.TcgTicket{
		RecordID: "rp", TcgTickets: "TCG-100", TpNumber: "TP-001",
		IssueType: "Improvement", JiraStatus: "In Progress",
	}).Error)
	for _, c := range []struct{ id, key, status string }{
		{"rc1", "TCG-101", "Done"},
		{"rc2", "TCG-102", "Closed"},
	} {
		require.NoError(t, db.Create(&models.TcgTicket{
			RecordID: c.id, TcgTickets: c.key, TpNumber: "TP-001",
			JiraStatus: c.status, ParentTickets: "TCG-100",
		}).Error)
	}

	require.NoError(t, NewAnomalyService(db).RefreshAnomalies())

	var anomalies []models.TicketAnomaly
	require.NoError(t, db.Find(&anomalies).Error)
	require.Len(t, anomalies, 1)
	assert.Equal(t, "TCG-100", anomalies[0].TicketNumber)
	assert.Contains(t, anomalies[0].AnomalyReason, "all children are InActive")
}

func TestAnomalyRule2NotFlaggedWhenChildStillActive(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.TpProject{
		RecordID: "rtp", TicketNumber: "TP-001", JiraStatus: StatusInProgress,
	}).Error)
	require.NoError(t, db.Create(&models.TcgTicket{
		RecordID: "rp", TcgTickets: "TCG-100", TpNumber: "TP-001",
		IssueType: "Improvement", JiraStatus: "In Progress",
	}).Error)
	require.NoError(t, db.Create(&models.TcgTicket{
		RecordID: "rc1", TcgTickets: "TCG-101", TpNumber: "TP-001",
		JiraStatus: "Development", ParentTickets: "TCG-100",
	}).Error)

	require.NoError(t, NewAnomalyService(db).RefreshAnomalies())

	var count int64
	db.Model(&models.TicketAnomaly{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAnomalyReplaceNotMerge(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.TpProject{
		RecordID: "rtp", TicketNumber: "TP-001", JiraStatus: StatusInProgress,
	}).Error)
	require.NoError(t, db.Create(&models.TcgTicket{
		RecordID: "rp", TcgTickets: "TCG-100", TpNumber: "TP-001",
		IssueType: "Change Request", JiraStatus: "Open",
	}).Error)
	require.NoError(t, db.Create(&models.TcgTicket{
		RecordID: "rc", TcgTickets: "TCG-101", TpNumber: "TP-001",
		JiraStatus: "Done", ParentTickets: "TCG-100",
	}).Error)

	svc := NewAnomalyService(db)
	require.NoError(t, svc.RefreshAnomalies())
	require.NoError(t, svc.RefreshAnomalies())

	// 数据不变时重复检测不会累积
	var count int64
	db.Model(&models.TicketAnomaly{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAnomalySubstringMatchesMultipleParents(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.TpProject{
		RecordID: "rtp", TicketNumber: "TP-001", JiraStatus: StatusInProgress,
	}).Error)
	for _, p := range []struct{ id, key string }{
		{"rp1", "TCG-100"},
		{"rp2", "TCG-200"},
	} {
		require.NoError(t, db.Create(&models.TcgTicket{
			RecordID: p.id, TcgTickets: p.key, TpNumber: "TP-001",
			IssueType: "Change Request", JiraStatus: "Open",
		}).Error)
	}
	// 一条子单同时引用两个父单，两边都要算上
	require.NoError(t, db.Create(&models.TcgTicket{
		RecordID: "rc", TcgTickets: "TCG-300", TpNumber: "TP-001",
		JiraStatus: "Development", ParentTickets: "TCG-100, TCG-200",
	}).Error)

	require.NoError(t, NewAnomalyService(db).RefreshAnomalies())

	var anomalies []models.TicketAnomaly
	require.NoError(t, db.Order("ticket_number").Find(&anomalies).Error)
	require.Len(t, anomalies, 2)
	assert.Equal(t, "TCG-100", anomalies[0].TicketNumber)
	assert.Equal(t, "TCG-200", anomalies[1].TicketNumber)
}

func TestAnomalyZeroChildrenNeverFlagged(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.TpProject{
		RecordID: "rtp", TicketNumber: "TP-001", JiraStatus: StatusInProgress,
	}).Error)
	require.NoError(t, db.Create(&models.TcgTicket{
		RecordID: "rp", TcgTickets: "TCG-100", TpNumber: "TP-001",
		IssueType: "Change Request", JiraStatus: "Open",
	}).Error)

	require.NoError(t, NewAnomalyService(db).RefreshAnomalies())

	var count int64
	db.Model(&models.TicketAnomaly{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAnomalyIgnoresNonWhitelistedIssueTypes(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.TpProject{
		RecordID: "rtp", TicketNumber: "TP-001", JiraStatus: StatusInProgress,
	}).Error)
	require.NoError(t, db.Create(&models.TcgTicket{
		RecordID: "rp", TcgTickets: "TCG-100", TpNumber: "TP-001",
		IssueType: "Bug", JiraStatus: "Open",
	}).Error)
	require.NoError(t, db.Create(&models.TcgTicket{
		RecordID: "rc", TcgTickets: "TCG-101", TpNumber: "TP-001",
		JiraStatus: "In Progress", ParentTickets: "TCG-100",
	}).Error)

	require.NoError(t, NewAnomalyService(db).RefreshAnomalies())

	var count int64
	db.Model(&models.TicketAnomaly{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
