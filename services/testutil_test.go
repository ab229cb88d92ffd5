package services

import (
	"path/filepath"
	"testing"

	"github.com/GrainArc/TPBoard/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.TpProject{},
		&models.TcgTicket{},
		&models.TicketAnomaly{},
		&models.TcgRemovedTicket{},
	))
	return db
}

// fakeLark 按调用次数依次返回预置分页
type fakeLark struct {
	pages   []*RecordPage
	calls   int
	filters []*SearchFilter
}

func (f *fakeLark) ListRecords(appToken string, tableID string, filter *SearchFilter, pageToken string) (*RecordPage, error) {
	f.filters = append(f.filters, filter)
	if f.calls >= len(f.pages) {
		return &RecordPage{}, nil
	}
	p := f.pages[f.calls]
	f.calls++
	return p, nil
}

// fakeTracker 预置查询结果，未配置的单号视为存在
type fakeTracker struct {
	results map[string]TicketLookup
	queried []string
}

func (f *fakeTracker) GetTicket(ticketNumber string) TicketLookup {
	f.queried = append(f.queried, ticketNumber)
	if r, ok := f.results[ticketNumber]; ok {
		return r
	}
	return TicketLookup{Issue: &JiraIssue{Key: ticketNumber}}
}
