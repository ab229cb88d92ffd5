package models

// TicketAnomaly 父子工单状态不一致的检测结果，每轮检测整体替换，字段为检测时刻的快照
type TicketAnomaly struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	TicketNumber  string `gorm:"column:ticket_number;index" json:"ticket_number"`
	TicketTitle   string `gorm:"column:ticket_title" json:"ticket_title"`
	TpNumber      string `gorm:"column:tp_number;index" json:"tp_number"`
	TpTitle       string `gorm:"column:tp_title" json:"tp_title"`
	Assignee      string `gorm:"column:assignee" json:"assignee"`
	ParentStatus  string `gorm:"column:parent_status" json:"parent_status"`
	AnomalyReason string `gorm:"column:anomaly_reason" json:"anomaly_reason"`
	DetectedAt    int64  `gorm:"column:detected_at" json:"detected_at"` // ms时间戳
	Components    string `gorm:"column:components" json:"components"`
	Department    string `gorm:"column:department" json:"department"`
}

func (TicketAnomaly) TableName() string {
	return "ticket_anomalies"
}
