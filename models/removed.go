package models

// TcgRemovedTicket 上游已确认删除的工单号，作为同步时的屏蔽名单，防止全量同步复活已删工单
type TcgRemovedTicket struct {
	TicketNumber string `gorm:"column:ticket_number;primaryKey" json:"ticket_number"`
	DeletedAt    int64  `gorm:"column:deleted_at" json:"deleted_at"` // 删除时间（ms）
}

func (TcgRemovedTicket) TableName() string {
	return "tcg_removed_tickets"
}
