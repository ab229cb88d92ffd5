package views

// 通用响应
type Resp struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// 看板排序请求
type SortItem struct {
	RecordID  string `json:"record_id" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

type SortRequest struct {
	Table string     `json:"table" binding:"required"` // tp 或 tcg
	Items []SortItem `json:"items" binding:"required"`
}

// 手动同步请求
type SyncRequest struct {
	ForceFull bool `json:"force_full"`
}

// 看板统计响应
type DashboardStats struct {
	Categories []string `json:"categories"`
	Data       []int    `json:"data"`
	IcrData    []int    `json:"icr_data"`
}

// 季度已结项列表项
type ClosedTPItem struct {
	ID             string `json:"id"`
	TicketNumber   string `json:"ticket_number"`
	Title          string `json:"title"`
	ProjectType    string `json:"project_type"`
	Department     string `json:"department"`
	ReleasedDate   string `json:"released_date"`
	ProjectManager string `json:"project_manager"`
}
