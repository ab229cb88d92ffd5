package models

import (
	"github.com/GrainArc/TPBoard/methods"
	"gorm.io/datatypes"
)

// TcgTicket TCG工单表，TP项目的子工单，通过tp_number弱关联TP
type TcgTicket struct {
	RecordID  string `gorm:"column:record_id;primaryKey" json:"record_id"`
	SortOrder int    `gorm:"column:sort_order;default:0" json:"sort_order"` // 看板手动排序
	UpdatedAt int64  `gorm:"column:updated_at;index" json:"updated_at"`

	Assignee          string `gorm:"column:assignee" json:"assignee"`
	Description       string `gorm:"column:description" json:"description"`
	Components        string `gorm:"column:components" json:"components"`
	Created           int64  `gorm:"column:created" json:"created"`
	CreatedQuarter    string `gorm:"column:created_quarter" json:"created_quarter"`
	CreatedYearMonth  string `gorm:"column:created_year_month" json:"created_year_month"`
	Department        string `gorm:"column:department" json:"department"`
	FixVersions       string `gorm:"column:fix_versions" json:"fix_versions"`
	IssueType         string `gorm:"column:issue_type;index" json:"issue_type"`
	JiraStatus        string `gorm:"column:jira_status;index" json:"jira_status"`
	RelayOrPermission string `gorm:"column:relay_or_permission" json:"relay_or_permission"`
	Reporter          string `gorm:"column:reporter" json:"reporter"`
	Resolved          int64  `gorm:"column:resolved" json:"resolved"`
	ResolvedBy        string `gorm:"column:resolved_by" json:"resolved_by"`
	ResolvedDate      string `gorm:"column:resolved_date" json:"resolved_date"`
	ResolvedMonth     string `gorm:"column:resolved_month" json:"resolved_month"`
	ResolvedQuarter   string `gorm:"column:resolved_quarter" json:"resolved_quarter"`
	ResolvedWeekNum   int    `gorm:"column:resolved_week_num" json:"resolved_week_num"`
	SourceID          string `gorm:"column:source_id" json:"source_id"`
	StartDate         string `gorm:"column:start_date" json:"start_date"`
	TcgTickets        string `gorm:"column:tcg_tickets;index" json:"tcg_tickets"` // 业务工单号，如 TCG-123
	TpNumber          string `gorm:"column:tp_number;index" json:"tp_number"`     // 所属TP的业务单号（字符串弱外键）
	Title             string `gorm:"column:title" json:"title"`
	ParentTickets     string `gorm:"column:parent_tickets" json:"parent_tickets"` // 父工单引用，自由文本，可含多个单号

	Fields datatypes.JSON `gorm:"column:fields" json:"fields"` // Lark原始字段快照
}

func (TcgTicket) TableName() string {
	return "tcg_tickets"
}

func (t *TcgTicket) GetRecordID() string {
	return t.RecordID
}

func (t *TcgTicket) SetUpdatedAt(ms int64) {
	t.UpdatedAt = ms
}

func (t *TcgTicket) SetRawFields(raw []byte) {
	t.Fields = raw
}

// LarkMapping Lark端字段名存在单复数两种写法，这里统一映射到tcg_tickets列
func (t *TcgTicket) LarkMapping() map[string]string {
	return map[string]string{
		"TCG Ticket": "tcg_tickets",
	}
}

// SetColumn 按列名赋值，sort_order为本地字段不开放
func (t *TcgTicket) SetColumn(name string, value interface{}) bool {
	switch name {
	case "assignee":
		t.Assignee = methods.ToString(value)
	case "description":
		t.Description = methods.ToString(value)
	case "components":
		t.Components = methods.ToString(value)
	case "created":
		t.Created = methods.ToInt64(value)
	case "created_quarter":
		t.CreatedQuarter = methods.ToString(value)
	case "created_year_month":
		t.CreatedYearMonth = methods.ToString(value)
	case "department":
		t.Department = methods.ToString(value)
	case "fix_versions":
		t.FixVersions = methods.ToString(value)
	case "issue_type":
		t.IssueType = methods.ToString(value)
	case "jira_status":
		t.JiraStatus = methods.ToString(value)
	case "relay_or_permission":
		t.RelayOrPermission = methods.ToString(value)
	case "reporter":
		t.Reporter = methods.ToString(value)
	case "resolved":
		t.Resolved = methods.ToInt64(value)
	case "resolved_by":
		t.ResolvedBy = methods.ToString(value)
	case "resolved_date":
		t.ResolvedDate = methods.ToString(value)
	case "resolved_month":
		t.ResolvedMonth = methods.ToString(value)
	case "resolved_quarter":
		t.ResolvedQuarter = methods.ToString(value)
	case "resolved_week_num":
		t.ResolvedWeekNum = methods.ToInt(value)
	case "source_id":
		t.SourceID = methods.ToString(value)
	case "start_date":
		t.StartDate = methods.ToString(value)
	case "tcg_tickets":
		t.TcgTickets = methods.ToString(value)
	case "tp_number":
		t.TpNumber = methods.ToString(value)
	case "title":
		t.Title = methods.ToString(value)
	case "parent_tickets":
		t.ParentTickets = methods.ToString(value)
	default:
		return false
	}
	return true
}
