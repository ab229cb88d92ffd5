package models

import (
	"github.com/GrainArc/TPBoard/methods"
	"gorm.io/datatypes"
)

// TpProject TP项目表，镜像Lark多维表格的TP表
type TpProject struct {
	RecordID  string `gorm:"column:record_id;primaryKey" json:"record_id"`
	UpdatedAt int64  `gorm:"column:updated_at;index" json:"updated_at"` // Lark记录的最后修改时间（ms），作为增量同步水位线

	Components       string `gorm:"column:components" json:"components"`
	Department       string `gorm:"column:department" json:"department"`
	ParticipatedDept string `gorm:"column:participated_dept" json:"participated_dept"`

	// 统计字段，由CompletionService计算，不参与Lark字段映射
	CompletedPercentage   int  `gorm:"column:completed_percentage;default:0" json:"completed_percentage"`
	FeCompletedPercentage int  `gorm:"column:fe_completed_percentage;default:0" json:"fe_completed_percentage"`
	BeCompletedPercentage int  `gorm:"column:be_completed_percentage;default:0" json:"be_completed_percentage"`
	FeStatusAllOpen       bool `gorm:"column:fe_status_all_open;default:false" json:"fe_status_all_open"`
	SortOrder             int  `gorm:"column:sort_order;default:0" json:"sort_order"` // 看板手动排序

	CurrentCompletion int    `gorm:"column:current_completion" json:"current_completion"`
	DueDayQuarter     string `gorm:"column:due_day_quarter" json:"due_day_quarter"`
	IcrCount          int    `gorm:"column:icr_count" json:"icr_count"`
	JiraStatus        string `gorm:"column:jira_status;index" json:"jira_status"`
	ProjectManager    string `gorm:"column:project_manager" json:"project_manager"`
	ProjectType       string `gorm:"column:project_type" json:"project_type"`
	ReleasedMonth     string `gorm:"column:released_month" json:"released_month"`
	ReleasedDate      string `gorm:"column:released_date" json:"released_date"`
	Description       string `gorm:"column:description" json:"description"`
	DueDay            string `gorm:"column:due_day" json:"due_day"`
	StartDate         string `gorm:"column:start_date" json:"start_date"`
	SitDate           string `gorm:"column:sit_date" json:"sit_date"`
	SourceID          string `gorm:"column:source_id" json:"source_id"`
	TicketNumber      string `gorm:"column:ticket_number;index" json:"ticket_number"`
	Title             string `gorm:"column:title" json:"title"`

	Fields datatypes.JSON `gorm:"column:fields" json:"fields"` // Lark原始字段快照
}

func (TpProject) TableName() string {
	return "tp_projects"
}

func (t *TpProject) GetRecordID() string {
	return t.RecordID
}

func (t *TpProject) SetUpdatedAt(ms int64) {
	t.UpdatedAt = ms
}

func (t *TpProject) SetRawFields(raw []byte) {
	t.Fields = raw
}

// LarkMapping 显式的Lark字段名→列名映射，优先于结构化归一化
func (t *TpProject) LarkMapping() map[string]string {
	return map[string]string{}
}

// SetColumn 按列名赋值，只开放远端可写列，统计字段与排序字段由本地维护
func (t *TpProject) SetColumn(name string, value interface{}) bool {
	switch name {
	case "components":
		t.Components = methods.ToString(value)
	case "department":
		t.Department = methods.ToString(value)
	case "participated_dept":
		t.ParticipatedDept = methods.ToString(value)
	case "current_completion":
		t.CurrentCompletion = methods.ToInt(value)
	case "due_day_quarter":
		t.DueDayQuarter = methods.ToString(value)
	case "icr_count":
		t.IcrCount = methods.ToInt(value)
	case "jira_status":
		t.JiraStatus = methods.ToString(value)
	case "project_manager":
		t.ProjectManager = methods.ToString(value)
	case "project_type":
		t.ProjectType = methods.ToString(value)
	case "released_month":
		t.ReleasedMonth = methods.ToString(value)
	case "released_date":
		t.ReleasedDate = methods.ToString(value)
	case "description":
		t.Description = methods.ToString(value)
	case "due_day":
		t.DueDay = methods.ToString(value)
	case "start_date":
		t.StartDate = methods.ToString(value)
	case "sit_date":
		t.SitDate = methods.ToString(value)
	case "source_id":
		t.SourceID = methods.ToString(value)
	case "ticket_number":
		t.TicketNumber = methods.ToString(value)
	case "title":
		t.Title = methods.ToString(value)
	default:
		return false
	}
	return true
}
