package services

// Jira状态取值，Lark表镜像的是Jira工作流，比较时区分大小写
const (
	StatusOpen       = "Open"
	StatusInProgress = "In Progress"
	StatusClosed     = "Closed"
)

// FEComponentMarker components字段包含该标记的工单划为前端分区
const FEComponentMarker = "TAD TAC UI"

// 异常检测的父工单类型白名单
var ParentIssueTypes = []string{"Change Request", "Improvement"}

// 异常检测的父工单门控状态
var ParentGateStatuses = []string{StatusOpen, StatusInProgress}

// 规则一：父单Open时，子单处于以下状态视为"已启动"
var ActiveChildStatuses = []string{
	"In Progress", "Development", "Testing",
	"In Review", "Review",
	"Resolved",
	"Done", "Closed",
}

// 规则二：父单In Progress时，子单全部处于以下状态视为"已收尾"
var InactiveChildStatuses = []string{"Resolved", "Done", "Closed"}
