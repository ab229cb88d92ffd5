package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/GrainArc/TPBoard/methods"
	"github.com/GrainArc/TPBoard/models"
	"gorm.io/gorm"
)

// AnomalyService 父子工单状态一致性检测
// 每轮对进行中TP范围内的异常记录做整体替换（先删后插），不做合并
type AnomalyService struct {
	DB *gorm.DB
}

func NewAnomalyService(db *gorm.DB) *AnomalyService {
	return &AnomalyService{DB: db}
}

// RefreshAnomalies 扫描In Progress的TP并重建ticket_anomalies表
// 规则按父单状态二分：
// 规则一 父单Open且存在已启动子单；规则二 父单In Progress且子单全部收尾
func (s *AnomalyService) RefreshAnomalies() error {
	var activeTPs []models.TpProject
	if err := s.DB.Where("jira_status = ?", StatusInProgress).Find(&activeTPs).Error; err != nil {
		return err
	}
	if len(activeTPs) == 0 {
		return nil
	}

	tpNumbers := make([]string, 0, len(activeTPs))
	for _, tp := range activeTPs {
		if tp.TicketNumber != "" {
			tpNumbers = append(tpNumbers, tp.TicketNumber)
		}
	}
	now := time.Now().UnixMilli()

	return s.DB.Transaction(func(tx *gorm.DB) error {
		// 先清掉这批TP的旧异常，检测是当前状态的纯函数，不留历史
		if err := tx.Where("tp_number IN ?", tpNumbers).Delete(&models.TicketAnomaly{}).Error; err != nil {
			return err
		}
		for i := range activeTPs {
			if err := s.detectForTP(tx, &activeTPs[i], now); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *AnomalyService) detectForTP(tx *gorm.DB, tp *models.TpProject, timestamp int64) error {
	var parents []models.TcgTicket
	err := tx.Where("tp_number = ?", tp.TicketNumber).
		Where("issue_type IN ?", ParentIssueTypes).
		Where("jira_status IN ?", ParentGateStatuses).
		Find(&parents).Error
	if err != nil {
		return err
	}

	for i := range parents {
		p := &parents[i]
		if p.TcgTickets == "" {
			continue
		}

		// 子单靠parent_tickets自由文本的子串包含匹配
		// 一条"TCG-100, TCG-200"会同时算作两个父单的子单
		var children []models.TcgTicket
		if err := tx.Where("parent_tickets LIKE ?", "%"+p.TcgTickets+"%").Find(&children).Error; err != nil {
			return err
		}
		if len(children) == 0 {
			continue
		}

		parentStatus := methods.TrimmedStatus(p.JiraStatus)
		switch parentStatus {
		case StatusOpen:
			// 规则一：父单还没开工，子单却已启动
			var activeInfo []string
			for _, c := range children {
				cStatus := methods.TrimmedStatus(c.JiraStatus)
				if methods.IsStringInSlice(cStatus, ActiveChildStatuses) {
					activeInfo = append(activeInfo, fmt.Sprintf("%s(%s)", c.TcgTickets, cStatus))
				}
			}
			if len(activeInfo) > 0 {
				reason := "Parent is Open but has active child: " + strings.Join(activeInfo, ", ")
				if err := s.createAnomaly(tx, p, tp, reason, timestamp); err != nil {
					return err
				}
			}
		case StatusInProgress:
			// 规则二：父单进行中，子单却已全部收尾
			allInactive := true
			for _, c := range children {
				if !methods.IsStringInSlice(methods.TrimmedStatus(c.JiraStatus), InactiveChildStatuses) {
					allInactive = false
					break
				}
			}
			if allInactive {
				reason := "Parent is In Progress but all children are InActive (Closed/Done)."
				if err := s.createAnomaly(tx, p, tp, reason, timestamp); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *AnomalyService) createAnomaly(tx *gorm.DB, p *models.TcgTicket, tp *models.TpProject, reason string, timestamp int64) error {
	anomaly := models.TicketAnomaly{
		TicketNumber:  p.TcgTickets,
		TicketTitle:   p.Title,
		TpNumber:      p.TpNumber,
		TpTitle:       tp.Title,
		Assignee:      p.Assignee,
		ParentStatus:  p.JiraStatus,
		AnomalyReason: reason,
		DetectedAt:    timestamp,
		Components:    p.Components,
		Department:    p.Department,
	}
	return tx.Create(&anomaly).Error
}
