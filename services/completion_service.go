package services

import (
	"log"
	"strings"

	"github.com/GrainArc/TPBoard/models"
	"gorm.io/gorm"
)

// CompletionService 重算进行中TP的完成度统计
type CompletionService struct {
	DB *gorm.DB
}

func NewCompletionService(db *gorm.DB) *CompletionService {
	return &CompletionService{DB: db}
}

// CalculateTPCompletion 对所有In Progress的TP重算完成度
// 公式: Closed子单数 / 子单总数 * 100，整数截断
// 前后端分区按components是否包含FEComponentMarker划分
func (s *CompletionService) CalculateTPCompletion() {
	log.Println("开始TP完成度计算任务...")

	var tps []models.TpProject
	if err := s.DB.Where("jira_status = ?", StatusInProgress).Find(&tps).Error; err != nil {
		log.Printf("查询In Progress TP失败: %v", err)
		return
	}
	log.Printf("待计算TP %d个", len(tps))

	updatesCount := 0
	for i := range tps {
		tp := &tps[i]
		if tp.TicketNumber == "" {
			continue
		}

		var tickets []models.TcgTicket
		if err := s.DB.Where("tp_number = ?", tp.TicketNumber).Find(&tickets).Error; err != nil {
			log.Printf("查询TP %s 的子单失败: %v", tp.TicketNumber, err)
			continue
		}

		newOverall, newFe, newBe, newFeAllOpen := completionStats(tickets)

		// 只回写有变化的字段，避免无谓的更新
		updates := map[string]interface{}{}
		if tp.CompletedPercentage != newOverall {
			updates["completed_percentage"] = newOverall
		}
		if tp.FeCompletedPercentage != newFe {
			updates["fe_completed_percentage"] = newFe
		}
		if tp.BeCompletedPercentage != newBe {
			updates["be_completed_percentage"] = newBe
		}
		if tp.FeStatusAllOpen != newFeAllOpen {
			updates["fe_status_all_open"] = newFeAllOpen
		}
		if len(updates) == 0 {
			continue
		}
		if err := s.DB.Model(tp).Updates(updates).Error; err != nil {
			log.Printf("更新TP %s 完成度失败: %v", tp.TicketNumber, err)
			continue
		}
		updatesCount++
	}

	log.Printf("✓ TP完成度计算完成，更新%d条", updatesCount)
}

// completionStats 按子单状态计算整体/前端/后端完成度与前端全Open标记
// 空分区一律记0，不会除零
func completionStats(tickets []models.TcgTicket) (overall, fe, be int, feAllOpen bool) {
	if len(tickets) == 0 {
		return 0, 0, 0, false
	}

	var feTickets, beTickets []models.TcgTicket
	for _, t := range tickets {
		if strings.Contains(t.Components, FEComponentMarker) {
			feTickets = append(feTickets, t)
		} else {
			beTickets = append(beTickets, t)
		}
	}

	if len(feTickets) > 0 {
		feClosed := 0
		feOpen := 0
		for _, t := range feTickets {
			switch t.JiraStatus {
			case StatusClosed:
				feClosed++
			case StatusOpen:
				feOpen++
			}
		}
		fe = feClosed * 100 / len(feTickets)
		// 全Open标记与完成度相互独立：fe=0且全Open可同时成立
		feAllOpen = feOpen == len(feTickets)
	}

	if len(beTickets) > 0 {
		beClosed := 0
		for _, t := range beTickets {
			if t.JiraStatus == StatusClosed {
				beClosed++
			}
		}
		be = beClosed * 100 / len(beTickets)
	}

	// 整体完成度独立计算，不是前后端的加权平均
	closed := 0
	for _, t := range tickets {
		if t.JiraStatus == StatusClosed {
			closed++
		}
	}
	overall = closed * 100 / len(tickets)
	return overall, fe, be, feAllOpen
}
