package services

import (
	"context"
	"log"
	"time"

	"github.com/GrainArc/TPBoard/models"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// VerifyService 对照Jira清理本地已不存在的工单
type VerifyService struct {
	DB      *gorm.DB
	Jira    IssueTracker
	Limiter *rate.Limiter
}

func NewVerifyService(db *gorm.DB, jira IssueTracker) *VerifyService {
	return &VerifyService{
		DB:   db,
		Jira: jira,
		// 约每秒20次、突发10，对应老逻辑"每验证10条歇0.5秒"的节奏
		Limiter: rate.NewLimiter(rate.Limit(20), 10),
	}
}

// VerifyActiveTickets 校验所有非Closed工单在Jira中是否仍存在
// Jira明确返回404的工单：删除本地行并写入屏蔽名单（同一事务，防止下次同步复活）
// 其他错误只记日志，继续处理下一条
func (s *VerifyService) VerifyActiveTickets() {
	log.Println("开始Jira工单校验任务...")

	var tickets []models.TcgTicket
	if err := s.DB.Where("jira_status <> ?", StatusClosed).Find(&tickets).Error; err != nil {
		log.Printf("查询待校验工单失败: %v", err)
		return
	}
	log.Printf("待校验工单%d条", len(tickets))

	verified := 0
	deleted := 0
	for i := range tickets {
		t := tickets[i]
		if t.TcgTickets == "" {
			continue
		}

		if s.Limiter != nil {
			_ = s.Limiter.Wait(context.Background())
		}

		result := s.Jira.GetTicket(t.TcgTickets)
		if result.Err != nil {
			// 网络/认证等瞬时错误不影响其他工单
			log.Printf("校验工单 %s 出错: %v", t.TcgTickets, result.Err)
			continue
		}

		if result.NotFound {
			log.Printf("工单 %s 在Jira中已不存在，删除本地记录并加入屏蔽名单", t.TcgTickets)
			err := s.DB.Transaction(func(tx *gorm.DB) error {
				removed := models.TcgRemovedTicket{
					TicketNumber: t.TcgTickets,
					DeletedAt:    time.Now().UnixMilli(),
				}
				if err := tx.Save(&removed).Error; err != nil {
					return err
				}
				return tx.Where("record_id = ?", t.RecordID).Delete(&models.TcgTicket{}).Error
			})
			if err != nil {
				log.Printf("删除工单 %s 失败: %v", t.TcgTickets, err)
				continue
			}
			deleted++
		} else {
			verified++
		}
	}

	log.Printf("✓ Jira校验完成，存活: %d, 删除: %d", verified, deleted)
}
