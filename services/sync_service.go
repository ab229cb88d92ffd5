package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/GrainArc/TPBoard/models"
	"gorm.io/gorm"
)

// TableBinding 一张Lark表到一张本地镜像表的绑定声明
type TableBinding struct {
	Name string
	// NewEntity 首次见到record_id时构造新行
	NewEntity func(recordID string, updatedAt int64) SyncEntity
	// FindEntity 按record_id查已有行，未找到返回(nil, nil)
	FindEntity func(db *gorm.DB, recordID string) (SyncEntity, error)
	// MaxUpdatedAt 本地水位线，表为空时返回false
	MaxUpdatedAt func(db *gorm.DB) (int64, bool)
	// UseSuppression 是否启用已删工单屏蔽名单
	UseSuppression bool
	// KeyFields 业务单号在Lark端可能的字段名，按序取第一个命中
	KeyFields []string
	// TriggerAnomaly 同步完成后是否触发异常检测
	TriggerAnomaly bool
}

// TPTable TP项目表绑定
func TPTable() *TableBinding {
	return &TableBinding{
		Name: "tp_projects",
		NewEntity: func(recordID string, updatedAt int64) SyncEntity {
			return &models.TpProject{RecordID: recordID, UpdatedAt: updatedAt}
		},
		FindEntity: func(db *gorm.DB, recordID string) (SyncEntity, error) {
			var row models.TpProject
			err := db.Where("record_id = ?", recordID).First(&row).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			if err != nil {
				return nil, err
			}
			return &row, nil
		},
		MaxUpdatedAt: func(db *gorm.DB) (int64, bool) {
			var row models.TpProject
			if err := db.Order("updated_at desc").First(&row).Error; err != nil {
				return 0, false
			}
			return row.UpdatedAt, true
		},
		TriggerAnomaly: true,
	}
}

// TCGTable TCG工单表绑定，启用屏蔽名单
func TCGTable() *TableBinding {
	return &TableBinding{
		Name: "tcg_tickets",
		NewEntity: func(recordID string, updatedAt int64) SyncEntity {
			return &models.TcgTicket{RecordID: recordID, UpdatedAt: updatedAt}
		},
		FindEntity: func(db *gorm.DB, recordID string) (SyncEntity, error) {
			var row models.TcgTicket
			err := db.Where("record_id = ?", recordID).First(&row).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			if err != nil {
				return nil, err
			}
			return &row, nil
		},
		MaxUpdatedAt: func(db *gorm.DB) (int64, bool) {
			var row models.TcgTicket
			if err := db.Order("updated_at desc").First(&row).Error; err != nil {
				return 0, false
			}
			return row.UpdatedAt, true
		},
		UseSuppression: true,
		KeyFields:      []string{"TCG Tickets", "TCG Ticket"},
		TriggerAnomaly: true,
	}
}

// SyncService 增量同步引擎，依赖注入而非全局单例
type SyncService struct {
	DB   *gorm.DB
	Lark LarkClient
}

func NewSyncService(db *gorm.DB, lark LarkClient) *SyncService {
	return &SyncService{DB: db, Lark: lark}
}

// SyncTable 将一张Lark表同步到本地镜像表
// 调度器直接调用，任何错误都在这里消化并记日志，不向上抛
func (s *SyncService) SyncTable(appToken string, tableID string, binding *TableBinding, forceFull bool) {
	log.Printf("开始同步表 %s (%s) [Force Full: %v]", binding.Name, tableID, forceFull)

	if err := s.syncTable(appToken, tableID, binding, forceFull); err != nil {
		// 已提交的页保持提交状态，下一轮自愈
		log.Printf("同步表 %s 失败: %v", binding.Name, err)
		return
	}

	if binding.TriggerAnomaly {
		log.Println("触发异常检测...")
		if err := NewAnomalyService(s.DB).RefreshAnomalies(); err != nil {
			log.Printf("异常检测失败: %v", err)
		}
	}
}

func (s *SyncService) syncTable(appToken string, tableID string, binding *TableBinding, forceFull bool) error {
	// 增量模式：有水位线就按"当前时间-1天"构造过滤条件
	// 回看窗口固定1天，与水位线的具体值无关；长期未同步的表需要手动全量
	var filter *SearchFilter
	if !forceFull {
		if _, ok := binding.MaxUpdatedAt(s.DB); ok {
			cutoff := time.Now().Add(-24 * time.Hour).UnixMilli()
			filter = UpdatedAfterFilter(cutoff)
			log.Printf("增量同步，过滤条件: Updated Date > %d", cutoff)
		} else {
			log.Println("本地表为空，执行全量同步")
		}
	} else {
		log.Println("全量同步：拉取全部记录")
	}

	// 屏蔽名单整表预加载，一次同步只查一遍
	suppressed := map[string]bool{}
	if binding.UseSuppression {
		var removed []models.TcgRemovedTicket
		if err := s.DB.Find(&removed).Error; err != nil {
			return fmt.Errorf("加载屏蔽名单失败: %v", err)
		}
		for _, r := range removed {
			suppressed[r.TicketNumber] = true
		}
		if len(suppressed) > 0 {
			log.Printf("已加载%d条屏蔽工单号", len(suppressed))
		}
	}

	pageToken := ""
	totalFetched := 0
	var stats MapStats
	for {
		page, err := s.Lark.ListRecords(appToken, tableID, filter, pageToken)
		if err != nil {
			return err
		}
		totalFetched += len(page.Items)

		// 一页一个事务：页内失败整页回滚，页间不回滚
		err = s.DB.Transaction(func(tx *gorm.DB) error {
			for _, item := range page.Items {
				if binding.UseSuppression {
					if key := businessKey(item.Fields, binding.KeyFields); key != "" && suppressed[key] {
						continue
					}
				}

				updatedAt := larkUpdatedAt(item.Fields)
				entity, err := binding.FindEntity(tx, item.RecordID)
				if err != nil {
					return err
				}
				if entity == nil {
					entity = binding.NewEntity(item.RecordID, updatedAt)
				} else {
					// 已有行复用，统计字段与排序字段保留
					entity.SetUpdatedAt(updatedAt)
				}

				st := MapFields(entity, item.Fields)
				stats.Mapped += st.Mapped
				stats.Unmapped += st.Unmapped

				if raw, err := json.Marshal(item.Fields); err == nil {
					entity.SetRawFields(raw)
				}

				if err := tx.Save(entity).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		log.Printf("本页%d条已入库 (累计: %d)", len(page.Items), totalFetched)

		if !page.HasMore {
			break
		}
		if page.PageToken == "" {
			log.Println("Warning: has_more=true但未返回page_token，提前结束分页")
			break
		}
		pageToken = page.PageToken
	}

	log.Printf("✓ 表 %s 同步完成，共%d条，字段映射 %d命中/%d丢弃", binding.Name, totalFetched, stats.Mapped, stats.Unmapped)
	return nil
}

// businessKey 从原始字段里解析业务单号，用于屏蔽名单比对
func businessKey(fields map[string]interface{}, keyFields []string) string {
	for _, name := range keyFields {
		if raw, ok := fields[name]; ok {
			if v, ok := FlattenLarkValue(raw).(string); ok && v != "" {
				return v
			}
		}
	}
	return ""
}

// larkUpdatedAt 记录的外部最后修改时间，缺失时取0
func larkUpdatedAt(fields map[string]interface{}) int64 {
	raw, ok := fields["Updated Date"]
	if !ok {
		return 0
	}
	switch v := raw.(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	default:
		return 0
	}
}
