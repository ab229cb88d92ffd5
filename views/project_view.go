package views

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/GrainArc/TPBoard/methods"
	"github.com/GrainArc/TPBoard/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProjectController struct{}

// GetTPs TP项目列表，按看板手动排序返回，可按部门/状态过滤
func (pc *ProjectController) GetTPs(c *gin.Context) {
	DB := models.DB

	query := DB.Model(&models.TpProject{})
	if dept := c.Query("department"); dept != "" && dept != "ALL" {
		query = query.Where("department LIKE ?", "%"+dept+"%")
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("jira_status = ?", status)
	}

	var tps []models.TpProject
	if err := query.Order("sort_order asc").Order("updated_at desc").Find(&tps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, Resp{Status: "error", Message: fmt.Sprintf("查询失败: %v", err)})
		return
	}
	c.JSON(http.StatusOK, tps)
}

// GetTPTickets 某个TP下的全部TCG子单
func (pc *ProjectController) GetTPTickets(c *gin.Context) {
	DB := models.DB
	tpNumber := c.Param("tp_number")

	var tickets []models.TcgTicket
	if err := DB.Where("tp_number = ?", tpNumber).Order("sort_order asc").Find(&tickets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, Resp{Status: "error", Message: fmt.Sprintf("查询失败: %v", err)})
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// GetAnomalies 异常列表，detected_at倒序，可按TP过滤
func (pc *ProjectController) GetAnomalies(c *gin.Context) {
	DB := models.DB

	query := DB.Model(&models.TicketAnomaly{})
	if tp := c.Query("tp_number"); tp != "" {
		query = query.Where("tp_number = ?", tp)
	}

	var anomalies []models.TicketAnomaly
	if err := query.Order("detected_at desc").Find(&anomalies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, Resp{Status: "error", Message: fmt.Sprintf("查询失败: %v", err)})
		return
	}
	c.JSON(http.StatusOK, anomalies)
}

// UpdateSortOrder 批量更新看板手动排序
func (pc *ProjectController) UpdateSortOrder(c *gin.Context) {
	DB := models.DB

	var req SortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Resp{Status: "error", Message: fmt.Sprintf("参数解析失败: %v", err)})
		return
	}

	err := DB.Transaction(func(tx *gorm.DB) error {
		for _, item := range req.Items {
			var e error
			switch req.Table {
			case "tp":
				e = tx.Model(&models.TpProject{}).Where("record_id = ?", item.RecordID).
					Update("sort_order", item.SortOrder).Error
			case "tcg":
				e = tx.Model(&models.TcgTicket{}).Where("record_id = ?", item.RecordID).
					Update("sort_order", item.SortOrder).Error
			default:
				e = fmt.Errorf("不支持的表: %s", req.Table)
			}
			if e != nil {
				return e
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, Resp{Status: "error", Message: fmt.Sprintf("更新排序失败: %v", err)})
		return
	}
	c.JSON(http.StatusOK, Resp{Status: "success", Message: "排序已更新"})
}

// closedTPQuery 已结项TP的查询范围：Closed/Resolved，默认剔除WRD部门的WLB_前缀及无类型项目
func closedTPQuery(db *gorm.DB, department string) *gorm.DB {
	query := db.Model(&models.TpProject{}).Where("jira_status IN ?", []string{"Closed", "Resolved"})
	if department != "" && department != "ALL" {
		query = query.Where("department LIKE ?", "%"+department+"%")
	} else {
		query = query.Where(
			"NOT (department = ? AND (title LIKE ? OR project_type IS NULL OR project_type = ? OR project_type = ?))",
			"WRD", "WLB_%", "", "Others",
		)
	}
	return query
}

// GetDashboardStats 看板统计：近4个季度的已结项TP数与ICR总量
func (pc *ProjectController) GetDashboardStats(c *gin.Context) {
	DB := models.DB

	var tps []models.TpProject
	if err := closedTPQuery(DB, c.Query("department")).Find(&tps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, Resp{Status: "error", Message: fmt.Sprintf("查询失败: %v", err)})
		return
	}

	quarters := methods.LastQuarters(time.Now(), 4)
	stats := make(map[string]int, len(quarters))
	icrStats := make(map[string]int, len(quarters))
	for _, q := range quarters {
		stats[q] = 0
		icrStats[q] = 0
	}

	for _, tp := range tps {
		d, ok := methods.ParseFlexDate(tp.ReleasedDate)
		if !ok {
			continue
		}
		q := methods.QuarterOf(d)
		if _, hit := stats[q]; !hit {
			continue
		}
		stats[q]++
		if tp.ProjectType == "ICR" {
			icrStats[q] += tp.IcrCount
		}
	}

	resp := DashboardStats{Categories: quarters}
	for _, q := range quarters {
		resp.Data = append(resp.Data, stats[q])
		resp.IcrData = append(resp.IcrData, icrStats[q])
	}
	c.JSON(http.StatusOK, resp)
}

// GetClosedTPs 指定季度的已结项TP明细
func (pc *ProjectController) GetClosedTPs(c *gin.Context) {
	DB := models.DB
	quarter := strings.TrimSpace(c.Query("quarter"))
	if quarter == "" {
		c.JSON(http.StatusBadRequest, Resp{Status: "error", Message: "缺少quarter参数"})
		return
	}

	var tps []models.TpProject
	if err := closedTPQuery(DB, c.Query("department")).Find(&tps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, Resp{Status: "error", Message: fmt.Sprintf("查询失败: %v", err)})
		return
	}

	results := make([]ClosedTPItem, 0)
	for _, tp := range tps {
		d, ok := methods.ParseFlexDate(tp.ReleasedDate)
		if !ok || methods.QuarterOf(d) != quarter {
			continue
		}
		results = append(results, ClosedTPItem{
			ID:             tp.RecordID,
			TicketNumber:   tp.TicketNumber,
			Title:          tp.Title,
			ProjectType:    tp.ProjectType,
			Department:     tp.Department,
			ReleasedDate:   d.Format("2006-01-02"),
			ProjectManager: tp.ProjectManager,
		})
	}
	c.JSON(http.StatusOK, results)
}
