package views

import (
	"net/http"

	"github.com/GrainArc/TPBoard/config"
	"github.com/GrainArc/TPBoard/services"
	"github.com/gin-gonic/gin"
)

// JobController 手动触发后台任务的入口
type JobController struct {
	Sync       *services.SyncService
	Verify     *services.VerifyService
	Completion *services.CompletionService
}

func NewJobController(sync *services.SyncService, verify *services.VerifyService, completion *services.CompletionService) *JobController {
	return &JobController{Sync: sync, Verify: verify, Completion: completion}
}

// TriggerSync 手动触发同步，默认全量，同步阻塞执行以便直接反馈结果
func (jc *JobController) TriggerSync(c *gin.Context) {
	req := SyncRequest{ForceFull: true}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, Resp{Status: "error", Message: "参数解析失败: " + err.Error()})
			return
		}
	}

	jc.Sync.SyncTable(config.TPAppToken, config.TPTableID, services.TPTable(), req.ForceFull)
	jc.Sync.SyncTable(config.TCGAppToken, config.TCGTableID, services.TCGTable(), req.ForceFull)
	jc.Completion.CalculateTPCompletion()

	c.JSON(http.StatusOK, Resp{Status: "success", Message: "同步任务已执行"})
}

// TriggerJiraVerification 手动触发Jira校验，清理已删工单
func (jc *JobController) TriggerJiraVerification(c *gin.Context) {
	jc.Verify.VerifyActiveTickets()
	c.JSON(http.StatusOK, Resp{Status: "success", Message: "Jira校验任务已执行"})
}

// TriggerCompletion 手动触发完成度计算
func (jc *JobController) TriggerCompletion(c *gin.Context) {
	jc.Completion.CalculateTPCompletion()
	c.JSON(http.StatusOK, Resp{Status: "success", Message: "完成度计算已执行"})
}
