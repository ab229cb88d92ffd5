package main

import (
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/GrainArc/TPBoard/config"
	"github.com/GrainArc/TPBoard/models"
	"github.com/GrainArc/TPBoard/routers"
	"github.com/GrainArc/TPBoard/services"
	"github.com/GrainArc/TPBoard/views"
	"github.com/gin-gonic/gin"
)

// Cors 本地前端跨域
func Cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func main() {
	// 日志同时落文件与标准输出
	logFile, err := os.OpenFile("backend.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err == nil {
		log.SetOutput(io.MultiWriter(os.Stdout, logFile))
	}

	models.InitDB()

	larkClient := services.NewLarkAPIClient(config.LarkDomain, config.LarkAppID, config.LarkAppSecret)
	jiraClient := services.NewJiraAPIClient(config.JiraServer, config.JiraToken)

	syncService := services.NewSyncService(models.DB, larkClient)
	verifyService := services.NewVerifyService(models.DB, jiraClient)
	completionService := services.NewCompletionService(models.DB)

	runSyncJobs := func(forceFull bool) {
		log.Printf("Running sync jobs... (Force Full: %v)", forceFull)
		syncService.SyncTable(config.TPAppToken, config.TPTableID, services.TPTable(), forceFull)
		syncService.SyncTable(config.TCGAppToken, config.TCGTableID, services.TCGTable(), forceFull)
		completionService.CalculateTPCompletion()
	}

	// 定时同步，外部触发是串行的，同一任务不会并发重入
	go func() {
		runSyncJobs(false)
		ticker := time.NewTicker(time.Duration(config.SyncInterval) * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			runSyncJobs(false)
		}
	}()

	r := gin.Default()
	r.Use(Cors())
	routers.ApiRouters(r, views.NewJobController(syncService, verifyService, completionService))

	addr := config.MainRouter
	if addr == "" {
		addr = "0.0.0.0:8426"
	}
	log.Printf("服务启动: %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("服务启动失败: %v", err)
	}
}
