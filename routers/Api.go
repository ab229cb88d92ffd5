package routers

import (
	"github.com/GrainArc/TPBoard/views"
	"github.com/gin-gonic/gin"
)

func ApiRouters(r *gin.Engine, jobController *views.JobController) {
	ProjectController := &views.ProjectController{}
	apiRouter := r.Group("/api")
	{
		apiRouter.GET("/projects", ProjectController.GetTPs)
		apiRouter.GET("/projects/:tp_number/tickets", ProjectController.GetTPTickets)
		apiRouter.POST("/projects/sort", ProjectController.UpdateSortOrder)
		apiRouter.GET("/anomalies", ProjectController.GetAnomalies)
		apiRouter.GET("/dashboard/stats", ProjectController.GetDashboardStats)
		apiRouter.GET("/dashboard/closed-tps", ProjectController.GetClosedTPs)

		apiRouter.POST("/jobs/sync", jobController.TriggerSync)
		apiRouter.POST("/jobs/verify-jira", jobController.TriggerJiraVerification)
		apiRouter.POST("/jobs/calculate-completion", jobController.TriggerCompletion)
	}
}
