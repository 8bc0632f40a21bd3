package handlers

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts all API routes on the given router.
func RegisterRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	{
		streamRoutes := v1.Group("/streams")
		{
			streamRoutes.GET("", ListStreams)
			streamRoutes.GET("/:system_id", GetStream)
			streamRoutes.POST("/:system_id/submissions", UploadSubmission)
		}

		submissionRoutes := v1.Group("/submissions")
		{
			submissionRoutes.GET("", ListSubmissions)
			submissionRoutes.GET("/:id", GetSubmission)
		}

		v1.GET("/status", GetStreamStatus)
		v1.GET("/jurisdictions", ListJurisdictions)
		v1.GET("/jurisdictions/:code", GetJurisdiction)

		adminRoutes := v1.Group("/admin")
		{
			adminRoutes.POST("/clear", ClearSubmissions)
		}
	}
}
