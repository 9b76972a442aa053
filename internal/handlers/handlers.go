// Package handlers exposes the application services over a REST API.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jewelmj/splitsmart/internal/apperrors"
	"github.com/jewelmj/splitsmart/internal/middleware"
	"github.com/jewelmj/splitsmart/internal/service"
)

// NewRouter builds the gin engine with all routes and middleware wired.
func NewRouter(users *service.UserService, groups *service.GroupService) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())
	router.Use(cors.Default())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	uh := &userHandler{users: users}
	gh := &groupHandler{groups: groups}

	api := router.Group("/api/v1")
	{
		api.POST("/users", uh.createUser)
		api.GET("/users", uh.listUsers)
		api.GET("/users/:id", uh.getUser)

		api.POST("/groups", gh.createGroup)
		api.GET("/groups", gh.listGroups)
		api.GET("/groups/:id", gh.getGroup)
		api.POST("/groups/:id/members", gh.addMembers)
		api.POST("/groups/:id/expenses", gh.addExpense)
		api.GET("/groups/:id/debts", gh.debts)
		api.GET("/groups/:id/balances", gh.balances)
		api.POST("/groups/:id/settlements", gh.settleUp)
		api.GET("/groups/:id/summary", gh.summary)
	}

	return router
}

// writeError maps application errors onto HTTP status codes.
func writeError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrInvalidSplit),
		errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrInconsistentLedger):
		status = http.StatusUnprocessableEntity
	default:
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
