package handlers

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/adapter/http/middleware"
	"tasktracker/internal/core/ports"
)

const (
	StatusOk          = "ok"
	StatusDown        = "down"
	healthListTimeout = 2 * time.Second
)

type HealthBasic struct {
	AppName           string `json:"app_name"`
	AppVersion        string `json:"app_version"`
	CurrentSystemTime string `json:"current_system_time"`
	Message           string `json:"message"`
}

type HealthServices struct {
	TaskStore string `json:"task_store"`
}

type HealthAdvanced struct {
	AppName           string         `json:"app_name"`
	AppVersion        string         `json:"app_version"`
	CurrentSystemTime string         `json:"current_system_time"`
	Language          string         `json:"language"`
	TaskCount         int            `json:"task_count"`
	Status            HealthServices `json:"status"`
}

type HealthHandler struct {
	repo ports.TaskRepository
}

func NewHealthHandler(repo ports.TaskRepository) *HealthHandler {
	return &HealthHandler{repo: repo}
}

func (h *HealthHandler) CheckHealth(c *gin.Context) {
	ctx := c.Request.Context()
	statusCode := 200
	message := StatusOk

	if _, ok := h.checkTaskStore(ctx); !ok {
		statusCode = 500
		message = StatusDown
	}

	c.JSON(statusCode, HealthBasic{
		AppName:           os.Getenv("APP_NAME"),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format("2006-01-02 15:04:05"),
		Message:           message,
	})
}

func (h *HealthHandler) CheckHealthReport(c *gin.Context) {
	ctx := c.Request.Context()

	storeStatus := StatusDown
	count, ok := h.checkTaskStore(ctx)
	if ok {
		storeStatus = StatusOk
	}

	c.JSON(200, HealthAdvanced{
		AppName:           os.Getenv("APP_NAME"),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format("2006-01-02 15:04:05"),
		Language:          middleware.GetLang(c),
		TaskCount:         count,
		Status: HealthServices{
			TaskStore: storeStatus,
		},
	})
}

func (h *HealthHandler) checkTaskStore(ctx context.Context) (int, bool) {
	if h.repo == nil {
		return 0, false
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, healthListTimeout)
	defer cancel()
	tasks, err := h.repo.List(timeoutCtx)
	if err != nil {
		return 0, false
	}
	return len(tasks), true
}

func getAppVersion() string {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		return "dev"
	}
	return version
}
