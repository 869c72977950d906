package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/renderguard/renderguard/internal/app"
	"github.com/renderguard/renderguard/internal/blueprint"
	"github.com/renderguard/renderguard/internal/infrastructure/config"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	appManager *app.Manager
	mode       config.Mode
}

// NewHandlers creates a new handler set
func NewHandlers(appManager *app.Manager, mode config.Mode) *Handlers {
	return &Handlers{
		appManager: appManager,
		mode:       mode,
	}
}

// Root handles the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "renderguard",
		"mode":    string(h.mode),
		"version": "0.3.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"apps":   h.appManager.Stats(),
	})
}

// ListApps lists all running apps
func (h *Handlers) ListApps(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"apps":  h.appManager.List(),
		"stats": h.appManager.Stats(),
	})
}

// SpawnApp parses a blueprint from the request body and spawns it
func (h *Handlers) SpawnApp(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "blueprint body is required"})
		return
	}

	bp, err := blueprint.NewParser().Parse(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inst, err := h.appManager.Spawn(bp)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"app": inst})
}

// GetApp returns one app snapshot
func (h *Handlers) GetApp(c *gin.Context) {
	inst, ok := h.appManager.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "app not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"app": inst})
}

// RenderApp renders an app through its boundary. The response carries the
// protected tree while healthy and the recovery surface after a fault; the
// status code stays 200 either way because the fault was contained.
func (h *Handlers) RenderApp(c *gin.Context) {
	id := c.Param("id")
	node, err := h.appManager.Render(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	inst, _ := h.appManager.Get(id)
	c.JSON(http.StatusOK, gin.H{
		"app":  inst,
		"view": node,
	})
}

// ResetApp re-arms an app's boundary ("Try Again")
func (h *Handlers) ResetApp(c *gin.Context) {
	if err := h.appManager.Reset(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

// ReloadApp requests a host reload for an app ("Reload Page")
func (h *Handlers) ReloadApp(c *gin.Context) {
	if err := h.appManager.Reload(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reloading"})
}

// CloseApp destroys an app instance
func (h *Handlers) CloseApp(c *gin.Context) {
	if !h.appManager.Close(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "app not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "closed"})
}
