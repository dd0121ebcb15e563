// Package httpapi serves the task list as a local web page backed by a JSON API.
package httpapi

import (
	"context"
	_ "embed"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"ltodo/internal/store"
	"ltodo/internal/task"
)

// ShutdownTimeout bounds graceful shutdown after the context is cancelled.
const ShutdownTimeout = 5 * time.Second

//go:embed static/index.html
var indexHTML []byte

// AddRequest is the body of POST /api/tasks.
type AddRequest struct {
	Text    string `json:"text"`
	DueDate string `json:"dueDate"`
}

// Handler exposes a store over HTTP. Requests are serialized so the store
// keeps a single mutator.
type Handler struct {
	mu     sync.Mutex
	st     *store.Store
	logger *log.Logger
	loc    *time.Location
}

// NewHandler creates a handler for st.
func NewHandler(st *store.Store, logger *log.Logger) *Handler {
	return &Handler{st: st, logger: logger, loc: time.Local}
}

// Router builds the gin engine with all routes registered.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), h.requestLog)

	r.GET("/", h.Index)
	api := r.Group("/api/tasks")
	api.GET("", h.List)
	api.POST("", h.Add)
	api.POST("/:id/toggle", h.Toggle)
	api.DELETE("/:id", h.Delete)
	return r
}

// Index serves the single page UI.
func (h *Handler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

// List returns the task list.
func (h *Handler) List(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.respond(c)
}

// Add creates a task. Whitespace-only text leaves the list unchanged.
func (h *Handler) Add(c *gin.Context) {
	var req AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var due string
	if strings.TrimSpace(req.DueDate) != "" {
		var err error
		due, err = task.ParseDue(req.DueDate, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, _, err := h.st.Add(c.Request.Context(), req.Text, due); err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c)
}

// Toggle flips the completed flag of a task.
func (h *Handler) Toggle(c *gin.Context) {
	h.mutate(c, h.st.Toggle)
}

// Delete removes a task.
func (h *Handler) Delete(c *gin.Context) {
	h.mutate(c, h.st.Delete)
}

func (h *Handler) mutate(c *gin.Context, apply func(context.Context, int64) error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := apply(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c)
}

// respond must be called with h.mu held.
func (h *Handler) respond(c *gin.Context) {
	c.JSON(http.StatusOK, h.st.Tasks())
}

func (h *Handler) fail(c *gin.Context, err error) {
	h.logger.Error("save tasks", "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save tasks"})
}

func (h *Handler) requestLog(c *gin.Context) {
	start := time.Now()
	c.Next()
	h.logger.Debug("request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"took", time.Since(start))
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, h *Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}
