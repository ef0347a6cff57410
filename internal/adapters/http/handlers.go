package httpadapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"svw.info/powerline/internal/domain"
	"svw.info/powerline/internal/usecase"
)

type Handler struct {
	UC *usecase.Service
	// HintDepth is used when a hint request names no depth.
	HintDepth int
	// MaxHintDepth bounds ?depth=. Search cost grows as branching^depth.
	MaxHintDepth int
}

func New(uc *usecase.Service, hintDepth, maxHintDepth int) *Handler {
	return &Handler{UC: uc, HintDepth: hintDepth, MaxHintDepth: maxHintDepth}
}

// Register mounts the API under /api.
func (h *Handler) Register(r gin.IRouter) {
	api := r.Group("/api")
	{
		api.GET("/levels", h.handleLevels)
		api.GET("/levels/:id", h.handleLevel)
		api.POST("/validate", h.handleValidate)

		sessions := api.Group("/sessions")
		sessions.POST("", h.handleCreate)
		sessions.GET("/:id", h.handleState)
		sessions.DELETE("/:id", h.handleDelete)
		sessions.POST("/:id/move", h.handleMove)
		sessions.POST("/:id/undo", h.handleUndo)
		sessions.POST("/:id/restart", h.handleRestart)
		sessions.POST("/:id/next", h.handleNext)
		sessions.POST("/:id/load", h.handleLoad)
		sessions.GET("/:id/hint", h.handleHint)
	}
}

type errorResp struct {
	Error string `json:"error"`
}

// statusFor maps service errors to HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrSessionNotFound), errors.Is(err, usecase.ErrUnknownLevel):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrTooManySessions):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), errorResp{Error: err.Error()})
}

// ---- Levels ----

type levelsResp struct {
	Levels []domain.LevelMeta `json:"levels"`
	Total  int                `json:"total"`
}

func (h *Handler) handleLevels(c *gin.Context) {
	levels, err := h.UC.Levels(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, levelsResp{Levels: levels, Total: len(levels)})
}

func (h *Handler) handleLevel(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResp{Error: "invalid level id"})
		return
	}
	lvl, err := h.UC.Level(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, lvl)
}

// ---- Validate ----

type validateReq struct {
	Conduits []domain.Conduit `json:"conduits"`
}

type validateResp struct {
	Complete bool  `json:"complete"`
	Mixed    []int `json:"mixed"`
}

func (h *Handler) handleValidate(c *gin.Context) {
	var req validateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	ok, mixed, err := h.UC.Validate(c.Request.Context(), req.Conduits)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, validateResp{Complete: ok, Mixed: mixed})
}

// ---- Sessions ----

type levelReq struct {
	Level int `json:"level"`
}

type createResp struct {
	ID    string          `json:"id"`
	State domain.Snapshot `json:"state"`
}

func (h *Handler) handleCreate(c *gin.Context) {
	req := levelReq{Level: 1}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResp{Error: "invalid JSON: " + err.Error()})
			return
		}
	}
	id, snap, err := h.UC.Create(c.Request.Context(), req.Level)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, createResp{ID: id, State: snap})
}

func (h *Handler) handleState(c *gin.Context) {
	snap, err := h.UC.State(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *Handler) handleDelete(c *gin.Context) {
	if err := h.UC.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type moveReq struct {
	From *int `json:"from" binding:"required"`
	To   *int `json:"to" binding:"required"`
}

type moveResp struct {
	Moved    bool                  `json:"moved"`
	State    domain.Snapshot       `json:"state"`
	Complete *domain.LevelComplete `json:"complete,omitempty"`
}

func (h *Handler) handleMove(c *gin.Context) {
	var req moveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	res, err := h.UC.Move(c.Request.Context(), c.Param("id"), *req.From, *req.To)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, moveResp{Moved: res.Moved, State: res.State, Complete: res.Complete})
}

type undoResp struct {
	Undone bool            `json:"undone"`
	State  domain.Snapshot `json:"state"`
}

func (h *Handler) handleUndo(c *gin.Context) {
	undone, snap, err := h.UC.Undo(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, undoResp{Undone: undone, State: snap})
}

type stateResp struct {
	State domain.Snapshot `json:"state"`
}

func (h *Handler) handleRestart(c *gin.Context) {
	snap, err := h.UC.Restart(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stateResp{State: snap})
}

type loadResp struct {
	Loaded   bool                  `json:"loaded"`
	State    domain.Snapshot       `json:"state"`
	Complete *domain.LevelComplete `json:"complete,omitempty"`
}

func (h *Handler) handleNext(c *gin.Context) {
	loaded, snap, done, err := h.UC.Next(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, loadResp{Loaded: loaded, State: snap, Complete: done})
}

func (h *Handler) handleLoad(c *gin.Context) {
	var req levelReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	loaded, snap, done, err := h.UC.Load(c.Request.Context(), c.Param("id"), req.Level)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, loadResp{Loaded: loaded, State: snap, Complete: done})
}

// ---- Hint ----

type hintResp struct {
	Found      bool             `json:"found"`
	Hint       *domain.HintMove `json:"hint,omitempty"`
	Depth      int              `json:"depth"`
	Nodes      int              `json:"nodes"`
	DurationMs int64            `json:"durationMs"`
}

func (h *Handler) handleHint(c *gin.Context) {
	depth := h.HintDepth
	if raw := c.Query("depth"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d < 0 || d > h.MaxHintDepth {
			c.JSON(http.StatusBadRequest, errorResp{Error: fmt.Sprintf("depth must be an integer between 0 and %d", h.MaxHintDepth)})
			return
		}
		depth = d
	}
	mv, found, st, err := h.UC.Hint(c.Request.Context(), c.Param("id"), depth)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			c.JSON(http.StatusServiceUnavailable, errorResp{Error: "hint search did not finish: " + err.Error()})
			return
		}
		fail(c, err)
		return
	}
	resp := hintResp{Found: found, Depth: depth, Nodes: st.Nodes, DurationMs: st.Duration.Milliseconds()}
	if found {
		resp.Hint = &mv
	}
	c.JSON(http.StatusOK, resp)
}
