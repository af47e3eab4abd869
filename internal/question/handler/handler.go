package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/questionboard/questionboard/internal/question"
	"github.com/questionboard/questionboard/internal/question/service"
	"github.com/questionboard/questionboard/pkg/logger"
)

// RegisterQuestionRoutes mounts the question API. Creating a question is
// public; everything else runs behind requireSession.
func RegisterQuestionRoutes(r gin.IRouter, svc *service.Service, requireSession gin.HandlerFunc) {
	h := &questionHandler{svc: svc}
	r.POST("/api/questions", h.create)
	r.GET("/api/questions", requireSession, h.list)
	r.GET("/api/questions/:id", requireSession, h.get)
	r.PATCH("/api/questions/:id", requireSession, h.updateStatus)
	r.DELETE("/api/questions/:id", requireSession, h.delete)
}

type questionHandler struct {
	svc *service.Service
}

func (h *questionHandler) create(c *gin.Context) {
	var req struct {
		Content *string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Question content is required"})
		return
	}
	q, err := h.svc.Submit(c.Request.Context(), *req.Content)
	if err != nil {
		if errors.Is(err, question.ErrInvalidContent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Question must be between 2 and 1000 characters"})
			return
		}
		logger.Errorf("submit question: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit question"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Question submitted successfully", "question": q})
}

func (h *questionHandler) list(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		if errors.Is(err, question.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
			return
		}
		logger.Errorf("list questions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions"})
		return
	}
	if list == nil {
		list = []*question.Question{}
	}
	c.JSON(http.StatusOK, gin.H{"questions": list})
}

func (h *questionHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	q, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, question.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
			return
		}
		logger.Errorf("get question %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch question"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"question": q})
}

func (h *questionHandler) updateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
		return
	}
	q, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Question updated successfully", "question": q})
	case errors.Is(err, question.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
	case errors.Is(err, question.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
	default:
		logger.Errorf("update question %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update question"})
	}
}

// delete reports every store failure, a missing id included, as 500.
func (h *questionHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if !errors.Is(err, question.ErrNotFound) {
			logger.Errorf("delete question %d: %v", id, err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete question"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully"})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := service.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return 0, false
	}
	return id, true
}
