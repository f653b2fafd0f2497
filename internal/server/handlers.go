package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ppiankov/cognitia/internal/conversation"
	"github.com/ppiankov/cognitia/internal/model"
)

const debateGateMessage = "Cannot generate debate without a previous answer."

func (s *Server) registerRoutes(engine *gin.Engine) {
	engine.GET("/health", s.handleHealth)
	engine.POST("/prepare", s.handlePrepare)
	engine.POST("/query", s.handleQuery)
	engine.POST("/debate", s.handleDebate)
	engine.POST("/reset", s.handleReset)
	engine.GET("/history", s.handleHistory)
}

type prepareRequest struct {
	Topic string `json:"topic"`
}

type queryRequest struct {
	Question string `json:"question" binding:"required"`
	Debate   bool   `json:"debate"`
}

type debatePayload struct {
	Support    string `json:"support,omitempty"`
	Counter    string `json:"counter,omitempty"`
	Reflection string `json:"reflection,omitempty"`
	Status     string `json:"status"`
	Raw        string `json:"raw,omitempty"`
}

func toDebatePayload(result model.DebateResult) debatePayload {
	payload := debatePayload{
		Support:    result.Support,
		Counter:    result.Counter,
		Reflection: result.Reflection,
		Status:     string(result.Status),
	}
	if result.Status != model.DebateOK {
		payload.Raw = result.Raw
	}
	return payload
}

func (s *Server) handleHealth(c *gin.Context) {
	indexed, err := s.pipeline.IndexedChunks(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "indexed": indexed})
}

func (s *Server) handlePrepare(c *gin.Context) {
	var req prepareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	result, err := s.pipeline.Prepare(c.Request.Context(), req.Topic)
	if err != nil {
		s.logger.WithField("error", err).Error("prepare failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"processed": result.Processed,
		"skipped":   result.Skipped,
		"indexed":   result.Indexed,
	})
}

func (s *Server) handleQuery(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if req.Debate {
		result, message, err := s.pipeline.Debate(c.Request.Context())
		if err != nil {
			if errors.Is(err, conversation.ErrNoAssistantTurn) {
				c.JSON(http.StatusBadRequest, gin.H{"detail": debateGateMessage})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"answer": message,
			"debate": toDebatePayload(result),
		})
		return
	}

	answer := s.pipeline.Answer(c.Request.Context(), req.Question)
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

func (s *Server) handleDebate(c *gin.Context) {
	result, message, err := s.pipeline.Debate(c.Request.Context())
	if err != nil {
		if errors.Is(err, conversation.ErrNoAssistantTurn) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": debateGateMessage})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"debate":  toDebatePayload(result),
		"message": message,
	})
}

func (s *Server) handleReset(c *gin.Context) {
	s.pipeline.Reset()
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

func (s *Server) handleHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"history": s.pipeline.History()})
}
