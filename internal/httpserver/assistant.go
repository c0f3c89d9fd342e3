package httpserver

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pharmacare/showcase/internal/assistant"
)

func (s *Server) handleAssistantQuery(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	s.reply(c, assistant.Query{Text: req.Text, Source: assistant.SourceTyped})
}

func (s *Server) handleAssistantImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing image form field"})
		return
	}
	if file.Size > s.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, s.maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
		return
	}

	s.reply(c, assistant.Query{Image: data, Source: assistant.SourceUpload})
}

func (s *Server) reply(c *gin.Context, q assistant.Query) {
	resp, err := s.bot.SubmitQuery(c.Request.Context(), q)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": resp.Message})
	case errors.Is(err, assistant.ErrEmptyQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": "text must not be empty"})
	case errors.Is(err, assistant.ErrNotImage):
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": assistant.MsgNotImage})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "request cancelled"})
	default:
		s.log.Error().Err(err).Str("source", q.Source.String()).Msg("Assistant query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": assistant.MsgProcessingError})
	}
}
