package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	sessiondomain "github.com/shuaibahmad12/mirai/internal/academicsession/domain"
)

type createSessionRequest struct {
	Code      string `json:"code"`
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (s *Server) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	startDate, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		AbortWithError(c, newValidationError("start_date", "invalid_date", "expected RFC3339"))
		return
	}
	endDate, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		AbortWithError(c, newValidationError("end_date", "invalid_date", "expected RFC3339"))
		return
	}

	session, err := s.sessionSvc.Create(c.Request.Context(), sessiondomain.CreateSessionRequest{
		Code:      req.Code,
		Title:     req.Title,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": session})
}

func (s *Server) ListSessions(c *gin.Context) {
	sessions, err := s.sessionSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sessions})
}

func (s *Server) GetSession(c *gin.Context) {
	session, err := s.sessionSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": session})
}

type updateSessionRequest struct {
	Title  *string `json:"title"`
	Status *string `json:"status"`
}

func (s *Server) UpdateSession(c *gin.Context) {
	var req updateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	session, err := s.sessionSvc.Update(c.Request.Context(), sessiondomain.UpdateSessionRequest{
		ID:     c.Param("id"),
		Title:  req.Title,
		Status: req.Status,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": session})
}
