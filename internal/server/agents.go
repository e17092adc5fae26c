package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	agentdomain "github.com/shuaibahmad12/mirai/internal/agent/domain"
)

type createAgentRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

func (s *Server) CreateAgent(c *gin.Context) {
	var req createAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	agent, err := s.agentSvc.Create(c.Request.Context(), agentdomain.CreateAgentRequest{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": agent})
}

func (s *Server) ListAgents(c *gin.Context) {
	agents, err := s.agentSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": agents})
}

func (s *Server) GetAgent(c *gin.Context) {
	agent, err := s.agentSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": agent})
}
