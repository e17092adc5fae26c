package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	collegedomain "github.com/shuaibahmad12/mirai/internal/college/domain"
)

type createCollegeRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

func (s *Server) CreateCollege(c *gin.Context) {
	var req createCollegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	college, err := s.collegeSvc.Create(c.Request.Context(), collegedomain.CreateCollegeRequest{
		Code:    req.Code,
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": college})
}

func (s *Server) ListColleges(c *gin.Context) {
	colleges, err := s.collegeSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": colleges})
}

func (s *Server) GetCollege(c *gin.Context) {
	college, err := s.collegeSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": college})
}

type updateCollegeRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Status  *string `json:"status"`
}

func (s *Server) UpdateCollege(c *gin.Context) {
	var req updateCollegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	college, err := s.collegeSvc.Update(c.Request.Context(), collegedomain.UpdateCollegeRequest{
		ID:      c.Param("id"),
		Name:    req.Name,
		Address: req.Address,
		Status:  req.Status,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": college})
}
