package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	coursedomain "github.com/shuaibahmad12/mirai/internal/course/domain"
)

type createCourseRequest struct {
	CollegeID     string `json:"college_id"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	DurationYears int    `json:"duration_years"`
}

func (s *Server) CreateCourse(c *gin.Context) {
	var req createCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	course, err := s.courseSvc.Create(c.Request.Context(), coursedomain.CreateCourseRequest{
		CollegeID:     req.CollegeID,
		Code:          req.Code,
		Name:          req.Name,
		DurationYears: req.DurationYears,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": course})
}

func (s *Server) ListCourses(c *gin.Context) {
	courses, err := s.courseSvc.ListByCollege(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": courses})
}

func (s *Server) GetCourse(c *gin.Context) {
	course, err := s.courseSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": course})
}

type updateCourseRequest struct {
	Name          *string `json:"name"`
	DurationYears *int    `json:"duration_years"`
	Status        *string `json:"status"`
}

func (s *Server) UpdateCourse(c *gin.Context) {
	var req updateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	course, err := s.courseSvc.Update(c.Request.Context(), coursedomain.UpdateCourseRequest{
		ID:            c.Param("id"),
		Name:          req.Name,
		DurationYears: req.DurationYears,
		Status:        req.Status,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": course})
}
