package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	catalogdomain "github.com/shuaibahmad12/mirai/internal/feecatalog/domain"
)

const componentCacheKey = "fee-components"

type createComponentRequest struct {
	Code      string `json:"code"`
	Label     string `json:"label"`
	Frequency string `json:"frequency"`
}

func (s *Server) CreateFeeComponent(c *gin.Context) {
	var req createComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	component, err := s.catalogSvc.CreateComponent(c.Request.Context(), catalogdomain.CreateComponentRequest{
		Code:      req.Code,
		Label:     req.Label,
		Frequency: req.Frequency,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.componentCache.Delete(componentCacheKey)
	c.JSON(http.StatusOK, gin.H{"data": component})
}

func (s *Server) ListFeeComponents(c *gin.Context) {
	if components, ok := s.componentCache.Get(componentCacheKey); ok {
		c.JSON(http.StatusOK, gin.H{"data": components})
		return
	}

	components, err := s.catalogSvc.ListComponents(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.componentCache.Set(componentCacheKey, components)
	c.JSON(http.StatusOK, gin.H{"data": components})
}

type updateComponentRequest struct {
	Label     *string `json:"label"`
	Frequency *string `json:"frequency"`
}

func (s *Server) UpdateFeeComponent(c *gin.Context) {
	var req updateComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	component, err := s.catalogSvc.UpdateComponent(c.Request.Context(), catalogdomain.UpdateComponentRequest{
		ID:        c.Param("id"),
		Label:     req.Label,
		Frequency: req.Frequency,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.componentCache.Delete(componentCacheKey)
	c.JSON(http.StatusOK, gin.H{"data": component})
}

func (s *Server) DeleteFeeComponent(c *gin.Context) {
	if err := s.catalogSvc.DeleteComponent(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	s.componentCache.Delete(componentCacheKey)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

type createPlanRequest struct {
	CourseID  string `json:"course_id"`
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
	Currency  string `json:"currency"`
}

func (s *Server) CreateFeePlan(c *gin.Context) {
	var req createPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	plan, err := s.catalogSvc.CreatePlan(c.Request.Context(), catalogdomain.CreatePlanRequest{
		CourseID:  req.CourseID,
		SessionID: req.SessionID,
		Name:      req.Name,
		Currency:  req.Currency,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": plan})
}

func (s *Server) ListFeePlans(c *gin.Context) {
	plans, err := s.catalogSvc.ListPlans(c.Request.Context(), c.Query("course_id"), c.Query("session_id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": plans})
}

func (s *Server) GetFeePlan(c *gin.Context) {
	plan, err := s.catalogSvc.GetPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": plan})
}

type updatePlanRequest struct {
	Name   *string `json:"name"`
	Status *string `json:"status"`
}

func (s *Server) UpdateFeePlan(c *gin.Context) {
	var req updatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	plan, err := s.catalogSvc.UpdatePlan(c.Request.Context(), catalogdomain.UpdatePlanRequest{
		ID:     c.Param("id"),
		Name:   req.Name,
		Status: req.Status,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": plan})
}

type addPlanItemRequest struct {
	ComponentID      string          `json:"component_id"`
	YearNumber       *int            `json:"year_number"`
	IsAdmissionPhase bool            `json:"is_admission_phase"`
	Amount           decimal.Decimal `json:"amount"`
	Notes            string          `json:"notes"`
}

func (s *Server) AddFeePlanItem(c *gin.Context) {
	var req addPlanItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.catalogSvc.AddPlanItem(c.Request.Context(), catalogdomain.AddPlanItemRequest{
		FeePlanID:        c.Param("id"),
		ComponentID:      req.ComponentID,
		YearNumber:       req.YearNumber,
		IsAdmissionPhase: req.IsAdmissionPhase,
		Amount:           req.Amount,
		Notes:            req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": item})
}

type updatePlanItemRequest struct {
	Amount *decimal.Decimal `json:"amount"`
	Notes  *string          `json:"notes"`
}

func (s *Server) UpdateFeePlanItem(c *gin.Context) {
	var req updatePlanItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.catalogSvc.UpdatePlanItem(c.Request.Context(), catalogdomain.UpdatePlanItemRequest{
		ItemID: c.Param("id"),
		Amount: req.Amount,
		Notes:  req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) RemoveFeePlanItem(c *gin.Context) {
	if err := s.catalogSvc.RemovePlanItem(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
