package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	adjustmentdomain "github.com/shuaibahmad12/mirai/internal/adjustment/domain"
	overridedomain "github.com/shuaibahmad12/mirai/internal/override/domain"
	receiptdomain "github.com/shuaibahmad12/mirai/internal/receipt/domain"
)

type applyOverrideRequest struct {
	FeePlanItemID string          `json:"fee_plan_item_id"`
	YearNumber    int             `json:"year_number"`
	NewAmount     decimal.Decimal `json:"new_amount"`
	Reason        string          `json:"reason"`
}

func (s *Server) ApplyFeeOverride(c *gin.Context) {
	var req applyOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	override, err := s.overrideSvc.Apply(c.Request.Context(), c.Param("id"), overridedomain.ApplyOverrideRequest{
		FeePlanItemID: req.FeePlanItemID,
		YearNumber:    req.YearNumber,
		NewAmount:     req.NewAmount,
		Reason:        req.Reason,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.OverridesApplied.Inc()
	c.JSON(http.StatusOK, gin.H{"data": override})
}

func (s *Server) ListFeeOverrides(c *gin.Context) {
	overrides, err := s.overrideSvc.ListByStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"overrides": overrides})
}

type createAdjustmentRequest struct {
	AdjustmentType   string          `json:"adjustment_type"`
	Amount           decimal.Decimal `json:"amount"`
	Title            string          `json:"title"`
	Reason           string          `json:"reason"`
	FeeComponentCode string          `json:"fee_component_code"`
	EffectiveDate    *time.Time      `json:"effective_date"`
}

func (s *Server) CreateFeeAdjustment(c *gin.Context) {
	var req createAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	effectiveDate := time.Now().UTC()
	if req.EffectiveDate != nil {
		effectiveDate = *req.EffectiveDate
	}

	adjustment, err := s.adjustmentSvc.Create(c.Request.Context(), adjustmentdomain.CreateAdjustmentRequest{
		StudentID:        c.Param("id"),
		AdjustmentType:   req.AdjustmentType,
		Amount:           req.Amount,
		Title:            req.Title,
		Reason:           req.Reason,
		FeeComponentCode: req.FeeComponentCode,
		EffectiveDate:    effectiveDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.AdjustmentsCreated.WithLabelValues(string(adjustment.AdjustmentType)).Inc()
	c.JSON(http.StatusOK, gin.H{"data": adjustment})
}

type cancelAdjustmentRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) CancelFeeAdjustment(c *gin.Context) {
	var req cancelAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	adjustment, err := s.adjustmentSvc.Cancel(c.Request.Context(), adjustmentdomain.CancelAdjustmentRequest{
		StudentID:          c.Param("id"),
		AdjustmentID:       c.Param("adjId"),
		CancellationReason: req.Reason,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.AdjustmentsCanceled.Inc()
	c.JSON(http.StatusOK, gin.H{"data": adjustment})
}

func (s *Server) ListFeeAdjustments(c *gin.Context) {
	adjustments, err := s.adjustmentSvc.ListByStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": adjustments})
}

func (s *Server) GetFeeSummary(c *gin.Context) {
	summary, err := s.studentSvc.FeeSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": summary})
}

type receiptAllocationInput struct {
	FeePlanItemID string          `json:"fee_plan_item_id"`
	YearNumber    int             `json:"year_number"`
	ComponentCode string          `json:"component_code"`
	Amount        decimal.Decimal `json:"amount"`
}

type createReceiptRequest struct {
	EnrollmentID string                   `json:"enrollment_id"`
	Method       string                   `json:"method"`
	Remarks      string                   `json:"remarks"`
	PaidAt       *time.Time               `json:"paid_at"`
	Allocations  []receiptAllocationInput `json:"allocations"`
}

func (s *Server) CreateFeeReceipt(c *gin.Context) {
	var req createReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	paidAt := time.Now().UTC()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}

	createReq := receiptdomain.CreateReceiptRequest{
		StudentID:    c.Param("id"),
		EnrollmentID: req.EnrollmentID,
		Method:       req.Method,
		Remarks:      req.Remarks,
		PaidAt:       paidAt,
	}
	for _, alloc := range req.Allocations {
		createReq.Allocations = append(createReq.Allocations, receiptdomain.AllocationInput{
			FeePlanItemID: alloc.FeePlanItemID,
			YearNumber:    alloc.YearNumber,
			ComponentCode: alloc.ComponentCode,
			Amount:        alloc.Amount,
		})
	}

	receipt, err := s.receiptSvc.Create(c.Request.Context(), createReq)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.ReceiptsCreated.Inc()
	c.JSON(http.StatusOK, gin.H{"data": receipt})
}

func (s *Server) ListFeeReceipts(c *gin.Context) {
	receipts, err := s.receiptSvc.ListByStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": receipts})
}
