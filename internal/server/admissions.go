package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	admissiondomain "github.com/shuaibahmad12/mirai/internal/admission/domain"
	"github.com/shuaibahmad12/mirai/internal/feeline"
)

type previewAdmissionRequest struct {
	CollegeID string `json:"college_id"`
	SessionID string `json:"session_id"`
}

func (s *Server) PreviewAdmission(c *gin.Context) {
	var req previewAdmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	code, err := s.admissionSvc.Preview(c.Request.Context(), admissiondomain.PreviewRequest{
		CollegeID: req.CollegeID,
		SessionID: req.SessionID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"enrollment_code": code})
}

type issueStudentInput struct {
	Name         string         `json:"name"`
	FatherName   string         `json:"father_name"`
	MotherName   string         `json:"mother_name"`
	DateOfBirth  *time.Time     `json:"date_of_birth"`
	Phone        string         `json:"phone"`
	Email        string         `json:"email"`
	Address      string         `json:"address"`
	AcademicInfo map[string]any `json:"academic_info"`
}

type issueDocumentInput struct {
	DocType   string `json:"doc_type"`
	DocNumber string `json:"doc_number"`
}

type issueAdjustmentInput struct {
	FeePlanItemID string          `json:"fee_plan_item_id"`
	YearNumber    int             `json:"year_number"`
	Amount        decimal.Decimal `json:"amount"`
}

type issueAdmissionRequest struct {
	CollegeID       string                 `json:"college_id"`
	CourseID        string                 `json:"course_id"`
	SessionID       string                 `json:"session_id"`
	FeePlanID       string                 `json:"fee_plan_id"`
	AgentID         string                 `json:"agent_id"`
	EntryType       string                 `json:"entry_type"`
	Student         issueStudentInput      `json:"student"`
	Documents       []issueDocumentInput   `json:"documents"`
	JoiningDate     *time.Time             `json:"joining_date"`
	AgentPaidChoice string                 `json:"agent_paid_choice"`
	AgentPaidRemark string                 `json:"agent_paid_remark"`
	Adjustments     []issueAdjustmentInput `json:"adjustments"`
}

func (s *Server) IssueAdmission(c *gin.Context) {
	var req issueAdmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	issueReq := admissiondomain.IssueRequest{
		CollegeID: req.CollegeID,
		CourseID:  req.CourseID,
		SessionID: req.SessionID,
		FeePlanID: req.FeePlanID,
		AgentID:   req.AgentID,
		EntryType: req.EntryType,
		Student: admissiondomain.StudentInput{
			Name:         req.Student.Name,
			FatherName:   req.Student.FatherName,
			MotherName:   req.Student.MotherName,
			DateOfBirth:  req.Student.DateOfBirth,
			Phone:        req.Student.Phone,
			Email:        req.Student.Email,
			Address:      req.Student.Address,
			AcademicInfo: req.Student.AcademicInfo,
		},
		JoiningDate:     req.JoiningDate,
		AgentPaidChoice: req.AgentPaidChoice,
		AgentPaidRemark: req.AgentPaidRemark,
	}
	for _, doc := range req.Documents {
		issueReq.Documents = append(issueReq.Documents, admissiondomain.DocumentInput{
			DocType:   doc.DocType,
			DocNumber: doc.DocNumber,
		})
	}
	for _, adj := range req.Adjustments {
		issueReq.Adjustments = append(issueReq.Adjustments, admissiondomain.LineAdjustmentInput{
			FeePlanItemID: adj.FeePlanItemID,
			YearNumber:    adj.YearNumber,
			Amount:        adj.Amount,
		})
	}

	result, err := s.admissionSvc.Issue(c.Request.Context(), issueReq)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.AdmissionsIssued.Inc()

	c.JSON(http.StatusOK, gin.H{
		"student_id":      result.StudentID.String(),
		"enrollment_id":   result.EnrollmentID.String(),
		"enrollment_code": result.EnrollmentCode,
	})
}

type recomputeDraftRequest struct {
	EntryType string         `json:"entry_type"`
	Lines     []feeline.Line `json:"lines"`
}

// RecomputeAdmissionDraft re-derives an unsaved admission form's fee
// lines after the entry-type toggle. Nothing is persisted.
func (s *Server) RecomputeAdmissionDraft(c *gin.Context) {
	var req recomputeDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	entryType := feeline.EntryType(req.EntryType)
	if entryType != feeline.EntryRegular && entryType != feeline.EntryLateral {
		AbortWithError(c, newValidationError("entry_type", "invalid_entry_type", "expected regular or lateral"))
		return
	}

	lines, err := feeline.RecomputeDraft(req.Lines, entryType)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	feeline.SortForDisplay(lines)
	c.JSON(http.StatusOK, gin.H{"lines": lines})
}
