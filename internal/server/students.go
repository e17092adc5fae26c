package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	studentdomain "github.com/shuaibahmad12/mirai/internal/student/domain"
)

func (s *Server) ListStudents(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			AbortWithError(c, newValidationError("limit", "invalid_limit", "expected a positive integer"))
			return
		}
		limit = parsed
	}

	students, err := s.studentSvc.List(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": students})
}

func (s *Server) GetStudent(c *gin.Context) {
	profile, err := s.studentSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": profile})
}

type patchProfileRequest struct {
	Name        *string    `json:"name"`
	FatherName  *string    `json:"father_name"`
	MotherName  *string    `json:"mother_name"`
	DateOfBirth *time.Time `json:"date_of_birth"`
}

func (s *Server) PatchStudentProfile(c *gin.Context) {
	var req patchProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	student, err := s.studentSvc.UpdateProfile(c.Request.Context(), c.Param("id"), studentdomain.UpdateProfileRequest{
		Name:        req.Name,
		FatherName:  req.FatherName,
		MotherName:  req.MotherName,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": student})
}

type patchContactRequest struct {
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

func (s *Server) PatchStudentContact(c *gin.Context) {
	var req patchContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	student, err := s.studentSvc.UpdateContact(c.Request.Context(), c.Param("id"), studentdomain.UpdateContactRequest{
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": student})
}

type patchAcademicRequest struct {
	AcademicInfo map[string]any `json:"academic_info"`
}

func (s *Server) PatchStudentAcademic(c *gin.Context) {
	var req patchAcademicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	student, err := s.studentSvc.UpdateAcademic(c.Request.Context(), c.Param("id"), studentdomain.UpdateAcademicRequest{
		AcademicInfo: req.AcademicInfo,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": student})
}

type patchEnrollmentRequest struct {
	JoiningDate     *time.Time `json:"joining_date"`
	AgentPaidChoice *string    `json:"agent_paid_choice"`
	AgentPaidRemark *string    `json:"agent_paid_remark"`
	Status          *string    `json:"status"`
}

func (s *Server) PatchStudentEnrollment(c *gin.Context) {
	var req patchEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	enrollment, err := s.studentSvc.UpdateEnrollment(c.Request.Context(), c.Param("id"), studentdomain.UpdateEnrollmentRequest{
		JoiningDate:     req.JoiningDate,
		AgentPaidChoice: req.AgentPaidChoice,
		AgentPaidRemark: req.AgentPaidRemark,
		Status:          req.Status,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": enrollment})
}

type patchDocumentRequest struct {
	DocType   *string        `json:"doc_type"`
	DocNumber *string        `json:"doc_number"`
	Verified  *bool          `json:"verified"`
	Meta      map[string]any `json:"meta"`
}

func (s *Server) PatchStudentDocument(c *gin.Context) {
	var req patchDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	doc, err := s.studentSvc.UpdateDocument(c.Request.Context(), c.Param("id"), c.Param("docId"), studentdomain.UpdateDocumentRequest{
		DocType:   req.DocType,
		DocNumber: req.DocNumber,
		Verified:  req.Verified,
		Meta:      req.Meta,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": doc})
}

type patchInternalRefsRequest struct {
	Refs map[string]any `json:"refs"`
}

func (s *Server) PatchStudentInternalRefs(c *gin.Context) {
	var req patchInternalRefsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	student, err := s.studentSvc.UpdateInternalRefs(c.Request.Context(), c.Param("id"), studentdomain.UpdateInternalRefsRequest{
		Refs: req.Refs,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": student})
}

type patchSetOp struct {
	Target       string                    `json:"target"`
	DocumentID   string                    `json:"document_id"`
	Profile      *patchProfileRequest      `json:"profile"`
	Contact      *patchContactRequest      `json:"contact"`
	Academic     *patchAcademicRequest     `json:"academic"`
	Enrollment   *patchEnrollmentRequest   `json:"enrollment"`
	Document     *patchDocumentRequest     `json:"document"`
	InternalRefs *patchInternalRefsRequest `json:"internal_refs"`
}

type patchSetRequest struct {
	Ops []patchSetOp `json:"ops"`
}

func (s *Server) ApplyStudentPatchSet(c *gin.Context) {
	var req patchSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if len(req.Ops) == 0 {
		AbortWithError(c, newValidationError("ops", "empty_patch_set", "at least one op is required"))
		return
	}

	ops := make([]studentdomain.PatchOp, 0, len(req.Ops))
	for _, op := range req.Ops {
		domainOp := studentdomain.PatchOp{
			Target:     op.Target,
			DocumentID: op.DocumentID,
		}
		if op.Profile != nil {
			domainOp.Profile = &studentdomain.UpdateProfileRequest{
				Name:        op.Profile.Name,
				FatherName:  op.Profile.FatherName,
				MotherName:  op.Profile.MotherName,
				DateOfBirth: op.Profile.DateOfBirth,
			}
		}
		if op.Contact != nil {
			domainOp.Contact = &studentdomain.UpdateContactRequest{
				Phone:   op.Contact.Phone,
				Email:   op.Contact.Email,
				Address: op.Contact.Address,
			}
		}
		if op.Academic != nil {
			domainOp.Academic = &studentdomain.UpdateAcademicRequest{
				AcademicInfo: op.Academic.AcademicInfo,
			}
		}
		if op.Enrollment != nil {
			domainOp.Enrollment = &studentdomain.UpdateEnrollmentRequest{
				JoiningDate:     op.Enrollment.JoiningDate,
				AgentPaidChoice: op.Enrollment.AgentPaidChoice,
				AgentPaidRemark: op.Enrollment.AgentPaidRemark,
				Status:          op.Enrollment.Status,
			}
		}
		if op.Document != nil {
			domainOp.Document = &studentdomain.UpdateDocumentRequest{
				DocType:   op.Document.DocType,
				DocNumber: op.Document.DocNumber,
				Verified:  op.Document.Verified,
				Meta:      op.Document.Meta,
			}
		}
		if op.InternalRefs != nil {
			domainOp.InternalRefs = &studentdomain.UpdateInternalRefsRequest{
				Refs: op.InternalRefs.Refs,
			}
		}
		ops = append(ops, domainOp)
	}

	results, err := s.studentSvc.ApplyPatchSet(c.Request.Context(), c.Param("id"), ops)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
