package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	sessiondomain "github.com/shuaibahmad12/mirai/internal/academicsession/domain"
	admissiondomain "github.com/shuaibahmad12/mirai/internal/admission/domain"
	adjustmentdomain "github.com/shuaibahmad12/mirai/internal/adjustment/domain"
	agentdomain "github.com/shuaibahmad12/mirai/internal/agent/domain"
	collegedomain "github.com/shuaibahmad12/mirai/internal/college/domain"
	coursedomain "github.com/shuaibahmad12/mirai/internal/course/domain"
	catalogdomain "github.com/shuaibahmad12/mirai/internal/feecatalog/domain"
	"github.com/shuaibahmad12/mirai/internal/feeline"
	overridedomain "github.com/shuaibahmad12/mirai/internal/override/domain"
	receiptdomain "github.com/shuaibahmad12/mirai/internal/receipt/domain"
	studentdomain "github.com/shuaibahmad12/mirai/internal/student/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrConflict       = errors.New("conflict")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	// The override floor rejection carries the amounts the front office
	// relays verbatim.
	var floorErr *overridedomain.BelowPaidFloorError
	if errors.As(err, &floorErr) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: floorErr.Error(),
			Errors: []ValidationError{
				{
					Field:   "new_amount",
					Code:    "below_paid_floor",
					Message: floorErr.Error(),
				},
			},
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case errors.Is(err, feeline.ErrNegativeAdjustment):
		return true
	case errors.Is(err, collegedomain.ErrInvalidCode),
		errors.Is(err, collegedomain.ErrInvalidName),
		errors.Is(err, collegedomain.ErrInvalidID),
		errors.Is(err, collegedomain.ErrInvalidStatus):
		return true
	case errors.Is(err, coursedomain.ErrInvalidCollege),
		errors.Is(err, coursedomain.ErrInvalidCode),
		errors.Is(err, coursedomain.ErrInvalidName),
		errors.Is(err, coursedomain.ErrInvalidDuration),
		errors.Is(err, coursedomain.ErrInvalidID),
		errors.Is(err, coursedomain.ErrInvalidStatus):
		return true
	case errors.Is(err, sessiondomain.ErrInvalidCode),
		errors.Is(err, sessiondomain.ErrInvalidTitle),
		errors.Is(err, sessiondomain.ErrInvalidDateRange),
		errors.Is(err, sessiondomain.ErrInvalidID),
		errors.Is(err, sessiondomain.ErrInvalidStatus):
		return true
	case errors.Is(err, agentdomain.ErrInvalidName),
		errors.Is(err, agentdomain.ErrInvalidID):
		return true
	case errors.Is(err, catalogdomain.ErrInvalidCode),
		errors.Is(err, catalogdomain.ErrInvalidLabel),
		errors.Is(err, catalogdomain.ErrInvalidFrequency),
		errors.Is(err, catalogdomain.ErrInvalidCourse),
		errors.Is(err, catalogdomain.ErrInvalidSession),
		errors.Is(err, catalogdomain.ErrInvalidName),
		errors.Is(err, catalogdomain.ErrInvalidStatus),
		errors.Is(err, catalogdomain.ErrInvalidYear),
		errors.Is(err, catalogdomain.ErrInvalidAmount),
		errors.Is(err, catalogdomain.ErrInvalidID):
		return true
	case errors.Is(err, admissiondomain.ErrInvalidCollege),
		errors.Is(err, admissiondomain.ErrInvalidSession),
		errors.Is(err, admissiondomain.ErrInvalidCourse),
		errors.Is(err, admissiondomain.ErrInvalidPlan),
		errors.Is(err, admissiondomain.ErrInvalidAgent),
		errors.Is(err, admissiondomain.ErrInvalidEntryType),
		errors.Is(err, admissiondomain.ErrStudentName),
		errors.Is(err, admissiondomain.ErrPlanMismatch):
		return true
	case errors.Is(err, studentdomain.ErrInvalidStudent),
		errors.Is(err, studentdomain.ErrInvalidDocument),
		errors.Is(err, studentdomain.ErrInvalidStatus),
		errors.Is(err, studentdomain.ErrInvalidPatchOp),
		errors.Is(err, studentdomain.ErrEmptyName),
		errors.Is(err, studentdomain.ErrNothingToUpdate):
		return true
	case errors.Is(err, overridedomain.ErrInvalidStudent),
		errors.Is(err, overridedomain.ErrInvalidItem),
		errors.Is(err, overridedomain.ErrInvalidYear),
		errors.Is(err, overridedomain.ErrInvalidAmount),
		errors.Is(err, overridedomain.ErrReasonRequired):
		return true
	case errors.Is(err, adjustmentdomain.ErrInvalidStudent),
		errors.Is(err, adjustmentdomain.ErrInvalidType),
		errors.Is(err, adjustmentdomain.ErrInvalidAmount),
		errors.Is(err, adjustmentdomain.ErrInvalidTitle),
		errors.Is(err, adjustmentdomain.ErrInvalidReason),
		errors.Is(err, adjustmentdomain.ErrInvalidComponent),
		errors.Is(err, adjustmentdomain.ErrInvalidID):
		return true
	case errors.Is(err, receiptdomain.ErrInvalidStudent),
		errors.Is(err, receiptdomain.ErrInvalidEnrollment),
		errors.Is(err, receiptdomain.ErrInvalidMethod),
		errors.Is(err, receiptdomain.ErrInvalidAmount),
		errors.Is(err, receiptdomain.ErrInvalidAllocations),
		errors.Is(err, receiptdomain.ErrInvalidID):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict):
		return true
	case errors.Is(err, collegedomain.ErrCodeTaken),
		errors.Is(err, coursedomain.ErrCodeTaken),
		errors.Is(err, sessiondomain.ErrCodeTaken),
		errors.Is(err, catalogdomain.ErrCodeTaken):
		return true
	case errors.Is(err, catalogdomain.ErrDuplicateItem),
		errors.Is(err, catalogdomain.ErrComponentInUse):
		return true
	case errors.Is(err, adjustmentdomain.ErrAlreadyCancelled):
		return true
	case errors.Is(err, studentdomain.ErrDuplicateDocument):
		return true
	case errors.Is(err, overridedomain.ErrLineLocked):
		return true
	case errors.Is(err, admissiondomain.ErrStaleCounter),
		errors.Is(err, admissiondomain.ErrIssueInProgress):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound):
		return true
	case errors.Is(err, collegedomain.ErrNotFound),
		errors.Is(err, coursedomain.ErrNotFound),
		errors.Is(err, sessiondomain.ErrNotFound),
		errors.Is(err, agentdomain.ErrNotFound),
		errors.Is(err, catalogdomain.ErrNotFound),
		errors.Is(err, catalogdomain.ErrComponentNotFound),
		errors.Is(err, adjustmentdomain.ErrNotFound),
		errors.Is(err, receiptdomain.ErrNotFound):
		return true
	case errors.Is(err, studentdomain.ErrStudentNotFound),
		errors.Is(err, studentdomain.ErrDocumentNotFound),
		errors.Is(err, studentdomain.ErrNoEnrollment):
		return true
	case errors.Is(err, overridedomain.ErrFeeLineNotFound):
		return true
	case errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}
