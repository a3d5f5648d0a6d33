/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the leave domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

VALIDATION:
  Request bodies carry go-playground/validator struct tags; handlers run
  the validator before touching domain logic. Domain-level rules (policy
  maximums, notice periods) stay in the leave package.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/edhr/leave-engine/leave"
)

// =============================================================================
// AUTH TYPES
// =============================================================================

// LoginRequest is the request to authenticate.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the request to create an account.
type RegisterRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Department string `json:"department" validate:"required"`
}

// SessionResponse carries a session token and the authenticated user.
type SessionResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// UserDTO represents a user in API responses.
type UserDTO struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	Role               string  `json:"role"`
	Department         string  `json:"department"`
	AnnualLeaveBalance float64 `json:"annual_leave_balance"`
}

// =============================================================================
// LEAVE REQUEST TYPES
// =============================================================================

// SubmitLeaveRequest is the request to submit (or pre-validate) a draft.
type SubmitLeaveRequest struct {
	LeaveType  string  `json:"leave_type" validate:"required,oneof=Annual Sick Personal Emergency Unpaid"`
	StartDate  string  `json:"start_date"` // YYYY-MM-DD, empty surfaces a missing_field violation
	EndDate    string  `json:"end_date"`
	Duration   float64 `json:"duration,omitempty"` // Personal leave only, fraction of a day
	Reason     string  `json:"reason"`
	Attachment *string `json:"attachment,omitempty"`
}

// LeaveRequestDTO represents a leave request in API responses.
type LeaveRequestDTO struct {
	ID                  string  `json:"id"`
	RequesterID         string  `json:"requester_id"`
	RequesterName       string  `json:"requester_name"`
	RequesterDepartment string  `json:"requester_department"`
	LeaveType           string  `json:"leave_type"`
	StartDate           string  `json:"start_date"`
	EndDate             string  `json:"end_date"`
	Duration            float64 `json:"duration"`
	Reason              string  `json:"reason"`
	Attachment          *string `json:"attachment,omitempty"`
	Status              string  `json:"status"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           string  `json:"updated_at"`
}

// MutationResponse wraps a mutated request. Persisted is false when the
// in-memory mutation succeeded but the durability save failed.
type MutationResponse struct {
	Request   LeaveRequestDTO `json:"request"`
	Persisted bool            `json:"persisted"`
}

// ViolationDTO represents a single validation violation.
type ViolationDTO struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateResponse is the result of pre-validating a draft.
type ValidateResponse struct {
	Valid      bool           `json:"valid"`
	Duration   float64        `json:"duration"`
	Violations []ViolationDTO `json:"violations"`
}

// =============================================================================
// ANALYTICS TYPES
// =============================================================================

// AbsenceRatioDTO is one requester's per-type percentage breakdown.
type AbsenceRatioDTO struct {
	RequesterID string             `json:"requester_id"`
	Year        int                `json:"year"`
	Ratios      map[string]float64 `json:"ratios"`
}

// DepartmentStatsDTO aggregates one department's approved leave.
type DepartmentStatsDTO struct {
	Department   string  `json:"department"`
	TotalDays    float64 `json:"total_days"`
	RequestCount int     `json:"request_count"`
}

// DepartmentRollupDTO is the per-department aggregate for one year.
type DepartmentRollupDTO struct {
	Year        int                  `json:"year"`
	Departments []DepartmentStatsDTO `json:"departments"`
}

// YearSummaryDTO is the overall picture for one year.
type YearSummaryDTO struct {
	Year             int     `json:"year"`
	TotalRequests    int     `json:"total_requests"`
	ApprovedRequests int     `json:"approved_requests"`
	TotalLeaveDays   float64 `json:"total_leave_days"`
}

// ScenarioDTO represents a loadable demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects the scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id" validate:"required"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error      string         `json:"error"`
	Code       string         `json:"code,omitempty"`
	Violations []ViolationDTO `json:"violations,omitempty"`
	Details    any            `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toUserDTO(u leave.User) UserDTO {
	return UserDTO{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Role:               string(u.Role),
		Department:         u.Department,
		AnnualLeaveBalance: u.AnnualLeaveBalance.InexactFloat64(),
	}
}

func toRequestDTO(req leave.Request) LeaveRequestDTO {
	return LeaveRequestDTO{
		ID:                  string(req.ID),
		RequesterID:         req.RequesterID,
		RequesterName:       req.RequesterName,
		RequesterDepartment: req.RequesterDepartment,
		LeaveType:           string(req.Type),
		StartDate:           req.StartDate.String(),
		EndDate:             req.EndDate.String(),
		Duration:            req.Duration.InexactFloat64(),
		Reason:              req.Reason,
		Attachment:          req.Attachment,
		Status:              string(req.Status),
		CreatedAt:           req.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           req.UpdatedAt.Format(time.RFC3339),
	}
}

func toRequestDTOs(reqs []leave.Request) []LeaveRequestDTO {
	dtos := make([]LeaveRequestDTO, len(reqs))
	for i, req := range reqs {
		dtos[i] = toRequestDTO(req)
	}
	return dtos
}

func toViolationDTOs(violations []leave.Violation) []ViolationDTO {
	dtos := make([]ViolationDTO, len(violations))
	for i, v := range violations {
		dtos[i] = ViolationDTO{Code: string(v.Code), Field: v.Field, Message: v.Message}
	}
	return dtos
}
