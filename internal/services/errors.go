package services

import "net/http"

// Error is the failure envelope returned by every service operation. Code is
// a stable machine-readable name, Status the HTTP class handlers respond
// with, and Err the underlying cause (never exposed to clients).
type Error struct {
	Code    string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Error codes
const (
	CodeInvalidRequest              = "INVALID_REQUEST"
	CodeForbidden                   = "FORBIDDEN"
	CodeProposalNotFound            = "PROPOSAL_NOT_FOUND"
	CodeProposalAlreadyProcessed    = "PROPOSAL_ALREADY_PROCESSED"
	CodeProjectNotFound             = "PROJECT_NOT_FOUND"
	CodeProjectNotOpen              = "PROJECT_NOT_OPEN"
	CodeDuplicateProposal           = "DUPLICATE_PROPOSAL"
	CodeMilestoneNotFound           = "MILESTONE_NOT_FOUND"
	CodeMilestoneAlreadySubmitted   = "MILESTONE_ALREADY_SUBMITTED"
	CodeMilestoneAlreadyApproved    = "MILESTONE_ALREADY_APPROVED"
	CodePreviousMilestoneIncomplete = "PREVIOUS_MILESTONE_INCOMPLETE"
	CodeContractNotFound            = "CONTRACT_NOT_FOUND"
	CodeContractNotCompleted        = "CONTRACT_NOT_COMPLETED"
	CodeAlreadyReviewed             = "ALREADY_REVIEWED"
	CodeServiceNotFound             = "SERVICE_NOT_FOUND"
	CodeInternalError               = "INTERNAL_ERROR"
)

func invalidRequest(message string) *Error {
	return &Error{Code: CodeInvalidRequest, Status: http.StatusBadRequest, Message: message}
}

func forbidden(message string) *Error {
	return &Error{Code: CodeForbidden, Status: http.StatusForbidden, Message: message}
}

func notFound(code string, message string) *Error {
	return &Error{Code: code, Status: http.StatusNotFound, Message: message}
}

func conflict(code string, message string) *Error {
	return &Error{Code: code, Status: http.StatusConflict, Message: message}
}

func internalError(err error) *Error {
	return &Error{
		Code:    CodeInternalError,
		Status:  http.StatusInternalServerError,
		Message: "Internal server error",
		Err:     err,
	}
}
