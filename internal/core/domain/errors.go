package domain

import "fmt"

// Code is a machine-readable error code. Codes are stable and surface
// unchanged through the HTTP adapter.
type Code string

const (
	CodeInsufficientContribution Code = "INSUFFICIENT_CONTRIBUTION"
	CodeUnauthorized             Code = "UNAUTHORIZED"
	CodeAlreadyVoted             Code = "ALREADY_VOTED"
	CodeRequestAlreadyFinalized  Code = "REQUEST_ALREADY_FINALIZED"
	CodeQuorumNotMet             Code = "QUORUM_NOT_MET"
	CodeIndexOutOfRange          Code = "INDEX_OUT_OF_RANGE"
	CodeInsufficientFunds        Code = "INSUFFICIENT_FUNDS"
	CodeCampaignNotFound         Code = "CAMPAIGN_NOT_FOUND"
	CodeInvalidArgument          Code = "INVALID_ARGUMENT"
	CodeUnauthenticated          Code = "UNAUTHENTICATED"
)

// Error is a domain validation failure. It is always returned before any
// state is touched, so the campaign is unchanged when one is observed.
type Error struct {
	Code    Code
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Errorf creates a domain error with a formatted message.
func Errorf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Sentinels for errors.Is comparisons. Only the code is compared.
var (
	ErrInsufficientContribution = &Error{Code: CodeInsufficientContribution, Message: "contribution below minimum"}
	ErrUnauthorized             = &Error{Code: CodeUnauthorized, Message: "caller is not authorized"}
	ErrAlreadyVoted             = &Error{Code: CodeAlreadyVoted, Message: "approver already voted"}
	ErrRequestAlreadyFinalized  = &Error{Code: CodeRequestAlreadyFinalized, Message: "request already finalized"}
	ErrQuorumNotMet             = &Error{Code: CodeQuorumNotMet, Message: "approval quorum not met"}
	ErrIndexOutOfRange          = &Error{Code: CodeIndexOutOfRange, Message: "request index out of range"}
	ErrInsufficientFunds        = &Error{Code: CodeInsufficientFunds, Message: "campaign balance too low"}
	ErrCampaignNotFound         = &Error{Code: CodeCampaignNotFound, Message: "campaign not found"}
	ErrInvalidArgument          = &Error{Code: CodeInvalidArgument, Message: "invalid argument"}
	ErrUnauthenticated          = &Error{Code: CodeUnauthenticated, Message: "caller identity required"}
)
