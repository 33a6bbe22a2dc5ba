package domain

import (
	"context"
	"time"
)

// RequestStatus is the resolution state of a ConferenceRequest.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

var requestStatusLabels = map[RequestStatus]string{
	RequestPending:  "قيد الانتظار",
	RequestApproved: "مقبول",
	RequestRejected: "مرفوض",
}

// Valid reports whether s is one of the three known statuses.
func (s RequestStatus) Valid() bool {
	_, ok := requestStatusLabels[s]
	return ok
}

// Label returns the localized display label.
func (s RequestStatus) Label() string {
	if l, ok := requestStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Request types filed against a conference.
const (
	RequestTypeApproval     = "approval"
	RequestTypeModification = "modification"
	RequestTypeCancellation = "cancellation"
)

// ValidRequestType reports whether t is a known request type.
func ValidRequestType(t string) bool {
	switch t {
	case RequestTypeApproval, RequestTypeModification, RequestTypeCancellation:
		return true
	}
	return false
}

// ReviewAction is the admin decision on a pending request.
type ReviewAction string

const (
	ReviewApprove ReviewAction = "approve"
	ReviewReject  ReviewAction = "reject"
)

// Resolution is the pair of states written when a request is resolved.
// The request and its conference always move together.
type Resolution struct {
	Request    RequestStatus
	Conference ConferenceStatus
}

var resolutions = map[ReviewAction]Resolution{
	ReviewApprove: {Request: RequestApproved, Conference: ConferenceApproved},
	ReviewReject:  {Request: RequestRejected, Conference: ConferenceRejected},
}

// ResolutionFor returns the target states for action, or false for an unknown action.
func ResolutionFor(action ReviewAction) (Resolution, bool) {
	r, ok := resolutions[action]
	return r, ok
}

// ConferenceRequest is a decision record tied to a conference awaiting admin resolution.
// swagger:model ConferenceRequest
type ConferenceRequest struct {
	ID           string        `json:"id"`
	ConferenceID string        `json:"conference_id"`
	RequestedBy  string        `json:"requested_by"`
	RequestType  string        `json:"request_type"`
	Status       RequestStatus `json:"status"`
	Details      string        `json:"details"`
	CreatedAt    time.Time     `json:"created_at"`
	ReviewedAt   *time.Time    `json:"reviewed_at"`
	ReviewedBy   *string       `json:"reviewed_by"`
}

// NewConferenceRequest returns a pending request. ConferenceID may be filled in later by the repository.
func NewConferenceRequest(conferenceID, requestedBy, requestType, details string, createdAt time.Time) *ConferenceRequest {
	return &ConferenceRequest{
		ConferenceID: conferenceID,
		RequestedBy:  requestedBy,
		RequestType:  requestType,
		Status:       RequestPending,
		Details:      details,
		CreatedAt:    createdAt,
	}
}

// PendingRequest is a pending request joined with what the reviewer needs to see.
type PendingRequest struct {
	Request         *ConferenceRequest `json:"request"`
	ConferenceTitle string             `json:"conference_title"`
	RequesterName   string             `json:"requester_name"`
	RequesterEmail  string             `json:"requester_email"`
}

// ConferenceRequestRepository defines storage operations for conference requests.
type ConferenceRequestRepository interface {
	Create(ctx context.Context, req *ConferenceRequest) error
	ListPending(ctx context.Context) ([]*PendingRequest, error)
	// Resolve moves a pending request and its conference to the given states in one transaction.
	// Returns ErrNotFound for an unknown id and ErrRequestNotPending when already resolved.
	Resolve(ctx context.Context, requestID string, res Resolution, reviewerID string, reviewedAt time.Time) (*PendingRequest, error)
}

// RequestService is the approval workflow.
type RequestService interface {
	Submit(ctx context.Context, actor *Profile, conferenceID, requestType, details string) (*ConferenceRequest, error)
	ListPending(ctx context.Context, actor *Profile) ([]*PendingRequest, error)
	Resolve(ctx context.Context, actor *Profile, requestID string, action ReviewAction) (*ConferenceRequest, error)
}
