package model

// Requester represents the user behind a join request
type Requester struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	AboutMe string `json:"aboutMe,omitempty"`
}

// JoinRequest represents a user's request to join a private group without a passkey
type JoinRequest struct {
	ID     int64     `json:"id"`
	User   Requester `json:"user"`
	Status string    `json:"status"` // 'PENDING', 'APPROVED', 'DENIED'
}

// Request status constants
const (
	RequestStatusPending  = "PENDING"
	RequestStatusApproved = "APPROVED"
	RequestStatusDenied   = "DENIED"
)

// IsPending checks if request is pending
func (r *JoinRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}

// IsTerminal checks if request has been resolved
func (r *JoinRequest) IsTerminal() bool {
	return r.Status == RequestStatusApproved || r.Status == RequestStatusDenied
}
