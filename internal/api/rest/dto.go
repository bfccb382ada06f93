package rest

import (
	"time"

	"github.com/walletgraph/walletgraph/internal/session"
)

// StartSessionRequest is the body for POST /api/v1/sessions
type StartSessionRequest struct {
	Address string `json:"address" binding:"required"`
}

// SessionView is the API representation of a session
type SessionView struct {
	ID             string    `json:"id"`
	PrimaryAddress string    `json:"primary_address"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewSessionView maps a session to its API representation
func NewSessionView(sess *session.Session) SessionView {
	return SessionView{
		ID:             sess.ID,
		PrimaryAddress: sess.PrimaryAddress,
		CreatedAt:      sess.CreatedAt,
	}
}
