package entity

import "time"

// Session credencial viva de una identidad.
type Session struct {
	ID          string    `json:"id"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Identity    Identity  `json:"identity"`
}

// Expired informa si la sesión ya no es válida en now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// SessionEventKind tipo de cambio de sesión.
type SessionEventKind string

const (
	SessionSignedIn       SessionEventKind = "SIGNED_IN"
	SessionTokenRefreshed SessionEventKind = "TOKEN_REFRESHED"
	SessionSignedOut      SessionEventKind = "SIGNED_OUT"
)

// SessionEvent notificación emitida por el almacén de sesión. Session es nil en SignedOut.
type SessionEvent struct {
	Kind    SessionEventKind
	Session *Session
}
