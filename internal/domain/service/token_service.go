package service

import "dashcam/internal/domain/entity"

// TokenInspector reads what it can from a session token without verifying it.
// The backend remains the only authority on validity.
type TokenInspector interface {
	Inspect(token string) entity.SessionInfo
}
