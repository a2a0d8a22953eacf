package service

import "dashcam/internal/domain/repository"

// Platform bundles the capabilities that differ between targets (native vs web).
// Exactly one implementation is selected at startup.
type Platform interface {
	Name() string
	Authenticator() ProviderAuthenticator
	Store() repository.KeyValueStore
}
