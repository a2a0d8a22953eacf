// Package entity contains the core business objects of the project.
package entity

import (
	"regexp"
	"strings"
)

// ProviderType identifies a third-party OAuth provider. It is used verbatim in /oauth/{provider}/... paths.
type ProviderType string

const (
	ProviderTypeKakao  ProviderType = "kakao"
	ProviderTypeGoogle ProviderType = "google"
	ProviderTypeNaver  ProviderType = "naver"
	ProviderTypeApple  ProviderType = "apple"
)

var providerPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ParseProviderType normalises s and reports whether it is usable as a path segment
func ParseProviderType(s string) (ProviderType, bool) {
	p := strings.ToLower(strings.TrimSpace(s))
	if !providerPattern.MatchString(p) {
		return "", false
	}

	return ProviderType(p), true
}

// String returns the provider name
func (p ProviderType) String() string {
	return string(p)
}
