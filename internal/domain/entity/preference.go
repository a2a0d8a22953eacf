package entity

// Preferences are the user-facing local toggles.
type Preferences struct {
	AutoDetect    bool
	Notifications bool
}
