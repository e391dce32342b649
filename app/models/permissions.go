package models

// PermissionStatus is the push-notification authorization state
// reported by the notification service for a client.
type PermissionStatus string

const (
	PermissionAuthorized    PermissionStatus = "authorized"
	PermissionDenied        PermissionStatus = "denied"
	PermissionNotDetermined PermissionStatus = "not_determined"
)
