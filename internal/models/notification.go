package models

// Notification task types
const (
	TaskCredentialIssued   = "credential:issued"
	TaskCredentialVerified = "credential:verified"
	TaskCatalogRefresh     = "catalog:refresh"
)

// CredentialNotification is the payload of credential notification tasks
type CredentialNotification struct {
	CredentialID string `json:"credentialId"`
	UserID       string `json:"userId"`
	Title        string `json:"title"`
	Issuer       string `json:"issuer"`
}
