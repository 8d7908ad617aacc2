package model

import "time"

// SupplierCredential is a vault entry: one third-party supplier login
// owned by exactly one user. EncryptedSecret, when non-nil, is opaque
// ciphertext produced by the secret cipher and never interpreted
// anywhere else. A nil EncryptedSecret means no secret has been set yet.
type SupplierCredential struct {
	ID              int64
	UserID          int64
	SupplierName    string
	Username        string
	EncryptedSecret *string
	CreatedAt       time.Time
}

// CreateCredentialRequest creates a vault entry, optionally with an
// initial secret.
type CreateCredentialRequest struct {
	SupplierName string `json:"supplier_name"`
	Username     string `json:"username"`
	Secret       string `json:"secret"`
}

// SetSecretRequest overwrites the stored secret for an entry.
type SetSecretRequest struct {
	Secret string `json:"secret"`
}

// CredentialResponse is the list/detail shape. It reports whether a
// secret exists but never includes it; revealing is a separate call.
type CredentialResponse struct {
	ID           int64     `json:"id"`
	SupplierName string    `json:"supplier_name"`
	Username     string    `json:"username,omitempty"`
	HasSecret    bool      `json:"has_secret"`
	CreatedAt    time.Time `json:"created_at"`
}

// SecretResponse carries a revealed plaintext secret. Secret is null
// when the entry has none set.
type SecretResponse struct {
	Secret *string `json:"secret"`
}

// GenerateSecretRequest configures supplier-secret generation. Pointer
// bools distinguish missing (nil, defaults to true) from explicit false.
type GenerateSecretRequest struct {
	Length  int   `json:"length"`
	Upper   *bool `json:"upper"`
	Lower   *bool `json:"lower"`
	Digits  *bool `json:"digits"`
	Symbols *bool `json:"symbols"`
}

// GenerateSecretResponse returns a generated supplier secret.
type GenerateSecretResponse struct {
	Secret string `json:"secret"`
	Length int    `json:"length"`
}
