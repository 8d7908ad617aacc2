package service

import (
	"context"
	"errors"

	"github.com/dropdesk/dropdesk-go/internal/crypto"
	"github.com/dropdesk/dropdesk-go/internal/model"
	"github.com/dropdesk/dropdesk-go/internal/repository"
)

var (
	ErrSupplierNameRequired = errors.New("supplier_name is required")
	ErrSecretRequired       = errors.New("secret is required")
	ErrCredentialNotFound   = errors.New("supplier credential not found")

	// ErrVaultUnreadable means a stored secret exists but cannot be
	// decrypted with the current vault key, the expected outcome after a
	// key rotation. Surfaced to the user as "re-enter this credential"
	// rather than a server error.
	ErrVaultUnreadable = errors.New("vault entry cannot be decrypted with the current key")
)

// VaultService handles supplier credential business logic. Plaintext
// secrets exist only transiently inside these methods; the repository
// only ever sees ciphertext.
type VaultService struct {
	repo   *repository.SupplierCredentialRepository
	cipher *crypto.SecretCipher
}

// NewVaultService creates a new VaultService.
func NewVaultService(repo *repository.SupplierCredentialRepository, cipher *crypto.SecretCipher) *VaultService {
	return &VaultService{repo: repo, cipher: cipher}
}

// CreateCredential creates a vault entry, encrypting the initial secret
// if one was supplied.
func (s *VaultService) CreateCredential(ctx context.Context, userID int64, req model.CreateCredentialRequest) (model.CredentialResponse, error) {
	if req.SupplierName == "" {
		return model.CredentialResponse{}, ErrSupplierNameRequired
	}

	cred := &model.SupplierCredential{
		UserID:       userID,
		SupplierName: req.SupplierName,
		Username:     req.Username,
	}

	if req.Secret != "" {
		ciphertext, err := s.cipher.Encrypt(req.Secret)
		if err != nil {
			return model.CredentialResponse{}, err
		}
		cred.EncryptedSecret = &ciphertext
	}

	if err := s.repo.Create(ctx, cred); err != nil {
		return model.CredentialResponse{}, err
	}

	return credentialToResponse(cred), nil
}

// SetSecret encrypts and stores a secret, overwriting any previous one.
func (s *VaultService) SetSecret(ctx context.Context, userID, credentialID int64, req model.SetSecretRequest) error {
	if req.Secret == "" {
		return ErrSecretRequired
	}

	ciphertext, err := s.cipher.Encrypt(req.Secret)
	if err != nil {
		return err
	}

	err = s.repo.UpdateSecret(ctx, userID, credentialID, ciphertext)
	if errors.Is(err, repository.ErrCredentialNotFound) {
		return ErrCredentialNotFound
	}
	return err
}

// RevealSecret decrypts and returns an entry's secret. A nil Secret in
// the response means none has been set, which is not an error. A stored
// secret that no longer decrypts yields ErrVaultUnreadable.
func (s *VaultService) RevealSecret(ctx context.Context, userID, credentialID int64) (model.SecretResponse, error) {
	cred, err := s.repo.GetByID(ctx, userID, credentialID)
	if err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			return model.SecretResponse{}, ErrCredentialNotFound
		}
		return model.SecretResponse{}, err
	}

	if cred.EncryptedSecret == nil || *cred.EncryptedSecret == "" {
		return model.SecretResponse{}, nil
	}

	plaintext, err := s.cipher.Decrypt(*cred.EncryptedSecret)
	if err != nil {
		if errors.Is(err, crypto.ErrDecryptionFailed) {
			return model.SecretResponse{}, ErrVaultUnreadable
		}
		return model.SecretResponse{}, err
	}

	return model.SecretResponse{Secret: &plaintext}, nil
}

// ListCredentials returns the user's vault entries, without secrets.
func (s *VaultService) ListCredentials(ctx context.Context, userID int64) ([]model.CredentialResponse, error) {
	creds, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]model.CredentialResponse, len(creds))
	for i := range creds {
		result[i] = credentialToResponse(&creds[i])
	}
	return result, nil
}

// DeleteCredential removes a vault entry.
func (s *VaultService) DeleteCredential(ctx context.Context, userID, credentialID int64) error {
	err := s.repo.Delete(ctx, userID, credentialID)
	if errors.Is(err, repository.ErrCredentialNotFound) {
		return ErrCredentialNotFound
	}
	return err
}

// GenerateSecret produces a random supplier password. Nothing is stored;
// the caller decides whether to set it on an entry.
func (s *VaultService) GenerateSecret(req model.GenerateSecretRequest) (model.GenerateSecretResponse, error) {
	opts := crypto.SecretOptions{
		Length:  req.Length,
		Upper:   boolOrDefault(req.Upper, true),
		Lower:   boolOrDefault(req.Lower, true),
		Digits:  boolOrDefault(req.Digits, true),
		Symbols: boolOrDefault(req.Symbols, true),
	}
	if opts.Length == 0 {
		opts.Length = crypto.DefaultSecretOptions().Length
	}

	secret, err := crypto.GenerateSecret(opts)
	if err != nil {
		return model.GenerateSecretResponse{}, err
	}

	return model.GenerateSecretResponse{Secret: secret, Length: len(secret)}, nil
}

func credentialToResponse(cred *model.SupplierCredential) model.CredentialResponse {
	return model.CredentialResponse{
		ID:           cred.ID,
		SupplierName: cred.SupplierName,
		Username:     cred.Username,
		HasSecret:    cred.EncryptedSecret != nil && *cred.EncryptedSecret != "",
		CreatedAt:    cred.CreatedAt,
	}
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
