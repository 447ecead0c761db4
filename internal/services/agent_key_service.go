// This file implements agent API credential management. Keys follow the
// usual API-key shape: an opaque random secret with a short public prefix.
// The full key is shown once at issuance; only its bcrypt hash is stored,
// addressable by the prefix.
package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dbartell/employarmor-sub001/internal/models"
	"github.com/dbartell/employarmor-sub001/internal/repository"
)

// keyPrefixLen is the number of leading characters stored in plaintext for
// lookup. Long enough to be unique in practice, short enough to reveal
// nothing about the secret.
const keyPrefixLen = 12

// AgentKeyService issues and verifies agent API credentials.
type AgentKeyService struct {
	keyRepo *repository.AgentKeyRepository
}

// NewAgentKeyService creates and returns a new AgentKeyService instance.
func NewAgentKeyService() *AgentKeyService {
	return &AgentKeyService{
		keyRepo: repository.NewAgentKeyRepository(),
	}
}

// IssueKey mints a new credential for an agent and returns the raw key.
// This is the only moment the raw key exists outside the caller's hands;
// it cannot be recovered later.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - agentID: Stable agent identifier the key authenticates as
//   - name: Human label for the key (e.g. "production", "staging")
//
// Returns:
//   - string: The raw key, "ea_" followed by 48 hex characters
//   - *models.AgentKey: The stored record (hash and prefix, never the raw key)
//   - error: Entropy, hashing, or persistence error
func (s *AgentKeyService) IssueKey(ctx context.Context, agentID, name string) (string, *models.AgentKey, error) {
	secret := make([]byte, 24)
	if _, err := rand.Read(secret); err != nil {
		return "", nil, fmt.Errorf("generating key material: %w", err)
	}
	rawKey := "ea_" + hex.EncodeToString(secret)

	const bcryptCost = 12
	hash, err := bcrypt.GenerateFromPassword([]byte(rawKey), bcryptCost)
	if err != nil {
		return "", nil, err
	}

	key := &models.AgentKey{
		ID:        uuid.New().String(),
		AgentID:   agentID,
		Name:      name,
		KeyPrefix: rawKey[:keyPrefixLen],
		KeyHash:   string(hash),
	}
	if err := s.keyRepo.Create(ctx, key); err != nil {
		return "", nil, err
	}

	return rawKey, key, nil
}

// VerifyKey authenticates a presented raw key: prefix lookup, then
// constant-time comparison against the stored hash. On success the key's
// last-used timestamp is refreshed best-effort.
//
// Returns the matching key record, or an error for unknown prefixes and
// hash mismatches alike so callers cannot distinguish the two cases.
func (s *AgentKeyService) VerifyKey(ctx context.Context, rawKey string) (*models.AgentKey, error) {
	if len(rawKey) < keyPrefixLen {
		return nil, bcrypt.ErrMismatchedHashAndPassword
	}

	key, err := s.keyRepo.FindByPrefix(ctx, rawKey[:keyPrefixLen])
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(key.KeyHash), []byte(rawKey)); err != nil {
		return nil, err
	}

	// Bookkeeping only; an update failure must not fail authentication.
	_ = s.keyRepo.TouchLastUsed(ctx, key.ID)

	return key, nil
}
