// This file handles agent API credentials. Keys are stored hashed; lookup is
// by the short public prefix embedded in the key, with the full key verified
// against the bcrypt hash by the caller.
package repository

import (
	"context"

	"github.com/dbartell/employarmor-sub001/internal/database"
	"github.com/dbartell/employarmor-sub001/internal/models"
)

// AgentKeyRepository handles agent credential database operations.
type AgentKeyRepository struct{}

// NewAgentKeyRepository creates a new instance of AgentKeyRepository.
func NewAgentKeyRepository() *AgentKeyRepository {
	return &AgentKeyRepository{}
}

// Create inserts a new agent key record. The raw key never reaches the
// database; callers store only its prefix and bcrypt hash.
func (r *AgentKeyRepository) Create(ctx context.Context, key *models.AgentKey) error {
	query := `
		INSERT INTO agent_keys (id, agent_id, name, key_prefix, key_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	return database.DB.QueryRow(ctx, query,
		key.ID, key.AgentID, key.Name, key.KeyPrefix, key.KeyHash,
	).Scan(&key.CreatedAt)
}

// FindByPrefix retrieves the agent key addressed by the public prefix of a
// presented credential. Returns pgx.ErrNoRows when no key matches.
func (r *AgentKeyRepository) FindByPrefix(ctx context.Context, prefix string) (*models.AgentKey, error) {
	query := `
		SELECT id, agent_id, name, key_prefix, key_hash, last_used_at, created_at
		FROM agent_keys
		WHERE key_prefix = $1
	`

	var key models.AgentKey
	err := database.DB.QueryRow(ctx, query, prefix).Scan(
		&key.ID, &key.AgentID, &key.Name, &key.KeyPrefix, &key.KeyHash,
		&key.LastUsedAt, &key.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &key, nil
}

// TouchLastUsed stamps the key's last_used_at. Best effort; callers ignore
// failures because the stamp is informational.
func (r *AgentKeyRepository) TouchLastUsed(ctx context.Context, keyID string) error {
	query := `UPDATE agent_keys SET last_used_at = NOW() WHERE id = $1`
	_, err := database.DB.Exec(ctx, query, keyID)
	return err
}
