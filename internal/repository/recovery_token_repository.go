package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// ErrRecoveryTokenNotFound is returned when no live token exists for the ID,
// either because it was never issued, already consumed, or expired via TTL.
var ErrRecoveryTokenNotFound = errors.New("recovery token not found")

// RecoveryToken is a single-use password recovery grant. Only the bcrypt
// hash of the secret is stored; expiry is enforced by the Redis TTL.
type RecoveryToken struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	SecretHash string    `json:"secret_hash"`
	CreatedAt  time.Time `json:"created_at"`
}

// RecoveryTokenRepository stores recovery tokens in Redis.
type RecoveryTokenRepository interface {
	Save(ctx context.Context, id, email, secret string, ttl time.Duration) error
	Consume(ctx context.Context, id, secret string) (*RecoveryToken, error)
}

type recoveryTokenRepository struct {
	client     *redis.Client
	bcryptCost int
}

// NewRecoveryTokenRepository constructs the Redis-backed repository.
func NewRecoveryTokenRepository(client *redis.Client, bcryptCost int) RecoveryTokenRepository {
	return &recoveryTokenRepository{client: client, bcryptCost: bcryptCost}
}

func recoveryKey(id string) string {
	return fmt.Sprintf("recovery:%s", id)
}

// Save hashes the secret and stores the token under its ID with the given TTL.
func (r *recoveryTokenRepository) Save(ctx context.Context, id, email, secret string, ttl time.Duration) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), r.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash recovery secret: %w", err)
	}

	token := RecoveryToken{
		ID:         id,
		Email:      email,
		SecretHash: string(hash),
		CreatedAt:  time.Now(),
	}
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("marshal recovery token: %w", err)
	}

	if err := r.client.Set(ctx, recoveryKey(id), data, ttl).Err(); err != nil {
		return fmt.Errorf("store recovery token: %w", err)
	}
	return nil
}

// Consume verifies the secret against the stored hash and deletes the token
// so it cannot be replayed.
func (r *recoveryTokenRepository) Consume(ctx context.Context, id, secret string) (*RecoveryToken, error) {
	data, err := r.client.Get(ctx, recoveryKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrRecoveryTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load recovery token: %w", err)
	}

	var token RecoveryToken
	if err := json.Unmarshal([]byte(data), &token); err != nil {
		return nil, fmt.Errorf("unmarshal recovery token: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(token.SecretHash), []byte(secret)) != nil {
		return nil, ErrRecoveryTokenNotFound
	}

	if err := r.client.Del(ctx, recoveryKey(id)).Err(); err != nil {
		return nil, fmt.Errorf("consume recovery token: %w", err)
	}
	return &token, nil
}
