package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"petmarket-service/internal/models"

	"github.com/go-redis/redis/v8"
)

const availablePetsKey = "pets:available"

type Client struct {
	rdb      *redis.Client
	cacheTTL time.Duration
	holdTTL  time.Duration
}

// NewClient connects to Redis and returns a client
func NewClient(addr, password string, db int, cacheTTL, holdTTL time.Duration) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb, cacheTTL: cacheTTL, holdTTL: holdTTL}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// GetAvailablePets returns the cached available-pet listing, or ok=false on a
// cache miss
func (c *Client) GetAvailablePets(ctx context.Context) ([]models.Pet, bool, error) {
	raw, err := c.rdb.Get(ctx, availablePetsKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var pets []models.Pet
	if err := json.Unmarshal(raw, &pets); err != nil {
		return nil, false, fmt.Errorf("corrupt pet listing cache: %w", err)
	}
	return pets, true, nil
}

// SetAvailablePets caches the available-pet listing
func (c *Client) SetAvailablePets(ctx context.Context, pets []models.Pet) error {
	raw, err := json.Marshal(pets)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, availablePetsKey, raw, c.cacheTTL).Err()
}

// InvalidateAvailablePets drops the cached listing. Called on every pet
// status change so readers never see a booked pet as available for longer
// than one request.
func (c *Client) InvalidateAvailablePets(ctx context.Context) error {
	return c.rdb.Del(ctx, availablePetsKey).Err()
}

func slotKey(vetID string, appointmentTime time.Time) string {
	return fmt.Sprintf("slot:%s:%d", vetID, appointmentTime.Unix())
}

// HoldSlot takes a short-lived hold on a vet time slot. Returns false when
// another request already holds it. The hold narrows the window between the
// conflict check and the insert; the database transaction remains the
// authority.
func (c *Client) HoldSlot(ctx context.Context, vetID string, appointmentTime time.Time) (bool, error) {
	return c.rdb.SetNX(ctx, slotKey(vetID, appointmentTime), "1", c.holdTTL).Result()
}

// ReleaseSlot drops a slot hold, used when the booking attempt fails
func (c *Client) ReleaseSlot(ctx context.Context, vetID string, appointmentTime time.Time) error {
	return c.rdb.Del(ctx, slotKey(vetID, appointmentTime)).Err()
}
