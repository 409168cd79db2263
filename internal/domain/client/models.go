package client

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrClientNotFound = errors.New("client not found")
	ErrForbidden      = errors.New("access forbidden")
)

// Client represents a buyer that owes installments to the seller.
type Client struct {
	ID        string    `json:"id"`
	OwnerID   int64     `json:"ownerId"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateParams contains parameters for registering a new client.
type CreateParams struct {
	OwnerID int64
	Name    string
	Email   *string
	Phone   *string
}

// Validate validates the create parameters.
func (p CreateParams) Validate() error {
	if p.OwnerID <= 0 {
		return errors.New("valid owner ID is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("client name is required")
	}
	return nil
}
