package client

import "context"

// Repository defines the interface for client data access.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Client, error)
	GetByID(ctx context.Context, id string) (*Client, error)
	ListByOwnerID(ctx context.Context, ownerID int64) ([]*Client, error)
	Exists(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}
