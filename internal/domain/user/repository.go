package user

import "context"

// Repository describes user persistence needs from use cases.
type Repository interface {
	// List returns every user ordered by id.
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id int64) (User, bool, error)
	// GetByName matches case-insensitively on the trimmed name.
	GetByName(ctx context.Context, name string) (User, bool, error)
	// EnsureNames creates any missing users. Existing users are untouched.
	EnsureNames(ctx context.Context, names []string) error
}
