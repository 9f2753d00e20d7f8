package user

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/georgemunganga/fellbacher-shop/internal/modules/storage"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// TableKey is the storage key of the registered-users table.
const TableKey = "registered_users"

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already exists")
)

// Repository persists registered users.
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
}

// record is the stored form of a User, including the password hash.
type record struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

func (r record) user() *User {
	return &User{ID: r.ID, Name: r.Name, Email: r.Email, PasswordHash: r.PasswordHash, CreatedAt: r.CreatedAt}
}

type storeRepository struct {
	store storage.Store
	mu    sync.Mutex
}

// NewRepository keeps the whole table as one JSON blob under TableKey.
func NewRepository(store storage.Store) Repository {
	return &storeRepository{store: store}
}

func (r *storeRepository) load(ctx context.Context) ([]record, error) {
	var table []record
	if _, err := storage.GetJSON(ctx, r.store, TableKey, &table); err != nil {
		return nil, errors.Wrap(err, "user: load table")
	}
	return table, nil
}

func (r *storeRepository) CreateUser(ctx context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	table, err := r.load(ctx)
	if err != nil {
		return err
	}
	for _, rec := range table {
		if sameEmail(rec.Email, u.Email) {
			return ErrEmailTaken
		}
	}
	table = append(table, record{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	})
	return errors.Wrap(storage.PutJSON(ctx, r.store, TableKey, table), "user: save table")
}

func (r *storeRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	table, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range table {
		if sameEmail(rec.Email, email) {
			return rec.user(), nil
		}
	}
	return nil, ErrNotFound
}

func (r *storeRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	table, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range table {
		if rec.ID == parsedID {
			return rec.user(), nil
		}
	}
	return nil, ErrNotFound
}

func sameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
