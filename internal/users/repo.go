package users

import (
	"context"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("user not found")

type Repo interface {
	RecordLogin(ctx context.Context, user User) error
	Get(ctx context.Context, email string) (User, error)
}
