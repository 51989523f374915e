package auth

import (
	"errors"
	"time"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
)

var ErrInvalidToken = errors.New("invalid auth token")

// Strategy issues and validates tokens carrying the caller identity.
type Strategy interface {
	IssueToken(identity model.Identity) (string, error)
	ParseToken(token string) (model.Identity, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}

func (o Options) ttl() time.Duration {
	if o.TTL <= 0 {
		return 24 * time.Hour
	}
	return o.TTL
}
