package redis

import (
	"fmt"

	"github.com/bastiangx/dialserve/pkg/contacts"
)

// init registers the Redis source. Import this package with a blank identifier
// to make "redis" available to contacts.Open:
//
//	import _ "github.com/bastiangx/dialserve/pkg/contacts/redis"
//
//nolint:gochecknoinits // init() is the idiomatic pattern for backend registration
func init() {
	contacts.Register("redis", NewSource)
}

// NewSource implements contacts.Factory and expects config to be a redis.Config.
func NewSource(config interface{}) (contacts.Source, error) {
	redisConfig, ok := config.(Config)
	if !ok {
		return nil, fmt.Errorf("%w: expected redis.Config, got %T", contacts.ErrInvalidConfig, config)
	}
	return New(redisConfig)
}
