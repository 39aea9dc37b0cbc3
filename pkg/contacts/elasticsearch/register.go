package elasticsearch

import (
	"fmt"

	"github.com/bastiangx/dialserve/pkg/contacts"
)

// init registers the Elasticsearch source. Import this package with a blank
// identifier to make "elasticsearch" available to contacts.Open.
//
//nolint:gochecknoinits // init() is the idiomatic pattern for backend registration
func init() {
	contacts.Register("elasticsearch", NewSource)
}

// NewSource implements contacts.Factory and expects config to be an
// elasticsearch.Config.
func NewSource(config interface{}) (contacts.Source, error) {
	esConfig, ok := config.(Config)
	if !ok {
		return nil, fmt.Errorf("%w: expected elasticsearch.Config, got %T", contacts.ErrInvalidConfig, config)
	}
	return New(&esConfig)
}
