package database

import (
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"
)

// NewMemcached connects to memcached and verifies the connection.
func NewMemcached(server string) (*memcache.Client, error) {
	client := memcache.New(server)
	client.Timeout = time.Second
	if err := client.Ping(); err != nil {
		return nil, errors.Wrap(err, "ping memcached")
	}
	return client, nil
}
