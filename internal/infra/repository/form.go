package repository

import (
	"context"
	"encoding/hex"
	"log/slog"

	"github.com/zeebo/xxh3"

	"github.com/totegamma/hl3mural/internal/domain"
	"github.com/totegamma/hl3mural/internal/usecase"
)

// FormGateway lists the forms visible to a token.
type FormGateway interface {
	ListForms(ctx context.Context, token, siteID string) ([]domain.Form, error)
}

// FormCache stores form directories. Errors are treated as misses.
type FormCache interface {
	Get(ctx context.Context, key string) ([]domain.Form, bool, error)
	Set(ctx context.Context, key string, forms []domain.Form) error
}

type FormRepository struct {
	gateway FormGateway
	cache   FormCache
}

// NewFormRepository creates a repository. cache may be nil, in which case the
// directory is listed on every lookup.
func NewFormRepository(gateway FormGateway, cache FormCache) *FormRepository {
	return &FormRepository{gateway: gateway, cache: cache}
}

// Find returns the form whose name matches exactly.
func (r *FormRepository) Find(ctx context.Context, cred domain.Credentials, name string) (domain.Form, error) {
	forms, err := r.list(ctx, cred)
	if err != nil {
		return domain.Form{}, err
	}
	for _, f := range forms {
		if f.Name == name {
			return f, nil
		}
	}
	return domain.Form{}, domain.NotFoundError{Resource: "form " + name}
}

func (r *FormRepository) list(ctx context.Context, cred domain.Credentials) ([]domain.Form, error) {
	if r.cache == nil {
		return r.gateway.ListForms(ctx, cred.AccessToken, cred.SiteID)
	}

	key := CacheKey(cred)
	forms, found, err := r.cache.Get(ctx, key)
	if err != nil {
		slog.WarnContext(
			ctx, "forms cache get failed",
			slog.String("error", err.Error()),
			slog.String("module", "repository"),
		)
	}
	if found {
		return forms, nil
	}

	forms, err = r.gateway.ListForms(ctx, cred.AccessToken, cred.SiteID)
	if err != nil {
		return nil, err
	}

	err = r.cache.Set(ctx, key, forms)
	if err != nil {
		slog.WarnContext(
			ctx, "forms cache set failed",
			slog.String("error", err.Error()),
			slog.String("module", "repository"),
		)
	}
	return forms, nil
}

// CacheKey derives the cache key of a credential pair. The token itself is
// never part of the key.
func CacheKey(cred domain.Credentials) string {
	sum := xxh3.HashString128(cred.AccessToken + "\x00" + cred.SiteID).Bytes()
	return "hl3mural:forms:" + hex.EncodeToString(sum[:])
}

var _ usecase.FormRepository = (*FormRepository)(nil)
