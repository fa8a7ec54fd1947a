package usecase

import (
	"context"

	"github.com/totegamma/hl3mural/internal/domain"
)

// CredentialProvider resolves the forms provider credentials for one request.
type CredentialProvider interface {
	Credentials() domain.Credentials
}

// FormRepository looks up a form by exact name. It returns domain.ErrNotFound
// when no form of that name is visible to the credentials.
type FormRepository interface {
	Find(ctx context.Context, cred domain.Credentials, name string) (domain.Form, error)
}

// SubmissionGateway fetches one page of a form's submissions from the provider.
type SubmissionGateway interface {
	ListSubmissions(ctx context.Context, token, formID string, page, perPage int) ([]domain.Submission, error)
}
