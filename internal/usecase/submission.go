package usecase

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/hl3mural"
	"github.com/totegamma/hl3mural/internal/domain"
)

var tracer = otel.Tracer("usecase")

type SubmissionUsecase struct {
	credentials CredentialProvider
	forms       FormRepository
	gateway     SubmissionGateway
	defaultForm string
}

func NewSubmissionUsecase(
	credentials CredentialProvider,
	forms FormRepository,
	gateway SubmissionGateway,
	defaultForm string,
) *SubmissionUsecase {
	if defaultForm == "" {
		defaultForm = domain.DefaultFormName
	}
	return &SubmissionUsecase{
		credentials: credentials,
		forms:       forms,
		gateway:     gateway,
		defaultForm: defaultForm,
	}
}

// List returns one page of the named form's submissions, projected to their
// data payload. A form that does not exist yet yields an empty page.
func (uc *SubmissionUsecase) List(ctx context.Context, req domain.PageRequest) ([]hl3mural.Entry, error) {
	ctx, span := tracer.Start(ctx, "Submission.Usecase.List")
	defer span.End()

	req = req.Normalize()
	if req.Form == "" {
		req.Form = uc.defaultForm
	}
	span.SetAttributes(
		attribute.String("form", req.Form),
		attribute.Int("page", req.Page),
		attribute.Int("perPage", req.PerPage),
	)

	cred := uc.credentials.Credentials()
	if cred.AccessToken == "" {
		span.RecordError(domain.ErrMissingCredential)
		return nil, domain.ErrMissingCredential
	}

	form, err := uc.forms.Find(ctx, cred, req.Form)
	if errors.Is(err, domain.ErrNotFound) {
		return []hl3mural.Entry{}, nil
	}
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "find form")
	}

	submissions, err := uc.gateway.ListSubmissions(ctx, cred.AccessToken, form.ID, req.Page, req.PerPage)
	if err != nil {
		// the gateway already names the operation
		span.RecordError(err)
		return nil, err
	}

	entries := make([]hl3mural.Entry, 0, len(submissions))
	for _, s := range submissions {
		entries = append(entries, Project(s))
	}
	return entries, nil
}

// Project keeps only the data payload of a submission.
func Project(s domain.Submission) hl3mural.Entry {
	data := make(hl3mural.StoryData, len(s.Data))
	for k, v := range s.Data {
		data[k] = v
	}
	return hl3mural.Entry{Data: data}
}
