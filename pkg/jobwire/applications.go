package jobwire

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ApplicationsService wraps the /applications endpoints.
type ApplicationsService struct {
	client *Client
}

type ApplyRequest struct {
	JobID       string `json:"job_id"`
	CoverLetter string `json:"cover_letter,omitempty"`
	ResumeURL   string `json:"resume_url,omitempty"`
}

type ApplicationFilter struct {
	JobID   string
	Status  ApplicationStatus
	Page    int
	PerPage int
}

func (f ApplicationFilter) query() url.Values {
	q := url.Values{}
	q.Set("job_id", f.JobID)
	q.Set("status", string(f.Status))
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(f.PerPage))
	}

	return q
}

// Apply submits an application for a job as the current candidate.
func (s *ApplicationsService) Apply(ctx context.Context, req ApplyRequest) (Result[Application], error) {
	return postDecoded[Application](ctx, s.client, "/applications", req)
}

func (s *ApplicationsService) List(ctx context.Context, filter ApplicationFilter) (Result[[]Application], error) {
	return getDecoded[[]Application](ctx, s.client, "/applications", filter.query())
}

func (s *ApplicationsService) Get(ctx context.Context, applicationID string) (Result[Application], error) {
	return getDecoded[Application](ctx, s.client, fmt.Sprintf("/applications/%s", applicationID), nil)
}

type UpdateStatusRequest struct {
	Status  ApplicationStatus `json:"status"`
	StageID string            `json:"stage_id,omitempty"`
}

// UpdateStatus moves an application through the hiring pipeline;
// employer-side operation.
func (s *ApplicationsService) UpdateStatus(ctx context.Context, applicationID string, req UpdateStatusRequest) (Result[Application], error) {
	return putDecoded[Application](ctx, s.client, fmt.Sprintf("/applications/%s/status", applicationID), req)
}

// Withdraw retracts the current candidate's application.
func (s *ApplicationsService) Withdraw(ctx context.Context, applicationID string) (Result[Application], error) {
	return postDecoded[Application](ctx, s.client, fmt.Sprintf("/applications/%s/withdraw", applicationID), nil)
}
