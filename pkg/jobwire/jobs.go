package jobwire

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	gocache "github.com/patrickmn/go-cache"
)

// JobsService wraps the /jobs endpoints. Single-job reads are cached
// with a short TTL; any mutation of a job invalidates its entry.
type JobsService struct {
	client *Client
	cache  *gocache.Cache
}

func newJobsService(c *Client) *JobsService {
	return &JobsService{
		client: c,
		cache:  gocache.New(publicReadTTL, publicReadTTL),
	}
}

// JobFilter narrows a job listing. Zero values are skipped when the
// filter is rendered into query parameters.
type JobFilter struct {
	Query           string
	JobType         JobType
	WorkMode        WorkMode
	ExperienceLevel ExperienceLevel
	Location        string
	Skills          []string
	SalaryMin       float64
	Status          JobStatus
	Page            int
	PerPage         int
}

func (f JobFilter) query() url.Values {
	q := url.Values{}
	q.Set("q", f.Query)
	q.Set("job_type", string(f.JobType))
	q.Set("work_mode", string(f.WorkMode))
	q.Set("experience_level", string(f.ExperienceLevel))
	q.Set("location", f.Location)
	q.Set("status", string(f.Status))
	for _, skill := range f.Skills {
		q.Add("skills", skill)
	}
	if f.SalaryMin > 0 {
		q.Set("salary_min", strconv.FormatFloat(f.SalaryMin, 'f', -1, 64))
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(f.PerPage))
	}

	return q
}

func (s *JobsService) List(ctx context.Context, filter JobFilter) (Result[[]Job], error) {
	return getDecoded[[]Job](ctx, s.client, "/jobs", filter.query())
}

func (s *JobsService) Get(ctx context.Context, jobID string) (Result[Job], error) {
	if cached, ok := s.cache.Get(jobID); ok {
		//nolint:forcetypeassert
		return cached.(Result[Job]), nil
	}

	res, err := getDecoded[Job](ctx, s.client, fmt.Sprintf("/jobs/%s", jobID), nil)
	if err != nil {
		return res, err
	}
	s.cache.Set(jobID, res, 0)

	return res, nil
}

func (s *JobsService) Create(ctx context.Context, job Job) (Result[Job], error) {
	return postDecoded[Job](ctx, s.client, "/jobs", job)
}

func (s *JobsService) Update(ctx context.Context, jobID string, job Job) (Result[Job], error) {
	s.cache.Delete(jobID)

	return putDecoded[Job](ctx, s.client, fmt.Sprintf("/jobs/%s", jobID), job)
}

// Publish moves a draft job to ACTIVE.
func (s *JobsService) Publish(ctx context.Context, jobID string) (Result[Job], error) {
	s.cache.Delete(jobID)

	return postDecoded[Job](ctx, s.client, fmt.Sprintf("/jobs/%s/publish", jobID), nil)
}

// Close moves a job to CLOSED; no further applications are accepted.
func (s *JobsService) Close(ctx context.Context, jobID string) (Result[Job], error) {
	s.cache.Delete(jobID)

	return postDecoded[Job](ctx, s.client, fmt.Sprintf("/jobs/%s/close", jobID), nil)
}

func (s *JobsService) Delete(ctx context.Context, jobID string) (Result[struct{}], error) {
	s.cache.Delete(jobID)

	return deleteDecoded[struct{}](ctx, s.client, fmt.Sprintf("/jobs/%s", jobID))
}
