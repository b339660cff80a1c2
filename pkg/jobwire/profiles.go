package jobwire

import (
	"context"
	"fmt"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CandidatesService wraps the /candidate profile endpoints.
type CandidatesService struct {
	client *Client
}

func (s *CandidatesService) GetProfile(ctx context.Context) (Result[CandidateProfile], error) {
	return getDecoded[CandidateProfile](ctx, s.client, "/candidate", nil)
}

func (s *CandidatesService) UpdateProfile(ctx context.Context, profile CandidateProfile) (Result[CandidateProfile], error) {
	return putDecoded[CandidateProfile](ctx, s.client, "/candidate", profile)
}

// GetPublicProfile returns the public view of a candidate, readable
// without the candidate's own credential.
func (s *CandidatesService) GetPublicProfile(ctx context.Context, candidateID string) (Result[CandidateProfile], error) {
	return getDecoded[CandidateProfile](ctx, s.client, fmt.Sprintf("/candidate/%s/public", candidateID), nil)
}

// EmployersService wraps the /employer profile endpoints.
type EmployersService struct {
	client *Client
}

func (s *EmployersService) GetProfile(ctx context.Context) (Result[EmployerProfile], error) {
	return getDecoded[EmployerProfile](ctx, s.client, "/employer", nil)
}

func (s *EmployersService) UpdateProfile(ctx context.Context, profile EmployerProfile) (Result[EmployerProfile], error) {
	return putDecoded[EmployerProfile](ctx, s.client, "/employer", profile)
}

type AttachOrganizationRequest struct {
	OrganizationID string `json:"organization_id"`
}

// AttachOrganization links the current employer to an organization.
func (s *EmployersService) AttachOrganization(ctx context.Context, organizationID string) (Result[EmployerProfile], error) {
	return postDecoded[EmployerProfile](ctx, s.client, "/employer/attach-organization", AttachOrganizationRequest{
		OrganizationID: organizationID,
	})
}

const publicReadTTL = 5 * time.Minute

// OrganizationsService wraps the /organization endpoints. Public reads
// are cached with a short TTL since organization pages are fetched on
// every job card render.
type OrganizationsService struct {
	client *Client
	cache  *gocache.Cache
}

func newOrganizationsService(c *Client) *OrganizationsService {
	return &OrganizationsService{
		client: c,
		cache:  gocache.New(publicReadTTL, publicReadTTL),
	}
}

// Get returns the organization of the current employer.
func (s *OrganizationsService) Get(ctx context.Context) (Result[Organization], error) {
	return getDecoded[Organization](ctx, s.client, "/organization", nil)
}

func (s *OrganizationsService) Update(ctx context.Context, org Organization) (Result[Organization], error) {
	return putDecoded[Organization](ctx, s.client, "/organization", org)
}

// List returns organizations matching an optional name query.
func (s *OrganizationsService) List(ctx context.Context, nameQuery string) (Result[[]Organization], error) {
	q := url.Values{}
	q.Set("q", nameQuery)

	return getDecoded[[]Organization](ctx, s.client, "/organization/list", q)
}

// GetPublic returns the public view of an organization by ID, served
// from the cache when a recent copy exists.
func (s *OrganizationsService) GetPublic(ctx context.Context, organizationID string) (Result[Organization], error) {
	if cached, ok := s.cache.Get(organizationID); ok {
		//nolint:forcetypeassert
		return cached.(Result[Organization]), nil
	}

	res, err := getDecoded[Organization](ctx, s.client, fmt.Sprintf("/organization/%s", organizationID), nil)
	if err != nil {
		return res, err
	}
	s.cache.Set(organizationID, res, 0)

	return res, nil
}

func (s *OrganizationsService) Delete(ctx context.Context, organizationID string) (Result[struct{}], error) {
	s.cache.Delete(organizationID)

	return deleteDecoded[struct{}](ctx, s.client, fmt.Sprintf("/organization/%s", organizationID))
}
