package jobwire

import (
	"context"
	"io"
)

// FilesService wraps the /files upload and delete endpoints. Uploads
// are multipart; the Client leaves the Content-Type to the multipart
// writer so the boundary is carried correctly.
type FilesService struct {
	client *Client
}

func (s *FilesService) UploadResume(ctx context.Context, filename string, file io.Reader) (Result[UploadedFile], error) {
	return s.upload(ctx, "/files/resume", filename, file)
}

func (s *FilesService) UploadProfilePicture(ctx context.Context, filename string, file io.Reader) (Result[UploadedFile], error) {
	return s.upload(ctx, "/files/profile-picture", filename, file)
}

func (s *FilesService) UploadOrganizationLogo(ctx context.Context, filename string, file io.Reader) (Result[UploadedFile], error) {
	return s.upload(ctx, "/files/organization-logo", filename, file)
}

func (s *FilesService) DeleteResume(ctx context.Context) (Result[struct{}], error) {
	return deleteDecoded[struct{}](ctx, s.client, "/files/resume")
}

func (s *FilesService) DeleteProfilePicture(ctx context.Context) (Result[struct{}], error) {
	return deleteDecoded[struct{}](ctx, s.client, "/files/profile-picture")
}

func (s *FilesService) DeleteOrganizationLogo(ctx context.Context) (Result[struct{}], error) {
	return deleteDecoded[struct{}](ctx, s.client, "/files/organization-logo")
}

func (s *FilesService) upload(ctx context.Context, path, filename string, file io.Reader) (Result[UploadedFile], error) {
	body, err := s.client.Upload(ctx, path, "file", filename, file, nil)
	if err != nil {
		return Result[UploadedFile]{}, err
	}

	return decode[UploadedFile](body)
}
