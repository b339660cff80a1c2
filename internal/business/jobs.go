package business

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jobwire/jobwire-go/internal/config"
	"github.com/jobwire/jobwire-go/pkg/jobwire"
)

type JobsOptions struct {
	Query           string
	JobType         string
	WorkMode        string
	ExperienceLevel string
	Location        string
	Page            int
}

func JobsListMain(ctx context.Context, cfg *config.Config, opts JobsOptions) error {
	manager, closeFn, err := initSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	filter := jobwire.JobFilter{
		Query:           opts.Query,
		JobType:         jobwire.JobType(opts.JobType),
		WorkMode:        jobwire.WorkMode(opts.WorkMode),
		ExperienceLevel: jobwire.ExperienceLevel(opts.ExperienceLevel),
		Location:        opts.Location,
		Page:            opts.Page,
	}

	res, err := manager.Client().Jobs().List(ctx, filter)
	if err != nil {
		return fmt.Errorf("listing jobs: %w", err)
	}

	if len(res.Data) == 0 {
		fmt.Println("No jobs found")
		return nil
	}
	for _, job := range res.Data {
		fmt.Printf("%s  %-40s %s/%s (%s)\n", job.ID, job.Title, job.JobType, job.WorkMode, job.ExperienceLevel)
	}

	return nil
}

func JobsGetMain(ctx context.Context, cfg *config.Config, jobID string) error {
	manager, closeFn, err := initSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	res, err := manager.Client().Jobs().Get(ctx, jobID)
	if err != nil {
		return fmt.Errorf("getting job: %w", err)
	}

	job := res.Data
	fmt.Printf("%s\n\n%s\n", job.Title, job.Description)
	if len(job.RequiredSkills) > 0 {
		fmt.Printf("\nRequired skills: %v\n", job.RequiredSkills)
	}
	if job.SalaryMax > 0 {
		fmt.Printf("Salary: %.0f-%.0f %s/%s\n", job.SalaryMin, job.SalaryMax, job.SalaryCurrency, job.SalaryPeriod)
	}

	return nil
}

type ApplyOptions struct {
	JobID       string
	CoverLetter string
}

func ApplyMain(ctx context.Context, cfg *config.Config, opts ApplyOptions) error {
	manager, closeFn, err := initSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := requireAuth(manager); err != nil {
		return err
	}

	res, err := manager.Client().Applications().Apply(ctx, jobwire.ApplyRequest{
		JobID:       opts.JobID,
		CoverLetter: opts.CoverLetter,
	})
	if err != nil {
		return fmt.Errorf("applying to job: %w", err)
	}

	fmt.Printf("Application %s submitted (%s)\n", res.Data.ID, res.Data.Status)

	return nil
}

type UploadOptions struct {
	Kind string
	Path string
}

func UploadMain(ctx context.Context, cfg *config.Config, opts UploadOptions) error {
	manager, closeFn, err := initSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := requireAuth(manager); err != nil {
		return err
	}

	file, err := os.Open(opts.Path)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	files := manager.Client().Files()
	filename := filepath.Base(opts.Path)

	var res jobwire.Result[jobwire.UploadedFile]
	switch opts.Kind {
	case "resume":
		res, err = files.UploadResume(ctx, filename, file)
	case "picture":
		res, err = files.UploadProfilePicture(ctx, filename, file)
	case "logo":
		res, err = files.UploadOrganizationLogo(ctx, filename, file)
	default:
		return fmt.Errorf("unknown upload kind %q, want resume, picture, or logo", opts.Kind)
	}
	if err != nil {
		return fmt.Errorf("uploading %s: %w", opts.Kind, err)
	}

	fmt.Printf("Uploaded: %s\n", res.Data.URL)

	return nil
}
