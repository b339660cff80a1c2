package jobwire

import "time"

type UserType string

const (
	UserTypeCandidate UserType = "CANDIDATE"
	UserTypeEmployer  UserType = "EMPLOYER"
)

type UserStatus string

const (
	UserStatusPendingVerification UserStatus = "PENDING_VERIFICATION"
	UserStatusVerified            UserStatus = "VERIFIED"
	UserStatusActive              UserStatus = "ACTIVE"
	UserStatusSuspended           UserStatus = "SUSPENDED"
	UserStatusDeactivated         UserStatus = "DEACTIVATED"
)

type Gender string

const (
	GenderMale           Gender = "MALE"
	GenderFemale         Gender = "FEMALE"
	GenderOther          Gender = "OTHER"
	GenderPreferNotToSay Gender = "PREFER_NOT_TO_SAY"
)

type JobType string

const (
	JobTypeFullTime   JobType = "FULL_TIME"
	JobTypePartTime   JobType = "PART_TIME"
	JobTypeContract   JobType = "CONTRACT"
	JobTypeInternship JobType = "INTERNSHIP"
	JobTypeFreelance  JobType = "FREELANCE"
)

type WorkMode string

const (
	WorkModeRemote WorkMode = "REMOTE"
	WorkModeOnSite WorkMode = "ON_SITE"
	WorkModeHybrid WorkMode = "HYBRID"
)

type ExperienceLevel string

const (
	ExperienceLevelEntry     ExperienceLevel = "ENTRY"
	ExperienceLevelJunior    ExperienceLevel = "JUNIOR"
	ExperienceLevelMid       ExperienceLevel = "MID"
	ExperienceLevelSenior    ExperienceLevel = "SENIOR"
	ExperienceLevelLead      ExperienceLevel = "LEAD"
	ExperienceLevelExecutive ExperienceLevel = "EXECUTIVE"
)

type JobStatus string

const (
	JobStatusDraft  JobStatus = "DRAFT"
	JobStatusActive JobStatus = "ACTIVE"
	JobStatusPaused JobStatus = "PAUSED"
	JobStatusClosed JobStatus = "CLOSED"
)

type ApplicationStatus string

const (
	ApplicationStatusApplied            ApplicationStatus = "APPLIED"
	ApplicationStatusInReview           ApplicationStatus = "IN_REVIEW"
	ApplicationStatusInterviewScheduled ApplicationStatus = "INTERVIEW_SCHEDULED"
	ApplicationStatusInterviewed        ApplicationStatus = "INTERVIEWED"
	ApplicationStatusShortlisted        ApplicationStatus = "SHORTLISTED"
	ApplicationStatusRejected           ApplicationStatus = "REJECTED"
	ApplicationStatusHired              ApplicationStatus = "HIRED"
	ApplicationStatusWithdrawn          ApplicationStatus = "WITHDRAWN"
)

type FileType string

const (
	FileTypeResume         FileType = "RESUME"
	FileTypeProfilePicture FileType = "PROFILE_PICTURE"
	FileTypeCompanyLogo    FileType = "COMPANY_LOGO"
	FileTypePortfolio      FileType = "PORTFOLIO"
	FileTypeCoverLetter    FileType = "COVER_LETTER"
)

type ConversationType string

const (
	ConversationTypeEmployerInternal     ConversationType = "EMPLOYER_INTERNAL"
	ConversationTypeCandidateInternal    ConversationType = "CANDIDATE_INTERNAL"
	ConversationTypeRecruiterToCandidate ConversationType = "RECRUITER_TO_CANDIDATE"
)

type MessageType string

const (
	MessageTypeText   MessageType = "TEXT"
	MessageTypeSystem MessageType = "SYSTEM"
)

// UserSummary is the compact user representation returned by the auth
// endpoints and attached to a session.
type UserSummary struct {
	ID                string     `json:"id"`
	FirstName         string     `json:"first_name,omitempty"`
	LastName          string     `json:"last_name,omitempty"`
	Email             string     `json:"email"`
	EmailVerified     bool       `json:"email_verified"`
	UserType          UserType   `json:"user_type"`
	Status            UserStatus `json:"status,omitempty"`
	ProfilePictureURL string     `json:"profile_picture_url,omitempty"`
	OrganizationName  string     `json:"organization_name,omitempty"`
	IsProfileComplete bool       `json:"is_profile_complete"`
}

// TokenPair is the access/refresh token pair issued by the backend.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
}

// AuthPayload is the data carried by register/login/google responses.
type AuthPayload struct {
	User   UserSummary `json:"user"`
	Tokens TokenPair   `json:"tokens"`
}

// SessionInfo describes one active backend session of the current user.
type SessionInfo struct {
	ID         string    `json:"id"`
	UserAgent  string    `json:"user_agent,omitempty"`
	IPAddress  string    `json:"ip_address,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at,omitempty"`
	Current    bool      `json:"current,omitempty"`
}

type ExperienceEntry struct {
	Company string `json:"company"`
	Role    string `json:"role"`
	From    string `json:"from,omitempty"`
	To      string `json:"to,omitempty"`
}

type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        int    `json:"year,omitempty"`
}

type CandidateProfile struct {
	ID     string `json:"id,omitempty"`
	UserID string `json:"user_id,omitempty"`

	FirstName         string `json:"first_name,omitempty"`
	LastName          string `json:"last_name,omitempty"`
	Phone             string `json:"phone,omitempty"`
	DateOfBirth       string `json:"date_of_birth,omitempty"`
	Gender            Gender `json:"gender,omitempty"`
	Address           string `json:"address,omitempty"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`

	ProfessionalSummary string   `json:"professional_summary,omitempty"`
	TotalExperience     float64  `json:"total_experience,omitempty"`
	CurrentSalary       float64  `json:"current_salary,omitempty"`
	ExpectedSalary      float64  `json:"expected_salary,omitempty"`
	PreferredJobType    JobType  `json:"preferred_job_type,omitempty"`
	PreferredWorkMode   WorkMode `json:"preferred_work_mode,omitempty"`
	PreferredLocations  []string `json:"preferred_locations,omitempty"`
	NoticePeriod        int      `json:"notice_period,omitempty"`

	Skills         []string          `json:"skills,omitempty"`
	Experience     []ExperienceEntry `json:"experience,omitempty"`
	Education      []EducationEntry  `json:"education,omitempty"`
	Languages      []string          `json:"languages,omitempty"`
	Certifications []string          `json:"certifications,omitempty"`

	PortfolioURL string `json:"portfolio_url,omitempty"`
	LinkedinURL  string `json:"linkedin_url,omitempty"`
	GithubURL    string `json:"github_url,omitempty"`
	ResumeURL    string `json:"resume_url,omitempty"`

	IsActive           bool `json:"is_active,omitempty"`
	IsAvailableForWork bool `json:"is_available_for_work,omitempty"`
	IsProfileComplete  bool `json:"is_profile_complete,omitempty"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type EmployerProfile struct {
	ID     string `json:"id,omitempty"`
	UserID string `json:"user_id,omitempty"`

	FirstName         string `json:"first_name,omitempty"`
	LastName          string `json:"last_name,omitempty"`
	Phone             string `json:"phone,omitempty"`
	Designation       string `json:"designation,omitempty"`
	Department        string `json:"department,omitempty"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`

	OrganizationID string `json:"organization_id,omitempty"`
	Role           string `json:"role,omitempty"`

	IsProfileComplete bool `json:"is_profile_complete,omitempty"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type Organization struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Industry    string `json:"industry,omitempty"`
	CompanySize string `json:"company_size,omitempty"`
	Website     string `json:"website,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
	Location    string `json:"location,omitempty"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type Job struct {
	ID                  string `json:"id,omitempty"`
	OrganizationID      string `json:"organization_id,omitempty"`
	CreatedByEmployerID string `json:"created_by_employer_id,omitempty"`

	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	Requirements     string `json:"requirements,omitempty"`
	Responsibilities string `json:"responsibilities,omitempty"`
	Vacancies        int    `json:"vacancies,omitempty"`

	JobType                JobType         `json:"job_type"`
	WorkMode               WorkMode        `json:"work_mode"`
	ExperienceLevel        ExperienceLevel `json:"experience_level"`
	RequiredSkills         []string        `json:"required_skills,omitempty"`
	PreferredSkills        []string        `json:"preferred_skills,omitempty"`
	MinimumYearsExperience int             `json:"minimum_years_experience,omitempty"`

	Location       map[string]string `json:"location,omitempty"`
	SalaryMin      float64           `json:"salary_min,omitempty"`
	SalaryMax      float64           `json:"salary_max,omitempty"`
	SalaryCurrency string            `json:"salary_currency,omitempty"`
	SalaryPeriod   string            `json:"salary_period,omitempty"`

	Category            string     `json:"category,omitempty"`
	Department          string     `json:"department,omitempty"`
	Benefits            []string   `json:"benefits,omitempty"`
	ApplicationDeadline *time.Time `json:"application_deadline,omitempty"`

	Status           JobStatus  `json:"status,omitempty"`
	IsFeatured       bool       `json:"is_featured,omitempty"`
	ViewCount        int        `json:"view_count,omitempty"`
	ApplicationCount int        `json:"application_count,omitempty"`
	CreatedAt        *time.Time `json:"created_at,omitempty"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`
}

type Application struct {
	ID             string `json:"id,omitempty"`
	JobID          string `json:"job_id"`
	CandidateID    string `json:"candidate_id,omitempty"`
	CurrentStageID string `json:"current_stage_id,omitempty"`

	Status      ApplicationStatus `json:"status,omitempty"`
	CoverLetter string            `json:"cover_letter,omitempty"`
	ResumeURL   string            `json:"resume_url,omitempty"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type Conversation struct {
	ID            string           `json:"id"`
	Type          ConversationType `json:"type"`
	IsGroupChat   bool             `json:"is_group_chat,omitempty"`
	GroupName     string           `json:"group_name,omitempty"`
	LastMessageAt *time.Time       `json:"last_message_at,omitempty"`
	ExpiresAt     *time.Time       `json:"expires_at,omitempty"`
	IsActive      bool             `json:"is_active,omitempty"`
}

type Message struct {
	ID             string      `json:"id"`
	ConversationID string      `json:"conversation_id"`
	SenderID       string      `json:"sender_id,omitempty"`
	SenderType     UserType    `json:"sender_type,omitempty"`
	Content        string      `json:"content"`
	MessageType    MessageType `json:"message_type,omitempty"`
	IsEdited       bool        `json:"is_edited,omitempty"`
	CreatedAt      *time.Time  `json:"created_at,omitempty"`
}

type UploadedFile struct {
	ID       string   `json:"id,omitempty"`
	FileType FileType `json:"file_type,omitempty"`
	URL      string   `json:"url"`
	Filename string   `json:"filename,omitempty"`
	Size     int64    `json:"size,omitempty"`
}
