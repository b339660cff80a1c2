package session

import "github.com/jobwire/jobwire-go/pkg/jobwire"

// State is the lifecycle position of the local session.
type State int

const (
	StateAnonymous State = iota
	StateBootstrapping
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateBootstrapping:
		return "bootstrapping"
	case StateAuthenticated:
		return "authenticated"
	}

	return "unknown"
}

// Session is a snapshot of the authenticated state. User and Tokens are
// either both set or both nil.
type Session struct {
	User   *jobwire.UserSummary
	Tokens *jobwire.TokenPair
}
