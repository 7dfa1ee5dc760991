package catalog

// Web3 entry types.
const (
	Web3TypeGrant   = "grant"
	Web3TypeProject = "project"
	Web3TypeAttempt = "attempt"
)

// Web3 entry statuses.
const (
	Web3StatusCompleted  = "completed"
	Web3StatusInProgress = "in-progress"
	Web3StatusApplied    = "applied"
	Web3StatusRejected   = "rejected"
)

// Web3Filters lists the filter values accepted by FilterWeb3.
var Web3Filters = []string{"all", "projects", "grants", Web3StatusCompleted, Web3StatusApplied, Web3StatusInProgress}

// Grant describes the funding program behind a grant entry.
type Grant struct {
	Name   string `json:"name" yaml:"name" validate:"required"`
	Amount string `json:"amount,omitempty" yaml:"amount"`
	Round  string `json:"round,omitempty" yaml:"round"`
}

// Web3Project is a blockchain project, grant or grant attempt.
type Web3Project struct {
	ID           string   `json:"id" yaml:"id" validate:"required"`
	Title        string   `json:"title" yaml:"title" validate:"required"`
	Type         string   `json:"type" yaml:"type" validate:"required,oneof=grant project attempt"`
	Status       string   `json:"status" yaml:"status" validate:"required,oneof=completed in-progress applied rejected"`
	Description  string   `json:"description" yaml:"description"`
	Technologies []string `json:"technologies" yaml:"technologies"`
	Blockchain   string   `json:"blockchain,omitempty" yaml:"blockchain"`
	Grant        *Grant   `json:"grant,omitempty" yaml:"grant" validate:"omitempty"`
	GitHub       string   `json:"github,omitempty" yaml:"github" validate:"omitempty,url"`
	Live         string   `json:"live,omitempty" yaml:"live" validate:"omitempty,url"`
	Date         string   `json:"date" yaml:"date"`
}

// Web3Stats summarizes Web3 activity.
type Web3Stats struct {
	CompletedProjects int `json:"completed_projects"`
	ActiveGrants      int `json:"active_grants"`
	GrantAttempts     int `json:"grant_attempts"`
}

// FilterWeb3 keeps entries matching filter: "all", "projects", "grants", or
// a status. An empty or unrecognized filter keeps everything.
func FilterWeb3(items []Web3Project, filter string) []Web3Project {
	out := make([]Web3Project, 0, len(items))
	for _, p := range items {
		if matchesWeb3(p, filter) {
			out = append(out, p)
		}
	}
	return out
}

func matchesWeb3(p Web3Project, filter string) bool {
	switch filter {
	case "projects":
		return p.Type == Web3TypeProject
	case "grants":
		return p.Type == Web3TypeGrant
	case Web3StatusCompleted, Web3StatusInProgress, Web3StatusApplied, Web3StatusRejected:
		return p.Status == filter
	default:
		return true
	}
}

// Stats computes the headline Web3 counters.
func Stats(items []Web3Project) Web3Stats {
	var s Web3Stats
	for _, p := range items {
		switch p.Type {
		case Web3TypeProject:
			if p.Status == Web3StatusCompleted {
				s.CompletedProjects++
			}
		case Web3TypeGrant:
			s.GrantAttempts++
			if p.Status == Web3StatusApplied || p.Status == Web3StatusInProgress {
				s.ActiveGrants++
			}
		}
	}
	return s
}
