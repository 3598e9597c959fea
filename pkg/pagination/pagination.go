package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 20
	// MaxLimit caps how many rows any listing request can ask for.
	MaxLimit = 100
)

// State mirrors the pagination block of a listing response. It is derived
// entirely from the latest server payload; the client never computes pages.
type State struct {
	Total       int `json:"total"`
	Pages       int `json:"pages"`
	CurrentPage int `json:"currentPage"`
	Limit       int `json:"limit"`
}

// NewState returns the initial window before any listing has loaded.
func NewState(limit int) State {
	return State{CurrentPage: 1, Limit: NormalizeLimit(limit)}
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// InRange reports whether page is a valid target for the current window.
// Page moves outside [1, Pages] are no-ops by contract.
func (s State) InRange(page int) bool {
	return page >= 1 && page <= s.Pages
}

// ResetPage returns the state pointed back at page 1, keeping the limit.
// Every filter change routes through here.
func (s State) ResetPage() State {
	s.CurrentPage = 1
	return s
}
