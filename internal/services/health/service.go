package health

import (
	"context"
	"sort"
	"time"
)

// Check probes one dependency. A nil error means healthy.
type Check func(ctx context.Context) error

// Service encapsulates health-related checks.
type Service struct {
	checks  map[string]Check
	timeout time.Duration
}

// Report is the health payload.
type Report struct {
	OK     bool              `json:"ok"`
	Checks map[string]string `json:"checks,omitempty"`
}

// NewService constructs a new health service.
func NewService() *Service {
	return &Service{checks: map[string]Check{}, timeout: 2 * time.Second}
}

// Register adds a named dependency check.
func (s *Service) Register(name string, check Check) {
	if check == nil {
		return
	}
	s.checks[name] = check
}

// Names lists registered checks in sorted order.
func (s *Service) Names() []string {
	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Status runs every check with a shared deadline.
func (s *Service) Status(ctx context.Context) Report {
	report := Report{OK: true}
	if len(s.checks) == 0 {
		return report
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	report.Checks = make(map[string]string, len(s.checks))
	for _, name := range s.Names() {
		if err := s.checks[name](ctx); err != nil {
			report.OK = false
			report.Checks[name] = err.Error()
			continue
		}
		report.Checks[name] = "ok"
	}
	return report
}
