package bootstrap

import (
	"fmt"
	"io"
	"time"

	"github.com/kbukum/ssot/config"
)

// SourceSummary is the number of keys one source supplied.
type SourceSummary struct {
	Source config.Source
	Keys   int
}

// Summary tracks and displays what the application started with.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	resolutionID    string
	totalKeys       int
	sources         []SourceSummary
}

// NewSummary creates a new startup summary.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{
		serviceName: serviceName,
		version:     version,
	}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// TrackConfig records which source supplied how many keys of r.
func (s *Summary) TrackConfig(r *config.Resolved) {
	s.resolutionID = r.ID()
	s.totalKeys = r.Len()

	counts := r.CountBySource()
	s.sources = s.sources[:0]
	for _, src := range config.Sources() {
		s.sources = append(s.sources, SourceSummary{Source: src, Keys: counts[src]})
	}
}

// Sources returns the per-source key counts in precedence order.
func (s *Summary) Sources() []SourceSummary {
	return append([]SourceSummary(nil), s.sources...)
}

// Render writes the summary to w.
func (s *Summary) Render(w io.Writer) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "🚀 %s v%s started in %.2fs\n\n",
		s.serviceName, s.version, s.startupDuration.Seconds())

	fmt.Fprintf(w, "⚙️  Configuration (%d keys, resolution %s)\n", s.totalKeys, s.resolutionID)
	for i, src := range s.sources {
		prefix := "├──"
		if i == len(s.sources)-1 {
			prefix = "└──"
		}
		fmt.Fprintf(w, "   %s %s %s: %d\n", prefix, sourceIcon(src.Keys), src.Source, src.Keys)
	}
	if len(s.sources) == 0 {
		fmt.Fprintf(w, "   └── No configuration resolved\n")
	}
	fmt.Fprintf(w, "\n")
}

func sourceIcon(keys int) string {
	if keys == 0 {
		return "⏸️"
	}
	return "✅"
}
