// Package threat refreshes externally-sourced threat data on a fixed
// interval. The poll sits outside the quiz core: it only feeds the
// notification store when the backend's assessment changes.
package threat

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"coastal-quiz-service/internal/domain"
	"coastal-quiz-service/internal/gateway"
	"coastal-quiz-service/internal/notify"
)

// Source is the slice of the gateway client the poller needs.
type Source interface {
	ThreatDetection(ctx context.Context) (gateway.ThreatAssessment, error)
}

// Poller fetches the current threat assessment at a fixed interval and
// pushes a notification whenever the overall level changes.
type Poller struct {
	source   Source
	notices  *notify.Store
	interval time.Duration

	mu   sync.Mutex
	last domain.ThreatLevel
}

func NewPoller(source Source, notices *notify.Store, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Poller{source: source, notices: notices, interval: interval}
}

// Run polls until the context is cancelled. Fetch failures are logged and
// retried on the next tick; no backoff, matching the flat poll cadence.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	assessment, err := p.source.ThreatDetection(ctx)
	if err != nil {
		log.Printf("threat poll failed: %v", err)
		return
	}
	p.apply(assessment.OverallThreat)
}

// apply records the new level and notifies on change.
func (p *Poller) apply(level domain.ThreatLevel) {
	p.mu.Lock()
	changed := level != "" && level != p.last
	previous := p.last
	if changed {
		p.last = level
	}
	p.mu.Unlock()

	if !changed {
		return
	}
	// first observation seeds the level quietly
	if previous == "" && level == domain.ThreatLow {
		return
	}

	p.notices.Add(notify.Draft{
		Title:    fmt.Sprintf("Threat Level %s", level),
		Message:  fmt.Sprintf("Coastal threat assessment changed to %s. Monitor official updates.", level),
		Type:     notificationType(level),
		Priority: priority(level),
	})
}

func notificationType(level domain.ThreatLevel) domain.NotificationType {
	switch level {
	case domain.ThreatHigh:
		return domain.NotificationError
	case domain.ThreatMedium:
		return domain.NotificationWarning
	default:
		return domain.NotificationInfo
	}
}

func priority(level domain.ThreatLevel) domain.Priority {
	switch level {
	case domain.ThreatHigh:
		return domain.PriorityHigh
	case domain.ThreatMedium:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}
