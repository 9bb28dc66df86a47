package threat

import (
	"context"
	"errors"
	"testing"
	"time"

	"coastal-quiz-service/internal/domain"
	"coastal-quiz-service/internal/gateway"
	"coastal-quiz-service/internal/notify"
)

type fakeSource struct {
	level domain.ThreatLevel
	err   error
	calls int
}

func (f *fakeSource) ThreatDetection(context.Context) (gateway.ThreatAssessment, error) {
	f.calls++
	if f.err != nil {
		return gateway.ThreatAssessment{}, f.err
	}
	return gateway.ThreatAssessment{OverallThreat: f.level}, nil
}

func TestLevelChangeAddsNotification(t *testing.T) {
	notices := notify.NewStore()
	source := &fakeSource{level: domain.ThreatHigh}
	poller := NewPoller(source, notices, time.Minute)

	poller.poll(context.Background())

	all := notices.All()
	if len(all) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(all))
	}
	if all[0].Type != domain.NotificationError || all[0].Priority != domain.PriorityHigh {
		t.Fatalf("expected error/high for HIGH level, got %+v", all[0])
	}
}

func TestUnchangedLevelStaysQuiet(t *testing.T) {
	notices := notify.NewStore()
	source := &fakeSource{level: domain.ThreatMedium}
	poller := NewPoller(source, notices, time.Minute)

	poller.poll(context.Background())
	poller.poll(context.Background())

	if got := len(notices.All()); got != 1 {
		t.Fatalf("expected a single notification for repeated level, got %d", got)
	}
}

func TestInitialLowSeedsSilently(t *testing.T) {
	notices := notify.NewStore()
	poller := NewPoller(&fakeSource{level: domain.ThreatLow}, notices, time.Minute)

	poller.poll(context.Background())
	if got := len(notices.All()); got != 0 {
		t.Fatalf("expected no notification for initial LOW, got %d", got)
	}
}

func TestEscalationAfterLow(t *testing.T) {
	notices := notify.NewStore()
	source := &fakeSource{level: domain.ThreatLow}
	poller := NewPoller(source, notices, time.Minute)

	poller.poll(context.Background())
	source.level = domain.ThreatMedium
	poller.poll(context.Background())
	source.level = domain.ThreatLow
	poller.poll(context.Background())

	all := notices.All()
	if len(all) != 2 {
		t.Fatalf("expected notifications for both transitions, got %d", len(all))
	}
	// newest first: the de-escalation back to LOW
	if all[0].Type != domain.NotificationInfo || all[0].Priority != domain.PriorityLow {
		t.Fatalf("expected info/low for LOW, got %+v", all[0])
	}
	if all[1].Type != domain.NotificationWarning || all[1].Priority != domain.PriorityMedium {
		t.Fatalf("expected warning/medium for MEDIUM, got %+v", all[1])
	}
}

func TestFetchErrorKeepsState(t *testing.T) {
	notices := notify.NewStore()
	source := &fakeSource{level: domain.ThreatHigh}
	poller := NewPoller(source, notices, time.Minute)

	poller.poll(context.Background())
	source.err = errors.New("backend down")
	poller.poll(context.Background())
	source.err = nil
	poller.poll(context.Background())

	if got := len(notices.All()); got != 1 {
		t.Fatalf("expected unchanged level to stay quiet across an error, got %d", got)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	notices := notify.NewStore()
	source := &fakeSource{level: domain.ThreatLow}
	poller := NewPoller(source, notices, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Run(ctx)
		close(done)
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("poller did not stop after cancel")
	}
	if source.calls < 2 {
		t.Fatalf("expected repeated polls, got %d", source.calls)
	}
}
