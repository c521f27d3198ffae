package notify

import (
	"context"
	"os"
	"testing"

	"github.com/rs/zerolog"
)

func TestLogSender_Send(t *testing.T) {
	logger := zerolog.New(os.Stderr)
	s := NewLogSender(logger)

	err := s.Send(context.Background(), Message{
		ToEmail: "mama@example.com",
		ToName:  "Amina",
		Subject: "Upcoming vaccination",
		Body:    "OPV dose 1 is due tomorrow.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSendGridSender_FallsBackToPlainBody(t *testing.T) {
	// Construction only; delivery requires a live API key.
	s := NewSendGridSender("test-key", "MamaCare", "no-reply@mamacare.health")
	if s == nil {
		t.Fatal("expected non-nil sender")
	}
	if s.fromAddr != "no-reply@mamacare.health" {
		t.Errorf("expected from address to be set, got %s", s.fromAddr)
	}
}
