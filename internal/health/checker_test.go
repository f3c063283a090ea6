package health

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubCheckable struct {
	err error
}

func (s *stubCheckable) HealthCheck(_ context.Context) error {
	return s.err
}

func TestChecker_Check(t *testing.T) {
	checker := NewChecker(slog.New(slog.NewTextHandler(io.Discard, nil)))
	checker.AddCheck("database", &stubCheckable{})
	checker.AddCheck("redis", &stubCheckable{err: errors.New("connection refused")})
	checker.AddCheck("telegram", nil)
	checker.AddCheck("", &stubCheckable{})

	statuses := checker.Check(context.Background())

	assert.Len(t, statuses, 3, "nameless registrations are dropped")
	assert.Equal(t, StatusOK, statuses["database"])
	assert.Equal(t, "connection refused", statuses["redis"])
	assert.Equal(t, "no check configured", statuses["telegram"], "nil checks are reported, not run")
}
