package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ok(context.Context) error   { return nil }
func fail(context.Context) error { return errors.New("connection refused") }

func TestCheckAll(t *testing.T) {
	tests := []struct {
		name     string
		postgres CheckFunc
		redis    CheckFunc
		want     string
	}{
		{"all healthy", ok, ok, StatusHealthy},
		{"optional down", ok, fail, StatusDegraded},
		{"critical down", fail, ok, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChecker(time.Second)
			c.Register("postgres", true, tt.postgres)
			c.Register("redis", false, tt.redis)

			report := c.CheckAll(context.Background())
			assert.Equal(t, tt.want, report.Status)
			assert.Len(t, report.Dependencies, 2)
			assert.Equal(t, "postgres", report.Dependencies[0].Name)
		})
	}
}

func TestHandlerStatusCode(t *testing.T) {
	c := NewChecker(time.Second)
	c.Register("postgres", true, fail)

	rec := httptest.NewRecorder()
	c.Handler()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok":false`)
}
