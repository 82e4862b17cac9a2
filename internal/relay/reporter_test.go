package relay

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestFailureKind(t *testing.T) {
	testCases := []struct {
		err  error
		want string
	}{
		{ErrNoReplyTarget, "no_reply_target"},
		{fmt.Errorf("%w: %w", ErrUnknownTarget, ErrNotFound), "unknown_target"},
		{fmt.Errorf("record: %w", ErrDuplicateKey), "duplicate_key"},
		{fmt.Errorf("%w: sticker", ErrUnsupportedPayload), "unsupported_payload"},
		{fmt.Errorf("%w: %w", ErrDeliveryFailed, errPlatform), "delivery_failed"},
		{errPlatform, "internal"},
	}
	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, failureKind(tc.err))
		})
	}
}

func TestReporter(t *testing.T) {
	t.Run("logs with event id and counts", func(t *testing.T) {
		var buf bytes.Buffer
		reg := prometheus.NewRegistry()
		metrics := NewMetrics(reg, nil)
		r := NewReporter(slog.New(slog.NewJSONHandler(&buf, nil)), metrics)

		ctx := WithEventID(context.Background(), "evt-1")
		r.Report(ctx, "operator.resolve", fmt.Errorf("%w: %w", ErrUnknownTarget, ErrNotFound))
		r.Report(ctx, "correspondent.deliver", fmt.Errorf("%w: %w", ErrDeliveryFailed, errPlatform))

		out := buf.String()
		assert.Contains(t, out, `"level":"WARN"`)
		assert.Contains(t, out, `"level":"ERROR"`)
		assert.Contains(t, out, `"event_id":"evt-1"`)
		assert.Contains(t, out, `"op":"operator.resolve"`)

		assert.Equal(t, map[string]uint64{"unknown_target": 1, "delivery_failed": 1}, r.Failures())
		assert.Equal(t, float64(1), testutil.ToFloat64(metrics.failures.WithLabelValues("delivery_failed")))
	})

	t.Run("nil error is ignored", func(t *testing.T) {
		r := NewReporter(discardLogger(), nil)
		r.Report(context.Background(), "noop", nil)
		assert.Empty(t, r.Failures())
	})

	t.Run("transport failures", func(t *testing.T) {
		r := NewReporter(nil, nil)
		assert.NotPanics(t, func() {
			r.ReportTransport("Failed to get updates")
			r.ReportTransport("dial tcp: timeout")
		})
		assert.Equal(t, uint64(2), r.Failures()["transport"])
	})

	t.Run("failures returns a copy", func(t *testing.T) {
		r := NewReporter(discardLogger(), nil)
		r.Report(context.Background(), "op", ErrNoReplyTarget)
		snapshot := r.Failures()
		snapshot["no_reply_target"] = 100
		assert.Equal(t, uint64(1), r.Failures()["no_reply_target"])
	})
}
