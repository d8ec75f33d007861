package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer("parking", reg)

	m.IncBookingEvent("booking.created")
	m.IncBookingEvent("booking.created")
	m.ObserveDBQuery("exec", time.Millisecond, errors.New("boom"))
	m.ObserveHTTPRequest("POST", "/api/v1/bookings", "201", 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingEvents.WithLabelValues("parking", "booking.created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("parking", "exec")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("parking", "POST", "/api/v1/bookings", "201")))
}
