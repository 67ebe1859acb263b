package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordReservationCreated(t *testing.T) {
	before := testutil.ToFloat64(ReservationsCreatedTotal.WithLabelValues("Pista Central"))
	RecordReservationCreated("Pista Central")
	after := testutil.ToFloat64(ReservationsCreatedTotal.WithLabelValues("Pista Central"))
	assert.Equal(t, before+1, after)
}

func TestRecordReservationRejected(t *testing.T) {
	before := testutil.ToFloat64(ReservationsRejectedTotal.WithLabelValues("conflict"))
	RecordReservationRejected("conflict")
	after := testutil.ToFloat64(ReservationsRejectedTotal.WithLabelValues("conflict"))
	assert.Equal(t, before+1, after)
}

func TestRecordLifecycleCounters(t *testing.T) {
	paidBefore := testutil.ToFloat64(ReservationsPaidTotal)
	cancelledBefore := testutil.ToFloat64(ReservationsCancelledTotal)

	RecordReservationPaid()
	RecordReservationCancelled()

	assert.Equal(t, paidBefore+1, testutil.ToFloat64(ReservationsPaidTotal))
	assert.Equal(t, cancelledBefore+1, testutil.ToFloat64(ReservationsCancelledTotal))
}

func TestRecordNotification(t *testing.T) {
	before := testutil.ToFloat64(NotificationsTotal.WithLabelValues("created", "queued"))
	RecordNotification("created", "queued")
	after := testutil.ToFloat64(NotificationsTotal.WithLabelValues("created", "queued"))
	assert.Equal(t, before+1, after)
}

func TestNotificationQueueLength(t *testing.T) {
	NotificationQueueLength.Set(7)
	assert.Equal(t, float64(7), testutil.ToFloat64(NotificationQueueLength))
}

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/reservas", "200"))
	RecordHTTPRequest("GET", "/reservas", "200", 0.05)
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/reservas", "200"))
	assert.Equal(t, before+1, after)
}
