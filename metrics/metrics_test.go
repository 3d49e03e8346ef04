package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrometheus_NilRegisterer(t *testing.T) {
	_, err := NewPrometheus(nil, "crptapi")
	assert.Error(t, err)
}

func TestNewPrometheus_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheus(reg, "crptapi")
	require.NoError(t, err)

	_, err = NewPrometheus(reg, "crptapi")
	assert.Error(t, err)
}

func TestPrometheus_Records(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := NewPrometheus(reg, "crptapi")
	require.NoError(t, err)

	p.Admitted(10 * time.Millisecond)
	p.Admitted(0)
	p.WaitInterrupted()
	p.Waiting(3)
	p.Waiting(-1)
	p.WindowReset()
	p.RequestCompleted(200, 50*time.Millisecond)
	p.RequestCompleted(200, 20*time.Millisecond)
	p.RequestCompleted(400, 20*time.Millisecond)
	p.RequestFailed("transport")

	assert.Equal(t, 2.0, testutil.ToFloat64(p.admissions))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.interrupted))
	assert.Equal(t, 2.0, testutil.ToFloat64(p.waiting))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.resets))
	assert.Equal(t, 2.0, testutil.ToFloat64(p.requests.WithLabelValues("200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.requests.WithLabelValues("400")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.requestFails.WithLabelValues("transport")))
	assert.Equal(t, 1, testutil.CollectAndCount(p.admitWait))
}

func TestNoop(t *testing.T) {
	var r Recorder = Noop{}
	r.Admitted(time.Second)
	r.WaitInterrupted()
	r.Waiting(1)
	r.WindowReset()
	r.RequestCompleted(200, time.Second)
	r.RequestFailed("encoding")
}
