// Package health follows the upstream masterchain head and reports whether the gateway
// is in sync with it.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/hedisam/pipeline/chans"
	"github.com/sirupsen/logrus"

	"github.com/hedisam/tonrpc/internal/ton"
)

// DefaultMaxStaleness is how old the last seen head may get before the gateway is unhealthy.
const DefaultMaxStaleness = time.Minute

type Tracker struct {
	logger       *logrus.Logger
	maxStaleness time.Duration
	now          func() time.Time

	lastSeqno  atomic.Uint64
	lastSeenAt atomic.Int64
}

func New(logger *logrus.Logger, maxStaleness time.Duration) *Tracker {
	if maxStaleness <= 0 {
		maxStaleness = DefaultMaxStaleness
	}
	return &Tracker{
		logger:       logger,
		maxStaleness: maxStaleness,
		now:          time.Now,
	}
}

// Start records every head received on in until ctx is done or in is closed.
func (t *Tracker) Start(ctx context.Context, in <-chan *ton.MasterchainInfo) {
	for info := range chans.ReceiveOrDoneSeq(ctx, in) {
		t.observe(info)
	}
}

func (t *Tracker) observe(info *ton.MasterchainInfo) {
	if info == nil {
		return
	}

	seqno := info.Last.Seqno
	if prev := t.lastSeqno.Load(); seqno < prev {
		t.logger.WithFields(logrus.Fields{
			"seqno":      seqno,
			"last_seqno": prev,
		}).Warn("Upstream head went backwards")
	}

	t.lastSeqno.Store(seqno)
	t.lastSeenAt.Store(t.now().UnixNano())
	headSeqno.Set(float64(seqno))
}

// Status is the body of the health endpoint.
type Status struct {
	Healthy    bool      `json:"healthy"`
	LastSeqno  uint64    `json:"last_seqno"`
	LastSeenAt time.Time `json:"last_seen_at,omitzero"`
	Reason     string    `json:"reason,omitempty"`
}

func (t *Tracker) Status() Status {
	seenAt := t.lastSeenAt.Load()
	if seenAt == 0 {
		return Status{Reason: "no masterchain head seen yet"}
	}

	status := Status{
		Healthy:    true,
		LastSeqno:  t.lastSeqno.Load(),
		LastSeenAt: time.Unix(0, seenAt).UTC(),
	}
	if age := t.now().Sub(status.LastSeenAt); age > t.maxStaleness {
		status.Healthy = false
		status.Reason = "masterchain head is stale by " + age.Truncate(time.Second).String()
	}

	return status
}

// Handler answers 200 while healthy and 503 otherwise.
func (t *Tracker) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := t.Status()
		code := http.StatusOK
		if !status.Healthy {
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		err := json.NewEncoder(w).Encode(status)
		if err != nil {
			t.logger.WithContext(r.Context()).WithError(err).Error("Failed to write health status")
		}
	})
}
