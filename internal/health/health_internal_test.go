package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedisam/tonrpc/internal/ton"
)

func head(seqno uint64) *ton.MasterchainInfo {
	return &ton.MasterchainInfo{Last: ton.BlockIDExt{Workchain: -1, Seqno: seqno}}
}

func TestStatus(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := map[string]struct {
		heads          []*ton.MasterchainInfo
		elapsed        time.Duration
		expectedStatus Status
		expectedCode   int
	}{
		"no head yet": {
			expectedStatus: Status{Reason: "no masterchain head seen yet"},
			expectedCode:   http.StatusServiceUnavailable,
		},
		"fresh head": {
			heads:          []*ton.MasterchainInfo{head(10), nil, head(11)},
			elapsed:        10 * time.Second,
			expectedStatus: Status{Healthy: true, LastSeqno: 11, LastSeenAt: start},
			expectedCode:   http.StatusOK,
		},
		"stale head": {
			heads:   []*ton.MasterchainInfo{head(10)},
			elapsed: 90 * time.Second,
			expectedStatus: Status{
				LastSeqno:  10,
				LastSeenAt: start,
				Reason:     "masterchain head is stale by 1m30s",
			},
			expectedCode: http.StatusServiceUnavailable,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			now := start
			tracker := New(logrus.New(), time.Minute)
			tracker.now = func() time.Time { return now }

			in := make(chan *ton.MasterchainInfo, len(test.heads))
			for _, h := range test.heads {
				in <- h
			}
			close(in)
			tracker.Start(context.Background(), in)

			now = now.Add(test.elapsed)
			assert.Equal(t, test.expectedStatus, tracker.Status())

			rec := httptest.NewRecorder()
			tracker.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			assert.Equal(t, test.expectedCode, rec.Code)

			var got Status
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, test.expectedStatus.Healthy, got.Healthy)
			assert.Equal(t, test.expectedStatus.LastSeqno, got.LastSeqno)
		})
	}
}

func TestStartStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	tracker := New(logrus.New(), 0)
	in := make(chan *ton.MasterchainInfo)

	done := make(chan struct{})
	go func() {
		defer close(done)
		tracker.Start(ctx, in)
	}()

	in <- head(3)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("tracker did not stop after cancel")
	}
	assert.Equal(t, uint64(3), tracker.Status().LastSeqno)
}
