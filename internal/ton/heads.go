package ton

import (
	"context"
	"time"

	"github.com/hedisam/pipeline/chans"
)

// Heads polls the masterchain info on every tick and emits each successful answer.
// The returned channel is closed once ctx is done.
func (c *Client) Heads(ctx context.Context, pollTick time.Duration) <-chan *MasterchainInfo {
	out := make(chan *MasterchainInfo)

	go func() {
		defer close(out)

		t := time.NewTicker(pollTick)
		defer t.Stop()

		for range chans.ReceiveOrDoneSeq(ctx, t.C) {
			info, err := c.GetMasterchainInfo(ctx)
			if err != nil {
				c.logger.WithError(err).Error("Failed to poll masterchain info")
				failedHeadPolls.Inc()
				continue
			}

			c.logger.WithField("seqno", info.Last.Seqno).Debug("Received masterchain head")
			if !chans.SendOrDone(ctx, out, info) {
				return
			}
		}
	}()

	return out
}
