// Package cache memoizes upstream answers that never change once they exist.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/hedisam/tonrpc/internal/ton"
)

// ErrMiss is returned by a Store when it holds no value for a key.
var ErrMiss = errors.New("cache miss")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Upstream is the full method set the gateway calls on a blockchain client.
type Upstream interface {
	GetMasterchainInfo(ctx context.Context) (*ton.MasterchainInfo, error)
	LookUpBlockBySeqno(ctx context.Context, workchain, shard int64, seqno uint64) (*ton.BlockIDExt, error)
	LookUpBlockByLt(ctx context.Context, workchain, shard, lt int64) (*ton.BlockIDExt, error)
	GetShards(ctx context.Context, seqno uint64) (json.RawMessage, error)
	GetBlockHeader(ctx context.Context, block ton.BlockIDExt) (json.RawMessage, error)
	GetTxStream(ctx context.Context, block ton.BlockIDExt, after *ton.TxCursor) iter.Seq2[ton.ShortTxID, error]
	RawGetAccountState(ctx context.Context, addr string) (json.RawMessage, error)
	GetAccountState(ctx context.Context, addr string) (json.RawMessage, error)
	GetAccountTxStream(ctx context.Context, addr string, archival bool) iter.Seq2[ton.RawTransaction, error]
	GetAccountTxStreamFrom(ctx context.Context, addr string, cursor ton.TxCursor, archival bool) iter.Seq2[ton.RawTransaction, error]
	SendMessage(ctx context.Context, boc string) (json.RawMessage, error)
}

// Backend is a read-through cache in front of an Upstream. Block lookups by seqno,
// shard listings and block headers are served from the store once seen; every other
// call goes straight to the upstream.
type Backend struct {
	Upstream

	logger *logrus.Logger
	store  Store
	group  singleflight.Group
}

func New(logger *logrus.Logger, upstream Upstream, store Store) *Backend {
	return &Backend{
		Upstream: upstream,
		logger:   logger,
		store:    store,
	}
}

func (b *Backend) LookUpBlockBySeqno(ctx context.Context, workchain, shard int64, seqno uint64) (*ton.BlockIDExt, error) {
	key := fmt.Sprintf("lookupBlock:%d:%d:%d", workchain, shard, seqno)
	data, err := b.readThrough(ctx, key, func() (any, error) {
		return b.Upstream.LookUpBlockBySeqno(ctx, workchain, shard, seqno)
	})
	if err != nil {
		return nil, err
	}

	var block ton.BlockIDExt
	err = json.Unmarshal(data, &block)
	if err != nil {
		return nil, fmt.Errorf("decode cached block %s: %w", key, err)
	}
	return &block, nil
}

func (b *Backend) GetShards(ctx context.Context, seqno uint64) (json.RawMessage, error) {
	return b.readThrough(ctx, fmt.Sprintf("shards:%d", seqno), func() (any, error) {
		return b.Upstream.GetShards(ctx, seqno)
	})
}

func (b *Backend) GetBlockHeader(ctx context.Context, block ton.BlockIDExt) (json.RawMessage, error) {
	key := fmt.Sprintf("blockHeader:%d:%d:%d:%s:%s", block.Workchain, block.Shard, block.Seqno, block.RootHash, block.FileHash)
	return b.readThrough(ctx, key, func() (any, error) {
		return b.Upstream.GetBlockHeader(ctx, block)
	})
}

// readThrough returns the stored value for key or fetches, encodes and stores it.
// Identical concurrent misses share a single upstream call.
func (b *Backend) readThrough(ctx context.Context, key string, fetch func() (any, error)) ([]byte, error) {
	logger := b.logger.WithContext(ctx).WithField("key", key)

	data, err := b.store.Get(ctx, key)
	switch {
	case err == nil:
		lookups.WithLabelValues("hit").Inc()
		return data, nil
	case errors.Is(err, ErrMiss):
		lookups.WithLabelValues("miss").Inc()
	default:
		// a broken store degrades to calling the upstream
		lookups.WithLabelValues("error").Inc()
		logger.WithError(err).Warn("Failed to read from cache")
	}

	v, err, shared := b.group.Do(key, func() (any, error) {
		result, err := fetch()
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("encode %s for cache: %w", key, err)
		}

		err = b.store.Set(ctx, key, data)
		if err != nil {
			logger.WithError(err).Warn("Failed to write to cache")
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Debug("Shared in-flight upstream call")
	}

	return v.([]byte), nil
}
