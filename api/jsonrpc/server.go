package jsonrpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"github.com/hedisam/tonrpc/internal/codec"
	"github.com/hedisam/tonrpc/internal/stream"
	"github.com/hedisam/tonrpc/internal/ton"
)

const (
	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxStreams     = 64
)

// Backend is the blockchain client the gateway forwards calls to.
// It is shared by all in-flight requests.
type Backend interface {
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

type Server struct {
	logger  *logrus.Logger
	backend Backend
	streams *semaphore.Weighted
	timeout time.Duration
}

type Option func(*Server)

// WithRequestTimeout bounds the handling of a single request, stream pulls included.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithMaxStreams caps how many transaction streams may be consumed at once.
func WithMaxStreams(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.streams = semaphore.NewWeighted(n)
		}
	}
}

func NewServer(logger *logrus.Logger, backend Backend, opts ...Option) *Server {
	s := &Server{
		logger:  logger,
		backend: backend,
		streams: semaphore.NewWeighted(DefaultMaxStreams),
		timeout: DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Dispatch serves one request body and always returns a response envelope.
func (s *Server) Dispatch(ctx context.Context, body []byte) *Response {
	start := time.Now()
	logger := s.logger.WithContext(ctx).WithField("request_id", uuid.NewString())

	req, err := DecodeRequest(body)
	if err != nil {
		rpcErr := toErr(err)
		logger.WithError(rpcErr).Warn("Rejected malformed request")
		observe("", rpcErr.Code, start)
		return NewError(RequestID(body), rpcErr)
	}
	logger = logger.WithFields(logrus.Fields{
		"method": req.Method,
		"id":     req.ID,
	})

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.call(ctx, req)
	if err == nil {
		var resp *Response
		resp, err = NewResult(req.ID, result)
		if err == nil {
			logger.WithField("duration", time.Since(start)).Debug("Served request")
			observe(req.Method, 0, start)
			return resp
		}
	}

	rpcErr := toErr(err)
	entry := logger.WithError(err).WithField("code", rpcErr.Code)
	if rpcErr.Code == CodeInvalidParams || rpcErr.Code == CodeNotFound {
		entry.Warn("Request failed")
	} else {
		entry.Error("Request failed")
	}
	observe(req.Method, rpcErr.Code, start)

	return NewError(req.ID, rpcErr)
}

func (s *Server) call(ctx context.Context, req *Request) (any, error) {
	switch p := req.Params.(type) {
	case *MasterchainInfoParams:
		return s.MasterchainInfo(ctx)
	case *LookupBlockParams:
		return s.LookupBlock(ctx, p)
	case *ShardsParams:
		return s.Shards(ctx, p)
	case *BlockHeaderParams:
		return s.GetBlockHeader(ctx, p)
	case *BlockTransactionsParams:
		return s.GetBlockTransactions(ctx, p)
	case *AddressParams:
		if req.Method == MethodGetExtendedAddressInformation {
			return s.GetExtendedAddressInformation(ctx, p)
		}
		return s.GetAddressInformation(ctx, p)
	case *TransactionsParams:
		return s.GetTransactions(ctx, p)
	case *SendBocParams:
		return s.SendBoc(ctx, p)
	default:
		return nil, NewErrf(CodeMethodNotFound, "unsupported method %q", req.Method)
	}
}

func (s *Server) MasterchainInfo(ctx context.Context) (*ton.MasterchainInfo, error) {
	return s.backend.GetMasterchainInfo(ctx)
}

func (s *Server) LookupBlock(ctx context.Context, p *LookupBlockParams) (*ton.BlockIDExt, error) {
	lookup, err := resolveLookup(p)
	if err != nil {
		return nil, err
	}

	switch lookup.by {
	case lookupBySeqno:
		return s.backend.LookUpBlockBySeqno(ctx, lookup.workchain, lookup.shard, lookup.seqno)
	default:
		return s.backend.LookUpBlockByLt(ctx, lookup.workchain, lookup.shard, lookup.lt)
	}
}

func (s *Server) Shards(ctx context.Context, p *ShardsParams) (json.RawMessage, error) {
	return s.backend.GetShards(ctx, p.Seqno)
}

func (s *Server) GetBlockHeader(ctx context.Context, p *BlockHeaderParams) (json.RawMessage, error) {
	ref, err := resolveBlockRef(p.Workchain, p.Shard, p.Seqno, p.RootHash, p.FileHash)
	if err != nil {
		return nil, err
	}

	block, err := s.blockID(ctx, ref)
	if err != nil {
		return nil, err
	}

	return s.backend.GetBlockHeader(ctx, *block)
}

// GetBlockTransactions lists up to count transactions of a block with their account
// rewritten to the "<workchain>:<hex>" form.
func (s *Server) GetBlockTransactions(ctx context.Context, p *BlockTransactionsParams) (*BlockTransactionsResult, error) {
	q, err := resolveBlockTransactions(p)
	if err != nil {
		return nil, err
	}

	block, err := s.blockID(ctx, q.block)
	if err != nil {
		return nil, err
	}

	release, err := s.acquireStream(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	src := s.backend.GetTxStream(ctx, *block, q.after)
	txs, err := stream.Collect(ctx, stream.Map(stream.Take(src, q.count), func(tx ton.ShortTxID) (ton.ShortTxID, error) {
		account, err := codec.FormatAccount(block.Workchain, tx.Account)
		if err != nil {
			return ton.ShortTxID{}, fmt.Errorf("rewrite account of transaction %s: %w", tx.Hash, err)
		}
		tx.Account = account
		return tx, nil
	}))
	if err != nil {
		return nil, fmt.Errorf("collect block transactions: %w", err)
	}

	return &BlockTransactionsResult{
		Type:         "blocks.transactions",
		ID:           *block,
		Incomplete:   q.count > 0 && len(txs) == q.count,
		ReqCount:     q.count,
		Transactions: txs,
	}, nil
}

func (s *Server) GetAddressInformation(ctx context.Context, p *AddressParams) (json.RawMessage, error) {
	addr, err := requireAddress(p.Address)
	if err != nil {
		return nil, err
	}
	return s.backend.RawGetAccountState(ctx, addr)
}

func (s *Server) GetExtendedAddressInformation(ctx context.Context, p *AddressParams) (json.RawMessage, error) {
	addr, err := requireAddress(p.Address)
	if err != nil {
		return nil, err
	}
	return s.backend.GetAccountState(ctx, addr)
}

// GetTransactions lists an account's transactions newest first, bounded by limit and
// stopping before the first transaction whose lt is not greater than to_lt.
func (s *Server) GetTransactions(ctx context.Context, p *TransactionsParams) ([]ton.RawTransaction, error) {
	q, err := resolveTransactions(p)
	if err != nil {
		return nil, err
	}

	release, err := s.acquireStream(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	var src iter.Seq2[ton.RawTransaction, error]
	if q.from != nil {
		src = s.backend.GetAccountTxStreamFrom(ctx, q.address, *q.from, q.archival)
	} else {
		src = s.backend.GetAccountTxStream(ctx, q.address, q.archival)
	}
	if q.toLt != nil {
		toLt := *q.toLt
		src = stream.TakeWhile(src, func(tx ton.RawTransaction) bool {
			return tx.TransactionID.Lt > toLt
		})
	}

	txs, err := stream.Collect(ctx, stream.Take(src, q.limit))
	if err != nil {
		return nil, fmt.Errorf("collect account transactions: %w", err)
	}

	return txs, nil
}

func (s *Server) SendBoc(ctx context.Context, p *SendBocParams) (json.RawMessage, error) {
	boc, err := normalizeBoc(p.Boc)
	if err != nil {
		return nil, err
	}
	return s.backend.SendMessage(ctx, boc)
}

// blockID returns the pinned block id or resolves it by seqno, so later calls use the
// exact block the lookup returned.
func (s *Server) blockID(ctx context.Context, ref *blockRef) (*ton.BlockIDExt, error) {
	if ref.pinned != nil {
		return ref.pinned, nil
	}

	block, err := s.backend.LookUpBlockBySeqno(ctx, ref.workchain, ref.shard, ref.seqno)
	if err != nil {
		return nil, fmt.Errorf("look up block %d:%d:%d: %w", ref.workchain, ref.shard, ref.seqno, err)
	}
	return block, nil
}

func (s *Server) acquireStream(ctx context.Context) (func(), error) {
	err := s.streams.Acquire(ctx, 1)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("request cancelled while waiting for a stream slot: %w", err)
		}
		return nil, fmt.Errorf("no stream slot available: %w", err)
	}
	return func() { s.streams.Release(1) }, nil
}
