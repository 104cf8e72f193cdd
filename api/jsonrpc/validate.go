package jsonrpc

import (
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/hedisam/tonrpc/internal/ton"
)

const (
	// DefaultBlockTransactionsCount is used when getBlockTransactions has no count.
	DefaultBlockTransactionsCount = 200
	// DefaultTransactionsLimit is used when getTransactions has no limit.
	DefaultTransactionsLimit = 10
)

// ParseShard parses a shard id transmitted as a signed 64-bit decimal string.
func ParseShard(shard string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(shard), 10, 64)
	if err != nil {
		return 0, NewErrf(CodeInvalidParams, "invalid shard %q: must be a signed 64-bit decimal integer", shard)
	}
	return v, nil
}

type lookupStrategy int

const (
	lookupBySeqno lookupStrategy = iota + 1
	lookupByLt
)

type blockLookup struct {
	workchain int64
	shard     int64
	by        lookupStrategy
	seqno     uint64
	lt        int64
}

// resolveLookup picks exactly one lookup strategy out of seqno, lt and unixtime.
func resolveLookup(p *LookupBlockParams) (*blockLookup, error) {
	shard, err := ParseShard(p.Shard)
	if err != nil {
		return nil, err
	}

	var given int
	for _, set := range []bool{p.Seqno != nil, p.Lt != nil, p.Unixtime != nil} {
		if set {
			given++
		}
	}

	switch {
	case given == 0:
		return nil, NewErrf(CodeInvalidParams, "one of seqno or lt must be provided")
	case given > 1:
		return nil, NewErrf(CodeInvalidParams, "only one of seqno, lt or unixtime can be provided")
	case p.Unixtime != nil:
		return nil, NewErrf(CodeInvalidParams, "unixtime is not supported")
	case p.Seqno != nil:
		if *p.Seqno == 0 {
			return nil, NewErrf(CodeInvalidParams, "seqno must be greater than 0")
		}
		return &blockLookup{workchain: p.Workchain, shard: shard, by: lookupBySeqno, seqno: *p.Seqno}, nil
	default:
		if *p.Lt <= 0 {
			return nil, NewErrf(CodeInvalidParams, "lt must be greater than 0")
		}
		return &blockLookup{workchain: p.Workchain, shard: shard, by: lookupByLt, lt: *p.Lt}, nil
	}
}

// blockRef is a block given by coordinates, optionally pinned by its hashes.
type blockRef struct {
	workchain int64
	shard     int64
	seqno     uint64
	pinned    *ton.BlockIDExt
}

func resolveBlockRef(workchain int64, shardStr string, seqno uint64, rootHash, fileHash *string) (*blockRef, error) {
	shard, err := ParseShard(shardStr)
	if err != nil {
		return nil, err
	}

	ref := &blockRef{workchain: workchain, shard: shard, seqno: seqno}
	root, file := deref(rootHash), deref(fileHash)
	switch {
	case root != "" && file != "":
		ref.pinned = &ton.BlockIDExt{
			Type:      "ton.blockIdExt",
			Workchain: workchain,
			Shard:     shard,
			Seqno:     seqno,
			RootHash:  root,
			FileHash:  file,
		}
	case root != "" || file != "":
		return nil, NewErrf(CodeInvalidParams, "root_hash and file_hash must be provided together")
	}

	return ref, nil
}

type blockTransactionsQuery struct {
	block *blockRef
	after *ton.TxCursor
	count int
}

func resolveBlockTransactions(p *BlockTransactionsParams) (*blockTransactionsQuery, error) {
	ref, err := resolveBlockRef(p.Workchain, p.Shard, p.Seqno, p.RootHash, p.FileHash)
	if err != nil {
		return nil, err
	}

	q := &blockTransactionsQuery{
		block: ref,
		count: DefaultBlockTransactionsCount,
	}
	if p.Count != nil {
		q.count = int(*p.Count)
	}

	switch {
	case p.AfterLt != nil && p.AfterHash != nil:
		q.after = &ton.TxCursor{Lt: *p.AfterLt, Hash: *p.AfterHash}
	case p.AfterLt != nil || p.AfterHash != nil:
		return nil, NewErrf(CodeInvalidParams, "after_lt and after_hash must be provided together")
	}

	return q, nil
}

type transactionsQuery struct {
	address  string
	limit    int
	from     *ton.TxCursor
	toLt     *int64
	archival bool
}

// resolveTransactions starts from the (lt, hash) cursor only when both are present,
// otherwise from the latest transaction of the account.
func resolveTransactions(p *TransactionsParams) (*transactionsQuery, error) {
	addr, err := requireAddress(p.Address)
	if err != nil {
		return nil, err
	}

	q := &transactionsQuery{
		address:  addr,
		limit:    DefaultTransactionsLimit,
		archival: p.Archival != nil && *p.Archival,
	}
	if p.Limit != nil {
		q.limit = int(*p.Limit)
	}

	if p.Lt != nil && p.Hash != nil {
		lt, err := strconv.ParseInt(*p.Lt, 10, 64)
		if err != nil {
			return nil, NewErrf(CodeInvalidParams, "invalid lt %q: must be a 64-bit decimal integer", *p.Lt)
		}
		q.from = &ton.TxCursor{Lt: lt, Hash: *p.Hash}
	}

	if p.ToLt != nil {
		toLt, err := strconv.ParseInt(*p.ToLt, 10, 64)
		if err != nil {
			return nil, NewErrf(CodeInvalidParams, "invalid to_lt %q: must be a 64-bit decimal integer", *p.ToLt)
		}
		q.toLt = &toLt
	}

	return q, nil
}

func requireAddress(addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return "", NewErrf(CodeInvalidParams, "address must not be empty")
	}
	return addr, nil
}

// normalizeBoc checks that boc is standard base64 and returns its canonical encoding.
func normalizeBoc(boc string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(boc))
	if err != nil {
		return "", NewErrf(CodeInvalidParams, "boc must be valid base64: %v", err)
	}
	if len(raw) == 0 {
		return "", NewErrf(CodeInvalidParams, "boc must not be empty")
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
