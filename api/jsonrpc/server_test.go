package jsonrpc_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedisam/tonrpc/api/jsonrpc"
	"github.com/hedisam/tonrpc/api/jsonrpc/mocks"
	"github.com/hedisam/tonrpc/internal/stream"
	"github.com/hedisam/tonrpc/internal/ton"
)

//go:generate moq -out mocks/backend.go -pkg mocks -skip-ensure . Backend

var testBlock = ton.BlockIDExt{
	Type:      "ton.blockIdExt",
	Workchain: -1,
	Shard:     -9223372036854775808,
	Seqno:     5,
	RootHash:  "root",
	FileHash:  "file",
}

func rawTxs(lts ...int64) []ton.RawTransaction {
	txs := make([]ton.RawTransaction, 0, len(lts))
	for _, lt := range lts {
		txs = append(txs, ton.RawTransaction{
			TransactionID: ton.TransactionID{Lt: lt, Hash: fmt.Sprintf("h%d", lt)},
			Raw:           json.RawMessage(fmt.Sprintf(`{"transaction_id":{"lt":"%d","hash":"h%d"}}`, lt, lt)),
		})
	}
	return txs
}

func resultLts(t *testing.T, resp *jsonrpc.Response) []string {
	t.Helper()
	var txs []struct {
		TransactionID struct {
			Lt string `json:"lt"`
		} `json:"transaction_id"`
	}
	require.NoError(t, json.Unmarshal(resp.Result, &txs))
	lts := make([]string, 0, len(txs))
	for _, tx := range txs {
		lts = append(lts, tx.TransactionID.Lt)
	}
	return lts
}

func dispatch(t *testing.T, backend jsonrpc.Backend, body string, opts ...jsonrpc.Option) *jsonrpc.Response {
	t.Helper()
	s := jsonrpc.NewServer(logrus.New(), backend, opts...)
	resp := s.Dispatch(context.Background(), []byte(body))
	require.NotNil(t, resp)
	assert.Equal(t, "2.0", resp.JSONRPC)
	assert.Equal(t, resp.Ok, resp.Error == nil)
	assert.Equal(t, resp.Ok, resp.Result != nil)
	return resp
}

func TestLookupBlock(t *testing.T) {
	tests := map[string]struct {
		params             string
		expectedSeqnoCalls int
		expectedLtCalls    int
		expectedCode       int
	}{
		"seqno routes to seqno lookup": {
			params:             `{"workchain":-1,"shard":"-9223372036854775808","seqno":5}`,
			expectedSeqnoCalls: 1,
		},
		"lt routes to lt lookup": {
			params:          `{"workchain":-1,"shard":"-9223372036854775808","lt":1000}`,
			expectedLtCalls: 1,
		},
		"no selector": {
			params:       `{"workchain":-1,"shard":"-9223372036854775808"}`,
			expectedCode: jsonrpc.CodeInvalidParams,
		},
		"unixtime only": {
			params:       `{"workchain":-1,"shard":"-9223372036854775808","unixtime":1700000000}`,
			expectedCode: jsonrpc.CodeInvalidParams,
		},
		"zero seqno": {
			params:       `{"workchain":-1,"shard":"-9223372036854775808","seqno":0}`,
			expectedCode: jsonrpc.CodeInvalidParams,
		},
		"bad shard": {
			params:       `{"workchain":-1,"shard":"shard","seqno":5}`,
			expectedCode: jsonrpc.CodeInvalidParams,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			backend := &mocks.BackendMock{
				LookUpBlockBySeqnoFunc: func(ctx context.Context, workchain, shard int64, seqno uint64) (*ton.BlockIDExt, error) {
					assert.Equal(t, int64(-1), workchain)
					assert.Equal(t, int64(-9223372036854775808), shard)
					return &testBlock, nil
				},
				LookUpBlockByLtFunc: func(ctx context.Context, workchain, shard, lt int64) (*ton.BlockIDExt, error) {
					assert.Equal(t, int64(1000), lt)
					return &testBlock, nil
				},
			}

			resp := dispatch(t, backend, `{"jsonrpc":"2.0","id":11,"method":"lookupBlock","params":`+test.params+`}`)
			assert.Equal(t, int64(11), resp.ID)
			assert.Len(t, backend.LookUpBlockBySeqnoCalls(), test.expectedSeqnoCalls)
			assert.Len(t, backend.LookUpBlockByLtCalls(), test.expectedLtCalls)
			if test.expectedCode != 0 {
				require.False(t, resp.Ok)
				assert.Equal(t, test.expectedCode, resp.Error.Code)
				return
			}
			require.True(t, resp.Ok)
			assert.JSONEq(t, `{"@type":"ton.blockIdExt","workchain":-1,"shard":"-9223372036854775808","seqno":5,"root_hash":"root","file_hash":"file"}`, string(resp.Result))
		})
	}
}

func TestUnknownMethodNeverCallsBackend(t *testing.T) {
	backend := &mocks.BackendMock{}
	resp := dispatch(t, backend, `{"jsonrpc":"2.0","id":5,"method":"dropDatabase","params":{}}`)
	require.False(t, resp.Ok)
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, jsonrpc.CodeMethodNotFound, resp.Error.Code)
	assert.Equal(t, `unknown method "dropDatabase"`, resp.Error.Message)
}

func TestBackendErrors(t *testing.T) {
	tests := map[string]struct {
		err          error
		expectedCode int
	}{
		"not found": {
			err:          &ton.UpstreamError{Method: "shards", Code: 404, Message: "no such block"},
			expectedCode: jsonrpc.CodeNotFound,
		},
		"unavailable": {
			err:          fmt.Errorf("%w: shards: connection refused", ton.ErrUnavailable),
			expectedCode: jsonrpc.CodeUnavailable,
		},
		"deadline": {
			err:          fmt.Errorf("shards: %w", context.DeadlineExceeded),
			expectedCode: jsonrpc.CodeUnavailable,
		},
		"anything else": {
			err:          errors.New("boom"),
			expectedCode: jsonrpc.CodeInternal,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			backend := &mocks.BackendMock{
				GetShardsFunc: func(ctx context.Context, seqno uint64) (json.RawMessage, error) {
					return nil, test.err
				},
			}
			resp := dispatch(t, backend, `{"jsonrpc":"2.0","id":2,"method":"shards","params":{"seqno":100}}`)
			require.False(t, resp.Ok)
			assert.Equal(t, int64(2), resp.ID)
			assert.Equal(t, test.expectedCode, resp.Error.Code)
			assert.Equal(t, test.err.Error(), resp.Error.Message)
		})
	}
}

func TestPassThroughMethods(t *testing.T) {
	backend := &mocks.BackendMock{
		GetMasterchainInfoFunc: func(ctx context.Context) (*ton.MasterchainInfo, error) {
			return &ton.MasterchainInfo{Type: "blocks.masterchainInfo", Last: testBlock, Init: testBlock}, nil
		},
		GetShardsFunc: func(ctx context.Context, seqno uint64) (json.RawMessage, error) {
			assert.Equal(t, uint64(100), seqno)
			return json.RawMessage(`{"shards":[]}`), nil
		},
		RawGetAccountStateFunc: func(ctx context.Context, addr string) (json.RawMessage, error) {
			return json.RawMessage(`{"kind":"raw","address":"` + addr + `"}`), nil
		},
		GetAccountStateFunc: func(ctx context.Context, addr string) (json.RawMessage, error) {
			return json.RawMessage(`{"kind":"extended","address":"` + addr + `"}`), nil
		},
		SendMessageFunc: func(ctx context.Context, boc string) (json.RawMessage, error) {
			return json.RawMessage(`{"@type":"ok"}`), nil
		},
	}

	tests := map[string]struct {
		body     string
		expected string
	}{
		"masterchain info": {
			body:     `{"jsonrpc":"2.0","id":1,"method":"getMasterchainInfo"}`,
			expected: `"blocks.masterchainInfo"`,
		},
		"shards": {
			body:     `{"jsonrpc":"2.0","id":1,"method":"shards","params":{"seqno":100}}`,
			expected: `{"shards":[]}`,
		},
		"address information": {
			body:     `{"jsonrpc":"2.0","id":1,"method":"getAddressInformation","params":{"address":"EQabc"}}`,
			expected: `{"kind":"raw","address":"EQabc"}`,
		},
		"extended address information": {
			body:     `{"jsonrpc":"2.0","id":1,"method":"getExtendedAddressInformation","params":{"address":"EQabc"}}`,
			expected: `{"kind":"extended","address":"EQabc"}`,
		},
		"send boc": {
			body:     `{"jsonrpc":"2.0","id":1,"method":"sendBoc","params":{"boc":"te6ccgEBAQEAAgAAAA=="}}`,
			expected: `{"@type":"ok"}`,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			resp := dispatch(t, backend, test.body)
			require.True(t, resp.Ok, "unexpected error: %+v", resp.Error)
			assert.Contains(t, string(resp.Result), test.expected)
		})
	}

	require.Len(t, backend.SendMessageCalls(), 1)
	assert.Equal(t, "te6ccgEBAQEAAgAAAA==", backend.SendMessageCalls()[0].Boc)
}

func TestSendBocRejectsInvalidBase64(t *testing.T) {
	backend := &mocks.BackendMock{}
	resp := dispatch(t, backend, `{"jsonrpc":"2.0","id":1,"method":"sendBoc","params":{"boc":"***"}}`)
	require.False(t, resp.Ok)
	assert.Equal(t, jsonrpc.CodeInvalidParams, resp.Error.Code)
}

func TestGetBlockHeader(t *testing.T) {
	t.Run("resolves block by seqno", func(t *testing.T) {
		backend := &mocks.BackendMock{
			LookUpBlockBySeqnoFunc: func(ctx context.Context, workchain, shard int64, seqno uint64) (*ton.BlockIDExt, error) {
				return &testBlock, nil
			},
			GetBlockHeaderFunc: func(ctx context.Context, block ton.BlockIDExt) (json.RawMessage, error) {
				return json.RawMessage(`{"@type":"blocks.header"}`), nil
			},
		}
		resp := dispatch(t, backend, `{"jsonrpc":"2.0","id":1,"method":"getBlockHeader","params":{"workchain":-1,"shard":"-9223372036854775808","seqno":5}}`)
		require.True(t, resp.Ok)
		require.Len(t, backend.GetBlockHeaderCalls(), 1)
		assert.Equal(t, testBlock, backend.GetBlockHeaderCalls()[0].Block)
	})

	t.Run("pinned hashes skip the lookup", func(t *testing.T) {
		backend := &mocks.BackendMock{
			GetBlockHeaderFunc: func(ctx context.Context, block ton.BlockIDExt) (json.RawMessage, error) {
				return json.RawMessage(`{"@type":"blocks.header"}`), nil
			},
		}
		resp := dispatch(t, backend, `{"jsonrpc":"2.0","id":1,"method":"getBlockHeader","params":{"workchain":-1,"shard":"-9223372036854775808","seqno":5,"root_hash":"root","file_hash":"file"}}`)
		require.True(t, resp.Ok)
		assert.Equal(t, testBlock, backend.GetBlockHeaderCalls()[0].Block)
	})
}

func TestGetBlockTransactions(t *testing.T) {
	accounts := [][]byte{{0x01, 0x02}, {0xab, 0xcd, 0xef}, {0x00}}
	shortTxs := make([]ton.ShortTxID, 0, len(accounts))
	for i, account := range accounts {
		shortTxs = append(shortTxs, ton.ShortTxID{
			Type:    "blocks.shortTxId",
			Mode:    135,
			Account: base64.StdEncoding.EncodeToString(account),
			Lt:      fmt.Sprintf("%d", 100+i),
			Hash:    fmt.Sprintf("hash-%d", i),
		})
	}

	tests := map[string]struct {
		params           string
		after            *ton.TxCursor
		expectedAccounts []string
		expectedReqCount int
		incomplete       bool
	}{
		"default count": {
			params:           `{"workchain":-1,"shard":"-9223372036854775808","seqno":5}`,
			expectedAccounts: []string{"-1:0102", "-1:abcdef", "-1:00"},
			expectedReqCount: 200,
		},
		"count caps result": {
			params:           `{"workchain":-1,"shard":"-9223372036854775808","seqno":5,"count":2}`,
			expectedAccounts: []string{"-1:0102", "-1:abcdef"},
			expectedReqCount: 2,
			incomplete:       true,
		},
		"after cursor is forwarded": {
			params:           `{"workchain":-1,"shard":"-9223372036854775808","seqno":5,"after_lt":99,"after_hash":"acc"}`,
			after:            &ton.TxCursor{Lt: 99, Hash: "acc"},
			expectedAccounts: []string{"-1:0102", "-1:abcdef", "-1:00"},
			expectedReqCount: 200,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			backend := &mocks.BackendMock{
				LookUpBlockBySeqnoFunc: func(ctx context.Context, workchain, shard int64, seqno uint64) (*ton.BlockIDExt, error) {
					return &testBlock, nil
				},
				GetTxStreamFunc: func(ctx context.Context, block ton.BlockIDExt, after *ton.TxCursor) iter.Seq2[ton.ShortTxID, error] {
					return stream.FromSlice(shortTxs)
				},
			}

			resp := dispatch(t, backend, `{"jsonrpc":"2.0","id":8,"method":"getBlockTransactions","params":`+test.params+`}`)
			require.True(t, resp.Ok, "unexpected error: %+v", resp.Error)

			var result jsonrpc.BlockTransactionsResult
			require.NoError(t, json.Unmarshal(resp.Result, &result))
			assert.Equal(t, "blocks.transactions", result.Type)
			assert.Equal(t, testBlock, result.ID)
			assert.Equal(t, test.expectedReqCount, result.ReqCount)
			assert.Equal(t, test.incomplete, result.Incomplete)

			accounts := make([]string, 0, len(result.Transactions))
			for i, tx := range result.Transactions {
				accounts = append(accounts, tx.Account)
				assert.Equal(t, shortTxs[i].Hash, tx.Hash)
				assert.Equal(t, shortTxs[i].Lt, tx.Lt)
			}
			assert.Equal(t, test.expectedAccounts, accounts)

			require.Len(t, backend.GetTxStreamCalls(), 1)
			assert.Equal(t, testBlock, backend.GetTxStreamCalls()[0].Block)
			assert.Equal(t, test.after, backend.GetTxStreamCalls()[0].After)
		})
	}
}

func TestGetBlockTransactionsInvalidAccount(t *testing.T) {
	backend := &mocks.BackendMock{
		LookUpBlockBySeqnoFunc: func(ctx context.Context, workchain, shard int64, seqno uint64) (*ton.BlockIDExt, error) {
			return &testBlock, nil
		},
		GetTxStreamFunc: func(ctx context.Context, block ton.BlockIDExt, after *ton.TxCursor) iter.Seq2[ton.ShortTxID, error] {
			return stream.FromSlice([]ton.ShortTxID{{Account: "not base64!", Hash: "h"}})
		},
	}

	resp := dispatch(t, backend, `{"jsonrpc":"2.0","id":8,"method":"getBlockTransactions","params":{"workchain":-1,"shard":"0","seqno":5}}`)
	require.False(t, resp.Ok)
	assert.Equal(t, jsonrpc.CodeInternal, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "rewrite account of transaction h")
}

func TestGetTransactions(t *testing.T) {
	tests := map[string]struct {
		params            string
		source            []ton.RawTransaction
		expectedLts       []string
		expectedFromCalls int
		expectedCursor    ton.TxCursor
	}{
		"limit takes the first in source order": {
			params:      `{"address":"EQabc","limit":2}`,
			source:      rawTxs(500, 400, 300, 200, 100),
			expectedLts: []string{"500", "400"},
		},
		"to_lt stops before the bound": {
			params:      `{"address":"EQabc","to_lt":"50"}`,
			source:      rawTxs(100, 60, 50, 40),
			expectedLts: []string{"100", "60"},
		},
		"default limit": {
			params:      `{"address":"EQabc"}`,
			source:      rawTxs(12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1),
			expectedLts: []string{"12", "11", "10", "9", "8", "7", "6", "5", "4", "3"},
		},
		"bound above everything": {
			params:      `{"address":"EQabc","to_lt":"1000"}`,
			source:      rawTxs(100, 90),
			expectedLts: []string{},
		},
		"empty history": {
			params:      `{"address":"EQabc"}`,
			expectedLts: []string{},
		},
		"cursor starts from the given transaction": {
			params:            `{"address":"EQabc","lt":"90","hash":"h90","limit":3}`,
			source:            rawTxs(90, 80, 70, 60),
			expectedLts:       []string{"90", "80", "70"},
			expectedFromCalls: 1,
			expectedCursor:    ton.TxCursor{Lt: 90, Hash: "h90"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			backend := &mocks.BackendMock{
				GetAccountTxStreamFunc: func(ctx context.Context, addr string, archival bool) iter.Seq2[ton.RawTransaction, error] {
					assert.Equal(t, "EQabc", addr)
					return stream.FromSlice(test.source)
				},
				GetAccountTxStreamFromFunc: func(ctx context.Context, addr string, cursor ton.TxCursor, archival bool) iter.Seq2[ton.RawTransaction, error] {
					return stream.FromSlice(test.source)
				},
			}

			resp := dispatch(t, backend, `{"jsonrpc":"2.0","id":3,"method":"getTransactions","params":`+test.params+`}`)
			require.True(t, resp.Ok, "unexpected error: %+v", resp.Error)
			assert.Equal(t, test.expectedLts, resultLts(t, resp))
			assert.Len(t, backend.GetAccountTxStreamFromCalls(), test.expectedFromCalls)
			assert.Len(t, backend.GetAccountTxStreamCalls(), 1-test.expectedFromCalls)
			if test.expectedFromCalls > 0 {
				assert.Equal(t, test.expectedCursor, backend.GetAccountTxStreamFromCalls()[0].Cursor)
			}
		})
	}
}

func TestGetTransactionsStreamError(t *testing.T) {
	backend := &mocks.BackendMock{
		GetAccountTxStreamFunc: func(ctx context.Context, addr string, archival bool) iter.Seq2[ton.RawTransaction, error] {
			return func(yield func(ton.RawTransaction, error) bool) {
				if !yield(rawTxs(100)[0], nil) {
					return
				}
				yield(ton.RawTransaction{}, fmt.Errorf("%w: getTransactions: timeout", ton.ErrUnavailable))
			}
		},
	}

	resp := dispatch(t, backend, `{"jsonrpc":"2.0","id":3,"method":"getTransactions","params":{"address":"EQabc"}}`)
	require.False(t, resp.Ok)
	assert.Equal(t, jsonrpc.CodeUnavailable, resp.Error.Code)
}

func TestRequestTimeoutCancelsStream(t *testing.T) {
	backend := &mocks.BackendMock{
		GetAccountTxStreamFunc: func(ctx context.Context, addr string, archival bool) iter.Seq2[ton.RawTransaction, error] {
			return func(yield func(ton.RawTransaction, error) bool) {
				<-ctx.Done()
				yield(ton.RawTransaction{}, ctx.Err())
			}
		},
	}

	resp := dispatch(t, backend, `{"jsonrpc":"2.0","id":3,"method":"getTransactions","params":{"address":"EQabc"}}`,
		jsonrpc.WithRequestTimeout(50*time.Millisecond))
	require.False(t, resp.Ok)
	assert.Equal(t, jsonrpc.CodeUnavailable, resp.Error.Code)
}

func TestStreamSlotsAreBounded(t *testing.T) {
	started := make(chan struct{})
	unblock := make(chan struct{})
	backend := &mocks.BackendMock{
		GetAccountTxStreamFunc: func(ctx context.Context, addr string, archival bool) iter.Seq2[ton.RawTransaction, error] {
			return func(yield func(ton.RawTransaction, error) bool) {
				close(started)
				<-unblock
			}
		},
	}
	s := jsonrpc.NewServer(logrus.New(), backend, jsonrpc.WithMaxStreams(1))
	body := []byte(`{"jsonrpc":"2.0","id":3,"method":"getTransactions","params":{"address":"EQabc"}}`)

	first := make(chan *jsonrpc.Response, 1)
	go func() { first <- s.Dispatch(context.Background(), body) }()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	second := s.Dispatch(ctx, body)
	require.False(t, second.Ok)
	assert.Equal(t, jsonrpc.CodeUnavailable, second.Error.Code)
	assert.Contains(t, second.Error.Message, "no stream slot available")
	assert.Len(t, backend.GetAccountTxStreamCalls(), 1)

	close(unblock)
	resp := <-first
	require.True(t, resp.Ok)
	assert.JSONEq(t, `[]`, string(resp.Result))
}
