package jsonrpc

import (
	"encoding/json"

	"github.com/hedisam/tonrpc/internal/ton"
)

// Version is the only json-rpc version written in responses.
const Version = "2.0"

type Method string

const (
	MethodLookupBlock                   Method = "lookupBlock"
	MethodShards                        Method = "shards"
	MethodGetBlockHeader                Method = "getBlockHeader"
	MethodGetBlockTransactions          Method = "getBlockTransactions"
	MethodGetAddressInformation         Method = "getAddressInformation"
	MethodGetExtendedAddressInformation Method = "getExtendedAddressInformation"
	MethodGetTransactions               Method = "getTransactions"
	MethodSendBoc                       Method = "sendBoc"
	MethodGetMasterchainInfo            Method = "getMasterchainInfo"
)

// Request is a fully decoded call. Params holds the pointer type registered for Method.
type Request struct {
	JSONRPC string
	ID      int64
	Method  Method
	Params  any
}

type Response struct {
	Ok      bool            `json:"ok"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Err            `json:"error,omitempty"`
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
}

type MasterchainInfoParams struct{}

type LookupBlockParams struct {
	Workchain int64   `json:"workchain"`
	Shard     string  `json:"shard"`
	Seqno     *uint64 `json:"seqno"`
	Lt        *int64  `json:"lt"`
	Unixtime  *uint64 `json:"unixtime"`
}

type ShardsParams struct {
	Seqno uint64 `json:"seqno"`
}

type BlockHeaderParams struct {
	Workchain int64   `json:"workchain"`
	Shard     string  `json:"shard"`
	Seqno     uint64  `json:"seqno"`
	RootHash  *string `json:"root_hash"`
	FileHash  *string `json:"file_hash"`
}

type BlockTransactionsParams struct {
	Workchain int64   `json:"workchain"`
	Shard     string  `json:"shard"`
	Seqno     uint64  `json:"seqno"`
	RootHash  *string `json:"root_hash"`
	FileHash  *string `json:"file_hash"`
	AfterLt   *int64  `json:"after_lt"`
	AfterHash *string `json:"after_hash"`
	Count     *uint8  `json:"count"`
}

type AddressParams struct {
	Address string `json:"address"`
}

// TransactionsParams carries lt and to_lt as decimal strings, as the upstream api does.
type TransactionsParams struct {
	Address  string  `json:"address"`
	Limit    *uint16 `json:"limit"`
	Lt       *string `json:"lt"`
	Hash     *string `json:"hash"`
	ToLt     *string `json:"to_lt"`
	Archival *bool   `json:"archival"`
}

type SendBocParams struct {
	Boc string `json:"boc"`
}

type BlockTransactionsResult struct {
	Type         string          `json:"@type"`
	ID           ton.BlockIDExt  `json:"id"`
	Incomplete   bool            `json:"incomplete"`
	ReqCount     int             `json:"req_count"`
	Transactions []ton.ShortTxID `json:"transactions"`
}
