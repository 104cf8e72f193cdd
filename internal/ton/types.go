package ton

import (
	"encoding/json"
	"fmt"
)

type rpcMethod string

const (
	getMasterchainInfo            rpcMethod = "getMasterchainInfo"
	lookupBlock                   rpcMethod = "lookupBlock"
	shards                        rpcMethod = "shards"
	getBlockHeader                rpcMethod = "getBlockHeader"
	getBlockTransactions          rpcMethod = "getBlockTransactions"
	getAddressInformation         rpcMethod = "getAddressInformation"
	getExtendedAddressInformation rpcMethod = "getExtendedAddressInformation"
	getTransactions               rpcMethod = "getTransactions"
	sendBoc                       rpcMethod = "sendBoc"
)

// ID returns the ID associated with the rpc method used in json-rpc requests.
func (rm rpcMethod) ID() int {
	switch rm {
	case getMasterchainInfo:
		return 1
	case lookupBlock:
		return 2
	case shards:
		return 3
	case getBlockHeader:
		return 4
	case getBlockTransactions:
		return 5
	case getAddressInformation:
		return 6
	case getExtendedAddressInformation:
		return 7
	case getTransactions:
		return 8
	case sendBoc:
		return 9
	default:
		return -1
	}
}

// BlockIDExt fully identifies a block. Shard travels as a decimal string.
type BlockIDExt struct {
	Type      string `json:"@type,omitempty"`
	Workchain int64  `json:"workchain"`
	Shard     int64  `json:"shard,string"`
	Seqno     uint64 `json:"seqno"`
	RootHash  string `json:"root_hash"`
	FileHash  string `json:"file_hash"`
}

type MasterchainInfo struct {
	Type          string     `json:"@type,omitempty"`
	Last          BlockIDExt `json:"last"`
	StateRootHash string     `json:"state_root_hash"`
	Init          BlockIDExt `json:"init"`
}

// TxCursor marks a transaction by logical time and hash.
type TxCursor struct {
	Lt   int64
	Hash string
}

// ShortTxID is a block level transaction reference. Account is base64 as received upstream.
type ShortTxID struct {
	Type    string `json:"@type,omitempty"`
	Mode    int    `json:"mode"`
	Account string `json:"account"`
	Lt      string `json:"lt"`
	Hash    string `json:"hash"`
}

type TransactionID struct {
	Type string `json:"@type,omitempty"`
	Lt   int64  `json:"lt,string"`
	Hash string `json:"hash"`
}

// RawTransaction is an account transaction. Only its id is decoded, the full upstream
// payload is kept in Raw and written back unchanged.
type RawTransaction struct {
	TransactionID TransactionID `json:"transaction_id"`
	Raw           json.RawMessage
}

// UnmarshalJSON parses the transaction id and keeps a copy of the full payload.
func (t *RawTransaction) UnmarshalJSON(data []byte) error {
	var aux struct {
		TransactionID TransactionID `json:"transaction_id"`
	}
	err := json.Unmarshal(data, &aux)
	if err != nil {
		return fmt.Errorf("unmarshal raw transaction id: %w", err)
	}

	t.TransactionID = aux.TransactionID
	t.Raw = append(json.RawMessage(nil), data...) // make a copy; safe against mutations

	return nil
}

// MarshalJSON writes the original upstream payload.
func (t RawTransaction) MarshalJSON() ([]byte, error) {
	if t.Raw != nil {
		return t.Raw, nil
	}

	return json.Marshal(struct {
		TransactionID TransactionID `json:"transaction_id"`
	}{TransactionID: t.TransactionID})
}

// Cursor returns the position of this transaction in the account history.
func (t RawTransaction) Cursor() TxCursor {
	return TxCursor{Lt: t.TransactionID.Lt, Hash: t.TransactionID.Hash}
}

type blockTransactions struct {
	ID           BlockIDExt  `json:"id"`
	ReqCount     int         `json:"req_count"`
	Incomplete   bool        `json:"incomplete"`
	Transactions []ShortTxID `json:"transactions"`
}

// response is the upstream envelope. Error is free text, Code mirrors an http status.
type response struct {
	Ok     bool            `json:"ok"`
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
	Code   int             `json:"code"`
}
