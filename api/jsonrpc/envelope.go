package jsonrpc

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// methodSpec describes how to decode the params of a method.
type methodSpec struct {
	newParams func() any
	required  []string
}

var methods = map[Method]methodSpec{
	MethodLookupBlock: {
		newParams: func() any { return &LookupBlockParams{} },
		required:  []string{"workchain", "shard"},
	},
	MethodShards: {
		newParams: func() any { return &ShardsParams{} },
		required:  []string{"seqno"},
	},
	MethodGetBlockHeader: {
		newParams: func() any { return &BlockHeaderParams{} },
		required:  []string{"workchain", "shard", "seqno"},
	},
	MethodGetBlockTransactions: {
		newParams: func() any { return &BlockTransactionsParams{} },
		required:  []string{"workchain", "shard", "seqno"},
	},
	MethodGetAddressInformation: {
		newParams: func() any { return &AddressParams{} },
		required:  []string{"address"},
	},
	MethodGetExtendedAddressInformation: {
		newParams: func() any { return &AddressParams{} },
		required:  []string{"address"},
	},
	MethodGetTransactions: {
		newParams: func() any { return &TransactionsParams{} },
		required:  []string{"address"},
	},
	MethodSendBoc: {
		newParams: func() any { return &SendBocParams{} },
		required:  []string{"boc"},
	},
	MethodGetMasterchainInfo: {},
}

type envelope struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *int64          `json:"id"`
	Method  *string         `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// DecodeRequest decodes a request body into a single typed method call.
// It either returns a complete request or an *Err, never a partially decoded request.
func DecodeRequest(data []byte) (*Request, error) {
	if !json.Valid(data) {
		return nil, NewErrf(CodeParseError, "request body is not valid json")
	}

	var env envelope
	err := json.Unmarshal(data, &env)
	if err != nil {
		return nil, NewErrf(CodeInvalidRequest, "malformed request envelope: %v", err)
	}
	if env.ID == nil {
		return nil, NewErrf(CodeInvalidRequest, "missing field 'id'")
	}
	if env.Method == nil {
		return nil, NewErrf(CodeInvalidRequest, "missing field 'method'")
	}

	method := Method(*env.Method)
	spec, ok := methods[method]
	if !ok {
		return nil, NewErrf(CodeMethodNotFound, "unknown method %q", method)
	}

	params, err := decodeParams(method, spec, env.Params)
	if err != nil {
		return nil, err
	}

	return &Request{
		JSONRPC: env.JSONRPC,
		ID:      *env.ID,
		Method:  method,
		Params:  params,
	}, nil
}

func decodeParams(method Method, spec methodSpec, raw json.RawMessage) (any, error) {
	if spec.newParams == nil {
		return &MasterchainInfoParams{}, nil
	}
	if isNull(raw) {
		return nil, NewErrf(CodeInvalidRequest, "missing field 'params' for method %s", method)
	}

	var fields map[string]json.RawMessage
	err := json.Unmarshal(raw, &fields)
	if err != nil {
		return nil, NewErrf(CodeInvalidRequest, "params of method %s must be an object", method)
	}
	for _, name := range spec.required {
		if isNull(fields[name]) {
			return nil, NewErrf(CodeInvalidRequest, "missing field '%s' in params of method %s", name, method)
		}
	}

	params := spec.newParams()
	err = json.Unmarshal(raw, params)
	if err != nil {
		return nil, NewErrf(CodeInvalidRequest, "invalid params for method %s: %v", method, err)
	}

	return params, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// RequestID extracts the id of a request that may otherwise fail to decode.
// It returns 0 when no integral id can be found.
func RequestID(data []byte) int64 {
	var env struct {
		ID int64 `json:"id"`
	}
	_ = json.Unmarshal(data, &env)
	return env.ID
}

// NewResult wraps a successful result. It fails only if result cannot be encoded.
func NewResult(id int64, result any) (*Response, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}

	return &Response{
		Ok:      true,
		Result:  data,
		JSONRPC: Version,
		ID:      id,
	}, nil
}

func NewError(id int64, err *Err) *Response {
	return &Response{
		Ok:      false,
		Error:   err,
		JSONRPC: Version,
		ID:      id,
	}
}
