package ton

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	// DefaultPageSize is the number of transactions requested per upstream page.
	DefaultPageSize = 30
)

// Client talks to a toncenter compatible json-rpc upstream.
// It holds no per-request state and is safe for concurrent use.
type Client struct {
	logger     *logrus.Logger
	httpClient *http.Client
	nodeAddr   string
	apiKey     string
	limiter    *rate.Limiter
	pageSize   int
	maxElapsed time.Duration
}

type Option func(*Client)

// WithAPIKey sets the X-API-Key header on every upstream request.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithRateLimit bounds outbound requests per second. A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(1, burst))
		}
	}
}

// WithPageSize sets how many transactions are requested per page while streaming.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithMaxRetryElapsed bounds the total time spent retrying a single upstream request.
func WithMaxRetryElapsed(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.maxElapsed = d
		}
	}
}

func New(logger *logrus.Logger, httpClient *http.Client, nodeAddr string, opts ...Option) *Client {
	c := &Client{
		logger:     logger,
		httpClient: httpClient,
		nodeAddr:   nodeAddr,
		pageSize:   DefaultPageSize,
		maxElapsed: time.Second * 3,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) GetMasterchainInfo(ctx context.Context) (*MasterchainInfo, error) {
	var info MasterchainInfo
	err := c.call(ctx, getMasterchainInfo, map[string]any{}, &info)
	if err != nil {
		return nil, err
	}

	return &info, nil
}

func (c *Client) LookUpBlockBySeqno(ctx context.Context, workchain, shard int64, seqno uint64) (*BlockIDExt, error) {
	var block BlockIDExt
	err := c.call(ctx, lookupBlock, map[string]any{
		"workchain": workchain,
		"shard":     strconv.FormatInt(shard, 10),
		"seqno":     seqno,
	}, &block)
	if err != nil {
		return nil, err
	}

	return &block, nil
}

func (c *Client) LookUpBlockByLt(ctx context.Context, workchain, shard, lt int64) (*BlockIDExt, error) {
	var block BlockIDExt
	err := c.call(ctx, lookupBlock, map[string]any{
		"workchain": workchain,
		"shard":     strconv.FormatInt(shard, 10),
		"lt":        lt,
	}, &block)
	if err != nil {
		return nil, err
	}

	return &block, nil
}

func (c *Client) GetShards(ctx context.Context, seqno uint64) (json.RawMessage, error) {
	var result json.RawMessage
	err := c.call(ctx, shards, map[string]any{"seqno": seqno}, &result)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (c *Client) GetBlockHeader(ctx context.Context, block BlockIDExt) (json.RawMessage, error) {
	var result json.RawMessage
	err := c.call(ctx, getBlockHeader, blockParams(block), &result)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (c *Client) RawGetAccountState(ctx context.Context, addr string) (json.RawMessage, error) {
	var result json.RawMessage
	err := c.call(ctx, getAddressInformation, map[string]any{"address": addr}, &result)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (c *Client) GetAccountState(ctx context.Context, addr string) (json.RawMessage, error) {
	var result json.RawMessage
	err := c.call(ctx, getExtendedAddressInformation, map[string]any{"address": addr}, &result)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// SendMessage submits a base64 encoded BOC.
func (c *Client) SendMessage(ctx context.Context, boc string) (json.RawMessage, error) {
	var result json.RawMessage
	err := c.call(ctx, sendBoc, map[string]any{"boc": boc}, &result)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func blockParams(block BlockIDExt) map[string]any {
	return map[string]any{
		"workchain": block.Workchain,
		"shard":     strconv.FormatInt(block.Shard, 10),
		"seqno":     block.Seqno,
		"root_hash": block.RootHash,
		"file_hash": block.FileHash,
	}
}

func (c *Client) call(ctx context.Context, method rpcMethod, params map[string]any, out any) error {
	logger := c.logger.WithContext(ctx).WithField("method", method)

	if c.limiter != nil {
		err := c.limiter.Wait(ctx)
		if err != nil {
			upstreamRequests.WithLabelValues(string(method), "rate_limited").Inc()
			return fmt.Errorf("wait for upstream rate limiter: %w", err)
		}
	}

	payload := map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
		"id":      method.ID(),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("could not marshal payload: %w", err)
	}

	resp, err := c.doRequestWithRetry(ctx, method, data)
	if err != nil {
		upstreamRequests.WithLabelValues(string(method), "unavailable").Inc()
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return fmt.Errorf("%s: %w", method, err)
		}
		return fmt.Errorf("%w: %s: %w", ErrUnavailable, method, err)
	}
	defer resp.Body.Close()

	var response response
	err = json.NewDecoder(resp.Body).Decode(&response)
	if err != nil {
		upstreamRequests.WithLabelValues(string(method), "bad_response").Inc()
		if resp.StatusCode != http.StatusOK {
			return &UpstreamError{Method: string(method), Code: resp.StatusCode, Message: resp.Status}
		}
		return fmt.Errorf("decode %s response body: %w", method, err)
	}

	if !response.Ok {
		upstreamRequests.WithLabelValues(string(method), "error").Inc()
		code := response.Code
		if code == 0 {
			code = resp.StatusCode
		}
		logger.WithFields(logrus.Fields{
			"code":  code,
			"error": response.Error,
		}).Debug("Upstream answered with an error")
		return &UpstreamError{Method: string(method), Code: code, Message: response.Error}
	}

	err = json.Unmarshal(response.Result, out)
	if err != nil {
		upstreamRequests.WithLabelValues(string(method), "bad_response").Inc()
		return fmt.Errorf("decode %s result: %w", method, err)
	}

	upstreamRequests.WithLabelValues(string(method), "ok").Inc()
	return nil
}

func (c *Client) newRequest(ctx context.Context, data []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.nodeAddr, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not make new request with context: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Length", strconv.Itoa(len(data)))
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	return req, nil
}

// doRequestWithRetry retries transport failures, 429 and 5xx answers.
// A fresh request is built per attempt since the body is consumed by each send.
func (c *Client) doRequestWithRetry(ctx context.Context, method rpcMethod, data []byte) (*http.Response, error) {
	bk := backoff.WithContext(c.newExponentialBackoffConfig(), ctx)
	attempt := 0
	return backoff.RetryWithData[*http.Response](func() (*http.Response, error) {
		attempt++
		if attempt > 1 {
			upstreamRetries.WithLabelValues(string(method)).Inc()
		}

		req, err := c.newRequest(ctx, data)
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return nil, backoff.Permanent(fmt.Errorf("could not make http call: %w", err))
			}
			c.logger.WithField("method", method).WithError(err).Error("Failed to make http request, retrying...")
			return nil, fmt.Errorf("http request failed: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			_ = resp.Body.Close()
			c.logger.WithFields(logrus.Fields{
				"method":   method,
				"status":   resp.StatusCode,
				"response": string(body),
			}).Warn("Upstream answered with a retryable status, retrying...")
			return nil, fmt.Errorf("received unexpected status: %s", resp.Status)
		}

		return resp, nil
	}, bk)
}

func (c *Client) newExponentialBackoffConfig() *backoff.ExponentialBackOff {
	return backoff.NewExponentialBackOff(
		backoff.WithMaxElapsedTime(c.maxElapsed),
		backoff.WithMaxInterval(time.Second),
		backoff.WithInitialInterval(time.Millisecond*100),
		backoff.WithMultiplier(2),
		backoff.WithRandomizationFactor(0.2),
	)
}
