package ton

import (
	"context"
	"fmt"
	"iter"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/hedisam/tonrpc/internal/ringbuffer"
)

// GetTxStream lazily lists the transactions of a block in upstream order, starting after
// the given cursor when it is not nil. The cursor hash of a block stream is the account
// of the last seen transaction. A page is only fetched once the previous one is consumed.
func (c *Client) GetTxStream(ctx context.Context, block BlockIDExt, after *TxCursor) iter.Seq2[ShortTxID, error] {
	return func(yield func(ShortTxID, error) bool) {
		logger := c.logger.WithContext(ctx).WithFields(logrus.Fields{
			"workchain": block.Workchain,
			"shard":     block.Shard,
			"seqno":     block.Seqno,
		})

		buf := ringbuffer.New[ShortTxID](uint(c.pageSize))
		cursor := after
		more := true
		for {
			if buf.Size() == 0 {
				if !more {
					return
				}

				page, err := c.blockTransactionsPage(ctx, block, cursor)
				if err != nil {
					yield(ShortTxID{}, err)
					return
				}
				if len(page.Transactions) == 0 {
					return
				}

				// the buffer may take fewer items than the upstream returned; the next page
				// then resumes after the last queued one
				n := buf.PushAll(page.Transactions)
				last := page.Transactions[n-1]
				lt, err := strconv.ParseInt(last.Lt, 10, 64)
				if err != nil {
					yield(ShortTxID{}, fmt.Errorf("invalid lt %q in block transaction: %w", last.Lt, err))
					return
				}
				cursor = &TxCursor{Lt: lt, Hash: last.Account}
				more = page.Incomplete || n < len(page.Transactions)
				logger.WithFields(logrus.Fields{
					"page_size": len(page.Transactions),
					"more":      more,
				}).Debug("Fetched block transactions page")
			}

			tx, _ := buf.Pop()
			if !yield(tx, nil) {
				return
			}
		}
	}
}

// GetAccountTxStream lazily lists an account's transactions from the latest one backwards.
func (c *Client) GetAccountTxStream(ctx context.Context, addr string, archival bool) iter.Seq2[RawTransaction, error] {
	return c.accountTxStream(ctx, addr, nil, archival)
}

// GetAccountTxStreamFrom lazily lists an account's transactions backwards, starting at
// (and including) the transaction identified by cursor.
func (c *Client) GetAccountTxStreamFrom(ctx context.Context, addr string, cursor TxCursor, archival bool) iter.Seq2[RawTransaction, error] {
	return c.accountTxStream(ctx, addr, &cursor, archival)
}

func (c *Client) accountTxStream(ctx context.Context, addr string, from *TxCursor, archival bool) iter.Seq2[RawTransaction, error] {
	return func(yield func(RawTransaction, error) bool) {
		buf := ringbuffer.New[RawTransaction](uint(c.pageSize))
		cursor := from
		resumed := false
		exhausted := false
		for {
			if buf.Size() == 0 {
				if exhausted {
					return
				}

				// pages start at the cursor inclusively, so a resumed page asks for one
				// extra item and drops the already yielded head
				limit := c.pageSize
				if resumed {
					limit++
				}
				page, err := c.transactionsPage(ctx, addr, cursor, limit, archival)
				if err != nil {
					yield(RawTransaction{}, err)
					return
				}
				received := len(page)
				if resumed && len(page) > 0 && page[0].Cursor() == *cursor {
					page = page[1:]
				}
				if len(page) == 0 {
					return
				}

				n := buf.PushAll(page)
				tail := page[n-1].Cursor()
				cursor = &tail
				resumed = true
				exhausted = received < limit && n == len(page)
			}

			tx, _ := buf.Pop()
			if !yield(tx, nil) {
				return
			}
		}
	}
}

func (c *Client) blockTransactionsPage(ctx context.Context, block BlockIDExt, after *TxCursor) (*blockTransactions, error) {
	params := blockParams(block)
	params["count"] = c.pageSize
	if after != nil {
		params["after_lt"] = after.Lt
		params["after_hash"] = after.Hash
	}

	var page blockTransactions
	err := c.call(ctx, getBlockTransactions, params, &page)
	if err != nil {
		return nil, err
	}
	streamedPages.WithLabelValues(string(getBlockTransactions)).Inc()

	return &page, nil
}

func (c *Client) transactionsPage(ctx context.Context, addr string, cursor *TxCursor, limit int, archival bool) ([]RawTransaction, error) {
	params := map[string]any{
		"address": addr,
		"limit":   limit,
	}
	if cursor != nil {
		params["lt"] = strconv.FormatInt(cursor.Lt, 10)
		params["hash"] = cursor.Hash
	}
	if archival {
		params["archival"] = true
	}

	var page []RawTransaction
	err := c.call(ctx, getTransactions, params, &page)
	if err != nil {
		return nil, err
	}
	streamedPages.WithLabelValues(string(getTransactions)).Inc()

	return page, nil
}
