package app

import (
	"context"
	"testing"

	"github.com/iov-one/weave/coin"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/store"
	"github.com/iov-one/weave/weavetest"
	"github.com/iov-one/weave/x/cash"
	"github.com/stretchr/testify/assert"
)

func TestMinFeeDecorator(t *testing.T) {
	fee := func(whole int64, ticker string) *cash.FeeInfo {
		c := coin.NewCoin(whole, 0, ticker)
		return &cash.FeeInfo{Fees: &c}
	}

	cases := map[string]struct {
		min     coin.Coin
		fee     *cash.FeeInfo
		wantErr *errors.Error
	}{
		"zero minimum accepts no fee": {
			min: coin.Coin{},
		},
		"fee above minimum": {
			min: coin.NewCoin(2, 0, "ETH"),
			fee: fee(3, "ETH"),
		},
		"fee equal to minimum": {
			min: coin.NewCoin(2, 0, "ETH"),
			fee: fee(2, "ETH"),
		},
		"minimum without ticker accepts any currency": {
			min: coin.Coin{Whole: 1},
			fee: fee(1, "FOO"),
		},
		"missing fee": {
			min:     coin.NewCoin(2, 0, "ETH"),
			wantErr: errors.ErrAmount,
		},
		"fee below minimum": {
			min:     coin.NewCoin(2, 0, "ETH"),
			fee:     fee(1, "ETH"),
			wantErr: errors.ErrAmount,
		},
		"wrong currency": {
			min:     coin.NewCoin(2, 0, "ETH"),
			fee:     fee(5, "FOO"),
			wantErr: errors.ErrCurrency,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			d := NewMinFeeDecorator(tc.min)
			db := store.MemStore()
			tx := &Tx{Fees: tc.fee}

			var next weavetest.Handler
			_, err := d.Check(context.Background(), db, tx, &next)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				assert.Equal(t, 1, next.CheckCallCount())
			} else {
				assert.True(t, tc.wantErr.Is(err), "%+v", err)
				assert.Equal(t, 0, next.CheckCallCount())
			}

			// Only the mempool is filtered.
			_, err = d.Deliver(context.Background(), db, tx, &next)
			assert.NoError(t, err)
			assert.Equal(t, 1, next.DeliverCallCount())
		})
	}
}
