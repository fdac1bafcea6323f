package app

import (
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/coin"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/x/cash"
)

// MinFeeDecorator rejects on CheckTx the transactions paying less than the
// node local minimum fee. It only filters the mempool of this node. The fee
// enforced by consensus is the one of the cash configuration.
type MinFeeDecorator struct {
	minFee coin.Coin
}

var _ weave.Decorator = MinFeeDecorator{}

// NewMinFeeDecorator returns a decorator enforcing given minimum. A zero
// minimum accepts everything.
func NewMinFeeDecorator(minFee coin.Coin) MinFeeDecorator {
	return MinFeeDecorator{minFee: minFee}
}

func (d MinFeeDecorator) Check(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	if d.minFee.IsZero() {
		return next.Check(ctx, store, tx)
	}

	var fee *coin.Coin
	if ftx, ok := tx.(cash.FeeTx); ok {
		fee = ftx.GetFees().GetFees()
	}
	if coin.IsEmpty(fee) {
		return nil, errors.Wrapf(errors.ErrAmount, "fee required, minimum is %s", d.minFee)
	}

	cmp := d.minFee
	// minimum has no currency -> accept everything
	if cmp.Ticker == "" {
		cmp.Ticker = fee.Ticker
	}
	if !fee.SameType(cmp) {
		return nil, errors.Wrapf(errors.ErrCurrency, "fee must be paid in %s", cmp.Ticker)
	}
	if !fee.IsGTE(cmp) {
		return nil, errors.Wrapf(errors.ErrAmount, "fee %s below minimum %s", fee, cmp)
	}
	return next.Check(ctx, store, tx)
}

func (d MinFeeDecorator) Deliver(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	return next.Deliver(ctx, store, tx)
}
