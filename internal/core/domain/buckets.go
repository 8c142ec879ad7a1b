package domain

import "github.com/shopspring/decimal"

// AmountBucket is one accumulated amount keyed by account.
type AmountBucket struct {
	AccountID string
	Amount    decimal.Decimal
}

// AmountBuckets maps account ids to accumulated amounts and remembers the order
// keys were first added, so posting output is deterministic.
type AmountBuckets struct {
	keys   []string
	values map[string]decimal.Decimal
}

// NewAmountBuckets returns an empty bucket map.
func NewAmountBuckets() *AmountBuckets {
	return &AmountBuckets{values: make(map[string]decimal.Decimal)}
}

// Accumulate adds amount to the bucket for accountID and applies round to the
// new running value.
func (b *AmountBuckets) Accumulate(accountID string, amount decimal.Decimal, round func(decimal.Decimal) decimal.Decimal) {
	current, ok := b.values[accountID]
	if !ok {
		b.keys = append(b.keys, accountID)
		current = decimal.Zero
	}
	b.values[accountID] = round(current.Add(amount))
}

// Get returns the amount for accountID.
func (b *AmountBuckets) Get(accountID string) (decimal.Decimal, bool) {
	if b == nil {
		return decimal.Zero, false
	}
	v, ok := b.values[accountID]
	return v, ok
}

// Len returns the number of buckets.
func (b *AmountBuckets) Len() int {
	if b == nil {
		return 0
	}
	return len(b.keys)
}

// Entries returns the buckets in insertion order.
func (b *AmountBuckets) Entries() []AmountBucket {
	if b == nil {
		return nil
	}
	out := make([]AmountBucket, 0, len(b.keys))
	for _, k := range b.keys {
		out = append(out, AmountBucket{AccountID: k, Amount: b.values[k]})
	}
	return out
}
