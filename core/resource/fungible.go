package resource

// FungibleBucket is a transient holder of a definite Decimal amount,
// existing only within a call frame.
type FungibleBucket struct {
	divisibility int
	amount       Decimal
}

func NewFungibleBucket(divisibility int, amount Decimal) (*FungibleBucket, error) {
	if divisibility < 0 || divisibility > DecimalScale {
		return nil, ErrDivisibilityRange
	}
	if amount.IsNegative() {
		return nil, ErrNegativeAmount
	}
	rounded, err := amount.Round(Exact(), divisibility)
	if err != nil {
		return nil, err
	}
	return &FungibleBucket{divisibility: divisibility, amount: rounded}, nil
}

func (b *FungibleBucket) Amount() Decimal   { return b.amount }
func (b *FungibleBucket) Divisibility() int { return b.divisibility }

// Put merges o into b, consuming o.
func (b *FungibleBucket) Put(o *FungibleBucket) error {
	sum, err := b.amount.Add(o.amount)
	if err != nil {
		return err
	}
	b.amount = sum
	o.amount = DecimalZero
	return nil
}

// Take splits off amount into a new bucket.
func (b *FungibleBucket) Take(amount Decimal) (*FungibleBucket, error) {
	return b.TakeAdvanced(amount, Exact())
}

// TakeAdvanced rounds amount per strategy at the bucket's divisibility
// before subtracting it.
func (b *FungibleBucket) TakeAdvanced(amount Decimal, strategy RoundingStrategy) (*FungibleBucket, error) {
	if amount.IsNegative() {
		return nil, ErrNegativeAmount
	}
	rounded, err := amount.Round(strategy, b.divisibility)
	if err != nil {
		return nil, err
	}
	if rounded.Cmp(b.amount) > 0 {
		return nil, ErrInsufficientBalance
	}
	remaining, err := b.amount.Sub(rounded)
	if err != nil {
		return nil, err
	}
	b.amount = remaining
	return &FungibleBucket{divisibility: b.divisibility, amount: rounded}, nil
}

// FungibleVault is a bucket's persistent counterpart, owned by an account or
// component rather than a call frame. locked tracks how much of amount is
// currently pinned by outstanding proofs (see proof.go); take operations
// must never draw the unlocked balance below zero.
type FungibleVault struct {
	divisibility int
	amount       Decimal
	locked       Decimal
}

func NewFungibleVault(divisibility int) (*FungibleVault, error) {
	if divisibility < 0 || divisibility > DecimalScale {
		return nil, ErrDivisibilityRange
	}
	return &FungibleVault{divisibility: divisibility}, nil
}

func (v *FungibleVault) Amount() Decimal    { return v.amount }
func (v *FungibleVault) Divisibility() int  { return v.divisibility }

func (v *FungibleVault) Put(b *FungibleBucket) error {
	if b.divisibility != v.divisibility {
		return ErrDivisibilityRange
	}
	sum, err := v.amount.Add(b.amount)
	if err != nil {
		return err
	}
	v.amount = sum
	b.amount = DecimalZero
	return nil
}

func (v *FungibleVault) Take(amount Decimal) (*FungibleBucket, error) {
	return v.TakeAdvanced(amount, Exact())
}

func (v *FungibleVault) TakeAdvanced(amount Decimal, strategy RoundingStrategy) (*FungibleBucket, error) {
	if amount.IsNegative() {
		return nil, ErrNegativeAmount
	}
	rounded, err := amount.Round(strategy, v.divisibility)
	if err != nil {
		return nil, err
	}
	available, err := v.amount.Sub(v.locked)
	if err != nil {
		return nil, err
	}
	if rounded.Cmp(available) > 0 {
		return nil, ErrInsufficientBalance
	}
	remaining, err := v.amount.Sub(rounded)
	if err != nil {
		return nil, err
	}
	v.amount = remaining
	return &FungibleBucket{divisibility: v.divisibility, amount: rounded}, nil
}
