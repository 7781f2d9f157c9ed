package domain

// Account holds one client's balances. The zero value is an empty,
// unlocked account. Every method either applies its change in full or
// returns an error and leaves the account untouched.
type Account struct {
	total  Amount
	held   Amount
	locked bool
}

func NewAccount(total Amount) *Account {
	return &Account{total: total}
}

func (a Account) Total() Amount { return a.total }

func (a Account) Held() Amount { return a.held }

// Available is total minus held; held never exceeds total.
func (a Account) Available() Amount { return a.total - a.held }

func (a Account) Locked() bool { return a.locked }

func (a *Account) Deposit(amount Amount) error {
	if a.locked {
		return ErrLockedAccount
	}
	total, ok := a.total.Add(amount)
	if !ok {
		return ErrAmountOverflow
	}
	a.total = total
	return nil
}

func (a *Account) Withdraw(amount Amount) error {
	if a.locked {
		return ErrLockedAccount
	}
	if amount > a.Available() {
		return ErrInsufficientAvailableFunds
	}
	total, ok := a.total.Sub(amount)
	if !ok {
		return ErrInsufficientAvailableFunds
	}
	a.total = total
	return nil
}

// Dispute moves amount from available into held. Funds already spent
// cannot be held.
func (a *Account) Dispute(amount Amount) error {
	if amount > a.Available() {
		return ErrInsufficientAvailableFunds
	}
	a.held += amount
	return nil
}

func (a *Account) Resolve(amount Amount) error {
	held, ok := a.held.Sub(amount)
	if !ok {
		return ErrInsufficientHeldFunds
	}
	a.held = held
	return nil
}

// Chargeback removes held funds for good and locks the account. A failed
// chargeback neither mutates nor locks.
func (a *Account) Chargeback(amount Amount) error {
	held, ok := a.held.Sub(amount)
	if !ok {
		return ErrInsufficientHeldFunds
	}
	total, ok := a.total.Sub(amount)
	if !ok {
		return ErrInsufficientHeldFunds
	}
	a.held, a.total = held, total
	a.locked = true
	return nil
}
