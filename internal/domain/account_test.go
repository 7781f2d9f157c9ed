package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	a := NewAccount(42)
	assert.Equal(t, Amount(42), a.Total())
	assert.Equal(t, Amount(0), a.Held())
	assert.Equal(t, Amount(42), a.Available())
	assert.False(t, a.Locked())
}

func TestAccount_Deposit(t *testing.T) {
	tests := []struct {
		name      string
		account   Account
		amount    Amount
		wantErr   error
		wantTotal Amount
	}{
		{
			name:      "normal",
			account:   Account{total: 42},
			amount:    12,
			wantTotal: 54,
		},
		{
			name:      "zero amount",
			account:   Account{total: 42},
			amount:    0,
			wantTotal: 42,
		},
		{
			name:      "locked",
			account:   Account{total: 42, locked: true},
			amount:    12,
			wantErr:   ErrLockedAccount,
			wantTotal: 42,
		},
		{
			name:      "overflow",
			account:   Account{total: ^Amount(0) - 1},
			amount:    2,
			wantErr:   ErrAmountOverflow,
			wantTotal: ^Amount(0) - 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := tc.account
			err := a.Deposit(tc.amount)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.wantTotal, a.Total())
			assert.Equal(t, tc.account.Held(), a.Held())
		})
	}
}

func TestAccount_Withdraw(t *testing.T) {
	tests := []struct {
		name          string
		account       Account
		amount        Amount
		wantErr       error
		wantAvailable Amount
		wantTotal     Amount
	}{
		{
			name:          "normal",
			account:       Account{total: 42},
			amount:        12,
			wantAvailable: 30,
			wantTotal:     30,
		},
		{
			name:          "exactly available",
			account:       Account{total: 42, held: 2},
			amount:        40,
			wantAvailable: 0,
			wantTotal:     2,
		},
		{
			name:          "one unit over available",
			account:       Account{total: 42, held: 2},
			amount:        41,
			wantErr:       ErrInsufficientAvailableFunds,
			wantAvailable: 40,
			wantTotal:     42,
		},
		{
			name:          "insufficient total funds",
			account:       Account{total: 42},
			amount:        80,
			wantErr:       ErrInsufficientAvailableFunds,
			wantAvailable: 42,
			wantTotal:     42,
		},
		{
			name:          "insufficient available funds",
			account:       Account{total: 42, held: 32},
			amount:        40,
			wantErr:       ErrInsufficientAvailableFunds,
			wantAvailable: 10,
			wantTotal:     42,
		},
		{
			name:          "locked",
			account:       Account{total: 42, locked: true},
			amount:        12,
			wantErr:       ErrLockedAccount,
			wantAvailable: 42,
			wantTotal:     42,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := tc.account
			err := a.Withdraw(tc.amount)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.wantAvailable, a.Available())
			assert.Equal(t, tc.wantTotal, a.Total())
		})
	}
}

func TestAccount_Dispute(t *testing.T) {
	a := NewAccount(42)

	require.NoError(t, a.Dispute(12))
	assert.Equal(t, Amount(30), a.Available())
	assert.Equal(t, Amount(12), a.Held())
	assert.Equal(t, Amount(42), a.Total())

	err := a.Dispute(42)
	require.ErrorIs(t, err, ErrInsufficientAvailableFunds)
	assert.Equal(t, Amount(30), a.Available())
	assert.Equal(t, Amount(12), a.Held())
	assert.Equal(t, Amount(42), a.Total())
}

func TestAccount_DisputeOnLockedAccount(t *testing.T) {
	a := Account{total: 42, locked: true}
	require.NoError(t, a.Dispute(10))
	assert.Equal(t, Amount(10), a.Held())
}

func TestAccount_Resolve(t *testing.T) {
	a := Account{total: 42, held: 12}

	require.ErrorIs(t, a.Resolve(13), ErrInsufficientHeldFunds)
	assert.Equal(t, Amount(12), a.Held())

	require.NoError(t, a.Resolve(12))
	assert.Equal(t, Amount(0), a.Held())
	assert.Equal(t, Amount(42), a.Available())
	assert.Equal(t, Amount(42), a.Total())
	assert.False(t, a.Locked())
}

func TestAccount_Chargeback(t *testing.T) {
	t.Run("insufficient held funds neither mutates nor locks", func(t *testing.T) {
		a := Account{total: 42, held: 12}
		require.ErrorIs(t, a.Chargeback(13), ErrInsufficientHeldFunds)
		assert.Equal(t, Amount(12), a.Held())
		assert.Equal(t, Amount(42), a.Total())
		assert.False(t, a.Locked())
	})

	t.Run("removes held funds and locks", func(t *testing.T) {
		a := Account{total: 42, held: 12}
		require.NoError(t, a.Chargeback(12))
		assert.Equal(t, Amount(0), a.Held())
		assert.Equal(t, Amount(30), a.Total())
		assert.Equal(t, Amount(30), a.Available())
		assert.True(t, a.Locked())

		require.ErrorIs(t, a.Deposit(1), ErrLockedAccount)
		require.ErrorIs(t, a.Withdraw(1), ErrLockedAccount)
		assert.Equal(t, Amount(30), a.Total())
	})
}

func TestAccount_AccessorsOnValue(t *testing.T) {
	snapshot := func(a *Account) Account { return *a }

	a := NewAccount(42)
	require.NoError(t, a.Dispute(12))

	assert.Equal(t, Amount(42), snapshot(a).Total())
	assert.Equal(t, Amount(12), snapshot(a).Held())
	assert.Equal(t, Amount(30), snapshot(a).Available())
	assert.False(t, snapshot(a).Locked())
}
