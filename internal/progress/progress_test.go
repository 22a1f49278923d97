package progress

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/promopace/promopace-backend/pkg/db/models"
)

func testAssignment(target int) models.PromoAssignment {
	return models.PromoAssignment{
		ID:          uuid.New(),
		AccountID:   uuid.New(),
		PromoID:     uuid.New(),
		TargetUnits: target,
	}
}

func tx(accountID, promoID uuid.UUID, units int) models.Transaction {
	return models.Transaction{
		ID:        uuid.New(),
		AccountID: accountID,
		PromoID:   promoID,
		RepID:     uuid.New(),
		UnitsSold: units,
	}
}

func TestComputeAccountNoTransactions(t *testing.T) {
	got := ComputeAccount(AccountInput{Assignment: testAssignment(100)})
	assert.Equal(t, AccountProgress{UnitsSold: 0, ProgressPct: 0, MetTarget: false}, got)
}

func TestComputeAccountRoundsHalfUp(t *testing.T) {
	a := testAssignment(125)
	got := ComputeAccount(AccountInput{
		Assignment:   a,
		Transactions: []models.Transaction{tx(a.AccountID, a.PromoID, 63)},
	})
	// 63/125 = 50.4% -> 50
	assert.Equal(t, 63, got.UnitsSold)
	assert.Equal(t, 50, got.ProgressPct)
	assert.False(t, got.MetTarget)
}

func TestComputeAccountIgnoresStalePromoTransactions(t *testing.T) {
	a := testAssignment(100)
	stalePromo := uuid.New()
	otherAccount := uuid.New()
	got := ComputeAccount(AccountInput{
		Assignment: a,
		Transactions: []models.Transaction{
			tx(a.AccountID, a.PromoID, 40),
			tx(a.AccountID, stalePromo, 25),
			tx(otherAccount, a.PromoID, 10),
		},
	})
	assert.Equal(t, 40, got.UnitsSold)
	assert.Equal(t, 40, got.ProgressPct)
}

func TestComputeAccountZeroTargetYieldsZeroPct(t *testing.T) {
	a := testAssignment(0)
	got := ComputeAccount(AccountInput{
		Assignment:   a,
		Transactions: []models.Transaction{tx(a.AccountID, a.PromoID, 30)},
	})
	assert.Equal(t, 30, got.UnitsSold)
	assert.Equal(t, 0, got.ProgressPct)
	assert.False(t, got.MetTarget)
}

func TestComputeAccountMetTarget(t *testing.T) {
	a := testAssignment(50)
	got := ComputeAccount(AccountInput{
		Assignment:   a,
		Transactions: []models.Transaction{tx(a.AccountID, a.PromoID, 50)},
	})
	assert.Equal(t, 100, got.ProgressPct)
	assert.True(t, got.MetTarget)
}

func TestComputeTeam(t *testing.T) {
	a := testAssignment(100)
	b := testAssignment(50)
	got := ComputeTeam([]AccountInput{
		{Assignment: a, Transactions: []models.Transaction{tx(a.AccountID, a.PromoID, 40)}},
		{Assignment: b, Transactions: []models.Transaction{tx(b.AccountID, b.PromoID, 35)}},
	})
	assert.Equal(t, TeamProgress{TotalUnits: 75, TotalTarget: 150, TeamGoalPct: 50}, got)
}

func TestComputeTeamZeroTarget(t *testing.T) {
	got := ComputeTeam(nil)
	assert.Equal(t, TeamProgress{}, got)
}
