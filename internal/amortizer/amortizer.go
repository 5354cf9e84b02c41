// Package amortizer splits payments on interest-bearing liabilities into
// their interest and principal components.
//
// Interest accrues as simple daily-proportional interest on the outstanding
// balance: balance x (annualRate/100) x (elapsedDays/365). The day-count is
// the literal elapsed calendar days between boundaries regardless of the
// recurrence unit, which keeps the accrual frequency-agnostic.
package amortizer

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/recur/internal/dateutils"
)

// DaysPerYear is the day-count basis for simple interest accrual.
const DaysPerYear = 365

// MoneyPlaces is the precision for currency rounding (2 decimal places).
const MoneyPlaces = 2

var (
	hundred     = decimal.NewFromInt(100)
	daysPerYear = decimal.NewFromInt(DaysPerYear)
)

// Result is the outcome of splitting a single payment.
//
// Total may differ from the payment amount only when the principal is capped
// by the remaining balance reaching zero, i.e. the final payment is smaller
// than scheduled. UnpaidInterest is non-zero when the payment did not even
// cover the accrued interest.
type Result struct {
	Principal        decimal.Decimal
	Interest         decimal.Decimal
	Total            decimal.Decimal
	RemainingBalance decimal.Decimal
	UnpaidInterest   decimal.Decimal
}

// AccruedInterest computes simple interest on a balance over elapsedDays,
// rounded to currency precision (round-half-up).
func AccruedInterest(balance, annualRatePct decimal.Decimal, elapsedDays int) decimal.Decimal {
	if elapsedDays < 1 {
		elapsedDays = 1
	}
	days := decimal.NewFromInt(int64(elapsedDays))
	return balance.Mul(annualRatePct).Div(hundred).Mul(days).Div(daysPerYear).Round(MoneyPlaces)
}

// Breakdown splits a payment made on paymentDate against the current balance.
//
// Elapsed days run from lastPaymentDate to paymentDate; when no prior payment
// is known, one nominal period (nominalPeriodDays) is assumed. A zero or
// negative window is clamped to a single day so interest never vanishes.
func Breakdown(payment, balance, annualRatePct decimal.Decimal, paymentDate time.Time, lastPaymentDate *time.Time, nominalPeriodDays int) Result {
	elapsed := nominalPeriodDays
	if lastPaymentDate != nil {
		elapsed = dateutils.DaysBetween(*lastPaymentDate, paymentDate)
	}
	if elapsed < 1 {
		elapsed = 1
	}

	interest := AccruedInterest(balance, annualRatePct, elapsed)

	principal := payment.Sub(interest)
	unpaid := decimal.Zero
	if principal.IsNegative() {
		// Payment does not cover the accrued interest; the shortfall is
		// reported instead of silently dropped.
		unpaid = interest.Sub(payment)
		principal = decimal.Zero
	}
	if principal.GreaterThan(balance) {
		principal = balance
	}

	remaining := balance.Sub(principal)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return Result{
		Principal:        principal,
		Interest:         interest,
		Total:            principal.Add(interest),
		RemainingBalance: remaining,
		UnpaidInterest:   unpaid,
	}
}

// PeriodSplit computes the interest/principal split for one scheduled cycle.
//
// When interestIncluded is set the expected amount covers both components;
// otherwise the whole expected amount reduces principal and interest is owed
// on top. The negativeAmortization flag is raised when the expected amount
// cannot cover the accrued interest; principal clamps to zero and the balance
// is carried unchanged rather than grown.
func PeriodSplit(expected, balance, annualRatePct decimal.Decimal, daysInPeriod int, interestIncluded bool) (principal, interest, newBalance, unpaid decimal.Decimal, negativeAmortization bool) {
	interest = AccruedInterest(balance, annualRatePct, daysInPeriod)

	if interestIncluded {
		principal = expected.Sub(interest)
		if principal.IsNegative() {
			unpaid = interest.Sub(expected)
			principal = decimal.Zero
			negativeAmortization = true
		}
	} else {
		principal = expected
	}

	if principal.GreaterThan(balance) {
		principal = balance
	}

	newBalance = balance.Sub(principal)
	if newBalance.IsNegative() {
		newBalance = decimal.Zero
	}
	return principal, interest, newBalance, unpaid, negativeAmortization
}
