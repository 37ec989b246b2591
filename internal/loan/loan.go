package loan

import (
	"math"
	"time"
)

// HistoryLimit is the number of past calculations kept in State.History
const HistoryLimit = 10

// Terms lists the loan terms, in years, offered to the user
var Terms = []int{10, 15, 20, 25, 30}

// Inputs describes a fixed-rate, fully amortizing loan
type Inputs struct {
	LoanAmount   float64 `json:"loanAmount" yaml:"loan_amount"`
	InterestRate float64 `json:"interestRate" yaml:"interest_rate"` // annual, in percent
	LoanTerm     int     `json:"loanTerm" yaml:"loan_term"`         // years
}

// Result holds the derived payment figures for a set of Inputs
type Result struct {
	MonthlyPayment float64 `json:"monthlyPayment" yaml:"monthly_payment"`
	TotalPayment   float64 `json:"totalPayment" yaml:"total_payment"`
	TotalInterest  float64 `json:"totalInterest" yaml:"total_interest"`
}

// Calculation is a single entry of the calculation history
type Calculation struct {
	Inputs
	Result
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Valid reports whether the inputs are within the ranges that trigger an automatic recalculation
func (in Inputs) Valid() bool {
	return in.LoanAmount > 0 && in.InterestRate >= 0 && in.LoanTerm > 0
}

// NumberOfPayments returns the number of monthly payments over the loan term
func (in Inputs) NumberOfPayments() int {
	return in.LoanTerm * 12
}

// ValidTerm reports whether years is one of the offered Terms
func ValidTerm(years int) bool {
	for _, t := range Terms {
		if t == years {
			return true
		}
	}
	return false
}

// Calculate computes the level monthly payment of an ordinary annuity.
// A non-positive loan amount yields a zero Result.
func Calculate(in Inputs) Result {
	if in.LoanAmount <= 0 || in.LoanTerm <= 0 {
		return Result{}
	}

	monthlyRate := in.InterestRate / 100 / 12
	n := float64(in.NumberOfPayments())

	var monthly float64
	if monthlyRate == 0 {
		monthly = in.LoanAmount / n
	} else {
		growth := math.Pow(1+monthlyRate, n)
		monthly = in.LoanAmount * monthlyRate * growth / (growth - 1)
	}

	total := monthly * n
	return Result{
		MonthlyPayment: monthly,
		TotalPayment:   total,
		TotalInterest:  total - in.LoanAmount,
	}
}
