package loan

import "time"

// State is the calculator state: current inputs, the last computed result and the
// session history. State is a value; every method returns a new State and leaves the
// receiver untouched.
type State struct {
	Inputs
	Result
	History []Calculation `json:"calculations" yaml:"calculations"`
}

// NewState returns the calculator defaults
func NewState() State {
	return State{
		Inputs: Inputs{
			LoanAmount:   0,
			InterestRate: 3.5,
			LoanTerm:     30,
		},
	}
}

// SetLoanAmount updates the principal and recalculates when the inputs are valid
func (s State) SetLoanAmount(amount float64, now time.Time) State {
	s.LoanAmount = amount
	return s.autoRecalculate(now)
}

// SetInterestRate updates the annual rate and recalculates when the inputs are valid
func (s State) SetInterestRate(rate float64, now time.Time) State {
	s.InterestRate = rate
	return s.autoRecalculate(now)
}

// SetLoanTerm updates the term and recalculates when the inputs are valid
func (s State) SetLoanTerm(years int, now time.Time) State {
	s.LoanTerm = years
	return s.autoRecalculate(now)
}

func (s State) autoRecalculate(now time.Time) State {
	if !s.Inputs.Valid() {
		return s
	}
	return s.Recalculate(now)
}

// Recalculate computes the result for the current inputs. With a non-positive loan
// amount the outputs are zeroed and nothing is added to the history.
func (s State) Recalculate(now time.Time) State {
	if s.LoanAmount <= 0 {
		s.Result = Result{}
		return s
	}

	s.Result = Calculate(s.Inputs)

	n := len(s.History) + 1
	if n > HistoryLimit {
		n = HistoryLimit
	}
	history := make([]Calculation, 0, n)
	history = append(history, Calculation{Inputs: s.Inputs, Result: s.Result, Timestamp: now})
	history = append(history, s.History[:n-1]...)
	s.History = history
	return s
}

// ClearHistory drops all recorded calculations
func (s State) ClearHistory() State {
	s.History = nil
	return s
}
