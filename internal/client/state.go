package client

import (
	"time"

	"propertyhub/internal/loan"
	"propertyhub/internal/models"
)

type AuthState struct {
	User            *models.PublicUser
	Token           string
	IsAuthenticated bool
	Loading         bool
	Error           string
}

// PropertiesState holds the owner's properties normalized by id. Order lists ids
// newest first.
type PropertiesState struct {
	ByID       map[string]models.Property
	Order      []string
	SelectedID string
	Loading    bool
	Error      string
}

// List returns the properties in display order
func (s PropertiesState) List() []models.Property {
	list := make([]models.Property, 0, len(s.Order))
	for _, id := range s.Order {
		list = append(list, s.ByID[id])
	}
	return list
}

// Selected returns the selected property, if any
func (s PropertiesState) Selected() (models.Property, bool) {
	if s.SelectedID == "" {
		return models.Property{}, false
	}
	p, ok := s.ByID[s.SelectedID]
	return p, ok
}

type State struct {
	Auth       AuthState
	Properties PropertiesState
	Loan       loan.State
}

// NewState builds the initial state, restoring a persisted session when one exists
func NewState(persisted *PersistedSession) State {
	s := State{
		Properties: PropertiesState{ByID: map[string]models.Property{}},
		Loan:       loan.NewState(),
	}
	if persisted != nil && persisted.Token != "" {
		s.Auth.Token = persisted.Token
		s.Auth.User = persisted.User
		s.Auth.IsAuthenticated = true
	}
	return s
}

// Event is something that happened to the client: a request starting or finishing,
// or a local user action.
type Event interface {
	event()
}

// Auth events
type (
	AuthRequested struct{}
	AuthSucceeded struct {
		User  models.PublicUser
		Token string
	}
	AuthFailed struct{ Message string }
	LoggedOut  struct{}
)

// Property events
type (
	PropertiesRequested struct{}
	PropertiesFailed    struct{ Message string }
	PropertiesFetched   struct{ Properties []models.Property }
	PropertyCreated     struct{ Property models.Property }
	PropertyUpdated     struct{ Property models.Property }
	PropertyDeleted     struct{ ID string }
	PropertySelected    struct{ ID string }
	ErrorCleared        struct{}
)

// Loan calculator events
type (
	LoanAmountChanged struct {
		Amount float64
		At     time.Time
	}
	InterestRateChanged struct {
		Rate float64
		At   time.Time
	}
	LoanTermChanged struct {
		Years int
		At    time.Time
	}
	LoanRecalculated   struct{ At time.Time }
	LoanHistoryCleared struct{}
)

func (AuthRequested) event()       {}
func (AuthSucceeded) event()       {}
func (AuthFailed) event()          {}
func (LoggedOut) event()           {}
func (PropertiesRequested) event() {}
func (PropertiesFailed) event()    {}
func (PropertiesFetched) event()   {}
func (PropertyCreated) event()     {}
func (PropertyUpdated) event()     {}
func (PropertyDeleted) event()     {}
func (PropertySelected) event()    {}
func (ErrorCleared) event()        {}
func (LoanAmountChanged) event()   {}
func (InterestRateChanged) event() {}
func (LoanTermChanged) event()     {}
func (LoanRecalculated) event()    {}
func (LoanHistoryCleared) event()  {}

// Reduce returns the state that follows s after e. It never modifies s; maps and
// slices are copied before being changed. Unknown events leave s unchanged.
func Reduce(s State, e Event) State {
	switch e := e.(type) {
	case AuthRequested:
		s.Auth.Loading = true
		s.Auth.Error = ""
	case AuthSucceeded:
		user := e.User
		s.Auth = AuthState{User: &user, Token: e.Token, IsAuthenticated: true}
	case AuthFailed:
		s.Auth.Loading = false
		s.Auth.Error = e.Message
	case LoggedOut:
		s.Auth = AuthState{}
		s.Properties = PropertiesState{ByID: map[string]models.Property{}}

	case PropertiesRequested:
		s.Properties.Loading = true
		s.Properties.Error = ""
	case PropertiesFailed:
		s.Properties.Loading = false
		s.Properties.Error = e.Message
	case PropertiesFetched:
		s.Properties = fetched(s.Properties, e.Properties)
	case PropertyCreated:
		s.Properties = created(s.Properties, e.Property)
	case PropertyUpdated:
		s.Properties = updated(s.Properties, e.Property)
	case PropertyDeleted:
		s.Properties = deleted(s.Properties, e.ID)
	case PropertySelected:
		s.Properties.SelectedID = e.ID
	case ErrorCleared:
		s.Auth.Error = ""
		s.Properties.Error = ""

	case LoanAmountChanged:
		s.Loan = s.Loan.SetLoanAmount(e.Amount, e.At)
	case InterestRateChanged:
		s.Loan = s.Loan.SetInterestRate(e.Rate, e.At)
	case LoanTermChanged:
		s.Loan = s.Loan.SetLoanTerm(e.Years, e.At)
	case LoanRecalculated:
		s.Loan = s.Loan.Recalculate(e.At)
	case LoanHistoryCleared:
		s.Loan = s.Loan.ClearHistory()
	}
	return s
}

func fetched(s PropertiesState, properties []models.Property) PropertiesState {
	byID := make(map[string]models.Property, len(properties))
	order := make([]string, 0, len(properties))
	for _, p := range properties {
		if _, dup := byID[p.ID]; !dup {
			order = append(order, p.ID)
		}
		byID[p.ID] = p
	}

	next := PropertiesState{ByID: byID, Order: order}
	if _, ok := byID[s.SelectedID]; ok {
		next.SelectedID = s.SelectedID
	}
	return next
}

func created(s PropertiesState, p models.Property) PropertiesState {
	byID := copyProperties(s.ByID)
	order := make([]string, 0, len(s.Order)+1)
	order = append(order, p.ID)
	for _, id := range s.Order {
		if id != p.ID {
			order = append(order, id)
		}
	}
	byID[p.ID] = p

	s.ByID, s.Order = byID, order
	s.Loading, s.Error = false, ""
	return s
}

// updated replaces a known property; updates for ids not in the cache are dropped
func updated(s PropertiesState, p models.Property) PropertiesState {
	s.Loading, s.Error = false, ""
	if _, ok := s.ByID[p.ID]; !ok {
		return s
	}
	byID := copyProperties(s.ByID)
	byID[p.ID] = p
	s.ByID = byID
	return s
}

func deleted(s PropertiesState, id string) PropertiesState {
	s.Loading, s.Error = false, ""
	if _, ok := s.ByID[id]; !ok {
		return s
	}

	byID := copyProperties(s.ByID)
	delete(byID, id)
	order := make([]string, 0, len(s.Order))
	for _, other := range s.Order {
		if other != id {
			order = append(order, other)
		}
	}

	s.ByID, s.Order = byID, order
	if s.SelectedID == id {
		s.SelectedID = ""
	}
	return s
}

func copyProperties(in map[string]models.Property) map[string]models.Property {
	out := make(map[string]models.Property, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}
