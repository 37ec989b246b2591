package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"propertyhub/internal/loan"
	"propertyhub/internal/models"
)

// Session ties the API client, the state store and the persisted session together.
// Every server call dispatches a request event first and a success or failure event
// once the response is in.
type Session struct {
	api      *Client
	store    *Store
	sessions *SessionStore
	now      func() time.Time
}

// NewSession restores the persisted session, if any, and returns a ready Session
func NewSession(api *Client, sessions *SessionStore) (*Session, error) {
	persisted, err := sessions.Load()
	if err != nil {
		return nil, err
	}
	api.SetToken(persisted.Token)

	return &Session{
		api:      api,
		store:    NewStore(NewState(persisted)),
		sessions: sessions,
		now:      time.Now,
	}, nil
}

func (s *Session) State() State {
	return s.store.Snapshot()
}

func (s *Session) Register(ctx context.Context, username, email, password string) (*models.PublicUser, error) {
	s.store.Dispatch(AuthRequested{})

	resp, err := s.api.Register(ctx, username, email, password)
	if err != nil {
		s.store.Dispatch(AuthFailed{Message: errorMessage(err, "Registration failed")})
		return nil, err
	}
	return s.signedIn(resp)
}

func (s *Session) Login(ctx context.Context, email, password string) (*models.PublicUser, error) {
	s.store.Dispatch(AuthRequested{})

	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.store.Dispatch(AuthFailed{Message: errorMessage(err, "Login failed")})
		return nil, err
	}
	return s.signedIn(resp)
}

func (s *Session) signedIn(resp *AuthResponse) (*models.PublicUser, error) {
	user := resp.User
	if err := s.sessions.Save(&PersistedSession{Token: resp.Token, User: &user}); err != nil {
		s.store.Dispatch(AuthFailed{Message: err.Error()})
		return nil, err
	}
	s.api.SetToken(resp.Token)
	s.store.Dispatch(AuthSucceeded{User: user, Token: resp.Token})
	return &user, nil
}

// Logout discards the local session even when the server cannot be reached
func (s *Session) Logout(ctx context.Context) error {
	apiErr := s.api.Logout(ctx)

	s.api.SetToken("")
	clearErr := s.sessions.Clear()
	s.store.Dispatch(LoggedOut{})

	if apiErr != nil {
		return fmt.Errorf("logged out locally: %w", apiErr)
	}
	return clearErr
}

func (s *Session) FetchProperties(ctx context.Context) ([]models.Property, error) {
	s.store.Dispatch(PropertiesRequested{})

	properties, err := s.api.ListProperties(ctx)
	if err != nil {
		s.store.Dispatch(PropertiesFailed{Message: errorMessage(err, "Failed to fetch properties")})
		return nil, err
	}

	state := s.store.Dispatch(PropertiesFetched{Properties: properties})
	return state.Properties.List(), nil
}

func (s *Session) CreateProperty(ctx context.Context, in models.PropertyInput) (*models.Property, error) {
	s.store.Dispatch(PropertiesRequested{})

	property, err := s.api.CreateProperty(ctx, in)
	if err != nil {
		s.store.Dispatch(PropertiesFailed{Message: errorMessage(err, "Failed to create property")})
		return nil, err
	}

	s.store.Dispatch(PropertyCreated{Property: *property})
	return property, nil
}

func (s *Session) UpdateProperty(ctx context.Context, id string, in models.PropertyInput) (*models.Property, error) {
	s.store.Dispatch(PropertiesRequested{})

	property, err := s.api.UpdateProperty(ctx, id, in)
	if err != nil {
		s.store.Dispatch(PropertiesFailed{Message: errorMessage(err, "Failed to update property")})
		return nil, err
	}

	s.store.Dispatch(PropertyUpdated{Property: *property})
	return property, nil
}

func (s *Session) DeleteProperty(ctx context.Context, id string) (*models.Property, error) {
	s.store.Dispatch(PropertiesRequested{})

	property, err := s.api.DeleteProperty(ctx, id)
	if err != nil {
		s.store.Dispatch(PropertiesFailed{Message: errorMessage(err, "Failed to delete property")})
		return nil, err
	}

	s.store.Dispatch(PropertyDeleted{ID: id})
	return property, nil
}

func (s *Session) SelectProperty(id string) {
	s.store.Dispatch(PropertySelected{ID: id})
}

func (s *Session) ClearError() {
	s.store.Dispatch(ErrorCleared{})
}

func (s *Session) SetLoanAmount(amount float64) loan.State {
	return s.store.Dispatch(LoanAmountChanged{Amount: amount, At: s.now()}).Loan
}

func (s *Session) SetInterestRate(rate float64) loan.State {
	return s.store.Dispatch(InterestRateChanged{Rate: rate, At: s.now()}).Loan
}

func (s *Session) SetLoanTerm(years int) loan.State {
	return s.store.Dispatch(LoanTermChanged{Years: years, At: s.now()}).Loan
}

func (s *Session) RecalculateLoan() loan.State {
	return s.store.Dispatch(LoanRecalculated{At: s.now()}).Loan
}

func (s *Session) ClearLoanHistory() loan.State {
	return s.store.Dispatch(LoanHistoryCleared{}).Loan
}

// errorMessage prefers the server's message and falls back for transport failures
func errorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
