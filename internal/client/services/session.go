// Package services contains application services for the DocVault client.
// This file defines the session manager: registration, the OTP
// challenge/response login, logout and restoring a persisted session.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/docvault/internal/client/client"
	"github.com/dmitrijs2005/docvault/internal/client/models"
	"github.com/dmitrijs2005/docvault/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/docvault/internal/dbx"
	"github.com/dmitrijs2005/docvault/internal/logging"
)

const (
	tokenKey  = "token"
	userIDKey = "user_id"
)

// SessionManager owns the authentication state of the client.
//
// State machine: anonymous -> challenge-sent -> authenticated. Reset goes
// back from challenge-sent to anonymous, Logout goes to anonymous from any
// state. The issued models.Session is a value; other services receive it
// explicitly and never read the manager's state.
type SessionManager interface {
	Register(ctx context.Context, username, mobile string) error
	// RequestChallenge asks the server to send an OTP to mobile. Calling it
	// again in challenge-sent state re-sends the code.
	RequestChallenge(ctx context.Context, mobile string) error
	// SubmitResponse validates otp against the pending challenge and, on
	// success, persists and returns the new session.
	SubmitResponse(ctx context.Context, otp string) (models.Session, error)
	Reset()
	Logout(ctx context.Context) error
	// Restore loads a session saved by an earlier run.
	Restore(ctx context.Context) (models.Session, error)

	State() models.AuthState
	Session() models.Session
	PendingMobile() string
	InProgress(op Operation) bool
}

type sessionManager struct {
	client client.Client
	db     *sql.DB
	log    logging.Logger
	guard  *inflight

	mu            sync.Mutex
	state         models.AuthState
	session       models.Session
	pendingMobile string
	// challenge changes whenever the pending challenge is replaced or
	// dropped, so a late OTP validation result can be recognised as stale.
	challenge uint64
}

// NewSessionManager constructs a SessionManager bound to the given API client
// and local database. The manager starts anonymous; call Restore to pick up
// a saved session.
func NewSessionManager(c client.Client, db *sql.DB, log logging.Logger) SessionManager {
	if log == nil {
		log = logging.NewNop()
	}
	return &sessionManager{
		client: c,
		db:     db,
		log:    log.With("component", "session"),
		guard:  newInflight(),
		state:  models.StateAnonymous,
	}
}

func (m *sessionManager) Register(ctx context.Context, username, mobile string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return &models.ValidationError{Field: "username", Reason: "please enter a username"}
	}
	if err := models.ValidateMobile(mobile); err != nil {
		return err
	}

	_, err := m.guard.do(OpRegister, username+"\x00"+mobile, func() (any, error) {
		return nil, m.client.Register(ctx, username, mobile)
	})
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	m.log.Info(ctx, "mobile number registered")
	return nil
}

func (m *sessionManager) RequestChallenge(ctx context.Context, mobile string) error {
	if err := models.ValidateMobile(mobile); err != nil {
		return err
	}
	if m.State() == models.StateAuthenticated {
		return ErrAlreadyAuthenticated
	}

	_, err := m.guard.do(OpRequestOTP, mobile, func() (any, error) {
		return nil, m.client.GenerateOTP(ctx, mobile)
	})
	if err != nil {
		return fmt.Errorf("request otp: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case m.state == models.StateAuthenticated:
		return ErrAlreadyAuthenticated
	case m.state == models.StateChallengeSent && m.pendingMobile == mobile:
		// resend, the pending challenge stays valid
	default:
		m.state = models.StateChallengeSent
		m.pendingMobile = mobile
		m.challenge++
	}

	m.log.Info(ctx, "otp sent")
	return nil
}

type otpResult struct {
	token  string
	userID string
}

func (m *sessionManager) SubmitResponse(ctx context.Context, otp string) (models.Session, error) {
	if err := models.ValidateOTP(otp); err != nil {
		return models.Session{}, err
	}

	m.mu.Lock()
	if m.state != models.StateChallengeSent {
		m.mu.Unlock()
		return models.Session{}, &models.ValidationError{Field: "otp", Reason: "request an OTP first"}
	}
	mobile, challenge := m.pendingMobile, m.challenge
	m.mu.Unlock()

	v, err := m.guard.do(OpValidateOTP, mobile+"\x00"+otp, func() (any, error) {
		token, userID, err := m.client.ValidateOTP(ctx, mobile, otp)
		if err != nil {
			return nil, err
		}
		return otpResult{token: token, userID: userID}, nil
	})
	if err != nil {
		return models.Session{}, fmt.Errorf("validate otp: %w", err)
	}

	res := v.(otpResult)
	if res.userID == "" {
		res.userID = mobile
	}
	session := models.NewSession(res.token, res.userID)

	m.mu.Lock()
	defer m.mu.Unlock()

	// a joined duplicate call finds the session already installed
	if m.state == models.StateAuthenticated && m.session == session {
		return session, nil
	}
	if m.state != models.StateChallengeSent || m.challenge != challenge {
		return models.Session{}, &models.ValidationError{Field: "otp", Reason: "the OTP request was cancelled, request a new code"}
	}

	if err := m.save(ctx, session); err != nil {
		return models.Session{}, fmt.Errorf("save session: %w", err)
	}

	m.state = models.StateAuthenticated
	m.session = session
	m.pendingMobile = ""
	m.challenge++

	m.log.Info(ctx, "logged in", "user_id", session.UserID)
	return session, nil
}

func (m *sessionManager) save(ctx context.Context, s models.Session) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, tokenKey, s.Token); err != nil {
			return err
		}
		return repo.Set(ctx, userIDKey, s.UserID)
	})
}

func (m *sessionManager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != models.StateChallengeSent {
		return
	}
	m.state = models.StateAnonymous
	m.pendingMobile = ""
	m.challenge++
}

// Logout forgets the in-memory session first, so a storage failure still
// leaves the client anonymous.
func (m *sessionManager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.state = models.StateAnonymous
	m.session = models.Session{}
	m.pendingMobile = ""
	m.challenge++
	m.mu.Unlock()

	if err := metadata.NewSQLiteRepository(m.db).Delete(ctx, tokenKey, userIDKey); err != nil {
		return fmt.Errorf("clear saved session: %w", err)
	}

	m.log.Info(ctx, "logged out")
	return nil
}

// Restore installs the persisted session, if both of its parts are present.
// A half-written pair is removed.
func (m *sessionManager) Restore(ctx context.Context) (models.Session, error) {
	repo := metadata.NewSQLiteRepository(m.db)

	token, _, err := repo.Get(ctx, tokenKey)
	if err != nil {
		return models.Session{}, fmt.Errorf("load saved session: %w", err)
	}
	userID, _, err := repo.Get(ctx, userIDKey)
	if err != nil {
		return models.Session{}, fmt.Errorf("load saved session: %w", err)
	}

	session := models.NewSession(token, userID)
	if !session.IsAuthenticated() {
		if token != "" || userID != "" {
			m.log.Warn(ctx, "discarding incomplete saved session")
			if err := repo.Delete(ctx, tokenKey, userIDKey); err != nil {
				return models.Session{}, fmt.Errorf("clear saved session: %w", err)
			}
		}
		return models.Session{}, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = models.StateAuthenticated
	m.session = session
	m.pendingMobile = ""
	m.challenge++

	m.log.Info(ctx, "session restored", "user_id", session.UserID)
	return session, nil
}

func (m *sessionManager) State() models.AuthState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *sessionManager) Session() models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

func (m *sessionManager) PendingMobile() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pendingMobile
}

func (m *sessionManager) InProgress(op Operation) bool {
	return m.guard.running(op)
}
