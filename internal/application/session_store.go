package application

import (
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/trajectory-cli/internal/domain"
	"github.com/bnema/trajectory-cli/internal/ports"
)

const defaultSessionNamePrefix = "Consultation"

type SessionStoreOption func(*SessionStore)

func WithClock(clock ports.Clock) SessionStoreOption {
	return func(s *SessionStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func WithNamePrefix(prefix string) SessionStoreOption {
	return func(s *SessionStore) {
		if trimmed := strings.TrimSpace(prefix); trimmed != "" {
			s.namePrefix = trimmed
		}
	}
}

// SessionStore owns the ordered session collection and the single active
// session reference. Only the active session's traits are writable.
type SessionStore struct {
	mu sync.RWMutex

	sessions   []*domain.Session
	activeID   domain.SessionID
	hasActive  bool
	nextID     domain.SessionID
	namePrefix string
	clock      ports.Clock
}

// NewSessionStore returns a store holding one default, active session.
func NewSessionStore(opts ...SessionStoreOption) *SessionStore {
	s := &SessionStore{
		nextID:     1,
		namePrefix: defaultSessionNamePrefix,
		clock:      ports.SystemClock{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.createLocked()
	return s
}

func (s *SessionStore) CreateSession() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.createLocked()
}

func (s *SessionStore) SwitchActive(id domain.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(id) < 0 {
		return fmt.Errorf("switch to session %d: %w", id, domain.ErrSessionNotFound)
	}

	s.activeID = id
	s.hasActive = true
	return nil
}

// DeleteSession removes a session. Deleting the active session promotes the
// first remaining one; an emptied store has no active session.
func (s *SessionStore) DeleteSession(id domain.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return fmt.Errorf("delete session %d: %w", id, domain.ErrSessionNotFound)
	}

	s.sessions = append(s.sessions[:idx], s.sessions[idx+1:]...)

	if !s.hasActive || s.activeID != id {
		return nil
	}

	if len(s.sessions) == 0 {
		s.activeID = 0
		s.hasActive = false
		return nil
	}

	s.activeID = s.sessions[0].ID
	return nil
}

// UpdateActiveTraitVector merges update into the active session's traits and
// returns the resulting vector.
func (s *SessionStore) UpdateActiveTraitVector(update domain.TraitUpdate) (domain.TraitVector, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.activeLocked()
	if session == nil {
		return domain.TraitVector{}, domain.ErrNoActiveSession
	}

	next, err := session.Traits.Apply(update)
	if err != nil {
		return session.Traits, fmt.Errorf("update traits of session %d: %w", session.ID, err)
	}

	session.Traits = next
	return next, nil
}

// AttachResult stores a complete result on the session with the given id.
func (s *SessionStore) AttachResult(id domain.SessionID, result domain.PredictionResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return fmt.Errorf("attach result to session %d: %w", id, domain.ErrSessionNotFound)
	}

	session := s.sessions[idx]
	session.Results = result.Clone()
	session.ResultsAt = s.clock.Now()
	return nil
}

// CompleteRequest attaches result to the session and renames it after the
// top-ranked career in one step, so readers never see the result without
// the name. It returns the new name, empty when the name was kept.
func (s *SessionStore) CompleteRequest(id domain.SessionID, result domain.PredictionResult) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return "", fmt.Errorf("complete request for session %d: %w", id, domain.ErrSessionNotFound)
	}

	session := s.sessions[idx]
	session.Results = result.Clone()
	session.ResultsAt = s.clock.Now()

	career, ok := result.TopCareer()
	if !ok {
		return "", nil
	}
	session.Name = career
	return career, nil
}

func (s *SessionStore) RenameSession(id domain.SessionID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return fmt.Errorf("rename session %d: %w", id, domain.ErrSessionNotFound)
	}

	if trimmed := strings.TrimSpace(name); trimmed != "" {
		s.sessions[idx].Name = trimmed
	}
	return nil
}

// Sessions returns copies of all sessions in collection order.
func (s *SessionStore) Sessions() []domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		result = append(result, s.viewLocked(session))
	}
	return result
}

func (s *SessionStore) Get(id domain.SessionID) (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return domain.Session{}, fmt.Errorf("get session %d: %w", id, domain.ErrSessionNotFound)
	}
	return s.viewLocked(s.sessions[idx]), nil
}

func (s *SessionStore) Active() (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session := s.activeLocked()
	if session == nil {
		return domain.Session{}, domain.ErrNoActiveSession
	}
	return s.viewLocked(session), nil
}

func (s *SessionStore) ActiveID() (domain.SessionID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.activeID, s.hasActive
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// TraitSnapshot returns a value copy of a session's current traits.
func (s *SessionStore) TraitSnapshot(id domain.SessionID) (domain.TraitVector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return domain.TraitVector{}, fmt.Errorf("snapshot traits of session %d: %w", id, domain.ErrSessionNotFound)
	}
	return s.sessions[idx].Traits, nil
}

func (s *SessionStore) createLocked() domain.Session {
	id := s.nextID
	s.nextID++

	session := &domain.Session{
		ID:     id,
		Name:   fmt.Sprintf("%s %d", s.namePrefix, id),
		Traits: domain.DefaultTraitVector(),
	}
	s.sessions = append(s.sessions, session)
	s.activeID = id
	s.hasActive = true

	return s.viewLocked(session)
}

func (s *SessionStore) activeLocked() *domain.Session {
	if !s.hasActive {
		return nil
	}
	idx := s.indexLocked(s.activeID)
	if idx < 0 {
		return nil
	}
	return s.sessions[idx]
}

func (s *SessionStore) indexLocked(id domain.SessionID) int {
	for i, session := range s.sessions {
		if session.ID == id {
			return i
		}
	}
	return -1
}

func (s *SessionStore) viewLocked(session *domain.Session) domain.Session {
	view := session.Clone()
	view.Active = s.hasActive && session.ID == s.activeID
	return view
}
