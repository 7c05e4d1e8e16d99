// Package seminar models training seminars with a fixed seat capacity and
// the registrations that reserve those seats.
package seminar

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/pkg/errs"
)

var (
	ErrSeminarIsNotConstructed = errors.New("Seminar must be created via NewSeminar constructor")
	// ErrSeminarFull is wrapped in the conflict returned when no seat is left.
	ErrSeminarFull = errors.New("seminar is full")
)

// Seminar tracks how many of its seats are taken. RegisteredCount never
// exceeds Capacity.
type Seminar struct {
	id              kernel.UUID
	title           string
	startsAt        time.Time
	capacity        int
	registeredCount int
	createdAt       time.Time

	isConstructed bool
}

func NewSeminar(id kernel.UUID, title string, startsAt time.Time, capacity int, at time.Time) (*Seminar, error) {
	s := &Seminar{id: id, title: strings.TrimSpace(title), startsAt: startsAt, capacity: capacity, createdAt: at, isConstructed: true}

	var errList []error
	if err := id.Validate(); err != nil {
		errList = append(errList, err)
	}
	if s.title == "" {
		errList = append(errList, errs.NewValueIsRequiredError("seminar title"))
	}
	if startsAt.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("seminar start"))
	}
	if capacity <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("seminar capacity", capacity, 1, "unbounded"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return s, nil
}

// RestoreSeminar rebuilds a stored seminar.
func RestoreSeminar(id kernel.UUID, title string, startsAt time.Time, capacity, registered int, createdAt time.Time) (*Seminar, error) {
	s, err := NewSeminar(id, title, startsAt, capacity, createdAt)
	if err != nil {
		return nil, err
	}
	if registered < 0 || registered > capacity {
		return nil, errs.NewValueIsOutOfRangeError("registered count", registered, 0, capacity)
	}
	s.registeredCount = registered
	return s, nil
}

func (s *Seminar) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSeminarIsNotConstructed
	}
	return nil
}

func (s *Seminar) ID() kernel.UUID      { return s.id }
func (s *Seminar) Title() string        { return s.title }
func (s *Seminar) StartsAt() time.Time  { return s.startsAt }
func (s *Seminar) Capacity() int        { return s.capacity }
func (s *Seminar) RegisteredCount() int { return s.registeredCount }
func (s *Seminar) CreatedAt() time.Time { return s.createdAt }

func (s *Seminar) SeatsLeft() int {
	return s.capacity - s.registeredCount
}

// Reserve takes one seat in memory. Stores enforce the same limit with a
// conditional update.
func (s *Seminar) Reserve() error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.SeatsLeft() <= 0 {
		return FullError(s.id)
	}
	s.registeredCount++
	return nil
}

// FullError is the conflict returned for a registration on a full seminar.
func FullError(id kernel.UUID) error {
	return errs.NewConflictErrorWithCause("seminar "+id.String(), ErrSeminarFull)
}

// Registration is a confirmed seat. The token is handed to the registrant.
type Registration struct {
	token     kernel.UUID
	seminarID kernel.UUID
	name      string
	email     string
	createdAt time.Time
}

func NewRegistration(seminarID kernel.UUID, name, email string, at time.Time) (Registration, error) {
	r := Registration{
		token:     kernel.NewUUID(),
		seminarID: seminarID,
		name:      strings.TrimSpace(name),
		email:     strings.ToLower(strings.TrimSpace(email)),
		createdAt: at,
	}

	var errList []error
	if err := seminarID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if r.name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("registrant name"))
	}
	if r.email == "" {
		errList = append(errList, errs.NewValueIsRequiredError("registrant email"))
	} else if _, err := mail.ParseAddress(r.email); err != nil {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("registrant email", fmt.Errorf("%q: %w", r.email, err)))
	}
	if err := errors.Join(errList...); err != nil {
		return Registration{}, err
	}
	return r, nil
}

func (r Registration) Token() kernel.UUID     { return r.token }
func (r Registration) SeminarID() kernel.UUID { return r.seminarID }
func (r Registration) Name() string           { return r.name }
func (r Registration) Email() string          { return r.email }
func (r Registration) CreatedAt() time.Time   { return r.createdAt }
