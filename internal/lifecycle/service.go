// Package lifecycle implements the engagement state machine: a customer's
// post collects editor bids, one approval turns post+bid into a project,
// the project is delivered, paid and finally rated. Every operation takes
// the authenticated Principal explicitly and re-checks ownership against
// the entity's foreign keys before writing.
package lifecycle

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edithub/edithub-api/internal/apperr"
	"github.com/edithub/edithub-api/internal/models"
	"github.com/edithub/edithub-api/internal/realtime"
	"github.com/edithub/edithub-api/internal/storage"
)

// ObjectStore is the slice of the object-storage client the lifecycle
// needs for the two-phase upload flow.
type ObjectStore interface {
	IssueUploadURL(key, contentType string) (string, error)
	ObjectExists(key string) (bool, error)
	PublicURL(key string) string
	Bucket() string
	Region() string
}

// ErrNoReservation is returned by ReservationStore.Get when the key was
// never reserved or the reservation has expired.
var ErrNoReservation = errors.New("upload reservation not found")

// ReservationStore parks upload reservations between ReserveUpload and
// ConfirmUpload. Entries expire after ttl.
type ReservationStore interface {
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

type redisReservations struct {
	rdb *redis.Client
}

func (r redisReservations) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.rdb.Set(ctx, key, value, ttl).Err()
}

func (r redisReservations) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := r.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrNoReservation
	}
	return raw, err
}

func (r redisReservations) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, key).Err()
}

type Service struct {
	DB           *gorm.DB
	Storage      ObjectStore
	Reservations ReservationStore
	Hub          *realtime.Hub
}

func NewService(db *gorm.DB, store *storage.Client, rdb *redis.Client, hub *realtime.Hub) *Service {
	s := &Service{DB: db, Hub: hub}
	if store != nil {
		s.Storage = store
	}
	if rdb != nil {
		s.Reservations = redisReservations{rdb: rdb}
	}
	return s
}

func (s *Service) requireRole(actor models.Principal, role models.Role) error {
	if actor.Role != role {
		return apperr.Authorization("")
	}
	return nil
}

// notFoundOr converts gorm's record-not-found into the taxonomy while
// letting genuine faults bubble up.
func notFoundOr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(what)
	}
	return err
}

// duplicateOr converts a unique-index violation into the taxonomy conflict,
// so a write racing past an application-level check still surfaces cleanly.
func duplicateOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict(msg)
	}
	return err
}

// forUpdate row-locks the entity a transition is about to mutate, so two
// concurrent requests serialize instead of both passing the same check.
func forUpdate() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

func (s *Service) notify(customerID, editorID uuid.UUID, ev realtime.Event) {
	if s.Hub == nil {
		return
	}
	s.Hub.SendToEngagement(customerID, editorID, ev)
}
