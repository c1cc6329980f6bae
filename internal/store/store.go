// Package store implements the persisted record store shared by the notes,
// task and medication features. One Store owns the canonical ordered
// collection for one feature and mirrors it to its storage slot after every
// mutation.
package store

import (
	"encoding/json"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"carelink/internal/record"
	"carelink/internal/storage"
)

// Record constrains the stored types. Stamp returns a copy carrying the
// given identity and mutation time; records are passed by value and the
// store never hands out live references.
type Record[T any] interface {
	RecordID() string
	Updated() int64
	Stamp(id string, updatedAt int64) T
}

// DecodeFunc validates one raw persisted entry. Entries that fail are
// dropped on load.
type DecodeFunc[T any] func(raw []byte, now time.Time) (T, error)

type Store[T Record[T]] struct {
	slot    storage.Slot
	key     string
	decode  DecodeFunc[T]
	now     func() time.Time
	newID   func() string
	records []T
}

type Option[T Record[T]] func(*Store[T])

// WithClock substitutes the timestamp source, for tests.
func WithClock[T Record[T]](now func() time.Time) Option[T] {
	return func(s *Store[T]) { s.now = now }
}

// WithIDSource substitutes the id generator, for tests.
func WithIDSource[T Record[T]](newID func() string) Option[T] {
	return func(s *Store[T]) { s.newID = newID }
}

func New[T Record[T]](slot storage.Slot, key string, decode DecodeFunc[T], opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		slot:   slot,
		key:    key,
		decode: decode,
		now:    time.Now,
		newID:  record.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the slot and replaces the in-memory collection. An absent slot,
// a corrupt payload or a failing backend all degrade to an empty collection;
// individual entries that fail validation are dropped. The result is sorted
// most recently updated first.
func (s *Store[T]) Load() []T {
	s.records = nil

	data, ok, err := s.slot.Read(s.key)
	if err != nil {
		log.WithError(err).WithField("slot", s.key).Warn("slot read failed, starting empty")
		return s.Records()
	}
	if !ok {
		return s.Records()
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		log.WithError(err).WithField("slot", s.key).Warn("slot payload corrupt, starting empty")
		return s.Records()
	}

	now := s.now()
	recs := make([]T, 0, len(raws))
	for _, raw := range raws {
		rec, err := s.decode(raw, now)
		if err != nil {
			log.WithError(err).WithField("slot", s.key).Debug("dropping malformed entry")
			continue
		}
		recs = append(recs, rec)
	}
	sortByRecency(recs)
	s.records = recs
	return s.Records()
}

// Records returns a copy of the current collection in recency order.
func (s *Store[T]) Records() []T {
	out := make([]T, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Store[T]) Len() int {
	return len(s.records)
}

func (s *Store[T]) Get(id string) (T, bool) {
	for _, rec := range s.records {
		if rec.RecordID() == id {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

// Insert commits a draft as a new record with a fresh id and the current
// mutation time, and returns the stored record.
func (s *Store[T]) Insert(draft T) T {
	rec := draft.Stamp(s.newID(), s.now().UnixMilli())
	s.records = append([]T{rec}, s.records...)
	sortByRecency(s.records)
	s.save()
	return rec
}

// Update replaces the record matching id with the draft's content fields and
// refreshes its mutation time. It reports false when no record matches.
func (s *Store[T]) Update(id string, draft T) (T, bool) {
	for i, existing := range s.records {
		if existing.RecordID() != id {
			continue
		}
		rec := draft.Stamp(id, s.now().UnixMilli())
		s.records[i] = rec
		sortByRecency(s.records)
		s.save()
		return rec, true
	}
	var zero T
	return zero, false
}

// Delete removes the record matching id. Deleting an absent id is a no-op.
func (s *Store[T]) Delete(id string) bool {
	for i, rec := range s.records {
		if rec.RecordID() != id {
			continue
		}
		s.records = append(s.records[:i], s.records[i+1:]...)
		s.save()
		return true
	}
	return false
}

// Apply replaces the record matching id with fn(record). It is the commit
// path for toggles: the reducer controls every field and the mutation time
// is left alone, so flipping a flag does not reorder the timeline.
func (s *Store[T]) Apply(id string, fn func(T) T) (T, bool) {
	for i, existing := range s.records {
		if existing.RecordID() != id {
			continue
		}
		rec := fn(existing)
		s.records[i] = rec
		s.save()
		return rec, true
	}
	var zero T
	return zero, false
}

// save mirrors the full collection to the slot. Failures are logged and
// swallowed: losing a write is the accepted degradation, crashing is not.
func (s *Store[T]) save() {
	recs := s.records
	if recs == nil {
		recs = []T{}
	}
	data, err := json.Marshal(recs)
	if err != nil {
		log.WithError(err).WithField("slot", s.key).Warn("marshal failed, skipping persist")
		return
	}
	if err := s.slot.Write(s.key, data); err != nil {
		log.WithError(err).WithField("slot", s.key).Warn("persist failed, keeping in-memory records")
	}
}

func sortByRecency[T Record[T]](recs []T) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Updated() > recs[j].Updated()
	})
}
