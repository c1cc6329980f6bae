// Package timeline computes read-only derived views over record
// collections: the day-grouped timeline and the completion counts shown on
// the dashboard. Everything here is pure.
package timeline

import (
	"sort"
	"time"
)

const dayKeyLayout = "2006-01-02"

// Entry is any record with a mutation time in epoch milliseconds.
type Entry interface {
	Updated() int64
}

// Group is a bucket of records sharing one local calendar day.
type Group[T Entry] struct {
	Day     string
	Records []T
}

// GroupByDay buckets records by the local calendar date of their mutation
// time. Groups come back most recent day first; records within a group most
// recently updated first. The input is never mutated and an empty input
// yields an empty sequence.
func GroupByDay[T Entry](records []T, loc *time.Location) []Group[T] {
	if loc == nil {
		loc = time.Local
	}

	ordered := make([]T, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Updated() > ordered[j].Updated()
	})

	groups := []Group[T]{}
	index := map[string]int{}
	for _, rec := range ordered {
		key := DayKey(rec.Updated(), loc)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group[T]{Day: key})
		}
		groups[i].Records = append(groups[i].Records, rec)
	}

	// Zero-padded day keys sort lexically, so byte order is date order.
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Day > groups[j].Day
	})
	return groups
}

// DayKey renders the local calendar date for a millisecond timestamp.
func DayKey(ms int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(ms).In(loc).Format(dayKeyLayout)
}

// DayLabel renders a day key as a long-form heading, e.g.
// "Monday, January 2, 2006". Unparseable keys come back unchanged.
func DayLabel(key string) string {
	t, err := time.Parse(dayKeyLayout, key)
	if err != nil {
		return key
	}
	return t.Format("Monday, January 2, 2006")
}

// Counts tallies records satisfying done against the total.
func Counts[T Entry](records []T, done func(T) bool) (doneCount, total int) {
	for _, rec := range records {
		if done(rec) {
			doneCount++
		}
	}
	return doneCount, len(records)
}
