// Package journal persists an append-only record of grab invocations. It is
// write-only with respect to control flow: a grab never consults past records,
// so repeated downloads always re-probe all sources.
package journal

import "time"

type Record struct {
	ID        string
	PageURL   string
	Filename  string
	Strategy  string
	Outcome   string
	Error     string
	CreatedAt time.Time
}

type Store interface {
	Append(record *Record) error
	List() ([]Record, error)
}

// Nil is a Store that remembers nothing.
type Nil struct{}

func (Nil) Append(_ *Record) error {
	return nil
}

func (Nil) List() ([]Record, error) {
	return nil, nil
}
