// Package inmemdb provides map-backed repositories for tests and local
// hacking. Behavior mirrors the PostgreSQL repositories, including the
// NULL-matchable subject semantics and the uniqueness errors.
package inmemdb

import (
	"sync"

	"github.com/Sagar-Ghorade/SmartEdu/core/catalog"
	"github.com/Sagar-Ghorade/SmartEdu/core/enrollment"
	"github.com/Sagar-Ghorade/SmartEdu/core/payment"
	"github.com/Sagar-Ghorade/SmartEdu/core/result"
	"github.com/Sagar-Ghorade/SmartEdu/core/user"
)

type (
	DB struct {
		user       *table[user.User]
		class      *table[catalog.Class]
		subject    *table[catalog.Subject]
		test       *table[catalog.Test]
		fee        *table[catalog.Fee]
		enrollment *table[enrollment.Enrollment]
		payment    *table[payment.Payment]
		result     *table[result.Result]
	}

	table[T any] struct {
		sync.RWMutex
		rows map[int]*T
		seq  int
	}
)

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int]*T)}
}

func (t *table[T]) nextID() int {
	t.seq++
	return t.seq
}

func Open() (*DB, error) {
	db := &DB{
		user:       newTable[user.User](),
		class:      newTable[catalog.Class](),
		subject:    newTable[catalog.Subject](),
		test:       newTable[catalog.Test](),
		fee:        newTable[catalog.Fee](),
		enrollment: newTable[enrollment.Enrollment](),
		payment:    newTable[payment.Payment](),
		result:     newTable[result.Result](),
	}
	return db, nil
}

// sameSubject compares nullable subject references; nil only matches nil.
func sameSubject(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
