// Package lock provides keyed mutual exclusion for the check-then-insert
// sequence of appointment creation.
package lock

import (
	"context"
	"fmt"
)

// Locker serialises work per key. Unlock must be called exactly once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// BarberKey is the lock scope for one barber's timeline.
func BarberKey(barberID uint) string {
	return fmt.Sprintf("barber:%d", barberID)
}
