package worklog

import "sync"

// DateLocks serializes read-modify-write cycles per date.
// The zero value is ready to use.
type DateLocks struct {
	mu    sync.Mutex
	locks map[Date]*dateLock
}

type dateLock struct {
	mu   sync.Mutex
	refs int
}

// Lock blocks until no other holder has date, then returns the unlock function.
func (l *DateLocks) Lock(date Date) (unlock func()) {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[Date]*dateLock)
	}
	lock, ok := l.locks[date]
	if !ok {
		lock = &dateLock{}
		l.locks[date] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			lock.mu.Unlock()
			l.mu.Lock()
			lock.refs--
			if lock.refs == 0 {
				delete(l.locks, date)
			}
			l.mu.Unlock()
		})
	}
}
