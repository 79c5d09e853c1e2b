package orderview

import "sync"

// orderLocks не даёт запускать две мутации одного заказа одновременно.
type orderLocks struct {
	mu   sync.Mutex
	busy map[int]struct{}
}

func newOrderLocks() *orderLocks {
	return &orderLocks{busy: make(map[int]struct{})}
}

func (l *orderLocks) tryLock(orderID int) (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.busy[orderID]; ok {
		return nil, false
	}
	l.busy[orderID] = struct{}{}

	return func() {
		l.mu.Lock()
		delete(l.busy, orderID)
		l.mu.Unlock()
	}, true
}
