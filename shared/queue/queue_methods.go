package queue

import (
	"context"
	"sync/atomic"
)

// метод для добавления нового элемента в очередь, false - очередь полна или закрыта
func (q *FIFOQueue[T]) Enqueue(item T) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if atomic.LoadInt32(&q.closed) == 1 {
		return false
	}

	select {
	case q.items <- item:
		return true
	default:
		return false
	}
}

// метод для получения элемента из очереди без ожидания
func (q *FIFOQueue[T]) Dequeue() (T, bool) {
	var zeroVal T
	select {
	case item, ok := <-q.items:
		if !ok {
			return zeroVal, false
		}
		return item, true
	default:
		return zeroVal, false
	}
}

// DequeueWait ждёт элемент, пока не отменён ctx.
// false - ctx отменён, либо очередь закрыта и вычитана до конца
func (q *FIFOQueue[T]) DequeueWait(ctx context.Context) (T, bool) {
	var zeroVal T
	select {
	case item, ok := <-q.items:
		if !ok {
			return zeroVal, false
		}
		return item, true
	case <-ctx.Done():
		return zeroVal, false
	}
}

// метод для получения размера очереди в данный момент
func (q *FIFOQueue[T]) Size() int {
	return len(q.items)
}

// Close закрывает очередь: добавлять больше нельзя, оставшиеся элементы можно дочитать
func (q *FIFOQueue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if atomic.CompareAndSwapInt32(&q.closed, 0, 1) {
		close(q.items)
	}
}

// Clear выбрасывает всё содержимое, если очередь ещё открыта
func (q *FIFOQueue[T]) Clear() {
	if atomic.LoadInt32(&q.closed) == 1 {
		return
	}

	for {
		select {
		case <-q.items:
		default:
			return
		}
	}
}
