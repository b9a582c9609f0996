package queue

import "sync"

// FIFOQueue - ограниченная неблокирующая очередь на буферизованном канале.
// Переполненная очередь отказывает в Enqueue, а не ждёт.
type FIFOQueue[T any] struct {
	items  chan T
	mu     sync.RWMutex // защищает закрытие канала от параллельной отправки
	closed int32
}

// конструктор очереди заданной ёмкости, capacity < 1 превращается в 1
func NewFIFOQueue[T any](capacity int) *FIFOQueue[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &FIFOQueue[T]{
		items: make(chan T, capacity),
	}
}
