package stream

import "context"

func New[T any](size int) Stream[T] {
	return &stream[T]{
		ch: make(chan T, size),
	}
}

// FromSlice returns a closed stream holding items.
func FromSlice[T any](items []T) Reader[T] {
	s := New[T](len(items))
	for _, itm := range items {
		s.Push(itm)
	}
	s.Close()
	return s
}

type Reader[T any] interface {
	Pop() (T, bool)
	PopContext(ctx context.Context) (T, bool, error)
	Slice() []T
}

type Writer[T any] interface {
	Push(T)
	Close()
}

type Stream[T any] interface {
	Reader[T]
	Writer[T]
}

type stream[T any] struct {
	ch chan T
}

func (s *stream[T]) Pop() (T, bool) {
	val, ok := <-s.ch
	return val, ok
}

// PopContext is Pop that gives up when ctx is done.
func (s *stream[T]) PopContext(ctx context.Context) (T, bool, error) {
	select {
	case val, ok := <-s.ch:
		return val, ok, nil
	case <-ctx.Done():
		var zero T
		return zero, false, ctx.Err()
	}
}

func (s *stream[T]) Slice() []T {
	sl := []T{}
	for itm := range s.ch {
		sl = append(sl, itm)
	}
	return sl
}

func (s *stream[T]) Push(val T) {
	s.ch <- val
}

func (s *stream[T]) Close() {
	close(s.ch)
}
