package main

import (
	"errors"
	"fmt"
)

// RingBuffer is a circular buffer of recent output samples.
type RingBuffer[T int8 | int16 | int] struct {
	data []T
	head int
	size int
	n    int
}

// NewRingBuffer returns a new RingBuffer.
func NewRingBuffer[T int8 | int16 | int](size int) *RingBuffer[T] {
	return &RingBuffer[T]{
		data: make([]T, max(size, 0)),
		size: size,
	}
}

// Insert inserts the new value into the buffer and advances the head.
func (b *RingBuffer[T]) Insert(val T) {
	b.data[b.head] = val
	b.head = (b.head + 1) % b.size
	b.n = min(b.n+1, b.size)
}

// Get returns the value at index relative to the oldest sample held.
func (b *RingBuffer[T]) Get(index int) T {
	start := b.head
	if b.n < b.size {
		start = 0
	}
	return b.data[(start+index)%b.size]
}

// Len returns how many samples are held.
func (b *RingBuffer[T]) Len() int { return b.n }

// Average returns the mean of the held samples, the DC offset of the window.
func (b *RingBuffer[T]) Average() (float64, error) {
	if b.size < 1 {
		return 0, fmt.Errorf("buffer has bad size < 1: %d", b.size)
	}
	if b.n == 0 {
		return 0, errors.New("buffer is empty")
	}

	var sum int64
	for i := range b.n {
		sum += int64(b.Get(i))
	}

	return float64(sum) / float64(b.n), nil
}

// Peak returns the largest absolute sample held.
func (b *RingBuffer[T]) Peak() int {
	peak := 0
	for i := range b.n {
		v := int(b.Get(i))
		if v < 0 {
			v = -v
		}
		peak = max(peak, v)
	}
	return peak
}
