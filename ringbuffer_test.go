package main

import "testing"

func TestRingBuffer(t *testing.T) {
	b := NewRingBuffer[int8](4)
	if _, err := b.Average(); err == nil {
		t.Fatal("expected error for empty buffer")
	}

	b.Insert(10)
	b.Insert(-30)
	assert(t, b.Len(), 2)
	assert(t, b.Get(0), 10)
	assert(t, b.Get(1), -30)
	assert(t, b.Peak(), 30)
	avg, err := b.Average()
	if err != nil {
		t.Fatal(err)
	}
	assert(t, avg, -10.0)

	for _, v := range []int8{1, 2, 3, 4} {
		b.Insert(v)
	}
	assert(t, b.Len(), 4)
	assert(t, b.Get(0), 1)
	assert(t, b.Get(3), 4)
	assert(t, b.Peak(), 4)
	avg, _ = b.Average()
	assert(t, avg, 2.5)

	b.Insert(-128)
	assert(t, b.Get(0), 2)
	assert(t, b.Peak(), 128)
}

func TestRingBufferBadSize(t *testing.T) {
	b := NewRingBuffer[int](0)
	if _, err := b.Average(); err == nil {
		t.Fatal("expected error for zero size buffer")
	}
}
