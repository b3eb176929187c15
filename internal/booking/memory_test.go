package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// memoryRepository is an in-memory Repository used by the service tests.
type memoryRepository struct {
	mu       sync.Mutex
	slots    sync.Map // lock key -> *sync.Mutex
	bookings []*Booking
	nextID   int
	base     time.Time
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{base: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (r *memoryRepository) seed(b Booking) *Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	b.ID = fmt.Sprintf("seed-%d", r.nextID)
	b.CreatedAt = r.base.Add(time.Duration(r.nextID) * time.Second)
	r.bookings = append(r.bookings, &b)
	return &b
}

func (r *memoryRepository) Create(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	b.ID = fmt.Sprintf("booking-%d", r.nextID)
	b.CreatedAt = r.base.Add(time.Duration(r.nextID) * time.Second)
	stored := *b
	r.bookings = append(r.bookings, &stored)
	return nil
}

func (r *memoryRepository) ListByUser(_ context.Context, userID string) ([]*Booking, error) {
	out := r.filter(func(b *Booking) bool { return b.UserID == userID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryRepository) ListConfirmed(_ context.Context, f Filter) ([]*Booking, error) {
	return r.filter(func(b *Booking) bool {
		return b.Status == StatusConfirmed &&
			b.ServiceType == f.ServiceType &&
			(f.SlotNumber == "" || b.SlotNumber == f.SlotNumber) &&
			b.Window().Covers(f.Date)
	}), nil
}

func (r *memoryRepository) ListConfirmedBySlot(_ context.Context, st ServiceType, slot string) ([]*Booking, error) {
	return r.filter(func(b *Booking) bool {
		return b.Status == StatusConfirmed && b.ServiceType == st && b.SlotNumber == slot
	}), nil
}

func (r *memoryRepository) WithSlotLock(_ context.Context, st ServiceType, slot string, fn func(Repository) error) error {
	m, _ := r.slots.LoadOrStore(string(st)+":"+slot, &sync.Mutex{})
	lock := m.(*sync.Mutex)
	lock.Lock()
	defer lock.Unlock()
	return fn(r)
}

func (r *memoryRepository) filter(keep func(*Booking) bool) []*Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Booking
	for _, b := range r.bookings {
		if keep(b) {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out
}
