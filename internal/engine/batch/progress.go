package batch

import (
	"sync"
	"time"
)

// percentMultiplier is used to convert a ratio to percentage (0-100).
const percentMultiplier = 100

// Progress tracks how much of a single batch call has been converted.
// All methods are safe for concurrent use by workers and observers.
type Progress struct {
	totalItems      int
	processedItems  int
	totalChunks     int
	processedChunks int
	chunkSize       int
	startTime       time.Time
	lastUpdateTime  time.Time

	mu sync.RWMutex
}

// NewProgress creates a progress tracker for a batch of totalItems elements
// split into totalChunks chunks of at most chunkSize elements.
func NewProgress(totalItems, totalChunks, chunkSize int) *Progress {
	now := time.Now()
	return &Progress{
		totalItems:     totalItems,
		totalChunks:    totalChunks,
		chunkSize:      chunkSize,
		startTime:      now,
		lastUpdateTime: now,
	}
}

// AddProcessed records one finished chunk holding itemsProcessed elements.
func (p *Progress) AddProcessed(itemsProcessed int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.processedItems += itemsProcessed
	p.processedChunks++
	p.lastUpdateTime = time.Now()
}

// PercentComplete returns the completion percentage (0-100).
func (p *Progress) PercentComplete() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.percentCompleteLocked()
}

// IsComplete returns true if all elements have been converted.
func (p *Progress) IsComplete() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.processedItems >= p.totalItems
}

// ItemsPerSecond returns the conversion rate since the batch started.
func (p *Progress) ItemsPerSecond() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.itemsPerSecondLocked()
}

// Snapshot returns a copy of the current progress state.
func (p *Progress) Snapshot() ProgressSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return ProgressSnapshot{
		TotalItems:      p.totalItems,
		ProcessedItems:  p.processedItems,
		TotalChunks:     p.totalChunks,
		ProcessedChunks: p.processedChunks,
		ChunkSize:       p.chunkSize,
		StartTime:       p.startTime,
		LastUpdateTime:  p.lastUpdateTime,
		PercentComplete: p.percentCompleteLocked(),
		ElapsedTime:     time.Since(p.startTime),
		ItemsPerSecond:  p.itemsPerSecondLocked(),
	}
}

// ProgressSnapshot is an immutable snapshot of progress state.
type ProgressSnapshot struct {
	TotalItems      int
	ProcessedItems  int
	TotalChunks     int
	ProcessedChunks int
	ChunkSize       int
	StartTime       time.Time
	LastUpdateTime  time.Time
	PercentComplete float64
	ElapsedTime     time.Duration
	ItemsPerSecond  float64
}

// percentCompleteLocked must be called with p.mu held.
func (p *Progress) percentCompleteLocked() float64 {
	if p.totalItems == 0 {
		return 0
	}
	return (float64(p.processedItems) / float64(p.totalItems)) * percentMultiplier
}

// itemsPerSecondLocked must be called with p.mu held.
func (p *Progress) itemsPerSecondLocked() float64 {
	elapsed := time.Since(p.startTime).Seconds()
	if elapsed == 0 {
		return 0
	}
	return float64(p.processedItems) / elapsed
}
