package stats

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord(t *testing.T) {
	s := New()
	s.Record("A", "A/Photo.jpg", true)
	s.Record("A", "A/Photo - Modified.jpg", true)
	s.Record("B", "B/Photo.jpg", true)
	s.Record("B", "B/Live Photo.mov", false)
	s.Record("C", "C/Video.mov", false)

	sum := s.Summary()
	assert.Equal(t, []string{"A/Photo - Modified.jpg", "A/Photo.jpg", "B/Photo.jpg"}, sum.ResourcesSucceeded)
	assert.Equal(t, []string{"B/Live Photo.mov", "C/Video.mov"}, sum.ResourcesFailed)
	assert.Equal(t, []string{"A"}, sum.AssetsSucceeded)
	assert.Equal(t, []string{"B", "C"}, sum.AssetsFailed)
	assert.False(t, sum.Complete())
}

func TestRecordIsSetInsert(t *testing.T) {
	s := New()
	s.Record("A", "A/Photo.jpg", true)
	s.Record("A", "A/Photo.jpg", true)

	sum := s.Summary()
	assert.Len(t, sum.ResourcesSucceeded, 1)
	assert.Len(t, sum.AssetsSucceeded, 1)
	assert.True(t, sum.Complete())
}

func TestEmptySummary(t *testing.T) {
	sum := New().Summary()
	assert.Empty(t, sum.ResourcesSucceeded)
	assert.Empty(t, sum.AssetsFailed)
	assert.True(t, sum.Complete())
}

func TestConcurrentRecord(t *testing.T) {
	const successes, failures = 500, 300
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < successes; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Record(fmt.Sprintf("ok-%d", i), fmt.Sprintf("ok-%d/Photo.jpg", i), true)
		}(i)
	}
	for i := 0; i < failures; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Record(fmt.Sprintf("bad-%d", i), fmt.Sprintf("bad-%d/Photo.jpg", i), false)
		}(i)
	}
	wg.Wait()

	sum := s.Summary()
	assert.Len(t, sum.ResourcesSucceeded, successes)
	assert.Len(t, sum.ResourcesFailed, failures)
	assert.Len(t, sum.AssetsSucceeded, successes)
	assert.Len(t, sum.AssetsFailed, failures)
}
