package prefs

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/promptr/internal/prompt"
)

func TestSmartDefaultsEmpty(t *testing.T) {
	_, ok := NewStore().SmartDefaults()
	assert.False(t, ok)
}

func TestSmartDefaultsMostFrequent(t *testing.T) {
	s := NewStore()
	s.Track(prompt.DomainAcademic, "student", prompt.TaskExplain, "tutor")
	s.Track(prompt.DomainCoding, "developer", prompt.TaskDebug, "debug")
	s.Track(prompt.DomainCoding, "developer", prompt.TaskDebug, "clean")
	s.Track(prompt.DomainAcademic, "student", prompt.TaskExplain, "tutor")
	s.Track(prompt.DomainCoding, "developer", prompt.TaskDebug, "debug")

	got, ok := s.SmartDefaults()
	require.True(t, ok)
	assert.Equal(t, Defaults{
		Domain:   prompt.DomainCoding,
		Role:     "developer",
		TaskType: prompt.TaskDebug,
		Version:  "tutor",
	}, got)
}

func TestSmartDefaultsTieGoesToFirstSeen(t *testing.T) {
	s := NewStore()
	s.Track(prompt.DomainWriting, "writer", prompt.TaskWrite, "creative")
	s.Track(prompt.DomainGeneral, "general user", prompt.TaskGeneral, "basic")

	got, ok := s.SmartDefaults()
	require.True(t, ok)
	assert.Equal(t, prompt.DomainWriting, got.Domain)
	assert.Equal(t, prompt.VersionKey("creative"), got.Version)
}

func TestReset(t *testing.T) {
	s := NewStore()
	s.Track(prompt.DomainCoding, "developer", prompt.TaskDebug, "debug")
	s.Reset()

	_, ok := s.SmartDefaults()
	assert.False(t, ok)
	assert.Zero(t, s.Snapshot().Total)
}

func TestConcurrentTrack(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Track(prompt.DomainMLDS, "data scientist", prompt.TaskTrainModel, "production")
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	assert.Equal(t, 50, snap.Total)
	assert.Equal(t, 50, snap.Domains[prompt.DomainMLDS])
	assert.Equal(t, 50, snap.Versions["production"])
}

func TestCountsNeverDecrease(t *testing.T) {
	s := NewStore()
	prev := 0
	for i := 0; i < 10; i++ {
		s.Track(prompt.DomainCoding, "developer", prompt.TaskReview, "")
		snap := s.Snapshot()
		assert.Greater(t, snap.Total, prev)
		prev = snap.Total
	}
	assert.Empty(t, s.Snapshot().Versions)
}
