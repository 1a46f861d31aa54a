package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeighted(t *testing.T) {
	assert.Equal(t, 15.0, Weighted(100, 15))
	assert.Equal(t, 10.0, Weighted(66.666, 15.0))
	assert.Equal(t, 0.0, Weighted(0, 60))
	assert.Equal(t, 16.67, Weighted(66.67, 25))
}

func TestVerdictFor(t *testing.T) {
	assert.Equal(t, VerdictAccepted, VerdictFor(70, 70))
	assert.Equal(t, VerdictPartiallyPassed, VerdictFor(69.99, 70))
	assert.Equal(t, VerdictPartiallyPassed, VerdictFor(42, 70))
	assert.Equal(t, VerdictFailed, VerdictFor(41.99, 70))
	assert.Equal(t, VerdictAccepted, VerdictFor(80, 75))
}

func TestAggregate(t *testing.T) {
	components := []Component{
		{Name: "imports", Raw: 100, Weight: 15, Passed: true},
		{Name: "structure", Raw: 100, Weight: 25, Passed: true},
		{Name: "behavior", Raw: 100, Weight: 60, Passed: true},
	}

	t.Run("perfect score", func(t *testing.T) {
		s := Aggregate(components, 70)
		assert.Equal(t, 100.0, s.Total)
		assert.Equal(t, VerdictAccepted, s.Verdict)
		assert.Equal(t, 3, s.Breakdown.ComponentsPassed)
		assert.Equal(t, 60.0, s.Breakdown.Components["behavior"].Weighted)
		assert.Equal(t, 60.0, s.Breakdown.Components["behavior"].Max)
	})

	t.Run("over-sum weights clamp at 100", func(t *testing.T) {
		over := []Component{
			{Name: "imports", Raw: 100, Weight: 50, Passed: true},
			{Name: "structure", Raw: 100, Weight: 50, Passed: true},
			{Name: "behavior", Raw: 100, Weight: 50, Passed: true},
		}
		s := Aggregate(over, 70)
		assert.Equal(t, 100.0, s.Total)
	})

	t.Run("under-sum weights cap below 100", func(t *testing.T) {
		under := []Component{
			{Name: "imports", Raw: 100, Weight: 10, Passed: true},
			{Name: "behavior", Raw: 100, Weight: 40, Passed: true},
		}
		s := Aggregate(under, 70)
		assert.Equal(t, 50.0, s.Total)
		assert.Equal(t, VerdictPartiallyPassed, s.Verdict)
	})

	t.Run("monotonic in component raw score", func(t *testing.T) {
		low := []Component{
			{Name: "imports", Raw: 100, Weight: 15, Passed: true},
			{Name: "structure", Raw: 40, Weight: 25},
			{Name: "behavior", Raw: 50, Weight: 60},
		}
		high := []Component{
			{Name: "imports", Raw: 100, Weight: 15, Passed: true},
			{Name: "structure", Raw: 80, Weight: 25},
			{Name: "behavior", Raw: 50, Weight: 60},
		}
		assert.Greater(t, Aggregate(high, 70).Total, Aggregate(low, 70).Total)
	})

	t.Run("failed verdict on low total", func(t *testing.T) {
		weak := []Component{
			{Name: "imports", Raw: 0, Weight: 15},
			{Name: "structure", Raw: 30, Weight: 25},
			{Name: "behavior", Raw: 20, Weight: 60},
		}
		s := Aggregate(weak, 70)
		assert.Equal(t, 19.5, s.Total)
		assert.Equal(t, VerdictFailed, s.Verdict)
		assert.Equal(t, 0, s.Breakdown.ComponentsPassed)
	})
}
