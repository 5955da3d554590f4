package survey

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSurvey(t *testing.T) {
	s, err := NewSurvey("Baseline PPI", "Poverty Probability Index baseline", uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "1.0", s.Version)
	assert.True(t, s.IsActive)

	_, err = NewSurvey("  ", "", uuid.New())
	assert.Error(t, err)
}

func TestSurveyVersioning(t *testing.T) {
	s, err := NewSurvey("Midline check", "", uuid.New())
	require.NoError(t, err)

	require.NoError(t, s.NewVersion("2.0"))
	assert.Equal(t, "2.0", s.Version)
	assert.Error(t, s.NewVersion(" "))
}

func TestNewResponse(t *testing.T) {
	s, err := NewSurvey("Baseline PPI", "", uuid.New())
	require.NoError(t, err)
	hh := uuid.New()
	surveyor := uuid.New()

	t.Run("records version and payload", func(t *testing.T) {
		r, err := NewResponse(s, hh, &surveyor, map[string]interface{}{
			"roof_material": "iron_sheets",
			"meals_per_day": 2,
		})
		require.NoError(t, err)
		assert.Equal(t, "1.0", r.SurveyVersion)
		v, ok := r.Answer("meals_per_day")
		require.True(t, ok)
		assert.Equal(t, 2, v)
		assert.False(t, r.Completed)
	})

	t.Run("empty payload rejected", func(t *testing.T) {
		_, err := NewResponse(s, hh, nil, nil)
		assert.Error(t, err)
	})

	t.Run("inactive survey rejected", func(t *testing.T) {
		s.Deactivate()
		_, err := NewResponse(s, hh, nil, map[string]interface{}{"q1": "a"})
		assert.Error(t, err)
		s.Activate()
	})
}

func TestResponseLifecycle(t *testing.T) {
	s, err := NewSurvey("Exit interview", "", uuid.New())
	require.NoError(t, err)

	r, err := NewResponse(s, uuid.New(), nil, map[string]interface{}{"q1": "yes"})
	require.NoError(t, err)

	require.NoError(t, r.MergeData(map[string]interface{}{"q2": "no"}))
	r.Complete()
	assert.True(t, r.Completed)
	assert.Error(t, r.MergeData(map[string]interface{}{"q3": "maybe"}))
}
