package training

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upg/backend/internal/domain/shared"
)

func sessionDay() time.Time {
	return time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)
}

func newTestTraining(t *testing.T) *Training {
	t.Helper()
	tr, err := NewTraining("Record Keeping Basics", "BST-03", uuid.New())
	require.NoError(t, err)
	return tr
}

func TestNewTraining(t *testing.T) {
	tr := newTestTraining(t)
	assert.Equal(t, TrainingPlanned, tr.Status)
	assert.Equal(t, 25, tr.MaxHouseholds)
	assert.Equal(t, 25, tr.AvailableSlots())

	_, err := NewTraining("  ", "BST-03", uuid.New())
	assert.Error(t, err)
}

func TestTrainingSetup(t *testing.T) {
	tr := newTestTraining(t)

	require.NoError(t, tr.SetModuleNumber(3))
	assert.Error(t, tr.SetModuleNumber(0))

	tr.AssignMentor(uuid.New())
	tr.SetVenue("Kabarnet community hall", decimal.RequireFromString("2.5"))

	start := sessionDay()
	end := start.AddDate(0, 0, 14)
	require.NoError(t, tr.SetSchedule(start, end, []time.Time{start, start.AddDate(0, 0, 7)}))
	assert.Error(t, tr.SetSchedule(end, start, nil))
}

func TestTrainingEnrollment(t *testing.T) {
	tr := newTestTraining(t)
	require.NoError(t, tr.SetCapacity(2))

	hh1 := uuid.New()
	hh2 := uuid.New()

	_, err := tr.Enroll(hh1, sessionDay())
	require.NoError(t, err)
	_, err = tr.Enroll(hh2, sessionDay())
	require.NoError(t, err)
	assert.Equal(t, 0, tr.AvailableSlots())

	t.Run("capacity enforced", func(t *testing.T) {
		_, err := tr.Enroll(uuid.New(), sessionDay())
		assert.ErrorIs(t, err, shared.ErrCapacityExceeded)
	})

	t.Run("duplicate enrollment rejected", func(t *testing.T) {
		tr := newTestTraining(t)
		_, err := tr.Enroll(hh1, sessionDay())
		require.NoError(t, err)
		_, err = tr.Enroll(hh1, sessionDay())
		assert.ErrorIs(t, err, shared.ErrAlreadyEnrolled)
	})

	t.Run("dropout frees the slot", func(t *testing.T) {
		require.NoError(t, tr.DropOut(hh2))
		assert.Equal(t, 1, tr.AvailableSlots())
		assert.False(t, tr.IsEnrolled(hh2))
		_, err := tr.Enroll(uuid.New(), sessionDay())
		require.NoError(t, err)
	})

	t.Run("capacity cannot drop below enrollment", func(t *testing.T) {
		assert.Error(t, tr.SetCapacity(1))
	})

	t.Run("transfer releases enrollment", func(t *testing.T) {
		require.NoError(t, tr.Transfer(hh1))
		assert.False(t, tr.IsEnrolled(hh1))
	})
}

func TestTrainingLifecycle(t *testing.T) {
	tr := newTestTraining(t)
	hh := uuid.New()
	_, err := tr.Enroll(hh, sessionDay())
	require.NoError(t, err)

	require.NoError(t, tr.Activate())
	assert.Error(t, tr.Activate())

	t.Run("completion marks remaining enrollments", func(t *testing.T) {
		done := sessionDay().AddDate(0, 1, 0)
		require.NoError(t, tr.Complete(done))
		assert.Equal(t, TrainingCompleted, tr.Status)
		require.Len(t, tr.Enrollments, 1)
		assert.Equal(t, EnrollmentCompleted, tr.Enrollments[0].Status)
		require.NotNil(t, tr.Enrollments[0].CompletionDate)
	})

	t.Run("no enrollment into a finished training", func(t *testing.T) {
		_, err := tr.Enroll(uuid.New(), sessionDay())
		assert.Error(t, err)
	})

	t.Run("cancel only before completion", func(t *testing.T) {
		assert.Error(t, tr.Cancel())
		fresh := newTestTraining(t)
		require.NoError(t, fresh.Cancel())
	})
}

func TestMarkAttendance(t *testing.T) {
	tr := newTestTraining(t)
	hh := uuid.New()
	mentor := uuid.New()
	_, err := tr.Enroll(hh, sessionDay())
	require.NoError(t, err)

	att, err := tr.MarkAttendance(hh, sessionDay(), true, mentor)
	require.NoError(t, err)
	assert.True(t, att.Attended)
	require.NotNil(t, att.MarkedBy)
	assert.Equal(t, mentor, *att.MarkedBy)

	_, err = tr.MarkAttendance(uuid.New(), sessionDay(), true, mentor)
	assert.Error(t, err)
}
