package installer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recording(name string, log *[]string, err error) Installer {
	return Func{StepName: name, Fn: func(ctx context.Context) error {
		*log = append(*log, name)
		return err
	}}
}

func TestSet_RunAllInOrder(t *testing.T) {
	var ran []string
	s := NewSet()
	require.NoError(t, s.Add(recording("queues", &ran, nil)))
	require.NoError(t, s.Add(recording("tables", &ran, nil)))

	require.NoError(t, s.RunAll(context.Background(), false))
	assert.Equal(t, []string{"queues", "tables"}, ran)
	assert.Equal(t, []string{"queues", "tables"}, s.Names())
	assert.Equal(t, 2, s.Len())
}

func TestSet_StopsAtFirstFailure(t *testing.T) {
	var ran []string
	cause := errors.New("permission denied")
	s := NewSet()
	require.NoError(t, s.Add(recording("queues", &ran, cause)))
	require.NoError(t, s.Add(recording("tables", &ran, nil)))

	err := s.RunAll(context.Background(), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "installer 'queues' failed")
	assert.Equal(t, []string{"queues"}, ran)
}

func TestSet_DryRun(t *testing.T) {
	var ran []string
	s := NewSet()
	require.NoError(t, s.Add(recording("queues", &ran, nil)))

	require.NoError(t, s.RunAll(context.Background(), true))
	assert.Empty(t, ran)
}

func TestSet_CancelledContext(t *testing.T) {
	var ran []string
	s := NewSet()
	require.NoError(t, s.Add(recording("queues", &ran, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.RunAll(ctx, false), context.Canceled)
	assert.Empty(t, ran)
}

func TestSet_AddValidation(t *testing.T) {
	var ran []string
	s := NewSet()
	require.NoError(t, s.Add(recording("queues", &ran, nil)))

	err := s.Add(recording("queues", &ran, nil))
	assert.EqualError(t, err, "installer with name 'queues' already registered")

	err = s.Add(recording("", &ran, nil))
	assert.EqualError(t, err, "installer name must not be empty")
}
