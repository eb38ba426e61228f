package cron

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubJob struct {
	name string
}

func (s *stubJob) Name() string              { return s.name }
func (s *stubJob) Run(context.Context) error { return nil }

func TestRegistryKeepsOrderAndCopies(t *testing.T) {
	jobA, jobB := &stubJob{name: "a"}, &stubJob{name: "b"}
	registry := NewRegistry(jobA, nil)
	require.NoError(t, registry.Register(jobB))

	jobs := registry.Jobs()
	require.Equal(t, []Job{jobA, jobB}, jobs)
	require.Equal(t, []string{"a", "b"}, registry.Names())

	jobs[0] = nil
	require.NotNil(t, registry.Jobs()[0], "internal slice leaked")
}

func TestRegistryRejectsDuplicateNames(t *testing.T) {
	registry := NewRegistry(&stubJob{name: lowStockJobName})
	require.Error(t, registry.Register(&stubJob{name: lowStockJobName}))
	require.Len(t, registry.Jobs(), 1)

	require.Panics(t, func() {
		NewRegistry(&stubJob{name: "x"}, &stubJob{name: "x"})
	})
}
