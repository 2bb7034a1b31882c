package progress_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/marketplace-client/internal/progress"
)

type recorder struct {
	fractions []float64
	tasks     []string
}

func (r *recorder) report(f float64, task string) {
	r.fractions = append(r.fractions, f)
	r.tasks = append(r.tasks, task)
}

func TestWeightedChildren(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	ctx := progress.WithReporter(context.Background(), rec.report)
	ctx = progress.Begin(ctx, "Resolving category", 200)

	markets := progress.Child(ctx, 50)
	progress.Done(markets)

	require.Len(t, rec.fractions, 1)
	assert.InDelta(t, 0.25, rec.fractions[0], 1e-9)

	detail := progress.Child(ctx, 150)
	detail = progress.Begin(detail, "Fetching category", 3)
	progress.Worked(detail, 1)
	progress.Worked(detail, 2)

	require.Len(t, rec.fractions, 3)
	assert.InDelta(t, 0.5, rec.fractions[1], 1e-9)
	assert.InDelta(t, 1.0, rec.fractions[2], 1e-9)
	assert.Equal(t, "Fetching category", rec.tasks[2])
}

func TestWorked_ClampsToTotal(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	ctx := progress.WithReporter(context.Background(), rec.report)
	ctx = progress.Begin(ctx, "favorites", 2)

	progress.Worked(ctx, 5)
	progress.Worked(ctx, 1)
	progress.Done(ctx)

	require.Len(t, rec.fractions, 1)
	assert.InDelta(t, 1.0, rec.fractions[0], 1e-9)
}

func TestNoReporterIsNoop(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Equal(t, ctx, progress.Begin(ctx, "x", 10))
	assert.Equal(t, ctx, progress.Child(ctx, 10))

	assert.NotPanics(t, func() {
		progress.Worked(ctx, 3)
		progress.Done(ctx)
	})
}
