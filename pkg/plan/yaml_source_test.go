package plan_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gatekit/pkg/plan"
)

const catalogYAML = `
plans:
  free:
    name: Free
    limits:
      ai_reports: 1
    capabilities: []
  basic:
    name: Basic
    limits:
      exports: 3
      ai_reports: 10
    capabilities:
      - view_history
  premium:
    name: Premium
    limits:
      exports: -1
    capabilities:
      - view_history
      - integrations
`

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plans.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestYAMLSource(t *testing.T) {
	t.Parallel()

	t.Run("loads a valid catalogue", func(t *testing.T) {
		t.Parallel()
		src := plan.NewYAMLSource(writeCatalogFile(t, catalogYAML))

		catalog, err := plan.NewCatalog(context.Background(), src)
		require.NoError(t, err)

		p := catalog.LimitsFor(plan.TierPremium)
		limit, ok := p.LimitFor(plan.FeatureExports)
		require.True(t, ok)
		assert.Equal(t, plan.Unlimited, limit)
		assert.True(t, p.Can(plan.FeatureIntegrations))

		free := catalog.LimitsFor(plan.TierFree)
		assert.False(t, free.Can(plan.FeatureExports))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		src := plan.NewYAMLSource(filepath.Join(t.TempDir(), "nope.yaml"))
		_, err := src.Load(context.Background())
		assert.ErrorIs(t, err, plan.ErrFailedToLoadPlans)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()
		src := plan.NewYAMLSource(writeCatalogFile(t, "plans: [not a map"))
		_, err := src.Load(context.Background())
		assert.ErrorIs(t, err, plan.ErrFailedToLoadPlans)
	})

	t.Run("empty catalogue file", func(t *testing.T) {
		t.Parallel()
		src := plan.NewYAMLSource(writeCatalogFile(t, "plans: {}"))
		_, err := src.Load(context.Background())
		assert.ErrorIs(t, err, plan.ErrFailedToLoadPlans)
	})
}
