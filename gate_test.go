package gatekit_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gatekit"
	"github.com/dmitrymomot/gatekit/pkg/entitlement"
	"github.com/dmitrymomot/gatekit/pkg/plan"
	"github.com/dmitrymomot/gatekit/pkg/ratelimit"
	"github.com/dmitrymomot/gatekit/pkg/trial"
	"github.com/dmitrymomot/gatekit/pkg/usage"
)

type gateFixture struct {
	gate   *gatekit.Gate
	subs   *entitlement.MemoryStore
	trials *trial.MemoryStore
	ledger usage.Ledger
}

func newGateFixture(t *testing.T, ledger usage.Ledger, opts ...gatekit.GateOption) *gateFixture {
	t.Helper()

	catalog, err := plan.NewCatalog(context.Background(), plan.DefaultSource())
	require.NoError(t, err)

	subs := entitlement.NewMemoryStore()
	trials := trial.NewMemoryStore()

	var resolver *entitlement.Resolver
	trialSvc := trial.NewService(trials, func(ctx context.Context, userID uuid.UUID) (bool, error) {
		return resolver.HasPaidSubscription(ctx, userID)
	})
	resolver = entitlement.NewResolver(catalog, subs, trialSvc)

	if ledger == nil {
		ledger = usage.NewMemoryLedger()
	}
	tracker := usage.NewTracker(ledger, resolver)

	rlStore := ratelimit.NewMemoryStore()
	t.Cleanup(func() { _ = rlStore.Close() })
	limiter, err := ratelimit.NewFixedWindow(rlStore)
	require.NoError(t, err)

	return &gateFixture{
		gate:   gatekit.New(limiter, resolver, tracker, opts...),
		subs:   subs,
		trials: trials,
		ledger: ledger,
	}
}

func subscribed(t *testing.T, f *gateFixture, tier plan.Tier) *gatekit.Principal {
	t.Helper()

	userID := uuid.New()
	require.NoError(t, f.subs.Save(context.Background(), &entitlement.Subscription{
		UserID: userID,
		PlanID: tier,
		Status: entitlement.StatusActive,
	}))
	return &gatekit.Principal{UserID: userID}
}

func TestGateAuthorize(t *testing.T) {
	t.Parallel()

	t.Run("anonymous request is unauthorized", func(t *testing.T) {
		t.Parallel()

		f := newGateFixture(t, nil)
		d := f.gate.Authorize(context.Background(), &gatekit.Principal{IP: "203.0.113.9"}, gatekit.ClassGeneral, plan.FeatureExports)

		assert.False(t, d.Allowed)
		assert.Equal(t, gatekit.CodeUnauthorized, d.Code)
		assert.Equal(t, http.StatusUnauthorized, d.HTTPStatus())
	})

	t.Run("nil principal is unauthorized", func(t *testing.T) {
		t.Parallel()

		f := newGateFixture(t, nil)
		d := f.gate.Authorize(context.Background(), nil, gatekit.ClassGeneral, plan.FeatureExports)

		assert.Equal(t, gatekit.CodeUnauthorized, d.Code)
	})

	t.Run("free user lacks the exports capability", func(t *testing.T) {
		t.Parallel()

		f := newGateFixture(t, nil)
		p := &gatekit.Principal{UserID: uuid.New()}
		d := f.gate.Authorize(context.Background(), p, gatekit.ClassGeneral, plan.FeatureExports)

		assert.False(t, d.Allowed)
		assert.Equal(t, gatekit.CodeForbidden, d.Code)
		assert.Equal(t, plan.TierFree, d.Plan)
		assert.Equal(t, http.StatusForbidden, d.HTTPStatus())
	})

	t.Run("active trial gets premium entitlements", func(t *testing.T) {
		t.Parallel()

		f := newGateFixture(t, nil)
		userID := uuid.New()
		started := time.Now().Add(-24 * time.Hour)
		ends := started.Add(trial.DefaultDuration)
		f.trials.Seed(userID, trial.State{StartedAt: &started, EndsAt: &ends, Used: true})

		p := &gatekit.Principal{UserID: userID}
		d := f.gate.Authorize(context.Background(), p, gatekit.ClassGeneral, plan.FeatureExports)

		assert.True(t, d.Allowed)
		assert.Equal(t, plan.TierPremium, d.Plan)
		assert.True(t, d.IsTrial)
		assert.Equal(t, plan.Unlimited, d.Limit)
	})

	t.Run("trial expired one second ago falls back to free", func(t *testing.T) {
		t.Parallel()

		f := newGateFixture(t, nil)
		userID := uuid.New()
		started := time.Now().Add(-trial.DefaultDuration - time.Second)
		ends := time.Now().Add(-time.Second)
		f.trials.Seed(userID, trial.State{StartedAt: &started, EndsAt: &ends, Used: true})

		p := &gatekit.Principal{UserID: userID}
		d := f.gate.Authorize(context.Background(), p, gatekit.ClassGeneral, plan.FeatureExports)

		assert.False(t, d.Allowed)
		assert.Equal(t, gatekit.CodeForbidden, d.Code)
		assert.Equal(t, plan.TierFree, d.Plan)
		assert.False(t, d.IsTrial)
	})

	t.Run("basic user exhausts the export quota", func(t *testing.T) {
		t.Parallel()

		f := newGateFixture(t, nil)
		p := subscribed(t, f, plan.TierBasic)
		ctx := context.Background()

		// Basic allows 3 exports per month.
		for i := 0; i < 3; i++ {
			d := f.gate.Authorize(ctx, p, gatekit.ClassGeneral, plan.FeatureExports)
			require.True(t, d.Allowed, "export %d should be allowed", i+1)

			_, err := f.gate.CommitUsage(ctx, p, plan.FeatureExports, 1)
			require.NoError(t, err)
		}

		d := f.gate.Authorize(ctx, p, gatekit.ClassGeneral, plan.FeatureExports)
		assert.False(t, d.Allowed)
		assert.Equal(t, gatekit.CodeLimitExceeded, d.Code)
		assert.Equal(t, int64(3), d.CurrentUsage)
		assert.Equal(t, int64(3), d.Limit)
		assert.Equal(t, http.StatusTooManyRequests, d.HTTPStatus())
	})

	t.Run("capability flag without a limit is not metered", func(t *testing.T) {
		t.Parallel()

		ledger := usage.NewMemoryLedger()
		f := newGateFixture(t, ledger)
		p := subscribed(t, f, plan.TierBasic)

		d := f.gate.Authorize(context.Background(), p, gatekit.ClassGeneral, plan.FeatureViewHistory)

		assert.True(t, d.Allowed)
		assert.Zero(t, ledger.Calls(), "capability checks must not touch the ledger")
	})

	t.Run("rate limit trips before any other check", func(t *testing.T) {
		t.Parallel()

		f := newGateFixture(t, nil,
			gatekit.WithRateLimit(gatekit.ClassAI, ratelimit.Spec{Limit: 2, Window: time.Minute}))
		p := subscribed(t, f, plan.TierPremium)
		ctx := context.Background()

		for i := 0; i < 2; i++ {
			d := f.gate.Authorize(ctx, p, gatekit.ClassAI, plan.FeatureAIReports)
			require.True(t, d.Allowed)
		}

		d := f.gate.Authorize(ctx, p, gatekit.ClassAI, plan.FeatureAIReports)
		assert.False(t, d.Allowed)
		assert.Equal(t, gatekit.CodeRateLimited, d.Code)
		assert.False(t, d.ResetAt.IsZero())
		assert.Equal(t, http.StatusTooManyRequests, d.HTTPStatus())
	})

	t.Run("route classes are limited independently", func(t *testing.T) {
		t.Parallel()

		f := newGateFixture(t, nil,
			gatekit.WithRateLimit(gatekit.ClassAI, ratelimit.Spec{Limit: 1, Window: time.Minute}))
		p := subscribed(t, f, plan.TierPremium)
		ctx := context.Background()

		require.True(t, f.gate.Authorize(ctx, p, gatekit.ClassAI, plan.FeatureAIReports).Allowed)
		require.Equal(t, gatekit.CodeRateLimited, f.gate.Authorize(ctx, p, gatekit.ClassAI, plan.FeatureAIReports).Code)

		// Exhausted AI budget leaves general traffic untouched.
		assert.True(t, f.gate.Authorize(ctx, p, gatekit.ClassGeneral, plan.FeatureViewHistory).Allowed)
	})

	t.Run("ledger outage denies metered features", func(t *testing.T) {
		t.Parallel()

		f := newGateFixture(t, failingLedger{})
		p := subscribed(t, f, plan.TierBasic)

		d := f.gate.Authorize(context.Background(), p, gatekit.ClassGeneral, plan.FeatureExports)

		assert.False(t, d.Allowed)
		assert.Equal(t, gatekit.CodeLimitExceeded, d.Code)
		assert.Equal(t, int64(3), d.Limit)
	})
}

func TestConfigSpecs(t *testing.T) {
	t.Parallel()

	cfg := gatekit.Config{
		GeneralRateLimit:  100,
		GeneralRateWindow: time.Minute,
		AIRateLimit:       1,
		AIRateWindow:      time.Minute,
		BillingRateLimit:  20,
		BillingRateWindow: time.Minute,
	}

	specs := cfg.Specs()
	require.Len(t, specs, 3)
	assert.Equal(t, ratelimit.Spec{Limit: 1, Window: time.Minute}, specs[gatekit.ClassAI])

	f := newGateFixture(t, nil, gatekit.WithConfig(cfg))
	p := subscribed(t, f, plan.TierPremium)
	ctx := context.Background()

	require.True(t, f.gate.Authorize(ctx, p, gatekit.ClassAI, plan.FeatureAIReports).Allowed)
	assert.Equal(t, gatekit.CodeRateLimited, f.gate.Authorize(ctx, p, gatekit.ClassAI, plan.FeatureAIReports).Code)
}

func TestGateCommitUsage(t *testing.T) {
	t.Parallel()

	t.Run("reports crossing the limit", func(t *testing.T) {
		t.Parallel()

		f := newGateFixture(t, nil)
		p := subscribed(t, f, plan.TierBasic)
		ctx := context.Background()

		var last usage.IncrementResult
		for i := 0; i < 3; i++ {
			res, err := f.gate.CommitUsage(ctx, p, plan.FeatureExports, 1)
			require.NoError(t, err)
			last = res
		}

		assert.Equal(t, int64(3), last.NewCount)
		assert.True(t, last.WasWithinLimit)
		assert.True(t, last.IsNowWithinLimit)
	})

	t.Run("requires a principal", func(t *testing.T) {
		t.Parallel()

		f := newGateFixture(t, nil)
		_, err := f.gate.CommitUsage(context.Background(), nil, plan.FeatureExports, 1)
		require.ErrorIs(t, err, gatekit.ErrNoPrincipal)
	})
}

func TestRequireMiddleware(t *testing.T) {
	t.Parallel()

	newHandler := func(f *gateFixture) http.Handler {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		return gatekit.Require(f.gate, gatekit.ClassGeneral, plan.FeatureExports)(next)
	}

	t.Run("anonymous request gets a JSON denial", func(t *testing.T) {
		t.Parallel()

		f := newGateFixture(t, nil)
		req := httptest.NewRequest(http.MethodPost, "/export", nil)
		req.RemoteAddr = "203.0.113.9:4567"
		rec := httptest.NewRecorder()

		newHandler(f).ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

		var d gatekit.Decision
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
		assert.Equal(t, gatekit.CodeUnauthorized, d.Code)
	})

	t.Run("entitled principal passes through", func(t *testing.T) {
		t.Parallel()

		f := newGateFixture(t, nil)
		p := subscribed(t, f, plan.TierPremium)

		req := httptest.NewRequest(http.MethodPost, "/export", nil)
		req = req.WithContext(gatekit.WithPrincipal(req.Context(), p))
		rec := httptest.NewRecorder()

		newHandler(f).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("quota denial carries quota headers", func(t *testing.T) {
		t.Parallel()

		f := newGateFixture(t, nil)
		p := subscribed(t, f, plan.TierBasic)
		ctx := context.Background()
		for i := 0; i < 3; i++ {
			_, err := f.gate.CommitUsage(ctx, p, plan.FeatureExports, 1)
			require.NoError(t, err)
		}

		req := httptest.NewRequest(http.MethodPost, "/export", nil)
		req = req.WithContext(gatekit.WithPrincipal(req.Context(), p))
		rec := httptest.NewRecorder()

		newHandler(f).ServeHTTP(rec, req)

		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "3", rec.Header().Get("X-Quota-Limit"))
		assert.Equal(t, "3", rec.Header().Get("X-Quota-Used"))
	})

	t.Run("context principal is not mutated by IP enrichment", func(t *testing.T) {
		t.Parallel()

		f := newGateFixture(t, nil)
		p := subscribed(t, f, plan.TierPremium)
		p.IP = ""

		req := httptest.NewRequest(http.MethodPost, "/export", nil)
		req.RemoteAddr = "203.0.113.9:4567"
		req = req.WithContext(gatekit.WithPrincipal(req.Context(), p))
		rec := httptest.NewRecorder()

		newHandler(f).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, p.IP, "enrichment must operate on a copy")
	})
}

type failingLedger struct{}

func (failingLedger) ReadCount(context.Context, uuid.UUID, plan.Feature, usage.Period) (int64, error) {
	return 0, errors.New("connection refused")
}

func (failingLedger) AtomicAdd(context.Context, uuid.UUID, plan.Feature, usage.Period, int64) (int64, error) {
	return 0, errors.New("connection refused")
}
