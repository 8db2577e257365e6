package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// RouteUpgradeInput is the input for the route upgrade workflow.
type RouteUpgradeInput struct {
	OriginLat float64
	OriginLng float64
	DestLat   float64
	DestLng   float64
}

// RouteUpgradeWorkflow replaces a cached synthetic route with a live one:
// fetch real directions, overwrite the cache entry, and announce the
// upgrade. If the announcement fails, the stale cache entry is dropped so
// the next request recomputes from scratch (saga compensation).
func RouteUpgradeWorkflow(ctx workflow.Context, input RouteUpgradeInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting route upgrade workflow",
		"origin", []float64{input.OriginLat, input.OriginLng},
		"destination", []float64{input.DestLat, input.DestLng})

	actOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, actOpts)

	// Step 1: Fetch live directions
	var cacheKey string
	err := workflow.ExecuteActivity(ctx, "FetchLiveDirections", input).Get(ctx, &cacheKey)
	if err != nil {
		return err
	}

	// Step 2: Announce the upgrade so connected clients refresh
	err = workflow.ExecuteActivity(ctx, "PublishUpgrade", input).Get(ctx, nil)
	if err != nil {
		logger.Warn("upgrade publish failed, compensating", "error", err)
		// Compensate: drop the cached route
		_ = workflow.ExecuteActivity(ctx, "DeleteCachedRoute", cacheKey).Get(ctx, nil)
		return err
	}

	logger.Info("Route upgraded to live directions", "cacheKey", cacheKey)
	return nil
}
