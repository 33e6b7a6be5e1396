package tracing

import (
	"context"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var (
	KeyChannel = tag.MustNewKey("channel")
	KeyTheme   = tag.MustNewKey("theme")
	KeyOutcome = tag.MustNewKey("outcome")

	// PreviewLatencyMs measures how long one preview variant takes to build
	PreviewLatencyMs = stats.Float64("notifcomposer/preview/latency", "Preview render latency", stats.UnitMilliseconds)
	// PreviewBlocks counts the blocks of each rendered document
	PreviewBlocks = stats.Int64("notifcomposer/preview/blocks", "Blocks per rendered document", stats.UnitDimensionless)
)

// PreviewViews aggregates the preview measures by channel, theme and outcome
var PreviewViews = []*view.View{
	{
		Name:        "notifcomposer/preview/latency",
		Measure:     PreviewLatencyMs,
		Description: "Distribution of preview render latency",
		TagKeys:     []tag.Key{KeyChannel, KeyTheme, KeyOutcome},
		Aggregation: view.Distribution(1, 2, 5, 10, 25, 50, 100, 250, 500, 1000),
	},
	{
		Name:        "notifcomposer/preview/count",
		Measure:     PreviewLatencyMs,
		Description: "Number of previews rendered",
		TagKeys:     []tag.Key{KeyChannel, KeyTheme, KeyOutcome},
		Aggregation: view.Count(),
	},
	{
		Name:        "notifcomposer/preview/blocks",
		Measure:     PreviewBlocks,
		Description: "Distribution of document sizes",
		Aggregation: view.Distribution(0, 1, 2, 5, 10, 20, 50),
	},
}

// RecordPreview records one rendered variant. Recording without registered
// views is a no-op.
func RecordPreview(ctx context.Context, channel, theme string, blockCount int, elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	_ = stats.RecordWithTags(ctx,
		[]tag.Mutator{
			tag.Upsert(KeyChannel, channel),
			tag.Upsert(KeyTheme, theme),
			tag.Upsert(KeyOutcome, outcome),
		},
		PreviewLatencyMs.M(float64(elapsed)/float64(time.Millisecond)),
		PreviewBlocks.M(int64(blockCount)),
	)
}
