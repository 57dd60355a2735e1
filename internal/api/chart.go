package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/cooperage-labs/visionpipe/internal/artifacts"
	"github.com/cooperage-labs/visionpipe/internal/httputil"
	"github.com/cooperage-labs/visionpipe/internal/vision"
)

// handleStatsChart renders a bar chart (HTML) of the latest run's
// per-stage min/max/mean using go-echarts.
func (s *Server) handleStatsChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	run, err := s.db.LatestRun()
	if errors.Is(err, sql.ErrNoRows) {
		httputil.NotFound(w, "no runs recorded yet")
		return
	}
	if err != nil {
		httputil.InternalServerError(w, err.Error())
		return
	}

	var summary artifacts.Summary
	if err := json.Unmarshal(run.Summary, &summary); err != nil {
		httputil.InternalServerError(w, "corrupt run summary: "+err.Error())
		return
	}

	// Fixed stage order keeps the chart stable across runs.
	var mins, maxs, means []opts.BarData
	for _, stage := range vision.StageNames {
		st, ok := summary.Images[stage]
		if !ok {
			continue
		}
		mins = append(mins, opts.BarData{Value: st.Min})
		maxs = append(maxs, opts.BarData{Value: st.Max})
		means = append(means, opts.BarData{Value: st.Mean})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Pipeline stage statistics",
			Subtitle: run.GeneratedAt.Format(time.RFC3339),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(vision.StageNames).
		AddSeries("min", mins).
		AddSeries("max", maxs).
		AddSeries("mean", means,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)

	page := components.NewPage()
	page.AddCharts(bar)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		httputil.InternalServerError(w, "render error: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
