package main

import (
	"fmt"
	"os"
	"strings"

	svgcompare "github.com/Rmohid/svg-model-compare"
	"github.com/Rmohid/svg-model-compare/gen"
)

func printEvent(ev gen.Event) {
	switch ev.Type {
	case gen.EventModelCached:
		fmt.Printf("  [%s] Using cached result\n", styleModelName(ev.Model.Name))
	case gen.EventModelStart:
		fmt.Printf("  [%s] Requesting...\n", styleModelName(ev.Model.Name))
	case gen.EventModelDone:
		if ev.Entry.OK {
			fmt.Printf("  [%s] Done in %s (%d chars)\n",
				styleModelName(ev.Model.Name), formatSeconds(ev.Entry.ElapsedMS), len(ev.Entry.SVG))
		} else {
			fmt.Printf("  [%s] %s in %s\n",
				styleModelName(ev.Model.Name), styleError("Error: "+ev.Entry.Err), formatSeconds(ev.Entry.ElapsedMS))
		}
	}
}

func printSummary(report *gen.Report, outputPath string) {
	succeeded := 0
	for _, r := range report.Results {
		if r.Entry.OK {
			succeeded++
		}
	}

	fmt.Printf("\nResults: %s models returned valid SVG (%d cached, %d fetched, %d failed)\n",
		styleCount(fmt.Sprintf("%d/%d", succeeded, len(report.Results))),
		report.Hits, report.Calls, report.Failures)

	for _, r := range report.Results {
		status := "OK"
		if r.Cached {
			status = "OK (cached)"
		}
		if !r.Entry.OK {
			status = "FAIL: " + truncate(r.Entry.Err, 60)
		}
		fmt.Printf("  %-25s %8s  %s\n", r.Model.Name, formatSeconds(r.Entry.ElapsedMS), status)
	}

	fmt.Printf("\nOutput: %s\n", outputPath)
}

func printCheckReport(report *svgcompare.CheckReport) {
	fmt.Printf("Gateway advertises %d models\n", report.Known)
	if len(report.Missing) == 0 {
		fmt.Printf("All gateway-routed roster models are available\n")
		return
	}
	for _, spec := range report.Missing {
		fmt.Printf("  %-25s %s %s\n", spec.Name, spec.ID, styleError("not found"))
	}
}

func formatSeconds(elapsedMS float64) string {
	return fmt.Sprintf("%.1fs", elapsedMS/1000)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func styleModelName(v string) string {
	return colorize(v, "1;36")
}

func styleCount(v string) string {
	return colorize(v, "1;33")
}

func styleError(v string) string {
	return colorize(v, "1;31")
}

func colorize(v, code string) string {
	if !isColorEnabled() || strings.TrimSpace(v) == "" {
		return v
	}
	return "\033[" + code + "m" + v + "\033[0m"
}

func isColorEnabled() bool {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return false
	}
	term := strings.TrimSpace(os.Getenv("TERM"))
	return term != "" && term != "dumb"
}
