package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/Givikap120/flowaim-sr/app/beatmap/difficulty"
	"github.com/Givikap120/flowaim-sr/app/beatmap/loader"
	"github.com/Givikap120/flowaim-sr/app/rulesets/osu/performance/api"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

const starFormat = "#,###.##"

func stars(v float64) string {
	return humanize.FormatFloat(starFormat, v)
}

func newTable(out io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	return table
}

func printAttributes(out io.Writer, beatmap *loader.Beatmap, diff *difficulty.Difficulty, attr api.Attributes, cachedAt time.Time) {
	title := beatmap.Title
	if title == "" {
		title = "untitled"
	}

	mods := diff.Mods.String()
	if mods == "" {
		mods = "NM"
	}

	fmt.Fprintf(out, "%s [%s]", title, mods)

	if diff.GetCustomSpeed() > 0 {
		fmt.Fprintf(out, " x%s", humanize.Ftoa(diff.Speed))
	}

	fmt.Fprintln(out)

	if !cachedAt.IsZero() {
		fmt.Fprintf(out, "cached %s\n", humanize.Time(cachedAt))
	}

	table := newTable(out, "Attribute", "Value")

	table.Append([]string{"Stars", stars(attr.Total)})
	table.Append([]string{"Aim", stars(attr.Aim)})
	table.Append([]string{"Snap aim", stars(attr.SnapAim)})
	table.Append([]string{"Flow aim", stars(attr.FlowAim)})
	table.Append([]string{"Aim stamina", stars(attr.AimStamina)})
	table.Append([]string{"Speed", stars(attr.Speed)})
	table.Append([]string{"Stamina", stars(attr.Stamina)})
	table.Append([]string{"Difficult aim strains", stars(attr.AimDifficultStrainCount)})
	table.Append([]string{"Difficult speed strains", stars(attr.SpeedDifficultStrainCount)})
	table.Append([]string{"AR", stars(attr.ApproachRate)})
	table.Append([]string{"OD", stars(attr.OverallDifficulty)})
	table.Append([]string{"Objects", humanize.Comma(int64(attr.ObjectCount))})
	table.Append([]string{"Circles / Sliders / Spinners", fmt.Sprintf("%d / %d / %d", attr.Circles, attr.Sliders, attr.Spinners)})
	table.Append([]string{"Max combo", humanize.Comma(int64(attr.MaxCombo))})

	if fc := attr.FullCombo; fc != nil {
		table.Append([]string{"FC skill", stars(fc.Rating)})
		table.Append([]string{"FC expected time", formatSeconds(fc.ExpectedTime)})
		table.Append([]string{"FC target time", formatSeconds(fc.TargetTime)})
		table.Append([]string{"Map length", formatSeconds(fc.MapLength)})
		table.Append([]string{"FC iterations", fmt.Sprintf("%d (converged: %t)", fc.Iterations, fc.Converged)})
	}

	table.Render()
}

func printSteps(out io.Writer, beatmap *loader.Beatmap, steps []api.Attributes) {
	table := newTable(out, "#", "Time", "Stars", "Aim", "Speed", "Combo")

	// Step i holds the state after object i
	for i, attr := range steps {
		object := beatmap.HitObjects[i]

		table.Append([]string{
			strconv.Itoa(i + 1),
			formatMillis(object.GetStartTime()),
			stars(attr.Total),
			stars(attr.Aim),
			stars(attr.Speed),
			humanize.Comma(int64(attr.MaxCombo)),
		})
	}

	table.Render()
}

// firstSectionStart returns clock-adjusted start time of the first strain section
func firstSectionStart(beatmap *loader.Beatmap, diff *difficulty.Difficulty, sectionLength float64) float64 {
	if len(beatmap.HitObjects) < 2 {
		return 0
	}

	// Sections are aligned to the first difficulty object, which is the second hit object
	firstEnd := math.Ceil(beatmap.HitObjects[1].GetStartTime()/diff.Speed/sectionLength) * sectionLength

	return firstEnd - sectionLength
}

// printPeaks prints peaks of every section, sectionStart is clock-adjusted start of the first one
func printPeaks(out io.Writer, peaks api.StrainPeaks, sectionStart, sectionLength float64) {
	table := newTable(out, "Section", "Start", "Aim", "Snap", "Flow", "Aim stamina", "Speed", "Stamina", "Stars")

	for i := range peaks.Total {
		table.Append([]string{
			strconv.Itoa(i),
			formatMillis(sectionStart + float64(i)*sectionLength),
			stars(peaks.Aim[i]),
			stars(peaks.SnapAim[i]),
			stars(peaks.FlowAim[i]),
			stars(peaks.AimStamina[i]),
			stars(peaks.Speed[i]),
			stars(peaks.Stamina[i]),
			stars(peaks.Total[i]),
		})
	}

	table.Render()
}

func formatMillis(ms float64) string {
	return (time.Duration(ms) * time.Millisecond).String()
}

func formatSeconds(s float64) string {
	if math.IsInf(s, 1) {
		return "never"
	}

	return (time.Duration(s*1000) * time.Millisecond).Round(time.Second).String()
}
