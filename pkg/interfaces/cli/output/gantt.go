package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/barron/scheduler/pkg/application/dto"
	"github.com/barron/scheduler/pkg/domain/entities"
)

// Gantt bar colors, matching the original visualization.
const (
	setupColor      = "#808080"
	productionColor = "#4A90E2"
	lateColor       = "#D0021B"
)

// GanttChart renders a schedule as an SVG timeline with one row per machine.
type GanttChart struct {
	Width        int
	Height       int
	MarginLeft   int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	RowHeight    int
	EndHour      float64
}

// NewGanttChart sizes a chart for the given result.
func NewGanttChart(result *dto.ScheduleResult) *GanttChart {
	endHour := result.Summary.HorizonUsed
	if endHour <= 0 {
		endHour = 1
	}

	rowHeight := 40
	height := len(result.ByMachine)*rowHeight + 120

	return &GanttChart{
		Width:        1200,
		Height:       height,
		MarginLeft:   120,
		MarginTop:    60,
		MarginRight:  60,
		MarginBottom: 60,
		RowHeight:    rowHeight,
		EndHour:      endHour * 1.05,
	}
}

// GenerateSVG creates an SVG representation of the schedule
func (gc *GanttChart) GenerateSVG(result *dto.ScheduleResult) string {
	var svg strings.Builder

	svg.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`, gc.Width, gc.Height))
	svg.WriteString(`<defs>`)
	svg.WriteString(`<style>`)
	svg.WriteString(`.machine-label { font-family: Arial, sans-serif; font-size: 12px; fill: #333; }`)
	svg.WriteString(`.time-label { font-family: Arial, sans-serif; font-size: 10px; fill: #666; }`)
	svg.WriteString(`.title { font-family: Arial, sans-serif; font-size: 16px; font-weight: bold; fill: #333; }`)
	svg.WriteString(`.grid-line { stroke: #e0e0e0; stroke-width: 1; }`)
	svg.WriteString(`.task-bar { stroke: #333; stroke-width: 1; }`)
	svg.WriteString(`.task-text { font-family: Arial, sans-serif; font-size: 9px; fill: white; }`)
	svg.WriteString(`</style>`)
	svg.WriteString(`</defs>`)

	svg.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="white"/>`, gc.Width, gc.Height))
	svg.WriteString(fmt.Sprintf(`<text x="%d" y="30" class="title">Production Schedule</text>`, gc.MarginLeft))

	if len(result.ByMachine) == 0 {
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="machine-label">No scheduled work</text>`, gc.MarginLeft, gc.MarginTop))
		svg.WriteString(`</svg>`)
		return svg.String()
	}

	machines := make([]string, 0, len(result.ByMachine))
	for machine := range result.ByMachine {
		machines = append(machines, machine)
	}
	sort.Strings(machines)

	gc.writeTimeAxis(&svg, len(machines))

	for row, machine := range machines {
		y := gc.MarginTop + row*gc.RowHeight
		svg.WriteString(fmt.Sprintf(`<text x="10" y="%d" class="machine-label">%s</text>`, y+gc.RowHeight/2+4, machine))

		for _, item := range result.ByMachine[machine] {
			gc.writeBar(&svg, item, y)
		}
	}

	svg.WriteString(`</svg>`)
	return svg.String()
}

// writeTimeAxis draws hour grid lines across all machine rows.
func (gc *GanttChart) writeTimeAxis(svg *strings.Builder, rows int) {
	chartBottom := gc.MarginTop + rows*gc.RowHeight

	step := niceStep(gc.EndHour)
	for hour := 0.0; hour <= gc.EndHour; hour += step {
		x := gc.hourToX(hour)
		fmt.Fprintf(svg, `<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`,
			x, gc.MarginTop, x, chartBottom)
		fmt.Fprintf(svg, `<text x="%d" y="%d" class="time-label">%.0fh</text>`,
			x-8, chartBottom+16, hour)
	}
}

// writeBar draws one schedule item as a colored rectangle with a short label.
func (gc *GanttChart) writeBar(svg *strings.Builder, item entities.ScheduleItem, y int) {
	x := gc.hourToX(item.Start)
	width := gc.hourToX(item.End) - x
	if width < 2 {
		width = 2
	}
	barY := y + 6
	barHeight := gc.RowHeight - 12

	fmt.Fprintf(svg, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s" class="task-bar"/>`,
		x, barY, width, barHeight, gc.barColor(item))

	label := gc.barLabel(item)
	if label != "" && width > 30 {
		fmt.Fprintf(svg, `<text x="%d" y="%d" class="task-text">%s</text>`,
			x+4, barY+barHeight/2+3, label)
	}
}

func (gc *GanttChart) barColor(item entities.ScheduleItem) string {
	if item.Type == entities.ItemSetup {
		return setupColor
	}
	if item.OnTime != nil && !*item.OnTime {
		return lateColor
	}
	return productionColor
}

func (gc *GanttChart) barLabel(item entities.ScheduleItem) string {
	switch item.Type {
	case entities.ItemSetup:
		return "SETUP"
	case entities.ItemWorkOrder:
		return fmt.Sprintf("%s %s", item.OrderID, item.Product)
	default:
		return fmt.Sprintf("%s x%d", item.Product, item.Quantity)
	}
}

func (gc *GanttChart) hourToX(hour float64) int {
	usable := gc.Width - gc.MarginLeft - gc.MarginRight
	return gc.MarginLeft + int(hour/gc.EndHour*float64(usable))
}

// niceStep picks a round grid interval so charts stay readable at any scale.
func niceStep(endHour float64) float64 {
	switch {
	case endHour <= 12:
		return 1
	case endHour <= 48:
		return 4
	case endHour <= 120:
		return 8
	default:
		return 24
	}
}
