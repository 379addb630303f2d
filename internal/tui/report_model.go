// Package tui implements the interactive report view: a navigable table of
// period aggregates with a tip panel for the selected period.
package tui

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mfleet/ecotally/internal/engine"
)

// Table column widths.
const (
	colWidthPeriod     = 12
	colWidthActivities = 10
	colWidthTotal      = 12
	colWidthRatio      = 8
	colWidthRating     = 10

	// tipPanelLimit is the number of tips shown for the selected period.
	tipPanelLimit = 3

	defaultViewHeight = 12
)

// SortField selects the report row ordering.
type SortField int

const (
	// SortByPeriod orders rows chronologically.
	SortByPeriod SortField = iota
	// SortByTotal orders rows by descending total emissions.
	SortByTotal

	numSortFields = 2
)

// String returns the label shown in the footer.
func (s SortField) String() string {
	switch s {
	case SortByTotal:
		return "total"
	default:
		return "period"
	}
}

// Styles for the report view.
//
//nolint:gochecknoglobals // Constant style lookup tables
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	tipStyle    = lipgloss.NewStyle().Padding(0, 2)

	classColors = map[engine.Classification]lipgloss.Style{
		engine.ClassExcellent: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		engine.ClassGood:      lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		engine.ClassAverage:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		engine.ClassPoor:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		engine.ClassCritical:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

// ReportModel is the Bubble Tea model for the interactive report.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type ReportModel struct {
	aggregates  []engine.PeriodAggregate
	baseline    engine.Baseline
	granularity engine.Granularity

	table  table.Model
	sortBy SortField
	width  int
	height int
	err    error
}

// NewReportModel builds the interactive report over classified period
// aggregates.
func NewReportModel(
	aggregates []engine.PeriodAggregate,
	baseline engine.Baseline,
	granularity engine.Granularity,
) ReportModel {
	m := ReportModel{
		aggregates:  aggregates,
		baseline:    baseline,
		granularity: granularity,
		sortBy:      SortByPeriod,
	}

	columns := []table.Column{
		{Title: "Period", Width: colWidthPeriod},
		{Title: "Activities", Width: colWidthActivities},
		{Title: "CO2 (kg)", Width: colWidthTotal},
		{Title: "vs avg", Width: colWidthRatio},
		{Title: "Rating", Width: colWidthRating},
	}
	m.table = table.New(
		table.WithColumns(columns),
		table.WithRows(m.buildRows()),
		table.WithFocused(true),
		table.WithHeight(defaultViewHeight),
	)
	return m
}

// buildRows converts aggregates into table rows under the current sort.
func (m ReportModel) buildRows() []table.Row {
	ordered := make([]engine.PeriodAggregate, len(m.aggregates))
	copy(ordered, m.aggregates)

	switch m.sortBy {
	case SortByTotal:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].TotalCO2Kg > ordered[j].TotalCO2Kg
		})
	default:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].PeriodStart.Before(ordered[j].PeriodStart)
		})
	}

	rows := make([]table.Row, 0, len(ordered))
	for _, agg := range ordered {
		class, ratio := m.classify(agg)
		rows = append(rows, table.Row{
			agg.PeriodStart.Format("2006-01-02"),
			fmt.Sprintf("%d", agg.ActivityCount),
			fmt.Sprintf("%.2f", agg.TotalCO2Kg),
			fmt.Sprintf("%.2fx", ratio),
			class.String(),
		})
	}
	return rows
}

// classify returns the tier and ratio of one aggregate against the model
// baseline. The baseline was validated before the model was constructed, so
// a failure here only blanks the row rather than crashing the view.
func (m ReportModel) classify(agg engine.PeriodAggregate) (engine.Classification, float64) {
	ratio, err := engine.Ratio(agg, m.baseline)
	if err != nil {
		return engine.ClassAverage, 0
	}
	class, _ := engine.Classify(context.Background(), agg, m.baseline)
	return class, ratio
}

// selectedAggregate returns the aggregate behind the highlighted row.
func (m ReportModel) selectedAggregate() (engine.PeriodAggregate, bool) {
	row := m.table.SelectedRow()
	if row == nil {
		return engine.PeriodAggregate{}, false
	}
	for _, agg := range m.aggregates {
		if agg.PeriodStart.Format("2006-01-02") == row[0] {
			return agg, true
		}
	}
	return engine.PeriodAggregate{}, false
}

// Init implements tea.Model.
func (m ReportModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "s":
			m.sortBy = (m.sortBy + 1) % numSortFields
			m.table.SetRows(m.buildRows())
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ReportModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("error: %v\n", m.err)
	}
	if len(m.aggregates) == 0 {
		return titleStyle.Render("Carbon report") + "\n\n  no activity in the requested window\n\n" +
			footerStyle.Render("q quit")
	}

	header := titleStyle.Render(fmt.Sprintf("Carbon report, per %s (baseline %.2f kg)",
		m.granularity, m.baseline.AverageKg))

	view := header + "\n" + m.table.View() + "\n"

	if agg, ok := m.selectedAggregate(); ok {
		class, _ := m.classify(agg)
		view += "\n" + classColors[class].Render(fmt.Sprintf("  %s period, dominant category: %s",
			class.String(), agg.DominantCategory()))

		tips := engine.TipList(agg)
		if len(tips) > tipPanelLimit {
			tips = tips[:tipPanelLimit]
		}
		for i, tip := range tips {
			view += "\n" + tipStyle.Render(fmt.Sprintf("%d. %s (~%.1f kg/week)", i+1, tip.Title, tip.EstSavingsKg))
		}
		view += "\n"
	}

	view += "\n" + footerStyle.Render(fmt.Sprintf("↑/↓ navigate • s sort (%s) • q quit", m.sortBy))
	return view
}
