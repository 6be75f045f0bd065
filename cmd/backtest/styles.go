package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/argo-lab/internal/types"
)

var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	LabelStyle = lipgloss.NewStyle().Faint(true)

	ProfitStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	LossStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// FormatProfit colors a profit green when positive and red when negative.
func FormatProfit(profit float64) string {
	s := fmt.Sprintf("%.2f", profit)

	switch {
	case profit > 0:
		return ProfitStyle.Render(s)
	case profit < 0:
		return LossStyle.Render(s)
	default:
		return s
	}
}

func formatSummary(summary types.BacktestSummary) string {
	var b strings.Builder

	line := func(label, value string) {
		b.WriteString(LabelStyle.Render(label+":") + " " + value + "\n")
	}

	b.WriteString(TitleStyle.Render("Backtest Summary") + "\n")
	line("Run", summary.ID)
	line("Seed", fmt.Sprintf("%d", summary.Seed))
	line("Total signals", fmt.Sprintf("%d", summary.TotalSignals))
	line("Total profit", FormatProfit(summary.TotalProfit))
	line("Win rate", fmt.Sprintf("%.2f%%", summary.WinRate))
	line("Loss rate", fmt.Sprintf("%.2f%%", summary.LossRate))

	if summary.ProfitFactor.IsSome() {
		line("Profit factor", fmt.Sprintf("%.2f", summary.ProfitFactor.Unwrap()))
	}

	line("Final balance", fmt.Sprintf("%.2f", summary.FinalBalance))

	return strings.TrimRight(b.String(), "\n")
}
