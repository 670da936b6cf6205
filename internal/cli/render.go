package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cashcast/cashcast/internal/forecast"
	"github.com/cashcast/cashcast/internal/model"
	"github.com/cashcast/cashcast/internal/operation"
)

// FormatAmount styles an amount by direction: income in teal, expenses in
// red.
func FormatAmount(a model.Amount) string {
	if a.Value < 0 {
		return ExpenseStyle.Render(a.String())
	}
	return IncomeStyle.Render(a.String())
}

// RenderProjection renders a projected account state: the balance at the
// target date and the synthetic transactions leading up to it.
func RenderProjection(account model.Account, target time.Time) string {
	var b strings.Builder
	b.WriteString(FormatTitle(fmt.Sprintf("%s on %s", account.Name, target.Format(time.DateOnly))))
	b.WriteString("\n")

	headers := []string{"DATE", "DESCRIPTION", "CATEGORY", "AMOUNT"}
	var rows [][]string
	for _, txn := range account.Transactions {
		rows = append(rows, []string{
			txn.Date.Format(time.DateOnly),
			txn.Description,
			string(txn.Category),
			FormatAmount(txn.Amount),
		})
	}
	if len(rows) > 0 {
		b.WriteString(renderTable(headers, rows))
		b.WriteString("\n")
	}

	balance := model.NewAmount(account.Balance, account.Currency)
	b.WriteString(RenderBox("Projected balance", FormatAmount(balance)))
	return b.String()
}

// RenderForecast renders the planned operations and budgets of a forecast.
func RenderForecast(f forecast.Forecast) string {
	var b strings.Builder

	if len(f.Operations) > 0 {
		b.WriteString(TitleStyle.Render("Planned operations"))
		b.WriteString("\n")
		headers := []string{"ID", "DESCRIPTION", "CATEGORY", "AMOUNT", "NEXT"}
		var rows [][]string
		for _, op := range f.Operations {
			rows = append(rows, []string{
				fmt.Sprintf("%d", op.ID),
				op.Description,
				string(op.Category),
				FormatAmount(op.Amount),
				op.Interval.StartDate().Format(time.DateOnly),
			})
		}
		b.WriteString(renderTable(headers, rows))
	}

	if len(f.Budgets) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(TitleStyle.Render("Budgets"))
		b.WriteString("\n")
		headers := []string{"ID", "DESCRIPTION", "CATEGORY", "AMOUNT", "FROM", "TO"}
		var rows [][]string
		for _, budget := range f.Budgets {
			rows = append(rows, []string{
				fmt.Sprintf("%d", budget.ID),
				budget.Description,
				string(budget.Category),
				FormatAmount(budget.Amount),
				budget.Interval.StartDate().Format(time.DateOnly),
				budget.Interval.LastDate().Format(time.DateOnly),
			})
		}
		b.WriteString(renderTable(headers, rows))
	}

	if b.Len() == 0 {
		return SubtleStyle.Render("Forecast is empty.")
	}
	return b.String()
}

// LateEntry is one overdue iteration of a planned operation.
type LateEntry struct {
	Description string
	Amount      model.Amount
	Due         time.Time
}

// RenderLate renders the iterations that should have happened already but
// have no matching transaction.
func RenderLate(entries []LateEntry) string {
	if len(entries) == 0 {
		return SubtleStyle.Render("Nothing is late.")
	}
	var b strings.Builder
	b.WriteString(FormatWarning(fmt.Sprintf("%d late iteration(s)", len(entries))))
	b.WriteString("\n")
	headers := []string{"DUE", "DESCRIPTION", "AMOUNT"}
	var rows [][]string
	for _, e := range entries {
		rows = append(rows, []string{
			e.Due.Format(time.DateOnly),
			e.Description,
			FormatAmount(e.Amount),
		})
	}
	b.WriteString(renderTable(headers, rows))
	return b.String()
}

// AnticipatedEntry pairs an early-paid future iteration with the transaction
// covering it.
type AnticipatedEntry struct {
	Description  string
	Anticipation operation.Anticipation
}

// RenderAnticipated renders future iterations already paid early.
func RenderAnticipated(entries []AnticipatedEntry) string {
	if len(entries) == 0 {
		return SubtleStyle.Render("Nothing was paid early.")
	}
	var b strings.Builder
	b.WriteString(FormatWarning(fmt.Sprintf("%d iteration(s) paid early", len(entries))))
	b.WriteString("\n")
	headers := []string{"DUE", "DESCRIPTION", "PAID ON", "AMOUNT"}
	var rows [][]string
	for _, e := range entries {
		rows = append(rows, []string{
			e.Anticipation.Range.StartDate().Format(time.DateOnly),
			e.Description,
			e.Anticipation.Transaction.Date.Format(time.DateOnly),
			FormatAmount(e.Anticipation.Transaction.Amount),
		})
	}
	b.WriteString(renderTable(headers, rows))
	return b.String()
}

// RenderBalanceSeries renders a day-by-day balance projection with a sparse
// direction marker against the previous day.
func RenderBalanceSeries(currency string, points []forecast.BalancePoint) string {
	if len(points) == 0 {
		return SubtleStyle.Render("No balance points.")
	}
	headers := []string{"DATE", "BALANCE", ""}
	rows := make([][]string, 0, len(points))
	for i, p := range points {
		marker := ""
		if i > 0 {
			switch {
			case p.Balance > points[i-1].Balance:
				marker = IncomeStyle.Render(UpIcon)
			case p.Balance < points[i-1].Balance:
				marker = ExpenseStyle.Render(DownIcon)
			}
		}
		rows = append(rows, []string{
			p.Date.Format(time.DateOnly),
			FormatAmount(model.NewAmount(p.Balance, currency)),
			marker,
		})
	}
	return renderTable(headers, rows)
}

// renderTable lays out rows under a styled header, padding cells to the
// widest entry per column. Styled cells are measured with lipgloss.Width so
// ANSI sequences do not skew the layout.
func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	headerCells := make([]string, len(headers))
	for i, h := range headers {
		headerCells[i] = TableCellStyle.Render(pad(h, widths[i]))
	}
	b.WriteString(TableHeaderStyle.Render(strings.Join(headerCells, "")))
	b.WriteString("\n")

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = TableCellStyle.Render(pad(cell, widths[i]))
		}
		b.WriteString(strings.Join(cells, ""))
		b.WriteString("\n")
	}
	return b.String()
}

func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
