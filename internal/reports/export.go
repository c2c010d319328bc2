package reports

import (
	"fmt"
	"time"

	"laptop-ledger/internal/models"

	"github.com/xuri/excelize/v2"
)

const firstSheet = "Sheet1"

var (
	salesHeader = []any{"Sale ID", "Date", "Laptop", "Client", "Sale Price",
		"Payment Status", "Payment Method", "Commission Earner", "Commission Amount"}
	commissionsHeader = []any{"Commission ID", "Sale ID", "Laptop", "Client", "Earner Name",
		"Earner Contact", "Amount", "Payment Status", "Payout Date", "Created Date"}
	expensesHeader = []any{"Date", "Category", "Description", "Amount", "Trip Batch"}
)

// SalesWorkbook lists every sale with its laptop and client resolved.
func SalesWorkbook(s *Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(firstSheet, "Sales"); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSales(f, "Sales", s); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// CommissionsWorkbook lists every commission with its sale context.
func CommissionsWorkbook(s *Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(firstSheet, "Commissions"); err != nil {
		f.Close()
		return nil, err
	}

	laptops, clients, sales := s.LaptopByID(), s.ClientByID(), s.SaleByID()
	rows := [][]any{commissionsHeader}
	for _, c := range s.Commissions {
		var laptop, client string
		if sale, ok := sales[c.SaleID]; ok {
			laptop = laptopName(laptops, sale.LaptopID)
			client = clientName(clients, sale.ClientID)
		}
		rows = append(rows, []any{c.ID, c.SaleID, laptop, client, c.EarnerName,
			c.EarnerContact, c.Amount, c.PaymentStatus, c.PayoutDate, c.CreatedAt})
	}
	if err := writeRows(f, "Commissions", rows); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// ReportWorkbook is the full business report: a Summary sheet followed by
// the Sales and Expenses sheets.
func ReportWorkbook(s *Snapshot, now time.Time) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := buildReport(f, s, now); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func buildReport(f *excelize.File, s *Snapshot, now time.Time) error {
	if err := f.SetSheetName(firstSheet, "Summary"); err != nil {
		return err
	}
	sum := BuildSummary(s, now)
	summary := [][]any{
		{"Metric", "Value"},
		{"Generated", now.Format(time.DateOnly)},
		{"Total Revenue", sum.TotalRevenue},
		{"Total Expenses", sum.TotalExpenses},
		{"Total Commissions", sum.TotalCommissions},
		{"Net Profit", sum.NetProfit},
		{"Available Stock", sum.AvailableStock},
		{"Laptops Sold Out", sum.SoldLaptops},
		{"Total Sales", len(s.Sales)},
		{"Total Clients", sum.TotalClients},
		{"Pending Commissions", sum.PendingCommissions},
	}
	if err := writeRows(f, "Summary", summary); err != nil {
		return err
	}

	if _, err := f.NewSheet("Sales"); err != nil {
		return err
	}
	if err := writeSales(f, "Sales", s); err != nil {
		return err
	}

	if _, err := f.NewSheet("Expenses"); err != nil {
		return err
	}
	rows := [][]any{expensesHeader}
	for _, e := range s.Expenses {
		rows = append(rows, []any{e.Date, e.Category, e.Description, e.Amount, e.TripBatch})
	}
	return writeRows(f, "Expenses", rows)
}

func writeSales(f *excelize.File, sheet string, s *Snapshot) error {
	laptops, clients := s.LaptopByID(), s.ClientByID()
	rows := [][]any{salesHeader}
	for _, sale := range s.Sales {
		rows = append(rows, []any{sale.ID, sale.SaleDate,
			laptopName(laptops, sale.LaptopID), clientName(clients, sale.ClientID),
			sale.SalePrice, sale.PaymentStatus, sale.PaymentMethod,
			sale.CommissionEarner, sale.CommissionAmount})
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) > 0 {
		last, err := excelize.ColumnNumberToName(len(rows[0]))
		if err != nil {
			return err
		}
		return f.SetColWidth(sheet, "A", last, 18)
	}
	return nil
}

// Unknown ids are shown as-is.
func laptopName(laptops map[string]models.Laptop, id string) string {
	if l, ok := laptops[id]; ok {
		return l.Label()
	}
	return id
}

func clientName(clients map[string]models.Client, id string) string {
	if c, ok := clients[id]; ok {
		return c.Name
	}
	return id
}
