package reports

import (
	"bytes"
	"testing"

	"laptop-ledger/internal/models"

	"github.com/xuri/excelize/v2"
)

// roundTrip writes the workbook to bytes and opens it again, the way a
// browser download would be read.
func roundTrip(t *testing.T, f *excelize.File) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	f.Close()
	out, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { out.Close() })
	return out
}

func rows(t *testing.T, f *excelize.File, sheet string) [][]string {
	t.Helper()
	r, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("GetRows(%s): %v", sheet, err)
	}
	return r
}

func TestSalesWorkbook(t *testing.T) {
	snap := fixture()
	snap.Clients[0].Name = "Amina"
	snap.Sales[0].ClientID = "C1"
	snap.Sales[1].ClientID = "C9"

	f, err := SalesWorkbook(snap)
	if err != nil {
		t.Fatal(err)
	}
	got := rows(t, roundTrip(t, f), "Sales")

	if len(got) != len(snap.Sales)+1 {
		t.Fatalf("rows = %d, want %d", len(got), len(snap.Sales)+1)
	}
	if got[0][0] != "Sale ID" || got[0][8] != "Commission Amount" {
		t.Errorf("header = %v", got[0])
	}
	if got[1][2] != "HP EliteBook B" || got[1][3] != "Amina" {
		t.Errorf("first sale row = %v", got[1])
	}
	if got[2][3] != "C9" {
		t.Errorf("unknown client should fall back to its id, got %q", got[2][3])
	}
}

func TestCommissionsWorkbook(t *testing.T) {
	snap := fixture()
	snap.Commissions = []models.Commission{
		{ID: "K1", SaleID: "S1", EarnerName: "Otieno", EarnerContact: "0700", Amount: 20, PaymentStatus: models.CommissionPending},
		{ID: "K2", SaleID: "missing", EarnerName: "Wanjiru", Amount: 30, PaymentStatus: models.CommissionPaid, PayoutDate: "2024-03-05"},
	}

	f, err := CommissionsWorkbook(snap)
	if err != nil {
		t.Fatal(err)
	}
	got := rows(t, roundTrip(t, f), "Commissions")

	if len(got) != 3 {
		t.Fatalf("rows = %d, want 3", len(got))
	}
	if got[1][2] != "HP EliteBook B" || got[1][4] != "Otieno" {
		t.Errorf("row 1 = %v", got[1])
	}
	if got[2][2] != "" || got[2][8] != "2024-03-05" {
		t.Errorf("row 2 = %v", got[2])
	}
}

func TestReportWorkbook(t *testing.T) {
	f, err := ReportWorkbook(fixture(), now)
	if err != nil {
		t.Fatal(err)
	}
	out := roundTrip(t, f)

	sheets := out.GetSheetList()
	want := []string{"Summary", "Sales", "Expenses"}
	if len(sheets) != len(want) {
		t.Fatalf("sheets = %v, want %v", sheets, want)
	}
	for i := range want {
		if sheets[i] != want[i] {
			t.Fatalf("sheets = %v, want %v", sheets, want)
		}
	}

	summary := rows(t, out, "Summary")
	if summary[0][0] != "Metric" || summary[1][1] != "2024-03-15" {
		t.Errorf("summary head = %v", summary[:2])
	}
	if len(rows(t, out, "Expenses")) != 3 {
		t.Errorf("expenses sheet should have a header and two rows")
	}
}
