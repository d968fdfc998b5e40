// Package cli renders client state for the terminal and hosts the
// operational helpers behind the pharmadesk subcommands.
package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/pharmadesk/pharmadesk/internal/gateway"
	"github.com/pharmadesk/pharmadesk/internal/pages"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func formatTime(t gateway.Timestamp) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

// RenderMedicines prints the medicines table with its quantity total.
func RenderMedicines(w io.Writer, page *pages.StockPage) error {
	if len(page.Medicines) == 0 {
		fmt.Fprintln(w, "no medicines")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tQTY\tPURCHASE\tSELL")
	for _, m := range page.Medicines {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.2f\t%.2f\n",
			m.ID, m.Name, page.CategoryName(m.CategoryID), m.Quantity, m.PurchasePrice, m.SellPrice)
	}
	return tw.Flush()
}

// RenderDevices prints the medical devices table.
func RenderDevices(w io.Writer, page *pages.StockPage) error {
	if len(page.Devices) == 0 {
		fmt.Fprintln(w, "no medical devices")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tQTY\tPURCHASE\tSELL")
	for _, d := range page.Devices {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.2f\t%.2f\n",
			d.ID, d.Name, page.CategoryName(d.CategoryID), d.Quantity, d.PurchasePrice, d.SellPrice)
	}
	return tw.Flush()
}

// RenderShipments prints shipments with their line items.
func RenderShipments(w io.Writer, shipments []gateway.Shipment) error {
	if len(shipments) == 0 {
		fmt.Fprintln(w, "no shipments")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tBRANCH\tSTATUS\tCREATED\tITEMS\tREASON")
	for _, s := range shipments {
		reason := s.RejectionReason
		if reason == "" {
			reason = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			s.ID, s.ToBranchID, s.Status, formatTime(s.CreatedAt), len(s.Items), reason)
	}
	return tw.Flush()
}

// RenderShipmentDetail prints one shipment with every line item.
func RenderShipmentDetail(w io.Writer, s gateway.Shipment) error {
	fmt.Fprintf(w, "shipment %s  status=%s  branch=%s  created=%s\n",
		s.ID, s.Status, s.ToBranchID, formatTime(s.CreatedAt))
	if s.RejectionReason != "" {
		fmt.Fprintf(w, "rejection reason: %s\n", s.RejectionReason)
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "TYPE\tID\tNAME\tQTY")
	for _, item := range s.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", item.Type, item.ID, item.Name, item.Quantity)
	}
	return tw.Flush()
}

// RenderTransferGroups prints movements grouped by medicine.
func RenderTransferGroups(w io.Writer, groups []pages.TransferGroup) error {
	if len(groups) == 0 {
		fmt.Fprintln(w, "no transfers")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "MEDICINE\tTOTAL\tMOVEMENTS")
	for _, g := range groups {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", g.MedicineName, g.Total, len(g.Entries))
	}
	return tw.Flush()
}

// RenderArrivals prints both receipt tables.
func RenderArrivals(w io.Writer, page *pages.ArrivalsPage) error {
	tw := newTable(w)
	if len(page.Arrivals) == 0 {
		fmt.Fprintln(w, "no arrivals")
	} else {
		fmt.Fprintln(tw, "MEDICINE\tQTY\tPURCHASE\tDATE")
		for _, a := range page.Arrivals {
			fmt.Fprintf(tw, "%s\t%d\t%.2f\t%s\n", a.MedicineName, a.Quantity, a.PurchasePrice, formatTime(a.Date))
		}
	}
	if len(page.DeviceArrivals) > 0 {
		fmt.Fprintln(tw, "DEVICE\tQTY\tPURCHASE\tDATE")
		for _, a := range page.DeviceArrivals {
			fmt.Fprintf(tw, "%s\t%d\t%.2f\t%s\n", a.DeviceName, a.Quantity, a.PurchasePrice, formatTime(a.Date))
		}
	}
	return tw.Flush()
}

// RenderNotifications prints notifications, unread first marker included.
func RenderNotifications(w io.Writer, notifications []gateway.Notification) error {
	if len(notifications) == 0 {
		fmt.Fprintln(w, "no notifications")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "\tID\tTITLE\tMESSAGE\tCREATED")
	for _, n := range notifications {
		marker := " "
		if !n.IsRead {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", marker, n.ID, n.Title, n.Message, formatTime(n.CreatedAt))
	}
	return tw.Flush()
}

// RenderDispensing prints dispensing records.
func RenderDispensing(w io.Writer, records []gateway.DispensingRecord) error {
	if len(records) == 0 {
		fmt.Fprintln(w, "no dispensing records")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tPATIENT\tEMPLOYEE\tDATE\tLINES")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n",
			r.ID, r.PatientName, r.EmployeeName, formatTime(r.Date), len(r.Medicines)+len(r.MedicalDevices))
	}
	return tw.Flush()
}

// RenderCalendar prints the dispensing month view ordered by day.
func RenderCalendar(w io.Writer, days map[string][]gateway.CalendarEntry) error {
	if len(days) == 0 {
		fmt.Fprintln(w, "no dispensing this month")
		return nil
	}
	keys := make([]string, 0, len(days))
	for day := range days {
		keys = append(keys, day)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		return a < b
	})
	tw := newTable(w)
	fmt.Fprintln(tw, "DAY\tTIME\tPATIENT\tEMPLOYEE")
	for _, day := range keys {
		for _, e := range days[day] {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", day, e.Time, e.PatientName, e.EmployeeName)
		}
	}
	return tw.Flush()
}

// ReportColumns returns the union of row keys in stable alphabetical order.
func ReportColumns(rows []gateway.ReportRow) []string {
	seen := map[string]bool{}
	var columns []string
	for _, row := range rows {
		for key := range row {
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
	}
	sort.Strings(columns)
	return columns
}

// RenderReport prints heterogeneous report rows as one table.
func RenderReport(w io.Writer, rows []gateway.ReportRow) error {
	if len(rows) == 0 {
		fmt.Fprintln(w, "report is empty")
		return nil
	}
	columns := ReportColumns(rows)
	tw := newTable(w)
	for i, col := range columns {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, col)
	}
	fmt.Fprintln(tw)
	for _, row := range rows {
		for i, col := range columns {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, cellString(row[col]))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func cellString(v any) string {
	switch value := v.(type) {
	case nil:
		return "-"
	case string:
		return value
	case float64:
		if value == float64(int64(value)) {
			return strconv.FormatInt(int64(value), 10)
		}
		return strconv.FormatFloat(value, 'f', 2, 64)
	case bool:
		return strconv.FormatBool(value)
	case time.Time:
		return value.Format("2006-01-02 15:04")
	default:
		return fmt.Sprintf("%v", value)
	}
}
