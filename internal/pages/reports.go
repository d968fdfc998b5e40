package pages

import (
	"context"
	"log/slog"

	"github.com/pharmadesk/pharmadesk/internal/gateway"
	"github.com/pharmadesk/pharmadesk/internal/session"
)

// ReportAPI is the gateway slice the reports page depends on.
type ReportAPI interface {
	GenerateReport(ctx context.Context, req gateway.ReportRequest) ([]gateway.ReportRow, error)
}

// ReportsPage runs server-side reports. Rows are never cached: a report is a
// point-in-time query, not a list resource.
type ReportsPage struct {
	api    ReportAPI
	logger *slog.Logger
	user   session.User

	Request gateway.ReportRequest
	Rows    []gateway.ReportRow
}

// NewReportsPage builds the page for the signed-in user.
func NewReportsPage(api ReportAPI, opts Options) *ReportsPage {
	return &ReportsPage{
		api:    api,
		logger: opts.logger(),
		user:   opts.User,
	}
}

// Generate runs a report and replaces the loaded rows. Branch users who leave
// the branch unset get their own branch.
func (p *ReportsPage) Generate(ctx context.Context, req gateway.ReportRequest) error {
	if req.BranchID == "" {
		req.BranchID = p.user.Scope()
	}
	rows, err := p.api.GenerateReport(ctx, req)
	if err != nil {
		p.logger.Error("report failed", slog.String("type", req.Type), slog.Any("error", err))
		p.Rows = nil
		return err
	}
	p.Request = req
	p.Rows = rows
	return nil
}
