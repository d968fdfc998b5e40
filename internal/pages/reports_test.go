package pages

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pharmadesk/pharmadesk/internal/gateway"
)

type fakeReportAPI struct {
	lastReq gateway.ReportRequest
	rows    []gateway.ReportRow
	err     error
}

func (f *fakeReportAPI) GenerateReport(ctx context.Context, req gateway.ReportRequest) ([]gateway.ReportRow, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func TestReportsDefaultToOwnBranch(t *testing.T) {
	ctx := context.Background()
	api := &fakeReportAPI{rows: []gateway.ReportRow{{"name": "Aspirin"}}}
	page := NewReportsPage(api, Options{User: branchUser()})

	require.NoError(t, page.Generate(ctx, gateway.ReportRequest{Type: gateway.ReportStock}))
	require.Equal(t, "B1", api.lastReq.BranchID)
	require.Len(t, page.Rows, 1)

	require.NoError(t, page.Generate(ctx, gateway.ReportRequest{Type: gateway.ReportStock, BranchID: "B2"}))
	require.Equal(t, "B2", api.lastReq.BranchID, "an explicit branch wins")
}

func TestReportsFailureDropsRows(t *testing.T) {
	ctx := context.Background()
	api := &fakeReportAPI{rows: []gateway.ReportRow{{"name": "Aspirin"}}}
	page := NewReportsPage(api, Options{User: branchUser()})
	require.NoError(t, page.Generate(ctx, gateway.ReportRequest{Type: gateway.ReportStock}))
	require.NotEmpty(t, page.Rows)

	api.err = errors.New("backend down")
	require.Error(t, page.Generate(ctx, gateway.ReportRequest{Type: gateway.ReportStock}))
	require.Empty(t, page.Rows)
}
