package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pharmadesk/pharmadesk/internal/platform/httpc"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
}

type fakeBackend struct {
	t        *testing.T
	server   *httptest.Server
	requests []recordedRequest
	status   int
	response string
}

func newFakeBackend(t *testing.T, status int, response string) *fakeBackend {
	fb := &fakeBackend{t: t, status: status, response: response}
	fb.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		fb.requests = append(fb.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Body:   body,
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(fb.status)
		_, _ = w.Write([]byte(fb.response))
	}))
	t.Cleanup(fb.server.Close)
	return fb
}

func (fb *fakeBackend) gateway(t *testing.T) *Gateway {
	base, err := url.Parse(fb.server.URL)
	require.NoError(t, err)
	hc, err := httpc.New(httpc.Config{}, httpc.WithBase(base), httpc.WithHTTPClient(fb.server.Client()))
	require.NoError(t, err)
	return New(hc)
}

func (fb *fakeBackend) last(t *testing.T) recordedRequest {
	require.NotEmpty(t, fb.requests)
	return fb.requests[len(fb.requests)-1]
}

func TestListOmitsBranchParamForCentralScope(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `[]`)
	g := fb.gateway(t)

	_, err := g.Medicines(context.Background(), "")
	require.NoError(t, err)

	req := fb.last(t)
	require.Equal(t, "/medicines", req.Path)
	_, present := req.Query["branch_id"]
	require.False(t, present, "central scope must omit branch_id entirely")
}

func TestListPassesBranchParam(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `[]`)
	g := fb.gateway(t)

	_, err := g.Medicines(context.Background(), "B1")
	require.NoError(t, err)
	require.Equal(t, "B1", fb.last(t).Query.Get("branch_id"))
}

func TestEmptyListIsNotAnError(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `[]`)
	g := fb.gateway(t)

	meds, err := g.Medicines(context.Background(), "B1")
	require.NoError(t, err)
	require.Empty(t, meds)
}

func TestShipmentsUnwrapsLegacyEnvelope(t *testing.T) {
	const doubleWrapped = `{"data":{"data":[{"id":"S1","status":"pending","items":[{"type":"medicine","id":"M1","name":"Aspirin","quantity":5}]}]}}`
	fb := newFakeBackend(t, http.StatusOK, doubleWrapped)
	g := fb.gateway(t)

	shipments, err := g.Shipments(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, shipments, 1)
	require.Equal(t, "S1", shipments[0].ID)
	require.Len(t, shipments[0].Items, 1)
	require.Equal(t, Quantity(5), shipments[0].Items[0].Quantity)
}

func TestShipmentsAcceptsFlatEnvelope(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `{"data":[{"id":"S1","status":"accepted"}]}`)
	g := fb.gateway(t)

	shipments, err := g.Shipments(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, shipments, 1)
	require.Equal(t, ShipmentAccepted, shipments[0].Status)
}

func TestAcceptShipmentConflict(t *testing.T) {
	fb := newFakeBackend(t, http.StatusConflict, `{"detail":"Already processed"}`)
	g := fb.gateway(t)

	_, err := g.AcceptShipment(context.Background(), "S1")
	require.Error(t, err)
	require.True(t, httpc.IsConflict(err))

	var be *httpc.Error
	require.ErrorAs(t, err, &be)
	require.Equal(t, "Already processed", be.Detail)
	require.Equal(t, http.MethodPost, fb.last(t).Method)
	require.Equal(t, "/shipments/S1/accept", fb.last(t).Path)
}

func TestRejectShipmentGuardsEmptyReason(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `{"message":"Shipment rejected"}`)
	g := fb.gateway(t)

	err := g.RejectShipment(context.Background(), "S1", "   ")
	require.ErrorIs(t, err, ErrValidation)
	require.Empty(t, fb.requests, "empty reason must never reach the wire")
}

func TestRejectShipmentSendsTrimmedReason(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `{"message":"Shipment rejected"}`)
	g := fb.gateway(t)

	require.NoError(t, g.RejectShipment(context.Background(), "S1", "  damaged goods "))
	req := fb.last(t)
	require.Equal(t, "/shipments/S1/reject", req.Path)
	require.JSONEq(t, `{"reason":"damaged goods"}`, string(req.Body))
}

func TestCancelAndRetryUseStatusEndpoint(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `{"message":"Shipment status updated"}`)
	g := fb.gateway(t)

	require.NoError(t, g.CancelShipment(context.Background(), "S1"))
	req := fb.last(t)
	require.Equal(t, http.MethodPut, req.Method)
	require.Equal(t, "/shipments/S1/status", req.Path)
	require.JSONEq(t, `{"status":"cancelled"}`, string(req.Body))

	require.NoError(t, g.RetryShipment(context.Background(), "S1"))
	require.JSONEq(t, `{"status":"pending"}`, string(fb.last(t).Body))
}

func TestCreateArrivalsPayloadShape(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `{"message":"Arrivals created successfully"}`)
	g := fb.gateway(t)

	err := g.CreateArrivals(context.Background(), []ArrivalForm{
		{MedicineID: "M1", Quantity: 7, PurchasePrice: 12.5},
	})
	require.NoError(t, err)

	req := fb.last(t)
	require.Equal(t, http.MethodPost, req.Method)
	require.Equal(t, "/arrivals", req.Path)
	require.JSONEq(t, `{"arrivals":[{"medicine_id":"M1","quantity":7,"purchase_price":12.5}]}`, string(req.Body))
}

func TestCreateArrivalsValidatesBatch(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `{}`)
	g := fb.gateway(t)

	err := g.CreateArrivals(context.Background(), nil)
	require.ErrorIs(t, err, ErrValidation)
	require.Empty(t, fb.requests)

	err = g.CreateArrivals(context.Background(), []ArrivalForm{{MedicineID: "M1", Quantity: 0, PurchasePrice: 1}})
	require.ErrorIs(t, err, ErrValidation)
	require.Empty(t, fb.requests)
}

func TestLogin(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `{"access_token":"tok","user":{"id":"U1","login":"main","role":"admin","branch_id":null}}`)
	g := fb.gateway(t)

	res, err := g.Login(context.Background(), "main", "secret")
	require.NoError(t, err)
	require.Equal(t, "tok", res.AccessToken)
	require.Equal(t, "admin", res.User.Role)

	req := fb.last(t)
	require.Equal(t, "/auth/login", req.Path)
	var body map[string]string
	require.NoError(t, json.Unmarshal(req.Body, &body))
	require.Equal(t, "main", body["login"])
}

func TestCategoriesTypeFilter(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `[]`)
	g := fb.gateway(t)

	_, err := g.MedicineCategories(context.Background())
	require.NoError(t, err)
	require.Equal(t, CategoryMedicine, fb.last(t).Query.Get("type"))
}

func TestDispensingCalendarDecodesDayMap(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `{"data":{"12":[{"id":"D1","patient_name":"Ivanov","employee_name":"Petrova","time":"09:30"}]}}`)
	g := fb.gateway(t)

	days, err := g.DispensingCalendar(context.Background(), "B1", 4, 2026)
	require.NoError(t, err)
	require.Len(t, days["12"], 1)
	require.Equal(t, "Ivanov", days["12"][0].PatientName)

	req := fb.last(t)
	require.Equal(t, "B1", req.Query.Get("branch_id"))
	require.Equal(t, "4", req.Query.Get("month"))
	require.Equal(t, "2026", req.Query.Get("year"))
}

func TestGenerateReportValidatesType(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `{"data":[]}`)
	g := fb.gateway(t)

	_, err := g.GenerateReport(context.Background(), ReportRequest{Type: "bogus"})
	require.ErrorIs(t, err, ErrValidation)
	require.Empty(t, fb.requests)
}
