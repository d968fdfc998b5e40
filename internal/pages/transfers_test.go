package pages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pharmadesk/pharmadesk/internal/gateway"
	"github.com/pharmadesk/pharmadesk/internal/platform/cache"
)

type fakeTransferAPI struct {
	transfers []gateway.Transfer
	listCalls int
	created   [][]gateway.TransferForm
}

func (f *fakeTransferAPI) Transfers(ctx context.Context, branchID string) ([]gateway.Transfer, error) {
	f.listCalls++
	return f.transfers, nil
}

func (f *fakeTransferAPI) CreateTransfers(ctx context.Context, transfers []gateway.TransferForm) error {
	f.created = append(f.created, transfers)
	return nil
}

func TestTransfersGroups(t *testing.T) {
	ctx := context.Background()
	api := &fakeTransferAPI{transfers: []gateway.Transfer{
		{ID: "T1", MedicineName: "paracetamol", Quantity: 10, ToBranchID: "B1"},
		{ID: "T2", MedicineName: "Aspirin", Quantity: 5, ToBranchID: "B1"},
		{ID: "T3", MedicineName: "paracetamol", Quantity: 7, ToBranchID: "B2"},
	}}
	page := NewTransfersPage(api, Options{User: branchUser()})
	require.NoError(t, page.Load(ctx))

	groups := page.Groups()
	require.Len(t, groups, 2)
	require.Equal(t, "Aspirin", groups[0].MedicineName)
	require.Equal(t, 5, groups[0].Total)
	require.Equal(t, "paracetamol", groups[1].MedicineName)
	require.Equal(t, 17, groups[1].Total)
	require.Len(t, groups[1].Entries, 2)
}

func TestTransfersGroupsEmpty(t *testing.T) {
	page := NewTransfersPage(&fakeTransferAPI{}, Options{User: branchUser()})
	require.Empty(t, page.Groups())
}

func TestTransfersCreateInvalidatesAndReloads(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()
	require.NoError(t, store.Set(ctx, "medicines:B1", []byte(`[]`), 0))

	api := &fakeTransferAPI{}
	page := NewTransfersPage(api, Options{Cache: store, User: branchUser()})
	require.NoError(t, page.Load(ctx))

	forms := []gateway.TransferForm{{MedicineID: "M1", MedicineName: "Aspirin", Quantity: 3, ToBranchID: "B1"}}
	require.NoError(t, page.Create(ctx, forms))
	require.Len(t, api.created, 1)
	require.Equal(t, 2, api.listCalls, "create must refetch the list")

	_, ok, err := store.Get(ctx, "medicines:B1")
	require.NoError(t, err)
	require.False(t, ok, "stock moved, so the medicines list is invalidated")
}
