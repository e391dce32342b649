package viewmodel

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walletapp/app/accessory"
	"walletapp/app/config"
	"walletapp/app/feepolicy"
	"walletapp/app/models"
	"walletapp/app/resolver"
)

func newTestManager() *Manager {
	return &Manager{
		Resolver: resolver.NewManager(config.Assets{
			Known:         []config.Asset{{Code: "USD", Digits: 2}},
			DefaultDigits: 2,
		}),
		FeePolicy: &feepolicy.Manager{Config: config.FeeDisplay{DefaultName: "Fee"}},
		Accessory: &accessory.Manager{},
	}
}

func newTestPayload(amount float64, fee *float64) *models.TransferPayload {
	payload := &models.TransferPayload{
		TransferInfo: models.TransferInfo{
			Asset:  "USD",
			Amount: decimal.NewFromFloat(amount),
		},
		AssetSymbol:  "$",
		ReceiverName: "Alice",
	}
	if fee != nil {
		d := decimal.NewFromFloat(*fee)
		payload.TransferInfo.Fee = &d
	}
	return payload
}

func floatPtr(f float64) *float64 { return &f }

func TestBuildAmountRows(t *testing.T) {
	m := newTestManager()

	rows := m.BuildAmountRows(context.Background(), newTestPayload(12.5, floatPtr(0.5)), "en")
	require.Len(t, rows, 3)

	assert.Equal(t, "Amount", rows[0].Title)
	assert.Equal(t, "$12.50", rows[0].Details)
	assert.Equal(t, "Fee", rows[1].Title)
	assert.Equal(t, "$0.50", rows[1].Details)
	assert.Equal(t, "Total", rows[2].Title)
	assert.Equal(t, "$13.00", rows[2].Details)

	for _, row := range rows {
		assert.Equal(t, models.RowKindDetails, row.Kind)
	}
}

func TestBuildAmountRowsFeeAbsent(t *testing.T) {
	m := newTestManager()

	rows := m.BuildAmountRows(context.Background(), newTestPayload(12.5, nil), "en")
	require.Len(t, rows, 1)
	assert.Equal(t, "$12.5", rows[0].Details)
}

func TestBuildAmountRowsFeeHiddenByPolicy(t *testing.T) {
	m := newTestManager()

	// a zero fee is not displayable, so the amount degrades to a raw row
	rows := m.BuildAmountRows(context.Background(), newTestPayload(12.5, floatPtr(0)), "en")
	require.Len(t, rows, 1)
	assert.Equal(t, "$12.5", rows[0].Details)
}

func TestBuildAmountRowsUnknownLocale(t *testing.T) {
	m := newTestManager()

	rows := m.BuildAmountRows(context.Background(), newTestPayload(12.5, floatPtr(0.5)), "not a locale!")
	require.Len(t, rows, 1)
	assert.Equal(t, "$12.5", rows[0].Details)
}

func TestBuildAmountRowsUnknownAssetUsesDefaultFormatter(t *testing.T) {
	m := newTestManager()

	payload := newTestPayload(12.5, floatPtr(0.5))
	payload.TransferInfo.Asset = "XYZ"

	rows := m.BuildAmountRows(context.Background(), payload, "en")
	require.Len(t, rows, 3)
	assert.Equal(t, "$12.50", rows[0].Details)
}

func TestBuildMainRows(t *testing.T) {
	m := newTestManager()

	payload := newTestPayload(12.5, floatPtr(0.5))
	payload.TransferInfo.Details = "rent for May"

	rows := m.BuildMainRows(context.Background(), payload, "en")
	require.Len(t, rows, 5)

	// the static hint is always the first row
	assert.Equal(t, "Please check the transfer details", rows[0].Title)
	assert.Equal(t, "rent for May", rows[4].Details)
}

func TestBuildMainRowsWithoutDetails(t *testing.T) {
	m := newTestManager()

	rows := m.BuildMainRows(context.Background(), newTestPayload(12.5, floatPtr(0.5)), "en")
	require.Len(t, rows, 4)
	assert.Equal(t, "Please check the transfer details", rows[0].Title)
	for _, row := range rows {
		assert.NotEqual(t, "Details", row.Title)
	}
}

func TestBuildAccessoryRow(t *testing.T) {
	m := newTestManager()

	row := m.BuildAccessoryRow(context.Background(), newTestPayload(12.5, nil), "en")
	require.NotNil(t, row)
	assert.Equal(t, models.RowKindAccessory, row.Kind)
	assert.Equal(t, "Send to Alice", row.Title)
}

func TestBuildRowsAreIdempotent(t *testing.T) {
	m := newTestManager()
	payload := newTestPayload(12.5, floatPtr(0.5))

	first := m.BuildMainRows(context.Background(), payload, "en")
	second := m.BuildMainRows(context.Background(), payload, "en")
	assert.Equal(t, first, second)
}
