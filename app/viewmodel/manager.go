package viewmodel

import (
	"context"

	"walletapp/app/accessory"
	"walletapp/app/feepolicy"
	"walletapp/app/models"
	"walletapp/app/resolver"
	"walletapp/pkg/money"
)

// Manager turns a transfer payload into the ordered display-row sequence
// of the confirmation screen. Every formatting failure degrades to a
// simpler, still-useful display; the screen never shows nothing.
type Manager struct {
	Resolver  resolver.Service
	FeePolicy feepolicy.Service
	Accessory accessory.Service
	Labels    map[string]Labels // nil means built-in labels
}

// BuildAmountRows produces the amount, fee and total rows. When the amount
// cannot be formatted for the locale, or the fee is absent, hidden by the
// policy or fails to format, a single raw "<symbol><amount>" row is produced
// instead. A total that does not format is silently omitted.
func (m *Manager) BuildAmountRows(ctx context.Context, payload *models.TransferPayload, locale string) []*models.DisplayRow {
	labels := labelsFor(m.Labels, locale)
	formatter := m.Resolver.FormatterFor(ctx, payload.TransferInfo.Asset)

	amount := payload.TransferInfo.Amount
	formattedAmount, ok := formatter.Format(locale, amount)
	if !ok {
		return []*models.DisplayRow{rawAmountRow(payload, labels)}
	}

	fee := m.FeePolicy.DecimalValue(payload.TransferInfo.Fee)
	if fee == nil {
		return []*models.DisplayRow{rawAmountRow(payload, labels)}
	}
	formattedFee, ok := formatter.Format(locale, *fee)
	if !ok {
		return []*models.DisplayRow{rawAmountRow(payload, labels)}
	}

	rows := []*models.DisplayRow{
		{
			Kind:    models.RowKindDetails,
			Title:   labels.Amount,
			Details: payload.AssetSymbol + formattedAmount,
		},
		{
			Kind:    models.RowKindDetails,
			Title:   m.FeePolicy.DisplayName(locale),
			Details: payload.AssetSymbol + formattedFee,
		},
	}

	if formattedTotal, ok := formatter.Format(locale, amount.Add(*fee)); ok {
		rows = append(rows, &models.DisplayRow{
			Kind:    models.RowKindDetails,
			Title:   labels.Total,
			Details: payload.AssetSymbol + formattedTotal,
		})
	}
	return rows
}

// BuildMainRows prepends the static hint row, appends the amount rows and,
// only when the payload carries free-text details, a details row.
func (m *Manager) BuildMainRows(ctx context.Context, payload *models.TransferPayload, locale string) []*models.DisplayRow {
	labels := labelsFor(m.Labels, locale)

	rows := []*models.DisplayRow{
		{Kind: models.RowKindDetails, Title: labels.Hint},
	}
	rows = append(rows, m.BuildAmountRows(ctx, payload, locale)...)

	if payload.TransferInfo.Details != "" {
		rows = append(rows, &models.DisplayRow{
			Kind:    models.RowKindDetails,
			Title:   labels.Details,
			Details: payload.TransferInfo.Details,
		})
	}
	return rows
}

// BuildAccessoryRow derives the "send to <name>" row from the receiver name.
func (m *Manager) BuildAccessoryRow(ctx context.Context, payload *models.TransferPayload, locale string) *models.DisplayRow {
	labels := labelsFor(m.Labels, locale)

	vm := m.Accessory.CreateViewModel(payload.ReceiverName, payload.ReceiverName, labels.SendTo)
	return &models.DisplayRow{
		Kind:    models.RowKindAccessory,
		Title:   vm.Title,
		Details: vm.Subtitle,
		Icon:    vm.Icon,
	}
}

func rawAmountRow(payload *models.TransferPayload, labels Labels) *models.DisplayRow {
	return &models.DisplayRow{
		Kind:    models.RowKindDetails,
		Title:   labels.Amount,
		Details: payload.AssetSymbol + money.Raw(payload.TransferInfo.Amount),
	}
}
