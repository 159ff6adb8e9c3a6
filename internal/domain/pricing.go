package domain

import "github.com/shopspring/decimal"

// PriceBreakdown is the derived (never persisted) pricing of a cart snapshot.
// The convenience fee is a percentage of the service subtotal; tax is charged
// on the convenience fee only, because the subtotal is settled at the salon
// and never moves through the platform payment rail.
type PriceBreakdown struct {
	ServiceSubtotal     decimal.Decimal
	ConvenienceFee      decimal.Decimal
	Tax                 decimal.Decimal
	AmountPayableOnline decimal.Decimal // ConvenienceFee + Tax
	AmountPayableSalon  decimal.Decimal // ServiceSubtotal
}

// OnlineAmountMinorUnits returns the online-payable amount in minor currency
// units (paise), the only representation the gateway accepts
func (p *PriceBreakdown) OnlineAmountMinorUnits() int64 {
	return p.AmountPayableOnline.Shift(2).IntPart()
}

// Equal returns true if two breakdowns price the cart identically
func (p *PriceBreakdown) Equal(other *PriceBreakdown) bool {
	return p.ServiceSubtotal.Equal(other.ServiceSubtotal) &&
		p.ConvenienceFee.Equal(other.ConvenienceFee) &&
		p.Tax.Equal(other.Tax) &&
		p.AmountPayableOnline.Equal(other.AmountPayableOnline) &&
		p.AmountPayableSalon.Equal(other.AmountPayableSalon)
}
