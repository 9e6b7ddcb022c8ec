package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrii-maglovanyi/mandrii-sub001/internal/domain"
)

// FeeInput is everything the fee projection needs from a resolved outcome.
type FeeInput struct {
	VisaCategory  domain.VisaCategory
	MainYears     int
	PartnerYears  *int // nil when there is no non-national partner
	ChildrenCount int
	BaseDate      *time.Time // nil counts as zero elapsed time
	Now           time.Time
}

// FeeEstimator projects remaining visa, surcharge and settlement fees across renewal bands
type FeeEstimator struct {
	Fees domain.FeeRules
}

// NewFeeEstimator creates an estimator with the default fee tables
func NewFeeEstimator() *FeeEstimator {
	return NewFeeEstimatorWithRules(domain.DefaultFeeRules())
}

// NewFeeEstimatorWithRules creates an estimator with custom fee tables
func NewFeeEstimatorWithRules(fees domain.FeeRules) *FeeEstimator {
	return &FeeEstimator{Fees: fees}
}

// Estimate computes the household fee snapshot.
// Children are priced on the main applicant's remaining years; the partner on their own.
func (fe *FeeEstimator) Estimate(in FeeInput) domain.FeeEstimate {
	entry, found := fe.Fees.Lookup(in.VisaCategory)

	elapsed := decimal.Zero
	if in.BaseDate != nil {
		elapsed = decimal.NewFromFloat(YearsElapsed(*in.BaseDate, in.Now))
	}

	mainRemaining := remainingYears(in.MainYears, elapsed)
	perPersonVisa := visaCost(entry.Bands, mainRemaining)
	perPersonSurcharge := surchargeCost(entry.SurchargePerYear, mainRemaining)

	partnerVisa, partnerSurcharge := decimal.Zero, decimal.Zero
	headcount := 1
	if in.PartnerYears != nil {
		partnerRemaining := remainingYears(*in.PartnerYears, elapsed)
		partnerVisa = visaCost(entry.Bands, partnerRemaining)
		partnerSurcharge = surchargeCost(entry.SurchargePerYear, partnerRemaining)
		headcount++
	}

	children := decimal.NewFromInt(int64(max(in.ChildrenCount, 0)))
	headcount += max(in.ChildrenCount, 0)
	childrenVisa := perPersonVisa.Mul(children)
	childrenSurcharge := perPersonSurcharge.Mul(children)

	householdVisa := perPersonVisa.Add(partnerVisa).Add(childrenVisa)
	householdSurcharge := perPersonSurcharge.Add(partnerSurcharge).Add(childrenSurcharge)
	applicationTotal := fe.Fees.ApplicationFee.Mul(decimal.NewFromInt(int64(headcount)))

	return domain.FeeEstimate{
		Currency:                    fe.Fees.Currency,
		ApplicationFeePerPerson:     fe.Fees.ApplicationFee,
		Headcount:                   headcount,
		ApplicationFeeTotal:         applicationTotal,
		SurchargePerYear:            entry.SurchargePerYear,
		ElapsedYears:                elapsed.Round(2),
		MainRemainingYears:          mainRemaining.Round(2),
		PerPersonVisaRemaining:      perPersonVisa,
		PerPersonSurchargeRemaining: perPersonSurcharge,
		PartnerVisaRemaining:        partnerVisa,
		PartnerSurchargeRemaining:   partnerSurcharge,
		ChildrenVisaRemaining:       childrenVisa,
		ChildrenSurchargeRemaining:  childrenSurcharge,
		HouseholdVisaRemaining:      householdVisa,
		HouseholdSurchargeRemaining: householdSurcharge,
		GrandTotal:                  applicationTotal.Add(householdVisa).Add(householdSurcharge),
		UnderOneYear:                mainRemaining.LessThan(decimal.NewFromInt(1)),
		DefaultTableUsed:            !found,
	}
}

// remainingYears returns max(0, years - elapsed)
func remainingYears(years int, elapsed decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, decimal.NewFromInt(int64(years)).Sub(elapsed))
}

// SelectBand returns the first band covering the whole remaining years, falling back to the last band.
func SelectBand(bands []domain.FeeBand, remaining int) (domain.FeeBand, bool) {
	if len(bands) == 0 {
		return domain.FeeBand{}, false
	}
	for _, b := range bands {
		if b.AppliesTo(remaining) {
			return b, true
		}
	}
	return bands[len(bands)-1], true
}

func visaCost(bands []domain.FeeBand, remaining decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	if remaining.LessThan(one) {
		return decimal.Zero
	}
	whole := remaining.Ceil()
	band, ok := SelectBand(bands, int(whole.IntPart()))
	if !ok {
		return decimal.Zero
	}
	applications := decimal.Max(one, whole.Div(decimal.Max(band.DurationYears, one)).Ceil())
	return band.Fee.Mul(applications)
}

func surchargeCost(rate, remaining decimal.Decimal) decimal.Decimal {
	if remaining.LessThan(decimal.NewFromInt(1)) {
		return decimal.Zero
	}
	return rate.Mul(remaining.Ceil())
}
