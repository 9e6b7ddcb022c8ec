package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/andrii-maglovanyi/mandrii-sub001/internal/domain"
)

// CSVSummarizer flattens the outcome into section,item,value rows.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	o := report.Outcome

	rows := [][]string{
		{"Section", "Item", "Value"},
		{"timeline", "visa_category", string(o.VisaCategory)},
		{"timeline", "main_applicant_years", strconv.Itoa(o.MainApplicantYears)},
		{"timeline", "partner_years", optionalInt(o.PartnerYears)},
		{"timeline", "children_years", optionalInt(o.ChildrenYears)},
		{"timeline", "base_date", optionalDate(o.BaseDate)},
		{"timeline", "ilr_date", optionalDate(o.ILRDate)},
		{"timeline", "earliest_application_date", optionalDate(o.EarliestApplicationDate)},
		{"timeline", "insufficient_input", strconv.FormatBool(o.InsufficientInput)},
	}
	for _, a := range o.Adjustments {
		rows = append(rows, []string{"adjustment:" + string(a.Type), a.Reason, strconv.Itoa(a.Years)})
	}
	for _, a := range o.PartnerAdjustments {
		rows = append(rows, []string{"partner_adjustment:" + string(a.Type), a.Reason, strconv.Itoa(a.Years)})
	}
	for _, r := range o.Requirements {
		rows = append(rows, []string{"requirement", r.Text, strconv.FormatBool(r.Met)})
	}
	rows = append(rows, []string{"requirement", "all_requirements_met", strconv.FormatBool(o.AllRequirementsMet)})
	for _, b := range o.BlockingRequirements {
		rows = append(rows, []string{"blocking", b.Text, string(b.Code)})
	}
	rows = append(rows,
		[]string{"blocking", "route_block", strconv.FormatBool(o.HasRouteBlock)},
		[]string{"blocking", "criminal_block", strconv.FormatBool(o.HasCriminalBlock)},
	)
	if o.Fees != nil {
		rows = append(rows, feeRows(o.Fees)...)
	}
	for _, warning := range o.Warnings {
		rows = append(rows, []string{"warning", warning, ""})
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func feeRows(f *domain.FeeEstimate) [][]string {
	return [][]string{
		{"fees", "headcount", strconv.Itoa(f.Headcount)},
		{"fees", "application_fee_total", f.ApplicationFeeTotal.StringFixed(2)},
		{"fees", "household_visa_remaining", f.HouseholdVisaRemaining.StringFixed(2)},
		{"fees", "household_surcharge_remaining", f.HouseholdSurchargeRemaining.StringFixed(2)},
		{"fees", "grand_total", f.GrandTotal.StringFixed(2)},
	}
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
