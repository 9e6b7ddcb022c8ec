package output

import (
	"bytes"
	"fmt"
	"strings"
)

// ConsoleFormatter is the short plain-text summary
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	o := report.Outcome

	fmt.Fprintln(&buf, "SETTLEMENT TIMELINE SUMMARY")
	fmt.Fprintln(&buf, strings.Repeat("=", 40))
	fmt.Fprintln(&buf, report.Headline())
	fmt.Fprintf(&buf, "Main applicant: %d years\n", o.MainApplicantYears)
	if o.PartnerYears != nil {
		fmt.Fprintf(&buf, "Partner: %s\n", FormatYears(o.PartnerYears))
	}
	if o.ChildrenYears != nil {
		fmt.Fprintf(&buf, "Children: %s\n", FormatYears(o.ChildrenYears))
	}
	if o.HasDates() {
		fmt.Fprintf(&buf, "Settlement date: %s (apply from %s)\n", FormatDate(o.ILRDate), FormatDate(o.EarliestApplicationDate))
	}
	if o.Fees != nil {
		fmt.Fprintf(&buf, "Estimated total cost: %s\n", FormatCurrency(o.Fees.GrandTotal))
	}
	if len(o.BlockingRequirements) > 0 {
		fmt.Fprintln(&buf, "Blocking:")
		for _, b := range o.BlockingRequirements {
			fmt.Fprintf(&buf, "  - %s\n", b.Text)
		}
	}
	return buf.Bytes(), nil
}
