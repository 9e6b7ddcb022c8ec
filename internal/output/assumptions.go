package output

// DefaultAssumptions are printed with every report
var DefaultAssumptions = []string{
	"Timelines follow the earned settlement consultation; final policy may differ",
	"Only the single largest reduction and the single largest penalty are applied",
	"Fees are indicative 2025 rates and exclude biometrics and priority services",
	"Health surcharge is charged per whole year remaining on the current route",
	"Children are priced on the main applicant's remaining years",
	"Earliest application date is 28 days before the qualifying date",
}
