package cmd

const (
	RootCmdName  = "carprice"
	RootCmdShort = "Used car resale price predictor"
	RootCmdLong  = `carprice looks up the engine, power, seats and brand score of a car
from a brand/model specs table and asks a trained regression model for its
expected resale price.`

	ServeCmdName  = "serve"
	ServeCmdShort = "Start the HTTP API"
	ServeCmdLong  = `Start the HTTP API serving the brand and model selectors, the
auto-filled specs and price predictions.`

	PredictCmdName  = "predict"
	PredictCmdShort = "Predict the price of one car"
	PredictCmdLong  = `Predict the resale price of one car and print it.`

	SpecsCmdName  = "specs"
	SpecsCmdShort = "Inspect the specs table"
	SpecsCmdLong  = `Inspect or export the brand/model specs table.`

	SpecsListCmdName  = "list"
	SpecsListCmdShort = "List brands and models with their specs"

	SpecsExportCmdName  = "export"
	SpecsExportCmdShort = "Write the specs table in the pre-aggregated CSV format"
)
