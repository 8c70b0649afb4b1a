package dal

// Fuel types accepted by the form
const (
	FuelPetrol   = "Petrol"
	FuelDiesel   = "Diesel"
	FuelCNG      = "CNG"
	FuelLPG      = "LPG"
	FuelElectric = "Electric"
)

// Transmission types accepted by the form
const (
	TransmissionManual    = "Manual"
	TransmissionAutomatic = "Automatic"
)

// Form defaults applied when a field is not supplied
const (
	DefaultAge          = 5
	DefaultKmDriven     = 40000
	DefaultMileage      = 18.0
	DefaultFuel         = FuelPetrol
	DefaultTransmission = TransmissionManual
)

// PredictionInput defines one prediction request
type PredictionInput struct {
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	Age          int     `json:"age" validate:"min=0,max=25"`
	KmDriven     int     `json:"km_driven" validate:"min=0,max=300000"`
	Mileage      float64 `json:"mileage" validate:"min=5,max=40"`
	Fuel         string  `json:"fuel" validate:"oneof=Petrol Diesel CNG LPG Electric"`
	Transmission string  `json:"transmission" validate:"oneof=Manual Automatic"`
}

// NewPredictionInput returns an input populated with the form defaults
func NewPredictionInput(brand, model string) PredictionInput {
	return PredictionInput{
		Brand:        brand,
		Model:        model,
		Age:          DefaultAge,
		KmDriven:     DefaultKmDriven,
		Mileage:      DefaultMileage,
		Fuel:         DefaultFuel,
		Transmission: DefaultTransmission,
	}
}

// Positions inside a FeatureVector. The trained model depends on this order.
const (
	FeatureAge = iota
	FeatureKmDriven
	FeatureMileage
	FeatureEngine
	FeaturePower
	FeatureSeats
	FeatureBrandScore
	FeatureDiesel
	FeatureElectric
	FeatureCNGOrLPG
	FeatureAutomatic

	FeatureCount
)

// FeatureNames lists the column name of every FeatureVector position
var FeatureNames = [FeatureCount]string{
	"age",
	"km_driven",
	"mileage",
	"engine",
	"max_power",
	"seats",
	"brand_score",
	"fuel_diesel",
	"fuel_electric",
	"fuel_cng_lpg",
	"transmission_automatic",
}

// FeatureVector defines the single row handed to the price model
type FeatureVector [FeatureCount]float64

// Slice returns the vector as a slice
func (fv FeatureVector) Slice() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, fv[:])
	return out
}

// Prediction defines a computed price together with its inputs
type Prediction struct {
	Input     PredictionInput `json:"input"`
	Specs     Specs           `json:"specs"`
	Features  FeatureVector   `json:"features"`
	Price     float64         `json:"price"`
	Formatted string          `json:"formatted"`
}
