package dpd

import "math"

// Auth is the SOAP header block sent on every authenticated operation.
// Staging is not part of the wire header; it routes the call to the stage
// or production environment, following the stored carrier configuration.
type Auth struct {
	DelisID         string
	Token           string
	MessageLanguage string
	Staging         bool
}

// Credentials identifies the DPD account for the login operation. Staging
// routes the call the same way Auth.Staging does.
type Credentials struct {
	DelisID  string
	Password string
	Language string
	Staging  bool
}

// AuthResult is the session data returned by getAuth.
type AuthResult struct {
	CustomerUID string
	Depot       string
	Token       string
}

// NameAddress is a sender or recipient block in the order schema.
type NameAddress struct {
	Name        string
	Street      string
	ZipCode     string
	City        string
	State       string
	CountryCode string
}

// OrderParcel is one parcel line of a storeOrders request. Weight is in the
// carrier's unit: integer hundredths of a kilogram.
type OrderParcel struct {
	CustomerReference string
	Weight            int
}

// Order is the storeOrders payload for a single shipment.
type Order struct {
	SendingDepot string
	Product      string
	Sender       NameAddress
	Recipient    NameAddress
	Parcels      []OrderParcel
	OrderType    string
}

// PrintOptions selects the label output format.
type PrintOptions struct {
	PrinterLanguage string
	PaperFormat     string
}

// StoreOrdersResult carries the label produced by a successful storeOrders.
type StoreOrdersResult struct {
	ParcelLabelNumber string
	LabelPDF          string // base64 blob as delivered by the carrier
}

// StatusInfo is one parsed status block from a getTrackingData response.
type StatusInfo struct {
	Status    string
	Reached   bool
	Current   bool
	Location  string
	Date      string
	ExtraInfo string
}

// ParcelShop is one entry from the parcel shop finder.
type ParcelShop struct {
	ID       string
	Company  string
	Street   string
	HouseNo  string
	ZipCode  string
	City     string
	Country  string
	Distance string
}

// Weight converts kilograms to the carrier's integer-hundredths unit.
// Truncation, not rounding: 1.2345 kg becomes 123.
func Weight(kg float64) int {
	return int(math.Trunc(kg * 100))
}
