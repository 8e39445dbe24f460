// Package dpd implements the client adapter for the DPD DIS SOAP web
// services: authentication, shipment order submission, parcel life cycle
// tracking, and the parcel shop finder.
//
// The SOAP contract (endpoints, SOAPAction values, error field names) is
// owned and versioned by the carrier; everything below mirrors it verbatim.
package dpd

// Operation names, used as keys into the endpoint table.
const (
	OpGetAuth         = "getAuth"
	OpStoreOrders     = "storeOrders"
	OpGetTrackingData = "getTrackingData"
	OpFindParcelShops = "findParcelShopsByGeoData"
)

// operation carries the per-operation constants of the carrier contract.
// Error responses name their code/message elements differently per service,
// hence the two field names.
type operation struct {
	stageURL     string
	liveURL      string
	soapAction   string
	namespace    string
	errorCode    string
	errorMessage string
}

var operations = map[string]operation{
	OpGetAuth: {
		stageURL:     "https://public-dis-stage.dpd.nl/Services/LoginService.svc",
		liveURL:      "https://public-dis.dpd.nl/Services/LoginService.svc",
		soapAction:   "http://dpd.com/common/service/LoginService/2.0/getAuth",
		namespace:    "http://dpd.com/common/service/types/LoginService/2.0",
		errorCode:    "errorCode",
		errorMessage: "errorMessage",
	},
	OpStoreOrders: {
		stageURL:     "https://public-dis-stage.dpd.nl/Services/ShipmentService.svc",
		liveURL:      "https://public-dis.dpd.nl/Services/ShipmentService.svc",
		soapAction:   "http://dpd.com/common/service/ShipmentService/3.1/storeOrders",
		namespace:    "http://dpd.com/common/service/types/ShipmentService/3.1",
		errorCode:    "faultcode",
		errorMessage: "Message",
	},
	OpGetTrackingData: {
		stageURL:     "https://public-dis-stage.dpd.nl/Services/ParcelLifeCycleService.svc",
		liveURL:      "https://public-dis.dpd.nl/Services/ParcelLifeCycleService.svc",
		soapAction:   "http://dpd.com/common/service/ParcelLifeCycleService/2.0/getTrackingData",
		namespace:    "http://dpd.com/common/service/types/ParcelLifeCycleService/2.0",
		errorCode:    "errorCode",
		errorMessage: "errorMessage",
	},
	OpFindParcelShops: {
		stageURL:     "https://public-dis-stage.dpd.nl/Services/ParcelShopFinderService.svc",
		liveURL:      "https://public-dis.dpd.nl/Services/ParcelShopFinderService.svc",
		soapAction:   "http://dpd.com/common/service/ParcelShopFinderService/3.0/findParcelShopsByGeoData",
		namespace:    "http://dpd.com/common/service/types/ParcelShopFinderService/3.0",
		errorCode:    "faultCodeField",
		errorMessage: "messageField",
	},
}

// TrackingLinkURL is the public parcel status page, keyed by label number.
const TrackingLinkURL = "https://tracking.dpd.de/parcelstatus?query=%s"
