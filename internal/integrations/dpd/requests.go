package dpd

import (
	"strconv"

	"github.com/beevik/etree"
)

const soapEnvNS = "http://schemas.xmlsoap.org/soap/envelope/"

// envelope builds the SOAP skeleton for an operation and returns the
// document plus the body element the operation payload goes into. When auth
// is non-nil, the authentication header block is included.
func envelope(op string, auth *Auth) (*etree.Document, *etree.Element) {
	spec := operations[op]

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	env := doc.CreateElement("soapenv:Envelope")
	env.CreateAttr("xmlns:soapenv", soapEnvNS)
	env.CreateAttr("xmlns:ns", spec.namespace)

	if auth != nil {
		header := env.CreateElement("soapenv:Header")
		a := header.CreateElement("ns:authentication")
		a.CreateElement("delisId").SetText(auth.DelisID)
		a.CreateElement("authToken").SetText(auth.Token)
		a.CreateElement("messageLanguage").SetText(auth.MessageLanguage)
	}

	body := env.CreateElement("soapenv:Body")
	payload := body.CreateElement("ns:" + op)
	return doc, payload
}

func authRequest(creds Credentials) *etree.Document {
	doc, payload := envelope(OpGetAuth, nil)
	payload.CreateElement("delisId").SetText(creds.DelisID)
	payload.CreateElement("password").SetText(creds.Password)
	payload.CreateElement("messageLanguage").SetText(creds.Language)
	return doc
}

func storeOrdersRequest(auth Auth, opts PrintOptions, order Order) *etree.Document {
	doc, payload := envelope(OpStoreOrders, &auth)

	po := payload.CreateElement("printOptions")
	po.CreateElement("printerLanguage").SetText(opts.PrinterLanguage)
	po.CreateElement("paperFormat").SetText(opts.PaperFormat)

	o := payload.CreateElement("order")

	general := o.CreateElement("generalShipmentData")
	general.CreateElement("sendingDepot").SetText(order.SendingDepot)
	general.CreateElement("product").SetText(order.Product)
	writeNameAddress(general.CreateElement("sender"), order.Sender)
	writeNameAddress(general.CreateElement("recipient"), order.Recipient)

	for _, p := range order.Parcels {
		parcel := o.CreateElement("parcels")
		parcel.CreateElement("customerReferenceNumber1").SetText(p.CustomerReference)
		parcel.CreateElement("weight").SetText(strconv.Itoa(p.Weight))
	}

	product := o.CreateElement("productAndServiceData")
	product.CreateElement("orderType").SetText(order.OrderType)

	return doc
}

func trackingRequest(auth Auth, parcelLabelNumber string) *etree.Document {
	doc, payload := envelope(OpGetTrackingData, &auth)
	payload.CreateElement("parcelLabelNumber").SetText(parcelLabelNumber)
	return doc
}

func parcelShopsRequest(auth Auth, lat, lng float64, limit int) *etree.Document {
	doc, payload := envelope(OpFindParcelShops, &auth)
	payload.CreateElement("latitude").SetText(strconv.FormatFloat(lat, 'f', -1, 64))
	payload.CreateElement("longitude").SetText(strconv.FormatFloat(lng, 'f', -1, 64))
	payload.CreateElement("limit").SetText(strconv.Itoa(limit))
	return doc
}

func writeNameAddress(el *etree.Element, a NameAddress) {
	el.CreateElement("name1").SetText(a.Name)
	el.CreateElement("street").SetText(a.Street)
	el.CreateElement("zipCode").SetText(a.ZipCode)
	el.CreateElement("city").SetText(a.City)
	el.CreateElement("state").SetText(a.State)
	el.CreateElement("country").SetText(a.CountryCode)
}
