package dpd

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"
)

const defaultTimeout = 30 * time.Second

// Client talks to the DPD DIS SOAP services. Each call selects the stage or
// production endpoint from the staging flag carried with its credentials, so
// a change to the stored carrier configuration takes effect without a
// restart; everything else about the contract lives in the operations table.
type Client struct {
	httpc     *http.Client
	endpoints map[string]string // test overrides, keyed by operation
	log       zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithEndpoint overrides the URL for a single operation. Intended for tests
// against an httptest server.
func WithEndpoint(op, url string) Option {
	return func(c *Client) { c.endpoints[op] = url }
}

// New creates a Client.
func New(log zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		httpc:     &http.Client{Timeout: defaultTimeout},
		endpoints: make(map[string]string),
		log:       log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) url(op string, staging bool) string {
	if u, ok := c.endpoints[op]; ok {
		return u
	}
	spec := operations[op]
	if staging {
		return spec.stageURL
	}
	return spec.liveURL
}

// call posts a SOAP request and returns the parsed response document.
// Non-200 responses are mapped to *Fault (structured SOAP fault), to
// *StatusError (operation-specific error fields), or to a generic error with
// the raw payloads logged at info level when neither can be extracted.
func (c *Client) call(ctx context.Context, op string, staging bool, reqDoc *etree.Document) (*etree.Document, error) {
	encoded, err := reqDoc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("dpd %s: encode request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(op, staging), bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("dpd %s: new request: %w", op, err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=UTF-8")
	req.Header.Set("Content-Length", strconv.Itoa(len(encoded)))
	req.Header.Set("SOAPAction", operations[op].soapAction)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dpd %s: %w", op, err)
	}
	defer resp.Body.Close()

	respDoc := etree.NewDocument()
	_, readErr := respDoc.ReadFrom(resp.Body)

	if resp.StatusCode != http.StatusOK {
		if readErr != nil {
			c.log.Info().Str("operation", op).Int("status", resp.StatusCode).
				Bytes("request", encoded).Msg("unparseable carrier error response")
			return nil, fmt.Errorf("dpd %s: an error has occured", op)
		}
		return nil, c.extractError(op, encoded, respDoc)
	}
	if readErr != nil {
		return nil, fmt.Errorf("dpd %s: decode response: %w", op, readErr)
	}
	return respDoc, nil
}

// extractError turns a non-200 response document into the most specific
// error available.
func (c *Client) extractError(op string, request []byte, doc *etree.Document) error {
	if f := parseFault(op, doc); f != nil {
		return f
	}

	spec := operations[op]
	codeEl := doc.FindElement("//" + spec.errorCode)
	msgEl := doc.FindElement("//" + spec.errorMessage)
	if codeEl != nil && msgEl != nil {
		return &StatusError{Op: op, Code: codeEl.Text(), Message: msgEl.Text()}
	}

	raw, _ := doc.WriteToBytes()
	c.log.Info().Str("operation", op).
		Bytes("request", request).
		Bytes("response", raw).
		Msg("carrier error response without recognisable error fields")
	return fmt.Errorf("dpd %s: an error has occured", op)
}

// GetAuth performs the login operation and returns the issued session data.
func (c *Client) GetAuth(ctx context.Context, creds Credentials) (AuthResult, error) {
	doc, err := c.call(ctx, OpGetAuth, creds.Staging, authRequest(creds))
	if err != nil {
		return AuthResult{}, err
	}

	ret := doc.FindElement("//return")
	if ret == nil {
		return AuthResult{}, fmt.Errorf("dpd %s: response carries no return element", OpGetAuth)
	}
	return AuthResult{
		CustomerUID: childText(ret, "customerUid"),
		Depot:       childText(ret, "depot"),
		Token:       childText(ret, "authToken"),
	}, nil
}

// StoreOrders submits one shipment order and returns the produced label.
func (c *Client) StoreOrders(ctx context.Context, auth Auth, opts PrintOptions, order Order) (StoreOrdersResult, error) {
	doc, err := c.call(ctx, OpStoreOrders, auth.Staging, storeOrdersRequest(auth, opts, order))
	if err != nil {
		return StoreOrdersResult{}, err
	}

	pdf := doc.FindElement("//parcellabelsPDF")
	num := doc.FindElement("//parcelLabelNumber")
	if pdf == nil || num == nil {
		return StoreOrdersResult{}, fmt.Errorf("dpd %s: response carries no label data", OpStoreOrders)
	}
	return StoreOrdersResult{
		ParcelLabelNumber: num.Text(),
		LabelPDF:          pdf.Text(),
	}, nil
}

// GetTrackingData queries the parcel life cycle for a label number and
// returns the parsed status blocks in carrier order.
func (c *Client) GetTrackingData(ctx context.Context, auth Auth, parcelLabelNumber string) ([]StatusInfo, error) {
	doc, err := c.call(ctx, OpGetTrackingData, auth.Staging, trackingRequest(auth, parcelLabelNumber))
	if err != nil {
		return nil, err
	}

	var states []StatusInfo
	for _, info := range doc.FindElements("//statusInfo") {
		states = append(states, parseStatusInfo(info))
	}
	return states, nil
}

// FindParcelShops looks up parcel shops around a geographic point.
func (c *Client) FindParcelShops(ctx context.Context, auth Auth, lat, lng float64, limit int) ([]ParcelShop, error) {
	doc, err := c.call(ctx, OpFindParcelShops, auth.Staging, parcelShopsRequest(auth, lat, lng, limit))
	if err != nil {
		return nil, err
	}

	var shops []ParcelShop
	for _, shop := range doc.FindElements("//parcelShop") {
		shops = append(shops, ParcelShop{
			ID:       childText(shop, "parcelShopId"),
			Company:  childText(shop, "company"),
			Street:   childText(shop, "street"),
			HouseNo:  childText(shop, "houseNo"),
			ZipCode:  childText(shop, "zipCode"),
			City:     childText(shop, "city"),
			Country:  childText(shop, "isoCountryCode"),
			Distance: childText(shop, "distance"),
		})
	}
	return shops, nil
}

// parseStatusInfo maps one statusInfo block to a StatusInfo. The free-text
// note is the primary description joined with any important-item sub-notes
// by "/".
func parseStatusInfo(el *etree.Element) StatusInfo {
	info := StatusInfo{
		Status:   childText(el, "status"),
		Reached:  childText(el, "statusHasBeenReached") == "true",
		Current:  childText(el, "isCurrentStatus") == "true",
		Location: childText(el, "location/content"),
		Date:     childText(el, "date/content"),
	}

	notes := []string{childText(el, "description/content/content")}
	for _, item := range el.FindElements("importantItems/content") {
		notes = append(notes, childText(item, "content"))
	}
	info.ExtraInfo = strings.Join(notes, "/")
	return info
}

// childText returns the text of the element at path relative to el, or ""
// when the element is absent or empty.
func childText(el *etree.Element, path string) string {
	child := el.FindElement(path)
	if child == nil {
		return ""
	}
	return child.Text()
}
