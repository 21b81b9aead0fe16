package payment

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const (
	sandboxBaseURL    = "https://app.sandbox.midtrans.com"
	productionBaseURL = "https://app.midtrans.com"
)

// Client talks to the Midtrans Snap API.
type Client struct {
	http      *resty.Client
	serverKey string
}

// NewClient creates a Snap client. The server key doubles as the basic-auth
// username, with an empty password, per the Midtrans API contract.
func NewClient(serverKey string, isProduction bool) *Client {
	baseURL := sandboxBaseURL
	if isProduction {
		baseURL = productionBaseURL
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetBasicAuth(serverKey, "")

	return &Client{
		http:      httpClient,
		serverKey: serverKey,
	}
}

// TransactionDetails identifies the order and its gross amount.
type TransactionDetails struct {
	OrderID     string `json:"order_id"`
	GrossAmount int64  `json:"gross_amount"`
}

// CustomerDetails carries the donor identity shown on the hosted checkout.
type CustomerDetails struct {
	FirstName string `json:"first_name"`
	Phone     string `json:"phone"`
}

// ItemDetail is a single line item on the hosted checkout page.
type ItemDetail struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// TransactionParams is the Snap create-transaction request body.
// custom_field1..3 round-trip the donor name, phone and message so the
// asynchronous callback can recover them.
type TransactionParams struct {
	TransactionDetails TransactionDetails `json:"transaction_details"`
	CustomerDetails    CustomerDetails    `json:"customer_details"`
	ItemDetails        []ItemDetail       `json:"item_details"`
	CustomField1       string             `json:"custom_field1"`
	CustomField2       string             `json:"custom_field2"`
	CustomField3       string             `json:"custom_field3"`
}

// SnapTransaction is the hosted-checkout handle returned by Snap.
type SnapTransaction struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// NewTransactionParams builds the Snap request for a donation.
func NewTransactionParams(orderID, donaturName, phoneNumber, donaturMessage string, amount int64) TransactionParams {
	phone := phoneNumber
	if phone == "" || phone == "-" || strings.TrimSpace(phone) == "" {
		phone = "62000000000"
	}

	return TransactionParams{
		TransactionDetails: TransactionDetails{
			OrderID:     orderID,
			GrossAmount: amount,
		},
		CustomerDetails: CustomerDetails{
			FirstName: donaturName,
			Phone:     phone,
		},
		ItemDetails: []ItemDetail{
			{
				ID:       "donasi_custom",
				Name:     "Donasi Spesial",
				Price:    amount,
				Quantity: 1,
			},
		},
		CustomField1: donaturName,
		CustomField2: phoneNumber,
		CustomField3: donaturMessage,
	}
}

// CreateTransaction creates a Snap transaction and returns the checkout
// token plus the hosted-payment redirect URL.
func (c *Client) CreateTransaction(params TransactionParams) (*SnapTransaction, error) {
	var result SnapTransaction

	resp, err := c.http.R().
		SetHeader("Content-Type", "application/json").
		SetBody(params).
		SetResult(&result).
		Post("/snap/v1/transactions")
	if err != nil {
		return nil, fmt.Errorf("failed to create payment transaction: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("payment gateway returned %d: %s", resp.StatusCode(), resp.String())
	}

	return &result, nil
}

// GenerateOrderID returns a unique order id. The uuid suffix guards against
// two donations created within the same millisecond, and keeps one order id
// from ever being a prefix of another.
func GenerateOrderID() string {
	return fmt.Sprintf("ORDER-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
