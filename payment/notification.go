package payment

// NotificationCustomer is the optional customer block on a callback.
type NotificationCustomer struct {
	Phone     string `json:"phone"`
	FirstName string `json:"first_name"`
}

// Notification is the payload Midtrans POSTs to the callback endpoint.
type Notification struct {
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	OrderID           string `json:"order_id"`
	GrossAmount       string `json:"gross_amount"`
	SettlementGross   string `json:"settlement_gross"`
	TransactionFee    string `json:"transaction_fee"`
	PaymentType       string `json:"payment_type"`
	CustomField1      string `json:"custom_field1"`
	CustomField2      string `json:"custom_field2"`
	CustomField3      string `json:"custom_field3"`
	StatusCode        string `json:"status_code"`
	StatusMessage     string `json:"status_message"`

	CustomerDetails *NotificationCustomer `json:"customer_details,omitempty"`
}

// IsSuccessful reports whether a callback represents settled money.
// Midtrans marks card payments "capture" and confirms them via fraud_status;
// everything else settles with "settlement".
func IsSuccessful(transactionStatus, fraudStatus string) bool {
	return transactionStatus == "settlement" ||
		(transactionStatus == "capture" && fraudStatus == "accept")
}
