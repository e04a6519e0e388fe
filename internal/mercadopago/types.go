package mercadopago

// Payment is the subset of the gateway's payment resource the ledger
// needs: status, payer reference and amount. Metadata is arbitrary
// checkout-supplied JSON, so values stay untyped.
type Payment struct {
	ID                int64          `json:"id"`
	Status            string         `json:"status"`
	TransactionAmount float64        `json:"transaction_amount"`
	ExternalReference string         `json:"external_reference"`
	Metadata          map[string]any `json:"metadata"`
}

// UserEmail resolves the payer's e-mail from the metadata, falling back
// to the external reference, as the checkout flow fills either.
func (p *Payment) UserEmail() string {
	if email, ok := p.Metadata["user_email"].(string); ok && email != "" {
		return email
	}
	return p.ExternalReference
}

// StatusApproved is the payment status that triggers a premium grant.
const StatusApproved = "approved"

// WebhookEvent is the notification body the gateway posts. Payment
// details are not trusted from the event itself; they are re-fetched
// through the API.
type WebhookEvent struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

// IsPaymentEvent reports whether the event concerns a payment.
func (e *WebhookEvent) IsPaymentEvent() bool {
	return e.Type == "payment" || e.Action == "payment.created" || e.Action == "payment.updated"
}
