package dto

import "encoding/json"

// SubscribeRequest — body POST /push-subscribe.
// Subscription dibiarkan mentah: struktur persisnya milik browser.
type SubscribeRequest struct {
	Subscription json.RawMessage `json:"subscription" validate:"required"`
}

// subscriptionEndpoint dipakai untuk mengintip field endpoint saja.
type subscriptionEndpoint struct {
	Endpoint string `json:"endpoint"`
}

// Endpoint mengambil endpoint dari payload subscription.
func (r *SubscribeRequest) Endpoint() string {
	var s subscriptionEndpoint
	if err := json.Unmarshal(r.Subscription, &s); err != nil {
		return ""
	}
	return s.Endpoint
}

// PushPayload — payload {title, body} yang dirender service worker.
type PushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}
