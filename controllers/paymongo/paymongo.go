package paymongoControllers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
)

const defaultAPIURL = "https://api.paymongo.com/v1/checkout_sessions"

// ErrConfigMissing means the gateway credentials are absent from the
// environment: a deployment fault, not a payment failure.
var ErrConfigMissing = errors.New("paymongo configuration missing")

// CheckoutLineItem is one hosted-checkout line, amount in centavos.
type CheckoutLineItem struct {
	Name     string `json:"name"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Quantity int    `json:"quantity"`
}

// CheckoutSessionResponse is the subset of the PayMongo response we use.
type CheckoutSessionResponse struct {
	Data struct {
		ID         string `json:"id"`
		Attributes struct {
			CheckoutURL     string `json:"checkout_url"`
			ReferenceNumber string `json:"reference_number"`
		} `json:"attributes"`
	} `json:"data"`
	Errors []struct {
		Code   string `json:"code"`
		Detail string `json:"detail"`
	} `json:"errors,omitempty"`
}

func getPayMongoConfig() (secretKey, apiURL, successURL, cancelURL string, err error) {
	secretKey = os.Getenv("PAYMONGO_SECRET_KEY")
	successURL = os.Getenv("PAYMONGO_SUCCESS_URL")
	cancelURL = os.Getenv("PAYMONGO_CANCEL_URL")
	apiURL = os.Getenv("PAYMONGO_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	if secretKey == "" || successURL == "" || cancelURL == "" {
		return "", "", "", "", ErrConfigMissing
	}
	return secretKey, apiURL, successURL, cancelURL, nil
}

// CreateCheckoutSession asks PayMongo for a hosted checkout session and
// returns its URL and session id. The order reference token rides along as
// the reference number and in the redirect URLs.
func CreateCheckoutSession(orderRef, description string, lines []CheckoutLineItem) (string, string, error) {
	secretKey, apiURL, successURL, cancelURL, err := getPayMongoConfig()
	if err != nil {
		return "", "", err
	}

	payload := map[string]interface{}{
		"data": map[string]interface{}{
			"attributes": map[string]interface{}{
				"line_items":           lines,
				"payment_method_types": []string{"card", "gcash", "paymaya"},
				"reference_number":     orderRef,
				"description":          description,
				"success_url":          fmt.Sprintf("%s?ref=%s", successURL, orderRef),
				"cancel_url":           fmt.Sprintf("%s?ref=%s", cancelURL, orderRef),
				"send_email_receipt":   false,
				"show_line_items":      true,
			},
		},
	}

	jsonData, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", apiURL, bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(secretKey+":")))

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("failed to reach PayMongo: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", "", fmt.Errorf("paymongo API error (%d): %s", resp.StatusCode, string(body))
	}

	var sessionResp CheckoutSessionResponse
	if err := json.Unmarshal(body, &sessionResp); err != nil {
		return "", "", fmt.Errorf("failed to parse PayMongo response: %v", err)
	}
	if len(sessionResp.Errors) > 0 {
		return "", "", fmt.Errorf("paymongo error: %s", sessionResp.Errors[0].Detail)
	}
	if sessionResp.Data.Attributes.CheckoutURL == "" {
		return "", "", fmt.Errorf("paymongo returned empty checkout URL")
	}

	return sessionResp.Data.Attributes.CheckoutURL, sessionResp.Data.ID, nil
}
