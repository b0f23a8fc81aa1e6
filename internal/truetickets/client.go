// Package truetickets provides the HTTP client for the TrueTickets API.
package truetickets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/truetickets/quicksearch/internal/resolve"
)

// Default client-side rate limit, matching what the service tolerates from a
// single operator terminal.
const (
	defaultRPS   = 10
	defaultBurst = 20
)

// Config holds configuration for creating a client.
type Config struct {
	URL           string
	APIKey        string
	AllowInsecure bool
	Timeout       time.Duration
}

// Client talks to the TrueTickets API. It implements resolve.Lookup; every
// "no such entity" outcome is reported as an absent result, never an error.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Compile-time check that Client implements resolve.Lookup.
var _ resolve.Lookup = (*Client)(nil)

// New creates a new API client.
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, eris.New("API URL is required")
	}

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, eris.Wrap(err, "invalid API URL")
	}

	// Enforce HTTPS unless AllowInsecure is set
	if parsedURL.Scheme == "http" && !cfg.AllowInsecure {
		return nil, eris.New("HTTPS required for API connections\n\n" +
			"Options:\n" +
			"  1. Use HTTPS: [api] url = \"https://tickets.example.com\"\n" +
			"  2. For trusted networks: add 'allow_insecure = true' to [api] in config.toml")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, eris.Errorf("API URL scheme must be http or https, got: %s", parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return nil, eris.New("API URL must include a host (e.g. https://tickets.example.com)")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(defaultRPS), defaultBurst),
	}, nil
}

// get performs an authenticated GET request.
func (c *Client) get(ctx context.Context, path string, params url.Values) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "create request")
	}

	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "request failed")
	}

	return resp, nil
}

// apiError represents an error response from the API.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// handleErrorResponse reads an error response and returns an appropriate error.
func handleErrorResponse(resp *http.Response) error {
	var apiErr apiError
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
		return eris.Errorf("API error (%d): %s", resp.StatusCode, apiErr.Message)
	}
	return eris.Errorf("API error (%d)", resp.StatusCode)
}

// ============================================================================
// Wire Types
// ============================================================================

// phoneJSON matches the API phone number format.
type phoneJSON struct {
	Number         string `json:"number"`
	PrefersTexting *bool  `json:"prefers_texting,omitempty"`
	NoEnglish      *bool  `json:"no_english,omitempty"`
}

// customerJSON matches the API customer format.
type customerJSON struct {
	CustomerID   string      `json:"customer_id"`
	FullName     string      `json:"full_name"`
	Email        string      `json:"email,omitempty"`
	PhoneNumbers []phoneJSON `json:"phone_numbers"`
	CreatedAt    int64       `json:"created_at"`
	LastUpdated  int64       `json:"last_updated"`
}

// ticketJSON matches the API quick-search ticket format.
type ticketJSON struct {
	TicketNumber int64  `json:"ticket_number"`
	Subject      string `json:"subject"`
	CustomerID   string `json:"customer_id"`
	Status       string `json:"status"`
	Device       string `json:"device"`
	CreatedAt    int64  `json:"created_at"`
	CustomerName string `json:"customer_name"`
}

// ticketEnvelope matches the single-ticket lookup response. A null ticket
// means the number does not exist.
type ticketEnvelope struct {
	Ticket *ticketJSON `json:"ticket"`
}

func toCustomer(c customerJSON) resolve.Customer {
	phones := make([]string, len(c.PhoneNumbers))
	for i, p := range c.PhoneNumbers {
		phones[i] = p.Number
	}
	return resolve.Customer{
		ID:        c.CustomerID,
		Name:      c.FullName,
		Email:     c.Email,
		Phones:    phones,
		CreatedAt: time.Unix(c.CreatedAt, 0).UTC(),
	}
}

func toTicket(t ticketJSON) resolve.Ticket {
	return resolve.Ticket{
		Number:       t.TicketNumber,
		Subject:      t.Subject,
		Status:       t.Status,
		Device:       t.Device,
		CustomerID:   t.CustomerID,
		CustomerName: t.CustomerName,
		CreatedAt:    time.Unix(t.CreatedAt, 0).UTC(),
	}
}

func toCustomers(cs []customerJSON) []resolve.Customer {
	if len(cs) == 0 {
		return nil
	}
	customers := make([]resolve.Customer, len(cs))
	for i, c := range cs {
		customers[i] = toCustomer(c)
	}
	return customers
}

func toTickets(ts []ticketJSON) []resolve.Ticket {
	if len(ts) == 0 {
		return nil
	}
	tickets := make([]resolve.Ticket, len(ts))
	for i, t := range ts {
		tickets[i] = toTicket(t)
	}
	return tickets
}

// ============================================================================
// Lookup Interface Implementation
// ============================================================================

// CustomersByPhone finds customers whose phone number matches the digit string.
func (c *Client) CustomersByPhone(ctx context.Context, digits string) ([]resolve.Customer, error) {
	params := url.Values{}
	params.Set("phone_number", digits)
	return c.getCustomers(ctx, params)
}

// CustomersByName finds customers whose name contains every word of text.
func (c *Client) CustomersByName(ctx context.Context, text string) ([]resolve.Customer, error) {
	params := url.Values{}
	params.Set("query", text)
	return c.getCustomers(ctx, params)
}

func (c *Client) getCustomers(ctx context.Context, params url.Values) ([]resolve.Customer, error) {
	resp, err := c.get(ctx, "/customers", params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, handleErrorResponse(resp)
	}

	var cs []customerJSON
	if err := json.NewDecoder(resp.Body).Decode(&cs); err != nil {
		return nil, eris.Wrap(err, "decode customers response")
	}
	return toCustomers(cs), nil
}

// TicketByNumber fetches a single ticket. It returns (nil, nil) when no
// ticket has that number.
func (c *Client) TicketByNumber(ctx context.Context, number int64) (*resolve.Ticket, error) {
	params := url.Values{}
	params.Set("number", strconv.FormatInt(number, 10))

	resp, err := c.get(ctx, "/tickets", params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, handleErrorResponse(resp)
	}

	var env ticketEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, eris.Wrap(err, "decode ticket response")
	}
	if env.Ticket == nil {
		return nil, nil
	}
	ticket := toTicket(*env.Ticket)
	return &ticket, nil
}

// TicketsBySubject finds tickets whose subject contains every word of text.
// The service caps this at its first result page.
func (c *Client) TicketsBySubject(ctx context.Context, text string) ([]resolve.Ticket, error) {
	params := url.Values{}
	params.Set("query", text)

	resp, err := c.get(ctx, "/tickets", params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, handleErrorResponse(resp)
	}

	var ts []ticketJSON
	if err := json.NewDecoder(resp.Body).Decode(&ts); err != nil {
		return nil, eris.Wrap(err, "decode tickets response")
	}
	return toTickets(ts), nil
}

// RecentTickets returns the newest tickets, highest numbers first.
func (c *Client) RecentTickets(ctx context.Context) ([]resolve.Ticket, error) {
	resp, err := c.get(ctx, "/recent_tickets_list", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, handleErrorResponse(resp)
	}

	var ts []ticketJSON
	if err := json.NewDecoder(resp.Body).Decode(&ts); err != nil {
		return nil, eris.Wrap(err, "decode recent tickets response")
	}
	return toTickets(ts), nil
}
