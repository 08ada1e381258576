// Package kommo pushes new leads into a Kommo CRM pipeline.
package kommo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

const (
	defaultTimeout = 10 * time.Second
	leadTag        = "leads_api"
)

var errContactNotFound = errors.New("contact not found")

type Client struct {
	apiToken string
	baseURL  string
	statusID int
	http     *http.Client
	logger   *zap.Logger
}

// NewClient targets baseURL, e.g. https://acme.kommo.com/api/v4. statusID
// selects the pipeline stage; zero lets Kommo pick the default one.
func NewClient(baseURL, apiToken string, statusID int, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		apiToken: apiToken,
		baseURL:  baseURL,
		statusID: statusID,
		http:     &http.Client{Timeout: defaultTimeout},
		logger:   logger.Named("kommo"),
	}
}

// NotifyNewLead creates the lead in Kommo, attached to the contact that owns
// its phone number (created when missing).
func (c *Client) NotifyNewLead(ctx context.Context, lead entity.Lead) error {
	_, err := c.CreateLead(ctx, lead)
	return err
}

func (c *Client) CreateLead(ctx context.Context, lead entity.Lead) (int, error) {
	contactID, err := c.findOrCreateContact(ctx, lead)
	if err != nil {
		return 0, fmt.Errorf("kommo contact: %w", err)
	}

	payload := []leadRequest{{
		Name:     fmt.Sprintf("%s - %s", lead.Name, lead.Company),
		StatusID: c.statusID,
		Embedded: leadEmbedded{
			Tags:     []tag{{Name: leadTag}},
			Contacts: []contactRef{{ID: contactID}},
		},
	}}

	var result listResponse
	if err := c.do(ctx, http.MethodPost, "/leads", payload, &result); err != nil {
		return 0, fmt.Errorf("kommo create lead: %w", err)
	}
	if len(result.Embedded.Leads) == 0 {
		return 0, errors.New("kommo create lead: empty response")
	}

	kommoID := result.Embedded.Leads[0].ID
	c.logger.Info("lead synced",
		zap.Int64("lead_id", lead.ID),
		zap.Int("kommo_lead_id", kommoID),
		zap.Int("kommo_contact_id", contactID),
	)
	return kommoID, nil
}

func (c *Client) findOrCreateContact(ctx context.Context, lead entity.Lead) (int, error) {
	contactID, err := c.findContactByPhone(ctx, lead.Phone)
	if err == nil {
		return contactID, nil
	}
	if !errors.Is(err, errContactNotFound) {
		return 0, err
	}
	return c.createContact(ctx, lead)
}

func (c *Client) findContactByPhone(ctx context.Context, phone string) (int, error) {
	var result listResponse
	if err := c.do(ctx, http.MethodGet, "/contacts?query="+url.QueryEscape(phone), nil, &result); err != nil {
		return 0, err
	}
	if len(result.Embedded.Contacts) == 0 {
		return 0, errContactNotFound
	}
	return result.Embedded.Contacts[0].ID, nil
}

func (c *Client) createContact(ctx context.Context, lead entity.Lead) (int, error) {
	payload := []contactRequest{{
		Name: lead.Name,
		CustomFieldsValues: []customField{
			{FieldCode: "PHONE", Values: []fieldValue{{Value: lead.Phone, EnumCode: "WORK"}}},
			{FieldCode: "EMAIL", Values: []fieldValue{{Value: lead.Email, EnumCode: "WORK"}}},
		},
	}}

	var result listResponse
	if err := c.do(ctx, http.MethodPost, "/contacts", payload, &result); err != nil {
		return 0, err
	}
	if len(result.Embedded.Contacts) == 0 {
		return 0, errors.New("create contact: empty response")
	}
	return result.Embedded.Contacts[0].ID, nil
}

// do sends body as JSON and decodes the answer into out. Kommo answers an
// empty search with 204.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	c.addAuthHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, raw)
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) addAuthHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
