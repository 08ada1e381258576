package kommo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type fakeKommo struct {
	mu           sync.Mutex
	contacts     map[string]int
	leads        []leadRequest
	createdCount int
	failLeads    bool
}

func (f *fakeKommo) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.Header.Get("Authorization") != "Bearer token" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/contacts":
		id, ok := f.contacts[r.URL.Query().Get("query")]
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeIDs(w, "contacts", id)

	case r.Method == http.MethodPost && r.URL.Path == "/contacts":
		var body []contactRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.createdCount++
		id := 500 + f.createdCount
		f.contacts[body[0].CustomFieldsValues[0].Values[0].Value] = id
		writeIDs(w, "contacts", id)

	case r.Method == http.MethodPost && r.URL.Path == "/leads":
		if f.failLeads {
			http.Error(w, `{"title":"Bad Request"}`, http.StatusBadRequest)
			return
		}
		var body []leadRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.leads = append(f.leads, body...)
		writeIDs(w, "leads", 900+len(f.leads))

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func writeIDs(w http.ResponseWriter, kind string, id int) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"_embedded": map[string]interface{}{
			kind: []map[string]int{{"id": id}},
		},
	})
}

func newFake(t *testing.T) (*fakeKommo, *Client) {
	fake := &fakeKommo{contacts: map[string]int{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	return fake, NewClient(srv.URL, "token", 42, zaptest.NewLogger(t))
}

func sampleLead() entity.Lead {
	return entity.Lead{ID: 7, Name: "Ana", Company: "Acme", Email: "ana@acme.com", Phone: "11999999999"}
}

func TestCreateLeadCreatesContact(t *testing.T) {
	fake, client := newFake(t)

	id, err := client.CreateLead(context.Background(), sampleLead())
	require.NoError(t, err)
	assert.Equal(t, 901, id)

	assert.Equal(t, 1, fake.createdCount)
	require.Len(t, fake.leads, 1)
	assert.Equal(t, "Ana - Acme", fake.leads[0].Name)
	assert.Equal(t, 42, fake.leads[0].StatusID)
	assert.Equal(t, []contactRef{{ID: 501}}, fake.leads[0].Embedded.Contacts)
	assert.Equal(t, []tag{{Name: leadTag}}, fake.leads[0].Embedded.Tags)
}

func TestCreateLeadReusesContact(t *testing.T) {
	fake, client := newFake(t)
	fake.contacts["11999999999"] = 77

	require.NoError(t, client.NotifyNewLead(context.Background(), sampleLead()))

	assert.Equal(t, 0, fake.createdCount)
	require.Len(t, fake.leads, 1)
	assert.Equal(t, []contactRef{{ID: 77}}, fake.leads[0].Embedded.Contacts)
}

func TestCreateLeadError(t *testing.T) {
	fake, client := newFake(t)
	fake.failLeads = true

	_, err := client.CreateLead(context.Background(), sampleLead())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestCreateLeadUnauthorized(t *testing.T) {
	fake := &fakeKommo{contacts: map[string]int{}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	_, err := NewClient(srv.URL, "wrong", 0, nil).CreateLead(context.Background(), sampleLead())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
