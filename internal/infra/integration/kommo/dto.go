package kommo

type fieldValue struct {
	Value    string `json:"value"`
	EnumCode string `json:"enum_code,omitempty"`
}

type customField struct {
	FieldCode string       `json:"field_code"`
	Values    []fieldValue `json:"values"`
}

type contactRequest struct {
	Name               string        `json:"name"`
	CustomFieldsValues []customField `json:"custom_fields_values"`
}

type tag struct {
	Name string `json:"name"`
}

type contactRef struct {
	ID int `json:"id"`
}

type leadEmbedded struct {
	Tags     []tag        `json:"tags,omitempty"`
	Contacts []contactRef `json:"contacts,omitempty"`
}

type leadRequest struct {
	Name     string       `json:"name"`
	StatusID int          `json:"status_id,omitempty"`
	Embedded leadEmbedded `json:"_embedded"`
}

type idRef struct {
	ID int `json:"id"`
}

// listResponse covers the _embedded envelope of the contacts and leads endpoints.
type listResponse struct {
	Embedded struct {
		Contacts []idRef `json:"contacts"`
		Leads    []idRef `json:"leads"`
	} `json:"_embedded"`
}
