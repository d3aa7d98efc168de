package fhir

import "github.com/goccy/go-json"

// Bundle represents a FHIR searchset Bundle as returned by the clinical API.
// Entry resources are kept as generic JSON objects; normalizers do the rest.
type Bundle struct {
	ResourceType string        `json:"resourceType"`
	ID           string        `json:"id,omitempty"`
	Type         string        `json:"type"`
	Total        *int          `json:"total,omitempty"`
	Link         []BundleLink  `json:"link,omitempty"`
	Entry        []BundleEntry `json:"entry,omitempty"`
}

type BundleLink struct {
	Relation string `json:"relation"`
	URL      string `json:"url"`
}

type BundleEntry struct {
	FullURL  string                 `json:"fullUrl,omitempty"`
	Resource map[string]interface{} `json:"resource,omitempty"`
}

// UnmarshalJSON accepts any entry shape. An entry that is not an object, or
// whose resource is not an object, decodes with a nil Resource so one bad
// entry never fails the whole Bundle.
func (e *BundleEntry) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		*e = BundleEntry{}
		return nil
	}
	e.FullURL = String(raw, "fullUrl")
	e.Resource, _ = raw["resource"].(map[string]interface{})
	return nil
}

// Resources returns the entry resources in bundle order. A missing entry
// list yields an empty slice. Entries without a resource are kept as nil so
// that callers see one item per entry.
func (b *Bundle) Resources() []map[string]interface{} {
	if b == nil {
		return []map[string]interface{}{}
	}
	out := make([]map[string]interface{}, 0, len(b.Entry))
	for _, e := range b.Entry {
		out = append(out, e.Resource)
	}
	return out
}

// NewSearchBundle wraps resources in a searchset Bundle with fullUrl set
// from each resource's type and id.
func NewSearchBundle(resources []map[string]interface{}) *Bundle {
	total := len(resources)
	entries := make([]BundleEntry, len(resources))
	for i, r := range resources {
		entries[i] = BundleEntry{Resource: r}
		rt, id := String(r, "resourceType"), String(r, "id")
		if rt != "" && id != "" {
			entries[i].FullURL = FormatReference(rt, id)
		}
	}
	return &Bundle{
		ResourceType: "Bundle",
		Type:         "searchset",
		Total:        &total,
		Entry:        entries,
	}
}
