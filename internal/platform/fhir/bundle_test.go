package fhir

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestBundle_Resources(t *testing.T) {
	raw := `{"resourceType":"Bundle","type":"searchset","entry":[
		{"resource":{"resourceType":"Patient","id":"1"}},
		{"fullUrl":"urn:x"},
		{"resource":{"resourceType":"Patient","id":"2"}}]}`
	var b Bundle
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	res := b.Resources()
	if len(res) != 3 {
		t.Fatalf("expected 3 resources, got %d", len(res))
	}
	if res[0]["id"] != "1" || res[2]["id"] != "2" {
		t.Errorf("order not preserved: %v", res)
	}
	if res[1] != nil {
		t.Errorf("expected nil resource for empty entry")
	}
}

func TestBundle_MissingEntry(t *testing.T) {
	var b Bundle
	if err := json.Unmarshal([]byte(`{"resourceType":"Bundle","type":"searchset","total":0}`), &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := b.Resources(); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
	var nilBundle *Bundle
	if len(nilBundle.Resources()) != 0 {
		t.Error("nil bundle should yield no resources")
	}
}

func TestNewSearchBundle(t *testing.T) {
	b := NewSearchBundle([]map[string]interface{}{
		{"resourceType": "Patient", "id": "abc"},
		{"resourceType": "Patient"},
	})
	if b.Type != "searchset" || *b.Total != 2 {
		t.Errorf("unexpected bundle header %+v", b)
	}
	if b.Entry[0].FullURL != "Patient/abc" {
		t.Errorf("fullUrl = %q", b.Entry[0].FullURL)
	}
	if b.Entry[1].FullURL != "" {
		t.Errorf("expected empty fullUrl without id")
	}
}

func TestBundle_MalformedEntriesKeepTheirSlot(t *testing.T) {
	raw := `{"resourceType":"Bundle","type":"searchset","entry":[
		{"resource":{"resourceType":"Patient","id":"ok-1"}},
		{"resource":"garbage"},
		"not an entry",
		null,
		{"fullUrl":"Patient/ok-2","resource":{"resourceType":"Patient","id":"ok-2"}}]}`
	var b Bundle
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	res := b.Resources()
	if len(res) != 5 {
		t.Fatalf("expected 5 resources, got %d", len(res))
	}
	if res[0]["id"] != "ok-1" || res[4]["id"] != "ok-2" {
		t.Errorf("valid entries lost: %v", res)
	}
	for i := 1; i <= 3; i++ {
		if res[i] != nil {
			t.Errorf("entry %d: expected nil resource, got %v", i, res[i])
		}
	}
	if b.Entry[4].FullURL != "Patient/ok-2" {
		t.Errorf("fullUrl = %q", b.Entry[4].FullURL)
	}
}
