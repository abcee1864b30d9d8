package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestProductJSONShape(t *testing.T) {
	product := Product{ID: 7, Name: "Mug", Price: 6.5, Stock: 3}

	raw, err := json.Marshal(product)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)

	for _, field := range []string{`"id":7`, `"name":"Mug"`, `"price":6.5`, `"stock":3`} {
		if !strings.Contains(body, field) {
			t.Errorf("expected %s in %s", field, body)
		}
	}
	// Unset relations stay out of the payload.
	if strings.Contains(body, `"category"`) || strings.Contains(body, `"category_id"`) {
		t.Errorf("expected empty category fields to be omitted, got %s", body)
	}
}

func TestProductJSONIncludesCategory(t *testing.T) {
	categoryID := uint(2)
	product := Product{
		ID:         7,
		Name:       "Mug",
		CategoryID: &categoryID,
		Category:   &Category{ID: categoryID, Name: "Kitchen"},
	}

	raw, err := json.Marshal(product)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"name":"Kitchen"`) {
		t.Errorf("expected preloaded category in payload, got %s", raw)
	}
}
