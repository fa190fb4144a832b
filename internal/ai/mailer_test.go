package ai

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	req := OrderEmailRequest{
		SupplierName:  "Acme Beverages",
		SupplierEmail: "orders@acme.com",
		StoreName:     "Corner Market",
		OwnerName:     "Pat Owner",
		Products: []OrderEmailProduct{
			{Name: "Cola 330ml", Quantity: 24},
			{Name: "Lemonade", Quantity: 6},
		},
	}

	prompt := buildPrompt(req)

	for _, want := range []string{
		"Acme Beverages",
		"orders@acme.com",
		"Corner Market",
		"Pat Owner",
		"- Cola 330ml: 24 units",
		"- Lemonade: 6 units",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	// Empty urgency and tone fall back to defaults.
	if !strings.Contains(prompt, "professional") || !strings.Contains(prompt, "normal") {
		t.Errorf("prompt missing default tone/urgency:\n%s", prompt)
	}
}

func TestBuildPrompt_ToneAndUrgency(t *testing.T) {
	req := OrderEmailRequest{
		SupplierName: "Acme",
		StoreName:    "Corner Market",
		Products:     []OrderEmailProduct{{Name: "Cola", Quantity: 1}},
		Urgency:      "urgent",
		Tone:         "friendly",
	}

	prompt := buildPrompt(req)
	if !strings.Contains(prompt, "friendly") || !strings.Contains(prompt, "urgent") {
		t.Errorf("prompt missing requested tone/urgency:\n%s", prompt)
	}
}

func TestGenerateSchema(t *testing.T) {
	raw, err := json.Marshal(generateSchema())
	if err != nil {
		t.Fatalf("marshal schema: %v", err)
	}

	var schema map[string]any
	if err := json.Unmarshal(raw, &schema); err != nil {
		t.Fatalf("unmarshal schema: %v", err)
	}

	props, ok := schema["properties"].(map[string]any)
	if !ok {
		t.Fatalf("schema has no properties object: %s", raw)
	}
	for _, field := range []string{"subject", "body", "confidence"} {
		if _, ok := props[field]; !ok {
			t.Errorf("schema missing property %q", field)
		}
	}
	if add, ok := schema["additionalProperties"].(bool); !ok || add {
		t.Errorf("expected additionalProperties false, got %v", schema["additionalProperties"])
	}
}
