package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"restock-agent/internal/core"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
)

// MailerService generates supplier-facing order emails from a session's
// per-supplier item group.
type MailerService interface {
	GenerateOrderEmail(ctx context.Context, req OrderEmailRequest) (*core.OrderEmail, error)

	// Model returns the model identifier used for generation, for reporting
	// alongside results.
	Model() string
}

// OrderEmailProduct is one (product, quantity) pair in an order request.
type OrderEmailProduct struct {
	Name     string
	Quantity int
}

// OrderEmailRequest carries everything the model needs to draft one
// supplier's order email.
type OrderEmailRequest struct {
	SupplierName  string
	SupplierEmail string
	StoreName     string
	OwnerName     string
	Products      []OrderEmailProduct
	Urgency       string // optional: e.g. "urgent"; empty means normal
	Tone          string // optional: e.g. "friendly", "formal"
}

// Mailer calls the OpenAI Responses API with a strict JSON schema so the
// output always parses into core.OrderEmail.
type Mailer struct {
	client *openai.Client
	model  string
}

// NewMailer constructs a Mailer. An empty model falls back to GPT-4o.
func NewMailer(apiKey, model string) *Mailer {
	if model == "" {
		model = string(shared.ChatModelGPT4o)
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Mailer{client: &client, model: model}
}

// Model returns the configured model identifier.
func (m *Mailer) Model() string {
	return m.model
}

// GenerateOrderEmail drafts one order email for a supplier group.
func (m *Mailer) GenerateOrderEmail(ctx context.Context, req OrderEmailRequest) (*core.OrderEmail, error) {
	if len(req.Products) == 0 {
		return nil, fmt.Errorf("order email request has no products")
	}

	prompt := buildPrompt(req)

	schemaStruct := generateSchema()
	schemaJSON, err := json.Marshal(schemaStruct)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(m.model),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "supplier_order_email",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("A restock order email to a supplier"),
				},
			},
		},
	}

	resp, err := m.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return nil, fmt.Errorf("empty response content")
	}

	var email core.OrderEmail
	if err := json.Unmarshal([]byte(content), &email); err != nil {
		return nil, fmt.Errorf("failed to parse completion: %w", err)
	}

	if err := email.Validate(); err != nil {
		return nil, fmt.Errorf("generated email failed validation: %w", err)
	}

	return &email, nil
}

// buildPrompt renders the order request into the generation prompt.
func buildPrompt(req OrderEmailRequest) string {
	var lines []string
	for _, p := range req.Products {
		lines = append(lines, fmt.Sprintf("- %s: %d units", p.Name, p.Quantity))
	}

	urgency := req.Urgency
	if urgency == "" {
		urgency = "normal"
	}
	tone := req.Tone
	if tone == "" {
		tone = "professional"
	}

	return fmt.Sprintf(`You are a purchasing assistant for the retail store %q, run by %s.
Write a restock order email to the supplier %s (%s).
Rules:
1. Plain text only, no markdown or HTML.
2. List every product with its exact quantity. Do not invent products, quantities, or prices.
3. Keep the tone %s and the urgency %s.
4. Sign off with the store name and owner name.
5. Provide a confidence score (0.0-1.0).

Products to order:
%s`,
		req.StoreName, req.OwnerName, req.SupplierName, req.SupplierEmail,
		tone, urgency, strings.Join(lines, "\n"))
}

func generateSchema() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v core.OrderEmail
	return reflector.Reflect(v)
}
