// Package vision sends document images to an OpenAI vision model and returns
// the extracted materials list.
package vision

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/shopspring/decimal"

	"github.com/Spok95/site-inventory/internal/domain/errs"
)

// ExtractedMaterial is one {name, unit, quantity} triple as stated by the
// model. Unit is the raw label from the document, not yet normalized.
type ExtractedMaterial struct {
	Name     string          `json:"name"`
	Unit     string          `json:"unit"`
	Quantity decimal.Decimal `json:"quantity"`
}

// Analysis is the adapter's result. When the model reply is not valid JSON the
// raw text is kept with an error marker instead of being discarded.
type Analysis struct {
	Materials   []ExtractedMaterial
	RawResponse string
	ParseError  string
}

var mimeTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}

type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
	log     *slog.Logger
}

func New(apiKey, model string, timeout time.Duration, log *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is not configured")
	}
	if model == "" {
		model = openai.GPT4o
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		api:     openai.NewClient(apiKey),
		model:   model,
		timeout: timeout,
		log:     log,
	}, nil
}

// AnalyzeImage sends the image to the vision model and parses the materials
// list out of its JSON reply. A single attempt, no retries; failures surface
// as external errors.
func (c *Client) AnalyzeImage(ctx context.Context, fileName string, content []byte) (*Analysis, error) {
	ext := fileExtension(fileName)
	if ext == "pdf" {
		return nil, errs.Validation("PDF is not supported, convert the document to an image first")
	}
	mime, ok := mimeTypes[ext]
	if !ok {
		return nil, errs.Validation("unsupported file type %q, allowed: jpg, jpeg, png, gif, webp", ext)
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(content))

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: 2000,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: extractionPrompt},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: dataURL},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, errs.External("vision analysis", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errs.External("vision analysis", fmt.Errorf("empty completion"))
	}

	text := resp.Choices[0].Message.Content
	var payload struct {
		Materials []ExtractedMaterial `json:"materials"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		c.log.Warn("vision reply is not valid JSON", "file", fileName, "err", err)
		return &Analysis{
			RawResponse: text,
			ParseError:  "response is not valid JSON",
		}, nil
	}
	return &Analysis{Materials: payload.Materials}, nil
}

func fileExtension(fileName string) string {
	name := strings.ToLower(fileName)
	i := strings.LastIndex(name, ".")
	if i < 0 || i == len(name)-1 {
		return ""
	}
	return name[i+1:]
}

// extractionPrompt instructs the model to pull every material with its
// quantity and one of the eight canonical units. Kept in Polish because the
// analyzed documents are Polish invoices and delivery notes.
const extractionPrompt = `Przeanalizuj ten dokument/zdjęcie i wyciągnij WSZYSTKIE materiały (produkty, towary) z ich ilościami.

Zwróć dane WYŁĄCZNIE w następującym formacie JSON:
{"materials": [{"name": "nazwa materiału", "unit": "jednostka", "quantity": liczba}]}

Wymagania:
- Pole "name" - nazwa materiału dokładnie taka jak w dokumencie (wymagane).
- Pole "unit" MUSI być jedną z wartości: "meters", "kilograms", "cubic_meters", "cubic_centimeters", "cubic_millimeters", "liters", "pieces", "other".
  Przykłady: kg/kilogram -> "kilograms", g -> "kilograms", m/mb/km -> "meters", m3/m³ -> "cubic_meters", l/ml -> "liters", szt/sztuk -> "pieces".
- Pole "quantity" - ilość jako liczba; przecinek dziesiętny zamień na kropkę ("100,5" -> 100.5); jeśli brak ilości użyj 0.
- Kolumny mogą mieć różne nazwy (ilość, quantity, qty, nazwa, materiał, produkt, towar) - dopasuj je z kontekstu.
- Jeśli jednostka jest doklejona do liczby ("100kg", "50 szt", "2m3"), rozdziel ją.
- Jeśli w dokumencie nie ma żadnych materiałów, zwróć {"materials": []}.

Odpowiedź wyłącznie w formacie JSON, bez dodatkowych komentarzy.`
