package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"med-companion/internal/ports/ai"
)

var (
	ErrNotConfigured = errors.New("openai assistant not configured")
	ErrEmptyReply    = errors.New("openai returned empty reply")
)

const defaultModel = goopenai.GPT4oMini

// Config del asistente. APIKey vacía => no configurado (las llamadas
// devuelven ErrNotConfigured; el caller decide si es fatal).
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Assistant implementa ai.Assistant sobre la API de chat completions.
type Assistant struct {
	client *goopenai.Client
	model  string
}

func NewAssistant(cfg Config) *Assistant {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return &Assistant{}
	}

	cc := goopenai.DefaultConfig(cfg.APIKey)
	if strings.TrimSpace(cfg.BaseURL) != "" {
		cc.BaseURL = strings.TrimSpace(cfg.BaseURL)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	return &Assistant{
		client: goopenai.NewClientWithConfig(cc),
		model:  model,
	}
}

// NewFromEnv arma el asistente desde OPENAI_API_KEY / OPENAI_BASE_URL /
// OPENAI_MODEL.
func NewFromEnv() *Assistant {
	return NewAssistant(Config{
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		BaseURL: os.Getenv("OPENAI_BASE_URL"),
		Model:   os.Getenv("OPENAI_MODEL"),
	})
}

func (a *Assistant) IsConfigured() bool {
	return a != nil && a.client != nil
}

const checkSystemPrompt = `You are a clinical pharmacology assistant. Given a patient's medication list, identify dangerous drug-drug interactions.
Respond with ONLY a JSON object of this exact shape, no prose:
{"safe": bool, "interactions": [{"medications": ["name","name"], "severity": "low|moderate|high|severe", "description": "...", "recommendation": "..."}], "warnings": ["..."]}`

const chatSystemPrompt = `You are a friendly medication management assistant. Answer questions about the user's medications in plain language. You are not a doctor; recommend consulting one for medical decisions.
When the user asks you to add a medication to their list, include in your reply a JSON command of this exact shape:
{"action":"add_medication","medication":{"name":"...","dosage":"...","frequency":"...","description":"...","category":"prescription|otc|supplement|other"}}`

// CheckInteractions pide el análisis de seguridad y parsea el JSON de la
// respuesta. La respuesta del modelo es texto no confiable: se busca el
// primer objeto balanceado y cualquier cosa que no parsee es error (el
// caller decide si el check era oportunista o explícito).
func (a *Assistant) CheckInteractions(ctx context.Context, meds []ai.MedicationSummary, patient ai.PatientContext) (ai.InteractionReport, error) {
	if !a.IsConfigured() {
		return ai.InteractionReport{}, ErrNotConfigured
	}

	user, err := buildContextBlock(meds, patient)
	if err != nil {
		return ai.InteractionReport{}, err
	}

	reply, err := a.complete(ctx, []goopenai.ChatCompletionMessage{
		{Role: goopenai.ChatMessageRoleSystem, Content: checkSystemPrompt},
		{Role: goopenai.ChatMessageRoleUser, Content: user},
	})
	if err != nil {
		return ai.InteractionReport{}, err
	}

	report, err := parseReport(reply)
	if err != nil {
		return ai.InteractionReport{}, fmt.Errorf("parse interaction report: %w", err)
	}
	return report, nil
}

// Chat responde un turno de conversación con el historial + el contexto
// de medicamentos del usuario. Devuelve el texto crudo: el extractor del
// dominio chat se encarga de limpiarlo.
func (a *Assistant) Chat(ctx context.Context, turns []ai.ChatTurn, meds []ai.MedicationSummary, patient ai.PatientContext) (string, error) {
	if !a.IsConfigured() {
		return "", ErrNotConfigured
	}

	contextBlock, err := buildContextBlock(meds, patient)
	if err != nil {
		return "", err
	}

	msgs := make([]goopenai.ChatCompletionMessage, 0, len(turns)+2)
	msgs = append(msgs, goopenai.ChatCompletionMessage{
		Role:    goopenai.ChatMessageRoleSystem,
		Content: chatSystemPrompt + "\n\n" + contextBlock,
	})
	for _, t := range turns {
		role := goopenai.ChatMessageRoleUser
		if t.Role == "assistant" {
			role = goopenai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, goopenai.ChatCompletionMessage{Role: role, Content: t.Content})
	}

	return a.complete(ctx, msgs)
}

func (a *Assistant) complete(ctx context.Context, msgs []goopenai.ChatCompletionMessage) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:    a.model,
		Messages: msgs,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyReply
	}
	return resp.Choices[0].Message.Content, nil
}

func buildContextBlock(meds []ai.MedicationSummary, patient ai.PatientContext) (string, error) {
	payload := struct {
		Medications []ai.MedicationSummary `json:"medications"`
		Patient     ai.PatientContext      `json:"patient"`
	}{
		Medications: meds,
		Patient:     patient,
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return "Current context:\n" + string(b), nil
}

// parseReport extrae el primer objeto JSON balanceado del texto y lo
// decodifica como reporte.
func parseReport(reply string) (ai.InteractionReport, error) {
	start := strings.IndexByte(reply, '{')
	if start < 0 {
		return ai.InteractionReport{}, errors.New("no json object in reply")
	}

	depth := 0
	inString := false
	for i := start; i < len(reply); i++ {
		c := reply[i]
		if inString {
			if c == '\\' {
				i++
				continue
			}
			if c == '"' {
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				var report ai.InteractionReport
				if err := json.Unmarshal([]byte(reply[start:i+1]), &report); err != nil {
					return ai.InteractionReport{}, err
				}
				if report.Interactions == nil {
					report.Interactions = []ai.Finding{}
				}
				if report.Warnings == nil {
					report.Warnings = []string{}
				}
				return report, nil
			}
		}
	}

	return ai.InteractionReport{}, errors.New("unbalanced json object in reply")
}
