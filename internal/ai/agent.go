package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is used when GEMINI_MODEL is empty.
const DefaultModel = "gemini-2.0-flash-001"

// maxToolRounds bounds how many times the model may call back into the tools
// before it has to answer.
const maxToolRounds = 5

// Assistant answers questions about the shop using Gemini function calling.
type Assistant struct {
	apiKey string
	model  string
	tools  *Tools
}

func NewAssistant(apiKey, model string, tools *Tools) *Assistant {
	if model == "" {
		model = DefaultModel
	}
	return &Assistant{apiKey: apiKey, model: model, tools: tools}
}

func (a *Assistant) systemPrompt(userMessage string) string {
	today := a.tools.now().Format("2006-01-02")
	return fmt.Sprintf(`SYSTEM: Today is %s. You are the assistant of a used-laptop shop.

	RULES:
	1. STOCK: If the user asks about a laptop (price, cost, quantity, status), call 'check_inventory'
	   and read the list. Do NOT ask the user for an ID.
	2. SALES: If the user asks for sales or revenue in a period, use 'get_sales_report'.
	3. PROFIT: For profit, expenses or totals, use 'get_business_summary'.
	4. COMMISSIONS: For unpaid commissions, use 'list_pending_commissions'.
	5. You cannot change any data. If asked to, say it must be done in the app.

	USER: %s`, today, userMessage)
}

// Ask runs one conversation turn, executing tool calls until the model
// answers in text.
func (a *Assistant) Ask(ctx context.Context, userMessage string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(a.apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel(a.model)
	model.Tools = declarations()
	session := model.StartChat()

	resp, err := session.SendMessage(ctx, genai.Text(a.systemPrompt(userMessage)))
	if err != nil {
		return "", err
	}

	for range maxToolRounds {
		calls := functionCalls(resp)
		if len(calls) == 0 {
			return replyText(resp), nil
		}

		results := make([]genai.Part, 0, len(calls))
		for _, call := range calls {
			out, err := a.tools.Call(ctx, call.Name, call.Args)
			if err != nil {
				return "", fmt.Errorf("tool %s: %w", call.Name, err)
			}
			log.Printf("🤖 Assistant called %s", call.Name)
			results = append(results, genai.FunctionResponse{Name: call.Name, Response: out})
		}

		resp, err = session.SendMessage(ctx, results...)
		if err != nil {
			return "", err
		}
	}
	return "", errors.New("assistant did not answer after repeated tool calls")
}

func functionCalls(resp *genai.GenerateContentResponse) []genai.FunctionCall {
	var calls []genai.FunctionCall
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if call, ok := part.(genai.FunctionCall); ok {
			calls = append(calls, call)
		}
	}
	return calls
}

func replyText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "I have no answer to that."
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	if b.Len() == 0 {
		return "I have no answer to that."
	}
	return b.String()
}
