// internal/services/ai_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/brianstore/store-backend/internal/config"
	"github.com/brianstore/store-backend/internal/models"
)

// Canned responses used when the assistant is unconfigured, unreachable or silent.
const (
	MarketingConfigMissing = "Brian Store AI Config Missing. Please add AI_API_KEY."
	MarketingEmptyResponse = "Could not generate message."
	HealthOffline          = "Brian AI is in offline mode. Sync to get insights."
	HealthNormal           = "Systems Normal. No anomalies detected."
	HealthUnreachable      = "Brian AI is unable to connect to the cloud. \n• Monitor cash register manually.\n• Check physical stock for high-value items.\n• Internet connection required for deep analysis."
	ChatGreeting           = "Hello Chief. I am Brian. I am watching the store. How can I help you right now?"
	ChatEmptyResponse      = "I'm recalibrating my sensors. Please ask again."
	ChatConnectionError    = "Connection error. Please check your internet or API key."
)

var errRateLimited = errors.New("assistant rate limit exceeded")

// TextGenerator turns a prompt into plain text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AnthropicGenerator calls the Messages API with a single user turn.
type AnthropicGenerator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

func NewAnthropicGenerator(cfg config.AIConfig) *AnthropicGenerator {
	return &AnthropicGenerator{
		client:    anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     cfg.Model,
		maxTokens: int64(cfg.MaxTokens),
	}
}

func (g *AnthropicGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	msg, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: g.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm api call: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

// AIService produces advisory text about the store. It never returns an error:
// every failure is replaced by a canned response.
type AIService struct {
	generator TextGenerator
	timeout   time.Duration
	limiter   *rate.Limiter
	log       *logrus.Entry
}

func NewAIService(cfg *config.Config) *AIService {
	var generator TextGenerator
	if cfg.AIEnabled() {
		generator = NewAnthropicGenerator(cfg.AI)
	}
	return NewAIServiceWithGenerator(generator, cfg.AI)
}

// NewAIServiceWithGenerator wires an explicit generator; nil means offline.
func NewAIServiceWithGenerator(generator TextGenerator, cfg config.AIConfig) *AIService {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), cfg.RequestsPerMinute)
	}

	return &AIService{
		generator: generator,
		timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
		limiter:   limiter,
		log:       logrus.WithField("component", "ai"),
	}
}

func (s *AIService) Enabled() bool {
	return s.generator != nil
}

func (s *AIService) generate(ctx context.Context, operation, prompt string) (string, error) {
	if !s.limiter.Allow() {
		return "", errRateLimited
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.generator.Generate(ctx, prompt)
	s.log.WithFields(logrus.Fields{
		"operation": operation,
		"duration":  time.Since(start).Milliseconds(),
		"ok":        err == nil,
	}).Debug("Assistant call finished")
	return strings.TrimSpace(text), err
}

// GenerateMarketingMessage writes a short promotional message for a product.
func (s *AIService) GenerateMarketingMessage(ctx context.Context, product models.Product) string {
	if !s.Enabled() {
		return MarketingConfigMissing
	}

	text, err := s.generate(ctx, "marketing", buildMarketingPrompt(product))
	if err != nil {
		s.log.WithError(err).WithField("product_id", product.ID).Warn("Brian AI Error (Marketing)")
		return fmt.Sprintf("Special Offer! %s is now available. Grab yours before stocks run out! - Brian", product.Name)
	}
	if text == "" {
		return MarketingEmptyResponse
	}
	return text
}

// AnalyzeStoreHealth summarises stockouts and staff risk for the owner.
func (s *AIService) AnalyzeStoreHealth(ctx context.Context, products []models.Product, staff []models.StaffMetric) string {
	if !s.Enabled() {
		return HealthOffline
	}

	text, err := s.generate(ctx, "health", buildHealthPrompt(products, staff))
	if err != nil {
		s.log.WithError(err).Warn("Brian AI Error (Health)")
		return HealthUnreachable
	}
	if text == "" {
		return HealthNormal
	}
	return text
}

// Chat answers a free-form question from the owner.
func (s *AIService) Chat(ctx context.Context, message string) string {
	if !s.Enabled() {
		return ChatConnectionError
	}

	text, err := s.generate(ctx, "chat", buildChatPrompt(message))
	if err != nil {
		s.log.WithError(err).Warn("Brian AI Error (Chat)")
		return ChatConnectionError
	}
	if text == "" {
		return ChatEmptyResponse
	}
	return text
}

func (s *AIService) Greeting() string {
	return ChatGreeting
}

func buildMarketingPrompt(product models.Product) string {
	return fmt.Sprintf(`You are Brian Store AI, an intelligent retail operating system.
The product "%s" is moving slowly and we have %d units left.
Write a short, punchy WhatsApp promotional message (max 2 sentences) to customers offering a discount to clear stock.
Use local, friendly, business-casual tone. Sign off as 'Brian'.`, product.Name, product.Stock)
}

func buildHealthPrompt(products []models.Product, staff []models.StaffMetric) string {
	var lowStock, riskyStaff []string
	for _, p := range products {
		if p.BelowMinimum() {
			lowStock = append(lowStock, p.Name)
		}
	}
	for _, m := range staff {
		if m.IsHighRisk() {
			riskyStaff = append(riskyStaff, m.Name)
		}
	}

	return fmt.Sprintf(`You are Brian Store AI, the owner's remote eyes and ears.
Here is the current snapshot of the store:
- Low Stock Items: %s
- High Risk Staff Members: %s

Provide a 3-bullet point executive summary for the "Chief" (the owner).
Focus on immediate actions to prevent revenue loss (Theft, Stockouts, Cash leaks).
Be direct, protective, and authoritative but helpful.`, joinOrNone(lowStock), joinOrNone(riskyStaff))
}

func buildChatPrompt(message string) string {
	return fmt.Sprintf(`System: You are Brian Store AI, a protective, data-driven, and business-savvy operating system for an African retail store owner.
Your goal is to stop theft, increase profit, and reduce the owner's stress.
Be concise, practical, and respectful. Call the user "Chief".
User: %s`, message)
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, ", ")
}
