package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"NewsAlerts/internal/config"
	"NewsAlerts/internal/domain"
	"NewsAlerts/internal/ports"
	"NewsAlerts/internal/textnorm"
)

const (
	defaultBatchSize = 60
	defaultModel     = "gpt-4o-mini"
)

var (
	// ErrDisabled is returned when the classifier has no API key.
	ErrDisabled = errors.New("classifier disabled: missing API key")

	replyArray = regexp.MustCompile(`(?s)\[\s*\{.*?\}\s*\]`)
)

// Classifier labels association records through an OpenAI-compatible chat
// completion endpoint.
type Classifier struct {
	client    openai.Client
	model     string
	batchSize int
	limiter   *rate.Limiter
	enabled   bool
	logger    *slog.Logger
}

var _ ports.Classifier = (*Classifier)(nil)

type classifyCase struct {
	ID          string   `json:"id"`
	Company     string   `json:"empresa"`
	Industries  []string `json:"industrias"`
	IsCompany   bool     `json:"es_empresa"`
	IsIndustry  bool     `json:"es_industria"`
	Kind        string   `json:"tipo"`
	Title       string   `json:"titulo"`
	Description string   `json:"descripcion"`
}

// NewClassifier builds a classifier from configuration. A nil httpClient
// gets one bounded by cfg.TimeoutSeconds.
func NewClassifier(cfg config.ClassifierConfig, httpClient *http.Client, logger *slog.Logger) *Classifier {
	if httpClient == nil {
		timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
		opts = append(opts, option.WithBaseURL(endpoint))
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &Classifier{
		client:    openai.NewClient(opts...),
		model:     model,
		batchSize: batch,
		limiter:   rate.NewLimiter(limit, 1),
		enabled:   strings.TrimSpace(cfg.APIKey) != "",
		logger:    logger,
	}
}

// Classify sends records in batches and returns the verdicts it could obtain.
// Failed batches contribute to the joined error and leave their ids out.
func (c *Classifier) Classify(ctx context.Context, records []domain.Association) ([]domain.Verdict, error) {
	if len(records) == 0 {
		return nil, nil
	}
	if !c.enabled {
		return nil, ErrDisabled
	}

	var (
		verdicts []domain.Verdict
		errs     []error
	)
	for start := 0; start < len(records); start += c.batchSize {
		end := min(start+c.batchSize, len(records))

		if err := c.limiter.Wait(ctx); err != nil {
			errs = append(errs, fmt.Errorf("batch %d-%d: %w", start, end, err))
			break
		}

		batch, err := c.classifyBatch(ctx, records[start:end])
		if err != nil {
			if c.logger != nil {
				c.logger.Warn("classification batch failed", "from", start, "to", end, "error", err)
			}
			errs = append(errs, fmt.Errorf("batch %d-%d: %w", start, end, err))
			continue
		}
		verdicts = append(verdicts, batch...)
	}

	return verdicts, errors.Join(errs...)
}

func (c *Classifier) classifyBatch(ctx context.Context, records []domain.Association) ([]domain.Verdict, error) {
	payload, err := json.Marshal(buildCases(records))
	if err != nil {
		return nil, fmt.Errorf("marshal cases: %w", err)
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPreamble + string(payload)),
		},
		Temperature: openai.Float(0),
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("chat completion returned no choices")
	}

	return parseVerdicts(resp.Choices[0].Message.Content)
}

func buildCases(records []domain.Association) []classifyCase {
	cases := make([]classifyCase, 0, len(records))
	for _, rec := range records {
		cs := classifyCase{
			ID:          rec.ID,
			Company:     rec.Company,
			Industries:  []string{},
			Title:       rec.Article.Title,
			Description: textnorm.StripHTML(rec.Article.Body),
		}
		if rec.Kind == domain.KindIndustry {
			cs.Industries = []string{rec.Entity}
			cs.IsIndustry = true
			cs.Kind = "industria"
		} else {
			cs.IsCompany = true
			cs.Kind = "empresa"
		}
		cases = append(cases, cs)
	}
	return cases
}

// parseVerdicts reads the first JSON array of objects in the reply.
func parseVerdicts(reply string) ([]domain.Verdict, error) {
	raw := strings.TrimSpace(reply)
	if match := replyArray.FindString(raw); match != "" {
		raw = match
	}
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("reply is not valid JSON: %.120q", raw)
	}
	parsed := gjson.Parse(raw)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("reply is not a JSON array: %.120q", raw)
	}

	var verdicts []domain.Verdict
	parsed.ForEach(func(_, item gjson.Result) bool {
		id := strings.TrimSpace(item.Get("id").String())
		if id == "" {
			return true
		}
		verdicts = append(verdicts, domain.Verdict{
			ID:       id,
			Category: domain.ParseCategory(item.Get("categoria").String()),
		})
		return true
	})
	return verdicts, nil
}
