package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/ryabchinskiymike/taro-bot/internal/domain"
)

// truncateString обрезает строку до указанной длины
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Client - клиент генеративного API (текст + картинки)
type Client struct {
	cfg        *Config
	HTTPClient *http.Client
	Log        *slog.Logger
}

// NewClient создаёт новый клиент генеративного API
func NewClient(cfg *Config, log *slog.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		cfg: cfg,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		Log: log,
	}
}

// buildURL собирает полный URL метода модели (models/<model>:<method>)
func (c *Client) buildURL(model, method string) string {
	baseURL := strings.TrimSuffix(c.cfg.BaseURL, "/")
	return baseURL + "/" + path.Join(c.cfg.ApiVersion, "models", model) + ":" + method
}

// doRequest выполняет POST с JSON-телом и возвращает тело ответа
func (c *Client) doRequest(ctx context.Context, url string, reqBody interface{}) ([]byte, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации запроса: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.cfg.ApiKey)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.Log.Debug("gemini API returned non-200 status",
			"status_code", resp.StatusCode,
			"body_preview", truncateString(string(body), 200),
		)
		return nil, fmt.Errorf("gemini API error [status=%d]: %s", resp.StatusCode, truncateString(string(body), 500))
	}

	return body, nil
}

// GeneratePrediction запрашивает структурированное предсказание у текстовой модели.
// Ответ вне схемы (невалидный JSON, пустые поля) возвращается как ошибка.
func (c *Client) GeneratePrediction(ctx context.Context, card domain.Card, userName string) (*domain.Prediction, error) {
	req := generateContentRequest{
		Contents: []content{
			{Parts: []part{{Text: textPrompt(card, userName)}}},
		},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   predictionSchema(),
		},
	}

	body, err := c.doRequest(ctx, c.buildURL(c.cfg.TextModel, "generateContent"), req)
	if err != nil {
		return nil, err
	}

	var contentResp generateContentResponse
	if err := json.Unmarshal(body, &contentResp); err != nil {
		c.Log.Debug("failed to unmarshal generateContent response",
			"error", err,
			"body_preview", truncateString(string(body), 200),
		)
		return nil, fmt.Errorf("generateContent unmarshal failed: %w", err)
	}

	text := contentResp.Text()
	if text == "" {
		return nil, fmt.Errorf("generateContent returned no candidates")
	}

	var prediction domain.Prediction
	if err := json.Unmarshal([]byte(text), &prediction); err != nil {
		c.Log.Debug("model returned invalid prediction JSON",
			"error", err,
			"text_preview", truncateString(text, 200),
		)
		return nil, fmt.Errorf("prediction JSON parse failed: %w", err)
	}

	if err := prediction.Validate(); err != nil {
		return nil, fmt.Errorf("prediction incomplete: %w", err)
	}

	return &prediction, nil
}

// GenerateCardImage запрашивает иллюстрацию карты у Imagen.
// Возвращает base64-кодированный JPEG без префикса data URI.
func (c *Client) GenerateCardImage(ctx context.Context, card domain.Card) (string, error) {
	req := predictRequest{
		Instances: []predictInstance{
			{Prompt: imagePrompt(card)},
		},
		Parameters: predictParameters{
			SampleCount:    1,
			AspectRatio:    "3:4",
			OutputMimeType: "image/jpeg",
		},
	}

	body, err := c.doRequest(ctx, c.buildURL(c.cfg.ImageModel, "predict"), req)
	if err != nil {
		return "", err
	}

	var predictResp predictResponse
	if err := json.Unmarshal(body, &predictResp); err != nil {
		c.Log.Debug("failed to unmarshal predict response",
			"error", err,
			"body_preview", truncateString(string(body), 200),
		)
		return "", fmt.Errorf("predict unmarshal failed: %w", err)
	}

	if len(predictResp.Predictions) == 0 || predictResp.Predictions[0].BytesBase64Encoded == "" {
		return "", fmt.Errorf("predict returned no image bytes")
	}

	return predictResp.Predictions[0].BytesBase64Encoded, nil
}
