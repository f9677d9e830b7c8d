package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ignatzorin/resource-sharing-backend/internal/models"
)

// Client реализует оракула соответствия через OpenAI-совместимый API.
// С точки зрения движка вызовы чистые: никаких побочных эффектов, ошибка
// доставки — обычная восстановимая ошибка.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient создаёт экземпляр клиента.
func NewClient(baseURL, model string) *Client {
	apiKey := os.Getenv("AI_API_KEY")

	if model == "" {
		model = "gpt-4o-mini"
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Analyze сравнивает описание ресурса с заявленными потребностями и
// возвращает текстовый разбор соответствия.
func (c *Client) Analyze(ctx context.Context, category, description, needsText string) (string, error) {
	messages := []map[string]string{
		{
			"role": "system",
			"content": "Ты помощник платформы обмена ресурсами. Кратко оцени, насколько ресурс " +
				"подходит под потребности человека: укажи совпадения, расхождения и общий вывод. " +
				"Отвечай на языке запроса, не более 150 слов.",
		},
		{
			"role": "user",
			"content": fmt.Sprintf("Категория ресурса: %s\nОписание ресурса: %s\nПотребности: %s",
				category, description, needsText),
		},
	}

	return c.chatCompletion(ctx, messages)
}

// Recommend подбирает из списка доступных ресурсов наиболее подходящие под
// потребности и локацию.
func (c *Client) Recommend(ctx context.Context, needsText, location string, resources []models.Resource) (string, error) {
	if len(resources) == 0 {
		return "Сейчас нет доступных ресурсов для подбора.", nil
	}

	var sb strings.Builder
	for i, res := range resources {
		fmt.Fprintf(&sb, "%d. [%s] %s — категория %s, локация %s, количество %d\n",
			i+1, res.ID, res.Description, res.Category, res.Location, res.Quantity)
	}

	messages := []map[string]string{
		{
			"role": "system",
			"content": "Ты помощник платформы обмена ресурсами. Из пронумерованного списка выбери " +
				"до трёх ресурсов, лучше всего подходящих под потребности и локацию, и объясни выбор. " +
				"Если ничего не подходит, скажи об этом прямо.",
		},
		{
			"role": "user",
			"content": fmt.Sprintf("Потребности: %s\nЛокация: %s\nДоступные ресурсы:\n%s",
				needsText, location, sb.String()),
		},
	}

	return c.chatCompletion(ctx, messages)
}

// chatCompletion выполняет запрос к OpenAI-совместимому API.
func (c *Client) chatCompletion(ctx context.Context, messages []map[string]string) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("ai: baseURL не задан")
	}

	payload := map[string]any{
		"model":       c.model,
		"messages":    messages,
		"max_tokens":  1024,
		"temperature": 0.7,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := c.baseURL
	if !strings.HasSuffix(url, "/") {
		url += "/"
	}
	url += "chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errorBody map[string]any
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return "", fmt.Errorf("ai: код ответа %d: %v", resp.StatusCode, errorBody)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("ai: пустой ответ")
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}
