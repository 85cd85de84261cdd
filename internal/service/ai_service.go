package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"quizgen_backend/internal/config"
	"quizgen_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
)

// ErrGenerationUnavailable 重试耗尽后对外的统一错误，
// 原始错误通过 errors.Unwrap 获取
var ErrGenerationUnavailable = errors.New("generation unavailable")

type GenerationUnavailableError struct {
	Attempts int
	Last     error
}

func (e *GenerationUnavailableError) Error() string {
	return fmt.Sprintf("generation failed after %d attempts: %v", e.Attempts, e.Last)
}

func (e *GenerationUnavailableError) Unwrap() error {
	return ErrGenerationUnavailable
}

// TextGenerator 文本生成能力的抽象，测试时可替换
type TextGenerator interface {
	Generate(prompt string) (string, error)
}

// BackoffPolicy 重试策略，Sleep 可注入以便测试用假时钟
type BackoffPolicy struct {
	MaxAttempts int
	Delay       func(attempt int) time.Duration
	Sleep       func(d time.Duration)
}

// DefaultBackoff 3 次尝试，指数退避 1s、2s、4s
func DefaultBackoff() BackoffPolicy {
	return BackoffPolicy{
		MaxAttempts: 3,
		Delay: func(attempt int) time.Duration {
			return time.Duration(1<<attempt) * time.Second
		},
		Sleep: time.Sleep,
	}
}

// AIService 外部生成服务的无状态客户端，可被并发请求共享
type AIService struct {
	config  config.AIConfig
	client  *http.Client
	backoff BackoffPolicy
}

func NewAIService(cfg config.AIConfig) *AIService {
	backoff := DefaultBackoff()
	if cfg.MaxRetries > 0 {
		backoff.MaxAttempts = cfg.MaxRetries
	}
	return &AIService{
		config:  cfg,
		client:  &http.Client{Timeout: cfg.HTTPTimeout},
		backoff: backoff,
	}
}

// NewAIServiceWithBackoff 测试入口，注入自定义重试策略
func NewAIServiceWithBackoff(cfg config.AIConfig, backoff BackoffPolicy) *AIService {
	s := NewAIService(cfg)
	s.backoff = backoff
	return s
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate 调用模型生成文本，空响应视为失败，
// 每次失败后按退避策略等待再重试
func (s *AIService) Generate(prompt string) (string, error) {
	var lastErr error

	for attempt := 0; attempt < s.backoff.MaxAttempts; attempt++ {
		text, err := s.chatOnce(prompt)
		if err == nil && text != "" {
			return text, nil
		}
		if err == nil {
			err = errors.New("empty response from model")
		}
		lastErr = err

		logger.Log.Warn("generation attempt failed",
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)

		if attempt < s.backoff.MaxAttempts-1 {
			s.backoff.Sleep(s.backoff.Delay(attempt))
		}
	}

	return "", &GenerationUnavailableError{Attempts: s.backoff.MaxAttempts, Last: lastErr}
}

func (s *AIService) chatOnce(prompt string) (string, error) {
	reqBody := ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []AIChatMessage{
			{Role: "user", Content: prompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	if result.Error != nil {
		return "", errors.New(result.Error.Message)
	}

	if len(result.Choices) == 0 {
		return "", errors.New("AI returned no choices")
	}

	return result.Choices[0].Message.Content, nil
}
