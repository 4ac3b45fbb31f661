package currency

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const (
	connectTimeout = 5 * time.Second
	readTimeout    = 5 * time.Second

	unavailableText = "Не удалось получить курс валют. Попробуйте позже."
)

// Service fetches exchange-rate payloads from the quote source and renders
// RUB-denominated reports. Every failure path degrades to a fixed
// user-facing message; Report never returns an error.
type Service struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

func NewService(baseURL, apiKey string, logger *zap.Logger) *Service {
	return &Service{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			// Bounds the whole exchange: connect plus response read.
			Timeout: connectTimeout + readTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: connectTimeout,
				}).DialContext,
				ResponseHeaderTimeout: readTimeout,
			},
		},
		logger: logger,
	}
}

// Report fetches the current rates and renders the report. Transport
// failures, non-200 responses and unreadable bodies all collapse to the
// fixed unavailable message.
func (s *Service) Report() string {
	payload, err := s.fetch()
	if err != nil {
		s.logger.Warn("Failed to fetch exchange rates",
			zap.Error(err),
			zap.String("url", s.baseURL))
		return unavailableText
	}
	return buildReport(payload, time.Now())
}

func (s *Service) fetch() (string, error) {
	resp, err := s.client.Get(s.baseURL + "?apikey=" + url.QueryEscape(s.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to request exchange rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("quote source returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read exchange rate payload: %w", err)
	}
	return string(body), nil
}
