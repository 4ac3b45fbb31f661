package currency

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const samplePayload = `{"result":"success","base":"USD","rates":{"USD":1.0,"EUR":0.85,"GBP":0.75,"RUB":75.5,"JPY":110.2,"CNY":6.45}}`

func TestParseRate(t *testing.T) {
	tests := []struct {
		code string
		want float64
	}{
		{"EUR", 0.85},
		{"RUB", 75.5},
		{"USD", 1.0},
		{"JPY", 110.2},
		{"CHF", 0}, // absent code parses as 0
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseRate(samplePayload, tt.code), "code %s", tt.code)
	}
}

func TestParseRate_Malformed(t *testing.T) {
	assert.Equal(t, 0.0, ParseRate("", "EUR"))
	assert.Equal(t, 0.0, ParseRate("not json at all", "EUR"))
	assert.Equal(t, 0.0, ParseRate(`{"EUR":"abc"}`, "EUR"))
}

func TestQuotes(t *testing.T) {
	usdToRub := ParseRate(samplePayload, "RUB")
	quotes := Quotes(samplePayload, usdToRub)

	byCode := make(map[string]float64, len(quotes))
	order := make([]string, 0, len(quotes))
	for _, q := range quotes {
		byCode[q.Symbol] = q.PerRub
		order = append(order, q.Symbol)
	}

	// USD uses the cross rate directly, others invert through it.
	assert.InDelta(t, 75.5, byCode["USD"], 1e-9)
	assert.InDelta(t, 75.5/0.85, byCode["EUR"], 1e-9)
	assert.InDelta(t, 75.5/110.2, byCode["JPY"], 1e-9)

	// Codes missing from the payload are omitted, order is fixed.
	assert.Equal(t, []string{"USD", "EUR", "GBP", "JPY", "CNY"}, order)
}

func TestQuotes_OmitsNonPositive(t *testing.T) {
	payload := `{"USD":1.0,"EUR":0,"GBP":0.75,"RUB":75.5}`
	quotes := Quotes(payload, 75.5)

	for _, q := range quotes {
		assert.NotEqual(t, "EUR", q.Symbol)
	}
}

func TestBuildReport(t *testing.T) {
	now := time.Date(2024, 3, 7, 14, 5, 0, 0, time.Local)
	report := buildReport(samplePayload, now)

	assert.Contains(t, report, "Курсы валют к RUB")
	assert.Contains(t, report, "USD/RUB: 75.50")
	assert.Contains(t, report, fmt.Sprintf("EUR/RUB: %.2f", 75.5/0.85))
	assert.Contains(t, report, "Данные на 07.03.2024 14:05")

	// Absent codes produce no line at all.
	assert.NotContains(t, report, "CHF")

	// One line per included code plus header and timestamp.
	assert.Equal(t, 5, strings.Count(report, "/RUB:"))
}

func TestBuildReport_NoRubRate(t *testing.T) {
	report := buildReport(`{"USD":1.0,"EUR":0.85}`, time.Now())
	assert.Contains(t, report, "Не удалось получить курс USD/RUB")

	report = buildReport("", time.Now())
	assert.Contains(t, report, "Не удалось получить курс")
}

func TestService_Report(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "", r.URL.Query().Get("apikey"))
		fmt.Fprint(w, samplePayload)
	}))
	defer srv.Close()

	s := NewService(srv.URL, "", zap.NewNop())
	report := s.Report()
	require.Contains(t, report, "Курсы валют к RUB")
	require.Contains(t, report, "USD/RUB: 75.50")
}

func TestService_Report_PassesAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("apikey"))
		fmt.Fprint(w, samplePayload)
	}))
	defer srv.Close()

	s := NewService(srv.URL, "secret", zap.NewNop())
	s.Report()
}

func TestService_Report_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewService(srv.URL, "", zap.NewNop())
	assert.Equal(t, unavailableText, s.Report())
}

func TestService_Report_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	s := NewService(srv.URL, "", zap.NewNop())
	assert.Equal(t, unavailableText, s.Report())
}
