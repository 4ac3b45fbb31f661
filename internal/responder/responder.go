package responder

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// QuoteService produces the formatted exchange-rate report for the currency
// rule. Implementations must degrade to a user-facing message on failure
// rather than returning an error.
type QuoteService interface {
	Report() string
}

const helpText = `📋 Доступные команды:

Основные:
• /help - показать это сообщение
• Привет - поздороваться с ботом
• Который час? - текущее время

Калькулятор:
• число * число - умножение (напр: 5 * 3)

Финансы:
• курс валют - курсы 10 валют к рублю

Для выхода закройте окно чата.`

const (
	multiplyErrorText = "Ошибка: введите уравнение в формате 'число * число' (например: 12 * 4)"
	fallbackText      = "Не понимаю. Напишите /help для списка команд."
)

var currencyPattern = regexp.MustCompile(`(?i)^(курс валют|exchange rates)$`)

// rule pairs a predicate with its reply handler. Rules are evaluated in
// slice order; the first predicate that matches wins.
type rule struct {
	match  func(input string) bool
	handle func(input string) string
}

// Responder classifies one input line against a fixed ordered rule set and
// produces a reply. It holds no conversation state: the reply depends only
// on the input, the configured user name and the quote service.
type Responder struct {
	userName string
	quotes   QuoteService
	rules    []rule
}

func New(userName string, quotes QuoteService) *Responder {
	r := &Responder{
		userName: userName,
		quotes:   quotes,
	}
	r.rules = []rule{
		{
			match:  func(in string) bool { return strings.EqualFold(in, "/help") },
			handle: func(string) string { return helpText },
		},
		{
			match:  func(in string) bool { return strings.EqualFold(in, "Который час?") },
			handle: func(string) string { return r.currentTime() },
		},
		{
			// Any input with a '*' is treated as a multiplication attempt;
			// operands that fail to parse get the format-error reply.
			match:  func(in string) bool { return strings.Contains(in, "*") },
			handle: handleMultiplication,
		},
		{
			match: func(in string) bool {
				return strings.EqualFold(in, "привет") || strings.EqualFold(in, "здравствуйте")
			},
			handle: func(string) string { return r.greeting() },
		},
		{
			match:  currencyPattern.MatchString,
			handle: func(string) string { return r.quotes.Report() },
		},
	}
	return r
}

// Respond evaluates the rules in priority order and returns the reply of the
// first matching rule, or the fallback reply when nothing matches.
func (r *Responder) Respond(input string) string {
	for _, rl := range r.rules {
		if rl.match(input) {
			return rl.handle(input)
		}
	}
	return fallbackText
}

func (r *Responder) currentTime() string {
	return "Сейчас " + time.Now().Format("15:04")
}

func (r *Responder) greeting() string {
	return "Привет, " + r.userName + "! Напишите /help для списка команд."
}

// handleMultiplication parses "<a> * <b>" and returns the product line.
// Operands that fail integer parsing, including out-of-range values, yield
// the fixed format-error reply instead of an error.
func handleMultiplication(equation string) string {
	parts := strings.SplitN(equation, "*", 2)
	if len(parts) != 2 {
		return multiplyErrorText
	}

	a, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return multiplyErrorText
	}
	b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return multiplyErrorText
	}

	return fmt.Sprintf("%d * %d = %d", a, b, a*b)
}
