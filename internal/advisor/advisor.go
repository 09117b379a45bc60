// Package advisor answers free-form questions about the user's finances by
// priming a generative chat model with a snapshot of their ledger.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"moneypulse/internal/domain"
	"moneypulse/internal/util"
)

// contextTransactionLimit caps how many recent entries go into the model
// context. Newer entries come first in storage order, so the cut keeps the
// most recent ones.
const contextTransactionLimit = 50

// unknownName labels references the snapshot can no longer resolve.
const unknownName = "Unknown"

// Message is one chat turn. Role is "user" or "model".
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ChatModel is the generative backend behind the advisor.
type ChatModel interface {
	Generate(ctx context.Context, systemInstruction string, history []Message, message string) (string, error)
}

// LedgerReader is the slice of the ledger store the advisor needs.
type LedgerReader interface {
	Accounts() []domain.Account
	Transactions() []domain.Transaction
}

// CategoryReader resolves category references to display names.
type CategoryReader interface {
	List() []domain.Category
}

// Advisor builds the data context for each question and delegates the
// conversation to the chat model. A nil model means the advisor is disabled
// (no API key configured); Ask then fails without touching the network.
type Advisor struct {
	ledger     LedgerReader
	categories CategoryReader
	model      ChatModel
	logger     *slog.Logger
}

// New creates a new Advisor.
func New(ledger LedgerReader, categories CategoryReader, model ChatModel, logger *slog.Logger) *Advisor {
	return &Advisor{
		ledger:     ledger,
		categories: categories,
		model:      model,
		logger:     logger,
	}
}

// Ask sends one question to the model, primed with a fresh ledger snapshot
// and the prior turns of the conversation.
func (a *Advisor) Ask(ctx context.Context, history []Message, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", util.ErrInvalidInput
	}
	if a.model == nil {
		return "", util.ErrAdvisorUnavailable
	}

	system, err := a.systemInstruction()
	if err != nil {
		return "", fmt.Errorf("failed to build advisor context: %w", err)
	}

	reply, err := a.model.Generate(ctx, system, history, message)
	if err != nil {
		a.logger.Error("Advisor chat failed", "error", err)
		return "", fmt.Errorf("%w: %v", util.ErrAdvisorUnavailable, err)
	}
	return reply, nil
}

type contextAccount struct {
	Name     string          `json:"name"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
	Type     string          `json:"type"`
}

type contextTransaction struct {
	Date     string          `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Account  string          `json:"account"`
	Note     string          `json:"note,omitempty"`
}

type contextData struct {
	Accounts     []contextAccount     `json:"accounts"`
	Transactions []contextTransaction `json:"transactions"`
	CurrentDate  string               `json:"currentDate"`
}

// buildContext snapshots the ledger into the compact form the model sees.
// Category and account references that no longer resolve degrade to
// "Unknown" rather than failing, same as the reporting side.
func (a *Advisor) buildContext() contextData {
	accounts := a.ledger.Accounts()
	transactions := a.ledger.Transactions()
	if len(transactions) > contextTransactionLimit {
		transactions = transactions[:contextTransactionLimit]
	}

	accountNames := make(map[string]string, len(accounts))
	ctxAccounts := make([]contextAccount, 0, len(accounts))
	for _, acc := range accounts {
		accountNames[acc.ID] = acc.Name
		ctxAccounts = append(ctxAccounts, contextAccount{
			Name:     acc.Name,
			Balance:  acc.Balance,
			Currency: acc.Currency,
			Type:     string(acc.Kind),
		})
	}

	categoryNames := make(map[string]string)
	for _, cat := range a.categories.List() {
		categoryNames[cat.ID] = cat.Name
	}

	ctxTransactions := make([]contextTransaction, 0, len(transactions))
	for _, tx := range transactions {
		category, ok := categoryNames[tx.CategoryID]
		if !ok {
			category = unknownName
		}
		account, ok := accountNames[tx.AccountID]
		if !ok {
			account = unknownName
		}
		ctxTransactions = append(ctxTransactions, contextTransaction{
			Date:     tx.OccurredAt.Format("2006-01-02"),
			Amount:   tx.Amount,
			Type:     string(tx.Type),
			Category: category,
			Account:  account,
			Note:     tx.Note,
		})
	}

	return contextData{
		Accounts:     ctxAccounts,
		Transactions: ctxTransactions,
		CurrentDate:  time.Now().Format("2006-01-02"),
	}
}

func (a *Advisor) systemInstruction() (string, error) {
	data, err := json.Marshal(a.buildContext())
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`You are a friendly and expert financial advisor for the MoneyPulse app.
You have access to the user's recent financial data in JSON format below.

DATA CONTEXT:
%s

YOUR ROLE:
1. Analyze the user's spending habits and identify trends.
2. Provide specific numbers when asked (e.g., "You spent $50 on food").
3. Give brief, actionable advice on budgeting and saving.
4. Be encouraging and professional.
5. If asked about gasless transfers, explain that the app sends stablecoins with the network fee sponsored by a relayer.

Keep responses concise (under 100 words) and formatted nicely. Use Markdown for bolding key figures.`, data), nil
}
