package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/entity"
	domainErrors "github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/errors"
	domainRepo "github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/repository"
	"go.uber.org/zap"
)

const supabaseBackend = "supabase"

// supabaseCreditRow is the PostgREST representation of a user_credits row
type supabaseCreditRow struct {
	Email            string          `json:"email"`
	CreditsRemaining decimal.Decimal `json:"credits_remaining_mb"`
	LastUsed         *string         `json:"last_used"`
}

// supabaseCreditWrite is the write payload. Numbers are sent unquoted.
type supabaseCreditWrite struct {
	Email            string      `json:"email,omitempty"`
	CreditsRemaining json.Number `json:"credits_remaining_mb"`
	LastUsed         string      `json:"last_used"`
}

// SupabaseAccountRepository implements AccountRepository using the Supabase REST API
type SupabaseAccountRepository struct {
	client  *http.Client
	baseURL string
	apiKey  string
	table   string
	logger  *zap.Logger
}

// NewSupabaseAccountRepository creates a new Supabase account repository.
// apiKey must be the service role key; the table is not readable with the anon key.
func NewSupabaseAccountRepository(
	baseURL string,
	apiKey string,
	table string,
	timeout time.Duration,
	logger *zap.Logger,
) domainRepo.AccountRepository {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SupabaseAccountRepository{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		table:   table,
		logger:  logger,
	}
}

// FindByEmail fetches the account row for an exact email match
func (r *SupabaseAccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	params := url.Values{}
	params.Add("email", "eq."+email)
	params.Add("select", "email,credits_remaining_mb,last_used")
	params.Add("limit", "1")

	var rows []supabaseCreditRow
	status, err := r.do(ctx, http.MethodGet, params, nil, "", &rows)
	if err != nil {
		return nil, domainErrors.NewStoreError(supabaseBackend, "find", err)
	}
	if status != http.StatusOK {
		return nil, domainErrors.NewStoreError(supabaseBackend, "find", fmt.Errorf("unexpected status %d", status))
	}

	if len(rows) == 0 {
		r.logger.Debug("SupabaseAccountRepository: No account for email",
			zap.String("email", email))
		return nil, nil
	}

	return rows[0].toEntity(r.logger), nil
}

// UpdateBalance patches the row only where the stored balance still equals expected
func (r *SupabaseAccountRepository) UpdateBalance(ctx context.Context, email string, expected, balance decimal.Decimal, lastUsed time.Time) (bool, error) {
	params := url.Values{}
	params.Add("email", "eq."+email)
	params.Add("credits_remaining_mb", "eq."+expected.String())

	body := supabaseCreditWrite{
		CreditsRemaining: json.Number(balance.String()),
		LastUsed:         lastUsed.UTC().Format(time.RFC3339Nano),
	}

	var rows []supabaseCreditRow
	status, err := r.do(ctx, http.MethodPatch, params, body, "return=representation", &rows)
	if err != nil {
		return false, domainErrors.NewStoreError(supabaseBackend, "update", err)
	}
	if status != http.StatusOK {
		return false, domainErrors.NewStoreError(supabaseBackend, "update", fmt.Errorf("unexpected status %d", status))
	}

	if len(rows) == 0 {
		r.logger.Debug("SupabaseAccountRepository: Conditional update matched no row",
			zap.String("email", email),
			zap.String("expected_balance", expected.String()))
		return false, nil
	}

	return true, nil
}

// Create inserts a new row. A unique violation on email is reported as false
func (r *SupabaseAccountRepository) Create(ctx context.Context, email string, balance decimal.Decimal, lastUsed time.Time) (bool, error) {
	body := supabaseCreditWrite{
		Email:            email,
		CreditsRemaining: json.Number(balance.String()),
		LastUsed:         lastUsed.UTC().Format(time.RFC3339Nano),
	}

	status, err := r.do(ctx, http.MethodPost, nil, body, "return=minimal", nil)
	if err != nil {
		return false, domainErrors.NewStoreError(supabaseBackend, "create", err)
	}

	switch status {
	case http.StatusCreated, http.StatusOK, http.StatusNoContent:
		return true, nil
	case http.StatusConflict:
		r.logger.Debug("SupabaseAccountRepository: Account already exists",
			zap.String("email", email))
		return false, nil
	default:
		return false, domainErrors.NewStoreError(supabaseBackend, "create", fmt.Errorf("unexpected status %d", status))
	}
}

// do executes a PostgREST request against the credits table and decodes 2xx bodies into out.
// Non-2xx statuses are returned without error so callers can branch on them.
func (r *SupabaseAccountRepository) do(ctx context.Context, method string, params url.Values, body interface{}, prefer string, out interface{}) (int, error) {
	queryURL := fmt.Sprintf("%s/rest/v1/%s", r.baseURL, r.table)
	if len(params) > 0 {
		queryURL = fmt.Sprintf("%s?%s", queryURL, params.Encode())
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, queryURL, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("apikey", r.apiKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", r.apiKey))
	req.Header.Set("Content-Type", "application/json")
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	requestStart := time.Now()
	resp, err := r.client.Do(req)
	requestDuration := time.Since(requestStart)
	if err != nil {
		r.logger.Error("SupabaseAccountRepository: HTTP request failed",
			zap.String("method", method),
			zap.String("table", r.table),
			zap.Duration("request_duration", requestDuration),
			zap.Error(err))
		return 0, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	r.logger.Debug("SupabaseAccountRepository: HTTP request completed",
		zap.String("method", method),
		zap.String("table", r.table),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("request_duration", requestDuration))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if resp.StatusCode != http.StatusConflict {
			r.logger.Warn("SupabaseAccountRepository: Supabase API returned non-2xx status",
				zap.String("method", method),
				zap.Int("status_code", resp.StatusCode),
				zap.ByteString("response_body", errorBody))
		}
		if resp.StatusCode == http.StatusUnauthorized {
			return resp.StatusCode, fmt.Errorf("unauthorized access to Supabase API - check service role key")
		}
		return resp.StatusCode, nil
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return resp.StatusCode, nil
}

// lastUsedLayouts covers timestamptz output and timestamp-without-zone columns
var lastUsedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999-07",
}

func (row supabaseCreditRow) toEntity(logger *zap.Logger) *entity.Account {
	account := &entity.Account{
		Email:            row.Email,
		CreditsRemaining: row.CreditsRemaining,
	}
	if row.LastUsed == nil || *row.LastUsed == "" {
		return account
	}
	for _, layout := range lastUsedLayouts {
		if t, err := time.Parse(layout, *row.LastUsed); err == nil {
			account.LastUsed = &t
			return account
		}
	}
	logger.Debug("SupabaseAccountRepository: Unparseable last_used",
		zap.String("email", row.Email),
		zap.String("last_used", *row.LastUsed))
	return account
}
