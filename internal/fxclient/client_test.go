package fxclient_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	json "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meridianpay/fx-payment-service/internal/fxclient"
	"github.com/meridianpay/fx-payment-service/internal/models"
)

func TestGetQuote_SucceedsOnLastAttemptAfterBackoff(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/twirp/payments.v1.FXService/GetQuote", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "USD", body["source_currency"])
		require.Equal(t, "EUR", body["target_currency"])

		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"exchange_rate": 0.92}`))
	}))
	defer srv.Close()

	base := 10 * time.Millisecond
	client := fxclient.New(srv.URL, time.Second, 3, base, zap.NewNop())

	start := time.Now()
	quote, err := client.GetQuote(context.Background(), "USD", "EUR")
	elapsed := time.Since(start)

	require.NoError(t, err)
	require.Equal(t, 0.92, quote.Rate)
	require.GreaterOrEqual(t, quote.LatencyMs, int64(0))
	require.EqualValues(t, 3, calls.Load())
	// 1×base after attempt 1, 2×base after attempt 2
	require.GreaterOrEqual(t, elapsed, 3*base)
}

func TestGetQuote_FailsAfterExactlyMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := fxclient.New(srv.URL, time.Second, 3, time.Millisecond, zap.NewNop())

	quote, err := client.GetQuote(context.Background(), "USD", "EUR")
	require.Nil(t, quote)
	require.ErrorIs(t, err, fxclient.ErrQuoteUnavailable)
	require.Contains(t, err.Error(), "status 502")
	require.EqualValues(t, 3, calls.Load())
}

func TestGetQuote_NonPositiveRateIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"exchange_rate": 0}`))
	}))
	defer srv.Close()

	client := fxclient.New(srv.URL, time.Second, 2, time.Millisecond, zap.NewNop())

	_, err := client.GetQuote(context.Background(), "USD", "EUR")
	require.ErrorIs(t, err, fxclient.ErrQuoteUnavailable)
	require.Contains(t, err.Error(), "invalid exchange rate")
}

func TestGetQuote_UnparseableBodyIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := fxclient.New(srv.URL, time.Second, 1, time.Millisecond, zap.NewNop())

	_, err := client.GetQuote(context.Background(), "USD", "EUR")
	require.ErrorIs(t, err, fxclient.ErrQuoteUnavailable)
}

func TestGetQuote_TimeoutIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"exchange_rate": 1.1}`))
	}))
	defer srv.Close()

	client := fxclient.New(srv.URL, 20*time.Millisecond, 2, time.Millisecond, zap.NewNop())

	_, err := client.GetQuote(context.Background(), "USD", "EUR")
	require.ErrorIs(t, err, fxclient.ErrQuoteUnavailable)
}

func TestGetQuote_EmptyCurrencyFailsFast(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	client := fxclient.New(srv.URL, time.Second, 3, time.Millisecond, zap.NewNop())

	_, err := client.GetQuote(context.Background(), "", "EUR")
	require.ErrorIs(t, err, models.ErrValidation)
	require.False(t, errors.Is(err, fxclient.ErrQuoteUnavailable))

	_, err = client.GetQuote(context.Background(), "USD", "")
	require.ErrorIs(t, err, models.ErrValidation)

	require.EqualValues(t, 0, calls.Load())
}

func TestGetQuote_CancelledContextStopsRetrying(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := fxclient.New(srv.URL, time.Second, 5, time.Second, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.GetQuote(ctx, "USD", "EUR")
	require.ErrorIs(t, err, fxclient.ErrQuoteUnavailable)
	require.Less(t, time.Since(start), time.Second)
}
