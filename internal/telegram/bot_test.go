package telegram

import (
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/voltbot/internal/apperr"
	"go.uber.org/zap"
)

func TestParseDCAArgs(t *testing.T) {
	ticker, basis, ok := parseDCAArgs("/dca BTC 1000")
	require.True(t, ok)
	require.Equal(t, "BTC", ticker)
	require.True(t, basis.Equal(decimal.NewFromInt(1000)))

	_, basis, ok = parseDCAArgs("/dca eth 250.50")
	require.True(t, ok)
	require.True(t, basis.Equal(decimal.RequireFromString("250.50")))

	for _, text := range []string{
		"/dca",
		"/dca BTC",
		"/dca BTC notanumber",
		"/dca BTC 1000 extra",
	} {
		_, _, ok := parseDCAArgs(text)
		require.False(t, ok, "input %q", text)
	}
}

func TestUserMessage(t *testing.T) {
	l := zap.NewNop()

	msg := userMessage(apperr.NewValidation("ticker is too long"), "report", l)
	require.Equal(t, "Error: ticker is too long", msg)

	msg = userMessage(&apperr.SymbolNotFoundError{Ticker: "NOPE"}, "report", l)
	require.Contains(t, msg, "Error: ticker 'NOPE' was not found")

	// classification must survive wrapping
	wrapped := pkgerrors.Wrap(&apperr.DataSourceError{Reason: "could not reach Bybit API"}, "pipeline")
	msg = userMessage(wrapped, "report", l)
	require.Equal(t, "Error: could not reach Bybit API", msg)

	msg = userMessage(pkgerrors.New("nil pointer somewhere"), "dca", l)
	require.Equal(t, genericErrorText, msg)
}
