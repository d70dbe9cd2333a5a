package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pojisteni/insurance-agency/internal/model"
)

func TestReportSummary(t *testing.T) {
	holders := newMockHolderStore()
	policies := newMockPolicyStore()
	events := newMockEventStore()
	h := NewReportHandler(holders, policies, events)

	seedHolder(t, holders, "900101/1234")
	require.NoError(t, events.Create(context.Background(), &model.Event{
		PolicyHolderID: 1, Title: "Kroupy", ContractNo: "SM-2024-17",
		EventDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}))

	c, rec := jsonReq(http.MethodGet, "/v1/report", "")
	require.NoError(t, h.Summary(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `filename="report.pdf"`)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestReportSummaryStoreFailure(t *testing.T) {
	holders := newMockHolderStore()
	holders.err = errors.New("connection lost")
	h := NewReportHandler(holders, newMockPolicyStore(), newMockEventStore())

	c, rec := jsonReq(http.MethodGet, "/v1/report", "")
	require.NoError(t, h.Summary(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"database error"}`, rec.Body.String())
}
