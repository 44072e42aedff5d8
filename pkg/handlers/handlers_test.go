package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/nxtreasury/treasury-workflow/pkg/api"
	"github.com/nxtreasury/treasury-workflow/pkg/approval"
	"github.com/nxtreasury/treasury-workflow/pkg/audit"
	"github.com/nxtreasury/treasury-workflow/pkg/risk"
	storage_mocks "github.com/nxtreasury/treasury-workflow/pkg/storage/mocks"
	"github.com/nxtreasury/treasury-workflow/pkg/storage/memory"
	"github.com/nxtreasury/treasury-workflow/pkg/workflow"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testCSV = "Recipient,Amount,Currency\n0xABC,100,USDT\n"

func newTestServer() (*httptest.Server, *workflow.Controller) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	controller := workflow.NewController(memory.NewStore(), risk.NewAssessor(0, nil), approval.NewProcessor(), &audit.NoOpPublisher{}, logger)

	router := chi.NewRouter()
	NewHandler(controller, logger).Routes(router)
	return httptest.NewServer(router), controller
}

func multipartBody(t *testing.T, filename, fileContent, jsonField string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := w.CreateFormFile("excel", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(fileContent))
		require.NoError(t, err)
	}
	if jsonField != "" {
		require.NoError(t, w.WriteField("json", jsonField))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func submitProposal(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	body, contentType := multipartBody(t, "payments.csv", testCSV, `{"user_id":"u1"}`)
	resp, err := http.Post(ts.URL+"/submit_request", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out api.SubmitResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.True(t, out.Success)
	require.NotEmpty(t, out.ProposalID)
	return out.ProposalID
}

func TestSubmitRequest(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		// 1. Setup
		ts, _ := newTestServer()
		defer ts.Close()

		// 2. Execute
		body, contentType := multipartBody(t, "payments.csv", testCSV, `{"user_id":"u1"}`)
		resp, err := http.Post(ts.URL+"/submit_request", contentType, body)
		require.NoError(t, err)
		defer resp.Body.Close()

		// 3. Assert
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var out api.SubmitResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.True(t, out.Success)
		assert.Equal(t, "ready_for_review", out.Status)
	})

	t.Run("missing file", func(t *testing.T) {
		ts, _ := newTestServer()
		defer ts.Close()

		body, contentType := multipartBody(t, "", "", `{"user_id":"u1"}`)
		resp, err := http.Post(ts.URL+"/submit_request", contentType, body)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing json field", func(t *testing.T) {
		ts, _ := newTestServer()
		defer ts.Close()

		body, contentType := multipartBody(t, "payments.csv", testCSV, "")
		resp, err := http.Post(ts.URL+"/submit_request", contentType, body)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("invalid json field", func(t *testing.T) {
		ts, _ := newTestServer()
		defer ts.Close()

		body, contentType := multipartBody(t, "payments.csv", testCSV, `{broken`)
		resp, err := http.Post(ts.URL+"/submit_request", contentType, body)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var e api.Error
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
		assert.Equal(t, "validation_error", e.Error)
	})

	t.Run("no usable rows", func(t *testing.T) {
		ts, _ := newTestServer()
		defer ts.Close()

		body, contentType := multipartBody(t, "payments.csv", "Recipient,Amount\n,0\n", `{"user_id":"u1"}`)
		resp, err := http.Post(ts.URL+"/submit_request", contentType, body)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetProposal(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		ts, _ := newTestServer()
		defer ts.Close()
		id := submitProposal(t, ts)

		resp, err := http.Get(ts.URL + "/get_proposal/" + id)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out api.Proposal
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, id, out.ProposalID)
		require.Len(t, out.PaymentProposals, 1)
		assert.True(t, out.TotalAmount.Equal(decimal.NewFromInt(100)))
	})

	t.Run("unknown id", func(t *testing.T) {
		ts, _ := newTestServer()
		defer ts.Close()

		resp, err := http.Get(ts.URL + "/get_proposal/nope")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestSubmitApproval(t *testing.T) {
	t.Run("approve all", func(t *testing.T) {
		ts, _ := newTestServer()
		defer ts.Close()
		id := submitProposal(t, ts)

		payload := `{"proposal_id":"` + id + `","approval_decision":"approve_all"}`
		resp, err := http.Post(ts.URL+"/submit_approval", "application/json", bytes.NewBufferString(payload))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out api.ApprovalResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.True(t, out.Success)
		assert.Equal(t, "SUCCESS", out.ExecutionStatus)
		assert.Equal(t, 1, out.Summary.ExecutedCount)
	})

	t.Run("mixed reference shapes", func(t *testing.T) {
		ts, _ := newTestServer()
		defer ts.Close()
		id := submitProposal(t, ts)

		payload := `{"proposal_id":"` + id + `","approval_decision":"partial","approved_payments":[0]}`
		resp, err := http.Post(ts.URL+"/submit_approval", "application/json", bytes.NewBufferString(payload))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out api.ApprovalResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "SUCCESS", out.ExecutionStatus)
	})

	t.Run("rejection only", func(t *testing.T) {
		ts, _ := newTestServer()
		defer ts.Close()
		id := submitProposal(t, ts)

		payload := `{"proposal_id":"` + id + `","approval_decision":"partial","rejected_payments":[{"payment_id":"pay-1","rejection_reason":"bad address"}]}`
		resp, err := http.Post(ts.URL+"/submit_approval", "application/json", bytes.NewBufferString(payload))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out api.ApprovalResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "FAILURE", out.ExecutionStatus)
	})

	t.Run("missing proposal id", func(t *testing.T) {
		ts, _ := newTestServer()
		defer ts.Close()

		resp, err := http.Post(ts.URL+"/submit_approval", "application/json", bytes.NewBufferString(`{"approval_decision":"approve_all"}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown proposal", func(t *testing.T) {
		ts, _ := newTestServer()
		defer ts.Close()

		resp, err := http.Post(ts.URL+"/submit_approval", "application/json", bytes.NewBufferString(`{"proposal_id":"nope","approval_decision":"approve_all"}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("unknown payment reference", func(t *testing.T) {
		ts, _ := newTestServer()
		defer ts.Close()
		id := submitProposal(t, ts)

		payload := `{"proposal_id":"` + id + `","approval_decision":"partial","approved_payments":["pay-99"]}`
		resp, err := http.Post(ts.URL+"/submit_approval", "application/json", bytes.NewBufferString(payload))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestExecutionResult(t *testing.T) {
	t.Run("pending before approval", func(t *testing.T) {
		ts, _ := newTestServer()
		defer ts.Close()
		id := submitProposal(t, ts)

		resp, err := http.Get(ts.URL + "/execution_result/" + id)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	})

	t.Run("unknown proposal", func(t *testing.T) {
		ts, _ := newTestServer()
		defer ts.Close()

		resp, err := http.Get(ts.URL + "/execution_result/nope")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("after approval", func(t *testing.T) {
		ts, _ := newTestServer()
		defer ts.Close()
		id := submitProposal(t, ts)

		payload := `{"proposal_id":"` + id + `","approval_decision":"approve_all"}`
		approveResp, err := http.Post(ts.URL+"/submit_approval", "application/json", bytes.NewBufferString(payload))
		require.NoError(t, err)
		approveResp.Body.Close()

		resp, err := http.Get(ts.URL + "/execution_result/" + id)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out api.ExecutionResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "SUCCESS", out.ExecutionStatus)
		require.Len(t, out.ExecutedPayments, 1)
		assert.Equal(t, "SIMULATED_SUCCESS", out.ExecutedPayments[0].Status)
		assert.True(t, out.Summary.TotalAmountExecuted.Equal(decimal.NewFromInt(100)))
	})
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out api.Health
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "healthy", out.Status)
}

func TestSubmitRequest_StoreFailure(t *testing.T) {
	// 1. Setup
	mockStore := new(storage_mocks.Store)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	controller := workflow.NewController(mockStore, risk.NewAssessor(0, nil), approval.NewProcessor(), &audit.NoOpPublisher{}, logger)
	router := chi.NewRouter()
	NewHandler(controller, logger).Routes(router)

	// 2. Mock expectations
	mockStore.On("PutProposal", mock.Anything, mock.Anything).Return(errors.New("table unavailable"))

	// 3. Execute
	body, contentType := multipartBody(t, "payments.csv", testCSV, `{"user_id":"u1"}`)
	req := httptest.NewRequest(http.MethodPost, "/submit_request", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req.WithContext(context.Background()))

	// 4. Assert
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	mockStore.AssertExpectations(t)
}
