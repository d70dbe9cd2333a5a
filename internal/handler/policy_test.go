package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pojisteni/insurance-agency/internal/model"
	"github.com/pojisteni/insurance-agency/internal/validate"
)

func newPolicyHandler(t *testing.T) (*PolicyHandler, *mockHolderStore, *mockPolicyStore) {
	t.Helper()
	holders := newMockHolderStore()
	policies := newMockPolicyStore()
	return NewPolicyHandler(policies, holders), holders, policies
}

func TestPolicyCreate(t *testing.T) {
	t.Run("missing holder yields 404", func(t *testing.T) {
		h, _, policies := newPolicyHandler(t)
		c, rec := jsonReq(http.MethodPost, "/v1/policyholders/42/policies",
			`{"target_amount":100000,"valid_from":"2024-01-01","valid_to":"2025-01-01"}`)
		c.SetParamNames("id")
		c.SetParamValues("42")
		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, policies.policies)
	})

	t.Run("missing target_amount is rejected", func(t *testing.T) {
		h, holders, policies := newPolicyHandler(t)
		seedHolder(t, holders, "900101/1234")

		c, rec := jsonReq(http.MethodPost, "/v1/policyholders/1/policies",
			`{"valid_from":"2024-01-01","valid_to":"2025-01-01"}`)
		c.SetParamNames("id")
		c.SetParamValues("1")
		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, validate.MsgRequired, fieldMessages(t, rec)["target_amount"])
		assert.Empty(t, policies.policies)
	})

	t.Run("explicit zero amount is accepted", func(t *testing.T) {
		h, holders, _ := newPolicyHandler(t)
		seedHolder(t, holders, "900101/1234")

		c, rec := jsonReq(http.MethodPost, "/v1/policyholders/1/policies",
			`{"target_amount":0,"valid_from":"2024-01-01","valid_to":"2025-01-01"}`)
		c.SetParamNames("id")
		c.SetParamValues("1")
		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("defaults are applied when enums are absent", func(t *testing.T) {
		h, holders, policies := newPolicyHandler(t)
		seedHolder(t, holders, "900101/1234")

		c, rec := jsonReq(http.MethodPost, "/v1/policyholders/1/policies",
			`{"target_amount":250000,"valid_from":"2024-01-01","valid_to":"2025-01-01"}`)
		c.SetParamNames("id")
		c.SetParamValues("1")
		require.NoError(t, h.Create(c))
		require.Equal(t, http.StatusCreated, rec.Code)

		stored := policies.policies[1]
		assert.Equal(t, model.PaidByInsured, stored.PaidBy)
		assert.Equal(t, model.InsuranceEstate, stored.InsuranceType)
	})

	t.Run("unknown enum value is rejected", func(t *testing.T) {
		h, holders, _ := newPolicyHandler(t)
		seedHolder(t, holders, "900101/1234")

		c, rec := jsonReq(http.MethodPost, "/v1/policyholders/1/policies",
			`{"insurance_type":"MAGIC","target_amount":250000,"valid_from":"2024-01-01","valid_to":"2025-01-01"}`)
		c.SetParamNames("id")
		c.SetParamValues("1")
		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, validate.MsgInvalidChoice, fieldMessages(t, rec)["insurance_type"])
	})

	t.Run("valid_from after valid_to is rejected", func(t *testing.T) {
		h, holders, _ := newPolicyHandler(t)
		seedHolder(t, holders, "900101/1234")

		c, rec := jsonReq(http.MethodPost, "/v1/policyholders/1/policies",
			`{"target_amount":250000,"valid_from":"2025-01-01","valid_to":"2024-01-01"}`)
		c.SetParamNames("id")
		c.SetParamValues("1")
		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, validate.MsgDateOrder, fieldMessages(t, rec)["valid_from"])
	})
}

func TestPolicyDetail(t *testing.T) {
	h, holders, _ := newPolicyHandler(t)
	seedHolder(t, holders, "900101/1234")

	c, rec := jsonReq(http.MethodPost, "/v1/policyholders/1/policies",
		`{"insurance_type":"TRAVEL","target_amount":80000,"valid_from":"2024-06-01","valid_to":"2024-06-30"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = jsonReq(http.MethodGet, "/v1/policies/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Detail(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Policy policyResp `json:"policy"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Cestovní pojištění", body.Policy.InsuranceTypeLabel)
	assert.Equal(t, "2024-06-01", body.Policy.ValidFrom)

	c, rec = jsonReq(http.MethodGet, "/v1/policies/7", "")
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, h.Detail(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPolicyDelete(t *testing.T) {
	h, holders, policies := newPolicyHandler(t)
	seedHolder(t, holders, "900101/1234")

	c, rec := jsonReq(http.MethodPost, "/v1/policyholders/1/policies",
		`{"target_amount":250000,"valid_from":"2024-01-01","valid_to":"2025-01-01"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = jsonReq(http.MethodDelete, "/v1/policies/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, policies.policies)

	c, rec = jsonReq(http.MethodDelete, "/v1/policies/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
