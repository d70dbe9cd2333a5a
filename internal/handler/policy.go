// This file implements the insurance policy endpoints. A policy is
// always created in the context of an existing policyholder; updates
// and deletes address the policy directly.
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pojisteni/insurance-agency/internal/model"
	"github.com/pojisteni/insurance-agency/internal/repository"
	"github.com/pojisteni/insurance-agency/internal/utils"
	"github.com/pojisteni/insurance-agency/internal/validate"
)

// PolicyHandler bundles the stores needed by the insurance policy
// endpoints.
type PolicyHandler struct {
	Policies PolicyStore
	Holders  PolicyHolderStore
}

func NewPolicyHandler(p PolicyStore, h PolicyHolderStore) *PolicyHandler {
	return &PolicyHandler{Policies: p, Holders: h}
}

// ----- DTOs -----

type policyReq struct {
	PaidBy        string `json:"paid_by" form:"paid_by"`
	InsuranceType string `json:"insurance_type" form:"insurance_type"`
	TargetAmount  *int64 `json:"target_amount" form:"target_amount"`
	ValidFrom     string `json:"valid_from" form:"valid_from"`
	ValidTo       string `json:"valid_to" form:"valid_to"`
}

type policyResp struct {
	ID                 uint64    `json:"id"`
	PolicyHolderID     uint64    `json:"policyholder_id"`
	PaidBy             string    `json:"paid_by"`
	PaidByLabel        string    `json:"paid_by_label"`
	InsuranceType      string    `json:"insurance_type"`
	InsuranceTypeLabel string    `json:"insurance_type_label"`
	TargetAmount       int64     `json:"target_amount"`
	ValidFrom          string    `json:"valid_from"`
	ValidTo            string    `json:"valid_to"`
	Created            time.Time `json:"created"`
	Updated            time.Time `json:"updated"`
}

func toPolicyResp(p *model.InsurancePolicy) policyResp {
	return policyResp{
		ID:                 p.ID,
		PolicyHolderID:     p.PolicyHolderID,
		PaidBy:             p.PaidBy,
		PaidByLabel:        model.PaidByLabels[p.PaidBy],
		InsuranceType:      p.InsuranceType,
		InsuranceTypeLabel: model.InsuranceTypeLabels[p.InsuranceType],
		TargetAmount:       p.TargetAmount,
		ValidFrom:          p.ValidFrom.Format("2006-01-02"),
		ValidTo:            p.ValidTo.Format("2006-01-02"),
		Created:            p.Created,
		Updated:            p.Updated,
	}
}

// resolve normalizes the request, applies the enum defaults and runs
// the validation rules. On success the parsed values are copied onto
// the model.
func (req *policyReq) resolve(p *model.InsurancePolicy) []validate.FieldError {
	if req.PaidBy == "" {
		req.PaidBy = model.PaidByInsured
	}
	if req.InsuranceType == "" {
		req.InsuranceType = model.InsuranceEstate
	}

	from, okFrom := parseDate(req.ValidFrom)
	to, okTo := parseDate(req.ValidTo)
	var errs []validate.FieldError
	if !okFrom {
		errs = append(errs, validate.FieldError{Field: "valid_from", Message: validate.MsgInvalidChoice})
	}
	if !okTo {
		errs = append(errs, validate.FieldError{Field: "valid_to", Message: validate.MsgInvalidChoice})
	}
	errs = append(errs, validate.Policy(req.PaidBy, req.InsuranceType, req.TargetAmount, from, to)...)
	if len(errs) > 0 {
		return errs
	}

	p.PaidBy = req.PaidBy
	p.InsuranceType = req.InsuranceType
	p.TargetAmount = *req.TargetAmount
	p.ValidFrom = from
	p.ValidTo = to
	return nil
}

// List handles GET /v1/policies.
func (h *PolicyHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	count, err := h.Policies.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	page := utils.Paginate(count, c.QueryParam("page"))

	policies, err := h.Policies.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items := make([]policyResp, 0, len(policies))
	for _, p := range policies {
		items = append(items, toPolicyResp(p))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":    items,
		"count":    page.Count,
		"pages":    page.Pages,
		"page_num": page.Number,
	})
}

// Detail handles GET /v1/policies/:id.
func (h *PolicyHandler) Detail(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Policies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPolicyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "insurance policy not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"policy": toPolicyResp(p)})
}

// Create handles POST /v1/policyholders/:id/policies. The holder must
// exist before anything is validated or written.
func (h *PolicyHandler) Create(c echo.Context) error {
	holderID, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Holders.GetByID(ctx, holderID); err != nil {
		if errors.Is(err, repository.ErrPolicyHolderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "policyholder not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	var req policyReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	p := model.InsurancePolicy{PolicyHolderID: holderID}
	if errs := req.resolve(&p); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}

	if err := h.Policies.Create(ctx, &p); err != nil {
		if errors.Is(err, repository.ErrPolicyHolderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "policyholder not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"policy": toPolicyResp(&p)})
}

// Update handles PUT /v1/policies/:id.
func (h *PolicyHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Policies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPolicyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "insurance policy not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	var req policyReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if errs := req.resolve(p); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}

	if err := h.Policies.Update(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"policy": toPolicyResp(p)})
}

// DeletePreview handles GET /v1/policies/:id/deletion, showing what
// the confirm action would remove.
func (h *PolicyHandler) DeletePreview(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Policies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPolicyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "insurance policy not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"policy": toPolicyResp(p)})
}

// Delete handles DELETE /v1/policies/:id, the explicit confirm action.
func (h *PolicyHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Policies.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPolicyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "insurance policy not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
