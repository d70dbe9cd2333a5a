// This file implements the policyholder endpoints: paginated listing
// and detail are public, while create, update and the two-phase delete
// run behind the JWT middleware.
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

// PolicyHolderHandler bundles the stores needed by the policyholder
// endpoints. The policy and event stores feed the detail view and the
// delete confirmation preview.
type PolicyHolderHandler struct {
	Holders  PolicyHolderStore
	Policies PolicyStore
	Events   EventStore
	Files    AttachmentStore
}

func NewPolicyHolderHandler(h PolicyHolderStore, p PolicyStore, e EventStore, f AttachmentStore) *PolicyHolderHandler {
	return &PolicyHolderHandler{Holders: h, Policies: p, Events: e, Files: f}
}

// ----- DTOs -----

type policyHolderReq struct {
	Name        string `json:"name" form:"name"`
	Lastname    string `json:"lastname" form:"lastname"`
	BirthID     string `json:"birth_id" form:"birth_id"`
	CellPhoneNo string `json:"cell_phone_no" form:"cell_phone_no"`
	Email       string `json:"email" form:"email"`
	Street      string `json:"street" form:"street"`
	StreetNo    string `json:"street_no" form:"street_no"`
	City        string `json:"city" form:"city"`
	Country     string `json:"country" form:"country"`
	ZipCode     string `json:"zip_code" form:"zip_code"`
}

type policyHolderResp struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Lastname    string    `json:"lastname"`
	BirthID     string    `json:"birth_id"`
	CellPhoneNo string    `json:"cell_phone_no"`
	Email       string    `json:"email"`
	Street      string    `json:"street"`
	StreetNo    string    `json:"street_no"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	ZipCode     string    `json:"zip_code"`
	Photo       *string   `json:"photo,omitempty"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

func toPolicyHolderResp(p *model.PolicyHolder) policyHolderResp {
	return policyHolderResp{
		ID: p.ID, Name: p.Name, Lastname: p.Lastname, BirthID: p.BirthID,
		CellPhoneNo: p.CellPhoneNo, Email: p.Email, Street: p.Street,
		StreetNo: p.StreetNo, City: p.City, Country: p.Country,
		ZipCode: p.ZipCode, Photo: p.Photo, Created: p.Created, Updated: p.Updated,
	}
}

// applyTo copies the request fields onto a model, normalizing the
// name fields to title case before they are persisted.
func (req *policyHolderReq) applyTo(p *model.PolicyHolder) {
	p.Name = utils.TitleCase(req.Name)
	p.Lastname = utils.TitleCase(req.Lastname)
	p.BirthID = req.BirthID
	p.CellPhoneNo = req.CellPhoneNo
	p.Email = req.Email
	p.Street = req.Street
	p.StreetNo = req.StreetNo
	p.City = req.City
	p.Country = req.Country
	p.ZipCode = req.ZipCode
}

// List handles GET /v1/policyholders. The page number comes from the
// ?page= query parameter; see utils.Paginate for the clamping rules.
func (h *PolicyHolderHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	count, err := h.Holders.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	page := utils.Paginate(count, c.QueryParam("page"))

	holders, err := h.Holders.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items := make([]policyHolderResp, 0, len(holders))
	for _, p := range holders {
		items = append(items, toPolicyHolderResp(p))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":    items,
		"count":    page.Count,
		"pages":    page.Pages,
		"page_num": page.Number,
	})
}

// Detail handles GET /v1/policyholders/:id and returns the record
// together with its insurance policies and claim events.
func (h *PolicyHolderHandler) Detail(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	holder, err := h.Holders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPolicyHolderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "policyholder not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	policies, err := h.Policies.ListByHolder(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	events, err := h.Events.ListByHolder(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	policyItems := make([]policyResp, 0, len(policies))
	for _, p := range policies {
		policyItems = append(policyItems, toPolicyResp(p))
	}
	eventItems := make([]eventResp, 0, len(events))
	for _, e := range events {
		eventItems = append(eventItems, toEventResp(e))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"policyholder": toPolicyHolderResp(holder),
		"policies":     policyItems,
		"events":       eventItems,
	})
}

// Create handles POST /v1/policyholders. The payload may arrive as
// JSON or as a multipart form with an optional photo upload. Nothing
// is written when validation fails.
func (h *PolicyHolderHandler) Create(c echo.Context) error {
	var req policyHolderReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	var p model.PolicyHolder
	req.applyTo(&p)
	if errs := validate.PolicyHolder(&p); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}

	if fh := formFile(c, "photo"); fh != nil {
		name, err := h.Files.Save(fh)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store photo failed"})
		}
		p.Photo = &name
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Holders.Create(ctx, &p); err != nil {
		if p.Photo != nil {
			_ = h.Files.Remove(*p.Photo)
		}
		if errors.Is(err, repository.ErrBirthIDExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "birth_id already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"policyholder": toPolicyHolderResp(&p)})
}

// Update handles PUT /v1/policyholders/:id. The existing record is
// loaded first, so a missing id yields 404 before any validation; a
// validation failure leaves the stored record untouched.
func (h *PolicyHolderHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Holders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPolicyHolderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "policyholder not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	var req policyHolderReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	oldPhoto := p.Photo
	req.applyTo(p)
	if errs := validate.PolicyHolder(p); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}

	var newPhoto *string
	if fh := formFile(c, "photo"); fh != nil {
		name, err := h.Files.Save(fh)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store photo failed"})
		}
		newPhoto = &name
		p.Photo = newPhoto
	}

	if err := h.Holders.Update(ctx, p); err != nil {
		if newPhoto != nil {
			_ = h.Files.Remove(*newPhoto)
		}
		if errors.Is(err, repository.ErrBirthIDExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "birth_id already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if newPhoto != nil && oldPhoto != nil {
		_ = h.Files.Remove(*oldPhoto)
	}
	return c.JSON(http.StatusOK, echo.Map{"policyholder": toPolicyHolderResp(p)})
}

// DeletePreview handles GET /v1/policyholders/:id/deletion. It is the
// first step of the two-phase delete: the caller sees the record and
// how many dependent rows the confirm action would remove.
func (h *PolicyHolderHandler) DeletePreview(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	holder, err := h.Holders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPolicyHolderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "policyholder not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	policies, err := h.Policies.CountByHolder(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	events, err := h.Events.CountByHolder(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"policyholder":       toPolicyHolderResp(holder),
		"dependent_policies": policies,
		"dependent_events":   events,
	})
}

// Delete handles DELETE /v1/policyholders/:id, the explicit confirm
// action. All owned policies and events go with the record; their
// attachment files are cleaned up after the transaction commits.
func (h *PolicyHolderHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	holder, err := h.Holders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPolicyHolderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "policyholder not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	events, err := h.Events.ListByHolder(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if err := h.Holders.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPolicyHolderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "policyholder not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}

	if holder.Photo != nil {
		_ = h.Files.Remove(*holder.Photo)
	}
	for _, e := range events {
		if e.Attach1 != nil {
			_ = h.Files.Remove(*e.Attach1)
		}
		if e.Attach2 != nil {
			_ = h.Files.Remove(*e.Attach2)
		}
	}
	return c.NoContent(http.StatusNoContent)
}
