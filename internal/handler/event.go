// This file implements the claim event endpoints. Recording a claim
// additionally publishes a claim.reported message for the audit
// consumer; a broker failure never fails the request.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pojisteni/insurance-agency/internal/model"
	"github.com/pojisteni/insurance-agency/internal/queue"
	"github.com/pojisteni/insurance-agency/internal/repository"
	"github.com/pojisteni/insurance-agency/internal/storage"
	"github.com/pojisteni/insurance-agency/internal/utils"
	"github.com/pojisteni/insurance-agency/internal/validate"
)

// EventHandler bundles the stores needed by the claim event endpoints.
// Publish is optional; when nil no message is emitted.
type EventHandler struct {
	Events  EventStore
	Holders PolicyHolderStore
	Files   AttachmentStore
	Publish func(ctx context.Context, ev queue.ClaimReportedEvent) error
}

func NewEventHandler(e EventStore, h PolicyHolderStore, f AttachmentStore,
	publish func(ctx context.Context, ev queue.ClaimReportedEvent) error) *EventHandler {
	return &EventHandler{Events: e, Holders: h, Files: f, Publish: publish}
}

// ----- DTOs -----

type eventReq struct {
	Title      string `json:"title" form:"title"`
	ContractNo string `json:"contract_no" form:"contract_no"`
	EventDate  string `json:"event_date" form:"event_date"`
	Desc       string `json:"desc" form:"desc"`
}

type eventResp struct {
	ID             uint64    `json:"id"`
	PolicyHolderID uint64    `json:"policyholder_id"`
	Title          string    `json:"title"`
	ContractNo     string    `json:"contract_no"`
	EventDate      string    `json:"event_date"`
	Desc           string    `json:"desc"`
	Attach1        *string   `json:"attach1,omitempty"`
	Attach2        *string   `json:"attach2,omitempty"`
	Created        time.Time `json:"created"`
	Updated        time.Time `json:"updated"`
}

func toEventResp(e *model.Event) eventResp {
	return eventResp{
		ID:             e.ID,
		PolicyHolderID: e.PolicyHolderID,
		Title:          e.Title,
		ContractNo:     e.ContractNo,
		EventDate:      e.EventDate.Format("2006-01-02"),
		Desc:           e.Desc,
		Attach1:        e.Attach1,
		Attach2:        e.Attach2,
		Created:        e.Created,
		Updated:        e.Updated,
	}
}

// resolve parses and validates the request and copies it onto the
// model. The title is left as submitted on create; Update capitalizes
// it separately.
func (req *eventReq) resolve(e *model.Event) []validate.FieldError {
	date, ok := parseDate(req.EventDate)
	var errs []validate.FieldError
	if !ok {
		errs = append(errs, validate.FieldError{Field: "event_date", Message: validate.MsgInvalidChoice})
	}
	errs = append(errs, validate.Event(req.Title, req.ContractNo, date)...)
	if len(errs) > 0 {
		return errs
	}
	e.Title = req.Title
	e.ContractNo = req.ContractNo
	e.EventDate = date
	e.Desc = req.Desc
	return nil
}

// List handles GET /v1/events.
func (h *EventHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	count, err := h.Events.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	page := utils.Paginate(count, c.QueryParam("page"))

	events, err := h.Events.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items := make([]eventResp, 0, len(events))
	for _, e := range events {
		items = append(items, toEventResp(e))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":    items,
		"count":    page.Count,
		"pages":    page.Pages,
		"page_num": page.Number,
	})
}

// Detail handles GET /v1/events/:id. The attachment display names are
// included so a client can label download links without knowing the
// stored filename scheme.
func (h *EventHandler) Detail(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	e, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	var name1, name2 *string
	if e.Attach1 != nil {
		n := storage.DisplayName(*e.Attach1)
		name1 = &n
	}
	if e.Attach2 != nil {
		n := storage.DisplayName(*e.Attach2)
		name2 = &n
	}
	return c.JSON(http.StatusOK, echo.Map{
		"event": toEventResp(e),
		"name1": name1,
		"name2": name2,
	})
}

// Create handles POST /v1/policyholders/:id/events with optional
// attach1/attach2 uploads.
func (h *EventHandler) Create(c echo.Context) error {
	holderID, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	holder, err := h.Holders.GetByID(ctx, holderID)
	if err != nil {
		if errors.Is(err, repository.ErrPolicyHolderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "policyholder not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	var req eventReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	e := model.Event{PolicyHolderID: holderID}
	if errs := req.resolve(&e); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}

	var saved []string
	for name, dst := range map[string]**string{"attach1": &e.Attach1, "attach2": &e.Attach2} {
		if fh := formFile(c, name); fh != nil {
			stored, err := h.Files.Save(fh)
			if err != nil {
				for _, s := range saved {
					_ = h.Files.Remove(s)
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store attachment failed"})
			}
			*dst = &stored
			saved = append(saved, stored)
		}
	}

	if err := h.Events.Create(ctx, &e); err != nil {
		for _, s := range saved {
			_ = h.Files.Remove(s)
		}
		if errors.Is(err, repository.ErrPolicyHolderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "policyholder not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}

	if h.Publish != nil {
		_ = h.Publish(ctx, queue.ClaimReportedEvent{
			EventID:        e.ID,
			PolicyHolderID: holder.ID,
			BirthID:        holder.BirthID,
			Title:          e.Title,
			ContractNo:     e.ContractNo,
			EventDate:      e.EventDate.Format("2006-01-02"),
			ReportedAt:     time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusCreated, echo.Map{"event": toEventResp(&e)})
}

// Update handles PUT /v1/events/:id. The title is normalized by
// capitalizing its first letter; new uploads replace the stored
// attachments.
func (h *EventHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	e, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	var req eventReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	old1, old2 := e.Attach1, e.Attach2
	if errs := req.resolve(e); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}
	e.Title = utils.Capitalize(e.Title)

	var saved []string
	replaced := make([]*string, 0, 2)
	if fh := formFile(c, "attach1"); fh != nil {
		stored, err := h.Files.Save(fh)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store attachment failed"})
		}
		e.Attach1 = &stored
		saved = append(saved, stored)
		replaced = append(replaced, old1)
	}
	if fh := formFile(c, "attach2"); fh != nil {
		stored, err := h.Files.Save(fh)
		if err != nil {
			for _, s := range saved {
				_ = h.Files.Remove(s)
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store attachment failed"})
		}
		e.Attach2 = &stored
		saved = append(saved, stored)
		replaced = append(replaced, old2)
	}

	if err := h.Events.Update(ctx, e); err != nil {
		for _, s := range saved {
			_ = h.Files.Remove(s)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	for _, old := range replaced {
		if old != nil {
			_ = h.Files.Remove(*old)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"event": toEventResp(e)})
}

// DeletePreview handles GET /v1/events/:id/deletion.
func (h *EventHandler) DeletePreview(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	e, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"event": toEventResp(e)})
}

// Delete handles DELETE /v1/events/:id, removing the row and its
// stored attachments.
func (h *EventHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	e, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.Events.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if e.Attach1 != nil {
		_ = h.Files.Remove(*e.Attach1)
	}
	if e.Attach2 != nil {
		_ = h.Files.Remove(*e.Attach2)
	}
	return c.NoContent(http.StatusNoContent)
}
