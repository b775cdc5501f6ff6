package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/focusboard/focusboard-api/internal/core/domain"
	"github.com/focusboard/focusboard-api/internal/core/ports"
)

// NoteHandler serves the caller's notes.
type NoteHandler struct {
	service ports.NoteService
}

func NewNoteHandler(service ports.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

type createNoteRequest struct {
	Title   string   `json:"title"   validate:"required,max=200"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
	Pinned  bool     `json:"pinned"`
}

// List handles GET /api/notes. Pinned notes come first.
//
// @Summary      List notes
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        search   query     string  false  "Matches title or content"
// @Param        tag      query     string  false  "Notes carrying this tag"
// @Param        pinned   query     bool    false  "Only pinned or unpinned notes"
// @Param        sort_by  query     string  false  "created_at | updated_at | title"
// @Param        order    query     string  false  "asc | desc"
// @Param        limit    query     int     false  "1..200, default 50"
// @Param        offset   query     int     false  "Rows to skip"
// @Success      200      {array}   domain.Note
// @Failure      400      {object}  errorResponse
// @Router       /api/notes [get]
func (h *NoteHandler) List(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	pinned, err := queryBool(c, "pinned")
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return err
	}

	notes, err := h.service.List(c.Request().Context(), identity.ID, domain.NoteFilter{
		Search: c.QueryParam("search"),
		Tag:    c.QueryParam("tag"),
		Pinned: pinned,
		SortBy: c.QueryParam("sort_by"),
		Order:  c.QueryParam("order"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notes)
}

// Get handles GET /api/notes/:id.
//
// @Summary      Get a note
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Note id"
// @Success      200  {object}  domain.Note
// @Failure      404  {object}  errorResponse
// @Router       /api/notes/{id} [get]
func (h *NoteHandler) Get(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	note, err := h.service.Get(c.Request().Context(), identity.ID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, note)
}

// Create handles POST /api/notes.
//
// @Summary      Create a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createNoteRequest  true  "Note"
// @Success      201   {object}  domain.Note
// @Failure      400   {object}  errorResponse
// @Router       /api/notes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	var req createNoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	note, err := h.service.Create(c.Request().Context(), identity.ID, ports.CreateNoteInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
		Pinned:  req.Pinned,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, note)
}

// Update handles PATCH /api/notes/:id.
//
// @Summary      Update a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int               true  "Note id"
// @Param        body  body      domain.NotePatch  true  "Attributes to change"
// @Success      200   {object}  domain.Note
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/notes/{id} [patch]
func (h *NoteHandler) Update(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var patch domain.NotePatch
	if err := bindPatch(c, &patch); err != nil {
		return err
	}
	note, err := h.service.Update(c.Request().Context(), identity.ID, id, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, note)
}

// Delete handles DELETE /api/notes/:id.
//
// @Summary      Delete a note
// @Tags         notes
// @Security     BearerAuth
// @Param        id   path  int  true  "Note id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/notes/{id} [delete]
func (h *NoteHandler) Delete(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), identity.ID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
