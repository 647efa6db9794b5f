package web

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"kitabcloud-admin/internal/domains/crud"
	"kitabcloud-admin/internal/domains/entity"
	"kitabcloud-admin/internal/domains/table"
	"kitabcloud-admin/pkg/logger"
)

// ========================================
// LIST
// ========================================

type listBody struct {
	Grid  table.Grid
	Sizes []int
	Query string
}

// List handles GET /:resource. Every visit re-fetches the whole row set, or
// the backend search results when ?q= is given.
func (h *Handler) List(c *gin.Context) {
	d, ok := h.descriptor(c)
	if !ok {
		return
	}

	view := crud.NewListView(h.crudService(c), d)
	view.Query = strings.TrimSpace(c.Query("q"))
	out := view.Load(c.Request.Context())
	if h.expired(c, out.Err) {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(table.DefaultPageSize)))

	notices := append(h.popFlash(c), out.Notices...)
	h.html(c, http.StatusOK, "list", d.Plural, notices, listBody{
		Grid:  table.Build(d, view.Rows, page, size),
		Sizes: table.PageSizes,
		Query: view.Query,
	})
}

// Export handles GET /:resource/export: the freshly fetched rows as XLSX.
func (h *Handler) Export(c *gin.Context) {
	d, ok := h.descriptor(c)
	if !ok {
		return
	}

	view := crud.NewListView(h.crudService(c), d)
	out := view.Load(c.Request.Context())
	if !out.OK() {
		if h.expired(c, out.Err) {
			return
		}
		h.setFlash(c, out.Notices...)
		c.Redirect(http.StatusSeeOther, d.Route())
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+table.ExportFileName(d)+`"`)
	if err := table.WriteXLSX(c.Writer, d, view.Rows); err != nil {
		logger.Error("export failed for "+d.Name, err)
		c.Status(http.StatusInternalServerError)
	}
}

type detailBody struct {
	Entity     *entity.Descriptor
	ID         string
	Attributes []table.Attribute
}

// Show handles GET /:resource/:id, the read-only detail view. A record that
// cannot be fetched sends the admin back to the list.
func (h *Handler) Show(c *gin.Context) {
	d, ok := h.descriptor(c)
	if !ok {
		return
	}

	id := c.Param("id")
	rec, err := h.crudService(c).Fetch(c.Request.Context(), d, id)
	if err != nil {
		if h.expired(c, err) {
			return
		}
		logger.Error("fetch for view failed for "+d.Name+" "+id, err)
		h.setFlash(c, errorNotice(crud.DetailsFailed(d)))
		c.Redirect(http.StatusSeeOther, d.Route())
		return
	}

	h.html(c, http.StatusOK, "view", d.Singular+" "+id, h.popFlash(c), detailBody{
		Entity:     d,
		ID:         id,
		Attributes: table.Detail(d, rec),
	})
}

// ========================================
// DELETE & STATUS
// ========================================

type confirmBody struct {
	Entity *entity.Descriptor
	ID     string
}

// ConfirmDelete handles GET /:resource/:id/delete: the confirmation step.
func (h *Handler) ConfirmDelete(c *gin.Context) {
	d, ok := h.descriptor(c)
	if !ok {
		return
	}
	if !d.CanDelete() {
		h.NotFound(c)
		return
	}
	h.html(c, http.StatusOK, "confirm", "Delete "+d.Singular, nil, confirmBody{
		Entity: d,
		ID:     c.Param("id"),
	})
}

// Delete handles POST /:resource/:id/delete, the confirmed commit.
func (h *Handler) Delete(c *gin.Context) {
	d, ok := h.descriptor(c)
	if !ok {
		return
	}

	if err := h.crudService(c).Delete(c.Request.Context(), d, c.Param("id")); err != nil {
		if h.expired(c, err) {
			return
		}
		h.setFlash(c, errorNotice(crud.DeleteFailed(d, err)))
	} else {
		h.setFlash(c, successNotice(crud.DeletedMessage(d)))
	}
	c.Redirect(http.StatusSeeOther, d.Route())
}

// ToggleStatus handles POST /:resource/:id/status. The list is re-fetched
// by the redirect whatever the outcome.
func (h *Handler) ToggleStatus(c *gin.Context) {
	d, ok := h.descriptor(c)
	if !ok {
		return
	}

	status, _ := entity.Truthy(c.PostForm("status"))
	if err := h.crudService(c).SetStatus(c.Request.Context(), d, c.Param("id"), status); err != nil {
		if h.expired(c, err) {
			return
		}
		h.setFlash(c, errorNotice(crud.StatusFailed(err)))
	} else {
		h.setFlash(c, successNotice(crud.StatusUpdated))
	}

	target := d.Route()
	if ret := c.PostForm("return"); ret != "" {
		vals, _ := url.ParseQuery(ret)
		if term := c.PostForm("q"); term != "" {
			vals.Set("q", term)
		}
		target += "?" + vals.Encode()
	}
	c.Redirect(http.StatusSeeOther, target)
}

// ========================================
// FORMS
// ========================================

// AddForm handles GET /:resource/add.
func (h *Handler) AddForm(c *gin.Context) {
	d, ok := h.descriptor(c)
	if !ok {
		return
	}

	form, err := h.crudService(c).NewForm(c.Request.Context(), d)
	if err != nil {
		h.NotFound(c)
		return
	}
	h.renderForm(c, http.StatusOK, form, h.popFlash(c))
}

// EditForm handles GET /:resource/edit/:id. A record that cannot be fetched
// sends the admin back to the list.
func (h *Handler) EditForm(c *gin.Context) {
	d, ok := h.descriptor(c)
	if !ok {
		return
	}

	form, err := h.crudService(c).EditForm(c.Request.Context(), d, c.Param("id"))
	if err != nil {
		if errors.Is(err, crud.ErrReadOnly) {
			h.NotFound(c)
			return
		}
		if h.expired(c, err) {
			return
		}
		h.setFlash(c, errorNotice(crud.DetailsFailed(d)))
		c.Redirect(http.StatusSeeOther, d.Route())
		return
	}
	h.renderForm(c, http.StatusOK, form, h.popFlash(c))
}

// Create handles POST /:resource/add.
func (h *Handler) Create(c *gin.Context) {
	h.submit(c, entity.ModeAdd)
}

// Update handles POST /:resource/edit/:id.
func (h *Handler) Update(c *gin.Context) {
	h.submit(c, entity.ModeEdit)
}

func (h *Handler) submit(c *gin.Context, mode entity.Mode) {
	d, ok := h.descriptor(c)
	if !ok {
		return
	}
	if (mode == entity.ModeAdd && !d.CanAdd()) || (mode == entity.ModeEdit && !d.CanEdit()) {
		h.NotFound(c)
		return
	}

	if mode == entity.ModeAdd && c.Query("reset") != "" {
		h.reset(c, d)
		return
	}

	form := &crud.Form{Entity: d, Mode: mode, Values: d.Defaults()}
	if mode == entity.ModeEdit {
		form.ID = c.Param("id")
	}
	if err := bindForm(c, form); err != nil {
		h.renderForm(c, http.StatusBadRequest, form, []crud.Notice{errorNotice(err.Error())})
		return
	}

	svc := h.crudService(c)
	ctx := c.Request.Context()
	res := svc.Submit(ctx, form)

	switch {
	case res.Saved:
		h.setFlash(c, res.Notice)
		c.Redirect(http.StatusSeeOther, d.Route())
	case errors.Is(res.Err, crud.ErrInvalidForm):
		h.withOptions(ctx, svc, form)
		h.renderForm(c, http.StatusUnprocessableEntity, form, nil)
	case h.expired(c, res.Err):
	default:
		h.withOptions(ctx, svc, form)
		h.renderForm(c, http.StatusOK, form, []crud.Notice{res.Notice})
	}
}

// reset answers the Reset button of an add form: the posted values are
// dropped for the descriptor defaults and nothing is submitted.
func (h *Handler) reset(c *gin.Context, d *entity.Descriptor) {
	form, err := h.crudService(c).NewForm(c.Request.Context(), d)
	if err != nil {
		h.NotFound(c)
		return
	}
	if err := bindForm(c, form); err != nil {
		logger.Warn("reset discarded unreadable input", map[string]interface{}{"entity": d.Name, "error": err.Error()})
	}
	form.Reset()
	h.renderForm(c, http.StatusOK, form, nil)
}

func (h *Handler) withOptions(ctx context.Context, svc *crud.Service, f *crud.Form) {
	if f.Options == nil {
		f.Options = svc.Options(ctx, f.Entity)
	}
}

// bindForm copies the posted values into the form. Unchecked switches post
// nothing and read as false; an empty file input keeps the field unset.
func bindForm(c *gin.Context, f *crud.Form) error {
	for _, field := range f.Entity.Fields {
		switch field.Kind {
		case entity.KindSwitch:
			if err := f.Set(field.Name, c.PostForm(field.Name) != ""); err != nil {
				return err
			}
		case entity.KindFile:
			fh, err := c.FormFile(field.Name)
			if err != nil {
				continue
			}
			if err := f.Set(field.Name, uploadedFile(fh)); err != nil {
				return err
			}
		default:
			if err := f.SetInput(field.Name, c.PostForm(field.Name)); err != nil {
				return err
			}
		}
	}
	return nil
}

func uploadedFile(fh *multipart.FileHeader) *entity.File {
	return entity.NewFile(fh.Filename, fh.Header.Get("Content-Type"), fh.Size, func() (io.ReadCloser, error) {
		return fh.Open()
	})
}

func (h *Handler) renderForm(c *gin.Context, status int, f *crud.Form, notices []crud.Notice) {
	title := "Add " + f.Entity.Singular
	if f.Mode == entity.ModeEdit {
		title = "Edit " + f.Entity.Singular
	}
	h.html(c, status, "form", title, notices, newFormBody(f))
}
