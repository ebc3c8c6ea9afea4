package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"gear4music/internal/database"
	"gear4music/internal/forms"
	"gear4music/internal/metrics"
	"gear4music/internal/middleware"
	"gear4music/internal/models"

	"github.com/gin-gonic/gin"
)

const msgInstrumentNotFound = "Instrument not found"

//
// LIST / DETAILS
//

func (h *Handler) ListInstruments(c *gin.Context) {
	instruments, err := h.store.ListInstruments(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}

	render(c, http.StatusOK, "instrumentos.html", gin.H{
		"instruments": instruments,
	})
}

func (h *Handler) ShowInstrument(c *gin.Context) {
	id, ok := instrumentID(c)
	if !ok {
		renderNotFound(c, msgInstrumentNotFound)
		return
	}

	instrument, err := h.store.GetInstrument(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err)
		return
	}

	render(c, http.StatusOK, "details.html", gin.H{
		"instrument": instrument,
	})
}

//
// SEARCH
//

func (h *Handler) Search(c *gin.Context) {
	query := c.Query("query")

	instruments := []models.Instrument{}
	if searchAllowed(query) {
		found, err := h.store.SearchInstruments(c.Request.Context(), query)
		if err != nil {
			h.serverError(c, err)
			return
		}
		instruments = found
	}

	render(c, http.StatusOK, "search_results.html", gin.H{
		"instruments": instruments,
		"query":       query,
	})
}

// searchAllowed rejects empty queries and any containing '%' or whitespace.
// The store query is parameterized either way.
func searchAllowed(query string) bool {
	return query != "" &&
		!strings.Contains(query, "%") &&
		!strings.ContainsFunc(query, unicode.IsSpace)
}

//
// CREATE
//

func (h *Handler) ShowCreateInstrument(c *gin.Context) {
	choices, err := h.instrumentChoices(c)
	if err != nil {
		h.serverError(c, err)
		return
	}
	renderInstrumentForm(c, http.StatusOK, "create_instrument.html", 0, forms.InstrumentForm{}, choices, nil)
}

func (h *Handler) CreateInstrument(c *gin.Context) {
	choices, err := h.instrumentChoices(c)
	if err != nil {
		h.serverError(c, err)
		return
	}

	var form forms.InstrumentForm
	_ = c.ShouldBind(&form)
	form.Normalize()

	if errs := form.Validate(choices); !errs.Valid() {
		renderInstrumentForm(c, http.StatusBadRequest, "create_instrument.html", 0, form, choices, errs)
		return
	}

	var instrument models.Instrument
	form.Apply(&instrument)

	user, _ := middleware.CurrentUser(c)
	if err := h.store.CreateInstrument(c.Request.Context(), user.ID, &instrument); err != nil {
		h.serverError(c, err)
		return
	}
	metrics.RecordInstrumentChange("create")

	c.Redirect(http.StatusFound, "/instrumentos/")
}

//
// UPDATE
//

func (h *Handler) ShowUpdateInstrument(c *gin.Context) {
	id, ok := instrumentID(c)
	if !ok {
		renderNotFound(c, msgInstrumentNotFound)
		return
	}

	instrument, err := h.store.GetInstrument(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err)
		return
	}

	choices, err := h.instrumentChoices(c)
	if err != nil {
		h.serverError(c, err)
		return
	}

	form := forms.InstrumentFormFrom(*instrument)
	renderInstrumentForm(c, http.StatusOK, "update_instrument.html", id, form, choices, nil)
}

func (h *Handler) UpdateInstrument(c *gin.Context) {
	id, ok := instrumentID(c)
	if !ok {
		renderNotFound(c, msgInstrumentNotFound)
		return
	}

	instrument, err := h.store.GetInstrument(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err)
		return
	}

	choices, err := h.instrumentChoices(c)
	if err != nil {
		h.serverError(c, err)
		return
	}

	var form forms.InstrumentForm
	_ = c.ShouldBind(&form)
	form.Normalize()

	if errs := form.Validate(choices); !errs.Valid() {
		renderInstrumentForm(c, http.StatusBadRequest, "update_instrument.html", id, form, choices, errs)
		return
	}

	form.Apply(instrument)

	user, _ := middleware.CurrentUser(c)
	if err := h.store.UpdateInstrument(c.Request.Context(), user.ID, instrument); err != nil {
		h.storeError(c, err)
		return
	}
	metrics.RecordInstrumentChange("update")

	c.Redirect(http.StatusFound, "/instrumentos/")
}

//
// DELETE
//

func (h *Handler) DeleteInstrument(c *gin.Context) {
	id, ok := instrumentID(c)
	if !ok {
		renderNotFound(c, msgInstrumentNotFound)
		return
	}

	user, _ := middleware.CurrentUser(c)
	if err := h.store.DeleteInstrument(c.Request.Context(), user.ID, id); err != nil {
		h.storeError(c, err)
		return
	}
	metrics.RecordInstrumentChange("delete")

	c.Redirect(http.StatusFound, "/instrumentos/")
}

//
// helpers
//

// instrumentChoices loads the current select options; they are never cached.
func (h *Handler) instrumentChoices(c *gin.Context) (forms.InstrumentChoices, error) {
	categories, err := h.store.ListCategories(c.Request.Context())
	if err != nil {
		return forms.InstrumentChoices{}, err
	}
	suppliers, err := h.store.ListSuppliers(c.Request.Context())
	if err != nil {
		return forms.InstrumentChoices{}, err
	}
	return forms.InstrumentChoices{Categories: categories, Suppliers: suppliers}, nil
}

func renderInstrumentForm(c *gin.Context, status int, tmpl string, id uint, form forms.InstrumentForm, choices forms.InstrumentChoices, errs forms.Errors) {
	if errs == nil {
		errs = forms.Errors{}
	}
	render(c, status, tmpl, gin.H{
		"instrumentID": id,
		"form":         form,
		"categories":   choices.Categories,
		"suppliers":    choices.Suppliers,
		"errors":       errs,
	})
}

// storeError answers 404 for a missing row and 500 for anything else.
func (h *Handler) storeError(c *gin.Context, err error) {
	if errors.Is(err, database.ErrNotFound) {
		renderNotFound(c, msgInstrumentNotFound)
		return
	}
	h.serverError(c, err)
}

func instrumentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
