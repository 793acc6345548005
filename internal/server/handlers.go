package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alexisbeaulieu97/gradix/internal/codec"
	"github.com/alexisbeaulieu97/gradix/internal/domain/gradient"
	"github.com/alexisbeaulieu97/gradix/internal/logger"
	"github.com/alexisbeaulieu97/gradix/internal/random"
	"github.com/alexisbeaulieu97/gradix/internal/render"
	gerrors "github.com/alexisbeaulieu97/gradix/pkg/errors"
)

// errorBody is the JSON shape of every failed request.
type errorBody struct {
	Message string                     `json:"message"`
	Errors  []gradient.ValidationIssue `json:"errors,omitempty"`
}

func (a *API) listGradients(c *gin.Context) {
	list, err := a.svc.List()
	if err != nil {
		a.internalError(c, err, "Failed to fetch gradients")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *API) getGradient(c *gin.Context) {
	g, err := a.svc.Load(c.Param("id"))
	if err != nil {
		a.fail(c, err, "Failed to fetch gradient")
		return
	}
	c.JSON(http.StatusOK, g)
}

func (a *API) saveGradient(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Message: "Invalid gradient data"})
		return
	}

	g, err := codec.Decode(body, codec.FormatJSON)
	if err != nil {
		a.fail(c, err, "Failed to save gradient")
		return
	}

	saved, err := a.svc.Save(g)
	if err != nil {
		a.fail(c, err, "Failed to save gradient")
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (a *API) deleteGradient(c *gin.Context) {
	if err := a.svc.Delete(c.Param("id")); err != nil {
		a.fail(c, err, "Failed to delete gradient")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Gradient deleted successfully"})
}

func (a *API) clearGradients(c *gin.Context) {
	if err := a.svc.Clear(); err != nil {
		a.internalError(c, err, "Failed to delete gradients")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All gradients deleted successfully"})
}

func (a *API) gradientCode(c *gin.Context) {
	format, err := render.ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Message: err.Error()})
		return
	}

	opts := a.opts.Render
	if raw, ok := c.GetQuery("colorFormat"); ok {
		if opts.ColorFormat, err = render.ParseColorFormat(raw); err != nil {
			c.JSON(http.StatusBadRequest, errorBody{Message: err.Error()})
			return
		}
	}
	if raw, ok := c.GetQuery("locations"); ok {
		if opts.IncludeLocations, err = strconv.ParseBool(raw); err != nil {
			c.JSON(http.StatusBadRequest, errorBody{Message: "locations must be true or false"})
			return
		}
	}

	code, err := a.svc.Code(c.Param("id"), format, opts)
	if err != nil {
		a.fail(c, err, "Failed to render gradient")
		return
	}

	contentType := "text/plain; charset=utf-8"
	if format == render.FormatSVG {
		contentType = "image/svg+xml"
	}
	c.Data(http.StatusOK, contentType, []byte(code))
}

// randomGradient uses a generator per request; generators are not safe for
// concurrent use.
func (a *API) randomGradient(c *gin.Context) {
	gen := random.New(nil, a.opts.Random)
	if raw, ok := c.GetQuery("seed"); ok {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorBody{Message: "seed must be an unsigned integer"})
			return
		}
		gen = random.NewSeeded(seed, a.opts.Random)
	}

	g, err := gen.Generate()
	if err != nil {
		a.internalError(c, err, "Failed to generate gradient")
		return
	}
	c.JSON(http.StatusOK, g)
}

// fail maps domain errors onto client errors. Anything else is a 500 with
// fallback as its message.
func (a *API) fail(c *gin.Context, err error, fallback string) {
	var parseErr *gerrors.ParseError
	if errors.As(err, &parseErr) {
		c.JSON(http.StatusBadRequest, errorBody{Message: "Invalid gradient data"})
		return
	}

	var domainErr *gerrors.DomainError
	if !errors.As(err, &domainErr) {
		a.internalError(c, err, fallback)
		return
	}

	switch domainErr.Code {
	case gerrors.ErrCodeNotFound:
		c.JSON(http.StatusNotFound, errorBody{Message: "Gradient not found"})
	case gerrors.ErrCodeInvalidGradient, gerrors.ErrCodeInvalidColor, gerrors.ErrCodeMissingIdentifier:
		issues := []gradient.ValidationIssue{{Field: domainErr.Field, Message: domainErr.Message}}
		var invalid *gradient.InvalidError
		if errors.As(err, &invalid) && len(invalid.Issues) > 0 {
			issues = invalid.Issues
		}
		c.JSON(http.StatusBadRequest, errorBody{Message: "Invalid gradient data", Errors: issues})
	default:
		a.internalError(c, err, fallback)
	}
}

func (a *API) internalError(c *gin.Context, err error, message string) {
	a.log.WithFields(logFields(c)).Error(err, message)
	c.JSON(http.StatusInternalServerError, errorBody{Message: message})
}

func logFields(c *gin.Context) logger.Fields {
	return logger.Fields{"method": c.Request.Method, "path": c.Request.URL.Path}
}
