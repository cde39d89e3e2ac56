package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-chi/chi/v5/middleware"
	govalidator "github.com/go-playground/validator/v10"
	"github.com/metinatakli/seat-inventory/api"
	"github.com/metinatakli/seat-inventory/internal/domain"
	"github.com/metinatakli/seat-inventory/internal/validator"
)

const (
	ErrInternalServer    = "The server encountered a problem and could not process your request"
	ErrNotFound          = "The requested resource not found"
	ErrMethodNotAllowed  = "The %s method is not supported for this resource"
	ErrFailedValidation  = "One or more fields are invalid"
	ErrLockContention    = "The seats are being booked by another request, please try again"
	ErrHoldExpired       = "Your seat hold has expired, please select your seats again"
	ErrShowAlreadyOpened = "The show inventory is already open"
	ErrPricingFailure    = "The price of the selected seats could not be computed"

	retryAfterSeconds = "1"
)

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.contextGetLogger(r).Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.errorResponseWithHeaders(w, r, status, message, nil)
}

func (app *Application) errorResponseWithHeaders(w http.ResponseWriter, r *http.Request, status int, message string, headers http.Header) {
	resp := api.ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	err := app.writeJSON(w, status, resp, headers)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, ErrNotFound)
}

func (app *Application) notFoundResponseWithErr(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusNotFound, err.Error())
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, fmt.Sprintf(ErrMethodNotAllowed, r.Method))
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) editConflictResponseWithErr(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusConflict, err.Error())
}

func (app *Application) lockContentionResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponseWithHeaders(w, r, http.StatusConflict, ErrLockContention, http.Header{
		"Retry-After": []string{retryAfterSeconds},
	})
}

func (app *Application) holdExpiredResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusGone, ErrHoldExpired)
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrs govalidator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		app.badRequestResponse(w, r, err)
		return
	}

	resp := api.ValidationErrorResponse{
		Message:          ErrFailedValidation,
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: make([]api.ValidationError, 0, len(validationErrs)),
	}

	for _, fe := range validationErrs {
		resp.ValidationErrors = append(resp.ValidationErrors, api.ValidationError{
			Field: fe.Field(),
			Issue: validator.ValidationMessage(fe),
		})
	}

	err = app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// invalidParameterResponse answers requests whose path or query parameters
// were rejected by the OpenAPI validation or by parameter binding.
func (app *Application) invalidParameterResponse(w http.ResponseWriter, r *http.Request, err error) {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) && reqErr.Parameter != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid %s parameter %q", reqErr.Parameter.In, reqErr.Parameter.Name))
		return
	}

	var paramErr *api.InvalidParamFormatError
	if errors.As(err, &paramErr) {
		app.badRequestResponse(w, r, fmt.Errorf("invalid parameter %q", paramErr.ParamName))
		return
	}

	app.badRequestResponse(w, r, err)
}

// bookingErrorResponse maps an error returned by the booking coordinator to
// its HTTP response.
func (app *Application) bookingErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		app.badRequestResponse(w, r, err)
	case errors.Is(err, domain.ErrRecordNotFound):
		app.notFoundResponseWithErr(w, r, err)
	case errors.Is(err, domain.ErrLockContention), errors.Is(err, domain.ErrLockTimeout):
		app.lockContentionResponse(w, r)
	case errors.Is(err, domain.ErrSeatAlreadyTaken):
		app.editConflictResponseWithErr(w, r, err)
	case errors.Is(err, domain.ErrHoldExpired):
		app.holdExpiredResponse(w, r)
	case errors.Is(err, domain.ErrShowAlreadyAllocated):
		app.errorResponse(w, r, http.StatusConflict, ErrShowAlreadyOpened)
	case errors.Is(err, domain.ErrPricingFailure):
		app.logError(r, err)
		app.errorResponse(w, r, http.StatusInternalServerError, ErrPricingFailure)
	default:
		app.serverErrorResponse(w, r, err)
	}
}
