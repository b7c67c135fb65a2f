package controller

import (
	"edu_eval_backend/internal/util"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError maps service errors onto the response envelope. Only validation
// messages reach the caller; anything else is logged and answered generically.
func respondError(ctx *gin.Context, err error) {
	var ve *util.ValidationError
	switch {
	case errors.As(err, &ve):
		util.BadRequest(ctx, ve.Error())
	case errors.Is(err, util.ErrSubmissionInFlight):
		util.Conflict(ctx, "A submission for this user is already in progress")
	case errors.Is(err, util.ErrReportNotFound), errors.Is(err, util.ErrExportNotFound):
		util.NotFound(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

func bindError(ctx *gin.Context, err error) {
	util.Error(ctx, http.StatusBadRequest, "Invalid request: "+bindMessage(err))
}

// bindMessage describes a binding failure by request field, never by Go type.
func bindMessage(err error) string {
	var fields validator.ValidationErrors
	var syntax *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &fields):
		msgs := make([]string, 0, len(fields))
		for _, fe := range fields {
			msgs = append(msgs, fieldMessage(fe))
		}
		return strings.Join(msgs, "; ")
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return "body has the wrong shape"
		}
		return fmt.Sprintf("%s has the wrong type", typeErr.Field)
	case errors.As(err, &syntax), errors.Is(err, io.ErrUnexpectedEOF):
		return "malformed JSON body"
	default:
		return "malformed request"
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "audience":
		return fe.Field() + " must be student or professor"
	case "period_key":
		return fe.Field() + " is not a valid period key"
	default:
		return fe.Field() + " is invalid"
	}
}
