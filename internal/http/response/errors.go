package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prince-Sf/Corelytics/internal/brief"
	"github.com/prince-Sf/Corelytics/internal/generation/router"
	"github.com/prince-Sf/Corelytics/internal/intent"
	"github.com/prince-Sf/Corelytics/internal/platform/apierr"
	"github.com/prince-Sf/Corelytics/internal/selection"
	"github.com/prince-Sf/Corelytics/internal/taxonomy"
)

// FromError classifies err into a status and code for the envelope.
func FromError(err error) *apierr.Error {
	if ae, ok := apierr.As(err); ok {
		return ae
	}
	switch {
	case errors.Is(err, brief.ErrIncompleteSelection):
		return apierr.BadRequest(apierr.CodeIncompleteSelection, err)
	case errors.Is(err, selection.ErrInvalidLevelOrder):
		return apierr.BadRequest(apierr.CodeInvalidLevelOrder, err)
	case errors.Is(err, taxonomy.ErrPathNotFound):
		return apierr.NotFound(apierr.CodePathNotFound, err)
	case errors.Is(err, router.ErrUnknownModel):
		return apierr.NotFound(apierr.CodeUnknownModel, err)
	case errors.Is(err, intent.ErrGenerationFailed):
		if errors.Is(err, context.DeadlineExceeded) {
			return apierr.New(http.StatusGatewayTimeout, apierr.CodeGenerationTimeout, err)
		}
		return apierr.New(http.StatusBadGateway, apierr.CodeGenerationFailed, err)
	default:
		return apierr.Internal(err)
	}
}

// RespondAPIError writes err in the error envelope. Internal errors are not
// echoed to the client.
func RespondAPIError(c *gin.Context, err error) *apierr.Error {
	ae := FromError(err)
	var msgErr error = ae
	if ae.Status >= http.StatusInternalServerError && ae.Code == apierr.CodeInternal {
		msgErr = errors.New("internal server error")
	}
	RespondError(c, ae.Status, ae.Code, msgErr)
	return ae
}
