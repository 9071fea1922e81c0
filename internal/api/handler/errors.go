package handler

import (
	"net/http"

	"cp_tracker/internal/common"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// respondWithServiceError maps err to a status and logs anything that ends
// up as a 5xx. The client only sees fallback for those.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := common.HTTPStatusFromError(err)
	if status >= http.StatusInternalServerError {
		zap.L().Error(fallback,
			zap.String("request_id", chiMiddleware.GetReqID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	common.RespondWithError(w, status, common.PublicMessage(err, fallback))
}
