package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/shopgraph-backend/internal/data/graph"
	"github.com/yungbote/shopgraph-backend/internal/domain"
	"github.com/yungbote/shopgraph-backend/internal/http/response"
	pkgerrors "github.com/yungbote/shopgraph-backend/internal/pkg/errors"
	"github.com/yungbote/shopgraph-backend/internal/platform/logger"
)

type Recommender interface {
	RecommendForCustomer(ctx context.Context, customerID int64, limit int) ([]domain.Recommendation, error)
	SimilarProducts(ctx context.Context, productID int64, limit int) ([]domain.Recommendation, error)
}

type RecommendationHandler struct {
	svc Recommender
	log *logger.Logger
}

func NewRecommendationHandler(svc Recommender, log *logger.Logger) *RecommendationHandler {
	return &RecommendationHandler{svc: svc, log: log.With("handler", "Recommendations")}
}

func (h *RecommendationHandler) Recommendations(c *gin.Context) {
	customerID, limit, ok := h.parseParams(c, "customerId")
	if !ok {
		return
	}
	recs, err := h.svc.RecommendForCustomer(c.Request.Context(), customerID, limit)
	h.respond(c, recs, err)
}

func (h *RecommendationHandler) Similar(c *gin.Context) {
	productID, limit, ok := h.parseParams(c, "productId")
	if !ok {
		return
	}
	recs, err := h.svc.SimilarProducts(c.Request.Context(), productID, limit)
	h.respond(c, recs, err)
}

func (h *RecommendationHandler) parseParams(c *gin.Context, idParam string) (int64, int, bool) {
	id, err := strconv.ParseInt(c.Param(idParam), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id",
			fmt.Errorf("%s must be an integer", idParam))
		return 0, 0, false
	}

	limit := graph.DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_limit",
				fmt.Errorf("limit must be an integer"))
			return 0, 0, false
		}
	}
	return id, limit, true
}

func (h *RecommendationHandler) respond(c *gin.Context, recs []domain.Recommendation, err error) {
	if err != nil {
		if errors.Is(err, pkgerrors.ErrInvalidArgument) {
			response.RespondError(c, http.StatusBadRequest, "invalid_limit", err)
			return
		}
		h.log.Error("recommendation query failed", "error", err)
		response.RespondError(c, http.StatusBadGateway, "backend_unavailable", err)
		return
	}
	response.RespondList(c, recs)
}
