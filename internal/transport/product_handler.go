package transport

import (
	"net/http"
	"strconv"

	"bazaar/internal/domain"
	"bazaar/internal/middleware"
	"bazaar/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReviewRequest represents the review submission payload
type ReviewRequest struct {
	Content string `json:"content" validate:"required"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
}

// ProductHandler handles HTTP requests for the catalog and its reviews
type ProductHandler struct {
	catalogService service.CatalogService
	reviewService  service.ReviewService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(
	catalogService service.CatalogService,
	reviewService service.ReviewService,
	logger *zap.Logger,
) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		reviewService:  reviewService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		// Public routes
		r.Get("/", h.List)
		r.Get("/{id}", h.Detail)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", h.Create)
			r.Delete("/{id}", h.Delete)
			r.Post("/{id}/purchased", h.MarkPurchased)
			r.Post("/{id}/reviews", h.AddReview)
		})
	})
}

// List returns every product, unfiltered
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogService.List(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Detail returns one product with its reviews
func (h *ProductHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.catalogService.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, detail)
}

// Create lists a new product. The request is multipart form data so an image
// can ride along; the image part is optional.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid price")
		return
	}

	in := service.CreateProductInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       price,
		Category:    domain.Category(r.FormValue("category")),
	}

	if in.Name == "" || in.Description == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "name and description are required")
		return
	}

	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		in.Image = &service.ImageUpload{Filename: header.Filename, Data: file}
	} else if err != http.ErrMissingFile {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid image upload")
		return
	}

	product, err := h.catalogService.Create(r.Context(), actor.ID, in)
	if err != nil {
		h.logger.Debug("Product creation failed", zap.Error(err))
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("seller_id", actor.ID.String()),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// Delete removes a product (seller or admin)
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.catalogService.Delete(r.Context(), actor, id); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Product deleted",
		zap.String("product_id", id.String()),
		zap.String("actor_id", actor.ID.String()),
	)
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

// MarkPurchased moves a product to purchased (seller only)
func (h *ProductHandler) MarkPurchased(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.catalogService.MarkPurchased(r.Context(), actor, id); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product marked as purchased"})
}

// AddReview appends a review to a product
func (h *ProductHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req ReviewRequest
	if !decodeAndValidate(w, r, h.logger, &req) {
		return
	}

	review, err := h.reviewService.Add(r.Context(), actor.ID, id, req.Content, req.Rating)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, review)
}

// requireActor pulls the authenticated identity out of the context
func requireActor(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return domain.Actor{}, false
	}
	return actor, true
}

// parseID parses a UUID route parameter
func parseID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid "+param)
		return uuid.Nil, false
	}
	return id, true
}
