package handlers

import (
	"net/http"
	"time"

	"debatecamp/internal/services"
	"debatecamp/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
	adminAuth     gin.HandlerFunc
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService, adminAuth gin.HandlerFunc) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   base,
		reviewService: reviewService,
		adminAuth:     adminAuth,
	}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes
	public := r.Group("/reviews")
	{
		public.GET("", h.ListApproved)
		public.POST("", h.CreateReview)
		public.GET("/featured", h.ListFeatured)
	}

	// Admin routes
	admin := r.Group("/admin/reviews")
	admin.Use(h.adminAuth)
	{
		admin.GET("", h.ListAll)
		admin.PUT("", h.UpdateApproval)
		admin.PUT("/:reviewId", h.UpdateApproval)
	}
}

// --- Public handlers ---

func (h *ReviewHandler) ListApproved(c *gin.Context) {
	c.JSON(http.StatusOK, h.reviewService.ListPublic(c.Request.Context()))
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req dto.CreateReviewRequest
	if !h.BindJSON(c, &req) {
		return
	}

	review, err := h.reviewService.Submit(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// ListFeatured - отзывы для карусели на главной.
// Пока нет одобренных, показываются два постоянных отзыва с прошлого лагеря.
// В хранилище они не попадают.
func (h *ReviewHandler) ListFeatured(c *gin.Context) {
	reviews := h.reviewService.ListPublic(c.Request.Context())
	if len(reviews) == 0 {
		reviews = featuredFallback()
	}
	c.JSON(http.StatusOK, reviews)
}

func featuredFallback() []*dto.ReviewResponse {
	return []*dto.ReviewResponse{
		{
			ID:          "1",
			ParentName:  "Test Parent 1",
			StudentName: "Test Student 1",
			Rating:      5,
			Comment:     "Much appreciated all of you in sharing your knowledge with younger kids. See you next year.",
			CreatedAt:   time.Date(2023, time.July, 27, 5, 11, 54, 805_000_000, time.UTC),
			Approved:    true,
		},
		{
			ID:          "2",
			ParentName:  "Test Parent 2",
			StudentName: "Test Student 2",
			Rating:      5,
			Comment:     "A shout out to you all for hosting a very productive and engaging debate camp. I am sure all the participants look forward to your next camp. Keep us posted on the next camp schedule.",
			CreatedAt:   time.Date(2023, time.July, 27, 5, 12, 0, 994_000_000, time.UTC),
			Approved:    true,
		},
	}
}

// --- Admin handlers ---

func (h *ReviewHandler) ListAll(c *gin.Context) {
	c.JSON(http.StatusOK, h.reviewService.ListAll(c.Request.Context()))
}

// UpdateApproval: PUT /admin/reviews {id, approved} или PUT /admin/reviews/:reviewId {approved}.
// Отсутствующий approved читается как false.
func (h *ReviewHandler) UpdateApproval(c *gin.Context) {
	var req dto.UpdateApprovalRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if id := c.Param("reviewId"); id != "" {
		req.ID = id
	}

	review, err := h.reviewService.SetApproval(c.Request.Context(), req.ID, req.Approved)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}
