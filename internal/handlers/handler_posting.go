package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/bookkeeping_engine/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_engine/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_engine/internal/dto"
	"github.com/SscSPs/bookkeeping_engine/internal/middleware"
)

// sourceTypesByResource maps URL resource names to journal source types.
var sourceTypesByResource = map[string]domain.SourceType{
	"invoices": domain.SourceInvoice,
	"bills":    domain.SourceBill,
	"payments": domain.SourcePayment,
	"receipts": domain.SourceReceiving,
}

// postingHandler handles HTTP requests that post documents to the ledger.
type postingHandler struct {
	postingService portssvc.PostingSvcFacade
}

// newPostingHandler creates a new postingHandler.
func newPostingHandler(postingService portssvc.PostingSvcFacade) *postingHandler {
	return &postingHandler{postingService: postingService}
}

// RegisterPostingRoutes registers posting routes under a group that already
// carries the :companyID path parameter.
func RegisterPostingRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	registerDecimalValidation()
	h := newPostingHandler(postingService)

	postings := rg.Group("/postings")
	{
		postings.POST("/invoices", h.postInvoice)
		postings.POST("/bills", h.postBill)
		postings.POST("/payments", h.postPayment)
		postings.POST("/receipts", h.postReceiving)
		postings.GET("/:sourceType/:sourceID", h.getPosting)
	}
	rg.GET("/journal-entries", h.listJournalEntries)
}

// requestScope pulls the company and the authenticated user for a request.
// It writes the error response itself and returns ok=false on failure.
func requestScope(c *gin.Context, logger *slog.Logger) (companyID, userID string, ok bool) {
	companyID = c.Param("companyID")
	if companyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company ID is required in path"})
		return "", "", false
	}
	userID, found := middleware.GetUserIDFromContext(c)
	if !found {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	return companyID, userID, true
}

// postInvoice godoc
// @Summary Post a sales invoice
// @Description Computes invoice totals and records the AR / income / tax / COGS journal entry
// @Tags postings
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   invoice body dto.PostInvoiceRequest true "Invoice to post"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Already posted or posting in progress"
// @Failure 422 {object} map[string]string "Totals mismatch or unbalanced journal"
// @Router /companies/{companyID}/postings/invoices [post]
func (h *postingHandler) postInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	companyID, userID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	entry, err := h.postingService.PostInvoice(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to post invoice")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// postBill godoc
// @Summary Post a supplier bill
// @Description Records the expense / tax receivable / AP journal entry for a bill
// @Tags postings
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   bill body dto.PostBillRequest true "Bill to post"
// @Success 201 {object} dto.JournalEntryResponse
// @Router /companies/{companyID}/postings/bills [post]
func (h *postingHandler) postBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostBill", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	companyID, userID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	entry, err := h.postingService.PostBill(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to post bill")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// postPayment godoc
// @Summary Post a payment
// @Description Settles a receivable (RECEIVED) or payable (MADE) against cash
// @Tags postings
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   payment body dto.PostPaymentRequest true "Payment to post"
// @Success 201 {object} dto.JournalEntryResponse
// @Router /companies/{companyID}/postings/payments [post]
func (h *postingHandler) postPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	companyID, userID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	entry, err := h.postingService.PostPayment(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to post payment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// postReceiving godoc
// @Summary Post a goods receipt
// @Description Capitalizes received stock into the inventory asset account
// @Tags postings
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   receipt body dto.PostReceivingRequest true "Receipt to post"
// @Success 201 {object} dto.JournalEntryResponse
// @Router /companies/{companyID}/postings/receipts [post]
func (h *postingHandler) postReceiving(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostReceivingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostReceiving", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	companyID, userID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	entry, err := h.postingService.PostReceiving(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to post receipt")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getPosting godoc
// @Summary Get the journal entry posted for a document
// @Tags postings
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   sourceType path string true "invoices, bills, payments or receipts"
// @Param   sourceID path string true "Document ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Not posted"
// @Router /companies/{companyID}/postings/{sourceType}/{sourceID} [get]
func (h *postingHandler) getPosting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	sourceType, known := sourceTypesByResource[c.Param("sourceType")]
	if !known {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown document type"})
		return
	}
	companyID, _, ok := requestScope(c, logger)
	if !ok {
		return
	}

	entry, err := h.postingService.GetJournalEntryBySource(c.Request.Context(), companyID, sourceType, c.Param("sourceID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listJournalEntries godoc
// @Summary List posted journal entries
// @Description Pages through a company's journal entry headers, newest first
// @Tags postings
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   limit query int false "Page size (1-100)" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters or token"
// @Router /companies/{companyID}/journal-entries [get]
func (h *postingHandler) listJournalEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, _, ok := requestScope(c, logger)
	if !ok {
		return
	}

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListJournalEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.postingService.ListJournalEntries(c.Request.Context(), companyID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}
