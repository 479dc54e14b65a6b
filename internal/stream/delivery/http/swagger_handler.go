package http

// CreateStream godoc
// @Summary Create stream
// @Description Open a live-selling stream listing
// @Tags Streams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,price=number,description=string} true "Stream"
// @Success 201 {object} api.StreamResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 401 {object} api.ErrorResponse
// @Failure 429 {object} api.ErrorResponse
// @Router /api/streams [post]
func (h *StreamHandler) CreateStreamDoc() {}

// GetStream godoc
// @Summary Get stream
// @Tags Streams
// @Produce json
// @Param id path int true "Stream ID"
// @Success 200 {object} api.StreamResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /api/streams/{id} [get]
func (h *StreamHandler) GetStreamDoc() {}

// ListStreams godoc
// @Summary List streams
// @Tags Streams
// @Produce json
// @Param page query int false "One-based page number" default(1)
// @Success 200 {object} api.StreamsResponse
// @Router /api/streams [get]
func (h *StreamHandler) ListStreamsDoc() {}
