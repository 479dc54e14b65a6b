package http

// ListProducts godoc
// @Summary List products
// @Description One page of the product feed, ten products per page in id order
// @Tags Products
// @Produce json
// @Param page query int false "One-based page number" default(1)
// @Success 200 {object} api.FeedResponse
// @Failure 500 {object} api.ErrorResponse
// @Router /api/products [get]
func (h *ProductHandler) ListProductsDoc() {}

// GetProduct godoc
// @Summary Get product detail
// @Description Product with seller, fav count, up to four related products and whether the viewer liked it
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} api.ProductDetailResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /api/products/{id} [get]
func (h *ProductHandler) GetProductDoc() {}

// CreateProduct godoc
// @Summary Create product
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,price=number,description=string,image=string} true "Product"
// @Success 201 {object} api.ProductResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 401 {object} api.ErrorResponse
// @Failure 429 {object} api.ErrorResponse
// @Router /api/products [post]
func (h *ProductHandler) CreateProductDoc() {}

// ToggleFav godoc
// @Summary Toggle favorite
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} api.OKResponse
// @Failure 401 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /api/products/{id}/fav [post]
func (h *ProductHandler) ToggleFavDoc() {}

// Purchase godoc
// @Summary Purchase product
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 201 {object} api.OKResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /api/products/{id}/purchase [post]
func (h *ProductHandler) PurchaseDoc() {}

// ListRecords godoc
// @Summary Profile product lists
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param kind path string true "purchases, sales or favs"
// @Success 200 {object} api.RecordsResponse
// @Failure 401 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /api/users/me/{kind} [get]
func (h *ProductHandler) ListRecordsDoc() {}
