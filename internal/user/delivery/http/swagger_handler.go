package http

// Register godoc
// @Summary Register a new user
// @Description Create a new marketplace account
// @Tags Users
// @Accept json
// @Produce json
// @Param request body object{name=string,email=string,password=string} true "User registration data"
// @Success 201 {object} api.UserResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse
// @Router /api/users [post]
func (h *UserHandler) RegisterDoc() {}

// Login godoc
// @Summary User login
// @Description Authenticate and receive a JWT; the token is also set as the "token" cookie
// @Tags Users
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string} true "Login credentials"
// @Success 200 {object} api.LoginResponse
// @Failure 401 {object} api.ErrorResponse
// @Router /api/users/login [post]
func (h *UserHandler) LoginDoc() {}

// Logout godoc
// @Summary User logout
// @Description Clear the session cookie
// @Tags Users
// @Produce json
// @Success 200 {object} api.OKResponse
// @Router /api/users/logout [post]
func (h *UserHandler) LogoutDoc() {}

// GetProfile godoc
// @Summary Current user
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} api.UserResponse
// @Failure 401 {object} api.ErrorResponse
// @Router /api/users/me [get]
func (h *UserHandler) GetProfileDoc() {}
