package auth

import (
	"errors"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/taskhive/internal/config"
	"github.com/taskhive/taskhive/internal/pkg/response"
	"github.com/taskhive/taskhive/internal/pkg/token"
)

var errGoogleDisabled = errors.New("google sign-in is not configured")

type Handler struct {
	repo     *Repository
	firebase *fbauth.Client
	cfg      *config.Config
}

func NewHandler(repo *Repository, firebase *fbauth.Client, cfg *config.Config) *Handler {
	return &Handler{
		repo:     repo,
		firebase: firebase,
		cfg:      cfg,
	}
}

// Register godoc
// @Summary Register a new user
// @Description Register a new user with name, email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "User registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if err := ValidateRegister(&req); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}

	existing, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.DatabaseError(c, "Failed to check existing account")
		return
	}
	if existing != nil {
		response.Conflict(c, "Email already registered")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		response.InternalServerError(c, "Failed to process password")
		return
	}

	user := &User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
	}

	if err := h.repo.Create(c.Request.Context(), user); err != nil {
		response.DatabaseError(c, "Failed to create account")
		return
	}

	tok, err := token.GenerateToken(user.ID.Hex(), user.Email)
	if err != nil {
		response.InternalServerError(c, "Failed to generate token")
		return
	}

	response.Created(c, AuthResponse{Token: tok, User: user})
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "User login credentials"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if err := ValidateLogin(&req); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}

	user, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.DatabaseError(c, "Failed to look up account")
		return
	}
	if user == nil || !user.IsActive {
		response.Unauthorized(c, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		response.Unauthorized(c, "Invalid email or password")
		return
	}

	_ = h.repo.TouchLastLogin(c.Request.Context(), user.ID)

	tok, err := token.GenerateToken(user.ID.Hex(), user.Email)
	if err != nil {
		response.InternalServerError(c, "Failed to generate token")
		return
	}

	response.Success(c, AuthResponse{Token: tok, User: user})
}

// GoogleLogin godoc
// @Summary Sign in with a Google ID token
// @Description Verifies the Google ID token and creates the account on first login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body GoogleAuthRequest true "Google ID token"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/google [post]
func (h *Handler) GoogleLogin(c *gin.Context) {
	var req GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	googleUser, err := h.verifyGoogleUser(c, req.GoogleIDToken)
	if err != nil {
		response.Unauthorized(c, "Invalid Google token")
		return
	}

	user, err := h.repo.FindByGoogleID(c.Request.Context(), googleUser.UID)
	if err != nil {
		response.DatabaseError(c, "Failed to look up account")
		return
	}

	if user == nil {
		// Link to an existing email account, or create a fresh one.
		user, err = h.repo.FindByEmail(c.Request.Context(), googleUser.Email)
		if err != nil {
			response.DatabaseError(c, "Failed to look up account")
			return
		}

		if user != nil {
			if err := h.repo.Update(c.Request.Context(), user.ID, bson.M{"googleId": googleUser.UID}); err != nil {
				response.DatabaseError(c, "Failed to link Google account")
				return
			}
			user.GoogleID = googleUser.UID
		} else {
			user = &User{
				Name:     googleUser.Name,
				Email:    googleUser.Email,
				Avatar:   googleUser.Picture,
				GoogleID: googleUser.UID,
			}
			if err := h.repo.Create(c.Request.Context(), user); err != nil {
				response.DatabaseError(c, "Failed to create account")
				return
			}
		}
	}

	_ = h.repo.TouchLastLogin(c.Request.Context(), user.ID)

	tok, err := token.GenerateToken(user.ID.Hex(), user.Email)
	if err != nil {
		response.InternalServerError(c, "Failed to generate token")
		return
	}

	response.Success(c, AuthResponse{Token: tok, User: user})
}

// verifyGoogleUser checks the ID token against the configured OAuth client
// id, falling back to the Firebase Auth client when none is configured.
func (h *Handler) verifyGoogleUser(c *gin.Context, idToken string) (*GoogleUser, error) {
	if h.cfg.GoogleClientID != "" {
		return VerifyGoogleToken(c.Request.Context(), idToken, h.cfg.GoogleClientID)
	}

	if h.firebase == nil {
		return nil, errGoogleDisabled
	}

	decoded, err := h.firebase.VerifyIDToken(c.Request.Context(), idToken)
	if err != nil {
		return nil, err
	}

	googleUser := &GoogleUser{UID: decoded.UID}
	if email, ok := decoded.Claims["email"].(string); ok {
		googleUser.Email = email
	}
	if name, ok := decoded.Claims["name"].(string); ok {
		googleUser.Name = name
	}
	if picture, ok := decoded.Claims["picture"].(string); ok {
		googleUser.Picture = picture
	}
	return googleUser, nil
}

// Me godoc
// @Summary Get the current user profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=User}
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	userID := c.GetString("userID")

	user, err := h.repo.FindByID(c.Request.Context(), userID)
	if err != nil {
		response.DatabaseError(c, "Failed to load profile")
		return
	}
	if user == nil {
		response.NotFound(c, "User not found")
		return
	}

	response.Success(c, user)
}

// UpdateProfile godoc
// @Summary Update the current user profile
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields to update"
// @Success 200 {object} response.SuccessResponse{data=User}
// @Failure 422 {object} response.ErrorResponse
// @Router /auth/me [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := c.GetString("userID")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if err := ValidateUpdateProfile(&req); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}

	user, err := h.repo.FindByID(c.Request.Context(), userID)
	if err != nil {
		response.DatabaseError(c, "Failed to load profile")
		return
	}
	if user == nil {
		response.NotFound(c, "User not found")
		return
	}

	update := bson.M{}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.Avatar != nil {
		update["avatar"] = *req.Avatar
	}
	if req.Preferences != nil {
		update["preferences"] = *req.Preferences
	}

	if len(update) == 0 {
		response.BadRequest(c, "No fields to update")
		return
	}

	if err := h.repo.Update(c.Request.Context(), user.ID, update); err != nil {
		response.DatabaseError(c, "Failed to update profile")
		return
	}

	user, err = h.repo.FindByID(c.Request.Context(), userID)
	if err != nil || user == nil {
		response.InternalServerError(c, "Failed to reload profile")
		return
	}

	response.Success(c, user)
}
