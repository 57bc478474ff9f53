package controllerImp

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"krishi/entities"
	"krishi/pkg/auth"
	repo "krishi/pkg/farmer/repository"
)

type AuthCtrl struct {
	farmers repo.FarmerRepository
	secret  string
}

func New(farmers repo.FarmerRepository, secret string) *AuthCtrl {
	return &AuthCtrl{farmers: farmers, secret: secret}
}

type registerReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthCtrl) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "username and password are required"})
	}
	if len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "password must be at least 6 characters"})
	}

	if _, err := h.farmers.FindByUsername(req.Username); err == nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": "username already taken"})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "hash error"})
	}

	f := &entities.Farmer{
		Username:     req.Username,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(req.FullName),
		Location:     strings.TrimSpace(req.Location),
	}
	if p := strings.TrimSpace(req.Phone); p != "" {
		f.Phone = &p
	}
	if e := strings.ToLower(strings.TrimSpace(req.Email)); e != "" {
		f.Email = &e
	}
	if err := h.farmers.Create(f); err != nil {
		log.Printf("[auth] register %q: %v", req.Username, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusCreated, map[string]any{"farmer_id": f.FarmerID, "username": f.Username})
}

func (h *AuthCtrl) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}

	f, err := h.farmers.FindByUsername(req.Username)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
	}
	if bcrypt.CompareHashAndPassword([]byte(f.PasswordHash), []byte(req.Password)) != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
	}

	tok, err := auth.Sign(h.secret, f.FarmerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "token error"})
	}
	if err := h.farmers.TouchLastLogin(f.FarmerID); err != nil {
		log.Printf("[auth] touch last login %d: %v", f.FarmerID, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"token": tok, "farmer": f})
}

func (h *AuthCtrl) Me(c echo.Context) error {
	fid, _ := c.Get("farmerID").(uint)
	f, err := h.farmers.FindByID(fid)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "farmer not found"})
	}
	return c.JSON(http.StatusOK, f)
}
