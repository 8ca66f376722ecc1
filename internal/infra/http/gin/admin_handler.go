package ginserver

import (
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"domoreserva/internal/app/commands"
	"domoreserva/internal/app/dto"
	pricingapp "domoreserva/internal/app/handlers/pricing"
	reservationapp "domoreserva/internal/app/handlers/reservation"
	unitsapp "domoreserva/internal/app/handlers/units"
	"domoreserva/internal/app/queries"
	"domoreserva/internal/domain/shared/civil"
	"domoreserva/internal/infra/security"
	"domoreserva/internal/infra/storage/s3"
)

const maxPhotoBytes = 10 << 20

// AdminHandler serves the owner's management surface: a single
// password-protected account, token sessions, no roles.
type AdminHandler struct {
	Commands   commands.Bus
	Queries    queries.Bus
	Credential *security.AdminCredential
	Sessions   *security.SessionStore
	Photos     s3.PhotoStore
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.Credential.Verify(req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	token, err := h.Sessions.Issue()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h AdminHandler) Logout(c *gin.Context) {
	h.Sessions.Revoke(bearerToken(c))
	c.Status(http.StatusNoContent)
}

// RequireAuth guards the admin group with a bearer token check.
func (h AdminHandler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.Sessions.Validate(bearerToken(c)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

func (h AdminHandler) ListReservations(c *gin.Context) {
	result, err := queries.Ask[reservationapp.ListReservationsQuery, dto.ReservationCollection](c.Request.Context(), h.Queries, reservationapp.ListReservationsQuery{})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h AdminHandler) CancelReservation(c *gin.Context) {
	cmd := reservationapp.CancelReservationCommand{ReservationID: c.Param("id")}
	result, err := commands.Dispatch[reservationapp.CancelReservationCommand, *reservationapp.CancelReservationResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type updateUnitRequest struct {
	WeekdayRate *dto.MoneyDTO `json:"weekday_rate"`
	WeekendRate *dto.MoneyDTO `json:"weekend_rate"`
	Description *string       `json:"description"`
	PhotoURL    *string       `json:"photo_url"`
}

func (h AdminHandler) UpdateUnit(c *gin.Context) {
	var req updateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cmd := unitsapp.UpdateUnitCommand{
		UnitID:      c.Param("id"),
		WeekdayRate: req.WeekdayRate,
		WeekendRate: req.WeekendRate,
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
	}
	result, err := commands.Dispatch[unitsapp.UpdateUnitCommand, *unitsapp.UpdateUnitResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h AdminHandler) UploadUnitPhoto(c *gin.Context) {
	if h.Photos == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "photo storage unavailable"})
		return
	}
	file, err := c.FormFile("photo")
	if err != nil {
		badRequest(c, err)
		return
	}
	if file.Size > maxPhotoBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "photo exceeds size limit"})
		return
	}
	reader, err := file.Open()
	if err != nil {
		badRequest(c, err)
		return
	}
	defer reader.Close()

	unitID := c.Param("id")
	url, err := h.Photos.UploadUnitPhoto(c.Request.Context(), unitID, file.Filename, reader, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "photo upload failed"})
		return
	}

	cmd := unitsapp.UpdateUnitCommand{UnitID: unitID, PhotoURL: &url}
	result, err := commands.Dispatch[unitsapp.UpdateUnitCommand, *unitsapp.UpdateUnitResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h AdminHandler) ListHolidays(c *gin.Context) {
	result, err := queries.Ask[pricingapp.ListHolidaysQuery, dto.HolidayCollection](c.Request.Context(), h.Queries, pricingapp.ListHolidaysQuery{})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type addHolidayRequest struct {
	Date civil.Date `json:"date" binding:"required"`
	Name string     `json:"name" binding:"required"`
}

func (h AdminHandler) AddHoliday(c *gin.Context) {
	var req addHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cmd := pricingapp.AddHolidayCommand{
		ID:   uuid.NewString(),
		Date: req.Date,
		Name: req.Name,
	}
	result, err := commands.Dispatch[pricingapp.AddHolidayCommand, *pricingapp.AddHolidayResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h AdminHandler) RemoveHoliday(c *gin.Context) {
	cmd := pricingapp.RemoveHolidayCommand{ID: c.Param("id")}
	result, err := commands.Dispatch[pricingapp.RemoveHolidayCommand, *pricingapp.RemoveHolidayResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h AdminHandler) GetDiscounts(c *gin.Context) {
	result, err := queries.Ask[pricingapp.GetDiscountsQuery, dto.DiscountTable](c.Request.Context(), h.Queries, pricingapp.GetDiscountsQuery{})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type updateDiscountsRequest struct {
	Tiers []dto.DiscountTierDTO `json:"tiers" binding:"required"`
}

func (h AdminHandler) UpdateDiscounts(c *gin.Context) {
	var req updateDiscountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cmd := pricingapp.UpdateDiscountsCommand{Tiers: req.Tiers}
	result, err := commands.Dispatch[pricingapp.UpdateDiscountsCommand, *pricingapp.UpdateDiscountsResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

var _ AdminHTTP = AdminHandler{}
