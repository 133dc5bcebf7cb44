package ginserver

import (
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strings"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stayseek/internal/app/commands"
	"stayseek/internal/app/dto"
	propertyapp "stayseek/internal/app/handlers/properties"
	"stayseek/internal/app/queries"
	"stayseek/internal/infra/storage/s3"
)

// OwnerHandler serves the tenant-facing management surface. Every route
// requires an authenticated tenant principal.
type OwnerHandler struct {
	Queries  queries.Bus
	Commands commands.Bus
	Uploader s3.Uploader
	Logger   *slog.Logger
}

type createPropertyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	CityID      int64  `json:"city_id"`
	CategoryID  int64  `json:"category_id"`
}

type addRoomRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	MaxGuests   int    `json:"max_guests"`
	Quantity    int    `json:"quantity"`
	Picture     string `json:"picture"`
}

type blockRoomRequest struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Reason string `json:"reason"`
}

type seasonRateRequest struct {
	Start      string `json:"start"`
	End        string `json:"end"`
	PriceCents int64  `json:"price_cents"`
}

// List pages through the tenant's properties, newest first.
func (h OwnerHandler) List(c *gin.Context) {
	p, ok := requireTenant(c)
	if !ok {
		return
	}
	query := propertyapp.ListOwnedQuery{
		Tenant: p.ID,
		Page:   parseIntWithDefault(c.Query("page"), 1),
	}
	result, err := queries.Ask[propertyapp.ListOwnedQuery, dto.Page[dto.OwnedProperty]](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondPropertyError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h OwnerHandler) Create(c *gin.Context) {
	p, ok := requireTenant(c)
	if !ok {
		return
	}
	var req createPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	cmd := propertyapp.CreatePropertyCommand{
		Tenant:      p.ID,
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		CityID:      req.CityID,
		CategoryID:  req.CategoryID,
	}
	result, err := commands.Dispatch[propertyapp.CreatePropertyCommand, dto.OwnedProperty](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondPropertyError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h OwnerHandler) Update(c *gin.Context) {
	p, ok := requireTenant(c)
	if !ok {
		return
	}
	var req createPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	cmd := propertyapp.UpdatePropertyCommand{
		Tenant:      p.ID,
		PropertyID:  parseID(c.Param("id")),
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		CityID:      req.CityID,
		CategoryID:  req.CategoryID,
	}
	result, err := commands.Dispatch[propertyapp.UpdatePropertyCommand, dto.OwnedProperty](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondPropertyError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h OwnerHandler) AddRoom(c *gin.Context) {
	p, ok := requireTenant(c)
	if !ok {
		return
	}
	var req addRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	cmd := propertyapp.AddRoomCommand{
		Tenant:      p.ID,
		PropertyID:  parseID(c.Param("id")),
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		MaxGuests:   req.MaxGuests,
		Quantity:    req.Quantity,
		Picture:     req.Picture,
	}
	result, err := commands.Dispatch[propertyapp.AddRoomCommand, dto.OwnedProperty](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondPropertyError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h OwnerHandler) Block(c *gin.Context) {
	p, ok := requireTenant(c)
	if !ok {
		return
	}
	var req blockRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	start, startOK := parseFlexibleTime(req.Start)
	end, endOK := parseFlexibleTime(req.End)
	if !startOK || !endOK {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and end dates are required"})
		return
	}
	cmd := propertyapp.BlockRoomCommand{
		Tenant:     p.ID,
		PropertyID: parseID(c.Param("id")),
		RoomID:     parseID(c.Param("roomId")),
		Start:      start,
		End:        end,
		Reason:     req.Reason,
	}
	result, err := commands.Dispatch[propertyapp.BlockRoomCommand, dto.OwnedProperty](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondPropertyError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h OwnerHandler) SeasonRate(c *gin.Context) {
	p, ok := requireTenant(c)
	if !ok {
		return
	}
	var req seasonRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	start, startOK := parseFlexibleTime(req.Start)
	end, endOK := parseFlexibleTime(req.End)
	if !startOK || !endOK {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and end dates are required"})
		return
	}
	cmd := propertyapp.SetSeasonRateCommand{
		Tenant:     p.ID,
		PropertyID: parseID(c.Param("id")),
		RoomID:     parseID(c.Param("roomId")),
		Start:      start,
		End:        end,
		PriceCents: req.PriceCents,
	}
	result, err := commands.Dispatch[propertyapp.SetSeasonRateCommand, dto.OwnedProperty](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondPropertyError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// UploadPicture stores a multipart file in object storage and attaches
// the resulting URL to the property.
func (h OwnerHandler) UploadPicture(c *gin.Context) {
	p, ok := requireTenant(c)
	if !ok {
		return
	}
	if h.Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "picture storage unavailable"})
		return
	}
	file, err := c.FormFile("picture")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "picture file is required"})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "picture file is unreadable"})
		return
	}
	defer src.Close()

	propertyID := parseID(c.Param("id"))
	key := fmt.Sprintf("properties/%d/%s%s", propertyID, uuid.NewString(), strings.ToLower(path.Ext(file.Filename)))
	url, err := h.Uploader.Upload(c.Request.Context(), key, src, file.Header.Get("Content-Type"))
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("picture upload failed", "property", propertyID, "error", err)
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "picture upload failed"})
		return
	}

	cmd := propertyapp.AttachPictureCommand{
		Tenant:     p.ID,
		PropertyID: propertyID,
		Path:       url,
		IsMain:     strings.EqualFold(c.PostForm("is_main"), "true"),
	}
	result, err := commands.Dispatch[propertyapp.AttachPictureCommand, dto.OwnedProperty](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondPropertyError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

var _ OwnerHTTP = OwnerHandler{}
