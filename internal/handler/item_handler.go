package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/items-api/internal/model"
	"github.com/shinyyama/items-api/internal/service"
)

const (
	msgItemNotFound = "Item not found"
	msgItemDeleted  = "Item deleted"
)

type ItemHandler struct {
	svc service.ItemService
}

func NewItemHandler(svc service.ItemService) *ItemHandler {
	return &ItemHandler{svc: svc}
}

// Register mounts the item routes on g. The collection routes answer with and
// without the trailing slash.
func (h *ItemHandler) Register(g *echo.Group) {
	g.POST("", h.Create)
	g.POST("/", h.Create)
	g.GET("", h.List)
	g.GET("/", h.List)
	g.GET("/:item_id", h.Get)
	g.PUT("/:item_id", h.Update)
	g.DELETE("/:item_id", h.Delete)
}

type ItemResponse struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

type CreateItemRequest struct {
	Name        *string  `json:"name" validate:"required"`
	Description *string  `json:"description" validate:"required"`
	Price       *float64 `json:"price" validate:"required"`
	Quantity    *int     `json:"quantity" validate:"required"`
}

// UpdateItemRequest fields are all optional; null and absent both mean unchanged.
type UpdateItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
}

func (r UpdateItemRequest) patch() model.ItemPatch {
	return model.ItemPatch{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Quantity:    r.Quantity,
	}
}

func (h *ItemHandler) Create(c echo.Context) error {
	var req CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return unprocessable(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return unprocessable(c, err)
	}
	item, err := h.svc.Create(c.Request().Context(), *req.Name, *req.Description, *req.Price, *req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

func (h *ItemHandler) List(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	resp := make([]ItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toItemResponse(&items[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ItemHandler) Get(c echo.Context) error {
	id, err := itemID(c)
	if err != nil {
		return badItemID(c, err)
	}
	item, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return notFoundOr(c, err)
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

func (h *ItemHandler) Update(c echo.Context) error {
	id, err := itemID(c)
	if err != nil {
		return badItemID(c, err)
	}
	var req UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return unprocessable(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return unprocessable(c, err)
	}
	item, err := h.svc.Update(c.Request().Context(), id, req.patch())
	if err != nil {
		return notFoundOr(c, err)
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

func (h *ItemHandler) Delete(c echo.Context) error {
	id, err := itemID(c)
	if err != nil {
		return badItemID(c, err)
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return notFoundOr(c, err)
	}
	return c.JSON(http.StatusOK, NewDetailResponse(msgItemDeleted))
}

// itemID parses the path id within the int64 range the storage drivers accept.
func itemID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("item_id"), 10, 63)
}

// badItemID answers 404 for integers too large to be stored and 422 otherwise.
func badItemID(c echo.Context, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return c.JSON(http.StatusNotFound, NewDetailResponse(msgItemNotFound))
	}
	return c.JSON(http.StatusUnprocessableEntity, NewDetailResponse(pathError("item_id")))
}

func unprocessable(c echo.Context, err error) error {
	var he *echo.HTTPError
	// Non-400 bind failures (415 etc.) keep their own status.
	if errors.As(err, &he) && he.Code != http.StatusBadRequest {
		return err
	}
	return c.JSON(http.StatusUnprocessableEntity, NewDetailResponse(bodyErrors(err)))
}

func notFoundOr(c echo.Context, err error) error {
	if errors.Is(err, service.ErrNotFound) {
		return c.JSON(http.StatusNotFound, NewDetailResponse(msgItemNotFound))
	}
	return err
}

func toItemResponse(item *model.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Quantity:    item.Quantity,
	}
}
