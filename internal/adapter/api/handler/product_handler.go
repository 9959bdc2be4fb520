package handler

import (
	"campustrade/internal/usecase"
	"campustrade/pkg/response"
	"campustrade/pkg/utils"

	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	productUseCase *usecase.ProductUseCase
}

func NewProductHandler(productUseCase *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
	}
}

type productImageRequest struct {
	URL          string `json:"url" validate:"required,url"`
	DisplayOrder int    `json:"display_order"`
}

type productRequest struct {
	CategoryID  string                `json:"category_id" validate:"required"`
	Title       string                `json:"title" validate:"required,max=120"`
	Description string                `json:"description" validate:"max=2000"`
	Price       *float64              `json:"price,omitempty"`
	TradeOption string                `json:"trade_option" validate:"required,oneof=sale trade both"`
	Condition   string                `json:"condition" validate:"required,oneof=new like_new good fair worn"`
	Tags        []string              `json:"tags"`
	Location    string                `json:"location" validate:"max=120"`
	TradeWish   string                `json:"trade_wish" validate:"max=500"`
	Images      []productImageRequest `json:"images"`
}

func (r productRequest) toInput() usecase.ProductInput {
	images := make([]usecase.ProductImageInput, len(r.Images))
	for i, img := range r.Images {
		images[i] = usecase.ProductImageInput{
			URL:          img.URL,
			DisplayOrder: img.DisplayOrder,
		}
	}

	return usecase.ProductInput{
		CategoryID:  r.CategoryID,
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		TradeOption: r.TradeOption,
		Condition:   r.Condition,
		Tags:        r.Tags,
		Location:    r.Location,
		TradeWish:   r.TradeWish,
		Images:      images,
	}
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sellerID := c.Get("uid").(string)

	product, err := h.productUseCase.CreateProduct(c.Request().Context(), sellerID, req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, product)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sellerID := c.Get("uid").(string)

	product, err := h.productUseCase.UpdateProduct(c.Request().Context(), c.Param("id"), sellerID, req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) RemoveProduct(c echo.Context) error {
	sellerID := c.Get("uid").(string)

	if err := h.productUseCase.RemoveProduct(c.Request().Context(), c.Param("id"), sellerID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "removed"})
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.productUseCase.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	products, total, err := h.productUseCase.ListProducts(
		c.Request().Context(),
		c.QueryParam("category_id"),
		c.QueryParam("status"),
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, products, total, pagination.Page, pagination.PageSize)
}

func (h *ProductHandler) ListMyProducts(c echo.Context) error {
	sellerID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	products, total, err := h.productUseCase.ListMyProducts(
		c.Request().Context(),
		sellerID,
		c.QueryParam("status"),
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, products, total, pagination.Page, pagination.PageSize)
}
