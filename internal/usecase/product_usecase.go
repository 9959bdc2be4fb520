package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"campustrade/internal/domain/entity"
	"campustrade/internal/domain/repository"
	"campustrade/pkg/errors"
)

type ProductUseCase struct {
	productRepo repository.ProductRepository
	requestRepo repository.TradeRequestRepository
	userRepo    repository.UserRepository
}

func NewProductUseCase(
	productRepo repository.ProductRepository,
	requestRepo repository.TradeRequestRepository,
	userRepo repository.UserRepository,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		requestRepo: requestRepo,
		userRepo:    userRepo,
	}
}

type ProductInput struct {
	CategoryID  string
	Title       string
	Description string
	Price       *float64
	TradeOption string
	Condition   string
	Tags        []string
	Location    string
	TradeWish   string
	Images      []ProductImageInput
}

type ProductImageInput struct {
	URL          string
	DisplayOrder int
}

func (uc *ProductUseCase) validateInput(input ProductInput) error {
	if !entity.ValidTradeOption(input.TradeOption) {
		return errors.Validation("trade_option must be one of: sale trade both")
	}

	// A strictly-for-sale or dual-mode listing needs a price buyers can offer
	// against; a trade-only listing may omit it.
	if input.TradeOption == entity.TradeOptionSale || input.TradeOption == entity.TradeOptionBoth {
		if input.Price == nil {
			return errors.Validation("price is required when the product is for sale")
		}
		if *input.Price <= 0 {
			return errors.Validation("price must be positive")
		}
	}
	if input.Price != nil && *input.Price < 0 {
		return errors.Validation("price must not be negative")
	}

	return nil
}

func (uc *ProductUseCase) CreateProduct(ctx context.Context, sellerID string, input ProductInput) (*entity.Product, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	seller, err := uc.userRepo.GetByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if !seller.IsActive() {
		return nil, errors.Forbidden("Account is deactivated", nil)
	}

	images := make([]entity.ProductImage, len(input.Images))
	for i, img := range input.Images {
		images[i] = entity.ProductImage{
			ID:           uuid.New().String(),
			URL:          img.URL,
			DisplayOrder: img.DisplayOrder,
		}
	}

	product := &entity.Product{
		SellerID:    sellerID,
		CategoryID:  input.CategoryID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		TradeOption: input.TradeOption,
		Condition:   input.Condition,
		Tags:        input.Tags,
		Location:    input.Location,
		TradeWish:   input.TradeWish,
		Images:      images,
		Status:      entity.ProductStatusAvailable,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (uc *ProductUseCase) UpdateProduct(ctx context.Context, id, sellerID string, input ProductInput) (*entity.Product, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if product.SellerID != sellerID {
		return nil, errors.Forbidden("You don't have permission to update this product", nil)
	}

	// Edits are blocked while a request is in flight or the product has
	// reached a terminal status.
	if product.Status != entity.ProductStatusAvailable {
		return nil, errors.InvalidState("Product can only be edited while available", product.Status)
	}

	product.CategoryID = input.CategoryID
	product.Title = input.Title
	product.Description = input.Description
	product.Price = input.Price
	product.TradeOption = input.TradeOption
	product.Condition = input.Condition
	product.Tags = input.Tags
	product.Location = input.Location
	product.TradeWish = input.TradeWish

	if len(input.Images) > 0 {
		images := make([]entity.ProductImage, len(input.Images))
		for i, img := range input.Images {
			images[i] = entity.ProductImage{
				ID:           uuid.New().String(),
				URL:          img.URL,
				DisplayOrder: img.DisplayOrder,
			}
		}
		product.Images = images
	}

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (uc *ProductUseCase) RemoveProduct(ctx context.Context, id, sellerID string) error {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if product.SellerID != sellerID {
		return errors.Forbidden("You don't have permission to remove this product", nil)
	}

	if product.Status != entity.ProductStatusAvailable {
		return errors.InvalidState("Product can only be removed while available", product.Status)
	}

	return uc.productRepo.SetStatus(ctx, id, entity.ProductStatusRemoved)
}

func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}

func (uc *ProductUseCase) ListProducts(ctx context.Context, categoryID, status string, page, limit int) ([]*entity.Product, int64, error) {
	filter := make(map[string]interface{})
	if categoryID != "" {
		filter["categoryId"] = categoryID
	}
	if status != "" {
		if !entity.ValidProductStatus(status) {
			return nil, 0, errors.Validation("invalid product status filter")
		}
		filter["status"] = status
	} else {
		filter["status"] = entity.ProductStatusAvailable
	}

	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.productRepo.List(ctx, filter, limit, offset)
}

func (uc *ProductUseCase) ListMyProducts(ctx context.Context, sellerID, status string, page, limit int) ([]*entity.Product, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.productRepo.ListBySellerID(ctx, sellerID, status, limit, offset)
}
