package transport

type CreateBookRequest struct {
	Title         string  `json:"title"           validate:"required,max=255"`
	Description   *string `json:"description"`
	AuthorID      uint    `json:"author_id"       validate:"required"`
	PublisherID   uint    `json:"publisher_id"    validate:"required"`
	CategoryID    uint    `json:"category_id"     validate:"required"`
	Price         string  `json:"price"           validate:"required,price"`
	Stock         int     `json:"stock"           validate:"min=0"`
	CoverImageURL *string `json:"cover_image_url" validate:"omitempty,max=500"`
	CoverImageKey *string `json:"cover_image_key" validate:"omitempty,max=500"`
	ISBN          *string `json:"isbn"            validate:"omitempty,max=20"`
	Pages         *int    `json:"pages"           validate:"omitempty,min=1"`
	PublishedYear *int    `json:"published_year"`
	IsFeatured    bool    `json:"is_featured"`
}

type PatchBookRequest struct {
	Title         *string `json:"title"           validate:"omitempty,max=255"`
	Description   *string `json:"description"`
	AuthorID      *uint   `json:"author_id"       validate:"omitempty,min=1"`
	PublisherID   *uint   `json:"publisher_id"    validate:"omitempty,min=1"`
	CategoryID    *uint   `json:"category_id"     validate:"omitempty,min=1"`
	Price         *string `json:"price"           validate:"omitempty,price"`
	Stock         *int    `json:"stock"           validate:"omitempty,min=0"`
	CoverImageURL *string `json:"cover_image_url" validate:"omitempty,max=500"`
	CoverImageKey *string `json:"cover_image_key" validate:"omitempty,max=500"`
	ISBN          *string `json:"isbn"            validate:"omitempty,max=20"`
	Pages         *int    `json:"pages"           validate:"omitempty,min=1"`
	PublishedYear *int    `json:"published_year"`
	IsFeatured    *bool   `json:"is_featured"`
}

type CreateAuthorRequest struct {
	Name string  `json:"name" validate:"required,max=255"`
	Bio  *string `json:"bio"`
}

type PatchAuthorRequest struct {
	Name *string `json:"name" validate:"omitempty,max=255"`
	Bio  *string `json:"bio"`
}

type CreatePublisherRequest struct {
	Name    string  `json:"name"    validate:"required,max=255"`
	Website *string `json:"website" validate:"omitempty,max=255"`
}

type PatchPublisherRequest struct {
	Name    *string `json:"name"    validate:"omitempty,max=255"`
	Website *string `json:"website" validate:"omitempty,max=255"`
}

type CreateCategoryRequest struct {
	Name        string  `json:"name"        validate:"required,max=255"`
	Description *string `json:"description"`
}

type PatchCategoryRequest struct {
	Name        *string `json:"name"        validate:"omitempty,max=255"`
	Description *string `json:"description"`
}

type CreateOrderItem struct {
	BookID   uint   `json:"book_id"  validate:"required"`
	Quantity int    `json:"quantity" validate:"min=1"`
	Price    string `json:"price"    validate:"required,price"`
}

type CreateOrderRequest struct {
	Items           []CreateOrderItem `json:"items"            validate:"required,min=1,dive"`
	TotalPrice      string            `json:"total_price"      validate:"required,total"`
	ShippingAddress string            `json:"shipping_address" validate:"required,max=255"`
	ShippingCity    string            `json:"shipping_city"    validate:"required,max=100"`
	ShippingZip     string            `json:"shipping_zip"     validate:"required,max=20"`
	ShippingPhone   string            `json:"shipping_phone"   validate:"required,max=20"`
	Notes           *string           `json:"notes"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,order_status"`
}

type CreateOrderResponse struct {
	ID uint `json:"id"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type PageMeta struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type ListResponse[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}
