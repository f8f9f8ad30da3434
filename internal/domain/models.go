package domain

import "time"

// Product lifecycle states. Only PUBLISHED products are visible to shoppers.
const (
	ProductDraft     = "DRAFT"
	ProductPublished = "PUBLISHED"
	ProductArchived  = "ARCHIVED"
)

type Category struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Image     string    `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

type SubCategory struct {
	ID         string    `bson:"_id" json:"id"`
	CategoryID string    `bson:"category_id" json:"categoryId"`
	Name       string    `bson:"name" json:"name"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// Variant is one purchasable size/color combination of a product. Its identity
// is the (product, size, color) tuple; there is no separate variant id in the
// database.
type Variant struct {
	Size  string `bson:"size" json:"size"`
	Color string `bson:"color" json:"color"`
	Stock int    `bson:"stock" json:"stock"`
	Image string `bson:"image,omitempty" json:"image,omitempty"`
}

type Product struct {
	ID            string    `bson:"_id" json:"id"`
	Slug          string    `bson:"slug" json:"slug"`
	Name          string    `bson:"name" json:"name"`
	Description   string    `bson:"description,omitempty" json:"description,omitempty"`
	Price         float64   `bson:"price" json:"price"` // canonical currency (USD)
	CategoryID    string    `bson:"category_id" json:"categoryId"`
	SubCategoryID string    `bson:"subcategory_id,omitempty" json:"subCategoryId,omitempty"`
	Tags          []string  `bson:"tags,omitempty" json:"tags,omitempty"`
	Images        []string  `bson:"images,omitempty" json:"images,omitempty"`
	Variants      []Variant `bson:"variants,omitempty" json:"variants,omitempty"`
	Status        string    `bson:"status" json:"status"`
	Rating        float64   `bson:"rating" json:"rating"`
	ReviewCount   int       `bson:"review_count" json:"reviewCount"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// FirstImage returns the primary catalog image, or "" for image-less drafts.
func (p Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// FindVariant looks up a variant by its identity tuple.
func (p Product) FindVariant(size, color string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.Size == size && v.Color == color {
			return v, true
		}
	}
	return Variant{}, false
}

// ProductSummary is the slim shape handed to the AI search flow as catalog
// context and returned from search results.
type ProductSummary struct {
	ID         string   `bson:"_id" json:"id"`
	Slug       string   `bson:"slug" json:"slug"`
	Name       string   `bson:"name" json:"name"`
	Price      float64  `bson:"price" json:"price"`
	CategoryID string   `bson:"category_id" json:"categoryId"`
	Tags       []string `bson:"tags,omitempty" json:"tags,omitempty"`
	Image      string   `bson:"image,omitempty" json:"image,omitempty"`
}

// VariantKey builds the cart line identity for a (product, size, color) tuple.
func VariantKey(productID, size, color string) string {
	return productID + ":" + size + ":" + color
}

// CartItem is a denormalized snapshot of a variant at time of add. At most one
// item exists per VariantID; re-adding the same variant sums quantities.
type CartItem struct {
	VariantID string  `json:"variantId"`
	ProductID string  `json:"productId"`
	Slug      string  `json:"slug"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"` // USD at time of add
	Image     string  `json:"image,omitempty"`
	Color     string  `json:"color"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
}

// Review moderation states. Only APPROVED reviews are shown publicly.
const (
	ReviewPending  = "PENDING"
	ReviewApproved = "APPROVED"
	ReviewRejected = "REJECTED"
)

type Review struct {
	ID        string    `bson:"_id" json:"id"`
	ProductID string    `bson:"product_id" json:"productId"`
	Author    string    `bson:"author" json:"author"`
	Rating    int       `bson:"rating" json:"rating"` // 1..5
	Title     string    `bson:"title,omitempty" json:"title,omitempty"`
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// Order states. An order is created when checkout hands off to WhatsApp and
// confirmed (or cancelled) by an admin afterwards.
const (
	OrderPendingWhatsApp = "PENDING_WHATSAPP"
	OrderConfirmed       = "CONFIRMED"
	OrderCancelled       = "CANCELLED"
)

type OrderLine struct {
	VariantID string  `bson:"variant_id" json:"variantId"`
	ProductID string  `bson:"product_id" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Color     string  `bson:"color" json:"color"`
	Size      string  `bson:"size" json:"size"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Price     float64 `bson:"price" json:"price"`
	Image     string  `bson:"image,omitempty" json:"image,omitempty"`
}

type OrderCustomer struct {
	Name  string `bson:"name" json:"name"`
	Phone string `bson:"phone" json:"phone"`
}

type Order struct {
	ID        string        `bson:"_id" json:"id"`
	SessionID string        `bson:"session_id" json:"-"`
	Customer  OrderCustomer `bson:"customer" json:"customer"`
	Lines     []OrderLine   `bson:"lines" json:"lines"`
	Total     float64       `bson:"total" json:"total"`
	Lang      string        `bson:"lang" json:"lang"`
	Status    string        `bson:"status" json:"status"`
	CreatedAt time.Time     `bson:"created_at" json:"createdAt"`
}
