package enums

import "fmt"

// BlockType identifies a content block variant placed on a page.
type BlockType string

const (
	BlockTypeHeader          BlockType = "header"
	BlockTypeFooter          BlockType = "footer"
	BlockTypeHero            BlockType = "hero"
	BlockTypeProductCard     BlockType = "product-card"
	BlockTypeProductGrid     BlockType = "product-grid"
	BlockTypeProductCarousel BlockType = "product-carousel"
	BlockTypeCart            BlockType = "cart"
	BlockTypeCheckout        BlockType = "checkout"
	BlockTypeText            BlockType = "text"
	BlockTypeImage           BlockType = "image"
	BlockTypeGallery         BlockType = "gallery"
	BlockTypeCategories      BlockType = "categories"
	BlockTypeSearch          BlockType = "search"
	BlockTypeContacts        BlockType = "contacts"
	BlockTypeMap             BlockType = "map"
	BlockTypeSocialLinks     BlockType = "social-links"
	BlockTypeReviews         BlockType = "reviews"
	BlockTypeFAQ             BlockType = "faq"
)

var validBlockTypes = []BlockType{
	BlockTypeHeader,
	BlockTypeFooter,
	BlockTypeHero,
	BlockTypeProductCard,
	BlockTypeProductGrid,
	BlockTypeProductCarousel,
	BlockTypeCart,
	BlockTypeCheckout,
	BlockTypeText,
	BlockTypeImage,
	BlockTypeGallery,
	BlockTypeCategories,
	BlockTypeSearch,
	BlockTypeContacts,
	BlockTypeMap,
	BlockTypeSocialLinks,
	BlockTypeReviews,
	BlockTypeFAQ,
}

// String implements fmt.Stringer.
func (b BlockType) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BlockType.
func (b BlockType) IsValid() bool {
	for _, candidate := range validBlockTypes {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBlockType converts raw input into a BlockType.
func ParseBlockType(value string) (BlockType, error) {
	for _, candidate := range validBlockTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid block type %q", value)
}

// BlockTypes returns the full palette in declaration order.
func BlockTypes() []BlockType {
	out := make([]BlockType, len(validBlockTypes))
	copy(out, validBlockTypes)
	return out
}
