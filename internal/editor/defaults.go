package editor

import (
	"encoding/json"

	"github.com/storeforge/backend/pkg/enums"
)

// Per-variant default props. Each variant keeps a typed struct so the defaults
// stay reviewable; the open props map remains the wire and storage format.

type headerDefaults struct {
	Logo       string   `json:"logo"`
	MenuItems  []string `json:"menuItems"`
	ShowCart   bool     `json:"showCart"`
	ShowSearch bool     `json:"showSearch"`
}

type footerDefaults struct {
	Copyright   string   `json:"copyright"`
	Links       []string `json:"links"`
	SocialLinks []string `json:"socialLinks"`
}

type heroDefaults struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	ButtonText      string `json:"buttonText"`
	BackgroundImage string `json:"backgroundImage"`
}

type productCardDefaults struct {
	ProductID     *string `json:"productId"`
	ShowPrice     bool    `json:"showPrice"`
	ShowRating    bool    `json:"showRating"`
	ShowAddToCart bool    `json:"showAddToCart"`
}

type productGridDefaults struct {
	Columns        int     `json:"columns"`
	CategoryID     *string `json:"categoryId"`
	Limit          int     `json:"limit"`
	ShowPagination bool    `json:"showPagination"`
}

type productCarouselDefaults struct {
	CategoryID *string `json:"categoryId"`
	Limit      int     `json:"limit"`
	Autoplay   bool    `json:"autoplay"`
	Interval   int     `json:"interval"`
}

type cartDefaults struct {
	ShowTotal          bool `json:"showTotal"`
	ShowCheckoutButton bool `json:"showCheckoutButton"`
}

type checkoutDefaults struct {
	Steps []string `json:"steps"`
}

type textDefaults struct {
	Content   string `json:"content"`
	Alignment string `json:"alignment"`
}

type imageDefaults struct {
	Src       string `json:"src"`
	Alt       string `json:"alt"`
	ObjectFit string `json:"objectFit"`
}

type galleryDefaults struct {
	Images  []string `json:"images"`
	Columns int      `json:"columns"`
}

type categoriesDefaults struct {
	DisplayType string `json:"displayType"`
	ShowCount   bool   `json:"showCount"`
}

type searchDefaults struct {
	Placeholder string `json:"placeholder"`
	ShowFilters bool   `json:"showFilters"`
}

type contactsDefaults struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	ShowMap bool   `json:"showMap"`
}

type mapDefaults struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      int     `json:"zoom"`
}

type socialLinksDefaults struct {
	Links []string `json:"links"`
	Style string   `json:"style"`
}

type reviewsDefaults struct {
	ProductID *string `json:"productId"`
	Limit     int     `json:"limit"`
}

type faqItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type faqDefaults struct {
	Items []faqItem `json:"items"`
}

var defaultsByType = map[enums.BlockType]any{
	enums.BlockTypeHeader: headerDefaults{
		Logo:       "Shop Name",
		MenuItems:  []string{"Home", "Catalog", "About", "Contacts"},
		ShowCart:   true,
		ShowSearch: true,
	},
	enums.BlockTypeFooter: footerDefaults{
		Copyright:   "© 2024 Shop Name",
		Links:       []string{"Privacy Policy", "Terms of Service"},
		SocialLinks: []string{},
	},
	enums.BlockTypeHero: heroDefaults{
		Title:      "Welcome to our store",
		Subtitle:   "The best goods at the best prices",
		ButtonText: "Browse catalog",
	},
	enums.BlockTypeProductCard: productCardDefaults{
		ShowPrice:     true,
		ShowRating:    true,
		ShowAddToCart: true,
	},
	enums.BlockTypeProductGrid: productGridDefaults{
		Columns:        4,
		Limit:          8,
		ShowPagination: true,
	},
	enums.BlockTypeProductCarousel: productCarouselDefaults{
		Limit:    10,
		Autoplay: true,
		Interval: 5000,
	},
	enums.BlockTypeCart: cartDefaults{
		ShowTotal:          true,
		ShowCheckoutButton: true,
	},
	enums.BlockTypeCheckout: checkoutDefaults{
		Steps: []string{"Cart", "Delivery", "Payment", "Confirmation"},
	},
	enums.BlockTypeText: textDefaults{
		Content:   "Enter text...",
		Alignment: "left",
	},
	enums.BlockTypeImage: imageDefaults{
		ObjectFit: "cover",
	},
	enums.BlockTypeGallery: galleryDefaults{
		Images:  []string{},
		Columns: 3,
	},
	enums.BlockTypeCategories: categoriesDefaults{
		DisplayType: "grid",
		ShowCount:   true,
	},
	enums.BlockTypeSearch: searchDefaults{
		Placeholder: "Search products...",
	},
	enums.BlockTypeContacts: contactsDefaults{
		Email: "info@example.com",
		Phone: "+1 (555) 000-0000",
	},
	enums.BlockTypeMap: mapDefaults{
		Latitude:  55.7558,
		Longitude: 37.6173,
		Zoom:      12,
	},
	enums.BlockTypeSocialLinks: socialLinksDefaults{
		Links: []string{},
		Style: "icons",
	},
	enums.BlockTypeReviews: reviewsDefaults{
		Limit: 5,
	},
	enums.BlockTypeFAQ: faqDefaults{
		Items: []faqItem{
			{Question: "How do I place an order?", Answer: "Answer..."},
			{Question: "How do I pay?", Answer: "Answer..."},
		},
	},
}

// DefaultProps returns the default property map for a block variant. Unknown
// variants get an empty map.
func DefaultProps(blockType enums.BlockType) map[string]any {
	defaults, ok := defaultsByType[blockType]
	if !ok {
		return map[string]any{}
	}
	raw, err := json.Marshal(defaults)
	if err != nil {
		return map[string]any{}
	}
	props := map[string]any{}
	if err := json.Unmarshal(raw, &props); err != nil {
		return map[string]any{}
	}
	return props
}
