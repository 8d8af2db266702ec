package client

import "time"

// Wire models mirroring the API's JSON shapes. The SDK keeps its own
// copies so importers never depend on server internals.

// Product is a catalog product.
type Product struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	Model               string    `json:"model"`
	CategoryID          int64     `json:"categoryId"`
	CategoryName        string    `json:"categoryName"`
	Summary             string    `json:"summary"`
	Description         string    `json:"description"`
	Advantages          string    `json:"advantages"`
	ApplicationAreas    string    `json:"applicationAreas"`
	AdvantageList       []string  `json:"advantageList,omitempty"`
	ApplicationAreaList []string  `json:"applicationAreaList,omitempty"`
	ImageURL            string    `json:"imageUrl"`
	IsPublished         bool      `json:"isPublished"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// Category groups products.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Article is a news article.
type Article struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Type        string     `json:"type"`
	Summary     string     `json:"summary"`
	Content     string     `json:"content"`
	CoverURL    string     `json:"coverUrl"`
	IsPublished bool       `json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Message is a contact-form lead.
type Message struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Company   string    `json:"company"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// ContactInfo is the singleton contact configuration.
type ContactInfo struct {
	CompanyName  string `json:"companyName"`
	Phone        string `json:"phone"`
	Hotline      string `json:"hotline"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	WorkingHours string `json:"workingHours"`
	WechatQRURL  string `json:"wechatQrUrl"`
}

// AboutUs is the singleton about-us document.
type AboutUs struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Advantages    string   `json:"advantages"`
	AdvantageList []string `json:"advantageList,omitempty"`
}
