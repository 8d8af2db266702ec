package sitecfg

// Storage keys for the singleton configuration documents.
const (
	keyContact = "contact"
	keyAboutUs = "about_us"
)

// ContactInfo is the singleton contact configuration shown in the site
// footer and on the contact page.
type ContactInfo struct {
	CompanyName  string `json:"companyName"`
	Phone        string `json:"phone"`
	Hotline      string `json:"hotline"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	WorkingHours string `json:"workingHours"`
	WechatQRURL  string `json:"wechatQrUrl"`
}

// AboutUs is the singleton about-us page content. Advantages is the
// delimited blob the admin console edits; AdvantageList is derived.
type AboutUs struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Advantages    string   `json:"advantages"`
	AdvantageList []string `json:"advantageList,omitempty"`
}
