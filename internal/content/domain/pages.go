package domain

const (
	ShippingStandard      = "standard"
	ShippingFreeThreshold = "free_threshold"
	ShippingSameDay       = "same_day"
)

type Pages struct {
	Contact   ContactDetails `yaml:"contact"`
	Shipping  ShippingPage   `yaml:"shipping"`
	SizeGuide SizeGuide      `yaml:"size_guide"`
	Care      CarePage       `yaml:"care"`
}

type ContactDetails struct {
	Email   string `yaml:"email"`
	Phone   string `yaml:"phone"`
	Hours   string `yaml:"hours"`
	Address string `yaml:"address"`
}

// ShippingOption is one line of the shipping page. Informational options are
// advertised only; checkout always charges the flat standard fee.
type ShippingOption struct {
	Kind          string `yaml:"kind"`
	Name          string `yaml:"name"`
	Detail        string `yaml:"detail"`
	Fee           int64  `yaml:"fee"`
	Threshold     int64  `yaml:"threshold"`
	Informational bool   `yaml:"informational"`
}

type ReturnsPolicy struct {
	WindowDays int    `yaml:"window_days"`
	Policy     string `yaml:"policy"`
}

type ShippingPage struct {
	Title   string           `yaml:"title"`
	Intro   string           `yaml:"intro"`
	Options []ShippingOption `yaml:"options"`
	Returns ReturnsPolicy    `yaml:"returns"`
}

type SizeRow struct {
	EU int     `yaml:"eu"`
	US int     `yaml:"us"`
	UK int     `yaml:"uk"`
	CM float64 `yaml:"cm"`
}

type SizeGuide struct {
	Intro     string    `yaml:"intro"`
	Rows      []SizeRow `yaml:"rows"`
	FitAdvice string    `yaml:"fit_advice"`
}

// ByEU returns the conversion row for an EU size.
func (g SizeGuide) ByEU(eu int) (SizeRow, bool) {
	for _, r := range g.Rows {
		if r.EU == eu {
			return r, true
		}
	}
	return SizeRow{}, false
}

type CareItem struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type CarePage struct {
	Intro string     `yaml:"intro"`
	Items []CareItem `yaml:"items"`
}

type ContactForm struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Message   string `json:"message" validate:"required,max=5000"`
}

type NewsletterForm struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

type Acknowledgement struct {
	Title string
	Text  string
}
