package woocommerce

// Product is a record as returned by the WooCommerce REST API (wc/v3).
// Only the fields the storefront reads are declared.
type Product struct {
	ID               int64       `json:"id"`
	Name             string      `json:"name"`
	Slug             string      `json:"slug"`
	Price            string      `json:"price"`
	RegularPrice     string      `json:"regular_price"`
	SalePrice        string      `json:"sale_price"`
	Description      string      `json:"description"`
	ShortDescription string      `json:"short_description"`
	StockStatus      string      `json:"stock_status"`
	StockQuantity    *int        `json:"stock_quantity"`
	SKU              string      `json:"sku"`
	Weight           string      `json:"weight"`
	TaxStatus        string      `json:"tax_status"`
	TaxClass         string      `json:"tax_class"`
	Images           []Image     `json:"images"`
	Categories       []Term      `json:"categories"`
	Tags             []Term      `json:"tags"`
	Attributes       []Attribute `json:"attributes"`
}

// Image is a product image.
type Image struct {
	ID   int64  `json:"id"`
	Src  string `json:"src"`
	Name string `json:"name,omitempty"`
	Alt  string `json:"alt,omitempty"`
}

// Term is a category or tag reference.
type Term struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Attribute is a named product attribute with its option values.
type Attribute struct {
	ID      int64    `json:"id,omitempty"`
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// StockInStock is the upstream stock_status value for available products.
const StockInStock = "instock"
