package unify

// Adapter maps one country's raw tables onto the canonical sales record.
// Fields maps each canonical column to a template expression; columns a
// country lacks map to a typed NULL.
type Adapter struct {
	Source string
	From   string
	Fields map[string]string
}

var india = Adapter{
	Source: "india",
	From: `{{table "RAW" "INDIA_ORDERS"}} o
	INNER JOIN {{table "RAW" "INDIA_ORDER_DETAILS"}} d ON o."ORDER_ID" = d."ORDER_ID"`,
	Fields: map[string]string{
		"ORDER_ID":     `o."ORDER_ID"`,
		"ORDER_DATE":   `o."ORDER_DATE"`,
		"COUNTRY":      `{{lit "India"}}`,
		"STATE":        `o."STATE"`,
		"CITY":         `o."CITY"`,
		"CATEGORY":     `d."CATEGORY"`,
		"SUB_CATEGORY": `d."SUB_CATEGORY"`,
		"PRODUCT_ID":   `{{null "text"}}`,
		"PRODUCT_NAME": `{{null "text"}}`,
		"QUANTITY":     `d."QUANTITY"`,
		"SALES_AMOUNT": `d."AMOUNT"`,
		"PROFIT":       `d."PROFIT"`,
		"INSERT_DTS":   `{{now}}`,
	},
}

var usa = Adapter{
	Source: "usa",
	From:   `{{table "RAW" "USA_SALES_ORDER"}} u`,
	Fields: map[string]string{
		"ORDER_ID":     `u."ORDER_ID"`,
		"ORDER_DATE":   `u."ORDER_DATE"`,
		"COUNTRY":      `u."COUNTRY"`,
		"STATE":        `u."STATE"`,
		"CITY":         `u."CITY"`,
		"CATEGORY":     `u."CATEGORY"`,
		"SUB_CATEGORY": `u."SUB_CATEGORY"`,
		"PRODUCT_ID":   `u."PRODUCT_ID"`,
		"PRODUCT_NAME": `u."PRODUCT_NAME"`,
		"QUANTITY":     `u."QUANTITY"`,
		"SALES_AMOUNT": `u."SALES"`,
		"PROFIT":       `u."PROFIT"`,
		"INSERT_DTS":   `{{now}}`,
	},
}

var uk = Adapter{
	Source: "uk",
	From:   `{{table "RAW" "UK_SALES_ORDER"}} k`,
	Fields: map[string]string{
		"ORDER_ID":     `k."ORDER_ID"`,
		"ORDER_DATE":   `k."ORDER_DATE"`,
		"COUNTRY":      `k."COUNTRY"`,
		"STATE":        `{{null "text"}}`,
		"CITY":         `{{null "text"}}`,
		"CATEGORY":     `{{null "text"}}`,
		"SUB_CATEGORY": `{{null "text"}}`,
		"PRODUCT_ID":   `k."PRODUCT_ID"`,
		"PRODUCT_NAME": `k."PRODUCT_DESCRIPTION"`,
		"QUANTITY":     `k."QUANTITY"`,
		"SALES_AMOUNT": `k."QUANTITY" * k."UNIT_PRICE"`,
		"PROFIT":       `{{null "number"}}`,
		"INSERT_DTS":   `{{now}}`,
	},
}

// Adapters lists the sources in union order.
var Adapters = []Adapter{india, usa, uk}
