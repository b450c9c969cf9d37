package normalize

import "github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"

var indiaOrders = storage.NewTemplate("india_orders", `
SELECT
	src."ORDER_ID" AS "ORDER_ID",
	{{ts (q "ORDER_DATE") "day_month_year"}} AS "ORDER_DATE",
	src."CUSTOMER_NAME" AS "CUSTOMER_NAME",
	src."STATE" AS "STATE",
	src."CITY" AS "CITY",
	{{now}} AS "INSERT_DTS"
FROM {{table "STAGING" "INDIA_ORDERS"}} src
`)

var indiaOrderDetails = storage.NewTemplate("india_order_details", `
SELECT
	src."ORDER_ID" AS "ORDER_ID",
	{{num (q "AMOUNT")}} AS "AMOUNT",
	{{num (q "PROFIT")}} AS "PROFIT",
	{{num (q "QUANTITY")}} AS "QUANTITY",
	src."CATEGORY" AS "CATEGORY",
	src."SUB_CATEGORY" AS "SUB_CATEGORY",
	{{now}} AS "INSERT_DTS"
FROM {{table "STAGING" "INDIA_ORDER_DETAILS"}} src
`)

var indiaSalesTargets = storage.NewTemplate("india_sales_targets", `
SELECT
	src."ORDER_MONTH" AS "ORDER_MONTH",
	src."CATEGORY" AS "CATEGORY",
	{{num (q "TARGET")}} AS "TARGET_AMOUNT",
	{{now}} AS "INSERT_DTS"
FROM {{table "STAGING" "INDIA_SALES_TARGETS"}} src
`)

// The USA feed keeps the file's spaced, mixed-case names in staging; each
// column is re-aliased to the canonical form here.
var usaOrders = storage.NewTemplate("usa_orders", `
SELECT
	src."Row ID" AS "ROW_ID",
	src."Order ID" AS "ORDER_ID",
	{{ts (q "Order Date") "iso"}} AS "ORDER_DATE",
	{{ts (q "Ship Date") "iso"}} AS "SHIP_DATE",
	src."Ship Mode" AS "SHIP_MODE",
	src."Customer ID" AS "CUSTOMER_ID",
	src."Country" AS "COUNTRY",
	src."City" AS "CITY",
	src."State" AS "STATE",
	src."Postal Code" AS "POSTAL_CODE",
	src."Region" AS "REGION",
	src."Product ID" AS "PRODUCT_ID",
	src."Category" AS "CATEGORY",
	src."Sub-Category" AS "SUB_CATEGORY",
	src."Product Name" AS "PRODUCT_NAME",
	{{num (q "Sales")}} AS "SALES",
	{{num (q "Quantity")}} AS "QUANTITY",
	{{num (q "Discount")}} AS "DISCOUNT",
	{{num (q "Profit")}} AS "PROFIT",
	{{now}} AS "INSERT_DTS"
FROM {{table "STAGING" "USA_SALES_ORDER_CP"}} src
`)

var ukOrders = storage.NewTemplate("uk_orders", `
SELECT
	src."INVOICE_NO" AS "ORDER_ID",
	src."STOCK_CODE" AS "PRODUCT_ID",
	src."DESCRIPTION" AS "PRODUCT_DESCRIPTION",
	{{num (q "QUANTITY")}} AS "QUANTITY",
	{{ts (q "INVOICE_DATE") "us_datetime"}} AS "ORDER_DATE",
	{{num (q "UNIT_PRICE")}} AS "UNIT_PRICE",
	src."CUSTOMER_ID" AS "CUSTOMER_ID",
	src."COUNTRY" AS "COUNTRY",
	{{now}} AS "INSERT_DTS"
FROM {{table "STAGING" "UK_SALES_ORDER_CP"}} src
`)
