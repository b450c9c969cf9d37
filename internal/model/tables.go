// Package model names the warehouse layers, their tables and the canonical
// unified sales record.
package model

import "github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"

// Warehouse layers, one schema each.
const (
	Staging     = "STAGING"
	Raw         = "RAW"
	Transformed = "TRANSFORMED"
	Curated     = "CURATED"
)

// Schemas lists the layers in pipeline order.
var Schemas = []string{Staging, Raw, Transformed, Curated}

// Table names shared by the staging and raw layers.
const (
	IndiaOrders       = "INDIA_ORDERS"
	IndiaOrderDetails = "INDIA_ORDER_DETAILS"
	IndiaSalesTargets = "INDIA_SALES_TARGETS"
)

// Staging tables receive files as-is.
var (
	StagingIndiaOrders       = storage.TableName{Schema: Staging, Name: IndiaOrders}
	StagingIndiaOrderDetails = storage.TableName{Schema: Staging, Name: IndiaOrderDetails}
	StagingIndiaSalesTargets = storage.TableName{Schema: Staging, Name: IndiaSalesTargets}
	StagingUSAOrders         = storage.TableName{Schema: Staging, Name: "USA_SALES_ORDER_CP"}
	StagingUKOrders          = storage.TableName{Schema: Staging, Name: "UK_SALES_ORDER_CP"}
)

// Raw tables hold typed, per-country data.
var (
	RawIndiaOrders       = storage.TableName{Schema: Raw, Name: IndiaOrders}
	RawIndiaOrderDetails = storage.TableName{Schema: Raw, Name: IndiaOrderDetails}
	RawIndiaSalesTargets = storage.TableName{Schema: Raw, Name: IndiaSalesTargets}
	RawUSAOrders         = storage.TableName{Schema: Raw, Name: "USA_SALES_ORDER"}
	RawUKOrders          = storage.TableName{Schema: Raw, Name: "UK_SALES_ORDER"}
)

// GlobalSalesOrder is the unified fact table.
var GlobalSalesOrder = storage.TableName{Schema: Transformed, Name: "GLOBAL_SALES_ORDER"}

// Curated aggregates.
var (
	SalesByCountry       = storage.TableName{Schema: Curated, Name: "SALES_BY_COUNTRY"}
	CategoryPerformance  = storage.TableName{Schema: Curated, Name: "CATEGORY_PERFORMANCE"}
	MonthlySalesTrend    = storage.TableName{Schema: Curated, Name: "MONTHLY_SALES_TREND"}
	IndiaSalesVsTarget   = storage.TableName{Schema: Curated, Name: "INDIA_SALES_VS_TARGET"}
	TopProductsByRevenue = storage.TableName{Schema: Curated, Name: "TOP_PRODUCTS_BY_REVENUE"}
)

func text(names ...string) []storage.Column {
	out := make([]storage.Column, len(names))
	for i, n := range names {
		out[i] = storage.Column{Name: n, Kind: storage.Text}
	}
	return out
}

// StagingColumns maps each staging table to its source-shaped, all-text
// column list. Column order is the file's positional order.
var StagingColumns = map[storage.TableName][]storage.Column{
	StagingIndiaOrders: text("ORDER_ID", "ORDER_DATE", "CUSTOMER_NAME", "STATE", "CITY"),
	StagingIndiaOrderDetails: text("ORDER_ID", "AMOUNT", "PROFIT", "QUANTITY", "CATEGORY", "SUB_CATEGORY"),
	StagingIndiaSalesTargets: text("ORDER_MONTH", "CATEGORY", "TARGET"),
	StagingUSAOrders: text(
		"Row ID", "Order ID", "Order Date", "Ship Date", "Ship Mode",
		"Customer ID", "Customer Name", "Segment", "Country", "City",
		"State", "Postal Code", "Region", "Product ID", "Category",
		"Sub-Category", "Product Name", "Sales", "Quantity", "Discount", "Profit",
	),
	StagingUKOrders: text(
		"INVOICE_NO", "STOCK_CODE", "DESCRIPTION", "QUANTITY",
		"INVOICE_DATE", "UNIT_PRICE", "CUSTOMER_ID", "COUNTRY",
	),
}

// StagingTables lists the staging tables in feed order.
var StagingTables = []storage.TableName{
	StagingIndiaOrders,
	StagingIndiaOrderDetails,
	StagingIndiaSalesTargets,
	StagingUSAOrders,
	StagingUKOrders,
}
