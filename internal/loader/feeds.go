package loader

import (
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/model"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
)

// Format is the file format of a feed.
type Format string

const (
	CSV     Format = "csv"
	Parquet Format = "parquet"
)

// Policy decides what a malformed row does to its feed.
type Policy string

const (
	// Abort fails the feed on the first malformed row.
	Abort Policy = "abort"
	// Skip logs and counts malformed rows and keeps loading.
	Skip Policy = "skip"
)

// Feed is one source file bound to its staging table. Format and policy are
// fixed per feed; only the location is configurable.
type Feed struct {
	Name    string
	Format  Format
	Policy  Policy
	Table   storage.TableName
	Charset string
	// Env names the environment variable holding the default location.
	Env string
}

// Columns returns the staging column names in file order.
func (f Feed) Columns() []string { return storage.Names(model.StagingColumns[f.Table]) }

// Feeds is the catalog in load order.
var Feeds = []Feed{
	{Name: "india_orders", Format: CSV, Policy: Abort, Table: model.StagingIndiaOrders, Env: "INDIA_ORDERS_URI"},
	{Name: "india_order_details", Format: CSV, Policy: Abort, Table: model.StagingIndiaOrderDetails, Env: "INDIA_ORDER_DETAILS_URI"},
	{Name: "india_sales_targets", Format: CSV, Policy: Abort, Table: model.StagingIndiaSalesTargets, Env: "INDIA_SALES_TARGETS_URI"},
	{Name: "usa_orders", Format: Parquet, Policy: Abort, Table: model.StagingUSAOrders, Env: "USA_ORDERS_URI"},
	{Name: "uk_orders", Format: CSV, Policy: Skip, Table: model.StagingUKOrders, Charset: "utf-8", Env: "UK_ORDERS_URI"},
}

// Lookup returns the feed called name.
func Lookup(name string) (Feed, bool) {
	for _, f := range Feeds {
		if f.Name == name {
			return f, true
		}
	}
	return Feed{}, false
}
