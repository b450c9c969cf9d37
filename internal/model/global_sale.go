package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/cleanse"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
)

// GlobalSaleColumns is the canonical column set of GLOBAL_SALES_ORDER in
// table order. Every country adapter must produce exactly these names.
var GlobalSaleColumns = []storage.Column{
	{Name: "ORDER_ID", Kind: storage.Text},
	{Name: "ORDER_DATE", Kind: storage.Timestamp},
	{Name: "COUNTRY", Kind: storage.Text},
	{Name: "STATE", Kind: storage.Text},
	{Name: "CITY", Kind: storage.Text},
	{Name: "CATEGORY", Kind: storage.Text},
	{Name: "SUB_CATEGORY", Kind: storage.Text},
	{Name: "PRODUCT_ID", Kind: storage.Text},
	{Name: "PRODUCT_NAME", Kind: storage.Text},
	{Name: "QUANTITY", Kind: storage.Number},
	{Name: "SALES_AMOUNT", Kind: storage.Number},
	{Name: "PROFIT", Kind: storage.Number},
	{Name: "INSERT_DTS", Kind: storage.Timestamp},
}

// GlobalSale is one row of the unified sales table. Pointer and Null
// fields are the columns some countries do not provide.
type GlobalSale struct {
	OrderID     string
	OrderDate   *time.Time
	Country     string
	State       *string
	City        *string
	Category    *string
	SubCategory *string
	ProductID   *string
	ProductName *string
	Quantity    decimal.NullDecimal
	SalesAmount decimal.NullDecimal
	Profit      decimal.NullDecimal
	InsertDTS   *time.Time
}

// GlobalSaleFromRow converts row i of a GLOBAL_SALES_ORDER result set.
// Columns are located by name so the select order does not matter.
func GlobalSaleFromRow(rows *storage.Rows, i int) (GlobalSale, error) {
	var (
		g   GlobalSale
		err error
	)
	vals := rows.Values[i]
	get := func(name string) any {
		ix := rows.Index(name)
		if ix < 0 {
			if err == nil {
				err = fmt.Errorf("model: column %s missing", name)
			}
			return nil
		}
		return vals[ix]
	}
	str := func(name string) *string {
		v := get(name)
		if v == nil {
			return nil
		}
		s := asString(v)
		return &s
	}
	num := func(name string) decimal.NullDecimal {
		d, e := asDecimal(get(name))
		if e != nil && err == nil {
			err = fmt.Errorf("model: %s: %w", name, e)
		}
		return d
	}
	ts := func(name string) *time.Time {
		t, e := asTime(get(name))
		if e != nil && err == nil {
			err = fmt.Errorf("model: %s: %w", name, e)
		}
		return t
	}

	if s := str("ORDER_ID"); s != nil {
		g.OrderID = *s
	}
	if s := str("COUNTRY"); s != nil {
		g.Country = *s
	}
	g.OrderDate = ts("ORDER_DATE")
	g.State = str("STATE")
	g.City = str("CITY")
	g.Category = str("CATEGORY")
	g.SubCategory = str("SUB_CATEGORY")
	g.ProductID = str("PRODUCT_ID")
	g.ProductName = str("PRODUCT_NAME")
	g.Quantity = num("QUANTITY")
	g.SalesAmount = num("SALES_AMOUNT")
	g.Profit = num("PROFIT")
	g.InsertDTS = ts("INSERT_DTS")
	return g, err
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(cleanse.CanonicalLayout)
	default:
		return fmt.Sprint(t)
	}
}

func asDecimal(v any) (decimal.NullDecimal, error) {
	switch t := v.(type) {
	case nil:
		return decimal.NullDecimal{}, nil
	case float64:
		return decimal.NewNullDecimal(decimal.NewFromFloat(t)), nil
	case float32:
		return decimal.NewNullDecimal(decimal.NewFromFloat32(t)), nil
	case int64:
		return decimal.NewNullDecimal(decimal.NewFromInt(t)), nil
	case decimal.Decimal:
		return decimal.NewNullDecimal(t), nil
	case string, []byte:
		d, err := decimal.NewFromString(strings.TrimSpace(asString(t)))
		if err != nil {
			return decimal.NullDecimal{}, err
		}
		return decimal.NewNullDecimal(d), nil
	default:
		return decimal.NullDecimal{}, fmt.Errorf("unsupported numeric value %T", v)
	}
}

func asTime(v any) (*time.Time, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &t, nil
	case string, []byte:
		s := asString(t)
		if p, ok := cleanse.ParseTime(s, cleanse.ISO); ok {
			return &p, nil
		}
		return nil, fmt.Errorf("unparseable timestamp %q", s)
	case int64:
		p := time.Unix(t, 0).UTC()
		return &p, nil
	default:
		return nil, fmt.Errorf("unsupported timestamp value %T", v)
	}
}

// String renders the sale for logs.
func (g GlobalSale) String() string {
	return g.Country + "/" + g.OrderID + " sales=" + nullString(g.SalesAmount) + " qty=" + nullString(g.Quantity)
}

func nullString(d decimal.NullDecimal) string {
	if !d.Valid {
		return "NULL"
	}
	return d.Decimal.String()
}
