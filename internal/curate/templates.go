package curate

import (
	"text/template"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
)

// sales is the country-canonicalized unified table with calendar parts,
// shared by every report as derived table "s".
const sales = `{{define "sales"}}(
	SELECT
		{{.Country}} AS "COUNTRY",
		g."CATEGORY" AS "CATEGORY",
		g."PRODUCT_ID" AS "PRODUCT_ID",
		g."PRODUCT_NAME" AS "PRODUCT_NAME",
		{{year (q "ORDER_DATE")}} AS "YEAR",
		{{month (q "ORDER_DATE")}} AS "MONTH",
		g."QUANTITY" AS "QUANTITY",
		g."SALES_AMOUNT" AS "SALES_AMOUNT",
		g."PROFIT" AS "PROFIT"
	FROM {{table "TRANSFORMED" "GLOBAL_SALES_ORDER"}} g
) s{{end}}`

const totals = `SUM(s."SALES_AMOUNT") AS "TOTAL_SALES",
		SUM(s."QUANTITY") AS "TOTAL_QUANTITY",
		SUM(s."PROFIT") AS "TOTAL_PROFIT"`

func report(name, body string) *template.Template {
	return storage.NewTemplate(name, sales+body)
}

var salesByCountry = report("sales_by_country", `
SELECT
	s."COUNTRY" AS "COUNTRY",
	`+totals+`,
	{{now}} AS "INSERT_DTS"
FROM {{template "sales" .}}
GROUP BY s."COUNTRY"
`)

var categoryPerformance = report("category_performance", `
SELECT
	c."COUNTRY" AS "COUNTRY",
	c."CATEGORY" AS "CATEGORY",
	c."TOTAL_SALES" AS "TOTAL_SALES",
	c."TOTAL_QUANTITY" AS "TOTAL_QUANTITY",
	c."TOTAL_PROFIT" AS "TOTAL_PROFIT",
	CASE
		WHEN c."TOTAL_SALES" <> 0 AND c."TOTAL_PROFIT" IS NOT NULL THEN c."TOTAL_PROFIT" / c."TOTAL_SALES"
		ELSE {{cast "0" "number"}}
	END AS "PROFIT_MARGIN",
	{{now}} AS "INSERT_DTS"
FROM (
	SELECT
		s."COUNTRY" AS "COUNTRY",
		s."CATEGORY" AS "CATEGORY",
		`+totals+`
	FROM {{template "sales" .}}
	GROUP BY s."COUNTRY", s."CATEGORY"
) c
`)

var monthlySalesTrend = report("monthly_sales_trend", `
SELECT
	s."YEAR" AS "YEAR",
	s."MONTH" AS "MONTH",
	s."COUNTRY" AS "COUNTRY",
	`+totals+`,
	{{now}} AS "INSERT_DTS"
FROM {{template "sales" .}}
GROUP BY s."YEAR", s."MONTH", s."COUNTRY"
`)

var indiaSalesVsTarget = report("india_sales_vs_target", `
SELECT
	a."YEAR" AS "YEAR",
	a."MONTH" AS "MONTH",
	a."CATEGORY" AS "CATEGORY",
	a."ACTUAL_SALES" AS "ACTUAL_SALES",
	t."TARGET_AMOUNT" AS "TARGET_AMOUNT",
	a."ACTUAL_SALES" - t."TARGET_AMOUNT" AS "VARIANCE",
	{{now}} AS "INSERT_DTS"
FROM (
	SELECT
		s."YEAR" AS "YEAR",
		s."MONTH" AS "MONTH",
		s."CATEGORY" AS "CATEGORY",
		SUM(s."SALES_AMOUNT") AS "ACTUAL_SALES"
	FROM {{template "sales" .}}
	WHERE s."COUNTRY" = {{lit .India}}
	GROUP BY s."YEAR", s."MONTH", s."CATEGORY"
) a
LEFT JOIN (
	SELECT
		{{year (q "TARGET_DATE")}} AS "YEAR",
		{{month (q "TARGET_DATE")}} AS "MONTH",
		p."CATEGORY" AS "CATEGORY",
		p."TARGET_AMOUNT" AS "TARGET_AMOUNT"
	FROM (
		SELECT
			{{ts (q "ORDER_MONTH") "month_label"}} AS "TARGET_DATE",
			r."CATEGORY" AS "CATEGORY",
			r."TARGET_AMOUNT" AS "TARGET_AMOUNT"
		FROM {{table "RAW" "INDIA_SALES_TARGETS"}} r
	) p
) t ON a."YEAR" = t."YEAR" AND a."MONTH" = t."MONTH" AND a."CATEGORY" = t."CATEGORY"
`)

// Ranks put NULL totals last, then break ties by product id and name
// ascending with NULLs last, so every engine numbers rows the same way.
var topProductsByRevenue = report("top_products_by_revenue", `
SELECT
	p."COUNTRY" AS "COUNTRY",
	p."PRODUCT_ID" AS "PRODUCT_ID",
	p."PRODUCT_NAME" AS "PRODUCT_NAME",
	p."TOTAL_SALES" AS "TOTAL_SALES",
	p."TOTAL_QUANTITY" AS "TOTAL_QUANTITY",
	p."TOTAL_PROFIT" AS "TOTAL_PROFIT",
	ROW_NUMBER() OVER (
		PARTITION BY p."COUNTRY"
		ORDER BY
			CASE WHEN p."TOTAL_SALES" IS NULL THEN 1 ELSE 0 END,
			p."TOTAL_SALES" DESC,
			CASE WHEN p."PRODUCT_ID" IS NULL THEN 1 ELSE 0 END,
			p."PRODUCT_ID",
			CASE WHEN p."PRODUCT_NAME" IS NULL THEN 1 ELSE 0 END,
			p."PRODUCT_NAME"
	) AS "PRODUCT_RANK",
	{{now}} AS "INSERT_DTS"
FROM (
	SELECT
		s."COUNTRY" AS "COUNTRY",
		s."PRODUCT_ID" AS "PRODUCT_ID",
		s."PRODUCT_NAME" AS "PRODUCT_NAME",
		`+totals+`
	FROM {{template "sales" .}}
	GROUP BY s."COUNTRY", s."PRODUCT_ID", s."PRODUCT_NAME"
) p
`)
