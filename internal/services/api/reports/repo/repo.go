// Package repo provides postgres access for reports
package repo

import (
	"context"

	"posbridge/internal/modkit/repokit"
	"posbridge/internal/platform/store"
)

// Repo is the minimal persistence surface for reports
type Repo interface {
	Revenue(ctx context.Context, start, end, department string) ([]RowRevenue, error)
	TopItems(ctx context.Context, start, end string, limit int) ([]RowTopItem, error)
	Hourly(ctx context.Context, start, end string) ([]RowHourly, error)
	Cashflow(ctx context.Context, start, end, accountGroup string) ([]RowCashflow, error)
}

// RowRevenue represents one revenue row by day
type RowRevenue struct {
	Day     string  `db:"day"`
	Revenue float64 `db:"revenue"`
	FullSum float64 `db:"full_sum"`
	Orders  int64   `db:"orders"`
}

// RowTopItem represents one ranked dish row
type RowTopItem struct {
	ProductExternalID string  `db:"product_external_id"`
	DishName          string  `db:"dish_name"`
	Amount            float64 `db:"amount"`
	Revenue           float64 `db:"revenue"`
}

// RowHourly represents one hour bucket row
type RowHourly struct {
	Hour    int     `db:"hour"`
	Revenue float64 `db:"revenue"`
	Orders  int64   `db:"orders"`
}

// RowCashflow represents incoming and outgoing sums for one account
type RowCashflow struct {
	Account  string  `db:"account"`
	Incoming float64 `db:"incoming"`
	Outgoing float64 `db:"outgoing"`
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// Storned rows stay out of every sales report, soft deleted rows too

func (r *queries) Revenue(ctx context.Context, start, end, department string) ([]RowRevenue, error) {
	const sql = `
select open_time::date::text as day,
       coalesce(sum(dish_discount_sum), 0) as revenue,
       coalesce(sum(full_sum), 0) as full_sum,
       count(distinct order_external_id) as orders
from sales
where open_time >= $1::date and open_time < $2::date
and not deleted
and not coalesce(storned, false)
and ($3 = '' or department = $3)
group by day
order by day asc
`
	return store.StructsByName[RowRevenue](ctx, r.q, sql, start, end, department)
}

func (r *queries) TopItems(ctx context.Context, start, end string, limit int) ([]RowTopItem, error) {
	const sql = `
select coalesce(product_external_id, '') as product_external_id,
       coalesce(dish_name, '') as dish_name,
       coalesce(sum(amount), 0) as amount,
       coalesce(sum(dish_discount_sum), 0) as revenue
from sales
where open_time >= $1::date and open_time < $2::date
and not deleted
and not coalesce(storned, false)
group by product_external_id, dish_name
order by amount desc, revenue desc
limit $3
`
	return store.StructsByName[RowTopItem](ctx, r.q, sql, start, end, limit)
}

func (r *queries) Hourly(ctx context.Context, start, end string) ([]RowHourly, error) {
	const sql = `
select coalesce(hour_open, 0)::int as hour,
       coalesce(sum(dish_discount_sum), 0) as revenue,
       count(distinct order_external_id) as orders
from sales
where open_time >= $1::date and open_time < $2::date
and not deleted
and not coalesce(storned, false)
group by hour
order by hour asc
`
	return store.StructsByName[RowHourly](ctx, r.q, sql, start, end)
}

func (r *queries) Cashflow(ctx context.Context, start, end, accountGroup string) ([]RowCashflow, error) {
	const sql = `
select coalesce(account, '') as account,
       coalesce(sum(sum_incoming), 0) as incoming,
       coalesce(sum(sum_outgoing), 0) as outgoing
from transactions
where occurred_at >= $1::date and occurred_at < $2::date
and not deleted
and ($3 = '' or account_group = $3)
group by account
order by incoming desc, account asc
`
	return store.StructsByName[RowCashflow](ctx, r.q, sql, start, end, accountGroup)
}
