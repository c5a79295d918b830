package normalize

import (
	"strings"

	perr "posbridge/internal/platform/errors"
	pstrings "posbridge/internal/platform/strings"
	ptime "posbridge/internal/platform/time"
)

// Kind selects the coercion applied to a vendor field
type Kind uint8

// Field kinds
const (
	KindText Kind = iota
	KindNumeric
	KindBool
	KindComposite
	KindTime
)

// Field maps one vendor dot-path key onto a canonical column
type Field struct {
	Key    string // vendor key in the raw row
	Column string // canonical column name
	Kind   Kind
}

// Table describes how one entity's raw rows normalize
type Table struct {
	Name      string // canonical entity/table name
	IDKey     string // vendor key holding the record identity
	TimeField string // canonical column positioning the record in a sync window, "" for snapshots
	Fields    []Field
	Modifiers bool // rows carry a nested modifier tree under "modifiers"
}

// Record is one normalized row ready for storage
type Record struct {
	ExternalID string
	Fields     map[string]any
	Modifiers  []FlatModifier
}

// Columns returns the canonical column names in declared order
func (t Table) Columns() []string {
	out := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		out[i] = f.Column
	}
	return out
}

// Normalize maps one raw vendor row through the table.
//
// A missing or blank identity fails the record; every other field is
// coerced best-effort and degrades to nil. Flattening the modifier tree
// never fails either, id-less subtrees are silently dropped.
func Normalize(tbl Table, raw RawRecord) (Record, error) {
	idv, _ := SafeGet(raw, tbl.IDKey)
	id, ok := CompositeID(idv)
	if !ok || id == "" {
		return Record{}, perr.InvalidArgf("%s: record missing identity %q", tbl.Name, tbl.IDKey)
	}

	rec := Record{
		ExternalID: id,
		Fields:     make(map[string]any, len(tbl.Fields)),
	}

	for _, f := range tbl.Fields {
		v, present := SafeGet(raw, f.Key)
		if !present {
			rec.Fields[f.Column] = nil
			continue
		}
		switch f.Kind {
		case KindNumeric:
			if n, ok := Numeric(v); ok {
				rec.Fields[f.Column] = n
			} else {
				rec.Fields[f.Column] = nil
			}
		case KindBool:
			rec.Fields[f.Column] = Boolean(v)
		case KindComposite:
			if s, ok := CompositeID(v); ok {
				rec.Fields[f.Column] = s
			} else {
				rec.Fields[f.Column] = nil
			}
		case KindTime:
			if ts, ok := Timestamp(v); ok {
				// zero times store as null
				rec.Fields[f.Column] = ptime.Ptr(ts)
			} else {
				rec.Fields[f.Column] = nil
			}
		default: // KindText
			if s, ok := v.(string); ok {
				// blank after cleanup stores as null
				rec.Fields[f.Column] = pstrings.SQLNull(Text(s))
			} else if s, ok := CompositeID(v); ok {
				// some text fields arrive as numbers or lists
				rec.Fields[f.Column] = s
			} else {
				rec.Fields[f.Column] = nil
			}
		}
	}

	if tbl.Modifiers {
		if mods, present := raw["modifiers"]; present {
			rec.Modifiers = FlattenModifiers(mods)
		}
	}

	return rec, nil
}

// NormalizeBatch maps raws through the table, returning the good records
// and the count of records rejected for missing identity
func NormalizeBatch(tbl Table, raws []RawRecord) (recs []Record, rejected int) {
	recs = make([]Record, 0, len(raws))
	for _, raw := range raws {
		rec, err := Normalize(tbl, raw)
		if err != nil {
			rejected++
			continue
		}
		recs = append(recs, rec)
	}
	return recs, rejected
}

// Entity field tables. Keys are the vendor's wire names, columns ours.

// Organizations is the vendor department/org snapshot
var Organizations = Table{
	Name:  "organizations",
	IDKey: "id",
	Fields: []Field{
		{Key: "name", Column: "name", Kind: KindText},
		{Key: "code", Column: "code", Kind: KindComposite},
		{Key: "type", Column: "org_type", Kind: KindText},
		{Key: "parentId", Column: "parent_external_id", Kind: KindComposite},
		{Key: "taxpayerIdNumber", Column: "taxpayer_id", Kind: KindComposite},
	},
}

// Products is the vendor nomenclature snapshot, rows carry modifier trees
var Products = Table{
	Name:      "products",
	IDKey:     "id",
	Modifiers: true,
	Fields: []Field{
		{Key: "name", Column: "name", Kind: KindText},
		{Key: "num", Column: "article", Kind: KindComposite},
		{Key: "code", Column: "code", Kind: KindComposite},
		{Key: "parentGroup", Column: "group_external_id", Kind: KindComposite},
		{Key: "category", Column: "category", Kind: KindText},
		{Key: "type", Column: "product_type", Kind: KindText},
		{Key: "price", Column: "price", Kind: KindNumeric},
		{Key: "deleted", Column: "vendor_deleted", Kind: KindBool},
	},
}

// Sales is the per-dish sales report feed
var Sales = Table{
	Name:      "sales",
	IDKey:     "ItemSaleEvent.Id",
	TimeField: "open_time",
	Fields: []Field{
		{Key: "Department", Column: "department", Kind: KindText},
		{Key: "UniqOrderId.Id", Column: "order_external_id", Kind: KindComposite},
		{Key: "OrderNum", Column: "order_num", Kind: KindComposite},
		{Key: "FiscalChequeNumber", Column: "fiscal_cheque_number", Kind: KindComposite},
		{Key: "DishId", Column: "product_external_id", Kind: KindComposite},
		{Key: "DishName", Column: "dish_name", Kind: KindText},
		{Key: "DishCategory", Column: "dish_category", Kind: KindText},
		{Key: "DishAmountInt", Column: "amount", Kind: KindNumeric},
		{Key: "DishSumInt", Column: "dish_sum", Kind: KindNumeric},
		{Key: "DishDiscountSumInt", Column: "dish_discount_sum", Kind: KindNumeric},
		{Key: "DishDiscountSumInt.averagePrice", Column: "avg_price", Kind: KindNumeric},
		{Key: "fullSum", Column: "full_sum", Kind: KindNumeric},
		{Key: "DiscountSum", Column: "discount_sum", Kind: KindNumeric},
		{Key: "PayTypes", Column: "pay_types", Kind: KindText},
		{Key: "Delivery.IsDelivery", Column: "is_delivery", Kind: KindBool},
		{Key: "Storned", Column: "storned", Kind: KindBool},
		{Key: "OpenTime", Column: "open_time", Kind: KindTime},
		{Key: "CloseTime", Column: "close_time", Kind: KindTime},
		{Key: "HourOpen", Column: "hour_open", Kind: KindNumeric},
	},
}

// Transactions is the ledger transactions report feed
var Transactions = Table{
	Name:      "transactions",
	IDKey:     "TransactionId",
	TimeField: "occurred_at",
	Fields: []Field{
		{Key: "DateTime.Typed", Column: "occurred_at", Kind: KindTime},
		{Key: "TransactionType", Column: "transaction_type", Kind: KindText},
		{Key: "Account.Name", Column: "account", Kind: KindText},
		{Key: "Account.Group", Column: "account_group", Kind: KindText},
		{Key: "Counteragent.Name", Column: "counteragent", Kind: KindText},
		{Key: "Department", Column: "department", Kind: KindText},
		{Key: "Product.Name", Column: "product_name", Kind: KindText},
		{Key: "Product.Category.Id", Column: "product_category", Kind: KindComposite},
		{Key: "Sum.Incoming", Column: "sum_incoming", Kind: KindNumeric},
		{Key: "Sum.Outgoing", Column: "sum_outgoing", Kind: KindNumeric},
		{Key: "Sum.ResignedSum", Column: "resigned_sum", Kind: KindNumeric},
		{Key: "VAT.Percent", Column: "vat_percent", Kind: KindNumeric},
	},
}

// TableByName resolves a canonical entity name to its table
func TableByName(name string) (Table, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Organizations.Name:
		return Organizations, true
	case Products.Name:
		return Products, true
	case Sales.Name:
		return Sales, true
	case Transactions.Name:
		return Transactions, true
	default:
		return Table{}, false
	}
}
