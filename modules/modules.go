// Package modules holds the fixed table of gated feature areas.
package modules

// Module identifiers as stored in the users.modules column
const (
	Clients          = "clients"
	Quotations       = "quotations"
	PIs              = "pis"
	POs              = "pos"
	MaterialReceipts = "material_receipts"
	Shipments        = "shipments"
	Documents        = "documents"
)

// Module binds a module identifier to the page that renders it.
type Module struct {
	ID       string
	Title    string
	Template string
}

var table = []Module{
	{ID: Clients, Title: "Clients", Template: "clients.html"},
	{ID: Quotations, Title: "Quotations", Template: "quotations.html"},
	{ID: PIs, Title: "Proforma Invoices", Template: "pi.html"},
	{ID: POs, Title: "Purchase Orders", Template: "po.html"},
	{ID: MaterialReceipts, Title: "Material Receipts", Template: "receipts.html"},
	{ID: Shipments, Title: "Shipments", Template: "shipments.html"},
	{ID: Documents, Title: "Documents", Template: "documents.html"},
}

// All returns the module table in display order.
func All() []Module {
	out := make([]Module, len(table))
	copy(out, table)
	return out
}

// Lookup finds a module by identifier.
func Lookup(id string) (Module, bool) {
	for _, m := range table {
		if m.ID == id {
			return m, true
		}
	}
	return Module{}, false
}

// IsKnown reports whether id names a module in the table.
func IsKnown(id string) bool {
	_, ok := Lookup(id)
	return ok
}
