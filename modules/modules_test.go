package modules_test

import (
	"testing"

	"github.com/jrsteele09/go-module-portal/modules"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	want := map[string]string{
		"clients":           "clients.html",
		"quotations":        "quotations.html",
		"pis":               "pi.html",
		"pos":               "po.html",
		"material_receipts": "receipts.html",
		"shipments":         "shipments.html",
		"documents":         "documents.html",
	}

	all := modules.All()
	require.Len(t, all, len(want))
	for _, m := range all {
		require.Equal(t, want[m.ID], m.Template, m.ID)
		require.NotEmpty(t, m.Title)
	}
}

func TestLookup(t *testing.T) {
	m, ok := modules.Lookup(modules.POs)
	require.True(t, ok)
	require.Equal(t, "po.html", m.Template)

	_, ok = modules.Lookup("payroll")
	require.False(t, ok)
	require.False(t, modules.IsKnown(""))
}

func TestAllReturnsCopy(t *testing.T) {
	all := modules.All()
	all[0].ID = "changed"
	require.Equal(t, modules.Clients, modules.All()[0].ID)
}
