package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootRegistersCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range RootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"start", "load", "cache", "stock"} {
		assert.True(t, names[want], "command %q must be registered", want)
	}
}

func TestStockSetArgs(t *testing.T) {
	// stock set takes exactly a product id and a quantity.
	assert.Error(t, stockSetCmd.Args(stockSetCmd, []string{"p1"}))
	assert.NoError(t, stockSetCmd.Args(stockSetCmd, []string{"p1", "5"}))
}
