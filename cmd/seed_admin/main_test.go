package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountEmail_RecortaUnaSolaVez(t *testing.T) {
	email, err := accountEmail("  admin@souq.test \n")
	require.NoError(t, err)
	assert.Equal(t, "admin@souq.test", email)
}

func TestAccountEmail_Rechazos(t *testing.T) {
	for _, raw := range []string{"", "   ", "notanemail", "admin@"} {
		t.Run(raw, func(t *testing.T) {
			_, err := accountEmail(raw)
			assert.Error(t, err)
		})
	}
}
