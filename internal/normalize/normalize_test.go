package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercases and trims", input: "  Contato@Empresa.COM ", want: "contato@empresa.com"},
		{name: "exactly five characters is ignored", input: "a@b.c", want: ""},
		{name: "six characters is kept", input: "a@b.co", want: "a@b.co"},
		{name: "blank", input: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EmailKey(tt.input))
		})
	}
}

func TestPhoneKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "strips formatting", input: "(81) 3333-4444", want: "8133334444"},
		{name: "seven digits is ignored", input: "333-4444", want: ""},
		{name: "eight digits is kept", input: "3333-4444", want: "33334444"},
		{name: "letters only", input: "n/a", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PhoneKey(tt.input))
		})
	}
}

func TestNullIfEmpty(t *testing.T) {
	for _, blank := range []string{"", "   ", "-", "--", " -- "} {
		assert.Nil(t, NullIfEmpty(blank), "expected nil for %q", blank)
	}

	got := NullIfEmpty("  valor ")
	if assert.NotNil(t, got) {
		assert.Equal(t, "valor", *got)
	}

	assert.Nil(t, NullIfEmptyPtr(nil))
}

func TestKeyPtrHelpers(t *testing.T) {
	email := "Vendas@Loja.com.br"
	phone := "+55 81 99999-0000"

	assert.Equal(t, "vendas@loja.com.br", EmailKeyPtr(&email))
	assert.Equal(t, "5581999990000", PhoneKeyPtr(&phone))
	assert.Empty(t, EmailKeyPtr(nil))
	assert.Empty(t, PhoneKeyPtr(nil))
}
