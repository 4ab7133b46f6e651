package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type form struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Expiry string `json:"expiry" validate:"required,mmyy"`
	Card   string `json:"card_number" validate:"required,cardnum"`
}

func TestStruct(t *testing.T) {
	ok := form{Name: "Ayesha", Email: "a@example.com", Expiry: "04/27", Card: "4242 4242 4242 4242"}
	require.NoError(t, Struct(ok))

	t.Run("field names follow json tags", func(t *testing.T) {
		bad := ok
		bad.Name = ""
		err := Struct(bad)
		require.Error(t, err)
		assert.Equal(t, "name is required", Message(err))
	})

	t.Run("expiry", func(t *testing.T) {
		for _, exp := range []string{"13/27", "4/27", "04-27", "0427"} {
			bad := ok
			bad.Expiry = exp
			err := Struct(bad)
			require.Error(t, err, exp)
			assert.Equal(t, "expiry must be MM/YY", Message(err))
		}
	})

	t.Run("card number", func(t *testing.T) {
		for _, card := range []string{"4242", "4242-4242-4242-abcd", "12345678901234567890"} {
			bad := ok
			bad.Card = card
			assert.Error(t, Struct(bad), card)
		}
		good := ok
		good.Card = "4242-4242-4242-4242"
		assert.NoError(t, Struct(good))
	})

	t.Run("several failures joined", func(t *testing.T) {
		err := Struct(form{})
		require.Error(t, err)
		assert.Contains(t, Message(err), "name is required")
		assert.Contains(t, Message(err), "email is required")
	})
}
