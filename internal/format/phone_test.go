package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhoneFullNumber(t *testing.T) {
	got := Phone("79261234567")
	assert.Equal(t, "+7 (926) 123-45-67", got)
	assert.Len(t, got, PhoneLength)
	assert.True(t, PhoneValid(got))
}

func TestPhoneLeadingEightBecomesSeven(t *testing.T) {
	assert.Equal(t, "+7 (926) 123-45-67", Phone("89261234567"))
}

func TestPhoneStripsJunkAndTruncates(t *testing.T) {
	assert.Equal(t, "+7 (926) 123-45-67", Phone("+7 926 123 45 67 999"))
	assert.Equal(t, "+7 (92", Phone("792"))
	assert.Equal(t, "+7", Phone("7"))
	assert.Equal(t, "+7", Phone("abc"))
}

func TestPhoneIdempotent(t *testing.T) {
	inputs := []string{
		"", "7", "79", "7926", "79261", "7926123", "792612345",
		"79261234567", "89261234567", "8 (926) 123-45-67", "nonsense",
	}
	for _, in := range inputs {
		once := Phone(in)
		assert.Equal(t, once, Phone(once), "input %q", in)
	}
}

func TestPhoneDigitsRoundTrip(t *testing.T) {
	assert.Equal(t, "79261234567", PhoneDigits(Phone("89261234567")))
}

func TestPhoneValidRejectsPartial(t *testing.T) {
	assert.False(t, PhoneValid(Phone("7926123")))
	assert.False(t, PhoneValid(""))
}
