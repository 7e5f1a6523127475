package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Day      string `json:"day" binding:"required,weekday"`
	Category string `json:"category" binding:"required,complaint_category"`
	Priority string `json:"priority" binding:"omitempty,priority"`
	UpiID    string `json:"upiId" binding:"omitempty,upi"`
}

func TestCustomRules(t *testing.T) {
	ok := sample{Day: "Monday", Category: "Hair/Bugs Found", Priority: "high", UpiID: "anita.devi@paytm"}
	require.NoError(t, Get().Struct(ok))

	bad := sample{Day: "monday", Category: "Too cold", Priority: "urgent", UpiID: "not-a-upi"}
	fields := FieldErrors(Get().Struct(bad))
	require.Len(t, fields, 4)
	assert.Contains(t, fields["day"], "weekday")
	assert.Contains(t, fields["category"], "Taste Issues")
	assert.Equal(t, "priority must be low, medium or high", fields["priority"])
	assert.Contains(t, fields, "upiId")
}

func TestFieldErrorsIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, FieldErrors(assert.AnError))
}

func TestRegisterGin(t *testing.T) {
	assert.NoError(t, RegisterGin())
}
