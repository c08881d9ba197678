package plan

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsefit/internal/shared/id"
)

func TestNewPlan_GeneratesPrefixedSID(t *testing.T) {
	p, err := NewPlan("Monthly", "", 30, decimal.NewFromInt(35))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(p.SID(), "plan_"), "sid %q must carry the plan_ prefix", p.SID())
	assert.Len(t, p.SID(), len("plan_")+id.DefaultLength)
}

func TestNewPlan_Validation(t *testing.T) {
	_, err := NewPlan("", "", 30, decimal.NewFromInt(35))
	assert.Error(t, err, "name is required")

	_, err = NewPlan("Monthly", "", 0, decimal.NewFromInt(35))
	assert.Error(t, err, "duration must be positive")

	_, err = NewPlan("Monthly", "", 30, decimal.NewFromInt(-1))
	assert.Error(t, err, "price cannot be negative")
}
