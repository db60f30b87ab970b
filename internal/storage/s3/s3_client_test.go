package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttachment(t *testing.T) {
	assert.Equal(t,
		"attachment; filename=3f2a.csv",
		attachment("reports/revenue/2024-07-01/3f2a.csv"))
}
