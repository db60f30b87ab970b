package ses

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pettag/internal/port"
)

func TestRenewURL(t *testing.T) {
	assert.Equal(t, "https://pettag.in/subscriptions/renew?subscription=42", RenewURL("https://pettag.in", 42))
}

func TestBuildRenewalMessage(t *testing.T) {
	r := port.RenewalReminder{
		SubscriptionID: 42,
		PlanType:       "annual",
		EndDate:        time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		Amount:         499,
		Currency:       "INR",
	}

	msg := buildRenewalMessage("Asha <admin>", r, "https://pettag.in/subscriptions/renew?subscription=42")

	assert.Equal(t, "Your PetTag annual plan ends on 1 July 2024", msg.subject)
	assert.Contains(t, msg.text, "Hi Asha <admin>,")
	assert.Contains(t, msg.text, "INR 499.00")
	assert.Contains(t, msg.html, "Hi Asha &lt;admin&gt;,")
	assert.NotContains(t, msg.html, "<admin>")
	assert.Contains(t, msg.html, "Renew for INR 499.00")
}
