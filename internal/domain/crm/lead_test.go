package crm

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLead(t *testing.T) {
	companyID := uuid.New()

	t.Run("valid lead", func(t *testing.T) {
		lead, err := NewLead(companyID, "New website inquiry", LeadSourceWeb)
		require.NoError(t, err)

		assert.Equal(t, LeadStatusNew, lead.Status)
		assert.Equal(t, companyID, lead.CompanyID)
		assert.True(t, lead.EstimatedValue.IsZero())
	})

	t.Run("empty title", func(t *testing.T) {
		_, err := NewLead(companyID, "   ", LeadSourceWeb)
		assert.Error(t, err)
	})

	t.Run("invalid source", func(t *testing.T) {
		_, err := NewLead(companyID, "Inquiry", LeadSource("carrier-pigeon"))
		assert.Error(t, err)
	})
}

func TestLead_StatusTransitions(t *testing.T) {
	lead, _ := NewLead(uuid.New(), "Inquiry", LeadSourceReferral)

	require.NoError(t, lead.ChangeStatus(LeadStatusContacted))
	require.NoError(t, lead.ChangeStatus(LeadStatusQualified))

	t.Run("cannot skip back to new", func(t *testing.T) {
		err := lead.ChangeStatus(LeadStatusNew)
		assert.Error(t, err)
	})

	t.Run("converted is reserved for Convert", func(t *testing.T) {
		err := lead.ChangeStatus(LeadStatusConverted)
		assert.Error(t, err)
	})

	t.Run("disqualified lead can be re-engaged", func(t *testing.T) {
		require.NoError(t, lead.ChangeStatus(LeadStatusDisqualified))
		require.NoError(t, lead.ChangeStatus(LeadStatusContacted))
	})
}

func TestLead_Convert(t *testing.T) {
	t.Run("qualified lead converts to deal", func(t *testing.T) {
		lead, _ := NewLead(uuid.New(), "Big contract", LeadSourceOutbound)
		require.NoError(t, lead.Update("Big contract", decimal.NewFromInt(50000)))
		require.NoError(t, lead.ChangeStatus(LeadStatusQualified))

		deal, err := lead.Convert()
		require.NoError(t, err)

		assert.Equal(t, LeadStatusConverted, lead.Status)
		assert.Equal(t, lead.CompanyID, deal.CompanyID)
		assert.Equal(t, "Big contract", deal.Title)
		assert.True(t, deal.Value.Equal(decimal.NewFromInt(50000)))
		require.NotNil(t, lead.ConvertedDeal)
		assert.Equal(t, deal.ID, *lead.ConvertedDeal)
	})

	t.Run("new lead cannot convert", func(t *testing.T) {
		lead, _ := NewLead(uuid.New(), "Cold inquiry", LeadSourceWeb)
		_, err := lead.Convert()
		assert.Error(t, err)
	})

	t.Run("converted lead cannot convert twice", func(t *testing.T) {
		lead, _ := NewLead(uuid.New(), "Repeat", LeadSourceWeb)
		require.NoError(t, lead.ChangeStatus(LeadStatusQualified))
		_, err := lead.Convert()
		require.NoError(t, err)

		_, err = lead.Convert()
		assert.Error(t, err)
	})
}

func TestLead_SetContactInfo(t *testing.T) {
	lead, _ := NewLead(uuid.New(), "Inquiry", LeadSourceScrape)

	require.NoError(t, lead.SetContactInfo("John Smith", "John@Example.com", "+44 20 1234"))
	assert.Equal(t, "john@example.com", lead.ContactEmail)

	assert.Error(t, lead.SetContactInfo("", "nope", ""))
}
