package directory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContact(t *testing.T) {
	companyID := uuid.New()

	t.Run("valid contact", func(t *testing.T) {
		contact, err := NewContact(companyID, "Jane", "Doe")
		require.NoError(t, err)

		assert.Equal(t, companyID, contact.CompanyID)
		assert.Equal(t, "Jane Doe", contact.FullName())
		assert.Len(t, contact.GetDomainEvents(), 1)
	})

	t.Run("missing first name", func(t *testing.T) {
		_, err := NewContact(companyID, "", "Doe")
		assert.Error(t, err)
	})

	t.Run("missing last name", func(t *testing.T) {
		_, err := NewContact(companyID, "Jane", "  ")
		assert.Error(t, err)
	})
}

func TestContact_Update(t *testing.T) {
	contact, _ := NewContact(uuid.New(), "Jane", "Doe")

	require.NoError(t, contact.Update("Janet", "Doe-Smith", "CFO"))
	assert.Equal(t, "Janet", contact.FirstName)
	assert.Equal(t, "CFO", contact.Position)
	assert.Equal(t, 2, contact.Version)

	assert.Error(t, contact.Update("", "Doe", ""))
}

func TestContact_SetContactInfo(t *testing.T) {
	contact, _ := NewContact(uuid.New(), "Jane", "Doe")

	require.NoError(t, contact.SetContactInfo("Jane.Doe@Example.com", "+1 (555) 010-2030"))
	assert.Equal(t, "jane.doe@example.com", contact.Email)

	assert.Error(t, contact.SetContactInfo("bad@", ""))
}

func TestContact_Links(t *testing.T) {
	contact, _ := NewContact(uuid.New(), "Jane", "Doe")

	leadID := uuid.New()
	dealID := uuid.New()

	contact.LinkLead(leadID)
	contact.LinkDeal(dealID)

	require.NotNil(t, contact.LeadID)
	require.NotNil(t, contact.DealID)
	assert.Equal(t, leadID, *contact.LeadID)
	assert.Equal(t, dealID, *contact.DealID)
}
