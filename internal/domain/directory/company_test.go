package directory

import (
	"testing"

	"github.com/crmsuite/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompany(t *testing.T) {
	t.Run("valid company", func(t *testing.T) {
		company, err := NewCompany("Acme GmbH")
		require.NoError(t, err)

		assert.Equal(t, "Acme GmbH", company.Name)
		assert.Equal(t, CompanyStatusActive, company.Status)
		assert.Equal(t, valueobject.EUR, company.DefaultCurrency)
		assert.Equal(t, 1, company.Version)
		assert.NotEqual(t, "", company.ID.String())
		assert.Len(t, company.GetDomainEvents(), 1)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := NewCompany("")
		assert.Error(t, err)
	})

	t.Run("name too long", func(t *testing.T) {
		long := make([]byte, 201)
		for i := range long {
			long[i] = 'a'
		}
		_, err := NewCompany(string(long))
		assert.Error(t, err)
	})
}

func TestCompany_Update(t *testing.T) {
	company, _ := NewCompany("Acme")

	err := company.Update("Acme Corp", "Acme Corporation Ltd.")
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp", company.Name)
	assert.Equal(t, "Acme Corporation Ltd.", company.LegalName)
	assert.Equal(t, 2, company.Version)
}

func TestCompany_SetRegistration(t *testing.T) {
	company, _ := NewCompany("Acme")

	err := company.SetRegistration("hrb 12345", "de123456789")
	require.NoError(t, err)

	assert.Equal(t, "HRB 12345", company.RegistrationNumber)
	assert.Equal(t, "DE123456789", company.VATNumber)
}

func TestCompany_SetContactInfo(t *testing.T) {
	company, _ := NewCompany("Acme")

	t.Run("valid", func(t *testing.T) {
		err := company.SetContactInfo("Billing@Acme.example", "+49 30 1234567", "https://acme.example")
		require.NoError(t, err)
		assert.Equal(t, "billing@acme.example", company.Email)
	})

	t.Run("invalid email", func(t *testing.T) {
		err := company.SetContactInfo("not-an-email", "", "")
		assert.Error(t, err)
	})

	t.Run("invalid phone", func(t *testing.T) {
		err := company.SetContactInfo("", "call me maybe", "")
		assert.Error(t, err)
	})
}

func TestCompany_ArchiveRestore(t *testing.T) {
	company, _ := NewCompany("Acme")

	require.NoError(t, company.Archive())
	assert.True(t, company.IsArchived())

	err := company.Archive()
	assert.Error(t, err)

	require.NoError(t, company.Restore())
	assert.True(t, company.IsActive())

	err = company.Restore()
	assert.Error(t, err)
}

func TestCompany_SetDefaultCurrency(t *testing.T) {
	company, _ := NewCompany("Acme")

	require.NoError(t, company.SetDefaultCurrency("usd"))
	assert.Equal(t, valueobject.USD, company.DefaultCurrency)

	assert.Error(t, company.SetDefaultCurrency("EURO"))
}
