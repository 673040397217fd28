package tenancy

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTenant(t *testing.T) {
	t.Run("creates active tenant with valid inputs", func(t *testing.T) {
		tenant, err := NewTenant("Rahul Sharma", "9876543210", "A-101")
		require.NoError(t, err)
		require.NotNil(t, tenant)

		assert.Equal(t, "Rahul Sharma", tenant.Name)
		assert.Equal(t, "9876543210", tenant.Phone)
		assert.Equal(t, "A-101", tenant.FlatNo)
		assert.True(t, tenant.Active)
		assert.False(t, tenant.ElectricityService)
		assert.False(t, tenant.RentService)
		assert.NotEmpty(t, tenant.ID)
		assert.Equal(t, 1, tenant.GetVersion())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewTenant("", "9876543210", "A-101")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with empty flat number", func(t *testing.T) {
		_, err := NewTenant("Rahul Sharma", "9876543210", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Flat number cannot be empty")
	})

	t.Run("allows empty phone", func(t *testing.T) {
		tenant, err := NewTenant("Rahul Sharma", "", "A-101")
		require.NoError(t, err)
		assert.Empty(t, tenant.Phone)
	})
}

func TestTenantUpdate(t *testing.T) {
	tenant, err := NewTenant("Rahul Sharma", "9876543210", "A-101")
	require.NoError(t, err)

	t.Run("updates basic details", func(t *testing.T) {
		err := tenant.Update("Priya Patel", "9123456780", "B-204")
		require.NoError(t, err)

		assert.Equal(t, "Priya Patel", tenant.Name)
		assert.Equal(t, "9123456780", tenant.Phone)
		assert.Equal(t, "B-204", tenant.FlatNo)
		assert.Equal(t, 2, tenant.GetVersion())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		err := tenant.Update("", "9123456780", "B-204")
		require.Error(t, err)
	})
}

func TestEnableElectricity(t *testing.T) {
	t.Run("enables with rate and initial reading", func(t *testing.T) {
		tenant, err := NewTenant("Rahul Sharma", "9876543210", "A-101")
		require.NoError(t, err)

		err = tenant.EnableElectricity(decimal.NewFromInt(15), 1000)
		require.NoError(t, err)

		assert.True(t, tenant.ElectricityService)
		assert.True(t, tenant.ElectricityRate.Equal(decimal.NewFromInt(15)))
		assert.Equal(t, int64(1000), tenant.InitialMeterReading)
		assert.Nil(t, tenant.CurrentMeterReading)
		assert.True(t, tenant.HasRate())
	})

	t.Run("fails with zero rate", func(t *testing.T) {
		tenant, _ := NewTenant("Rahul Sharma", "9876543210", "A-101")
		err := tenant.EnableElectricity(decimal.Zero, 1000)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate must be positive")
	})

	t.Run("fails with negative initial reading", func(t *testing.T) {
		tenant, _ := NewTenant("Rahul Sharma", "9876543210", "A-101")
		err := tenant.EnableElectricity(decimal.NewFromInt(15), -1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be negative")
	})
}

func TestDisableElectricity(t *testing.T) {
	tenant, _ := NewTenant("Rahul Sharma", "9876543210", "A-101")
	require.NoError(t, tenant.EnableElectricity(decimal.NewFromInt(15), 1000))
	require.NoError(t, tenant.AdvanceMeterReading(1120))

	tenant.DisableElectricity()

	assert.False(t, tenant.ElectricityService)
	// readings survive the unsubscribe
	assert.Equal(t, int64(1120), tenant.LatestReading())
}

func TestSetElectricityRate(t *testing.T) {
	t.Run("changes the per-unit rate", func(t *testing.T) {
		tenant, _ := NewTenant("Rahul Sharma", "9876543210", "A-101")
		require.NoError(t, tenant.EnableElectricity(decimal.NewFromInt(15), 1000))

		err := tenant.SetElectricityRate(decimal.NewFromInt(18))
		require.NoError(t, err)
		assert.True(t, tenant.ElectricityRate.Equal(decimal.NewFromInt(18)))
	})

	t.Run("fails without subscription", func(t *testing.T) {
		tenant, _ := NewTenant("Rahul Sharma", "9876543210", "A-101")
		err := tenant.SetElectricityRate(decimal.NewFromInt(18))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no electricity subscription")
	})

	t.Run("fails with non-positive rate", func(t *testing.T) {
		tenant, _ := NewTenant("Rahul Sharma", "9876543210", "A-101")
		require.NoError(t, tenant.EnableElectricity(decimal.NewFromInt(15), 1000))
		err := tenant.SetElectricityRate(decimal.Zero)
		require.Error(t, err)
	})
}

func TestEnableRent(t *testing.T) {
	t.Run("enables with rent and due day", func(t *testing.T) {
		tenant, _ := NewTenant("Rahul Sharma", "9876543210", "A-101")
		err := tenant.EnableRent(decimal.NewFromInt(8000), 5)
		require.NoError(t, err)

		assert.True(t, tenant.RentService)
		assert.True(t, tenant.MonthlyRent.Equal(decimal.NewFromInt(8000)))
		assert.Equal(t, 5, tenant.RentDueDay)
	})

	t.Run("fails with non-positive rent", func(t *testing.T) {
		tenant, _ := NewTenant("Rahul Sharma", "9876543210", "A-101")
		err := tenant.EnableRent(decimal.Zero, 5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rent must be positive")
	})

	t.Run("fails with due day past 28", func(t *testing.T) {
		tenant, _ := NewTenant("Rahul Sharma", "9876543210", "A-101")
		err := tenant.EnableRent(decimal.NewFromInt(8000), 29)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "between 1 and 28")
	})

	t.Run("fails with due day below 1", func(t *testing.T) {
		tenant, _ := NewTenant("Rahul Sharma", "9876543210", "A-101")
		err := tenant.EnableRent(decimal.NewFromInt(8000), 0)
		require.Error(t, err)
	})
}

func TestLatestReading(t *testing.T) {
	tenant, _ := NewTenant("Rahul Sharma", "9876543210", "A-101")
	require.NoError(t, tenant.EnableElectricity(decimal.NewFromInt(15), 1000))

	t.Run("falls back to initial reading", func(t *testing.T) {
		assert.Equal(t, int64(1000), tenant.LatestReading())
	})

	t.Run("prefers current reading once recorded", func(t *testing.T) {
		require.NoError(t, tenant.AdvanceMeterReading(1120))
		assert.Equal(t, int64(1120), tenant.LatestReading())
	})
}

func TestAdvanceMeterReading(t *testing.T) {
	t.Run("advances past the latest reading", func(t *testing.T) {
		tenant, _ := NewTenant("Rahul Sharma", "9876543210", "A-101")
		require.NoError(t, tenant.EnableElectricity(decimal.NewFromInt(15), 1000))

		err := tenant.AdvanceMeterReading(1120)
		require.NoError(t, err)
		require.NotNil(t, tenant.CurrentMeterReading)
		assert.Equal(t, int64(1120), *tenant.CurrentMeterReading)
	})

	t.Run("rejects reading equal to latest", func(t *testing.T) {
		tenant, _ := NewTenant("Rahul Sharma", "9876543210", "A-101")
		require.NoError(t, tenant.EnableElectricity(decimal.NewFromInt(15), 1000))

		err := tenant.AdvanceMeterReading(1000)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be greater than")
	})

	t.Run("rejects reading below latest", func(t *testing.T) {
		tenant, _ := NewTenant("Rahul Sharma", "9876543210", "A-101")
		require.NoError(t, tenant.EnableElectricity(decimal.NewFromInt(15), 1000))
		require.NoError(t, tenant.AdvanceMeterReading(1120))

		err := tenant.AdvanceMeterReading(1100)
		require.Error(t, err)
	})

	t.Run("fails without subscription", func(t *testing.T) {
		tenant, _ := NewTenant("Rahul Sharma", "9876543210", "A-101")
		err := tenant.AdvanceMeterReading(1120)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no electricity subscription")
	})
}

func TestActivateDeactivate(t *testing.T) {
	tenant, _ := NewTenant("Rahul Sharma", "9876543210", "A-101")

	tenant.Deactivate()
	assert.False(t, tenant.Active)

	tenant.Activate()
	assert.True(t, tenant.Active)
}
